package guard

import "fmt"

// Access declares who may enter a route.
type Access uint8

const (
	// AccessPublic routes are reachable regardless of session state.
	AccessPublic Access = iota
	// AccessRequiresAuth routes demand an authenticated session.
	AccessRequiresAuth
	// AccessRequiresGuest routes are reachable only without a session,
	// e.g. login and registration forms.
	AccessRequiresGuest
)

// String implements fmt.Stringer.
func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessRequiresAuth:
		return "requires_auth"
	case AccessRequiresGuest:
		return "requires_guest"
	default:
		return fmt.Sprintf("access(%d)", a)
	}
}

// RouteName identifies a navigation destination.
type RouteName string

// Destinations of the default application route table.
const (
	RouteRoot      RouteName = "root"
	RouteLogin     RouteName = "login"
	RouteRegister  RouteName = "register"
	RouteDashboard RouteName = "dashboard"
	RouteProfile   RouteName = "profile"
)

// Route is a navigation destination with its declared access requirement.
type Route struct {
	Name   RouteName
	Path   string
	Access Access
}

// Routes is a registry of navigation destinations keyed by name and path.
type Routes struct {
	byName map[RouteName]Route
	byPath map[string]Route
}

// NewRoutes builds a registry from the given routes.
// Duplicate names or paths return an error.
func NewRoutes(routes ...Route) (*Routes, error) {
	r := &Routes{
		byName: make(map[RouteName]Route, len(routes)),
		byPath: make(map[string]Route, len(routes)),
	}

	for _, route := range routes {
		if route.Name == "" || route.Path == "" {
			return nil, fmt.Errorf("guard: route requires both name and path: %+v", route)
		}
		if _, exists := r.byName[route.Name]; exists {
			return nil, fmt.Errorf("guard: duplicate route name %q", route.Name)
		}
		if _, exists := r.byPath[route.Path]; exists {
			return nil, fmt.Errorf("guard: duplicate route path %q", route.Path)
		}
		r.byName[route.Name] = route
		r.byPath[route.Path] = route
	}

	return r, nil
}

// DefaultRoutes returns the stock application route table: guest-only
// login and registration, authenticated dashboard and profile, and the
// eagerly resolved root.
func DefaultRoutes() *Routes {
	routes, err := NewRoutes(
		Route{Name: RouteRoot, Path: "/", Access: AccessPublic},
		Route{Name: RouteLogin, Path: "/login", Access: AccessRequiresGuest},
		Route{Name: RouteRegister, Path: "/register", Access: AccessRequiresGuest},
		Route{Name: RouteDashboard, Path: "/dashboard", Access: AccessRequiresAuth},
		Route{Name: RouteProfile, Path: "/profile", Access: AccessRequiresAuth},
	)
	if err != nil {
		panic(err)
	}
	return routes
}

// Get returns the route registered under name.
func (r *Routes) Get(name RouteName) (Route, bool) {
	route, ok := r.byName[name]
	return route, ok
}

// ByPath returns the route registered under path.
func (r *Routes) ByPath(path string) (Route, bool) {
	route, ok := r.byPath[path]
	return route, ok
}
