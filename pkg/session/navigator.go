package session

import (
	"context"

	"github.com/dmitrymomot/authkit/pkg/guard"
)

// Navigator is the rendering layer's navigation surface. The manager
// calls it after operations that change where the user should be:
// login lands on the authenticated landing view, registration and logout
// land on the login view.
type Navigator interface {
	Navigate(ctx context.Context, to guard.RouteName)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(ctx context.Context, to guard.RouteName)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(ctx context.Context, to guard.RouteName) {
	f(ctx, to)
}

// nopNavigator is used when the embedder does not supply a Navigator.
type nopNavigator struct{}

func (nopNavigator) Navigate(context.Context, guard.RouteName) {}
