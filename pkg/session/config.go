package session

// Config holds session persistence settings.
type Config struct {
	// TokenKey is the durable storage key holding the raw bearer token.
	TokenKey string `env:"AUTH_SESSION_TOKEN_KEY" envDefault:"authToken"`

	// UserKey is the durable storage key holding the serialized user cache.
	UserKey string `env:"AUTH_SESSION_USER_KEY" envDefault:"authUser"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		TokenKey: "authToken",
		UserKey:  "authUser",
	}
}
