package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer indicates a nil destination was passed to Load
	ErrNilPointer = errors.New("config: nil pointer provided")

	// ErrParsingConfig indicates environment parsing failed
	ErrParsingConfig = errors.New("config: failed to parse environment")
)

var defaultEnvLoaded sync.Once

// Load populates the provided struct from environment variables based on
// `env` field tags. The default .env file is loaded once per process before
// the first parse; a missing .env file is not an error.
//
// Example:
//
//	type ClientConfig struct {
//	    BaseURL string        `env:"AUTH_API_BASE_URL" envDefault:"http://localhost:8080"`
//	    Timeout time.Duration `env:"AUTH_API_TIMEOUT" envDefault:"15s"`
//	}
//
//	var cfg ClientConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional; absence is the common case in production.
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	return nil
}

// MustLoad works like Load but panics on failure. Intended for
// configuration without which the embedding application cannot start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}
