// Package config loads environment-based configuration into tagged structs.
//
// Each package in this module declares its own Config struct with `env`
// tags and sensible envDefault values; embedding applications call
// config.Load (or config.MustLoad during bootstrap) to populate them.
// A local .env file, when present, is read once per process before the
// first parse.
package config
