// Package logger builds preconfigured slog.Logger instances for the module.
// Defaults are production-safe (JSON, INFO, stdout); options switch to
// text output or attach static attributes such as the embedding
// application's name.
package logger
