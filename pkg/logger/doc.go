// Package logger builds *slog.Logger instances from functional options and
// provides attribute helpers so every package names its log keys the same
// way.
//
// New picks a text or JSON handler, attaches static attributes and wraps the
// handler in a ContextHandler, which injects attributes pulled from the
// context of each call (for example a request id).
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "formguard"),
//	    logger.WithLevel(logger.ParseLevel(cfg.Level)),
//	)
//	log.DebugContext(ctx, "stale outcome dropped",
//	    logger.Field("name"),
//	    logger.Rule("validProjectName"),
//	    logger.Token(7),
//	)
//
// Config carries the same settings for env-based loading; FromConfig turns it
// into options. Discard returns a logger that writes nowhere and is the
// default for packages that accept an optional logger.
package logger
