// Package logging provides structured logging for drover, built on Go's
// standard slog package.
//
// Every log entry carries a severity level, a subsystem tag for
// filtering (for example "Repo", "Watcher", "CLI") and a formatted
// message; errors are attached as a structured attribute. Call Init once
// at startup with the minimum level and the output writer, then use the
// package-level Debug, Info, Warn and Error functions:
//
//	logging.Init(logging.LevelInfo, os.Stderr)
//	logging.Info("Repo", "Loaded configuration from %s", path)
//	logging.Error("Watcher", err, "Reload failed")
//
// Messages below the configured level, or logged before Init, are
// discarded.
package logging
