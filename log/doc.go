// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is configured once with functional options and is safe for
// concurrent use. The zero Logger discards everything, so components can
// hold one without checking whether logging was configured.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatJSON),
//		log.WithTimeLayout("Kitchen"))
//
//	logger.Info("loaded", slog.Int("vars", 3))
//
// Attributes are always [slog.Attr] values, which keeps call sites typed:
//
//	logger = logger.With(slog.String("file", path))
//	logger.DebugContext(ctx, "parsed", slog.Int("nodes", n))
//
// # Levels
//
// [LevelTrace] sits below [LevelDebug] and is used for per-token and per-node
// detail. [ParseLevel] accepts the names "trace", "debug", "info", "warn" and
// "error" in any case, as well as [slog.Level] offsets such as "INFO+2".
//
// # Formats
//
// [FormatText] and [FormatJSON] select the [slog.TextHandler] and
// [slog.JSONHandler] respectively. With [WithPretty] enabled, the output is
// colorized for a terminal instead.
//
// # Default logger
//
// The package-level functions ([Info], [Warn], and so on) write to a default
// logger on standard error. [Config] reconfigures it and [Default] returns it
// for handing to other packages.
package log
