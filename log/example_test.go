package log_test

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/asciimath/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("evaluated", slog.String("expr", "2+2"), slog.Float64("value", 4))
	// Output: level=INFO msg=evaluated expr=2+2 value=4
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelWarn),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown", slog.String("key", "value"))
	// Output: level=WARN msg=shown key=value
}

func Example_trace() {
	logger := log.Make(os.Stdout,
		log.WithLevel(log.LevelTrace),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.TraceContext(context.Background(), "token", slog.Int("pos", 3))
	// Output: level=TRACE msg=token pos=3
}

func Example_withAttributes() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatJSON),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger = logger.With(slog.String("source", "defs.yaml"))
	logger.Info("loaded", slog.Int("vars", 2))
	// Output: {"level":"INFO","msg":"loaded","source":"defs.yaml","vars":2}
}
