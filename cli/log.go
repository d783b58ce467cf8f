package cli

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/asciimath/log"
)

// logFormat configures the default logger format as a side effect of parsing,
// so errors reported while kong is still parsing already use it.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel configures the default logger level as a side effect of parsing.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info" enum:"${logLevelEnum}"  help:"Set log level."`
	Format     logFormat `default:"text" enum:"${logFormatEnum}" help:"Set log format."`
	TimeLayout string    `default:"none"                         help:"Set timestamp format (a time layout, a layout name such as RFC3339 or kitchen, or none)."`
	Caller     bool      `default:"false"                        help:"Include caller information."       negatable:""`
	Pretty     bool      `default:"true"                         help:"Enable colorized pretty printing." negatable:""`
}

func (*logConfig) vars() kong.Vars {
	return kong.Vars{
		"logLevelEnum":  strings.Join(slices.Collect(log.Levels()), ","),
		"logFormatEnum": strings.Join(slices.Collect(log.Formats()), ","),
	}
}

func (*logConfig) group() kong.Group {
	return kong.Group{Key: "log", Title: "Logging options"}
}

// start applies every parsed logger flag, including those without a
// TextUnmarshaler, and returns a function that logs completion.
func (f *logConfig) start(ctx context.Context) (stop func()) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)

	return func() { log.TraceContext(ctx, "logger stopped") }
}

// scan applies logger flags found in args before kong parses them, so that
// the logger is configured regardless of flag position. Boolean flags never
// reach a TextUnmarshaler, which makes this pass necessary for them.
func (f *logConfig) scan(args []string) {
	setBool := func(dst *bool, opt func(bool) log.Option) func(string, bool) {
		return func(value string, negate bool) {
			v := true
			if value != "" {
				b, err := strconv.ParseBool(value)
				if err != nil {
					return
				}

				v = b
			}

			*dst = v != negate
			log.Config(opt(*dst))
		}
	}

	flags := map[string]struct {
		takesValue bool
		apply      func(value string, negate bool)
	}{
		"level": {true, func(v string, _ bool) { _ = f.Level.UnmarshalText([]byte(v)) }},
		"format": {true, func(v string, _ bool) { _ = f.Format.UnmarshalText([]byte(v)) }},
		"pretty": {false, setBool(&f.Pretty, log.WithPretty)},
		"caller": {false, setBool(&f.Caller, log.WithCaller)},
	}

	for i := 0; i < len(args); i++ {
		arg, negate := strings.CutPrefix(args[i], "--no-log-")
		if !negate {
			var ok bool
			if arg, ok = strings.CutPrefix(args[i], "--log-"); !ok {
				continue
			}
		}

		name, value, assigned := strings.Cut(arg, "=")

		flag, ok := flags[name]
		if !ok || (negate && flag.takesValue) {
			continue
		}

		// A value flag consumes the next argument unless assigned with '='.
		if flag.takesValue && !assigned {
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], "-") {
				continue
			}

			i++
			value = args[i]
		}

		flag.apply(value, negate)
	}
}
