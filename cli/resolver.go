package cli

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/asciimath/log"
)

// resolve returns a [kong.ConfigurationLoader] reading flag values from the
// YAML mapping under key:
//
//	config:
//	  log-level: debug
//	  strict: true
//	  max-depth: 64
//	  var:
//	    - g=9.80665
//
// Keys may use hyphens or underscores. Command-line flags override config
// file values. A file that is not valid YAML, or has no such mapping, is
// ignored with a warning.
func resolve(ctx context.Context, key string) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}

		var doc map[string]any
		if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
			log.WarnContext(ctx, "ignoring invalid configuration",
				slog.String("key", key),
				slog.Any("error", err),
			)

			return config{}, nil
		}

		section, ok := doc[key].(map[string]any)
		if !ok {
			return config{}, nil
		}

		conf := make(config, len(section))
		for name, value := range section {
			conf[name] = flagValue(value)
		}

		return conf, nil
	}
}

// config implements [kong.Resolver] over a flat mapping of flag names.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver]. It returns nil for flags that are not
// configured so kong falls back to their defaults.
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// flagValue converts a decoded YAML value into a form kong can map onto a
// flag. Numbers become strings, and so do the elements of sequences.
func flagValue(value any) any {
	switch v := value.(type) {
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			if s, ok := flagValue(elem).(string); ok {
				out[i] = s
			} else {
				out[i] = elem
			}
		}

		return out
	default:
		return value
	}
}
