package lang

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// LoadDefs reads a YAML mapping of names to definitions from r and binds
// each entry into scope in document order.
//
// A numeric value is bound as-is. A string value is parsed as an expression
// and evaluated against the bindings made so far, so later entries may refer
// to earlier ones:
//
//	g: 9.80665
//	h: 2
//	t: sqrt(2h/g)
//
// Loading stops at the first failing entry. Entries bound before it remain in
// scope.
func LoadDefs(ctx context.Context, r io.Reader, scope *Scope, opts ...Option) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return ErrReadInput.Wrap(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var defs yaml.MapSlice
	if err := yaml.UnmarshalContext(ctx, data, &defs); err != nil {
		return ErrInvalidDefinition.Wrap(err)
	}

	opts = append(slices.Clip(opts), WithScope(scope))

	for _, item := range defs {
		name, ok := item.Key.(string)
		if !ok {
			return ErrInvalidDefinition.Detail(fmt.Sprint(item.Key)).
				With(slog.String("reason", "name is not a string"))
		}

		v, err := defValue(ctx, item.Value, opts...)
		if err != nil {
			return ErrInvalidDefinition.Detail(name).Wrap(err)
		}

		scope.SetNumber(name, v)
	}

	return nil
}

func defValue(ctx context.Context, value any, opts ...Option) (float64, error) {
	switch v := value.(type) {
	case uint64:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		if f, ok := parseLiteral(v); ok {
			return f, nil
		}

		root, err := ParseContext(ctx, v, opts...)
		if err != nil {
			return 0, err
		}

		return root.EvalContext(ctx)
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}

// parseLiteral parses s as a decimal or exponent literal such as "1e+21" or
// "-2.5e-07", which YAML decodes as a string. Names such as "inf" and "nan"
// are not literals and are left to the expression parser.
func parseLiteral(s string) (float64, bool) {
	s = strings.TrimSpace(s)

	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || digits == "" {
		return 0, false
	}

	if !isDigit(rune(digits[0])) && digits[0] != '.' {
		return 0, false
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	return v, true
}

// WriteDefs writes the number bindings of scope to w as a YAML mapping
// sorted by name. Function bindings are skipped.
func WriteDefs(ctx context.Context, w io.Writer, scope *Scope) error {
	defs := make(yaml.MapSlice, 0, scope.Len())

	for name := range scope.Names() {
		if v, ok := scope.number(name); ok {
			defs = append(defs, yaml.MapItem{Key: name, Value: v})
		}
	}

	if len(defs) == 0 {
		return nil
	}

	data, err := yaml.MarshalContext(ctx, defs)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
