package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

type initCLI struct {
	Verbose bool     `help:"Enable verbose output."`
	Output  string   `help:"Output file."`
	Count   int      `help:"Number of items."`
	Var     []string `help:"Bindings."                sep:"none"`
	Secret  string   `help:"Hidden value."            hidden:""`
	Empty   string   `help:"Unset value."`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(t.Context(), ktx)
}

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: 1\n"), 0o600); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath, "--count=5")

			err := (&Init{Force: tt.force}).Run(ctx)
			if !errors.Is(err, tt.wantErr) || (err == nil) != (tt.wantErr == nil) {
				t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			if tt.wantErr != nil {
				if string(content) != "existing: 1\n" {
					t.Errorf("existing file was modified: %q", content)
				}

				return
			}

			var conf map[string]map[string]any
			if err := yaml.Unmarshal(content, &conf); err != nil {
				t.Fatalf("generated config is not valid YAML: %v\n%s", err, content)
			}

			if _, ok := conf[ConfigIdentifier]; !ok {
				t.Errorf("generated config has no %q mapping:\n%s", ConfigIdentifier, content)
			}
		})
	}
}

func TestConfigEntries(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "unused",
		"--verbose", "--output=test.txt", "--count=5",
		"--var", "x=1,2", "--var", "y=x",
	)

	got := configEntries(kongContextFrom(ctx))

	data, err := yaml.Marshal(got)
	if err != nil {
		t.Fatal(err)
	}

	var conf map[string]any
	if err := yaml.Unmarshal(data, &conf); err != nil {
		t.Fatal(err)
	}

	if conf["verbose"] != true {
		t.Errorf("verbose = %v, want true", conf["verbose"])
	}

	if conf["output"] != "test.txt" {
		t.Errorf("output = %v, want test.txt", conf["output"])
	}

	if conf["count"] != uint64(5) {
		t.Errorf("count = %#v, want 5", conf["count"])
	}

	vars, _ := conf["var"].([]any)
	if len(vars) != 2 || vars[0] != "x=1,2" || vars[1] != "y=x" {
		t.Errorf("var = %#v, want [x=1,2 y=x]", conf["var"])
	}

	for _, skipped := range []string{"help", "secret", "empty"} {
		if _, ok := conf[skipped]; ok {
			t.Errorf("%s should not be written", skipped)
		}
	}
}

func TestConfigValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"empty_string", "", nil},
		{"string", "text", "text"},
		{"empty_slice", []string{}, nil},
		{"bool_false", false, false},
		{"int", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := configValue(tt.in)
			if got != tt.want {
				t.Errorf("configValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVersionRun(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	if err := (Version{}).Run(WithOutput(t.Context(), &out)); err != nil {
		t.Fatal(err)
	}

	if !bytes.HasPrefix(out.Bytes(), []byte("asciimath ")) {
		t.Errorf("output = %q", out.String())
	}
}
