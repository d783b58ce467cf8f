package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/asciimath/lang"
	"github.com/ardnew/asciimath/log"
)

const defaultEditor = "vi"

// editScopeCommand implements [tea.ExecCommand] for the edit-load-retry loop.
// It writes the number bindings of scope as YAML definitions to a temp file,
// opens the user's editor, and loads the result into a new scope that keeps
// the original function bindings. On a load error the user is prompted to
// re-edit; declining exits the program.
type editScopeCommand struct {
	scope   *lang.Scope
	edited  *lang.Scope
	ctxFunc func() context.Context
	options func(*lang.Scope) []lang.Option
	logger  log.Logger
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editScopeCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editScopeCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editScopeCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit loop. It leaves edited nil if the user cleared the
// file, and returns [ErrEditDeclined] if the user declined to re-edit.
func (c *editScopeCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer
	if err := lang.WriteDefs(ctx, &buf, c.scope); err != nil {
		return fmt.Errorf("write definitions: %w", err)
	}

	f, err := os.CreateTemp(os.TempDir(), "asciimath-*.yaml")
	if err != nil {
		return err
	}

	path := f.Name()

	defer os.Remove(path)

	_ = f.Close()

	content := buf.Bytes()

	for {
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, path); err != nil {
			return err
		}

		content, err = os.ReadFile(path)
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(content)) == 0 {
			return nil
		}

		scope, loadErr := c.load(ctx, content)

		c.logger.TraceContext(ctx, "editor load attempt",
			slog.Int("content_length", len(content)),
			slog.Bool("success", loadErr == nil),
		)

		if loadErr == nil {
			c.edited = scope

			return nil
		}

		fmt.Fprintf(c.stderr, "\nLoad error: %s\n", loadErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		if !confirm(c.stdin) {
			return ErrEditDeclined
		}
	}
}

// load binds the definitions in content into a fresh scope holding the
// function bindings of the original. String definitions are parsed with the
// session's options, so strictness and depth limits apply as they do to
// definition files named on the command line.
func (c *editScopeCommand) load(ctx context.Context, content []byte) (*lang.Scope, error) {
	scope := lang.NewScope()

	for name := range c.scope.Names() {
		if v, ok := c.scope.GetVar(name); ok {
			if fn, ok := v.(lang.Function); ok {
				scope.SetFunction(name, fn)
			}
		}
	}

	opts := []lang.Option{lang.WithLogger(c.logger)}
	if c.options != nil {
		opts = append(opts, c.options(scope)...)
	}

	err := lang.LoadDefs(ctx, bytes.NewReader(content), scope, opts...)
	if err != nil {
		return nil, err
	}

	return scope, nil
}

// confirm reads one line from r and reports whether it is not a "no".
func confirm(r io.Reader) bool {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "n", "no":
		return false
	}

	return true
}

// runEditor runs $EDITOR, or vi, on path and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
