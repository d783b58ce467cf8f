package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/asciimath/lang"
	"github.com/ardnew/asciimath/log"
)

// editScopeMsg is sent when the definitions were edited and reloaded.
type editScopeMsg struct{ scope *lang.Scope }

// editCancelledMsg is sent when the user cleared the editor content.
type editCancelledMsg struct{}

// editDeclinedMsg is sent when the user declined to re-edit after a load
// error.
type editDeclinedMsg struct{}

// editErrorMsg is sent when the edit process fails for any other reason.
type editErrorMsg struct{ err error }

const (
	evalPrompt = "➜ "
	ctrlPrompt = " :"
)

const helpMessage = `
: Commands (press Esc to toggle mode):

  help          Print this help
  list          List variables and built-in functions
  unset NAME..  Remove variables from scope
  edit          Edit variables in external $EDITOR
  clear         Clear screen
  quit          Exit REPL

Usage:
  Type an expression to evaluate it, or NAME = EXPR to bind a variable
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Space to accept the current candidate
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Use Alt+Up/Alt+Down to navigate command history only
  Press Ctrl+C on empty line or Ctrl+D to exit
`

// inputMode represents the current input mode.
type inputMode int

const (
	modeEval inputMode = iota
	modeCtrl
)

func (m inputMode) prompt() string {
	if m == modeCtrl {
		return ctrlPromptStyle.Render(ctrlPrompt)
	}

	return promptStyle.Render(evalPrompt)
}

func (m inputMode) hint() string {
	if m == modeCtrl {
		return "Type: help, list, unset, edit, clear, quit (press Esc to return)"
	}

	return "Type an expression or press Esc for commands"
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// echo formats a submitted line with the prompt of the mode it was entered in.
func echo(mode inputMode, input string) string {
	return mode.prompt() + inputStyle.Render(input)
}

// Config holds what a REPL session needs from its caller.
type Config struct {
	// Scope holds the initial variable bindings. It is modified by the session.
	Scope *lang.Scope
	// Options returns the parser options used for every expression.
	Options func(*lang.Scope) []lang.Option
	// Split separates a NAME=EXPR binding.
	Split func(string) (name, expr string, err error)
	// CacheDir is where the history file is kept.
	CacheDir string
	Logger   log.Logger
}

// inputState is the saved text and cursor of an inactive mode.
type inputState struct {
	text   string
	cursor int
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	scope      *lang.Scope
	options    func(*lang.Scope) []lang.Option
	split      func(string) (string, string, error)
	logger     log.Logger
	history    *History
	historyIdx int
	matches    fuzzy.Matches // current fuzzy match results
	wordStart  int           // byte offset of current word start
	wordEnd    int           // byte offset of current word end
	suggIdx    int           // selected candidate index
	tabActive  bool          // whether user is tab-cycling
	preTab     inputState    // input before tab-cycling began
	altNav     bool          // whether user is in Alt+Up/Down navigation
	altMode    inputMode     // mode before Alt navigation
	altState   inputState    // input before Alt navigation
	saved      [2]inputState // per-mode input while the other mode is active
	width      int           // terminal width for ellipsization
	quitting   bool
	mode       inputMode
}

// Run starts an interactive session over cfg.Scope.
func Run(ctx context.Context, cfg Config) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if cfg.Scope == nil {
		return ErrNoScope
	}

	cfg.Logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cfg.CacheDir),
		slog.Int("vars", cfg.Scope.Len()),
	)

	history := NewHistory(filepath.Join(cfg.CacheDir, baseHistory))
	if err := history.Load(); err != nil {
		cfg.Logger.WarnContext(ctx, "could not load history",
			slog.String("path", history.path),
			slog.Any("error", err),
		)
	}

	cfg.Logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, cfg, history), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(ctx context.Context, cfg Config, history *History) model {
	ti := textinput.New()
	ti.Prompt = modeEval.prompt()
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	options := cfg.Options
	if options == nil {
		options = func(s *lang.Scope) []lang.Option {
			return []lang.Option{lang.WithScope(s)}
		}
	}

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		scope:      cfg.Scope,
		options:    options,
		split:      cfg.Split,
		logger:     cfg.Logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeEval,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(evalPrompt) - 2

		return m, nil

	case editScopeMsg:
		m.scope = msg.scope
		m.logger.TraceContext(m.ctxFunc(), "repl edit complete",
			slog.Int("vars", m.scope.Len()),
		)

		return m, tea.Println(resultStyle.Render("✔ scope updated"))

	case editCancelledMsg:
		return m, tea.Println(hintStyle.Render("🗴 edit cancelled"))

	case editDeclinedMsg:
		m.quitting = true

		return m, tea.Quit

	case editErrorMsg:
		return m, tea.Println(errorStyle.Render("🗴 error: " + msg.err.Error()))
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	return b.String()
}

// statusLine renders the line below the input: history position, a hint,
// a function signature, or completion candidates.
func (m model) statusLine() string {
	input := m.input.Value()

	if m.historyIdx < m.history.Len() {
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))
	}

	if strings.TrimSpace(input) == "" {
		return hintStyle.Render(m.mode.hint())
	}

	if m.mode == modeEval {
		call := detectFunctionCall(input, m.input.Position())
		if call.inCall {
			if sig, params := getSignature(m.scope, call.name); sig != "" {
				return renderSignatureHint(sig, params, call.argIndex)
			}
		}
	}

	return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width, m.isFunction)
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.altNav = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		m.altNav = false

		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}

		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		m.cycle(1)

		return m, nil

	case tea.KeyShiftTab:
		m.cycle(-1)

		return m, nil

	case tea.KeyUp:
		if msg.Alt {
			m.recallCtrl(-1)
		} else {
			m.recall(-1, nil)
		}

		return m, nil

	case tea.KeyDown:
		if msg.Alt {
			m.recallCtrl(1)
		} else if !m.recall(1, nil) {
			m.resetHistory()
		}

		return m, nil

	case tea.KeyShiftUp:
		m.recall(-1, m.inMode(m.mode))

		return m, nil

	case tea.KeyShiftDown:
		if !m.recall(1, m.inMode(m.mode)) && m.historyIdx < m.history.Len() {
			m.resetHistory()
		}

		return m, nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.restore(m.preTab)
			refreshMatches(&m, false)

			return m, nil
		}

		m.altNav = false
		m.switchToMode(1 - m.mode)

		return m, nil

	case tea.KeyRunes:
		// Space breaks out of tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key edits or moves within the input; recompute matches
	// without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.altNav = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the tab selection by dir through the current matches,
// completing immediately when there is only one.
func (m *model) cycle(dir int) {
	n := len(m.matches)

	switch {
	case n == 0:
		return

	case n == 1:
		replaceCurrentWord(m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return

	case m.tabActive:
		m.suggIdx = (m.suggIdx + dir + n) % n

	default:
		m.tabActive = true
		m.preTab = m.current()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = n - 1
		}
	}

	replaceCurrentWord(m, m.matches[m.suggIdx].Str)
}

// replaceCurrentWord replaces the current word in the input with replacement
// and moves the cursor to its end.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	cursor := m.wordStart + len(replacement)

	m.input.SetValue(input[:m.wordStart] + replacement + input[m.wordEnd:])
	m.input.SetCursor(cursor)

	m.wordEnd = cursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true and the typed word already equals the sole
// candidate, the completion is confirmed. Deletions and cursor movement pass
// false so editing never completes unexpectedly.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		replaceCurrentWord(m, candidate)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	mode := m.mode

	m.saved = [2]inputState{}
	m.input.SetValue("")

	_, _ = m.history.WriteWithMode(input, mode)
	m.historyIdx = m.history.Len()

	m.logger.TraceContext(m.ctxFunc(), "repl submit",
		slog.String("input", input),
		slog.Bool("command", mode == modeCtrl),
	)

	if mode == modeCtrl {
		return m.executeCommand(input)
	}

	out, err := m.evaluate(input)
	if err != nil {
		m.logger.TraceContext(m.ctxFunc(), "repl eval failed", slog.Any("error", err))

		return m, tea.Sequence(
			tea.Println(echo(mode, input)),
			tea.Println(errorStyle.Render("error: "+err.Error())),
		)
	}

	return m, tea.Sequence(
		tea.Println(echo(mode, input)),
		tea.Println(resultStyle.Render(out)),
	)
}

// evaluate evaluates input in the session scope and returns the text to
// print. Input containing '=' is a binding: the right-hand side is evaluated
// and stored under the given name.
func (m model) evaluate(input string) (string, error) {
	ctx := m.ctxFunc()

	name, expr := "", input
	if m.split != nil && strings.ContainsRune(input, '=') {
		var err error

		name, expr, err = m.split(input)
		if err != nil {
			return "", err
		}
	}

	root, err := lang.ParseContext(ctx, expr, m.options(m.scope)...)
	if err != nil {
		return "", err
	}

	v, err := root.EvalContext(ctx)
	if err != nil {
		return "", err
	}

	if name == "" {
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	}

	m.scope.SetNumber(name, v)

	return name + " = " + strconv.FormatFloat(v, 'g', -1, 64), nil
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(echo(modeCtrl, input))

	cmd, args := parts[0], parts[1:]

	m.logger.TraceContext(m.ctxFunc(), "repl exec command",
		slog.String("command", cmd),
		slog.Any("args", args),
	)

	switch cmd {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echoCmd, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echoCmd, tea.Printf("%s", helpMessage))

	case "l", "list":
		return m, tea.Sequence(echoCmd, tea.Println(m.listScope()))

	case "u", "unset":
		if len(args) == 0 {
			return m, tea.Sequence(echoCmd,
				tea.Println(errorStyle.Render("usage: unset NAME...")))
		}

		for _, name := range args {
			m.scope.Delete(name)
		}

		return m, echoCmd

	case "c", "clear":
		return m, tea.ClearScreen

	case "e", "edit":
		return m, tea.Sequence(echoCmd, m.handleEdit())

	default:
		return m, tea.Println(
			errorStyle.Render("Unknown command: " + cmd + " (try 'help')"),
		)
	}
}

func (m model) handleEdit() tea.Cmd {
	cmd := &editScopeCommand{
		scope:   m.scope,
		ctxFunc: m.ctxFunc,
		options: m.options,
		logger:  m.logger,
	}

	return tea.Exec(cmd, func(err error) tea.Msg {
		switch {
		case errors.Is(err, ErrEditDeclined):
			return editDeclinedMsg{}
		case err != nil:
			return editErrorMsg{err: err}
		case cmd.edited == nil:
			return editCancelledMsg{}
		default:
			return editScopeMsg{scope: cmd.edited}
		}
	})
}

// listScope renders every variable in scope followed by the built-in
// functions with their parameters.
func (m model) listScope() string {
	var b strings.Builder

	for name := range m.scope.Names() {
		v, _ := m.scope.GetVar(name)

		switch v := v.(type) {
		case lang.Number:
			fmt.Fprintf(&b, "  %s %s\n", name,
				hintStyle.Render(strconv.FormatFloat(float64(v), 'g', -1, 64)))
		case lang.Function:
			fmt.Fprintf(&b, "  %s %s\n", name, hintStyle.Render("(...)"))
		}
	}

	for name := range lang.Builtins() {
		params, _ := lang.Signature(name)
		fmt.Fprintf(&b, "  %s %s\n", name,
			hintStyle.Render("("+strings.Join(params, ", ")+")"))
	}

	return b.String()
}

func (m model) current() inputState {
	return inputState{text: m.input.Value(), cursor: m.input.Position()}
}

func (m *model) restore(s inputState) {
	m.input.SetValue(s.text)
	m.input.SetCursor(s.cursor)
}

// inMode returns a history filter accepting entries entered in mode.
func (m model) inMode(mode inputMode) func(HistoryEntry) bool {
	return func(e HistoryEntry) bool { return e.Mode == mode }
}

// recall moves through history in direction dir (-1 older, 1 newer) to the
// nearest entry accepted by keep, or any entry if keep is nil, and loads it
// into the input. It reports false if there is no such entry.
func (m *model) recall(dir int, keep func(HistoryEntry) bool) bool {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		entry, err := m.history.GetEntry(i)
		if err != nil || (keep != nil && !keep(entry)) {
			continue
		}

		if entry.Mode != m.mode {
			m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.restore(inputState{text: entry.Line, cursor: len(entry.Line)})
		refreshMatches(m, false)

		return true
	}

	return false
}

func (m *model) resetHistory() {
	m.historyIdx = m.history.Len()
	m.input.SetValue("")
	refreshMatches(m, false)
}

// recallCtrl navigates command history only. The first step switches to
// command mode; running off either end restores the original mode and input.
func (m *model) recallCtrl(dir int) {
	if !m.altNav {
		m.altNav = true
		m.altMode = m.mode
		m.altState = m.current()

		m.switchToMode(modeCtrl)
	}

	if m.recall(dir, m.inMode(modeCtrl)) {
		return
	}

	m.altNav = false
	m.switchToMode(m.altMode)
	m.restore(m.altState)
	m.historyIdx = m.history.Len()
	refreshMatches(m, false)
}

// switchToMode saves the input of the current mode and restores that of mode.
func (m *model) switchToMode(mode inputMode) {
	m.saved[m.mode] = m.current()

	m.mode = mode
	m.input.Prompt = mode.prompt()
	m.restore(m.saved[mode])

	refreshMatches(m, false)
}
