package repl

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/asciimath/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "list", "unset", "edit", "clear", "quit"}

// isWordBoundary reports whether r delimits a word for completion: whitespace,
// grouping, the argument separator, or any operator.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t',
		'(', ')', ',',
		'+', '-', '*', '/', '^', '=':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor and its byte boundaries within
// input. The word is empty when the cursor sits on a boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	cursor = min(cursor, len(input))

	start = cursor
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor
	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// candidates returns the names that complete an expression word: every
// variable in scope followed by the built-in functions it does not shadow.
func candidates(scope *lang.Scope) []string {
	names := slices.Collect(scope.Names())

	for name := range lang.Builtins() {
		if _, ok := scope.GetVar(name); !ok {
			names = append(names, name)
		}
	}

	return names
}

// computeMatches returns the fuzzy matches, best first, for the word at the
// cursor and the word's boundaries. An empty word has no matches so the hint
// line stays visible.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	word, wordStart, wordEnd := wordBounds(m.input.Value(), m.input.Position())
	if word == "" {
		return nil, wordStart, wordEnd
	}

	list := ctrlCommands
	if m.mode == modeEval {
		list = candidates(m.scope)
	}

	if len(list) == 0 {
		return nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, list), wordStart, wordEnd
}

// isFunction reports whether name is callable in the session scope.
func (m model) isFunction(name string) bool {
	if v, ok := m.scope.GetVar(name); ok {
		_, fn := v.(lang.Function)

		return fn
	}

	_, ok := lang.Builtin(name)

	return ok
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// width. The selected candidate is highlighted while tab-cycling, and names
// for which isFunction holds are suffixed with "()".
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
	isFunction func(string) bool,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx, isFunction)

		w := lipgloss.Width(rendered)
		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && used+w+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders one candidate with its matched characters bold.
func renderCandidate(
	match fuzzy.Match,
	selected bool,
	isFunction func(string) bool,
) string {
	base := suggestionStyle
	if selected {
		base = selectedStyle
	}

	highlight := base.Bold(true)

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	if isFunction != nil && isFunction(match.Str) {
		b.WriteString(base.Render("()"))
	}

	return b.String()
}
