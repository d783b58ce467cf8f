package lang

import (
	"iter"
	"maps"
	"slices"
)

// Variable is a value that can be bound to a name in a [Scope].
// It is implemented only by [Number] and [Function].
type Variable interface {
	isVariable()
}

// Number is a numeric binding.
type Number float64

// Function is a callable binding. It receives the evaluated arguments of a
// call and returns the result or an error.
type Function func(args []float64) (float64, error)

func (Number) isVariable()   {}
func (Function) isVariable() {}

// Scope maps case-sensitive names to variables.
//
// A Scope is not safe for concurrent mutation. Parsing and evaluation only
// read it, so callers serialize [Scope.SetVar] and [Scope.Delete] against
// concurrent use.
//
// All methods accept a nil receiver, which behaves as an empty scope.
type Scope struct {
	vars map[string]Variable
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{vars: make(map[string]Variable)}
}

// SetVar binds name to v, replacing any previous binding.
// Setting a nil v removes the binding.
func (s *Scope) SetVar(name string, v Variable) {
	if s == nil {
		return
	}

	if v == nil {
		delete(s.vars, name)

		return
	}

	if s.vars == nil {
		s.vars = make(map[string]Variable)
	}

	s.vars[name] = v
}

// SetNumber binds name to the number v.
func (s *Scope) SetNumber(name string, v float64) { s.SetVar(name, Number(v)) }

// SetFunction binds name to fn.
func (s *Scope) SetFunction(name string, fn Function) {
	if fn == nil {
		s.SetVar(name, nil)

		return
	}

	s.SetVar(name, fn)
}

// GetVar returns the binding for name.
func (s *Scope) GetVar(name string) (Variable, bool) {
	if s == nil {
		return nil, false
	}

	v, ok := s.vars[name]

	return v, ok
}

// Delete removes the binding for name, if any.
func (s *Scope) Delete(name string) {
	if s == nil {
		return
	}

	delete(s.vars, name)
}

// Len returns the number of bindings.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}

	return len(s.vars)
}

// Names returns an iterator over the bound names in sorted order.
func (s *Scope) Names() iter.Seq[string] {
	if s == nil {
		return func(func(string) bool) {}
	}

	return slices.Values(slices.Sorted(maps.Keys(s.vars)))
}

// Clone returns a shallow copy of the scope. Function values are shared.
func (s *Scope) Clone() *Scope {
	if s == nil {
		return NewScope()
	}

	c := &Scope{vars: make(map[string]Variable, len(s.vars))}
	maps.Copy(c.vars, s.vars)

	return c
}

func (s *Scope) has(name string) bool {
	_, ok := s.GetVar(name)

	return ok
}

func (s *Scope) number(name string) (float64, bool) {
	v, ok := s.GetVar(name)
	if !ok {
		return 0, false
	}

	n, ok := v.(Number)

	return float64(n), ok
}

func (s *Scope) function(name string) (Function, bool) {
	v, ok := s.GetVar(name)
	if !ok {
		return nil, false
	}

	fn, ok := v.(Function)

	return fn, ok
}
