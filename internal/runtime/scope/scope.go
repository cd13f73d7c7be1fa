package scope

import (
	"fmt"

	"github.com/arnavsurve/glox/internal/runtime/value"
)

// UndefinedError is returned when a name is read or assigned but no scope in
// the chain declares it.
type UndefinedError struct {
	Name string
}

func (e *UndefinedError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'.", e.Name)
}

// --- Scope ---
type Scope struct {
	Values map[string]value.Value
	Outer  *Scope
}

func NewScope(outer *Scope) *Scope {
	return &Scope{
		Values: make(map[string]value.Value),
		Outer:  outer,
	}
}

// Define binds name in this scope only. Redeclaring a name in the same
// scope overwrites it; declaring one that exists further out shadows it.
func (s *Scope) Define(name string, v value.Value) {
	s.Values[name] = v
}

// Get returns the value bound to name in the nearest scope that has it.
func (s *Scope) Get(name string) (value.Value, error) {
	for scope := s; scope != nil; scope = scope.Outer {
		if v, ok := scope.Values[name]; ok {
			return v, nil
		}
	}
	return nil, &UndefinedError{Name: name}
}

// Assign overwrites name in the nearest scope that has it and returns v.
// It never creates a binding.
func (s *Scope) Assign(name string, v value.Value) (value.Value, error) {
	for scope := s; scope != nil; scope = scope.Outer {
		if _, ok := scope.Values[name]; ok {
			scope.Values[name] = v
			return v, nil
		}
	}
	return nil, &UndefinedError{Name: name}
}

// Depth returns the number of enclosing scopes; the global scope is 0.
func (s *Scope) Depth() int {
	d := 0
	for scope := s.Outer; scope != nil; scope = scope.Outer {
		d++
	}
	return d
}
