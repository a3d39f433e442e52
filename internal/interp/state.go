package interp

import (
	"fmt"
	"io"
	"os"

	diag "lume/internal/errors"
	"lume/internal/ir"
)

// exit is swapped out by tests exercising the fatal path.
var exit = os.Exit

// State is the mutable execution state: one growable variable stack shared
// by all frames, and the base index of the current frame. Frame k owns the
// window variables[begin..begin+nvars); frames live contiguously in stack
// order.
type State struct {
	variables      []Value
	variablesBegin int

	// Out receives print output. Stderr receives fatal diagnostics.
	Out    io.Writer
	Stderr io.Writer
}

// NewState returns an empty state writing to the standard streams.
func NewState() *State {
	return &State{Out: os.Stdout, Stderr: os.Stderr}
}

// Depth reports how many values the variable stack currently holds.
func (s *State) Depth() int {
	return len(s.variables)
}

func (s *State) getVariable(id int) Value {
	return s.variables[s.variablesBegin+id]
}

func (s *State) setVariable(id int, v Value) {
	s.variables[s.variablesBegin+id] = v
}

// Die renders the value as a fatal diagnostic and terminates the process
// with status 1. Nothing is recovered.
func (s *State) Die(p *ir.Program, v Value, rng *ir.Range) {
	var loc *diag.Location
	if rng != nil {
		loc = &diag.Location{
			File: p.Files[rng.File],
			Line: rng.Line + 1,
			Col:  rng.Col + 1,
			Len:  rng.Len,
		}
	}
	fmt.Fprintln(s.Stderr, diag.FormatFatal(Display(p, v), loc))
	exit(1)
}
