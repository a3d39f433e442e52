package interp

import (
	"fmt"
	"io"
	"os"

	"lume/internal/ir"
)

// Print writes the display form of v followed by a newline.
func Print(p *ir.Program, out io.Writer, v Value) Value {
	fmt.Fprintln(out, Display(p, v))
	return Nil{}
}

// Read returns the contents of the file at the given path, or an Err value
// carrying the failure message.
func Read(path Value) Value {
	s, ok := path.(*Str)
	if !ok {
		return NewErr("TypeError")
	}
	data, err := os.ReadFile(s.S)
	if err != nil {
		return errFrom(err)
	}
	return NewStr(string(data))
}

// Write stores data at the given path and returns true, or an Err value
// carrying the failure message.
func Write(path, data Value) Value {
	p, ok := path.(*Str)
	if !ok {
		return NewErr("TypeError")
	}
	d, ok := data.(*Str)
	if !ok {
		return NewErr("TypeError")
	}
	if err := os.WriteFile(p.S, []byte(d.S), 0o644); err != nil {
		return errFrom(err)
	}
	return Bool(true)
}
