package interp

// Value is the runtime representation of every datum a script manipulates.
// Str, List, Struct and the struct half of Method are shared heap cells:
// copying a Value copies the pointer, so aliases observe each other's
// mutations. Everything else has value semantics.
type Value interface {
	value()
}

// Nil is the absence of a value and the result of unsupported operator
// combinations.
type Nil struct{}

// IterEnd is the sentinel an iterator's next() returns to terminate a for
// loop. It is a distinct variant so nil and false remain legitimate yields.
type IterEnd struct{}

// Err carries a value-level error. It is falsy and flows through normal
// expression evaluation; OrDie promotes it to a fatal.
type Err struct {
	Inner Value
}

type Bool bool

type Int int64

type Float float64

// Str is an immutable string behind a shared cell, so the identity operator
// can distinguish allocations.
type Str struct {
	S string
}

// List is a shared, mutable vector of values.
type List struct {
	Elems []Value
}

// Struct is an instance of a prototype: the dense value slots addressed by
// the prototype's field map.
type Struct struct {
	Prototype int
	Values    []Value
}

// Function is an index into the program's function table.
type Function int

// Method is a function bound to the struct it was looked up on. The
// instance becomes parameter 0 when the method is called.
type Method struct {
	Function int
	Instance *Struct
}

func (Nil) value()     {}
func (IterEnd) value() {}
func (Err) value()     {}
func (Bool) value()    {}
func (Int) value()     {}
func (Float) value()   {}
func (*Str) value()    {}
func (*List) value()   {}
func (*Struct) value() {}
func (Function) value() {}
func (Method) value()  {}

// NewStr allocates a fresh string cell.
func NewStr(s string) *Str {
	return &Str{S: s}
}

// NewList allocates a fresh list cell owning elems.
func NewList(elems ...Value) *List {
	return &List{Elems: elems}
}

// NewErr wraps a message string in an Err value.
func NewErr(message string) Err {
	return Err{Inner: NewStr(message)}
}

func errFrom(err error) Err {
	return Err{Inner: NewStr(err.Error())}
}

// Truthy decides conditions, short-circuit operators and the bool
// coercion. Nil, IterEnd, Err and false are falsy; everything else is
// truthy.
func Truthy(v Value) bool {
	switch b := v.(type) {
	case Nil, IterEnd, Err:
		return false
	case Bool:
		return bool(b)
	default:
		return true
	}
}
