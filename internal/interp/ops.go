package interp

import (
	"math"
	"strings"

	"lume/internal/ir"
)

// Operator semantics. Every operator is total: unsupported operand
// combinations yield Nil, never a failure. The exceptions, which terminate
// by panic, are the explicitly unimplemented string division/modulo and
// string coercions, integer division/modulo by zero, and negative shift
// counts.

// numeric projects the Bool/Int/Float cross-type group onto both integer
// and float axes. Bool counts as 0/1.
func numeric(v Value) (i int64, f float64, isFloat, ok bool) {
	switch n := v.(type) {
	case Bool:
		if n {
			i = 1
		}
		return i, float64(i), false, true
	case Int:
		return int64(n), float64(n), false, true
	case Float:
		return 0, float64(n), true, true
	}
	return 0, 0, false, false
}

// imod keeps the remainder's sign equal to the divisor's.
func imod(left, right int64) int64 {
	result := left % right
	if (result < 0) != (right < 0) && result != 0 {
		result += right
	}
	return result
}

// fmod keeps the remainder's sign equal to the divisor's.
func fmod(left, right float64) float64 {
	result := math.Mod(left, right)
	if (result < 0) != (right < 0) && result != 0 {
		result += right
	}
	return result
}

func Add(left, right Value) Value {
	if li, lf, lfloat, ok := numeric(left); ok {
		if ri, rf, rfloat, ok := numeric(right); ok {
			if lfloat || rfloat {
				return Float(lf + rf)
			}
			return Int(li + ri)
		}
		return Nil{}
	}
	switch l := left.(type) {
	case *Str:
		if r, ok := right.(*Str); ok {
			return NewStr(l.S + r.S)
		}
	case *List:
		if r, ok := right.(*List); ok {
			elems := make([]Value, 0, len(l.Elems)+len(r.Elems))
			elems = append(elems, l.Elems...)
			elems = append(elems, r.Elems...)
			return NewList(elems...)
		}
	}
	return Nil{}
}

func Sub(left, right Value) Value {
	li, lf, lfloat, ok := numeric(left)
	if !ok {
		return Nil{}
	}
	ri, rf, rfloat, ok := numeric(right)
	if !ok {
		return Nil{}
	}
	if lfloat || rfloat {
		return Float(lf - rf)
	}
	return Int(li - ri)
}

func Minus(v Value) Value {
	switch n := v.(type) {
	case Bool:
		if n {
			return Int(-1)
		}
		return Int(0)
	case Int:
		return Int(-n)
	case Float:
		return Float(-n)
	}
	return Nil{}
}

func Mul(left, right Value) Value {
	if li, lf, lfloat, ok := numeric(left); ok {
		if ri, rf, rfloat, ok := numeric(right); ok {
			if lfloat || rfloat {
				return Float(lf * rf)
			}
			return Int(li * ri)
		}
		return Nil{}
	}
	switch l := left.(type) {
	case *Str:
		if factor, ok := right.(Int); ok {
			if factor < 0 {
				return NewStr("")
			}
			return NewStr(strings.Repeat(l.S, int(factor)))
		}
	case *List:
		if factor, ok := right.(Int); ok {
			if factor < 0 {
				return NewList()
			}
			elems := make([]Value, 0, len(l.Elems)*int(factor))
			for i := int64(0); i < int64(factor); i++ {
				elems = append(elems, l.Elems...)
			}
			return NewList(elems...)
		}
	}
	return Nil{}
}

func Div(left, right Value) Value {
	if _, isStr := left.(*Str); isStr {
		if _, isStr := right.(*Str); isStr {
			panic("unimplemented: string division")
		}
	}
	li, lf, lfloat, ok := numeric(left)
	if !ok {
		return Nil{}
	}
	ri, rf, rfloat, ok := numeric(right)
	if !ok {
		return Nil{}
	}
	if lfloat || rfloat {
		return Float(lf / rf)
	}
	return Int(li / ri)
}

func Modulo(left, right Value) Value {
	if _, isStr := left.(*Str); isStr {
		if _, isStr := right.(*Str); isStr {
			panic("unimplemented: string modulo")
		}
	}
	li, lf, lfloat, ok := numeric(left)
	if !ok {
		return Nil{}
	}
	ri, rf, rfloat, ok := numeric(right)
	if !ok {
		return Nil{}
	}
	if lfloat || rfloat {
		return Float(fmod(lf, rf))
	}
	return Int(imod(li, ri))
}

// Eq is structural equality. The Bool/Int/Float group compares by
// mathematical value; Nil equals Nil and IterEnd equals IterEnd; Err
// values compare their inner values; Str by contents; List and Struct
// element-wise; Function by index. Everything else is unequal.
func Eq(left, right Value) bool {
	if li, lf, lfloat, ok := numeric(left); ok {
		ri, rf, rfloat, ok := numeric(right)
		if !ok {
			return false
		}
		if lfloat || rfloat {
			return lf == rf
		}
		return li == ri
	}
	switch l := left.(type) {
	case Nil:
		_, ok := right.(Nil)
		return ok
	case IterEnd:
		_, ok := right.(IterEnd)
		return ok
	case Err:
		if r, ok := right.(Err); ok {
			return Eq(l.Inner, r.Inner)
		}
	case *Str:
		if r, ok := right.(*Str); ok {
			return l.S == r.S
		}
	case *List:
		if r, ok := right.(*List); ok {
			if len(l.Elems) != len(r.Elems) {
				return false
			}
			for i := range l.Elems {
				if !Eq(l.Elems[i], r.Elems[i]) {
					return false
				}
			}
			return true
		}
	case *Struct:
		if r, ok := right.(*Struct); ok {
			if l.Prototype != r.Prototype {
				return false
			}
			for i := range l.Values {
				if !Eq(l.Values[i], r.Values[i]) {
					return false
				}
			}
			return true
		}
	case Function:
		if r, ok := right.(Function); ok {
			return l == r
		}
	}
	return false
}

// Is is reference identity: true exactly when two shared cells denote the
// same allocation. Functions participate via index equality.
func Is(left, right Value) bool {
	switch l := left.(type) {
	case Err:
		if r, ok := right.(Err); ok {
			return Is(l.Inner, r.Inner)
		}
	case *Str:
		if r, ok := right.(*Str); ok {
			return l == r
		}
	case *List:
		if r, ok := right.(*List); ok {
			return l == r
		}
	case *Struct:
		if r, ok := right.(*Struct); ok {
			return l == r
		}
	case Function:
		if r, ok := right.(Function); ok {
			return l == r
		}
	}
	return false
}

func Lt(left, right Value) Value {
	li, lf, lfloat, ok := numeric(left)
	if !ok {
		return Nil{}
	}
	ri, rf, rfloat, ok := numeric(right)
	if !ok {
		return Nil{}
	}
	if lfloat || rfloat {
		return Bool(lf < rf)
	}
	return Bool(li < ri)
}

func Leq(left, right Value) Value {
	li, lf, lfloat, ok := numeric(left)
	if !ok {
		return Nil{}
	}
	ri, rf, rfloat, ok := numeric(right)
	if !ok {
		return Nil{}
	}
	if lfloat || rfloat {
		return Bool(lf <= rf)
	}
	return Bool(li <= ri)
}

func BitNot(v Value) Value {
	if i, ok := v.(Int); ok {
		return Int(^i)
	}
	return Nil{}
}

func BitAnd(left, right Value) Value {
	if l, ok := left.(Int); ok {
		if r, ok := right.(Int); ok {
			return Int(l & r)
		}
	}
	return Nil{}
}

func BitOr(left, right Value) Value {
	if l, ok := left.(Int); ok {
		if r, ok := right.(Int); ok {
			return Int(l | r)
		}
	}
	return Nil{}
}

func BitXor(left, right Value) Value {
	if l, ok := left.(Int); ok {
		if r, ok := right.(Int); ok {
			return Int(l ^ r)
		}
	}
	return Nil{}
}

func LeftShift(left, right Value) Value {
	if l, ok := left.(Int); ok {
		if r, ok := right.(Int); ok {
			return Int(l << r)
		}
	}
	return Nil{}
}

func RightShift(left, right Value) Value {
	if l, ok := left.(Int); ok {
		if r, ok := right.(Int); ok {
			return Int(l >> r)
		}
	}
	return Nil{}
}

func Not(v Value) Value {
	return Bool(!Truthy(v))
}

// ErrOp wraps a value in Err. An Err passes through unchanged, so the
// operator is idempotent.
func ErrOp(v Value) Value {
	if _, ok := v.(Err); ok {
		return v
	}
	return Err{Inner: v}
}

func BoolOp(v Value) Value {
	return Bool(Truthy(v))
}

func IntOp(v Value) Value {
	switch n := v.(type) {
	case Bool:
		if n {
			return Int(1)
		}
		return Int(0)
	case Int:
		return n
	case Float:
		return Int(int64(n))
	case *Str:
		panic("unimplemented: int(str)")
	}
	return Nil{}
}

func FloatOp(v Value) Value {
	switch n := v.(type) {
	case Bool:
		if n {
			return Float(1)
		}
		return Float(0)
	case Int:
		return Float(n)
	case Float:
		return n
	case *Str:
		panic("unimplemented: float(str)")
	}
	return Nil{}
}

func StrOp(p *ir.Program, v Value) Value {
	return NewStr(Display(p, v))
}
