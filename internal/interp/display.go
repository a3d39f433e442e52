package interp

import (
	"strconv"
	"strings"

	"lume/internal/ir"
)

// Display produces the conventional rendering of a value: strings quoted,
// lists bracketed, structs as Name {field = value, ...} in the prototype's
// field order.
func Display(p *ir.Program, v Value) string {
	var b strings.Builder
	writeValue(p, &b, v)
	return b.String()
}

func writeValue(p *ir.Program, b *strings.Builder, v Value) {
	switch val := v.(type) {
	case Nil:
		b.WriteString("nil")
	case IterEnd:
		b.WriteString("iterend")
	case Bool:
		if val {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case Err:
		b.WriteString("err(")
		writeValue(p, b, val.Inner)
		b.WriteString(")")
	case Int:
		b.WriteString(strconv.FormatInt(int64(val), 10))
	case Float:
		b.WriteString(strconv.FormatFloat(float64(val), 'g', -1, 64))
	case *Str:
		b.WriteString("\"")
		b.WriteString(val.S)
		b.WriteString("\"")
	case *List:
		b.WriteString("[")
		for i, elem := range val.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			writeValue(p, b, elem)
		}
		b.WriteString("]")
	case *Struct:
		proto := &p.Prototypes[val.Prototype]
		b.WriteString(proto.Name)
		b.WriteString(" {")
		for i, id := range proto.SortedFieldIDs() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.IdentMap[id])
			b.WriteString(" = ")
			writeValue(p, b, val.Values[proto.FieldMap[id]])
		}
		b.WriteString("}")
	case Function:
		b.WriteString(p.Functions[val].Name)
		b.WriteString("()")
	case Method:
		b.WriteString(p.Functions[val.Function].Name)
		b.WriteString("(bound)")
	}
}

// Type-name cells are shared so repeated type queries alias one allocation.
var (
	typeNameNil      = NewStr("nil")
	typeNameIterEnd  = NewStr("iterend")
	typeNameErr      = NewStr("err")
	typeNameBool     = NewStr("bool")
	typeNameInt      = NewStr("int")
	typeNameFloat    = NewStr("float")
	typeNameStr      = NewStr("str")
	typeNameList     = NewStr("list")
	typeNameFunction = NewStr("function")
)

// TypeName names the value's variant; structs report their prototype name.
func TypeName(p *ir.Program, v Value) Value {
	switch val := v.(type) {
	case Nil:
		return typeNameNil
	case IterEnd:
		return typeNameIterEnd
	case Err:
		return typeNameErr
	case Bool:
		return typeNameBool
	case Int:
		return typeNameInt
	case Float:
		return typeNameFloat
	case *Str:
		return typeNameStr
	case *List:
		return typeNameList
	case *Struct:
		return NewStr(p.Prototypes[val.Prototype].Name)
	case Function, Method:
		return typeNameFunction
	}
	return typeNameNil
}
