package interp

import (
	"lume/internal/ir"
)

// eval evaluates one expression. Sub-expressions evaluate strictly left to
// right; only And, Or and the branch ternary short-circuit.
func eval(p *ir.Program, s *State, expr ir.Expr) Value {
	switch e := expr.(type) {
	case *ir.LiteralExpr:
		return literalValue(e.Literal)
	case *ir.RefExpr:
		switch e.Reference.Kind {
		case ir.RefVariable:
			return s.getVariable(e.Reference.Index)
		default:
			return Function(e.Reference.Index)
		}
	case *ir.UnaryExpr:
		return evalUnary(p, s, e)
	case *ir.BinaryExpr:
		return evalBinary(p, s, e)
	case *ir.TernaryExpr:
		switch e.Operator {
		case ir.OpBranch:
			if Truthy(eval(p, s, e.First)) {
				return eval(p, s, e.Second)
			}
			return eval(p, s, e.Third)
		default:
			return SetItem(eval(p, s, e.First), eval(p, s, e.Second), eval(p, s, e.Third))
		}
	case *ir.NaryExpr:
		// List is the only n-ary operator.
		elems := make([]Value, len(e.Parameters))
		for i, param := range e.Parameters {
			elems[i] = eval(p, s, param)
		}
		return NewList(elems...)
	case *ir.CallExpr:
		return evalCall(p, s, e)
	case *ir.PluginExpr:
		return pluginCall(p, s, e.ID, e.Parameters)
	case *ir.StructExpr:
		values := make([]Value, len(e.Values))
		for i, value := range e.Values {
			values[i] = eval(p, s, value)
		}
		return &Struct{Prototype: e.Prototype, Values: values}
	case *ir.SetVarExpr:
		value := eval(p, s, e.Expr)
		s.setVariable(e.Variable.Index, value)
		return value
	case *ir.SetFieldExpr:
		return evalSetField(p, s, e)
	case *ir.GetFieldExpr:
		return GetField(p, eval(p, s, e.Instance), e.FieldID)
	case *ir.DieExpr:
		v := eval(p, s, e.Expr)
		if _, ok := v.(Err); !ok {
			v = Err{Inner: v}
		}
		s.Die(p, v, &e.Range)
		return Nil{}
	case *ir.OrDieExpr:
		return OrDie(p, s, eval(p, s, e.Expr), &e.Range)
	}
	return Nil{}
}

// literalValue materialises a literal. String literals allocate a fresh
// cell per evaluation, so repeated evaluations are distinct allocations
// under the identity operator.
func literalValue(lit ir.Literal) Value {
	switch lit.Kind {
	case ir.LitNil:
		return Nil{}
	case ir.LitIterEnd:
		return IterEnd{}
	case ir.LitBool:
		return Bool(lit.Bool)
	case ir.LitInt:
		return Int(lit.Int)
	case ir.LitFloat:
		return Float(lit.Float)
	default:
		return NewStr(lit.Str)
	}
}

func evalUnary(p *ir.Program, s *State, e *ir.UnaryExpr) Value {
	switch e.Operator {
	case ir.OpNot:
		return Not(eval(p, s, e.Expr))
	case ir.OpBitNot:
		return BitNot(eval(p, s, e.Expr))
	case ir.OpMinus:
		return Minus(eval(p, s, e.Expr))
	case ir.OpType:
		return TypeName(p, eval(p, s, e.Expr))
	case ir.OpErr:
		return ErrOp(eval(p, s, e.Expr))
	case ir.OpBool:
		return BoolOp(eval(p, s, e.Expr))
	case ir.OpInt:
		return IntOp(eval(p, s, e.Expr))
	case ir.OpFloat:
		return FloatOp(eval(p, s, e.Expr))
	case ir.OpStr:
		return StrOp(p, eval(p, s, e.Expr))
	case ir.OpLen:
		return Len(eval(p, s, e.Expr))
	case ir.OpPrint:
		return Print(p, s.Out, eval(p, s, e.Expr))
	default:
		return Read(eval(p, s, e.Expr))
	}
}

func evalBinary(p *ir.Program, s *State, e *ir.BinaryExpr) Value {
	switch e.Operator {
	case ir.OpAnd:
		// Value-propagating short circuit: the first operand when falsy,
		// else the second.
		cond := eval(p, s, e.Left)
		if Truthy(cond) {
			return eval(p, s, e.Right)
		}
		return cond
	case ir.OpOr:
		cond := eval(p, s, e.Left)
		if Truthy(cond) {
			return cond
		}
		return eval(p, s, e.Right)
	}
	left := eval(p, s, e.Left)
	right := eval(p, s, e.Right)
	switch e.Operator {
	case ir.OpAdd:
		return Add(left, right)
	case ir.OpSub:
		return Sub(left, right)
	case ir.OpMul:
		return Mul(left, right)
	case ir.OpDiv:
		return Div(left, right)
	case ir.OpModulo:
		return Modulo(left, right)
	case ir.OpGetItem:
		return GetItem(left, right)
	case ir.OpEq:
		return Bool(Eq(left, right))
	case ir.OpIs:
		return Bool(Is(left, right))
	case ir.OpLt:
		return Lt(left, right)
	case ir.OpLeq:
		return Leq(left, right)
	case ir.OpBitAnd:
		return BitAnd(left, right)
	case ir.OpBitOr:
		return BitOr(left, right)
	case ir.OpBitXor:
		return BitXor(left, right)
	case ir.OpLeftShift:
		return LeftShift(left, right)
	case ir.OpRightShift:
		return RightShift(left, right)
	case ir.OpPush:
		return Push(left, right)
	case ir.OpRemove:
		return Remove(left, right)
	case ir.OpIndex:
		return Index(left, right)
	case ir.OpJoin:
		return Join(p, left, right)
	default:
		return Write(left, right)
	}
}

func evalSetField(p *ir.Program, s *State, e *ir.SetFieldExpr) Value {
	target := eval(p, s, e.Instance)
	value := eval(p, s, e.Value)
	if instance, ok := target.(*Struct); ok {
		proto := &p.Prototypes[instance.Prototype]
		if slot, ok := proto.FieldMap[e.FieldID]; ok {
			instance.Values[slot] = value
		}
	}
	// Assignment to a non-struct target is silently ignored.
	return value
}

// GetField resolves an identifier on a value. On structs a field hit wins
// over a method hit; a method hit binds the instance; a miss is an Err
// value. Non-struct receivers yield Nil.
func GetField(p *ir.Program, v Value, fieldID int) Value {
	instance, ok := v.(*Struct)
	if !ok {
		return Nil{}
	}
	proto := &p.Prototypes[instance.Prototype]
	if slot, ok := proto.FieldMap[fieldID]; ok {
		return instance.Values[slot]
	}
	if fn, ok := proto.MethodMap[fieldID]; ok {
		return Method{Function: fn, Instance: instance}
	}
	return NewErr("FieldDoesNotExist")
}

// OrDie promotes an Err value to a fatal; any other value passes through.
func OrDie(p *ir.Program, s *State, v Value, rng *ir.Range) Value {
	if _, ok := v.(Err); ok {
		s.Die(p, v, rng)
	}
	return v
}
