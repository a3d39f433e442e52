package interp

import (
	"lume/internal/ir"
)

// call runs one function invocation against the shared variable stack.
//
// The frame discipline: the new frame starts at the current stack top; the
// receiver (if any) binds to parameter 0; argument expressions evaluate
// BEFORE variablesBegin moves, so they observe the caller's frame; the
// remaining locals fill with Nil. On the way out the whole frame is
// truncated and the caller's base restored.
func call(p *ir.Program, s *State, functionID int, parameters []ir.Expr, self Value) (Value, bool) {
	function := &p.Functions[functionID]
	newBegin := len(s.variables)
	if self != nil {
		s.variables = append(s.variables, self)
	}
	for _, parameter := range parameters {
		v := eval(p, s, parameter)
		s.variables = append(s.variables, v)
	}
	for len(s.variables)-newBegin < len(function.Variables) {
		s.variables = append(s.variables, Nil{})
	}
	oldBegin := s.variablesBegin
	s.variablesBegin = newBegin
	ret, returned := execBlock(p, s, function.Body)
	s.variables = s.variables[:newBegin]
	s.variablesBegin = oldBegin
	return ret, returned
}

// evalCall dispatches the unified callable protocol: functions, bound
// methods, and structs whose prototype exposes __call__. Anything else is
// an Err value, not a termination.
func evalCall(p *ir.Program, s *State, e *ir.CallExpr) Value {
	switch callable := eval(p, s, e.Callable).(type) {
	case Function:
		ret, returned := call(p, s, int(callable), e.Parameters, nil)
		if !returned {
			return Nil{}
		}
		return ret
	case Method:
		ret, returned := call(p, s, callable.Function, e.Parameters, callable.Instance)
		if !returned {
			return Nil{}
		}
		return ret
	case *Struct:
		proto := &p.Prototypes[callable.Prototype]
		if fn, ok := proto.MethodMap[p.ReservedIdents.Call]; ok {
			ret, returned := call(p, s, fn, e.Parameters, callable)
			if !returned {
				return Nil{}
			}
			return ret
		}
		return NewErr("NotCallable")
	default:
		return NewErr("NotCallable")
	}
}

// CallByName locates a function by name and invokes it. The second result
// reports whether the function exists; the first is its return value, Nil
// when the body ran off the end.
func CallByName(p *ir.Program, s *State, name string, parameters []ir.Expr) (Value, bool) {
	for i := range p.Functions {
		if p.Functions[i].Name == name {
			ret, returned := call(p, s, i, parameters, nil)
			if !returned {
				ret = Nil{}
			}
			return ret, true
		}
	}
	return nil, false
}
