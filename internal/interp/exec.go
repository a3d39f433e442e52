package interp

import (
	"lume/internal/ir"
)

// execBlock runs statements in order. The first statement that produces a
// return value short-circuits the rest; returned reports whether that
// happened.
func execBlock(p *ir.Program, s *State, block ir.Block) (ret Value, returned bool) {
	for _, stmt := range block {
		if ret, returned = execStmt(p, s, stmt); returned {
			return ret, true
		}
	}
	return nil, false
}

func execStmt(p *ir.Program, s *State, stmt ir.Stmt) (Value, bool) {
	switch st := stmt.(type) {
	case *ir.While:
		for Truthy(eval(p, s, st.Condition)) {
			if ret, returned := execBlock(p, s, st.Block); returned {
				return ret, true
			}
		}
	case *ir.DoWhile:
		for {
			if ret, returned := execBlock(p, s, st.Block); returned {
				return ret, true
			}
			if !Truthy(eval(p, s, st.Condition)) {
				break
			}
		}
	case *ir.ForLoop:
		return execForLoop(p, s, st)
	case *ir.Branch:
		if Truthy(eval(p, s, st.Condition)) {
			return execBlock(p, s, st.Then)
		}
		return execBlock(p, s, st.Otherwise)
	case *ir.Return:
		return eval(p, s, st.Expr), true
	case *ir.ExprStmt:
		eval(p, s, st.Expr)
	}
	return nil, false
}

// execForLoop drives the iterator protocol: look up the reserved next
// identifier on the iterator, call the bound method with no arguments, and
// stop on the IterEnd sentinel. Each yielded value lands in the loop
// variable before the body runs.
func execForLoop(p *ir.Program, s *State, loop *ir.ForLoop) (Value, bool) {
	iterator := eval(p, s, loop.Iterator)
	for {
		next, ok := GetField(p, iterator, p.ReservedIdents.Next).(Method)
		if !ok {
			s.Die(p, NewErr("NotIterable"), nil)
			return nil, false
		}
		v, returned := call(p, s, next.Function, nil, next.Instance)
		if !returned {
			v = Nil{}
		}
		if _, end := v.(IterEnd); end {
			return nil, false
		}
		s.setVariable(loop.Variable.Index, v)
		if ret, returned := execBlock(p, s, loop.Block); returned {
			return ret, true
		}
	}
}
