package interp

import (
	"lume/internal/ir"
)

// Expression and program builders shared by the interpreter tests.

func litInt(v int64) ir.Expr {
	return &ir.LiteralExpr{Literal: ir.Literal{Kind: ir.LitInt, Int: v}}
}

func litFloat(v float64) ir.Expr {
	return &ir.LiteralExpr{Literal: ir.Literal{Kind: ir.LitFloat, Float: v}}
}

func litStr(v string) ir.Expr {
	return &ir.LiteralExpr{Literal: ir.Literal{Kind: ir.LitStr, Str: v}}
}

func litBool(v bool) ir.Expr {
	return &ir.LiteralExpr{Literal: ir.Literal{Kind: ir.LitBool, Bool: v}}
}

func litNil() ir.Expr {
	return &ir.LiteralExpr{Literal: ir.Literal{Kind: ir.LitNil}}
}

func litIterEnd() ir.Expr {
	return &ir.LiteralExpr{Literal: ir.Literal{Kind: ir.LitIterEnd}}
}

func refVar(index int) ir.Expr {
	return &ir.RefExpr{Reference: ir.Reference{Kind: ir.RefVariable, Index: index}}
}

func refFunc(index int) ir.Expr {
	return &ir.RefExpr{Reference: ir.Reference{Kind: ir.RefFunction, Index: index}}
}

func unary(op ir.UnaryOp, expr ir.Expr) ir.Expr {
	return &ir.UnaryExpr{Operator: op, Expr: expr}
}

func binary(op ir.BinaryOp, left, right ir.Expr) ir.Expr {
	return &ir.BinaryExpr{Operator: op, Left: left, Right: right}
}

func setVar(index int, expr ir.Expr) ir.Expr {
	return &ir.SetVarExpr{Variable: ir.Reference{Kind: ir.RefVariable, Index: index}, Expr: expr}
}

func exprStmt(expr ir.Expr) ir.Stmt {
	return &ir.ExprStmt{Expr: expr}
}

func returnStmt(expr ir.Expr) ir.Stmt {
	return &ir.Return{Expr: expr}
}

// emptyProgram is enough for expression tests that never touch functions or
// prototypes.
func emptyProgram() *ir.Program {
	return &ir.Program{
		ReservedIdents: ir.ReservedIdents{Next: 0, Call: 1},
		IdentMap:       map[int]string{0: "next", 1: "__call__"},
	}
}

// Identifier ids used by rangeProgram and the struct tests.
const (
	identI    = 0
	identN    = 1
	identNext = 2
	identCall = 3
)

// rangeProgram builds the canonical iterator fixture: a Range prototype
// with fields {i, n} and a next method that yields i while i < n, plus a
// main that prints every yielded value, and a Counter prototype whose
// __call__ returns 42.
func rangeProgram() *ir.Program {
	selfField := func(id int) ir.Expr {
		return &ir.GetFieldExpr{Instance: refVar(0), FieldID: id}
	}
	next := ir.Function{
		Name:       "next",
		Parameters: []string{"self"},
		Variables:  []string{"self", "value"},
		Body: ir.Block{
			&ir.Branch{
				Condition: binary(ir.OpLt, selfField(identI), selfField(identN)),
				Then: ir.Block{
					exprStmt(setVar(1, selfField(identI))),
					exprStmt(&ir.SetFieldExpr{
						Instance: refVar(0),
						FieldID:  identI,
						Value:    binary(ir.OpAdd, selfField(identI), litInt(1)),
					}),
					returnStmt(refVar(1)),
				},
				Otherwise: ir.Block{},
			},
			returnStmt(litIterEnd()),
		},
	}
	answer := ir.Function{
		Name:       "answer",
		Parameters: []string{"self"},
		Variables:  []string{"self"},
		Body:       ir.Block{returnStmt(litInt(42))},
	}
	main := ir.Function{
		Name:       "main",
		Parameters: []string{},
		Variables:  []string{"x"},
		Body: ir.Block{
			&ir.ForLoop{
				Variable: ir.Reference{Kind: ir.RefVariable, Index: 0},
				Iterator: &ir.StructExpr{Prototype: 0, Values: []ir.Expr{litInt(0), litInt(3)}},
				Block: ir.Block{
					exprStmt(unary(ir.OpPrint, refVar(0))),
				},
			},
		},
	}
	return &ir.Program{
		Functions: []ir.Function{next, answer, main},
		Prototypes: []ir.Prototype{
			{
				Name:      "Range",
				FieldMap:  map[int]int{identI: 0, identN: 1},
				MethodMap: map[int]int{identNext: 0},
			},
			{
				Name:      "Counter",
				FieldMap:  map[int]int{},
				MethodMap: map[int]int{identCall: 1},
			},
		},
		IdentMap:       map[int]string{identI: "i", identN: "n", identNext: "next", identCall: "__call__"},
		ReservedIdents: ir.ReservedIdents{Next: identNext, Call: identCall},
		Files:          []string{"main.lm"},
	}
}
