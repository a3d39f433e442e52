package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lume/internal/ir"
)

func runMain(t *testing.T, p *ir.Program) (string, *State) {
	t.Helper()
	s := testState(0)
	_, found := CallByName(p, s, "main", nil)
	require.True(t, found, "program must define main")
	return s.Out.(*bytes.Buffer).String(), s
}

func TestWhileLoop(t *testing.T) {
	p := emptyProgram()
	p.Functions = []ir.Function{{
		Name:      "main",
		Variables: []string{"i"},
		Body: ir.Block{
			exprStmt(setVar(0, litInt(0))),
			&ir.While{
				Condition: binary(ir.OpLt, refVar(0), litInt(3)),
				Block: ir.Block{
					exprStmt(unary(ir.OpPrint, refVar(0))),
					exprStmt(setVar(0, binary(ir.OpAdd, refVar(0), litInt(1)))),
				},
			},
		},
	}}
	out, s := runMain(t, p)
	assert.Equal(t, "0\n1\n2\n", out)
	assert.Zero(t, s.Depth(), "stack is empty at exit")
}

func TestDoWhileRunsAtLeastOnce(t *testing.T) {
	p := emptyProgram()
	p.Functions = []ir.Function{{
		Name:      "main",
		Variables: []string{},
		Body: ir.Block{
			&ir.DoWhile{
				Block:     ir.Block{exprStmt(unary(ir.OpPrint, litStr("once")))},
				Condition: litBool(false),
			},
		},
	}}
	out, _ := runMain(t, p)
	assert.Equal(t, "\"once\"\n", out)
}

func TestBranchEvaluatesExactlyOneArm(t *testing.T) {
	p := emptyProgram()
	p.Functions = []ir.Function{{
		Name:      "main",
		Variables: []string{},
		Body: ir.Block{
			&ir.Branch{
				Condition: unary(ir.OpErr, litStr("x")),
				Then:      ir.Block{exprStmt(unary(ir.OpPrint, litStr("t")))},
				Otherwise: ir.Block{exprStmt(unary(ir.OpPrint, litStr("f")))},
			},
		},
	}}
	out, _ := runMain(t, p)
	assert.Equal(t, "\"f\"\n", out, "errors are falsy")
}

func TestReturnShortCircuitsBlock(t *testing.T) {
	p := emptyProgram()
	p.Functions = []ir.Function{{
		Name:      "main",
		Variables: []string{},
		Body: ir.Block{
			&ir.Branch{
				Condition: litBool(true),
				Then:      ir.Block{returnStmt(litInt(1))},
				Otherwise: ir.Block{},
			},
			exprStmt(unary(ir.OpPrint, litStr("unreachable"))),
		},
	}}
	s := testState(0)
	ret, found := CallByName(p, s, "main", nil)
	require.True(t, found)
	assert.Equal(t, Int(1), ret, "return bubbles out through nested blocks")
	assert.Empty(t, s.Out.(*bytes.Buffer).String())
}

func TestEmptyBodyReturnsNil(t *testing.T) {
	p := emptyProgram()
	p.Functions = []ir.Function{{Name: "main", Variables: []string{}, Body: ir.Block{}}}
	s := testState(0)
	ret, found := CallByName(p, s, "main", nil)
	require.True(t, found)
	assert.Equal(t, Nil{}, ret, "running off the end yields nil")
}

func TestIteratorProtocol(t *testing.T) {
	out, s := runMain(t, rangeProgram())
	assert.Equal(t, "0\n1\n2\n", out, "for drives next() until IterEnd")
	assert.Zero(t, s.Depth())
}

func TestForLoopPropagatesReturn(t *testing.T) {
	p := rangeProgram()
	// Replace main: return the first yielded value.
	p.Functions[2].Body = ir.Block{
		&ir.ForLoop{
			Variable: ir.Reference{Kind: ir.RefVariable, Index: 0},
			Iterator: &ir.StructExpr{Prototype: 0, Values: []ir.Expr{litInt(7), litInt(9)}},
			Block:    ir.Block{returnStmt(refVar(0))},
		},
	}
	s := testState(0)
	ret, found := CallByName(p, s, "main", nil)
	require.True(t, found)
	assert.Equal(t, Int(7), ret)
	assert.Zero(t, s.Depth())
}

func TestSharedListMutation(t *testing.T) {
	// a = [1]; b = a; push(b, 2); print(len(a)) -> 2
	p := emptyProgram()
	p.Functions = []ir.Function{{
		Name:      "main",
		Variables: []string{"a", "b"},
		Body: ir.Block{
			exprStmt(setVar(0, &ir.NaryExpr{Operator: ir.OpList, Parameters: []ir.Expr{litInt(1)}})),
			exprStmt(setVar(1, refVar(0))),
			exprStmt(binary(ir.OpPush, refVar(1), litInt(2))),
			exprStmt(unary(ir.OpPrint, unary(ir.OpLen, refVar(0)))),
		},
	}}
	out, _ := runMain(t, p)
	assert.Equal(t, "2\n", out, "both names alias one list cell")
}

func TestRecursionPreservesFrames(t *testing.T) {
	// fact(n) = n < 2 ? 1 : n * fact(n - 1)
	p := emptyProgram()
	fact := ir.Function{
		Name:       "fact",
		Parameters: []string{"n"},
		Variables:  []string{"n"},
		Body: ir.Block{
			&ir.Branch{
				Condition: binary(ir.OpLt, refVar(0), litInt(2)),
				Then:      ir.Block{returnStmt(litInt(1))},
				Otherwise: ir.Block{
					returnStmt(binary(ir.OpMul, refVar(0), &ir.CallExpr{
						Callable:   refFunc(0),
						Parameters: []ir.Expr{binary(ir.OpSub, refVar(0), litInt(1))},
					})),
				},
			},
		},
	}
	main := ir.Function{
		Name:      "main",
		Variables: []string{},
		Body: ir.Block{
			returnStmt(&ir.CallExpr{Callable: refFunc(0), Parameters: []ir.Expr{litInt(5)}}),
		},
	}
	p.Functions = []ir.Function{fact, main}
	s := testState(0)
	ret, found := CallByName(p, s, "main", nil)
	require.True(t, found)
	assert.Equal(t, Int(120), ret)
	assert.Zero(t, s.Depth(), "every frame was truncated on the way out")
}

func TestArgumentsEvaluateInCallerFrame(t *testing.T) {
	// main: x = 9; return id(x + 1)
	p := emptyProgram()
	id := ir.Function{
		Name:       "id",
		Parameters: []string{"v"},
		Variables:  []string{"v"},
		Body:       ir.Block{returnStmt(refVar(0))},
	}
	main := ir.Function{
		Name:      "main",
		Variables: []string{"x"},
		Body: ir.Block{
			exprStmt(setVar(0, litInt(9))),
			returnStmt(&ir.CallExpr{
				Callable:   refFunc(0),
				Parameters: []ir.Expr{binary(ir.OpAdd, refVar(0), litInt(1))},
			}),
		},
	}
	p.Functions = []ir.Function{id, main}
	s := testState(0)
	ret, _ := CallByName(p, s, "main", nil)
	assert.Equal(t, Int(10), ret, "argument expressions observe the caller's locals")
}

func TestArithmeticPromotionEndToEnd(t *testing.T) {
	p := emptyProgram()
	p.Functions = []ir.Function{{
		Name:      "main",
		Variables: []string{},
		Body: ir.Block{
			exprStmt(unary(ir.OpPrint, binary(ir.OpAdd, litInt(1), litFloat(2.5)))),
		},
	}}
	out, _ := runMain(t, p)
	assert.Equal(t, "3.5\n", out)
}

func TestLoadedProgramRuns(t *testing.T) {
	source := `{
		"functions": [{
			"name": "main",
			"parameters": [],
			"variables": ["parts"],
			"body": [
				{"type": "Expr", "expr": {"type": "SetVar", "variable": {"Variable": 0},
					"expr": {"type": "Plugin", "id": 0, "parameters": [
						{"type": "Literal", "literal": {"Str": "a,b,c"}},
						{"type": "Literal", "literal": {"Str": ","}}
					]}}},
				{"type": "Expr", "expr": {"type": "UnaryOperation", "operator": "Print",
					"expr": {"type": "BinaryOperation", "operator": "Join",
						"left": {"type": "Reference", "reference": {"Variable": 0}},
						"right": {"type": "Literal", "literal": {"Str": "-"}}}}},
				{"type": "Return", "expr": {"type": "Literal", "literal": "Nil"}}
			]
		}],
		"prototypes": [],
		"ident_map": {},
		"reserved_idents": {"next": 0, "__call__": 1},
		"files": []
	}`
	p, err := ir.Load([]byte(source))
	require.NoError(t, err)
	out, s := runMain(t, p)
	assert.Equal(t, "\"a-b-c\"\n", out)
	assert.Zero(t, s.Depth())
}
