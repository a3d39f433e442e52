package ir

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Statement and expression nodes are internally tagged: a "type" field
// selects the variant, the remaining fields are the payload.

func (b *Block) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return errors.Wrap(err, "block")
	}
	stmts := make(Block, 0, len(raws))
	for _, raw := range raws {
		stmt, err := decodeStmt(raw)
		if err != nil {
			return err
		}
		stmts = append(stmts, stmt)
	}
	*b = stmts
	return nil
}

func nodeTag(data []byte) (string, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", errors.Wrap(err, "node tag")
	}
	if probe.Type == "" {
		return "", errors.New("node without type tag")
	}
	return probe.Type, nil
}

func decodeStmt(data []byte) (Stmt, error) {
	tag, err := nodeTag(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "While":
		var raw struct {
			Condition exprNode `json:"condition"`
			Block     Block    `json:"block"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &While{Condition: raw.Condition.Expr, Block: raw.Block}, nil
	case "DoWhile":
		var raw struct {
			Block     Block    `json:"block"`
			Condition exprNode `json:"condition"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &DoWhile{Block: raw.Block, Condition: raw.Condition.Expr}, nil
	case "ForLoop":
		var raw struct {
			Variable Reference `json:"variable"`
			Iterator exprNode  `json:"iterator"`
			Block    Block     `json:"block"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &ForLoop{Variable: raw.Variable, Iterator: raw.Iterator.Expr, Block: raw.Block}, nil
	case "Branch":
		var raw struct {
			Condition exprNode `json:"condition"`
			Then      Block    `json:"then"`
			Otherwise Block    `json:"otherwise"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &Branch{Condition: raw.Condition.Expr, Then: raw.Then, Otherwise: raw.Otherwise}, nil
	case "Return":
		var raw struct {
			Expr exprNode `json:"expr"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &Return{Expr: raw.Expr.Expr}, nil
	case "Expr":
		var raw struct {
			Expr exprNode `json:"expr"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &ExprStmt{Expr: raw.Expr.Expr}, nil
	default:
		return nil, errors.Errorf("unknown statement type %q", tag)
	}
}

// exprNode lets expression operands decode recursively through the standard
// json machinery.
type exprNode struct {
	Expr Expr
}

func (n *exprNode) UnmarshalJSON(data []byte) error {
	expr, err := decodeExpr(data)
	if err != nil {
		return err
	}
	n.Expr = expr
	return nil
}

func exprs(nodes []exprNode) []Expr {
	out := make([]Expr, len(nodes))
	for i, n := range nodes {
		out[i] = n.Expr
	}
	return out
}

func decodeExpr(data []byte) (Expr, error) {
	tag, err := nodeTag(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "Literal":
		var raw struct {
			Literal Literal `json:"literal"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &LiteralExpr{Literal: raw.Literal}, nil
	case "Reference":
		var raw struct {
			Reference Reference `json:"reference"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &RefExpr{Reference: raw.Reference}, nil
	case "UnaryOperation":
		var raw struct {
			Operator UnaryOp  `json:"operator"`
			Expr     exprNode `json:"expr"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &UnaryExpr{Operator: raw.Operator, Expr: raw.Expr.Expr}, nil
	case "BinaryOperation":
		var raw struct {
			Operator BinaryOp `json:"operator"`
			Left     exprNode `json:"left"`
			Right    exprNode `json:"right"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &BinaryExpr{Operator: raw.Operator, Left: raw.Left.Expr, Right: raw.Right.Expr}, nil
	case "TernaryOperation":
		var raw struct {
			Operator TernaryOp `json:"operator"`
			First    exprNode  `json:"first"`
			Second   exprNode  `json:"second"`
			Third    exprNode  `json:"third"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &TernaryExpr{Operator: raw.Operator, First: raw.First.Expr, Second: raw.Second.Expr, Third: raw.Third.Expr}, nil
	case "NaryOperation":
		var raw struct {
			Operator   NaryOp     `json:"operator"`
			Parameters []exprNode `json:"parameters"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &NaryExpr{Operator: raw.Operator, Parameters: exprs(raw.Parameters)}, nil
	case "Call":
		var raw struct {
			Callable   exprNode   `json:"callable"`
			Parameters []exprNode `json:"parameters"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &CallExpr{Callable: raw.Callable.Expr, Parameters: exprs(raw.Parameters)}, nil
	case "Plugin":
		var raw struct {
			ID         int        `json:"id"`
			Parameters []exprNode `json:"parameters"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &PluginExpr{ID: raw.ID, Parameters: exprs(raw.Parameters)}, nil
	case "Struct":
		var raw struct {
			Prototype int        `json:"prototype"`
			Values    []exprNode `json:"values"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &StructExpr{Prototype: raw.Prototype, Values: exprs(raw.Values)}, nil
	case "SetVar":
		var raw struct {
			Variable Reference `json:"variable"`
			Expr     exprNode  `json:"expr"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &SetVarExpr{Variable: raw.Variable, Expr: raw.Expr.Expr}, nil
	case "SetField":
		var raw struct {
			Instance exprNode `json:"instance"`
			FieldID  int      `json:"field_id"`
			Value    exprNode `json:"value"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &SetFieldExpr{Instance: raw.Instance.Expr, FieldID: raw.FieldID, Value: raw.Value.Expr}, nil
	case "GetField":
		var raw struct {
			Instance exprNode `json:"instance"`
			FieldID  int      `json:"field_id"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &GetFieldExpr{Instance: raw.Instance.Expr, FieldID: raw.FieldID}, nil
	case "Die":
		var raw struct {
			Expr  exprNode `json:"expr"`
			Range Range    `json:"range"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &DieExpr{Expr: raw.Expr.Expr, Range: raw.Range}, nil
	case "OrDie":
		var raw struct {
			Expr  exprNode `json:"expr"`
			Range Range    `json:"range"`
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Wrap(err, tag)
		}
		return &OrDieExpr{Expr: raw.Expr.Expr, Range: raw.Range}, nil
	default:
		return nil, errors.Errorf("unknown expression type %q", tag)
	}
}
