package ir

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Operator enums are encoded by name on the wire ("Add", "GetItem", ...).

type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpBitNot
	OpMinus
	OpType
	OpErr
	OpBool
	OpInt
	OpFloat
	OpStr
	OpLen
	OpPrint
	OpRead
)

var unaryOpNames = map[string]UnaryOp{
	"Not":    OpNot,
	"BitNot": OpBitNot,
	"Minus":  OpMinus,
	"Type":   OpType,
	"Err":    OpErr,
	"Bool":   OpBool,
	"Int":    OpInt,
	"Float":  OpFloat,
	"Str":    OpStr,
	"Len":    OpLen,
	"Print":  OpPrint,
	"Read":   OpRead,
}

type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpModulo
	OpGetItem
	OpEq
	OpIs
	OpLt
	OpLeq
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLeftShift
	OpRightShift
	OpAnd
	OpOr
	OpPush
	OpRemove
	OpIndex
	OpJoin
	OpWrite
)

var binaryOpNames = map[string]BinaryOp{
	"Add":        OpAdd,
	"Sub":        OpSub,
	"Mul":        OpMul,
	"Div":        OpDiv,
	"Modulo":     OpModulo,
	"GetItem":    OpGetItem,
	"Eq":         OpEq,
	"Is":         OpIs,
	"Lt":         OpLt,
	"Leq":        OpLeq,
	"BitAnd":     OpBitAnd,
	"BitOr":      OpBitOr,
	"BitXor":     OpBitXor,
	"LeftShift":  OpLeftShift,
	"RightShift": OpRightShift,
	"And":        OpAnd,
	"Or":         OpOr,
	"Push":       OpPush,
	"Remove":     OpRemove,
	"Index":      OpIndex,
	"Join":       OpJoin,
	"Write":      OpWrite,
}

type TernaryOp int

const (
	OpBranch TernaryOp = iota
	OpSetItem
)

var ternaryOpNames = map[string]TernaryOp{
	"Branch":  OpBranch,
	"SetItem": OpSetItem,
}

type NaryOp int

const (
	OpList NaryOp = iota
)

var naryOpNames = map[string]NaryOp{
	"List": OpList,
}

func decodeOpName[T any](data []byte, names map[string]T, kind string) (T, error) {
	var zero T
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return zero, errors.Wrapf(err, "%s operator", kind)
	}
	op, ok := names[name]
	if !ok {
		return zero, errors.Errorf("unknown %s operator %q", kind, name)
	}
	return op, nil
}

func (op *UnaryOp) UnmarshalJSON(data []byte) (err error) {
	*op, err = decodeOpName(data, unaryOpNames, "unary")
	return
}

func (op *BinaryOp) UnmarshalJSON(data []byte) (err error) {
	*op, err = decodeOpName(data, binaryOpNames, "binary")
	return
}

func (op *TernaryOp) UnmarshalJSON(data []byte) (err error) {
	*op, err = decodeOpName(data, ternaryOpNames, "ternary")
	return
}

func (op *NaryOp) UnmarshalJSON(data []byte) (err error) {
	*op, err = decodeOpName(data, naryOpNames, "nary")
	return
}
