package ir

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// LiteralKind tags the primitive a Literal carries.
type LiteralKind int

const (
	LitNil LiteralKind = iota
	LitIterEnd
	LitBool
	LitInt
	LitFloat
	LitStr
)

// Literal is a primitive constant embedded in the IR. On the wire the
// payload-free kinds are bare strings ("Nil", "IterEnd") and the rest are
// single-key objects ({"Int": 5}).
type Literal struct {
	Kind  LiteralKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

func (l *Literal) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err == nil {
		switch tag {
		case "Nil":
			l.Kind = LitNil
		case "IterEnd":
			l.Kind = LitIterEnd
		default:
			return errors.Errorf("unknown literal %q", tag)
		}
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(err, "literal")
	}
	for key, raw := range obj {
		switch key {
		case "Bool":
			l.Kind = LitBool
			return json.Unmarshal(raw, &l.Bool)
		case "Int":
			l.Kind = LitInt
			return json.Unmarshal(raw, &l.Int)
		case "Float":
			l.Kind = LitFloat
			return json.Unmarshal(raw, &l.Float)
		case "Str":
			l.Kind = LitStr
			return json.Unmarshal(raw, &l.Str)
		default:
			return errors.Errorf("unknown literal %q", key)
		}
	}
	return errors.New("empty literal")
}

func (r *Reference) UnmarshalJSON(data []byte) error {
	var obj map[string]int
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.Wrap(err, "reference")
	}
	for key, index := range obj {
		switch key {
		case "Variable":
			r.Kind = RefVariable
		case "Function":
			r.Kind = RefFunction
		default:
			return errors.Errorf("unknown reference %q", key)
		}
		r.Index = index
		return nil
	}
	return errors.New("empty reference")
}
