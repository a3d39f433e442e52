package ir

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("lume.ir")

// LoadFile reads and decodes a serialised program. Malformed input is
// rejected before any execution happens.
func LoadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read program")
	}
	return Load(data)
}

// Load decodes and validates a serialised program.
func Load(data []byte) (*Program, error) {
	var program Program
	if err := json.Unmarshal(data, &program); err != nil {
		return nil, errors.Wrap(err, "decode program")
	}
	if err := program.validate(); err != nil {
		return nil, err
	}
	log.Debugf("loaded program: %d functions, %d prototypes, %d files",
		len(program.Functions), len(program.Prototypes), len(program.Files))
	return &program, nil
}

// validate checks the index invariants the interpreter relies on: every
// variable reference fits its function's frame, and every function,
// prototype and field index is in range.
func (p *Program) validate() error {
	for i := range p.Prototypes {
		proto := &p.Prototypes[i]
		for id, slot := range proto.FieldMap {
			if slot < 0 || slot >= len(proto.FieldMap) {
				return errors.Errorf("prototype %s: field %d out of range", proto.Name, id)
			}
		}
		for id, fn := range proto.MethodMap {
			if fn < 0 || fn >= len(p.Functions) {
				return errors.Errorf("prototype %s: method %d references function %d", proto.Name, id, fn)
			}
		}
	}
	for i := range p.Functions {
		fn := &p.Functions[i]
		if len(fn.Parameters) > len(fn.Variables) {
			return errors.Errorf("function %s: more parameters than variables", fn.Name)
		}
		if err := p.validateBlock(fn, fn.Body); err != nil {
			return errors.Wrapf(err, "function %s", fn.Name)
		}
	}
	return nil
}

func (p *Program) validateBlock(fn *Function, block Block) error {
	for _, stmt := range block {
		if err := p.validateStmt(fn, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (p *Program) validateRef(fn *Function, ref Reference) error {
	switch ref.Kind {
	case RefVariable:
		if ref.Index < 0 || ref.Index >= len(fn.Variables) {
			return errors.Errorf("variable reference %d out of range", ref.Index)
		}
	case RefFunction:
		if ref.Index < 0 || ref.Index >= len(p.Functions) {
			return errors.Errorf("function reference %d out of range", ref.Index)
		}
	}
	return nil
}

func (p *Program) validateStmt(fn *Function, stmt Stmt) error {
	switch s := stmt.(type) {
	case *While:
		if err := p.validateExpr(fn, s.Condition); err != nil {
			return err
		}
		return p.validateBlock(fn, s.Block)
	case *DoWhile:
		if err := p.validateBlock(fn, s.Block); err != nil {
			return err
		}
		return p.validateExpr(fn, s.Condition)
	case *ForLoop:
		if s.Variable.Kind != RefVariable {
			return errors.New("for loop variable must reference a variable")
		}
		if err := p.validateRef(fn, s.Variable); err != nil {
			return err
		}
		if err := p.validateExpr(fn, s.Iterator); err != nil {
			return err
		}
		return p.validateBlock(fn, s.Block)
	case *Branch:
		if err := p.validateExpr(fn, s.Condition); err != nil {
			return err
		}
		if err := p.validateBlock(fn, s.Then); err != nil {
			return err
		}
		return p.validateBlock(fn, s.Otherwise)
	case *Return:
		return p.validateExpr(fn, s.Expr)
	case *ExprStmt:
		return p.validateExpr(fn, s.Expr)
	default:
		return errors.Errorf("unknown statement %T", stmt)
	}
}

func (p *Program) validateExpr(fn *Function, expr Expr) error {
	switch e := expr.(type) {
	case *LiteralExpr:
		return nil
	case *RefExpr:
		return p.validateRef(fn, e.Reference)
	case *UnaryExpr:
		return p.validateExpr(fn, e.Expr)
	case *BinaryExpr:
		if err := p.validateExpr(fn, e.Left); err != nil {
			return err
		}
		return p.validateExpr(fn, e.Right)
	case *TernaryExpr:
		if err := p.validateExpr(fn, e.First); err != nil {
			return err
		}
		if err := p.validateExpr(fn, e.Second); err != nil {
			return err
		}
		return p.validateExpr(fn, e.Third)
	case *NaryExpr:
		return p.validateExprs(fn, e.Parameters)
	case *CallExpr:
		if err := p.validateExpr(fn, e.Callable); err != nil {
			return err
		}
		return p.validateExprs(fn, e.Parameters)
	case *PluginExpr:
		return p.validateExprs(fn, e.Parameters)
	case *StructExpr:
		if e.Prototype < 0 || e.Prototype >= len(p.Prototypes) {
			return errors.Errorf("prototype reference %d out of range", e.Prototype)
		}
		if len(e.Values) != len(p.Prototypes[e.Prototype].FieldMap) {
			return errors.Errorf("struct literal for %s has %d values, prototype has %d fields",
				p.Prototypes[e.Prototype].Name, len(e.Values), len(p.Prototypes[e.Prototype].FieldMap))
		}
		return p.validateExprs(fn, e.Values)
	case *SetVarExpr:
		if e.Variable.Kind != RefVariable {
			return errors.New("assignment target must reference a variable")
		}
		if err := p.validateRef(fn, e.Variable); err != nil {
			return err
		}
		return p.validateExpr(fn, e.Expr)
	case *SetFieldExpr:
		if err := p.validateExpr(fn, e.Instance); err != nil {
			return err
		}
		return p.validateExpr(fn, e.Value)
	case *GetFieldExpr:
		return p.validateExpr(fn, e.Instance)
	case *DieExpr:
		return p.validateExpr(fn, e.Expr)
	case *OrDieExpr:
		return p.validateExpr(fn, e.Expr)
	default:
		return errors.Errorf("unknown expression %T", expr)
	}
}

func (p *Program) validateExprs(fn *Function, list []Expr) error {
	for _, e := range list {
		if err := p.validateExpr(fn, e); err != nil {
			return err
		}
	}
	return nil
}
