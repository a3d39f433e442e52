package interp

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"lume/internal/ir"
)

var log = commonlog.GetLogger("lume.interp")

// Plugin is a host-provided builtin. Plugins receive the unevaluated
// argument expressions so they decide what to evaluate; arity errors are
// theirs to report through the fatal path.
type Plugin func(p *ir.Program, s *State, parameters []ir.Expr) Value

// The plugin table is fixed at compile time; producers embed these indices
// in Plugin expression nodes.
var plugins = []Plugin{splitPlugin, uuidPlugin}

func pluginCall(p *ir.Program, s *State, id int, parameters []ir.Expr) Value {
	if id < 0 || id >= len(plugins) {
		s.Die(p, NewErr("UnknownPlugin"), nil)
		return Nil{}
	}
	log.Debugf("plugin %d dispatched with %d arguments", id, len(parameters))
	return plugins[id](p, s, parameters)
}

// splitPlugin cuts a string around a separator into a list of strings.
func splitPlugin(p *ir.Program, s *State, parameters []ir.Expr) Value {
	if len(parameters) != 2 {
		s.Die(p, NewErr("wrong number of arguments to split()"), nil)
	}
	str, ok := eval(p, s, parameters[0]).(*Str)
	if !ok {
		return Nil{}
	}
	separator, ok := eval(p, s, parameters[1]).(*Str)
	if !ok {
		return Nil{}
	}
	parts := strings.Split(str.S, separator.S)
	elems := make([]Value, len(parts))
	for i, part := range parts {
		elems[i] = NewStr(part)
	}
	return NewList(elems...)
}

// uuidPlugin returns a fresh random UUID as a string.
func uuidPlugin(p *ir.Program, s *State, parameters []ir.Expr) Value {
	if len(parameters) != 0 {
		s.Die(p, NewErr("wrong number of arguments to uuid()"), nil)
	}
	return NewStr(uuid.NewString())
}
