package ir

import "sort"

// The IR is the pre-serialised form a producer ships programs in. Everything
// in this package is immutable after load and shared read-only by the
// interpreter.

// Program holds the immutable data of a loaded program.
type Program struct {
	Functions      []Function     `json:"functions"`
	Prototypes     []Prototype    `json:"prototypes"`
	IdentMap       map[int]string `json:"ident_map"`
	ReservedIdents ReservedIdents `json:"reserved_idents"`
	Files          []string       `json:"files"`
}

// ReservedIdents names the identifiers the interpreter looks up by
// well-known id: "next" drives the iterator protocol, "__call__" makes a
// struct callable.
type ReservedIdents struct {
	Next int `json:"next"`
	Call int `json:"__call__"`
}

// Range locates a token in a source file, for diagnostics only. Line and
// Col are 0-indexed.
type Range struct {
	File int `json:"file"`
	Line int `json:"line"`
	Col  int `json:"col"`
	Len  int `json:"len"`
}

// Prototype is the shape of a struct: a field map from ident id to a dense
// slot index, and a method map from ident id to a function index.
type Prototype struct {
	Name      string      `json:"name"`
	FieldMap  map[int]int `json:"field_map"`
	MethodMap map[int]int `json:"method_map"`
}

// SortedFieldIDs returns the field ident ids in ascending order. The
// producer serialises field_map as an ordered map, so ascending id order is
// the prototype's declaration order.
func (p *Prototype) SortedFieldIDs() []int {
	ids := make([]int, 0, len(p.FieldMap))
	for id := range p.FieldMap {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Function is one callable unit. Variables holds all locals; the first
// len(Parameters) entries are the parameters in order.
type Function struct {
	Name       string   `json:"name"`
	Parameters []string `json:"parameters"`
	Variables  []string `json:"variables"`
	Body       Block    `json:"body"`
}
