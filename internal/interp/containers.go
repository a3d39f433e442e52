package interp

import (
	"strings"

	"lume/internal/ir"
)

// Container operators. Negative indexes count from the end: an index i < 0
// addresses position len+i.

func normalizeIndex(index int64, length int) (int, bool) {
	if index < 0 {
		index += int64(length)
	}
	if index < 0 || index >= int64(length) {
		return 0, false
	}
	return int(index), true
}

func GetItem(container, key Value) Value {
	switch c := container.(type) {
	case *Str:
		if index, ok := key.(Int); ok {
			runes := []rune(c.S)
			if i, ok := normalizeIndex(int64(index), len(runes)); ok {
				return NewStr(string(runes[i]))
			}
		}
	case *List:
		if index, ok := key.(Int); ok {
			if i, ok := normalizeIndex(int64(index), len(c.Elems)); ok {
				return c.Elems[i]
			}
		}
	}
	return Nil{}
}

// SetItem assigns in place. Out-of-range indexes and wrong key types are a
// silent no-op.
func SetItem(container, key, item Value) Value {
	if list, ok := container.(*List); ok {
		if index, ok := key.(Int); ok {
			if i, ok := normalizeIndex(int64(index), len(list.Elems)); ok {
				list.Elems[i] = item
			}
		}
	}
	return Nil{}
}

// Len counts characters for strings and elements for lists.
func Len(v Value) Value {
	switch c := v.(type) {
	case *Str:
		return Int(len([]rune(c.S)))
	case *List:
		return Int(len(c.Elems))
	}
	return Nil{}
}

func Push(container, v Value) Value {
	if list, ok := container.(*List); ok {
		list.Elems = append(list.Elems, v)
	}
	return Nil{}
}

// Remove deletes the element at the given index in place and returns it,
// or Nil when the index is out of range.
func Remove(container, key Value) Value {
	index, ok := key.(Int)
	if !ok {
		return Nil{}
	}
	list, ok := container.(*List)
	if !ok {
		return Nil{}
	}
	i, ok := normalizeIndex(int64(index), len(list.Elems))
	if !ok {
		return Nil{}
	}
	removed := list.Elems[i]
	list.Elems = append(list.Elems[:i], list.Elems[i+1:]...)
	return removed
}

// Index finds the first occurrence: a byte offset for substring search, an
// element position for lists. Absent yields Nil.
func Index(haystack, needle Value) Value {
	switch h := haystack.(type) {
	case *Str:
		if sub, ok := needle.(*Str); ok {
			if i := strings.Index(h.S, sub.S); i >= 0 {
				return Int(i)
			}
		}
		return Nil{}
	case *List:
		for i, elem := range h.Elems {
			if Eq(elem, needle) {
				return Int(i)
			}
		}
	}
	return Nil{}
}

// Join renders each element with the separator interposed. String elements
// contribute their raw contents, so joining a list of strings concatenates
// them; other elements use their display form. A non-string separator
// yields Nil.
func Join(p *ir.Program, container, separator Value) Value {
	sep, ok := separator.(*Str)
	if !ok {
		return Nil{}
	}
	list, ok := container.(*List)
	if !ok {
		return Nil{}
	}
	var b strings.Builder
	for i, elem := range list.Elems {
		if i > 0 {
			b.WriteString(sep.S)
		}
		if s, ok := elem.(*Str); ok {
			b.WriteString(s.S)
		} else {
			writeValue(p, &b, elem)
		}
	}
	return NewStr(b.String())
}
