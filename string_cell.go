package reach

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// StringCell is the heap representation of the language's string type.
// Grounded on the teacher's Input interface (vm.go), which decodes source
// text rune-by-rune with unicode/utf8 rather than treating it as raw bytes.
type StringCell struct {
	cellHeader
	Value string
}

// NewStringCell allocates a StringCell on h and wraps it as a Value.
func NewStringCell(h *Heap, s string) Value {
	c := &StringCell{Value: s}
	h.register(c, CellKindString)
	return NewCell(c)
}

func (s *StringCell) Kind() CellKind       { return CellKindString }
func (s *StringCell) Visit(fn func(Value)) {}
func (s *StringCell) Dump(w io.Writer)     { fmt.Fprintf(w, "%q", s.Value) }

// RuneLen reports the string's length in characters, not bytes — the
// `length` accessor exposed on the String built-in (spec §6 built-ins glue).
func (s *StringCell) RuneLen() int { return utf8.RuneCountInString(s.Value) }
