package reach

import "io"

// CellKind tags the concrete type of a heap-allocated Cell, the Go-idiomatic
// stand-in for "distinct byte size" used to pick an allocator size class
// (see allocator.go).
type CellKind uint8

const (
	CellKindString CellKind = iota
	CellKindArray
	CellKindTuple
	CellKindObject
	CellKindFunction
	CellKindEnvironment
	CellKindType
	CellKindHoleVariable
	CellKindHoleCall
	CellKindHoleSubscript
	CellKindHoleMember
	CellKindBytecodeBlock
)

func (k CellKind) String() string {
	switch k {
	case CellKindString:
		return "String"
	case CellKindArray:
		return "Array"
	case CellKindTuple:
		return "Tuple"
	case CellKindObject:
		return "Object"
	case CellKindFunction:
		return "Function"
	case CellKindEnvironment:
		return "Environment"
	case CellKindType:
		return "Type"
	case CellKindHoleVariable:
		return "HoleVariable"
	case CellKindHoleCall:
		return "HoleCall"
	case CellKindHoleSubscript:
		return "HoleSubscript"
	case CellKindHoleMember:
		return "HoleMember"
	case CellKindBytecodeBlock:
		return "BytecodeBlock"
	default:
		return "Unknown"
	}
}

// Cell is anything the Heap can allocate and the collector can trace. It
// mirrors the teacher's Instruction interface (Name/SizeInBytes/SourceLocation):
// one small method set, one concrete struct per variant, dispatch by type
// switch at the call site rather than by deep interface hierarchies.
type Cell interface {
	// Kind reports the concrete variant, used by the allocator to pick a
	// size class and by the interpreter to type-switch.
	Kind() CellKind
	// Visit calls fn once for every Value this cell directly references,
	// the GC's tracing hook (mark phase) and Substitute/HasHole's walk.
	Visit(fn func(Value))
	// Dump writes a human-readable rendering, as used by Value.Dump.
	Dump(w io.Writer)

	marked() bool
	setMarked(bool)
}

// cellHeader factors out the GC mark bit every concrete Cell embeds.
type cellHeader struct {
	mark bool
}

func (h *cellHeader) marked() bool      { return h.mark }
func (h *cellHeader) setMarked(m bool)  { h.mark = m }

// cellsEqual implements Value.Equal's cell-to-cell comparison: structural
// for the kinds that define structural equality (Type, Array, Tuple,
// Object, Hole), identity for everything else (String compares by content
// too, since two distinct StringCells with the same text are the same
// value).
func cellsEqual(a, b Cell) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case *StringCell:
		return av.Value == b.(*StringCell).Value
	case *Array:
		return arraysEqual(av, b.(*Array))
	case *Tuple:
		return tuplesEqual(av, b.(*Tuple))
	case *Object:
		return objectsEqual(av, b.(*Object))
	case *Type:
		return av.Equal(b.(*Type))
	case Hole:
		return holesEqual(av, b.(Hole))
	default:
		return a == b
	}
}
