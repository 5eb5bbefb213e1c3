package reach

// Label is a forward-reference jump target within a BytecodeBlock's code.
// Code can reference a label before its eventual position is known: jump
// instructions hold the *Label itself and read its bound instruction index
// via Location when they execute, so no reference is back-patched. Grounded on
// original_source/src/bytecode/Label.{h,cpp}.
type Label struct {
	name     string
	location int
	bound    bool
}

// NewLabel creates an unbound label for diagnostics purposes named name
// (e.g. "loop-head", "else-branch").
func NewLabel(name string) *Label {
	return &Label{name: name, location: -1}
}

// IsBound reports whether Bind has been called.
func (l *Label) IsBound() bool { return l.bound }

// Bind fixes the label's location to index, the position within a
// BytecodeBlock's Code slice that IJump/IJumpIfFalse targeting this label
// should transfer control to. Binding a label twice is a generator bug.
func (l *Label) Bind(index int) {
	if l.bound {
		panic("reach: label " + l.name + " bound twice")
	}
	l.location = index
	l.bound = true
}

// Location returns the bound instruction index. Panics if the label was
// never bound — every label emitted by the generator must eventually be
// placed before the block is considered complete.
func (l *Label) Location() int {
	if !l.bound {
		panic("reach: label " + l.name + " was never bound")
	}
	return l.location
}
