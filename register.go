package reach

// Register identifies one slot in a call frame: positive values are locals
// (1-based), zero and negative values are parameters (0 = first parameter,
// -1 = second, ...). Grounded on original_source/src/bytecode/Register.h.
type Register int32

// IsParameter reports whether r addresses a parameter slot.
func (r Register) IsParameter() bool { return r <= 0 }

// IsLocal reports whether r addresses a local slot.
func (r Register) IsLocal() bool { return r > 0 }

// ParameterIndex returns r's 0-based parameter index. Only meaningful when
// r.IsParameter() holds.
func (r Register) ParameterIndex() int { return int(-r) }

// LocalIndex returns r's 0-based local index. Only meaningful when
// r.IsLocal() holds.
func (r Register) LocalIndex() int { return int(r) - 1 }

// FirstLocal is the register of a frame's first local variable.
const FirstLocal Register = 1

// FirstParameter is the register of a frame's first parameter.
const FirstParameter Register = 0
