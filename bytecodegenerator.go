package reach

// generator holds the mutable state shared by both code-generation modes
// (value mode in astgen.go, type-check mode in typecheckgen.go) while
// compiling one BytecodeBlock: register allocation and label/identifier
// plumbing. Grounded on original_source/src/bytecode/BytecodeGenerator.{h,cpp},
// generalized the way the teacher's gen_go.go/gen_ts.go/gen_py.go share one
// emitter shape across every grammar AST node kind.
type generator struct {
	vm        *VM
	block     *BytecodeBlock
	nextLocal Register
}

func newGenerator(vm *VM, name string) *generator {
	return &generator{vm: vm, block: NewBytecodeBlock(name), nextLocal: FirstLocal}
}

// newLocal allocates a fresh local register, growing the block's declared
// local count.
func (g *generator) newLocal() Register {
	r := g.nextLocal
	g.nextLocal++
	g.block.NumLocals++
	return r
}

// emit appends instr at the current position.
func (g *generator) emit(instr Instruction) int { return g.block.Emit(instr) }

// newLabel creates a named, unbound jump target.
func (g *generator) newLabel(name string) *Label { return NewLabel(name) }

// bindLabel binds l to the generator's current position, the target any
// earlier Jump/JumpIfFalse referencing it will land on.
func (g *generator) bindLabel(l *Label) { l.Bind(g.block.Here()) }

// identifier interns name into the block being generated.
func (g *generator) identifier(name string) int { return g.block.UniqueIdentifier(name) }

// constant interns v (not deduplicated — see BytecodeBlock.AddConstant).
func (g *generator) constant(v Value) int { return g.block.AddConstant(v) }
