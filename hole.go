package reach

import (
	"fmt"
	"io"
)

// Hole is a symbolic placeholder value produced only while type checking
// (spec §4.5): the type checker runs the same bytecode the interpreter
// does, but unresolved runtime quantities become Holes instead of concrete
// Values. Grounded on original_source/src/typing/Hole.{h,cpp}.
type Hole interface {
	Cell
	substitute(vm *VM, subst Substitutions) Cell
	partialEval(vm *VM, env *Environment) Value
	// HoleType returns the still-unresolved type this hole stands in for.
	HoleType() *Type
}

// holesEqual implements structural equality for Holes (original_source's
// per-subtype Hole::operator==): two holes of the same concrete kind are
// equal iff their constituent Values are equal — callee/args for HoleCall,
// target/index for HoleSubscript, target/name for HoleMember, name/type
// for HoleVariable. This is also what lets PartialEvaluate detect a
// converged fixed point: a freshly allocated but unchanged Hole now
// compares equal to the one it replaced.
func holesEqual(a, b Hole) bool {
	switch av := a.(type) {
	case *HoleVariable:
		bv, ok := b.(*HoleVariable)
		return ok && av.Name == bv.Name && av.Type.Equal(bv.Type)
	case *HoleCall:
		bv, ok := b.(*HoleCall)
		if !ok || len(av.Args) != len(bv.Args) || !av.Callee.Equal(bv.Callee) {
			return false
		}
		for i := range av.Args {
			if !av.Args[i].Equal(bv.Args[i]) {
				return false
			}
		}
		return true
	case *HoleSubscript:
		bv, ok := b.(*HoleSubscript)
		return ok && av.Target.Equal(bv.Target) && av.Index.Equal(bv.Index)
	case *HoleMember:
		bv, ok := b.(*HoleMember)
		return ok && av.Target.Equal(bv.Target) && av.Name == bv.Name
	default:
		return false
	}
}

// HoleVariable stands for "the value bound to this name", recorded so
// partial evaluation can later resolve it once the environment is known.
type HoleVariable struct {
	cellHeader
	Name string
	Type *Type
}

// NewHoleVariable allocates a HoleVariable hole on h.
func NewHoleVariable(h *Heap, name string, typ *Type) Value {
	c := &HoleVariable{Name: name, Type: typ}
	h.register(c, CellKindHoleVariable)
	return NewCell(c)
}

func (hv *HoleVariable) Kind() CellKind       { return CellKindHoleVariable }
func (hv *HoleVariable) Visit(fn func(Value)) { fn(NewCell(hv.Type)) }
func (hv *HoleVariable) Dump(w io.Writer)     { fmt.Fprintf(w, "<hole %s: %s>", hv.Name, hv.Type) }
func (hv *HoleVariable) HoleType() *Type      { return hv.Type }

func (hv *HoleVariable) substitute(vm *VM, subst Substitutions) Cell {
	c := &HoleVariable{Name: hv.Name, Type: hv.Type.Substitute(vm, subst)}
	vm.Heap.register(c, CellKindHoleVariable)
	return c
}

func (hv *HoleVariable) partialEval(vm *VM, env *Environment) Value {
	if v, ok := env.Lookup(hv.Name); ok && !v.IsAbstractValue() {
		return v
	}
	return NewCell(hv)
}

// HoleCall stands for "the result of calling Callee with Args", where
// Callee and/or any Arg may themselves be holes.
type HoleCall struct {
	cellHeader
	Callee Value
	Args   []Value
	Type   *Type
}

// NewHoleCall allocates a HoleCall hole on h.
func NewHoleCall(h *Heap, callee Value, args []Value, typ *Type) Value {
	c := &HoleCall{Callee: callee, Args: append([]Value(nil), args...), Type: typ}
	h.register(c, CellKindHoleCall)
	return NewCell(c)
}

func (hc *HoleCall) Kind() CellKind { return CellKindHoleCall }
func (hc *HoleCall) HoleType() *Type { return hc.Type }

func (hc *HoleCall) Visit(fn func(Value)) {
	fn(hc.Callee)
	for _, a := range hc.Args {
		fn(a)
	}
	fn(NewCell(hc.Type))
}

func (hc *HoleCall) Dump(w io.Writer) {
	fmt.Fprint(w, "<hole call ")
	hc.Callee.Dump(w)
	fmt.Fprint(w, "(")
	for i, a := range hc.Args {
		if i > 0 {
			fmt.Fprint(w, ", ")
		}
		a.Dump(w)
	}
	fmt.Fprint(w, ")>")
}

func (hc *HoleCall) substitute(vm *VM, subst Substitutions) Cell {
	args := make([]Value, len(hc.Args))
	for i, a := range hc.Args {
		args[i] = a.Substitute(vm, subst)
	}
	c := &HoleCall{
		Callee: hc.Callee.Substitute(vm, subst),
		Args:   args,
		Type:   hc.Type.Substitute(vm, subst),
	}
	vm.Heap.register(c, CellKindHoleCall)
	return c
}

func (hc *HoleCall) partialEval(vm *VM, env *Environment) Value {
	callee := partialEvalValue(vm, env, hc.Callee)
	args := make([]Value, len(hc.Args))
	resolved := !callee.HasHole()
	for i, a := range hc.Args {
		args[i] = partialEvalValue(vm, env, a)
		resolved = resolved && !args[i].HasHole()
	}
	if resolved && callee.IsCell() {
		if fn, ok := callee.AsCell().(*Function); ok && fn.IsNative() {
			return fn.Native(vm, args)
		}
	}
	c := &HoleCall{Callee: callee, Args: args, Type: hc.Type}
	vm.Heap.register(c, CellKindHoleCall)
	return NewCell(c)
}

// HoleSubscript stands for "Target[Index]" where Target and/or Index may be holes.
type HoleSubscript struct {
	cellHeader
	Target Value
	Index  Value
	Type   *Type
}

// NewHoleSubscript allocates a HoleSubscript hole on h.
func NewHoleSubscript(h *Heap, target, index Value, typ *Type) Value {
	c := &HoleSubscript{Target: target, Index: index, Type: typ}
	h.register(c, CellKindHoleSubscript)
	return NewCell(c)
}

func (hs *HoleSubscript) Kind() CellKind { return CellKindHoleSubscript }
func (hs *HoleSubscript) HoleType() *Type { return hs.Type }

func (hs *HoleSubscript) Visit(fn func(Value)) {
	fn(hs.Target)
	fn(hs.Index)
	fn(NewCell(hs.Type))
}

func (hs *HoleSubscript) Dump(w io.Writer) {
	fmt.Fprint(w, "<hole ")
	hs.Target.Dump(w)
	fmt.Fprint(w, "[")
	hs.Index.Dump(w)
	fmt.Fprint(w, "]>")
}

func (hs *HoleSubscript) substitute(vm *VM, subst Substitutions) Cell {
	c := &HoleSubscript{
		Target: hs.Target.Substitute(vm, subst),
		Index:  hs.Index.Substitute(vm, subst),
		Type:   hs.Type.Substitute(vm, subst),
	}
	vm.Heap.register(c, CellKindHoleSubscript)
	return c
}

func (hs *HoleSubscript) partialEval(vm *VM, env *Environment) Value {
	target := partialEvalValue(vm, env, hs.Target)
	index := partialEvalValue(vm, env, hs.Index)
	if !target.HasHole() && !index.HasHole() && target.IsCell() && index.IsNumber() {
		if arr, ok := target.AsCell().(*Array); ok {
			return arr.Get(int(index.AsNumber()))
		}
	}
	c := &HoleSubscript{Target: target, Index: index, Type: hs.Type}
	vm.Heap.register(c, CellKindHoleSubscript)
	return NewCell(c)
}

// HoleMember stands for "Target.Name" where Target may be a hole.
type HoleMember struct {
	cellHeader
	Target Value
	Name   string
	Type   *Type
}

// NewHoleMember allocates a HoleMember hole on h.
func NewHoleMember(h *Heap, target Value, name string, typ *Type) Value {
	c := &HoleMember{Target: target, Name: name, Type: typ}
	h.register(c, CellKindHoleMember)
	return NewCell(c)
}

func (hm *HoleMember) Kind() CellKind { return CellKindHoleMember }
func (hm *HoleMember) HoleType() *Type { return hm.Type }

func (hm *HoleMember) Visit(fn func(Value)) {
	fn(hm.Target)
	fn(NewCell(hm.Type))
}

func (hm *HoleMember) Dump(w io.Writer) {
	fmt.Fprint(w, "<hole ")
	hm.Target.Dump(w)
	fmt.Fprintf(w, ".%s>", hm.Name)
}

func (hm *HoleMember) substitute(vm *VM, subst Substitutions) Cell {
	c := &HoleMember{Target: hm.Target.Substitute(vm, subst), Name: hm.Name, Type: hm.Type.Substitute(vm, subst)}
	vm.Heap.register(c, CellKindHoleMember)
	return c
}

func (hm *HoleMember) partialEval(vm *VM, env *Environment) Value {
	target := partialEvalValue(vm, env, hm.Target)
	if !target.HasHole() && target.IsCell() {
		if obj, ok := target.AsCell().(*Object); ok {
			if v, ok := obj.Get(hm.Name); ok {
				return v
			}
		}
	}
	c := &HoleMember{Target: target, Name: hm.Name, Type: hm.Type}
	vm.Heap.register(c, CellKindHoleMember)
	return NewCell(c)
}
