package reach

import "fmt"

// frame is one call's register file: parameters, locals, and the
// Environment the interpreted code runs against. Grounded on
// original_source/src/runtime/Interpreter.{h,cpp}: "saved caller fp,
// negative-offset parameters, positive-offset locals" is modeled here as
// two separate Go slices instead of one contiguous buffer with a signed
// offset, since Go slice indexing is already bounds-checked and the
// negative/positive split only matters for addressing, not storage.
type frame struct {
	block  *BytecodeBlock
	params []Value
	locals []Value
	env    *Environment
	pc     int
}

func (f *frame) get(r Register) Value {
	if r.IsLocal() {
		return f.locals[r.LocalIndex()]
	}
	return f.params[r.ParameterIndex()]
}

func (f *frame) set(r Register, v Value) {
	if r.IsLocal() {
		f.locals[r.LocalIndex()] = v
	} else {
		f.params[r.ParameterIndex()] = v
	}
}

func (f *frame) getMany(rs []Register) []Value {
	out := make([]Value, len(rs))
	for i, r := range rs {
		out[i] = f.get(r)
	}
	return out
}

// Call invokes fn with args, running its bytecode (or native Go code) to
// completion. RuntimeErrors panicked anywhere during execution are
// recovered here and returned as an ordinary Go error (spec §7).
func (vm *VM) Call(fn *Function, args []Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(*RuntimeError); ok {
				err = rerr
				return
			}
			panic(r)
		}
	}()
	result = vm.call(fn, args)
	return result, nil
}

func (vm *VM) call(fn *Function, args []Value) Value {
	if fn.IsNative() {
		return fn.Native(vm, args)
	}
	block := fn.Block
	f := &frame{
		block:  block,
		params: append([]Value(nil), args...),
		locals: make([]Value, block.NumLocals),
		env:    NewEnvironment(vm.Heap, fn.Env),
	}
	vm.pushFrame(f)
	defer vm.popFrame(f)

	for f.pc < len(block.Code) {
		instr := block.Code[f.pc]
		f.pc++
		if ret, done := vm.step(f, instr); done {
			return ret
		}
	}
	if block.ResultRegister != resultRegisterUnset {
		return f.get(block.ResultRegister)
	}
	return Unit()
}

// pushFrame/popFrame keep the interpreter's live registers visible to the
// GC via the VM's value stack (spec §4.1's "interpreter value stack" root).
func (vm *VM) pushFrame(f *frame) {
	for _, v := range f.params {
		vm.pushStack(v)
	}
	for _, v := range f.locals {
		vm.pushStack(v)
	}
	vm.pushStack(NewCell(f.env))
}

func (vm *VM) popFrame(f *frame) {
	n := len(f.params) + len(f.locals) + 1
	for i := 0; i < n; i++ {
		vm.popStack()
	}
}

// step executes one instruction against f, returning (result, true) if it
// caused the frame to return (an IEnd), or (_, false) to keep going. A
// Jump/JumpIfFalse instruction adjusts f.pc directly rather than letting
// the caller's pc++ apply.
func (vm *VM) step(f *frame, instr Instruction) (Value, bool) {
	switch i := instr.(type) {
	case IEnter:
		// Locals are already zero-valued (Crash); nothing further to do —
		// kept as an explicit opcode so bytecode dumps show the frame's
		// declared shape.
		_ = i
	case IEnd:
		if f.block.ResultRegister != resultRegisterUnset {
			return f.get(f.block.ResultRegister), true
		}
		return Unit(), true
	case IMove:
		f.set(i.Dst, f.get(i.Src))
	case ILoadConstant:
		f.set(i.Dst, f.block.Constant(i.Index))
	case IGetLocal:
		name := f.block.Identifier(i.NameIndex)
		v, ok := f.env.Lookup(name)
		if !ok {
			panic(&RuntimeError{Location: instr.SourceLocation(), Message: fmt.Sprintf("unbound variable %q", name)})
		}
		f.set(i.Dst, v)
	case ISetLocal:
		f.env.SetLocal(f.block.Identifier(i.NameIndex), f.get(i.Src))
	case INewArray:
		f.set(i.Dst, NewArray(vm, f.getMany(i.Items)))
	case ISetArrayIndex:
		target := f.get(i.Target)
		idx := f.get(i.Index)
		target.AsCell().(*Array).Set(int(idx.AsNumber()), f.get(i.Src))
	case IGetArrayIndex:
		target := f.get(i.Target)
		idx := f.get(i.Index)
		f.set(i.Dst, target.AsCell().(*Array).Get(int(idx.AsNumber())))
	case INewTuple:
		f.set(i.Dst, NewTuple(vm, f.getMany(i.Items)))
	case ISetTupleIndex:
		f.get(i.Target).AsCell().(*Tuple).Set(i.Index, f.get(i.Src))
	case INewFunction:
		nested := f.block.Nested[i.FnIndex]
		f.set(i.Dst, NewFunction(vm.Heap, nested, f.env, nil))
	case ICall:
		callee := f.get(i.Callee)
		if !callee.IsCell() {
			panic(&RuntimeError{Location: instr.SourceLocation(), Message: "call target is not a function"})
		}
		fn, ok := callee.AsCell().(*Function)
		if !ok {
			panic(&RuntimeError{Location: instr.SourceLocation(), Message: "call target is not a function"})
		}
		f.set(i.Dst, vm.call(fn, f.getMany(i.Args)))
	case INewObject:
		names := make([]string, len(i.NameIndices))
		for j, idx := range i.NameIndices {
			names[j] = f.block.Identifier(idx)
		}
		f.set(i.Dst, NewObject(vm, names, f.getMany(i.Values)))
	case ISetField:
		f.get(i.Target).AsCell().(*Object).Set(f.block.Identifier(i.NameIndex), f.get(i.Src))
	case IGetField:
		obj := f.get(i.Target).AsCell().(*Object)
		v, ok := obj.Get(f.block.Identifier(i.NameIndex))
		if !ok {
			panic(&RuntimeError{Location: instr.SourceLocation(), Message: fmt.Sprintf("no field %q", f.block.Identifier(i.NameIndex))})
		}
		f.set(i.Dst, v)
	case IJump:
		f.pc = i.Target.Location()
	case IJumpIfFalse:
		cond := f.get(i.Cond)
		if !cond.IsBool() {
			panic(&RuntimeError{Location: instr.SourceLocation(), Message: "branch condition is not a Bool"})
		}
		if !cond.AsBool() {
			f.pc = i.Target.Location()
		}
	case IIsEqual:
		f.set(i.Dst, NewBool(f.get(i.Lhs).Equal(f.get(i.Rhs))))
	case IStoreGlobalConstant:
		vm.Global.SetLocal(f.block.Identifier(i.NameIndex), f.get(i.Src))
	case ILoadGlobalConstant:
		name := f.block.Identifier(i.NameIndex)
		v, ok := vm.Global.Lookup(name)
		if !ok {
			panic(&RuntimeError{Location: instr.SourceLocation(), Message: fmt.Sprintf("unbound global %q", name)})
		}
		f.set(i.Dst, v)
	default:
		panic(&RuntimeError{Location: instr.SourceLocation(), Message: fmt.Sprintf("unhandled instruction %s in value mode", instr.Name())})
	}
	return Value{}, false
}
