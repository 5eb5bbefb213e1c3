package reach

import (
	"fmt"
	"io"
	"os"
)

// VM owns one execution's heap, global environment, and built-in registry.
// Grounded on original_source/src/runtime/VM.{h,cpp}.
type VM struct {
	Heap   *Heap
	Config *Config
	Global *Environment

	BoolType   *Type
	NumberType *Type
	UnitType   *Type
	StringType *Type
	TypeType   *Type

	// Stdout is where print/println write; defaults to os.Stdout but tests
	// point it at a buffer to assert on output (spec §8 end-to-end scenarios).
	Stdout io.Writer

	nextUID uint64
	stack   []Value
}

// New constructs a VM with a fresh heap and the built-in nominal types and
// functions bound in its global environment (spec §6: print/println/
// stringify plus the nominal Bool/Number/String/Void names, and Top/Bottom).
func New(config *Config) *VM {
	if config == nil {
		config = ConfigFromEnviron()
	}
	heap := NewHeap(config)
	vm := &VM{Heap: heap, Config: config, Stdout: os.Stdout}
	vm.Global = NewEnvironment(heap, nil)
	heap.AddRoot(NewCell(vm.Global))
	heap.AttachValueStack(&vm.stack)

	vm.BoolType = NewNameType(heap, "Bool")
	vm.NumberType = NewNameType(heap, "Number")
	vm.UnitType = NewNameType(heap, "Void")
	vm.TypeType = &Type{Variant: TypeKindMeta}
	heap.register(vm.TypeType, CellKindType)

	vm.StringType = NewNameType(heap, "String")

	vm.Global.SetLocal("Bool", NewCell(vm.BoolType))
	vm.Global.SetLocal("Number", NewCell(vm.NumberType))
	vm.Global.SetLocal("Void", NewCell(vm.UnitType))
	vm.Global.SetLocal("String", NewCell(vm.StringType))
	vm.Global.SetLocal("Top", NewCell(NewTopType(heap)))
	vm.Global.SetLocal("Bottom", NewCell(NewBottomType(heap)))

	vm.bindBuiltins()
	return vm
}

// nextVarUID hands out a VM-unique type-variable id.
func (vm *VM) nextVarUID() uint64 {
	vm.nextUID++
	return vm.nextUID
}

// pushStack/popStack give the interpreter a GC-visible register stack, the
// second of spec §4.1's two fully portable GC roots (the first is the
// explicit root set registered via Heap.AddRoot).
func (vm *VM) pushStack(v Value) { vm.stack = append(vm.stack, v) }
func (vm *VM) popStack()         { vm.stack = vm.stack[:len(vm.stack)-1] }

// bindBuiltins wires the print/println/stringify glue (spec §6, SPEC_FULL
// §5.7) as native Functions in the global environment — the seam an
// out-of-scope CLI or REPL would call into. Signatures are the ones spec
// §6 requires verbatim: print/println take a String, stringify takes Top
// (any value at all) and returns a String.
func (vm *VM) bindBuiltins() {
	print := NewNativeFunction(vm.Heap, NewFunctionType(vm.Heap, []*Type{vm.StringType}, vm.UnitType),
		func(vm *VM, args []Value) Value {
			vm.writeBuiltinOutput(args, false)
			return Unit()
		})
	println := NewNativeFunction(vm.Heap, NewFunctionType(vm.Heap, []*Type{vm.StringType}, vm.UnitType),
		func(vm *VM, args []Value) Value {
			vm.writeBuiltinOutput(args, true)
			return Unit()
		})
	stringify := NewNativeFunction(vm.Heap, NewFunctionType(vm.Heap, []*Type{NewTopType(vm.Heap)}, vm.StringType),
		func(vm *VM, args []Value) Value {
			if len(args) != 1 {
				panic(&RuntimeError{Message: "stringify expects exactly one argument"})
			}
			return NewStringCell(vm.Heap, args[0].String())
		})

	vm.Global.SetLocal("print", print)
	vm.Global.SetLocal("println", println)
	vm.Global.SetLocal("stringify", stringify)

	length := NewNativeFunction(vm.Heap, NewFunctionType(vm.Heap, []*Type{vm.StringType}, vm.NumberType),
		func(vm *VM, args []Value) Value {
			if len(args) == 1 && args[0].IsCell() {
				if s, ok := args[0].AsCell().(*StringCell); ok {
					return NewNumber(float64(s.RuneLen()))
				}
			}
			panic(&RuntimeError{Message: "length expects exactly one String argument"})
		})
	vm.Global.SetLocal("length", length)
}

func (vm *VM) writeBuiltinOutput(args []Value, newline bool) {
	w := vm.Stdout
	if w == nil {
		w = os.Stdout
	}
	for i, a := range args {
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		if a.IsCell() {
			if s, ok := a.AsCell().(*StringCell); ok {
				fmt.Fprint(w, s.Value)
				continue
			}
		}
		a.Dump(w)
	}
	if newline {
		fmt.Fprintln(w)
	}
}
