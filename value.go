package reach

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// valueKind tags which variant a Value currently holds. At most one of the
// IsX predicates below is ever true for a given Value, and IsCrash is true
// only for the zero value.
type valueKind uint8

const (
	valueKindCrash valueKind = iota
	valueKindUnit
	valueKindBool
	valueKindNumber
	valueKindCell
	valueKindAbstract
)

// Bit patterns mirrored from the NaN-boxed encoding this Value type is
// modeled on. They are not used to hide pointers (see DESIGN.md) but are
// kept so the Number/Bool/Unit encode/decode arithmetic matches the
// original scheme exactly, including the "encoding round-trip" property.
const (
	tagTypeBool        uint64 = 0b10
	tagTypeUnit        uint64 = 0b100
	doubleEncodeOffset uint64 = 0x1000000000000
)

// Value is a small tagged union standing in for the bytecode's 64-bit
// register contents: Unit, Bool, Number, a managed Cell pointer, or an
// AbstractValue used only during type checking. The zero Value is Crash,
// the sentinel that must never survive into user-visible computation.
type Value struct {
	kind         valueKind
	bits         uint64 // valid for Unit/Bool/Number
	cell         Cell
	abstractType *Type
}

// Crash returns the sentinel value. Any operation on it but IsCrash is a
// programmer error and panics.
func Crash() Value { return Value{kind: valueKindCrash} }

// Unit returns the single Unit value, the language's "()" / void.
func Unit() Value { return Value{kind: valueKindUnit, bits: tagTypeUnit} }

// NewBool wraps a Go bool.
func NewBool(b bool) Value {
	bits := tagTypeBool
	if b {
		bits |= 1
	}
	return Value{kind: valueKindBool, bits: bits}
}

// NewNumber wraps a float64 using the spec's NaN-box arithmetic:
// bits = doubleBits + DoubleEncodeOffset.
func NewNumber(d float64) Value {
	bits := math.Float64bits(d) + doubleEncodeOffset
	return Value{kind: valueKindNumber, bits: bits}
}

// NewCell wraps a managed heap cell.
func NewCell(c Cell) Value {
	if c == nil {
		panic("reach: NewCell(nil)")
	}
	return Value{kind: valueKindCell, cell: c}
}

// NewAbstractValue wraps a Type as "some value of this type", used only
// while type checking.
func NewAbstractValue(t *Type) Value {
	if t == nil {
		panic("reach: NewAbstractValue(nil)")
	}
	return Value{kind: valueKindAbstract, abstractType: t}
}

func (v Value) IsCrash() bool         { return v.kind == valueKindCrash }
func (v Value) IsUnit() bool          { return v.kind == valueKindUnit }
func (v Value) IsBool() bool          { return v.kind == valueKindBool }
func (v Value) IsNumber() bool        { return v.kind == valueKindNumber }
func (v Value) IsCell() bool          { return v.kind == valueKindCell }
func (v Value) IsAbstractValue() bool { return v.kind == valueKindAbstract }

// AsBool unwraps a Bool value; panics if v is not a Bool.
func (v Value) AsBool() bool {
	if !v.IsBool() {
		panic("reach: Value is not a bool")
	}
	return v.bits&1 != 0
}

// AsNumber unwraps a Number value; panics if v is not a Number.
func (v Value) AsNumber() float64 {
	if !v.IsNumber() {
		panic("reach: Value is not a number")
	}
	return math.Float64frombits(v.bits - doubleEncodeOffset)
}

// AsCell unwraps a Cell value; panics if v is not a Cell.
func (v Value) AsCell() Cell {
	if !v.IsCell() {
		panic("reach: Value is not a cell")
	}
	return v.cell
}

// AsAbstractValue unwraps an AbstractValue; panics if v is not one.
func (v Value) AsAbstractValue() *Type {
	if !v.IsAbstractValue() {
		panic("reach: Value is not an abstract value")
	}
	return v.abstractType
}

// AsTypeCell asserts that v carries a *Type, whether concretely (a Cell
// wrapping a Type) or abstractly, as used throughout the type checker.
func (v Value) AsTypeCell() *Type {
	if v.IsAbstractValue() {
		return v.abstractType
	}
	t, ok := v.AsCell().(*Type)
	if !ok {
		panic("reach: Value does not hold a Type")
	}
	return t
}

// IsType reports whether v is a Type, concrete or abstract: a concrete Type
// cell, or an AbstractValue standing for "some value of type Type" (i.e.
// its wrapped type is itself the meta Type, not an ordinary abstract
// result of some other type).
func (v Value) IsType() bool {
	if v.IsAbstractValue() {
		return v.abstractType.Variant == TypeKindMeta
	}
	if !v.IsCell() {
		return false
	}
	_, ok := v.cell.(*Type)
	return ok
}

// GetCell returns the underlying Cell for either a Cell or an
// AbstractValue (the AbstractValue's wrapped Type, treated as a Cell).
// Panics otherwise — mirrors original_source Value::getCell.
func (v Value) GetCell() Cell {
	if v.IsCell() {
		return v.cell
	}
	if v.IsAbstractValue() {
		return v.abstractType
	}
	panic("reach: Value has no underlying cell")
}

// Type reflects any Value — concrete or abstract — to its nominal Type.
func (v Value) Type(vm *VM) *Type {
	switch {
	case v.IsBool():
		return vm.BoolType
	case v.IsNumber():
		return vm.NumberType
	case v.IsUnit():
		return vm.UnitType
	case v.IsAbstractValue():
		return v.abstractType
	case v.IsCrash():
		panic("reach: operation on Crash value")
	}
	switch c := v.cell.(type) {
	case *Function:
		return c.typ
	case *StringCell:
		return vm.StringType
	case *Type:
		return vm.TypeType
	case *Array:
		return c.typ
	case *Tuple:
		return c.typ
	case *Object:
		return c.typ
	case Hole:
		return c.HoleType()
	}
	return vm.TypeType
}

// Dump writes a human-readable rendering of v, the same textual shape the
// `stringify` built-in produces.
func (v Value) Dump(w io.Writer) {
	switch {
	case v.IsBool():
		if v.AsBool() {
			fmt.Fprint(w, "true")
		} else {
			fmt.Fprint(w, "false")
		}
	case v.IsNumber():
		fmt.Fprint(w, formatNumber(v.AsNumber()))
	case v.IsUnit():
		fmt.Fprint(w, "()")
	case v.IsCell():
		v.cell.Dump(w)
	case v.IsAbstractValue():
		fmt.Fprintf(w, "AbstractValue { %s }", v.abstractType.String())
	default:
		fmt.Fprint(w, "<crash>")
	}
}

// String renders v the way Dump does, for debugging and test failure
// messages.
func (v Value) String() string {
	var sb strings.Builder
	v.Dump(&sb)
	return sb.String()
}

func formatNumber(d float64) string {
	if d == math.Trunc(d) && !math.IsInf(d, 0) {
		return fmt.Sprintf("%.0f", d)
	}
	return fmt.Sprintf("%g", d)
}

// Equal reports structural equality: bitwise for primitives, structural
// for cells whose kind defines it (Type, Array, Tuple, Object, Hole);
// other cell kinds compare by identity.
func (a Value) Equal(b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case valueKindCrash, valueKindUnit:
		return true
	case valueKindBool, valueKindNumber:
		return a.bits == b.bits
	case valueKindAbstract:
		return a.abstractType.Equal(b.abstractType)
	case valueKindCell:
		return cellsEqual(a.cell, b.cell)
	}
	return false
}

// HasHole reports whether v is, or structurally contains, a Hole cell.
func (v Value) HasHole() bool {
	if !v.IsCell() {
		return false
	}
	switch c := v.cell.(type) {
	case Hole:
		return true
	case *Object:
		for _, field := range c.fields {
			if field.HasHole() {
				return true
			}
		}
	case *Array:
		for _, item := range c.items {
			if item.HasHole() {
				return true
			}
		}
	case *Tuple:
		for _, item := range c.items {
			if item.HasHole() {
				return true
			}
		}
	}
	return false
}

// Substitute applies subst structurally, as described in spec §3/§4.5.
func (v Value) Substitute(vm *VM, subst Substitutions) Value {
	if v.IsAbstractValue() {
		return NewCell(v.abstractType.Substitute(vm, subst))
	}
	if !v.IsCell() {
		return v
	}
	switch c := v.cell.(type) {
	case Hole:
		return NewCell(c.substitute(vm, subst))
	case *Type:
		return NewCell(c.Substitute(vm, subst))
	case *Object:
		return NewCell(c.substitute(vm, subst))
	case *Array:
		return NewCell(c.substitute(vm, subst))
	case *Tuple:
		return NewCell(c.substitute(vm, subst))
	default:
		return v
	}
}
