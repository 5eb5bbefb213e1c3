package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNumber_RoundTrips(t *testing.T) {
	tests := []float64{0, 1, -1, 3.5, -3.5, 1e10}
	for _, d := range tests {
		v := NewNumber(d)
		assert.True(t, v.IsNumber())
		assert.Equal(t, d, v.AsNumber())
	}
}

func TestNewBool(t *testing.T) {
	assert.True(t, NewBool(true).AsBool())
	assert.False(t, NewBool(false).AsBool())
}

func TestUnit(t *testing.T) {
	u := Unit()
	assert.True(t, u.IsUnit())
	assert.Equal(t, "()", u.String())
}

func TestCrash_IsZeroValue(t *testing.T) {
	var v Value
	assert.True(t, v.IsCrash())
	assert.True(t, Crash().IsCrash())
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, NewNumber(4).Equal(NewNumber(4)))
	assert.False(t, NewNumber(4).Equal(NewNumber(5)))
	assert.False(t, NewNumber(4).Equal(NewBool(true)))
	assert.True(t, Unit().Equal(Unit()))
}

func TestValue_Equal_Cells(t *testing.T) {
	vm := New(nil)
	a := NewArray(vm, []Value{NewNumber(1), NewNumber(2)})
	b := NewArray(vm, []Value{NewNumber(1), NewNumber(2)})
	c := NewArray(vm, []Value{NewNumber(1), NewNumber(3)})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestValue_HasHole(t *testing.T) {
	vm := New(nil)
	hole := NewHoleVariable(vm.Heap, "x", NewVarType(vm.Heap, 1, false, "x"))
	arr := NewArray(vm, []Value{NewNumber(1), hole})
	assert.True(t, arr.HasHole())
	assert.False(t, NewArray(vm, []Value{NewNumber(1)}).HasHole())
}

func TestValue_Type(t *testing.T) {
	vm := New(nil)
	require.NotNil(t, vm.NumberType)
	assert.True(t, NewNumber(1).Type(vm).Equal(vm.NumberType))
	assert.True(t, NewBool(true).Type(vm).Equal(vm.BoolType))
	assert.True(t, Unit().Type(vm).Equal(vm.UnitType))

	arr := NewArray(vm, []Value{NewNumber(1), NewNumber(2)})
	assert.True(t, arr.Type(vm).Equal(NewArrayType(vm.Heap, vm.NumberType)))
	empty := NewArray(vm, nil)
	assert.Equal(t, TypeKindTop, empty.Type(vm).Elem.Variant)
}

func TestValue_Dump_String(t *testing.T) {
	assert.Equal(t, "true", NewBool(true).String())
	assert.Equal(t, "3", NewNumber(3).String())
	assert.Equal(t, "3.5", NewNumber(3.5).String())
}
