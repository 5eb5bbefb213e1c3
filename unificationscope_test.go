package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnificationScope_ResolveSucceedsOnMatchingTypes(t *testing.T) {
	vm := New(nil)
	scope := NewUnificationScope(vm, nil)
	scope.Unify(NewNumber(1), vm.NumberType, SourceLocation{})

	resolved, err := scope.Resolve(vm.NumberType)
	require.NoError(t, err)
	assert.True(t, resolved.Equal(vm.NumberType))
}

func TestUnificationScope_ResolveFailsOnMismatch(t *testing.T) {
	vm := New(nil)
	scope := NewUnificationScope(vm, nil)
	scope.Unify(NewNumber(1), vm.BoolType, SourceLocation{})

	_, err := scope.Resolve(vm.BoolType)
	require.Error(t, err)
	var typeErr *TypeError
	require.ErrorAs(t, err, &typeErr)
}

func TestUnificationScope_UnifyAfterResolvePanics(t *testing.T) {
	vm := New(nil)
	scope := NewUnificationScope(vm, nil)
	_, err := scope.Resolve(vm.NumberType)
	require.NoError(t, err)

	assert.Panics(t, func() {
		scope.Unify(NewNumber(1), vm.NumberType, SourceLocation{})
	})
}

func TestUnificationScope_BindsFreeVarFromTypeValue(t *testing.T) {
	vm := New(nil)
	scope := NewUnificationScope(vm, nil)
	v := scope.NewVar(false, "T")

	// Passing a Type value itself (not an ordinary value) against a free
	// var binds the var to that type, per unifies()'s type-value branch.
	scope.Unify(NewCell(vm.NumberType), v, SourceLocation{})

	resolved, err := scope.Resolve(v)
	require.NoError(t, err)
	assert.True(t, resolved.Equal(vm.NumberType))
}

func TestUnificationScope_UnboundInferredVarIsAnError(t *testing.T) {
	vm := New(nil)
	scope := NewUnificationScope(vm, nil)
	v := scope.NewVar(false, "T")

	_, err := scope.Resolve(v)
	require.Error(t, err)
}
