package reach

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeChecker_LexicalDeclarationMatchesAnnotation(t *testing.T) {
	vm := New(nil)
	prog := &Program{Declarations: []Declaration{
		&LexicalDeclaration{
			Name: "x",
			Type: &NameTypeExpression{Name: "Number"},
			Init: &NumericLiteral{Value: 1},
		},
	}}
	tc := NewTypeChecker(vm)
	errs := tc.CheckProgram(prog)
	assert.Nil(t, errs)
}

func TestTypeChecker_LexicalDeclarationMismatchReported(t *testing.T) {
	vm := New(nil)
	prog := &Program{Declarations: []Declaration{
		&LexicalDeclaration{
			Name: "x",
			Type: &NameTypeExpression{Name: "Bool"},
			Init: &NumericLiteral{Value: 1},
		},
	}}
	tc := NewTypeChecker(vm)
	errs := tc.CheckProgram(prog)
	require.Len(t, errs, 1)
}

func TestTypeChecker_FunctionBodyMatchesDeclaredReturnType(t *testing.T) {
	vm := New(nil)
	fn := &FunctionDeclaration{
		Name: "identity",
		Params: []Parameter{
			{Name: "n", Type: &NameTypeExpression{Name: "Number"}},
		},
		Return: &NameTypeExpression{Name: "Number"},
		Body: &BlockStatement{Declarations: []Declaration{
			&StatementDeclaration{Statement: &ReturnStatement{Value: &Identifier{Name: "n"}}},
		}},
	}
	prog := &Program{Declarations: []Declaration{fn}}
	tc := NewTypeChecker(vm)
	errs := tc.CheckProgram(prog)
	assert.Nil(t, errs)
}

func TestTypeChecker_IfConditionMustBeBool(t *testing.T) {
	vm := New(nil)
	fn := &FunctionDeclaration{
		Name: "bad",
		Body: &BlockStatement{Declarations: []Declaration{
			&StatementDeclaration{Statement: &IfStatement{
				Cond: &NumericLiteral{Value: 1},
				Then: &BlockStatement{},
			}},
		}},
	}
	prog := &Program{Declarations: []Declaration{fn}}
	tc := NewTypeChecker(vm)
	errs := tc.CheckProgram(prog)
	require.Len(t, errs, 1)
}

func TestTypeChecker_UnboundIdentifierProducesHole(t *testing.T) {
	vm := New(nil)
	tc := NewTypeChecker(vm)
	env := NewEnvironment(vm.Heap, vm.Global)
	v := tc.checkExpression(env, &Identifier{Name: "nonexistent"})
	assert.True(t, v.HasHole())
}

func TestTypeChecker_CallOnUnknownCalleeProducesHoleCall(t *testing.T) {
	vm := New(nil)
	tc := NewTypeChecker(vm)
	env := NewEnvironment(vm.Heap, vm.Global)
	call := &CallExpression{
		Callee: &Identifier{Name: "mystery"},
		Args:   []Expression{&NumericLiteral{Value: 1}},
	}
	v := tc.checkExpression(env, call)
	assert.True(t, v.HasHole())
	_, ok := v.AsCell().(*HoleCall)
	assert.True(t, ok)
}
