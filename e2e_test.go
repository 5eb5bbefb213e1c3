package reach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These mirror the spec's end-to-end scenarios, built directly out of ast.go
// nodes since there is no source-text parser in this package.

func TestE2E_S1_PrintlnHello(t *testing.T) {
	prog := &Program{Declarations: []Declaration{
		&StatementDeclaration{Statement: &ExpressionStatement{Expr: &CallExpression{
			Callee: &Identifier{Name: "println"},
			Args:   []Expression{&StringLiteral{Value: "hello"}},
		}}},
	}}

	// println's declared parameter is a concrete String, so a literal
	// string argument must type-check cleanly.
	tc := NewTypeChecker(New(nil))
	assert.Nil(t, tc.CheckProgram(prog))

	vm := New(nil)
	var out strings.Builder
	vm.Stdout = &out
	block := GenerateProgram(vm, prog)
	top := NewFunction(vm.Heap, block, vm.Global, nil)
	_, err := vm.Call(top.AsCell().(*Function), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}

func TestE2E_S2_FunctionDefinitionAndCall(t *testing.T) {
	id := &FunctionDeclaration{
		Name:   "id",
		Params: []Parameter{{Name: "x", Type: &NameTypeExpression{Name: "Number"}}},
		Return: &NameTypeExpression{Name: "Number"},
		Body: &BlockStatement{Declarations: []Declaration{
			&StatementDeclaration{Statement: &ReturnStatement{Value: &Identifier{Name: "x"}}},
		}},
	}
	printCall := &StatementDeclaration{Statement: &ExpressionStatement{Expr: &CallExpression{
		Callee: &Identifier{Name: "println"},
		Args: []Expression{&CallExpression{
			Callee: &Identifier{Name: "stringify"},
			Args: []Expression{&CallExpression{
				Callee: &Identifier{Name: "id"},
				Args:   []Expression{&NumericLiteral{Value: 42}},
			}},
		}},
	}}}
	prog := &Program{Declarations: []Declaration{id, printCall}}

	// Type-check first: an annotated, matching call must report no errors.
	tc := NewTypeChecker(New(nil))
	assert.Nil(t, tc.CheckProgram(prog))

	vm := New(nil)
	var out strings.Builder
	vm.Stdout = &out
	block := GenerateProgram(vm, prog)
	top := NewFunction(vm.Heap, block, vm.Global, nil)
	_, err := vm.Call(top.AsCell().(*Function), nil)
	require.NoError(t, err)
	assert.Equal(t, "42\n", out.String())
}

func TestE2E_S3_TypeErrorOnArgumentMismatch(t *testing.T) {
	twice := &FunctionDeclaration{
		Name:   "twice",
		Params: []Parameter{{Name: "x", Type: &NameTypeExpression{Name: "Number"}}},
		Return: &NameTypeExpression{Name: "Number"},
		Body: &BlockStatement{Declarations: []Declaration{
			&StatementDeclaration{Statement: &ReturnStatement{Value: &Identifier{Name: "x"}}},
		}},
	}
	call := &StatementDeclaration{Statement: &ExpressionStatement{Expr: &CallExpression{
		Callee: &Identifier{Name: "twice"},
		Args:   []Expression{&StringLiteral{Value: "abc"}},
	}}}
	prog := &Program{Declarations: []Declaration{twice, call}}

	tc := NewTypeChecker(New(nil))
	errs := tc.CheckProgram(prog)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "Number")
}

func TestE2E_S5_RecordConstructionAndFieldAccess(t *testing.T) {
	prog := &Program{Declarations: []Declaration{
		&LexicalDeclaration{Name: "p", Init: &ObjectLiteralExpression{
			Names:  []string{"x", "y"},
			Values: []Expression{&NumericLiteral{Value: 1}, &NumericLiteral{Value: 2}},
		}},
		&StatementDeclaration{Statement: &ExpressionStatement{Expr: &CallExpression{
			Callee: &Identifier{Name: "println"},
			Args: []Expression{&CallExpression{
				Callee: &Identifier{Name: "stringify"},
				Args:   []Expression{&MemberExpression{Target: &Identifier{Name: "p"}, Name: "x"}},
			}},
		}}},
	}}
	vm := New(nil)
	var out strings.Builder
	vm.Stdout = &out
	block := GenerateProgram(vm, prog)
	top := NewFunction(vm.Heap, block, vm.Global, nil)
	_, err := vm.Call(top.AsCell().(*Function), nil)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out.String())
}

func TestE2E_S6_GCSurvivesAcrossCall(t *testing.T) {
	makeArray := &FunctionDeclaration{
		Name: "makeArray",
		Body: &BlockStatement{Declarations: []Declaration{
			&StatementDeclaration{Statement: &ReturnStatement{Value: &ArrayLiteralExpression{
				Items: []Expression{&NumericLiteral{Value: 99}},
			}}},
		}},
	}
	prog := &Program{Declarations: []Declaration{
		makeArray,
		&LexicalDeclaration{Name: "xs", Init: &CallExpression{Callee: &Identifier{Name: "makeArray"}}},
	}}
	vm := New(nil)
	block := GenerateProgram(vm, prog)
	top := NewFunction(vm.Heap, block, vm.Global, nil)
	_, err := vm.Call(top.AsCell().(*Function), nil)
	require.NoError(t, err)

	// Force a collection between the call returning and reading the result;
	// xs is rooted via vm.Global, so it must survive.
	vm.Heap.Collect()

	xs, ok := vm.Global.Lookup("xs")
	require.True(t, ok)
	arr, ok := xs.AsCell().(*Array)
	require.True(t, ok)
	assert.Equal(t, float64(99), arr.Get(0).AsNumber())
}
