package reach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// runProgram compiles and executes prog, returning the top-level call's
// result and the VM it ran in (so tests can inspect globals/heap state).
func runProgram(t *testing.T, prog *Program) (Value, *VM) {
	t.Helper()
	vm := New(nil)
	var out strings.Builder
	vm.Stdout = &out
	block := GenerateProgram(vm, prog)
	top := NewFunction(vm.Heap, block, vm.Global, nil)
	result, err := vm.Call(top.AsCell().(*Function), nil)
	require.NoError(t, err)
	return result, vm
}

func TestInterpreter_LexicalDeclarationAndIdentifier(t *testing.T) {
	prog := &Program{Declarations: []Declaration{
		&LexicalDeclaration{Name: "x", Init: &NumericLiteral{Value: 42}},
		&StatementDeclaration{Statement: &ExpressionStatement{Expr: &Identifier{Name: "x"}}},
	}}
	_, vm := runProgram(t, prog)
	v, ok := vm.Global.Lookup("x")
	require.True(t, ok)
	require.True(t, v.IsNumber())
	require.Equal(t, float64(42), v.AsNumber())
}

func TestInterpreter_FunctionCallAndReturn(t *testing.T) {
	double := &FunctionDeclaration{
		Name:   "identity",
		Params: []Parameter{{Name: "x"}},
		Body: &BlockStatement{Declarations: []Declaration{
			&StatementDeclaration{Statement: &ReturnStatement{Value: &Identifier{Name: "x"}}},
		}},
	}
	prog := &Program{Declarations: []Declaration{
		double,
		&LexicalDeclaration{
			Name: "result",
			Init: &CallExpression{
				Callee: &Identifier{Name: "identity"},
				Args:   []Expression{&NumericLiteral{Value: 7}},
			},
		},
	}}
	_, vm := runProgram(t, prog)
	v, ok := vm.Global.Lookup("result")
	require.True(t, ok)
	require.Equal(t, float64(7), v.AsNumber())
}

func TestInterpreter_IfStatementBranches(t *testing.T) {
	fn := &FunctionDeclaration{
		Name:   "pick",
		Params: []Parameter{{Name: "cond"}},
		Body: &BlockStatement{Declarations: []Declaration{
			&StatementDeclaration{Statement: &IfStatement{
				Cond: &Identifier{Name: "cond"},
				Then: &BlockStatement{Declarations: []Declaration{
					&StatementDeclaration{Statement: &ReturnStatement{Value: &NumericLiteral{Value: 1}}},
				}},
				Else: &BlockStatement{Declarations: []Declaration{
					&StatementDeclaration{Statement: &ReturnStatement{Value: &NumericLiteral{Value: 2}}},
				}},
			}},
		}},
	}

	for _, tc := range []struct {
		cond bool
		want float64
	}{{true, 1}, {false, 2}} {
		prog := &Program{Declarations: []Declaration{
			fn,
			&LexicalDeclaration{
				Name: "r",
				Init: &CallExpression{
					Callee: &Identifier{Name: "pick"},
					Args:   []Expression{&BooleanLiteral{Value: tc.cond}},
				},
			},
		}}
		_, vm := runProgram(t, prog)
		v, ok := vm.Global.Lookup("r")
		require.True(t, ok)
		require.Equal(t, tc.want, v.AsNumber())
	}
}

func TestInterpreter_ArrayLiteralAndSubscript(t *testing.T) {
	prog := &Program{Declarations: []Declaration{
		&LexicalDeclaration{Name: "xs", Init: &ArrayLiteralExpression{
			Items: []Expression{&NumericLiteral{Value: 10}, &NumericLiteral{Value: 20}, &NumericLiteral{Value: 30}},
		}},
		&LexicalDeclaration{Name: "middle", Init: &SubscriptExpression{
			Target: &Identifier{Name: "xs"},
			Index:  &NumericLiteral{Value: 1},
		}},
	}}
	_, vm := runProgram(t, prog)
	v, ok := vm.Global.Lookup("middle")
	require.True(t, ok)
	require.Equal(t, float64(20), v.AsNumber())
}

func TestInterpreter_ObjectLiteralAndMember(t *testing.T) {
	prog := &Program{Declarations: []Declaration{
		&LexicalDeclaration{Name: "p", Init: &ObjectLiteralExpression{
			Names:  []string{"x", "y"},
			Values: []Expression{&NumericLiteral{Value: 1}, &NumericLiteral{Value: 2}},
		}},
		&LexicalDeclaration{Name: "px", Init: &MemberExpression{Target: &Identifier{Name: "p"}, Name: "x"}},
	}}
	_, vm := runProgram(t, prog)
	v, ok := vm.Global.Lookup("px")
	require.True(t, ok)
	require.Equal(t, float64(1), v.AsNumber())
}

func TestInterpreter_MethodCallDesugaring(t *testing.T) {
	// obj.greet() desugars to greet(obj); greet reads obj.name via member access.
	greet := &FunctionDeclaration{
		Name:   "greet",
		Params: []Parameter{{Name: "self"}},
		Body: &BlockStatement{Declarations: []Declaration{
			&StatementDeclaration{Statement: &ReturnStatement{
				Value: &MemberExpression{Target: &Identifier{Name: "self"}, Name: "name"},
			}},
		}},
	}
	prog := &Program{Declarations: []Declaration{
		greet,
		&LexicalDeclaration{Name: "obj", Init: &ObjectLiteralExpression{
			Names:  []string{"name"},
			Values: []Expression{&StringLiteral{Value: "Ada"}},
		}},
		&LexicalDeclaration{Name: "result", Init: &CallExpression{
			Callee: &MemberExpression{Target: &Identifier{Name: "obj"}, Name: "greet"},
		}},
	}}
	_, vm := runProgram(t, prog)
	v, ok := vm.Global.Lookup("result")
	require.True(t, ok)
	require.Equal(t, "Ada", v.AsCell().(*StringCell).Value)
}

func TestInterpreter_PrintlnWritesToStdout(t *testing.T) {
	prog := &Program{Declarations: []Declaration{
		&StatementDeclaration{Statement: &ExpressionStatement{Expr: &CallExpression{
			Callee: &Identifier{Name: "println"},
			Args:   []Expression{&StringLiteral{Value: "hello"}},
		}}},
	}}
	vm := New(nil)
	var out strings.Builder
	vm.Stdout = &out
	block := GenerateProgram(vm, prog)
	top := NewFunction(vm.Heap, block, vm.Global, nil)
	_, err := vm.Call(top.AsCell().(*Function), nil)
	require.NoError(t, err)
	require.Contains(t, out.String(), "hello")
}
