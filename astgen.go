package reach

// This file implements value-mode codegen (spec §4.3): lowering the AST
// contract in ast.go into a BytecodeBlock the Interpreter executes
// directly. One compile method per node kind, dispatched from a single
// entry point per node category — the same shape the teacher uses across
// gen_go.go/gen_ts.go/gen_py.go/gen_javascript.go/gen_py.go to lower one
// grammar AST across several targets.
//
// Top-level `let`/`function` declarations are stored as VM-wide globals
// (IStoreGlobalConstant) rather than bound in the program's own frame, so a
// function declared at the top level remains callable after the program's
// top-level code has finished running and its frame has been discarded —
// the script-level "declarations outlive the statement that introduced
// them" behavior spec §6 describes for the external interface.
// Nested-scope identifiers resolve by the ordinary Environment parent
// chain (IGetLocal), which bottoms out at vm.Global, so the two storage
// paths are transparently unified from a reader's perspective.

// GenerateProgram compiles prog into an executable top-level BytecodeBlock.
// Running it (vm.Call on the resulting Function) executes every top-level
// declaration/statement in order.
func GenerateProgram(vm *VM, prog *Program) *BytecodeBlock {
	g := newGenerator(vm, "<program>")
	g.emit(IEnter{NumLocals: 0})
	resultReg := g.newLocal()
	g.block.ResultRegister = resultReg
	unitIdx := g.constant(Unit())
	g.emit(ILoadConstant{Dst: resultReg, Index: unitIdx})

	for _, decl := range prog.Declarations {
		compileTopLevelDeclaration(g, decl, resultReg)
	}
	g.emit(IEnd{})
	return g.block
}

func compileTopLevelDeclaration(g *generator, decl Declaration, resultReg Register) {
	switch d := decl.(type) {
	case *LexicalDeclaration:
		src := compileExpression(g, d.Init)
		g.emit(IStoreGlobalConstant{NameIndex: g.identifier(d.Name), Src: src})
	case *FunctionDeclaration:
		fnReg := compileFunctionLiteral(g, d.Name, d.Params, d.Body)
		g.emit(IStoreGlobalConstant{NameIndex: g.identifier(d.Name), Src: fnReg})
	case *StatementDeclaration:
		compileStatement(g, d.Statement, resultReg, nil)
	}
}

// compileFunctionLiteral compiles name/params/body into a nested
// BytecodeBlock and emits the instruction that closes it over the current
// environment, returning the register holding the resulting Function value.
func compileFunctionLiteral(g *generator, name string, params []Parameter, body *BlockStatement) Register {
	nested := compileFunction(g.vm, name, params, body)
	idx := g.block.AddNested(nested)
	dst := g.newLocal()
	g.emit(INewFunction{Dst: dst, FnIndex: idx})
	return dst
}

// compileFunction compiles one function body into its own BytecodeBlock.
func compileFunction(vm *VM, name string, params []Parameter, body *BlockStatement) *BytecodeBlock {
	g := newGenerator(vm, name)
	g.block.NumParams = len(params)
	g.emit(IEnter{NumLocals: 0})

	resultReg := g.newLocal()
	g.block.ResultRegister = resultReg
	unitIdx := g.constant(Unit())
	g.emit(ILoadConstant{Dst: resultReg, Index: unitIdx})

	for idx, p := range params {
		g.emit(ISetLocal{NameIndex: g.identifier(p.Name), Src: Register(-idx)})
	}

	endLabel := g.newLabel("function-end")
	compileBlock(g, body, resultReg, endLabel)
	g.bindLabel(endLabel)
	g.emit(IEnd{})
	return g.block
}

func compileBlock(g *generator, block *BlockStatement, resultReg Register, endLabel *Label) {
	for _, decl := range block.Declarations {
		switch d := decl.(type) {
		case *LexicalDeclaration:
			src := compileExpression(g, d.Init)
			g.emit(ISetLocal{NameIndex: g.identifier(d.Name), Src: src})
		case *FunctionDeclaration:
			fnReg := compileFunctionLiteral(g, d.Name, d.Params, d.Body)
			g.emit(ISetLocal{NameIndex: g.identifier(d.Name), Src: fnReg})
		case *StatementDeclaration:
			compileStatement(g, d.Statement, resultReg, endLabel)
		}
	}
}

func compileStatement(g *generator, stmt Statement, resultReg Register, endLabel *Label) {
	switch s := stmt.(type) {
	case *BlockStatement:
		compileBlock(g, s, resultReg, endLabel)
	case *IfStatement:
		cond := compileExpression(g, s.Cond)
		if s.Else == nil {
			after := g.newLabel("if-end")
			g.emit(IJumpIfFalse{Cond: cond, Target: after})
			compileBlock(g, s.Then, resultReg, endLabel)
			g.bindLabel(after)
			return
		}
		elseLabel := g.newLabel("if-else")
		doneLabel := g.newLabel("if-done")
		g.emit(IJumpIfFalse{Cond: cond, Target: elseLabel})
		compileBlock(g, s.Then, resultReg, endLabel)
		g.emit(IJump{Target: doneLabel})
		g.bindLabel(elseLabel)
		compileBlock(g, s.Else, resultReg, endLabel)
		g.bindLabel(doneLabel)
	case *ReturnStatement:
		var v Register
		if s.Value != nil {
			v = compileExpression(g, s.Value)
		} else {
			v = g.newLocal()
			g.emit(ILoadConstant{Dst: v, Index: g.constant(Unit())})
		}
		g.emit(IMove{Dst: resultReg, Src: v})
		if endLabel != nil {
			g.emit(IJump{Target: endLabel})
		}
	case *ExpressionStatement:
		compileExpression(g, s.Expr)
	}
}

// compileExpression lowers expr and returns the register holding its value.
func compileExpression(g *generator, expr Expression) Register {
	switch e := expr.(type) {
	case *Identifier:
		dst := g.newLocal()
		g.emit(IGetLocal{Dst: dst, NameIndex: g.identifier(e.Name)})
		return dst
	case *BooleanLiteral:
		dst := g.newLocal()
		g.emit(ILoadConstant{Dst: dst, Index: g.constant(NewBool(e.Value))})
		return dst
	case *NumericLiteral:
		dst := g.newLocal()
		g.emit(ILoadConstant{Dst: dst, Index: g.constant(NewNumber(e.Value))})
		return dst
	case *StringLiteral:
		dst := g.newLocal()
		g.emit(ILoadConstant{Dst: dst, Index: g.constant(NewStringCell(g.vm.Heap, e.Value))})
		return dst
	case *ParenthesizedExpression:
		return compileExpression(g, e.Inner)
	case *ArrayLiteralExpression:
		items := make([]Register, len(e.Items))
		for i, item := range e.Items {
			items[i] = compileExpression(g, item)
		}
		dst := g.newLocal()
		g.emit(INewArray{Dst: dst, Items: items})
		return dst
	case *ObjectLiteralExpression:
		nameIndices := make([]int, len(e.Names))
		values := make([]Register, len(e.Values))
		for i, n := range e.Names {
			nameIndices[i] = g.identifier(n)
		}
		for i, v := range e.Values {
			values[i] = compileExpression(g, v)
		}
		dst := g.newLocal()
		g.emit(INewObject{Dst: dst, NameIndices: nameIndices, Values: values})
		return dst
	case *TupleExpression:
		items := make([]Register, len(e.Items))
		for i, item := range e.Items {
			items[i] = compileExpression(g, item)
		}
		dst := g.newLocal()
		g.emit(INewTuple{Dst: dst, Items: items})
		return dst
	case *CallExpression:
		return compileCall(g, e)
	case *SubscriptExpression:
		target := compileExpression(g, e.Target)
		index := compileExpression(g, e.Index)
		dst := g.newLocal()
		g.emit(IGetArrayIndex{Dst: dst, Target: target, Index: index})
		return dst
	case *MemberExpression:
		target := compileExpression(g, e.Target)
		dst := g.newLocal()
		g.emit(IGetField{Dst: dst, Target: target, NameIndex: g.identifier(e.Name)})
		return dst
	default:
		panic("reach: unhandled expression node in value-mode codegen")
	}
}

// compileCall lowers a call expression, desugaring a method call
// `obj.m(args)` to `m(obj, args)`: the callee becomes the property
// identifier and the object becomes argument 0 (spec's preserved Open
// Question resolution — no first-class bound methods, see DESIGN.md).
func compileCall(g *generator, e *CallExpression) Register {
	if member, ok := e.Callee.(*MemberExpression); ok {
		callee := g.newLocal()
		g.emit(IGetLocal{Dst: callee, NameIndex: g.identifier(member.Name)})
		obj := compileExpression(g, member.Target)
		args := make([]Register, 0, len(e.Args)+1)
		args = append(args, obj)
		for _, a := range e.Args {
			args = append(args, compileExpression(g, a))
		}
		dst := g.newLocal()
		g.emit(ICall{Dst: dst, Callee: callee, Args: args})
		return dst
	}
	callee := compileExpression(g, e.Callee)
	args := make([]Register, len(e.Args))
	for i, a := range e.Args {
		args[i] = compileExpression(g, a)
	}
	dst := g.newLocal()
	g.emit(ICall{Dst: dst, Callee: callee, Args: args})
	return dst
}
