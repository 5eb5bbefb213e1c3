package reach

// This file defines the AST data contract (spec §6/SPEC_FULL §5.6): plain
// data the bytecode generator consumes. The lexer/parser that produces it
// is out of scope; tests build these nodes by hand the same way the
// teacher's grammar_ast.go node types are plain data assembled by its own
// parser, not by a library.

// Program is the root of a compilation unit: a sequence of top-level
// declarations.
type Program struct {
	Declarations []Declaration
	Location     SourceLocation
}

// Declaration is implemented by LexicalDeclaration, FunctionDeclaration,
// and StatementDeclaration.
type Declaration interface {
	declarationNode()
	Loc() SourceLocation
}

type declBase struct{ Location SourceLocation }

func (declBase) declarationNode()      {}
func (d declBase) Loc() SourceLocation { return d.Location }

// LexicalDeclaration is `let Name[: Type] = Init`.
type LexicalDeclaration struct {
	declBase
	Name string
	Type TypeExpression // nil if omitted
	Init Expression
}

// FunctionDeclaration is `function Name(Params...) [-> Return] Body`.
type FunctionDeclaration struct {
	declBase
	Name    string
	Params  []Parameter
	Return  TypeExpression // nil if omitted
	Body    *BlockStatement
}

// StatementDeclaration lifts a bare Statement to top level (e.g. a
// top-level expression statement used for its side effect).
type StatementDeclaration struct {
	declBase
	Statement Statement
}

// Parameter is one function parameter: a name and its declared type.
type Parameter struct {
	Name string
	Type TypeExpression // nil if inferred
}

// Statement is implemented by BlockStatement, IfStatement, ReturnStatement,
// ExpressionStatement.
type Statement interface {
	statementNode()
	Loc() SourceLocation
}

type stmtBase struct{ Location SourceLocation }

func (stmtBase) statementNode()        {}
func (s stmtBase) Loc() SourceLocation { return s.Location }

// BlockStatement is `{ Declarations... }`, a nested lexical scope.
type BlockStatement struct {
	stmtBase
	Declarations []Declaration
}

// IfStatement is `if Cond Then [else Else]`.
type IfStatement struct {
	stmtBase
	Cond Expression
	Then *BlockStatement
	Else *BlockStatement // nil if omitted
}

// ReturnStatement is `return [Value]`.
type ReturnStatement struct {
	stmtBase
	Value Expression // nil for a bare `return`
}

// ExpressionStatement lifts an Expression to statement position for its
// side effect.
type ExpressionStatement struct {
	stmtBase
	Expr Expression
}

// Expression is implemented by every expression node kind listed in spec §6.
type Expression interface {
	expressionNode()
	Loc() SourceLocation
}

type exprBase struct{ Location SourceLocation }

func (exprBase) expressionNode()       {}
func (e exprBase) Loc() SourceLocation { return e.Location }

// Identifier references a bound name.
type Identifier struct {
	exprBase
	Name string
}

// BooleanLiteral is `true`/`false`.
type BooleanLiteral struct {
	exprBase
	Value bool
}

// NumericLiteral is a number literal.
type NumericLiteral struct {
	exprBase
	Value float64
}

// StringLiteral is a string literal.
type StringLiteral struct {
	exprBase
	Value string
}

// ParenthesizedExpression is `(Inner)`, kept distinct from its child so
// source-location-sensitive diagnostics point at the parenthesized form.
type ParenthesizedExpression struct {
	exprBase
	Inner Expression
}

// ArrayLiteralExpression is `[Items...]`.
type ArrayLiteralExpression struct {
	exprBase
	Items []Expression
}

// ObjectLiteralExpression is `{ Name: Value, ... }`.
type ObjectLiteralExpression struct {
	exprBase
	Names  []string
	Values []Expression
}

// TupleExpression is `(Items...)` with 2 or more items (one item is just a
// ParenthesizedExpression; the parser disambiguates, out of scope here).
type TupleExpression struct {
	exprBase
	Items []Expression
}

// CallExpression is `Callee(Args...)`.
type CallExpression struct {
	exprBase
	Callee Expression
	Args   []Expression
}

// SubscriptExpression is `Target[Index]`.
type SubscriptExpression struct {
	exprBase
	Target Expression
	Index  Expression
}

// MemberExpression is `Target.Name`, lowered by the generator to either a
// GetField read or, when immediately called, a method-call desugaring
// (`obj.m(args)` -> `m(obj, args)` — spec's preserved Open Question
// resolution, see DESIGN.md).
type MemberExpression struct {
	exprBase
	Target Expression
	Name   string
}

// TypeExpression is implemented by every type-expression node kind listed
// in spec §6.
type TypeExpression interface {
	typeExpressionNode()
	Loc() SourceLocation
}

type typeExprBase struct{ Location SourceLocation }

func (typeExprBase) typeExpressionNode()   {}
func (t typeExprBase) Loc() SourceLocation { return t.Location }

// NameTypeExpression references a nominal type by name.
type NameTypeExpression struct {
	typeExprBase
	Name string
}

// ArrayTypeExpression is `[Elem]`.
type ArrayTypeExpression struct {
	typeExprBase
	Elem TypeExpression
}

// TupleTypeExpression is `(Items...)`.
type TupleTypeExpression struct {
	typeExprBase
	Items []TypeExpression
}

// RecordTypeExpression is `{ Name: Type, ... }`.
type RecordTypeExpression struct {
	typeExprBase
	Names []string
	Types []TypeExpression
}

// FunctionTypeExpression is `(Params...) -> Return`.
type FunctionTypeExpression struct {
	typeExprBase
	Params []TypeExpression
	Return TypeExpression
}

// UnionTypeExpression is `A | B | ...`, syntactic (order-sensitive, no
// normalization — spec §3).
type UnionTypeExpression struct {
	typeExprBase
	Alternatives []TypeExpression
}
