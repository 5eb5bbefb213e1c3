package reach

// Additional opcodes for type-check-mode bytecode (spec §4.5): the same
// instruction stream shape, naming operations that produce Hole/Type values
// instead of concrete computation. Nothing in this package emits or executes
// them: TypeChecker (typecheckgen.go) performs the equivalent steps by
// walking the AST directly. Grounded on
// original_source/src/ast/CodegenTypeChecking.cpp and src/typing/*.
const (
	OpPushScope Opcode = iota + 100
	OpPopScope
	OpPushUnificationScope
	OpPopUnificationScope
	OpUnify
	OpResolveType
	OpCheckType
	OpCheckValue
	OpTypeError
	OpNewVarType
	OpNewNameType
	OpNewArrayType
	OpNewRecordType
	OpNewFunctionType
	OpNewUnionType
	OpNewBindingType
	OpNewTupleType
	OpNewValue
	OpGetTypeForValue
	OpNewCallHole
	OpNewSubscriptHole
	OpNewMemberHole
	OpInferImplicitParameters
)

// IPushScope opens a new lexical Environment child scope.
type IPushScope struct{ baseInstruction }

func (i IPushScope) Name() string     { return "PushScope" }
func (i IPushScope) SizeInBytes() int { return wordSize }
func (i IPushScope) Op() Opcode       { return OpPushScope }

// IPopScope closes the innermost lexical Environment scope.
type IPopScope struct{ baseInstruction }

func (i IPopScope) Name() string     { return "PopScope" }
func (i IPopScope) SizeInBytes() int { return wordSize }
func (i IPopScope) Op() Opcode       { return OpPopScope }

// IPushUnificationScope opens a new UnificationScope, nested under whatever
// scope is currently open (spec §4.5 Open Question: no substitution
// propagation to the parent on resolve).
type IPushUnificationScope struct{ baseInstruction }

func (i IPushUnificationScope) Name() string     { return "PushUnificationScope" }
func (i IPushUnificationScope) SizeInBytes() int { return wordSize }
func (i IPushUnificationScope) Op() Opcode       { return OpPushUnificationScope }

// IPopUnificationScope finalizes the innermost UnificationScope without
// resolving it (resolution is a separate, explicit step via IResolveType).
type IPopUnificationScope struct{ baseInstruction }

func (i IPopUnificationScope) Name() string     { return "PopUnificationScope" }
func (i IPopUnificationScope) SizeInBytes() int { return wordSize }
func (i IPopUnificationScope) Op() Opcode       { return OpPopUnificationScope }

// IUnify enqueues a constraint between the Value in Lhs and the Type in Rhs
// on the innermost open UnificationScope.
type IUnify struct {
	baseInstruction
	Lhs, Rhs Register
}

func (i IUnify) Name() string     { return "Unify" }
func (i IUnify) SizeInBytes() int { return wordSize * 3 }
func (i IUnify) Op() Opcode       { return OpUnify }

// IResolveType finalizes the innermost UnificationScope, solving every
// queued constraint and applying the resulting substitution to Result.
type IResolveType struct {
	baseInstruction
	Dst, Result Register
}

func (i IResolveType) Name() string     { return "ResolveType" }
func (i IResolveType) SizeInBytes() int { return wordSize * 3 }
func (i IResolveType) Op() Opcode       { return OpResolveType }

// ICheckType asserts that Value's type structurally matches Expected,
// recording a TypeError (not panicking) on mismatch.
type ICheckType struct {
	baseInstruction
	Value, Expected Register
}

func (i ICheckType) Name() string     { return "CheckType" }
func (i ICheckType) SizeInBytes() int { return wordSize * 3 }
func (i ICheckType) Op() Opcode       { return OpCheckType }

// ICheckValue asserts a runtime-checkable property of Value directly
// (e.g. a literal discriminant), recording a TypeError on failure.
type ICheckValue struct {
	baseInstruction
	Value, Expected Register
}

func (i ICheckValue) Name() string     { return "CheckValue" }
func (i ICheckValue) SizeInBytes() int { return wordSize * 3 }
func (i ICheckValue) Op() Opcode       { return OpCheckValue }

// ITypeError unconditionally records a TypeError with the given message
// constant at the current location.
type ITypeError struct {
	baseInstruction
	MessageIndex int
}

func (i ITypeError) Name() string     { return "TypeError" }
func (i ITypeError) SizeInBytes() int { return wordSize * 2 }
func (i ITypeError) Op() Opcode       { return OpTypeError }

// INewVarType allocates a fresh type variable into Dst.
type INewVarType struct {
	baseInstruction
	Dst   Register
	Rigid bool
	Tag   int // identifier index, or -1 for an anonymous variable
}

func (i INewVarType) Name() string     { return "NewVarType" }
func (i INewVarType) SizeInBytes() int { return wordSize * 4 }
func (i INewVarType) Op() Opcode       { return OpNewVarType }

// INewNameType builds a nominal type named by the identifier at NameIndex.
type INewNameType struct {
	baseInstruction
	Dst       Register
	NameIndex int
}

func (i INewNameType) Name() string     { return "NewNameType" }
func (i INewNameType) SizeInBytes() int { return wordSize * 3 }
func (i INewNameType) Op() Opcode       { return OpNewNameType }

// INewArrayType builds [Elem].
type INewArrayType struct {
	baseInstruction
	Dst, Elem Register
}

func (i INewArrayType) Name() string     { return "NewArrayType" }
func (i INewArrayType) SizeInBytes() int { return wordSize * 3 }
func (i INewArrayType) Op() Opcode       { return OpNewArrayType }

// INewRecordType builds a record type from parallel name-index/type registers.
type INewRecordType struct {
	baseInstruction
	Dst         Register
	NameIndices []int
	FieldTypes  []Register
}

func (i INewRecordType) Name() string     { return "NewRecordType" }
func (i INewRecordType) SizeInBytes() int { return wordSize * (2 + 2*len(i.FieldTypes)) }
func (i INewRecordType) Op() Opcode       { return OpNewRecordType }

// INewFunctionType builds (Params...) -> Return.
type INewFunctionType struct {
	baseInstruction
	Dst    Register
	Params []Register
	Return Register
}

func (i INewFunctionType) Name() string     { return "NewFunctionType" }
func (i INewFunctionType) SizeInBytes() int { return wordSize * (3 + len(i.Params)) }
func (i INewFunctionType) Op() Opcode       { return OpNewFunctionType }

// INewUnionType builds Alternatives[0] | Alternatives[1] | ... (syntactic,
// no normalization — spec §3).
type INewUnionType struct {
	baseInstruction
	Dst          Register
	Alternatives []Register
}

func (i INewUnionType) Name() string     { return "NewUnionType" }
func (i INewUnionType) SizeInBytes() int { return wordSize * (2 + len(i.Alternatives)) }
func (i INewUnionType) Op() Opcode       { return OpNewUnionType }

// INewBindingType wraps Elem in a Binding type.
type INewBindingType struct {
	baseInstruction
	Dst, Elem Register
}

func (i INewBindingType) Name() string     { return "NewBindingType" }
func (i INewBindingType) SizeInBytes() int { return wordSize * 3 }
func (i INewBindingType) Op() Opcode       { return OpNewBindingType }

// INewTupleType builds a fixed-arity tuple type from Items.
type INewTupleType struct {
	baseInstruction
	Dst   Register
	Items []Register
}

func (i INewTupleType) Name() string     { return "NewTupleType" }
func (i INewTupleType) SizeInBytes() int { return wordSize * (2 + len(i.Items)) }
func (i INewTupleType) Op() Opcode       { return OpNewTupleType }

// INewValue wraps the Type in Src as an AbstractValue in Dst, the
// "some value of this type" construction used when entering type-check mode.
type INewValue struct {
	baseInstruction
	Dst, Src Register
}

func (i INewValue) Name() string     { return "NewValue" }
func (i INewValue) SizeInBytes() int { return wordSize * 3 }
func (i INewValue) Op() Opcode       { return OpNewValue }

// IGetTypeForValue reflects Src to its nominal Type in Dst (Value.Type).
type IGetTypeForValue struct {
	baseInstruction
	Dst, Src Register
}

func (i IGetTypeForValue) Name() string     { return "GetTypeForValue" }
func (i IGetTypeForValue) SizeInBytes() int { return wordSize * 3 }
func (i IGetTypeForValue) Op() Opcode       { return OpGetTypeForValue }

// INewCallHole materializes a HoleCall from Callee/Args into Dst.
type INewCallHole struct {
	baseInstruction
	Dst, Callee Register
	Args        []Register
}

func (i INewCallHole) Name() string     { return "NewCallHole" }
func (i INewCallHole) SizeInBytes() int { return wordSize * (3 + len(i.Args)) }
func (i INewCallHole) Op() Opcode       { return OpNewCallHole }

// INewSubscriptHole materializes a HoleSubscript from Target/Index into Dst.
type INewSubscriptHole struct {
	baseInstruction
	Dst, Target, Index Register
}

func (i INewSubscriptHole) Name() string     { return "NewSubscriptHole" }
func (i INewSubscriptHole) SizeInBytes() int { return wordSize * 4 }
func (i INewSubscriptHole) Op() Opcode       { return OpNewSubscriptHole }

// INewMemberHole materializes a HoleMember from Target.<name at NameIndex>
// into Dst.
type INewMemberHole struct {
	baseInstruction
	Dst, Target Register
	NameIndex   int
}

func (i INewMemberHole) Name() string     { return "NewMemberHole" }
func (i INewMemberHole) SizeInBytes() int { return wordSize * 4 }
func (i INewMemberHole) Op() Opcode       { return OpNewMemberHole }

// IInferImplicitParameters scans Fn's declared parameter types for free
// type variables not otherwise bound by an argument and introduces them as
// implicit generic parameters, the last step of a function's type-check
// prologue (original_source/src/ast/CodegenTypeChecking.cpp).
type IInferImplicitParameters struct {
	baseInstruction
	Fn Register
}

func (i IInferImplicitParameters) Name() string     { return "InferImplicitParameters" }
func (i IInferImplicitParameters) SizeInBytes() int { return wordSize * 2 }
func (i IInferImplicitParameters) Op() Opcode       { return OpInferImplicitParameters }
