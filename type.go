package reach

import (
	"fmt"
	"io"
	"strings"
)

// TypeKind tags which of the eleven type variants (spec §3) a *Type holds.
type TypeKind uint8

const (
	TypeKindName TypeKind = iota
	TypeKindFunction
	TypeKindArray
	TypeKindRecord
	TypeKindVar
	TypeKindTuple
	TypeKindUnion
	TypeKindBinding
	TypeKindMeta // "the type of a Type value itself" (spec §3: TypeType)
	TypeKindTop  // ⊤: accepts any value, used for stringify's parameter
	TypeKindBottom
)

// RecordField is one named field of a Record type.
type RecordField struct {
	Name string
	Type *Type
}

// Type is a reified type, itself a managed Cell so it can be passed around,
// stored in variables, and compared as an ordinary Value during both
// execution and type checking (spec §3/§4.5). One struct with a kind tag
// and the fields relevant to that kind, the same shape this package uses
// for Value and the AST node types — grounded on
// original_source/src/typing/Type.h's closed variant set. Top and Bottom
// carry no extra fields: Top unifies with anything, Bottom with nothing.
type Type struct {
	cellHeader
	Variant TypeKind

	// Name
	Name string

	// Function
	Params []*Type
	Return *Type

	// Array / Binding
	Elem *Type

	// Record
	Fields []RecordField

	// Var
	UID    uint64
	Rigid  bool // a rigid (user-written) type variable never gets unified away
	VarTag string

	// Tuple
	Items []*Type

	// Union
	Alternatives []*Type
}

// NewNameType builds a nominal type (spec §3 "Name by interned identity").
func NewNameType(h *Heap, name string) *Type {
	t := &Type{Variant: TypeKindName, Name: name}
	h.register(t, CellKindType)
	return t
}

// NewFunctionType builds a function type from parameter types and a return type.
func NewFunctionType(h *Heap, params []*Type, ret *Type) *Type {
	t := &Type{Variant: TypeKindFunction, Params: append([]*Type(nil), params...), Return: ret}
	h.register(t, CellKindType)
	return t
}

// NewArrayType builds an array-of-elem type.
func NewArrayType(h *Heap, elem *Type) *Type {
	t := &Type{Variant: TypeKindArray, Elem: elem}
	h.register(t, CellKindType)
	return t
}

// NewRecordType builds a record type from its field set.
func NewRecordType(h *Heap, fields []RecordField) *Type {
	t := &Type{Variant: TypeKindRecord, Fields: append([]RecordField(nil), fields...)}
	h.register(t, CellKindType)
	return t
}

// NewVarType allocates a fresh unification variable. uid must be unique
// within the VM that owns it (spec §4.5: UnificationScope assigns these).
func NewVarType(h *Heap, uid uint64, rigid bool, tag string) *Type {
	t := &Type{Variant: TypeKindVar, UID: uid, Rigid: rigid, VarTag: tag}
	h.register(t, CellKindType)
	return t
}

// NewTupleType builds a fixed-arity tuple type.
func NewTupleType(h *Heap, items []*Type) *Type {
	t := &Type{Variant: TypeKindTuple, Items: append([]*Type(nil), items...)}
	h.register(t, CellKindType)
	return t
}

// NewUnionType builds a syntactic union — A|B is a distinct type from B|A,
// no normalization (spec §3).
func NewUnionType(h *Heap, alts []*Type) *Type {
	t := &Type{Variant: TypeKindUnion, Alternatives: append([]*Type(nil), alts...)}
	h.register(t, CellKindType)
	return t
}

// NewBindingType wraps elem, used where a binding form (e.g. a let target)
// needs to carry both a name and an underlying type.
func NewBindingType(h *Heap, elem *Type) *Type {
	t := &Type{Variant: TypeKindBinding, Elem: elem}
	h.register(t, CellKindType)
	return t
}

// NewTopType builds ⊤, the type every value satisfies (spec §3: "Top
// accepts all values"). Used for stringify's parameter and for an empty
// array literal's element type, where nothing constrains it further.
func NewTopType(h *Heap) *Type {
	t := &Type{Variant: TypeKindTop}
	h.register(t, CellKindType)
	return t
}

// NewBottomType builds ⊥, the type no value satisfies (spec §3: "Bottom
// accepts none").
func NewBottomType(h *Heap) *Type {
	t := &Type{Variant: TypeKindBottom}
	h.register(t, CellKindType)
	return t
}

// Kind implements Cell.
func (t *Type) Kind() CellKind { return CellKindType }

func (t *Type) Visit(fn func(Value)) {
	switch t.Variant {
	case TypeKindArray, TypeKindBinding:
		if t.Elem != nil {
			fn(NewCell(t.Elem))
		}
	case TypeKindFunction:
		for _, p := range t.Params {
			fn(NewCell(p))
		}
		if t.Return != nil {
			fn(NewCell(t.Return))
		}
	case TypeKindRecord:
		for _, f := range t.Fields {
			fn(NewCell(f.Type))
		}
	case TypeKindTuple:
		for _, it := range t.Items {
			fn(NewCell(it))
		}
	case TypeKindUnion:
		for _, a := range t.Alternatives {
			fn(NewCell(a))
		}
	}
}

func (t *Type) Dump(w io.Writer) { fmt.Fprint(w, t.String()) }

// String renders t the way diagnostics and TypeError messages do.
func (t *Type) String() string {
	switch t.Variant {
	case TypeKindName:
		return t.Name
	case TypeKindFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Return.String())
	case TypeKindArray:
		return fmt.Sprintf("[%s]", t.Elem.String())
	case TypeKindRecord:
		parts := make([]string, len(t.Fields))
		for i, f := range t.Fields {
			parts[i] = fmt.Sprintf("%s: %s", f.Name, f.Type.String())
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case TypeKindVar:
		if t.VarTag != "" {
			return t.VarTag
		}
		return fmt.Sprintf("$%d", t.UID)
	case TypeKindTuple:
		parts := make([]string, len(t.Items))
		for i, it := range t.Items {
			parts[i] = it.String()
		}
		return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
	case TypeKindUnion:
		parts := make([]string, len(t.Alternatives))
		for i, a := range t.Alternatives {
			parts[i] = a.String()
		}
		return strings.Join(parts, " | ")
	case TypeKindBinding:
		return t.Elem.String()
	case TypeKindMeta:
		return "Type"
	case TypeKindTop:
		return "Top"
	case TypeKindBottom:
		return "Bottom"
	default:
		return "<unknown type>"
	}
}

// Equal implements the structural equality rules from spec §3: Name by
// interned identity (here, string equality — identifiers are deduplicated
// per BytecodeBlock, not globally, so string compare is the portable
// equivalent), Function componentwise, Array by item type, Record by
// field-set equality (order-insensitive), Var by uid, Tuple componentwise,
// Union syntactic (A|B != B|A), Top and Bottom each equal only their own kind.
func (a *Type) Equal(b *Type) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Variant != b.Variant {
		return false
	}
	switch a.Variant {
	case TypeKindName:
		return a.Name == b.Name
	case TypeKindFunction:
		if len(a.Params) != len(b.Params) || !a.Return.Equal(b.Return) {
			return false
		}
		for i := range a.Params {
			if !a.Params[i].Equal(b.Params[i]) {
				return false
			}
		}
		return true
	case TypeKindArray, TypeKindBinding:
		return a.Elem.Equal(b.Elem)
	case TypeKindRecord:
		return recordFieldsEqual(a.Fields, b.Fields)
	case TypeKindVar:
		return a.UID == b.UID
	case TypeKindTuple:
		if len(a.Items) != len(b.Items) {
			return false
		}
		for i := range a.Items {
			if !a.Items[i].Equal(b.Items[i]) {
				return false
			}
		}
		return true
	case TypeKindUnion:
		if len(a.Alternatives) != len(b.Alternatives) {
			return false
		}
		for i := range a.Alternatives {
			if !a.Alternatives[i].Equal(b.Alternatives[i]) {
				return false
			}
		}
		return true
	case TypeKindMeta, TypeKindTop, TypeKindBottom:
		return true
	}
	return false
}

func recordFieldsEqual(a, b []RecordField) bool {
	if len(a) != len(b) {
		return false
	}
	bySet := make(map[string]*Type, len(b))
	for _, f := range b {
		bySet[f.Name] = f.Type
	}
	for _, f := range a {
		bt, ok := bySet[f.Name]
		if !ok || !f.Type.Equal(bt) {
			return false
		}
	}
	return true
}

// Substitute replaces every free Var in t per subst, recursively
// (original_source/src/typing/Substitution.cpp). Compound types are always
// rebuilt as fresh Types; Name, Meta, Top, Bottom and unbound Vars are
// returned as they are.
func (t *Type) Substitute(vm *VM, subst Substitutions) *Type {
	switch t.Variant {
	case TypeKindVar:
		if repl, ok := subst[t.UID]; ok {
			return repl
		}
		return t
	case TypeKindArray:
		return NewArrayType(vm.Heap, t.Elem.Substitute(vm, subst))
	case TypeKindBinding:
		return NewBindingType(vm.Heap, t.Elem.Substitute(vm, subst))
	case TypeKindFunction:
		params := make([]*Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = p.Substitute(vm, subst)
		}
		return NewFunctionType(vm.Heap, params, t.Return.Substitute(vm, subst))
	case TypeKindRecord:
		fields := make([]RecordField, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = RecordField{Name: f.Name, Type: f.Type.Substitute(vm, subst)}
		}
		return NewRecordType(vm.Heap, fields)
	case TypeKindTuple:
		items := make([]*Type, len(t.Items))
		for i, it := range t.Items {
			items[i] = it.Substitute(vm, subst)
		}
		return NewTupleType(vm.Heap, items)
	case TypeKindUnion:
		alts := make([]*Type, len(t.Alternatives))
		for i, a := range t.Alternatives {
			alts[i] = a.Substitute(vm, subst)
		}
		return NewUnionType(vm.Heap, alts)
	default:
		return t
	}
}

// IsFreeVar reports whether t is a non-rigid (substitutable) type variable.
func (t *Type) IsFreeVar() bool { return t.Variant == TypeKindVar && !t.Rigid }
