package reach

import "fmt"

// unificationConstraint is one queued "lhs must have type rhs" obligation.
// Constraints are solved in the order they were enqueued (spec §4.5: a FIFO
// queue, not solved eagerly at Unify time).
type unificationConstraint struct {
	lhs Value
	rhs *Type
	loc SourceLocation
}

// unificationScopeState is the Open->Finalized state machine spec §4.5
// describes: a scope accepts new constraints only while Open, and Resolve
// is a one-way transition.
type unificationScopeState uint8

const (
	scopeOpen unificationScopeState = iota
	scopeFinalized
)

// UnificationScope collects type constraints discovered while
// type-checking one lexical region (typically a function body) and solves
// them together at Resolve time, rather than failing at the first
// mismatch. Grounded on original_source/src/typing/UnificationScope.{h,cpp}.
//
// Open Question resolved (see DESIGN.md): a child scope's substitution is
// NOT propagated to its parent on Resolve — each scope's bindings stay
// local to itself.
type UnificationScope struct {
	vm     *VM
	parent *UnificationScope

	constraints  []unificationConstraint
	inferredVars []*Type
	subst        Substitutions
	state        unificationScopeState
}

// NewUnificationScope opens a scope nested under parent (nil at the
// outermost level).
func NewUnificationScope(vm *VM, parent *UnificationScope) *UnificationScope {
	return &UnificationScope{vm: vm, parent: parent, subst: make(Substitutions)}
}

// Parent returns the enclosing scope, or nil.
func (s *UnificationScope) Parent() *UnificationScope { return s.parent }

// NewVar allocates a fresh type variable scoped to this UnificationScope
// and, unless it is rigid, records it as one that must be bound (directly
// or transitively) by the time Resolve runs.
func (s *UnificationScope) NewVar(rigid bool, tag string) *Type {
	uid := s.vm.nextVarUID()
	v := NewVarType(s.vm.Heap, uid, rigid, tag)
	if !rigid {
		s.inferredVars = append(s.inferredVars, v)
	}
	return v
}

// Unify enqueues the constraint "lhs has type rhs", to be solved in FIFO
// order when Resolve runs. Enqueuing after Resolve has already finalized
// this scope is a generator bug.
func (s *UnificationScope) Unify(lhs Value, rhs *Type, loc SourceLocation) {
	if s.state == scopeFinalized {
		panic("reach: Unify on a finalized UnificationScope")
	}
	logUnificationScope("enqueue %s ~ %s", lhs, rhs)
	s.constraints = append(s.constraints, unificationConstraint{lhs: lhs, rhs: rhs, loc: loc})
}

// Resolve finalizes the scope: drains every queued constraint in FIFO
// order, checks that every variable introduced by NewVar ended up bound,
// and applies the resulting substitution to resultType. Returns the first
// TypeError encountered, if any, and the (possibly substituted) result.
func (s *UnificationScope) Resolve(resultType *Type) (*Type, error) {
	if s.state == scopeFinalized {
		panic("reach: UnificationScope resolved twice")
	}
	s.state = scopeFinalized

	for _, c := range s.constraints {
		if err := s.unifies(c.lhs, c.rhs, c.loc); err != nil {
			return resultType, err
		}
	}
	for _, v := range s.inferredVars {
		if _, ok := s.subst[v.UID]; !ok {
			return resultType, &TypeError{Message: fmt.Sprintf("unable to infer type for %s", v)}
		}
	}
	return resultType.Substitute(s.vm, s.subst), nil
}

// bind records uid -> t in this scope's local substitution, never the
// parent's (the Open Question resolution above).
func (s *UnificationScope) bind(uid uint64, t *Type) {
	logConstraintSolving("bind $%d = %s", uid, t)
	s.subst[uid] = t
}

func (s *UnificationScope) applySubst(t *Type) *Type {
	return s.subst.Apply(t)
}

// unifies implements the constraint-solving algorithm from
// original_source's UnificationScope::unifies: Top unifies with anything
// (stringify's parameter, spec §6); compute lhsType = typeOf(lhs), rhsType
// = applySubst(rhs); if lhs is itself a Type and rhsType is a free
// (non-rigid) Var, bind the var to lhs's wrapped type; else if lhsType
// structurally equals rhsType, succeed (this also covers Bottom, which
// equals nothing but itself, so always falls through to the mismatch
// below); else if rhsType is still a Var, replace it with the meta "Type"
// type for diagnostics and report a mismatch; else report "expected
// rhsType but found lhsType".
func (s *UnificationScope) unifies(lhs Value, rhs *Type, loc SourceLocation) error {
	lhsType := lhs.Type(s.vm)
	rhsType := s.applySubst(rhs)

	if rhsType.Variant == TypeKindTop {
		return nil
	}
	if lhs.IsType() && rhsType.IsFreeVar() {
		s.bind(rhsType.UID, s.applySubst(lhs.AsTypeCell()))
		return nil
	}
	if lhsType.Equal(rhsType) {
		return nil
	}
	if rhsType.IsFreeVar() {
		return &TypeError{
			Location: loc,
			Message:  fmt.Sprintf("expected Type but found %s", lhsType),
		}
	}
	return &TypeError{
		Location: loc,
		Message:  fmt.Sprintf("expected %s but found %s", rhsType, lhsType),
	}
}
