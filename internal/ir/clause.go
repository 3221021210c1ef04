package ir

// WhereClause is a constraint assumed or required during proof search:
// either a trait-implementation assertion or an associated-type equality.
type WhereClause interface {
	Term
	isWhereClause()
}

// WhereClauseGoal is the superset of WhereClause provable as a leaf goal,
// adding raw unification assertions.
type WhereClauseGoal interface {
	Term
	isWhereClauseGoal()
}

// Goal is a proof obligation built from conjunction, implication and
// quantification over leaf where-clause assertions.
type Goal interface {
	Term
	isGoal()
}

// Normalize asserts that an associated-type projection equals Ty.
type Normalize struct {
	Projection ProjectionTy
	Ty         Ty
}

// Implemented asserts that the Self parameter implements the trait.
type Implemented struct {
	TraitRef TraitRef
}

// Unify asserts that two types are equal.
type Unify struct {
	A Ty
	B Ty
}

// QuantifierKind distinguishes universal from existential quantification.
type QuantifierKind int

const (
	ForAll QuantifierKind = iota
	Exists
)

func (k QuantifierKind) String() string {
	switch k {
	case ForAll:
		return "forall"
	case Exists:
		return "exists"
	default:
		return "quantifier(?)"
	}
}

// BinderKind tags the kind of variable a quantified goal binds.
type BinderKind int

const (
	TyBinder BinderKind = iota
	LifetimeBinder
)

func (k BinderKind) String() string {
	switch k {
	case TyBinder:
		return "type"
	case LifetimeBinder:
		return "lifetime"
	default:
		return "binder(?)"
	}
}

// Quantified introduces a fresh bound variable of the given kind scoped
// over the inner goal.
type Quantified struct {
	Kind   QuantifierKind
	Binder BinderKind
	Goal   Goal
}

// Implies makes the inner goal provable under an assumed where-clause.
type Implies struct {
	Clause WhereClause
	Goal   Goal
}

// And is the conjunction of two goals.
type And struct {
	Left  Goal
	Right Goal
}

// Leaf lifts a where-clause assertion into the goal grammar.
type Leaf struct {
	Goal WhereClauseGoal
}

func (Normalize) isTerm()              {}
func (Normalize) isWhereClause()       {}
func (Normalize) isWhereClauseGoal()   {}
func (Implemented) isTerm()            {}
func (Implemented) isWhereClause()     {}
func (Implemented) isWhereClauseGoal() {}
func (Unify) isTerm()                  {}
func (Unify) isWhereClauseGoal()       {}
func (Quantified) isTerm()             {}
func (Quantified) isGoal()             {}
func (Implies) isTerm()                {}
func (Implies) isGoal()                {}
func (And) isTerm()                    {}
func (And) isGoal()                    {}
func (Leaf) isTerm()                   {}
func (Leaf) isGoal()                   {}
