package ir

import "fmt"

// Term is the sealed interface implemented by every renderable IR node.
// Only types in this package implement it.
type Term interface {
	isTerm()
}

// TypeName identifies the head of an applied type: a declared item, a
// skolemized universal variable, or an associated type.
type TypeName interface {
	Term
	isTypeName()
}

// Ty marks nodes representing types.
type Ty interface {
	Term
	isTy()
}

// Lifetime marks nodes representing lifetimes.
type Lifetime interface {
	Term
	isLifetime()
}

// Parameter is a single generic-argument slot, either type-valued or
// lifetime-valued. Argument lists are ordered sequences of Parameters.
type Parameter interface {
	Term
	isParameter()
}

// ItemID is an opaque index identifying a declared struct or trait in some
// Program. Equality is by index only; the declared name lives in the
// registry, not in the term.
type ItemID int

// UniverseIndex identifies a position in the strictly ordered hierarchy of
// universes introduced by skolemization.
type UniverseIndex struct {
	Counter int
}

// ForAllName is a rigid (skolemized) universal type variable standing for
// an arbitrary instance of its universe.
type ForAllName struct {
	Universe UniverseIndex
}

// AssociatedType names an associated type declared by a trait.
type AssociatedType struct {
	TraitID ItemID
	Name    string
}

// BoundVar is a De Bruijn-indexed bound type variable. The depth counts
// enclosing binders, innermost = 0. Well-formedness relative to the
// enclosing binder count is the producer's responsibility; the renderer
// does not validate it.
type BoundVar uint32

// QuantifiedTy is a higher-ranked type introducing NumBinders fresh bound
// type variables scoped over Ty.
type QuantifiedTy struct {
	NumBinders uint32
	Ty         Ty
}

// BoundLifetime is a De Bruijn-indexed bound lifetime variable.
type BoundLifetime uint32

// ForAllLifetime is a rigid (skolemized) universal lifetime variable.
type ForAllLifetime struct {
	Universe UniverseIndex
}

// TyParam is a type-valued argument slot.
type TyParam struct {
	Ty Ty
}

// LifetimeParam is a lifetime-valued argument slot.
type LifetimeParam struct {
	Lifetime Lifetime
}

// ApplicationTy is a type constructor applied to an ordered argument list.
type ApplicationTy struct {
	Name       TypeName
	Parameters []Parameter
}

// TraitRef is a trait applied to an ordered argument list. Parameters[0] is
// always the implementing (Self) type or lifetime; Parameters[1:] are the
// trait's own generic arguments. Parameters is never empty.
type TraitRef struct {
	TraitID    ItemID
	Parameters []Parameter
}

// Self returns the implementing parameter. A TraitRef without parameters is
// a bug in the producing solver, not a runtime condition.
func (t TraitRef) Self() Parameter {
	if len(t.Parameters) == 0 {
		panic(fmt.Sprintf("ir: TraitRef for trait %d has no parameters (missing Self)", int(t.TraitID)))
	}
	return t.Parameters[0]
}

// ProjectionTy is an associated-type access, <TraitRef>::Name.
type ProjectionTy struct {
	TraitRef TraitRef
	Name     string
}

func (ItemID) isTerm()          {}
func (ItemID) isTypeName()      {}
func (UniverseIndex) isTerm()   {}
func (ForAllName) isTerm()      {}
func (ForAllName) isTypeName()  {}
func (AssociatedType) isTerm()  {}
func (AssociatedType) isTypeName() {}
func (BoundVar) isTerm()        {}
func (BoundVar) isTy()          {}
func (QuantifiedTy) isTerm()    {}
func (QuantifiedTy) isTy()      {}
func (BoundLifetime) isTerm()   {}
func (BoundLifetime) isLifetime() {}
func (ForAllLifetime) isTerm()  {}
func (ForAllLifetime) isLifetime() {}
func (TyParam) isTerm()         {}
func (TyParam) isParameter()    {}
func (LifetimeParam) isTerm()   {}
func (LifetimeParam) isParameter() {}
func (ApplicationTy) isTerm()   {}
func (ApplicationTy) isTy()     {}
func (TraitRef) isTerm()        {}
func (ProjectionTy) isTerm()    {}
func (ProjectionTy) isTy()      {}
