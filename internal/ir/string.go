package ir

import "context"

// Every term implements fmt.Stringer with no resolver installed, so %v and
// panic messages always produce the fallback (raw index) forms.

func (t ItemID) String() string         { return Sprint(context.Background(), t) }
func (t UniverseIndex) String() string  { return Sprint(context.Background(), t) }
func (t ForAllName) String() string     { return Sprint(context.Background(), t) }
func (t AssociatedType) String() string { return Sprint(context.Background(), t) }
func (t BoundVar) String() string       { return Sprint(context.Background(), t) }
func (t QuantifiedTy) String() string   { return Sprint(context.Background(), t) }
func (t BoundLifetime) String() string  { return Sprint(context.Background(), t) }
func (t ForAllLifetime) String() string { return Sprint(context.Background(), t) }
func (t TyParam) String() string        { return Sprint(context.Background(), t) }
func (t LifetimeParam) String() string  { return Sprint(context.Background(), t) }
func (t ApplicationTy) String() string  { return Sprint(context.Background(), t) }
func (t TraitRef) String() string       { return Sprint(context.Background(), t) }
func (t ProjectionTy) String() string   { return Sprint(context.Background(), t) }
func (t Normalize) String() string      { return Sprint(context.Background(), t) }
func (t Implemented) String() string    { return Sprint(context.Background(), t) }
func (t Unify) String() string          { return Sprint(context.Background(), t) }
func (t Quantified) String() string     { return Sprint(context.Background(), t) }
func (t Implies) String() string        { return Sprint(context.Background(), t) }
func (t And) String() string            { return Sprint(context.Background(), t) }
func (t Leaf) String() string           { return Sprint(context.Background(), t) }
