package ir

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

// clauseCtx resolves the item names used throughout the clause tests.
func clauseCtx() context.Context {
	return WithResolver(context.Background(), mapResolver{
		0: "SelfTy",
		1: "T",
		2: "Arg",
		3: "OutTy",
	})
}

func TestNormalizeForm(t *testing.T) {
	n := Normalize{
		Projection: ProjectionTy{
			TraitRef: TraitRef{TraitID: 1, Parameters: []Parameter{
				TyParam{Ty: app(0)},
				TyParam{Ty: app(2)},
			}},
			Name: "Item",
		},
		Ty: app(3),
	}
	assert.Equal(t, "SelfTy as T<Arg, Item = OutTy>", Sprint(clauseCtx(), n))
}

func TestNormalizeWithoutRestArgs(t *testing.T) {
	n := Normalize{
		Projection: ProjectionTy{
			TraitRef: TraitRef{TraitID: 1, Parameters: []Parameter{TyParam{Ty: app(0)}}},
			Name:     "Item",
		},
		Ty: BoundVar(0),
	}
	// The synthetic assignment alone still forces the angle brackets.
	assert.Equal(t, "SelfTy as T<Item = ?0>", Sprint(clauseCtx(), n))
}

func TestImplementedForm(t *testing.T) {
	tests := []struct {
		name string
		wc   Implemented
		want string
	}{
		{
			"no_args",
			Implemented{TraitRef: TraitRef{TraitID: 1, Parameters: []Parameter{TyParam{Ty: app(0)}}}},
			"SelfTy as T",
		},
		{
			"with_args",
			Implemented{TraitRef: TraitRef{TraitID: 1, Parameters: []Parameter{
				TyParam{Ty: app(0)},
				TyParam{Ty: BoundVar(0)},
				LifetimeParam{Lifetime: BoundLifetime(1)},
			}}},
			"SelfTy as T<?0, '?1>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sprint(clauseCtx(), tt.wc))
		})
	}
}

func TestUnifyForm(t *testing.T) {
	u := Unify{A: app(2), B: app(3)}
	assert.Equal(t, "(Arg = OutTy)", Sprint(clauseCtx(), u))
}

func TestGoalAndScenario(t *testing.T) {
	tr := TraitRef{TraitID: 1, Parameters: []Parameter{TyParam{Ty: app(0)}}}
	goal := And{
		Left:  Leaf{Goal: Implemented{TraitRef: tr}},
		Right: Leaf{Goal: Unify{A: app(2), B: app(3)}},
	}
	assert.Equal(t, "(SelfTy as T, (Arg = OutTy))", Sprint(clauseCtx(), goal))
}

func TestGoalImpliesForm(t *testing.T) {
	tr := TraitRef{TraitID: 1, Parameters: []Parameter{TyParam{Ty: app(0)}}}
	goal := Implies{
		Clause: Implemented{TraitRef: tr},
		Goal:   Leaf{Goal: Unify{A: BoundVar(0), B: app(3)}},
	}
	assert.Equal(t, "if (SelfTy as T) { (?0 = OutTy) }", Sprint(clauseCtx(), goal))
}

func TestQuantifiedGoalBinderLabels(t *testing.T) {
	leaf := Leaf{Goal: Unify{A: BoundVar(0), B: BoundVar(0)}}
	tests := []struct {
		name string
		goal Quantified
		want string
	}{
		{"forall_type", Quantified{Kind: ForAll, Binder: TyBinder, Goal: leaf}, "forall<type> { (?0 = ?0) }"},
		{"forall_lifetime", Quantified{Kind: ForAll, Binder: LifetimeBinder, Goal: leaf}, "forall<lifetime> { (?0 = ?0) }"},
		{"exists_type", Quantified{Kind: Exists, Binder: TyBinder, Goal: leaf}, "exists<type> { (?0 = ?0) }"},
		{"exists_lifetime", Quantified{Kind: Exists, Binder: LifetimeBinder, Goal: leaf}, "exists<lifetime> { (?0 = ?0) }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sprint(context.Background(), tt.goal))
		})
	}
}

func TestNestedGoal(t *testing.T) {
	tr := TraitRef{TraitID: 1, Parameters: []Parameter{TyParam{Ty: BoundVar(0)}}}
	goal := Quantified{
		Kind:   ForAll,
		Binder: TyBinder,
		Goal: Implies{
			Clause: Implemented{TraitRef: tr},
			Goal: And{
				Left:  Leaf{Goal: Implemented{TraitRef: tr}},
				Right: Leaf{Goal: Unify{A: BoundVar(0), B: app(3)}},
			},
		},
	}
	want := "forall<type> { if (?0 as T) { (?0 as T, (?0 = OutTy)) } }"
	assert.Equal(t, want, Sprint(clauseCtx(), goal))
}
