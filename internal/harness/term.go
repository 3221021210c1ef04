package harness

import (
	"fmt"

	"github.com/roach88/entail/internal/ir"
	"github.com/roach88/entail/internal/program"
)

// TermSpec is the structured YAML encoding of a single IR term. Exactly one
// field must be set; the field chooses the term shape. Items are referenced
// by declared name and resolved against the scenario registry at build time.
type TermSpec struct {
	Var         *uint32         `yaml:"var,omitempty"`
	Lifetime    *LifetimeSpec   `yaml:"lifetime,omitempty"`
	Apply       *ApplySpec      `yaml:"apply,omitempty"`
	Projection  *ProjectionSpec `yaml:"projection,omitempty"`
	ForAll      *ForAllTySpec   `yaml:"forall,omitempty"`
	Name        *NameSpec       `yaml:"name,omitempty"`
	TraitRef    *TraitRefSpec   `yaml:"trait_ref,omitempty"`
	Normalize   *NormalizeSpec  `yaml:"normalize,omitempty"`
	Implemented *TraitRefSpec   `yaml:"implemented,omitempty"`
	Unify       *UnifySpec      `yaml:"unify,omitempty"`
	Goal        *GoalSpec       `yaml:"goal,omitempty"`
}

// LifetimeSpec encodes a lifetime: a bound variable or a skolemized
// universal with its universe counter.
type LifetimeSpec struct {
	Var    *uint32 `yaml:"var,omitempty"`
	ForAll *int    `yaml:"forall,omitempty"`
}

// NameSpec encodes a TypeName.
type NameSpec struct {
	Item   string     `yaml:"item,omitempty"`
	ForAll *int       `yaml:"forall,omitempty"`
	Assoc  *AssocSpec `yaml:"assoc,omitempty"`
}

// AssocSpec encodes an associated-type name.
type AssocSpec struct {
	Trait string `yaml:"trait"`
	Name  string `yaml:"name"`
}

// ApplySpec encodes a type application.
type ApplySpec struct {
	Name   NameSpec    `yaml:"name"`
	Params []ParamSpec `yaml:"params,omitempty"`
}

// ParamSpec encodes one generic-argument slot.
type ParamSpec struct {
	Ty       *TermSpec     `yaml:"ty,omitempty"`
	Lifetime *LifetimeSpec `yaml:"lifetime,omitempty"`
}

// ForAllTySpec encodes a higher-ranked type.
type ForAllTySpec struct {
	Binders uint32   `yaml:"binders"`
	Ty      TermSpec `yaml:"ty"`
}

// TraitRefSpec encodes a trait reference; params[0] is Self.
type TraitRefSpec struct {
	Trait  string      `yaml:"trait"`
	Params []ParamSpec `yaml:"params"`
}

// ProjectionSpec encodes an associated-type access.
type ProjectionSpec struct {
	TraitRef TraitRefSpec `yaml:"trait_ref"`
	Name     string       `yaml:"name"`
}

// NormalizeSpec encodes a projection-equality assertion.
type NormalizeSpec struct {
	Projection ProjectionSpec `yaml:"projection"`
	Ty         TermSpec       `yaml:"ty"`
}

// UnifySpec encodes a type-equality assertion.
type UnifySpec struct {
	A TermSpec `yaml:"a"`
	B TermSpec `yaml:"b"`
}

// GoalSpec encodes a proof-obligation tree.
type GoalSpec struct {
	ForAll *QuantSpec   `yaml:"forall,omitempty"`
	Exists *QuantSpec   `yaml:"exists,omitempty"`
	If     *ImpliesSpec `yaml:"if,omitempty"`
	And    []GoalSpec   `yaml:"and,omitempty"`
	Leaf   *TermSpec    `yaml:"leaf,omitempty"`
}

// QuantSpec encodes a quantified goal. Binder is "type" (the default) or
// "lifetime".
type QuantSpec struct {
	Binder string   `yaml:"binder,omitempty"`
	Goal   GoalSpec `yaml:"goal"`
}

// ImpliesSpec encodes an implication goal; clause must be a where-clause.
type ImpliesSpec struct {
	Clause TermSpec `yaml:"clause"`
	Goal   GoalSpec `yaml:"goal"`
}

// DecodeError reports an invalid term encoding with the path to the
// offending node, e.g. "terms[2].apply.params[1]".
type DecodeError struct {
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func decodeErrf(path, format string, args ...any) *DecodeError {
	return &DecodeError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// Build constructs the IR term a spec encodes, resolving item references
// against reg.
func (s *TermSpec) Build(reg *program.Program) (ir.Term, error) {
	return s.build(reg, "term")
}

func (s *TermSpec) build(reg *program.Program, path string) (ir.Term, error) {
	set := 0
	for _, present := range []bool{
		s.Var != nil, s.Lifetime != nil, s.Apply != nil, s.Projection != nil,
		s.ForAll != nil, s.Name != nil, s.TraitRef != nil, s.Normalize != nil,
		s.Implemented != nil, s.Unify != nil, s.Goal != nil,
	} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, decodeErrf(path, "exactly one term shape must be set, got %d", set)
	}

	switch {
	case s.Var != nil:
		return ir.BoundVar(*s.Var), nil
	case s.Lifetime != nil:
		return buildLifetime(s.Lifetime, path+".lifetime")
	case s.Apply != nil:
		return buildApply(s.Apply, reg, path+".apply")
	case s.Projection != nil:
		return buildProjection(s.Projection, reg, path+".projection")
	case s.ForAll != nil:
		ty, err := buildTy(&s.ForAll.Ty, reg, path+".forall.ty")
		if err != nil {
			return nil, err
		}
		return ir.QuantifiedTy{NumBinders: s.ForAll.Binders, Ty: ty}, nil
	case s.Name != nil:
		return buildName(s.Name, reg, path+".name")
	case s.TraitRef != nil:
		return buildTraitRef(s.TraitRef, reg, path+".trait_ref")
	case s.Normalize != nil:
		proj, err := buildProjection(&s.Normalize.Projection, reg, path+".normalize.projection")
		if err != nil {
			return nil, err
		}
		ty, err := buildTy(&s.Normalize.Ty, reg, path+".normalize.ty")
		if err != nil {
			return nil, err
		}
		return ir.Normalize{Projection: proj, Ty: ty}, nil
	case s.Implemented != nil:
		tr, err := buildTraitRef(s.Implemented, reg, path+".implemented")
		if err != nil {
			return nil, err
		}
		return ir.Implemented{TraitRef: tr}, nil
	case s.Unify != nil:
		a, err := buildTy(&s.Unify.A, reg, path+".unify.a")
		if err != nil {
			return nil, err
		}
		b, err := buildTy(&s.Unify.B, reg, path+".unify.b")
		if err != nil {
			return nil, err
		}
		return ir.Unify{A: a, B: b}, nil
	default:
		return buildGoal(s.Goal, reg, path+".goal")
	}
}

// buildTy builds a spec and requires the result to be a type.
func buildTy(s *TermSpec, reg *program.Program, path string) (ir.Ty, error) {
	t, err := s.build(reg, path)
	if err != nil {
		return nil, err
	}
	ty, ok := t.(ir.Ty)
	if !ok {
		return nil, decodeErrf(path, "expected a type, got %T", t)
	}
	return ty, nil
}

func buildLifetime(s *LifetimeSpec, path string) (ir.Lifetime, error) {
	switch {
	case s.Var != nil && s.ForAll == nil:
		return ir.BoundLifetime(*s.Var), nil
	case s.ForAll != nil && s.Var == nil:
		return ir.ForAllLifetime{Universe: ir.UniverseIndex{Counter: *s.ForAll}}, nil
	default:
		return nil, decodeErrf(path, "lifetime needs exactly one of var, forall")
	}
}

func buildName(s *NameSpec, reg *program.Program, path string) (ir.TypeName, error) {
	set := 0
	if s.Item != "" {
		set++
	}
	if s.ForAll != nil {
		set++
	}
	if s.Assoc != nil {
		set++
	}
	if set != 1 {
		return nil, decodeErrf(path, "name needs exactly one of item, forall, assoc")
	}
	switch {
	case s.Item != "":
		return lookupItem(reg, s.Item, path)
	case s.ForAll != nil:
		return ir.ForAllName{Universe: ir.UniverseIndex{Counter: *s.ForAll}}, nil
	default:
		trait, err := lookupItem(reg, s.Assoc.Trait, path+".assoc")
		if err != nil {
			return nil, err
		}
		return ir.AssociatedType{TraitID: trait, Name: s.Assoc.Name}, nil
	}
}

func lookupItem(reg *program.Program, name, path string) (ir.ItemID, error) {
	id, ok := reg.ItemID(name)
	if !ok {
		return 0, decodeErrf(path, "item %q is not declared in the scenario registry", name)
	}
	return id, nil
}

func buildApply(s *ApplySpec, reg *program.Program, path string) (ir.ApplicationTy, error) {
	name, err := buildName(&s.Name, reg, path+".name")
	if err != nil {
		return ir.ApplicationTy{}, err
	}
	params, err := buildParams(s.Params, reg, path)
	if err != nil {
		return ir.ApplicationTy{}, err
	}
	return ir.ApplicationTy{Name: name, Parameters: params}, nil
}

func buildParams(specs []ParamSpec, reg *program.Program, path string) ([]ir.Parameter, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	params := make([]ir.Parameter, len(specs))
	for i, ps := range specs {
		p, err := buildParam(&ps, reg, fmt.Sprintf("%s.params[%d]", path, i))
		if err != nil {
			return nil, err
		}
		params[i] = p
	}
	return params, nil
}

func buildParam(s *ParamSpec, reg *program.Program, path string) (ir.Parameter, error) {
	switch {
	case s.Ty != nil && s.Lifetime == nil:
		ty, err := buildTy(s.Ty, reg, path+".ty")
		if err != nil {
			return nil, err
		}
		return ir.TyParam{Ty: ty}, nil
	case s.Lifetime != nil && s.Ty == nil:
		lt, err := buildLifetime(s.Lifetime, path+".lifetime")
		if err != nil {
			return nil, err
		}
		return ir.LifetimeParam{Lifetime: lt}, nil
	default:
		return nil, decodeErrf(path, "param needs exactly one of ty, lifetime")
	}
}

func buildTraitRef(s *TraitRefSpec, reg *program.Program, path string) (ir.TraitRef, error) {
	trait, err := lookupItem(reg, s.Trait, path+".trait")
	if err != nil {
		return ir.TraitRef{}, err
	}
	if len(s.Params) == 0 {
		return ir.TraitRef{}, decodeErrf(path, "trait_ref needs at least the Self parameter")
	}
	params, err := buildParams(s.Params, reg, path)
	if err != nil {
		return ir.TraitRef{}, err
	}
	return ir.TraitRef{TraitID: trait, Parameters: params}, nil
}

func buildProjection(s *ProjectionSpec, reg *program.Program, path string) (ir.ProjectionTy, error) {
	tr, err := buildTraitRef(&s.TraitRef, reg, path+".trait_ref")
	if err != nil {
		return ir.ProjectionTy{}, err
	}
	if s.Name == "" {
		return ir.ProjectionTy{}, decodeErrf(path, "projection name is required")
	}
	return ir.ProjectionTy{TraitRef: tr, Name: s.Name}, nil
}

func buildGoal(s *GoalSpec, reg *program.Program, path string) (ir.Goal, error) {
	set := 0
	for _, present := range []bool{s.ForAll != nil, s.Exists != nil, s.If != nil, s.And != nil, s.Leaf != nil} {
		if present {
			set++
		}
	}
	if set != 1 {
		return nil, decodeErrf(path, "exactly one goal shape must be set, got %d", set)
	}

	switch {
	case s.ForAll != nil:
		return buildQuantified(ir.ForAll, s.ForAll, reg, path+".forall")
	case s.Exists != nil:
		return buildQuantified(ir.Exists, s.Exists, reg, path+".exists")
	case s.If != nil:
		clause, err := s.If.Clause.build(reg, path+".if.clause")
		if err != nil {
			return nil, err
		}
		wc, ok := clause.(ir.WhereClause)
		if !ok {
			return nil, decodeErrf(path+".if.clause", "expected a where-clause, got %T", clause)
		}
		inner, err := buildGoal(&s.If.Goal, reg, path+".if.goal")
		if err != nil {
			return nil, err
		}
		return ir.Implies{Clause: wc, Goal: inner}, nil
	case s.And != nil:
		if len(s.And) != 2 {
			return nil, decodeErrf(path+".and", "and needs exactly two goals, got %d", len(s.And))
		}
		left, err := buildGoal(&s.And[0], reg, path+".and[0]")
		if err != nil {
			return nil, err
		}
		right, err := buildGoal(&s.And[1], reg, path+".and[1]")
		if err != nil {
			return nil, err
		}
		return ir.And{Left: left, Right: right}, nil
	default:
		leaf, err := s.Leaf.build(reg, path+".leaf")
		if err != nil {
			return nil, err
		}
		wcg, ok := leaf.(ir.WhereClauseGoal)
		if !ok {
			return nil, decodeErrf(path+".leaf", "expected a where-clause goal, got %T", leaf)
		}
		return ir.Leaf{Goal: wcg}, nil
	}
}

func buildQuantified(kind ir.QuantifierKind, s *QuantSpec, reg *program.Program, path string) (ir.Goal, error) {
	var binder ir.BinderKind
	switch s.Binder {
	case "", "type":
		binder = ir.TyBinder
	case "lifetime":
		binder = ir.LifetimeBinder
	default:
		return nil, decodeErrf(path+".binder", "invalid binder %q: must be type or lifetime", s.Binder)
	}
	inner, err := buildGoal(&s.Goal, reg, path+".goal")
	if err != nil {
		return nil, err
	}
	return ir.Quantified{Kind: kind, Binder: binder, Goal: inner}, nil
}
