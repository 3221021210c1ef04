package ir

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fprint renders t to w in its canonical text form. A resolver installed on
// ctx (see WithResolver) supplies declared names for ItemIDs; without one,
// or for ids the resolver does not know, the raw index form ItemID(n) is
// printed so missing-context output stays debuggable. The only error
// condition is the sink's own write failure, which aborts the render and is
// returned unchanged.
func Fprint(ctx context.Context, w io.Writer, t Term) error {
	p := printer{w: w}
	p.resolver, _ = ResolverFrom(ctx)
	return p.term(t)
}

// Sprint renders t to a string.
func Sprint(ctx context.Context, t Term) string {
	var sb strings.Builder
	// strings.Builder writes never fail.
	_ = Fprint(ctx, &sb, t)
	return sb.String()
}

// Angle renders elems as a comma-joined, angle-bracket-delimited list, or
// nothing at all when elems is empty. This is the single bracketing rule
// used for constructor arguments, trait arguments and associated-type
// bindings. Element order is preserved.
func Angle(ctx context.Context, w io.Writer, elems []Term) error {
	p := printer{w: w}
	p.resolver, _ = ResolverFrom(ctx)
	return p.angle(elems)
}

type printer struct {
	w        io.Writer
	resolver Resolver
}

func (p *printer) printf(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, format, args...)
	return err
}

// ident writes a declared identifier. Names are NFC-normalized at the
// output boundary so equal identifiers render as equal bytes regardless of
// how the producer composed them.
func (p *printer) ident(name string) error {
	_, err := io.WriteString(p.w, norm.NFC.String(name))
	return err
}

// term dispatches on the term shape. Dispatch is total: an unknown Term is
// impossible for the sealed interface, so the default arm panics.
func (p *printer) term(t Term) error {
	switch t := t.(type) {
	case ItemID:
		return p.itemID(t)
	case UniverseIndex:
		return p.printf("U%d", t.Counter)
	case ForAllName:
		return p.printf("!%d", t.Universe.Counter)
	case AssociatedType:
		if err := p.printf("("); err != nil {
			return err
		}
		if err := p.itemID(t.TraitID); err != nil {
			return err
		}
		if err := p.printf("::"); err != nil {
			return err
		}
		if err := p.ident(t.Name); err != nil {
			return err
		}
		return p.printf(")")
	case TyParam:
		return p.term(t.Ty)
	case LifetimeParam:
		return p.term(t.Lifetime)
	case BoundVar:
		return p.printf("?%d", uint32(t))
	case QuantifiedTy:
		if err := p.printf("for<%d> ", t.NumBinders); err != nil {
			return err
		}
		return p.term(t.Ty)
	case BoundLifetime:
		return p.printf("'?%d", uint32(t))
	case ForAllLifetime:
		return p.printf("'!%d", t.Universe.Counter)
	case ApplicationTy:
		if err := p.term(t.Name); err != nil {
			return err
		}
		return p.angle(paramTerms(t.Parameters))
	case TraitRef:
		return p.traitRef(t)
	case ProjectionTy:
		return p.projection(t)
	case Normalize:
		return p.normalize(t)
	case Implemented:
		return p.traitRef(t.TraitRef)
	case Unify:
		return p.unify(t)
	case Quantified:
		return p.quantified(t)
	case Implies:
		return p.implies(t)
	case And:
		return p.and(t)
	case Leaf:
		return p.term(t.Goal)
	case assignment:
		if err := p.ident(t.name); err != nil {
			return err
		}
		if err := p.printf(" = "); err != nil {
			return err
		}
		return p.term(t.ty)
	default:
		panic(fmt.Sprintf("ir: unhandled term %T", t))
	}
}

// itemID prints the declared name when the active resolver knows the id,
// and the raw index otherwise.
func (p *printer) itemID(id ItemID) error {
	if p.resolver != nil {
		if name, ok := p.resolver.NameOf(id); ok {
			return p.ident(name)
		}
	}
	return p.printf("ItemID(%d)", int(id))
}

func (p *printer) traitRef(t TraitRef) error {
	if err := p.term(t.Self()); err != nil {
		return err
	}
	if err := p.printf(" as "); err != nil {
		return err
	}
	if err := p.itemID(t.TraitID); err != nil {
		return err
	}
	return p.angle(paramTerms(t.Parameters[1:]))
}

func (p *printer) projection(t ProjectionTy) error {
	if err := p.printf("<"); err != nil {
		return err
	}
	if err := p.traitRef(t.TraitRef); err != nil {
		return err
	}
	if err := p.printf(">::"); err != nil {
		return err
	}
	return p.ident(t.Name)
}

func (p *printer) angle(elems []Term) error {
	if len(elems) == 0 {
		return nil
	}
	if err := p.printf("<"); err != nil {
		return err
	}
	for i, e := range elems {
		if i > 0 {
			if err := p.printf(", "); err != nil {
				return err
			}
		}
		if err := p.term(e); err != nil {
			return err
		}
	}
	return p.printf(">")
}

func paramTerms(params []Parameter) []Term {
	elems := make([]Term, len(params))
	for i, param := range params {
		elems[i] = param
	}
	return elems
}
