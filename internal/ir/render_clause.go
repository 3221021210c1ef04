package ir

// assignment is the synthetic `Name = Ty` argument appended when a
// Normalize is rendered as associated-type-binding syntax.
type assignment struct {
	name string
	ty   Ty
}

func (assignment) isTerm() {}

// normalize renders `Self as Trait<Args, Name = Ty>`, mirroring surface
// associated-type-binding syntax rather than the raw projection equality.
func (p *printer) normalize(n Normalize) error {
	tr := n.Projection.TraitRef
	self := tr.Self()
	args := paramTerms(tr.Parameters[1:])
	args = append(args, assignment{name: n.Projection.Name, ty: n.Ty})
	if err := p.term(self); err != nil {
		return err
	}
	if err := p.printf(" as "); err != nil {
		return err
	}
	if err := p.itemID(tr.TraitID); err != nil {
		return err
	}
	return p.angle(args)
}

func (p *printer) unify(u Unify) error {
	if err := p.printf("("); err != nil {
		return err
	}
	if err := p.term(u.A); err != nil {
		return err
	}
	if err := p.printf(" = "); err != nil {
		return err
	}
	if err := p.term(u.B); err != nil {
		return err
	}
	return p.printf(")")
}

func (p *printer) quantified(g Quantified) error {
	if err := p.printf("%s<%s> { ", g.Kind, g.Binder); err != nil {
		return err
	}
	if err := p.term(g.Goal); err != nil {
		return err
	}
	return p.printf(" }")
}

func (p *printer) implies(g Implies) error {
	if err := p.printf("if ("); err != nil {
		return err
	}
	if err := p.term(g.Clause); err != nil {
		return err
	}
	if err := p.printf(") { "); err != nil {
		return err
	}
	if err := p.term(g.Goal); err != nil {
		return err
	}
	return p.printf(" }")
}

func (p *printer) and(g And) error {
	if err := p.printf("("); err != nil {
		return err
	}
	if err := p.term(g.Left); err != nil {
		return err
	}
	if err := p.printf(", "); err != nil {
		return err
	}
	if err := p.term(g.Right); err != nil {
		return err
	}
	return p.printf(")")
}
