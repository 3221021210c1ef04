// Package program provides the registry mapping ItemIDs back to declared
// item names. The solver installs a Program on the rendering context for
// the lifetime of a diagnostic session; the renderer only reads it.
package program

import (
	"fmt"

	"github.com/roach88/entail/internal/ir"
)

// Kind classifies a declared item.
type Kind string

const (
	KindStruct Kind = "struct"
	KindTrait  Kind = "trait"
	KindAssoc  Kind = "assoc"
)

// ValidKinds defines the allowed item kinds.
var ValidKinds = map[Kind]bool{
	KindStruct: true,
	KindTrait:  true,
	KindAssoc:  true,
}

// Item is a declared type or trait.
type Item struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Program is an ordered item registry. The ItemID of an item is its index
// in Items, so ids are stable for a given declaration order.
type Program struct {
	Items []Item `json:"items"`
}

// NameOf implements ir.Resolver. Out-of-range ids report false so callers
// fall back to the raw index form.
func (p *Program) NameOf(id ir.ItemID) (string, bool) {
	i := int(id)
	if i < 0 || i >= len(p.Items) {
		return "", false
	}
	return p.Items[i].Name, true
}

// ItemID returns the id of the item declared with the given name.
func (p *Program) ItemID(name string) (ir.ItemID, bool) {
	for i, item := range p.Items {
		if item.Name == name {
			return ir.ItemID(i), true
		}
	}
	return 0, false
}

// Add appends an item and returns its id.
func (p *Program) Add(name string, kind Kind) ir.ItemID {
	p.Items = append(p.Items, Item{Name: name, Kind: kind})
	return ir.ItemID(len(p.Items) - 1)
}

// Validate checks the registry invariants: every item named, no duplicate
// names, only known kinds. A failing registry is a producer bug surfaced
// before any rendering happens.
func (p *Program) Validate() error {
	seen := make(map[string]ir.ItemID, len(p.Items))
	for i, item := range p.Items {
		if item.Name == "" {
			return fmt.Errorf("item %d: empty name", i)
		}
		if !ValidKinds[item.Kind] {
			return fmt.Errorf("item %d (%s): invalid kind %q", i, item.Name, item.Kind)
		}
		if prev, ok := seen[item.Name]; ok {
			return fmt.Errorf("item %d: duplicate name %q (first declared as item %d)", i, item.Name, int(prev))
		}
		seen[item.Name] = ir.ItemID(i)
	}
	return nil
}

var _ ir.Resolver = (*Program)(nil)
