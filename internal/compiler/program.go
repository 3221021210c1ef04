// Package compiler turns CUE program definitions into Program registries.
//
// Definitions declare items under an `item` struct:
//
//	item: Vec:      {kind: "struct"}
//	item: Iterator: {kind: "trait"}
//
// ItemIDs are assigned in declaration order, so the same definitions always
// produce the same ids and therefore the same renderings.
package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/entail/internal/program"
)

// CompileProgram parses a CUE value into a Program registry.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`item: Vec: {kind: "struct"}`)
//	prog, err := CompileProgram(v)
func CompileProgram(v cue.Value) (*program.Program, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	prog := &program.Program{}

	itemsVal := v.LookupPath(cue.ParsePath("item"))
	if !itemsVal.Exists() {
		// A definition file with no items yields an empty registry;
		// the loader decides whether that is worth reporting.
		return prog, nil
	}

	iter, err := itemsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		name := iter.Label()
		kind, err := parseKind(iter.Value(), name)
		if err != nil {
			return nil, err
		}
		prog.Add(name, kind)
	}

	if err := prog.Validate(); err != nil {
		return nil, &CompileError{
			Field:   "item",
			Message: err.Error(),
			Pos:     itemsVal.Pos(),
		}
	}
	return prog, nil
}

// parseKind reads the required `kind` field of a single item declaration.
func parseKind(v cue.Value, name string) (program.Kind, error) {
	kindVal := v.LookupPath(cue.ParsePath("kind"))
	if !kindVal.Exists() {
		return "", &CompileError{
			Field:   "item." + name,
			Message: "kind is required",
			Pos:     v.Pos(),
		}
	}
	kindStr, err := kindVal.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	kind := program.Kind(kindStr)
	if !program.ValidKinds[kind] {
		return "", &CompileError{
			Field:   "item." + name + ".kind",
			Message: fmt.Sprintf("invalid kind %q: must be one of struct, trait, assoc", kindStr),
			Pos:     kindVal.Pos(),
		}
	}
	return kind, nil
}

// Merge folds later registries into the first. Later declarations get ids
// after the earlier ones; duplicate names are reported by Validate.
func Merge(progs ...*program.Program) (*program.Program, error) {
	merged := &program.Program{}
	for _, p := range progs {
		if p == nil {
			continue
		}
		merged.Items = append(merged.Items, p.Items...)
	}
	if err := merged.Validate(); err != nil {
		return nil, &CompileError{Field: "item", Message: err.Error()}
	}
	return merged, nil
}
