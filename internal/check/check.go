// Package check implements the dependent type checker: normalization by
// evaluation with lazy thunks, a conversion check under binders, and
// per-kind declaration checking. The store context is passed explicitly
// into every call; there is no ambient checking state.
package check

import (
	"fmt"

	"cairn/internal/ir"
)

// Const type-checks one declaration at position idx within a store. idx
// may be store.Len(): a declaration checked before it is appended sits at
// the next position. Anything past that is rejected. A nil error means
// the declaration is accepted.
func Const(c *ir.Const, idx uint32, store *ir.Store) error {
	if c == nil {
		return fmt.Errorf("check: nil declaration")
	}
	if int(idx) > store.Len() {
		return fmt.Errorf("check: %s %q declared at position %d outside store of %d", c.Kind, c.Name, idx, store.Len())
	}
	ev := &evaluator{store: store}
	base := ctx{env: Env{Univs: identityLevels(c.Levels)}}

	fail := func(err error) error {
		return fmt.Errorf("check: %s %q: %w", c.Kind, c.Name, err)
	}

	switch c.Kind {
	case ir.ConstAxiom, ir.ConstQuotient:
		if _, err := ev.inferSort(base, c.Type); err != nil {
			return fail(err)
		}
		return nil

	case ir.ConstTheorem, ir.ConstOpaque, ir.ConstDefinition:
		if _, err := ev.inferSort(base, c.Type); err != nil {
			return fail(err)
		}
		want, err := ev.eval(c.Type, base.env)
		if err != nil {
			return fail(err)
		}
		if c.Value == nil {
			return fail(fmt.Errorf("missing value"))
		}
		if err := ev.check(base, c.Value, want); err != nil {
			return fail(err)
		}
		return nil

	case ir.ConstInductive:
		if _, err := ev.inferSort(base, c.Type); err != nil {
			return fail(err)
		}
		for _, ct := range c.Ctors {
			if _, err := ev.inferSort(base, ct.Type); err != nil {
				return fail(fmt.Errorf("constructor %q: %w", ct.Name, err))
			}
		}
		for _, sib := range c.All {
			if int(sib) >= store.Len() {
				return fail(fmt.Errorf("sibling index %d outside store of %d", sib, store.Len()))
			}
		}
		return nil

	case ir.ConstConstructor:
		if _, err := ev.inferSort(base, c.Type); err != nil {
			return fail(err)
		}
		owner, ok := store.Get(c.Ind)
		if !ok || owner.Kind != ir.ConstInductive {
			return fail(fmt.Errorf("owning index %d is not an inductive", c.Ind))
		}
		return nil

	case ir.ConstExtRecursor, ir.ConstIntRecursor:
		if _, err := ev.inferSort(base, c.Type); err != nil {
			return fail(err)
		}
		owner, ok := store.Get(c.Ind)
		if !ok || owner.Kind != ir.ConstInductive {
			return fail(fmt.Errorf("owning index %d is not an inductive", c.Ind))
		}
		for _, r := range c.Rules {
			target, ok := store.Get(r.Ctor)
			if !ok || target.Kind != ir.ConstConstructor {
				return fail(fmt.Errorf("rule targets index %d, which is not a constructor", r.Ctor))
			}
			if r.RHS == nil {
				return fail(fmt.Errorf("rule for %q has no right-hand side", target.Name))
			}
		}
		return nil

	default:
		return fail(fmt.Errorf("unknown declaration kind"))
	}
}
