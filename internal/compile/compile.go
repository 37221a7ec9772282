// Package compile drives fixtures through the front end into the bundle
// of artifacts the verification oracles compare: a name cache with content
// identifiers, the checked store, an independently ordered IR store, and
// the block encoding.
package compile

import (
	"fmt"
	"os"
	"sort"

	"fortio.org/safecast"

	"cairn/internal/anon"
	"cairn/internal/block"
	"cairn/internal/check"
	"cairn/internal/ir"
	"cairn/internal/parser"
)

// CacheEntry is one name cache record: the declaration's content
// identifier and its position in the checked store.
type CacheEntry struct {
	CID anon.CID
	Idx uint32
}

// State bundles everything one compiled fixture produces. All four views
// derive from the same declarations and are expected to agree. States are
// immutable; extending one produces a new State.
type State struct {
	Cache   map[string]CacheEntry
	TCStore *ir.Store
	IRStore *ir.Store
	Block   block.Block

	hash anon.Hasher
}

// Compile compiles one fixture, optionally extending a prior state, using
// the default content hash. Identical inputs produce identical states.
func Compile(src string, prior *State) (*State, error) {
	return CompileWith(src, prior, nil)
}

// CompileWith compiles with an injected content hash. A nil hasher keeps
// the prior state's hasher, falling back to SHA256.
func CompileWith(src string, prior *State, hash anon.Hasher) (*State, error) {
	if hash == nil {
		if prior != nil && prior.hash != nil {
			hash = prior.hash
		} else {
			hash = anon.SHA256
		}
	}

	tc := ir.NewStore()
	if prior != nil {
		tc = prior.TCStore.Clone()
	}
	added, err := parser.ParseDecls(src, tc)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	for _, idx := range added {
		c, _ := tc.Get(idx)
		if err := check.Const(c, idx, tc); err != nil {
			return nil, fmt.Errorf("compile: %w", err)
		}
	}

	cids, err := anon.StoreCIDs(tc, hash)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	cache := make(map[string]CacheEntry, tc.Len())
	for i, c := range tc.Consts {
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			return nil, fmt.Errorf("compile: %w", err)
		}
		cache[c.Name] = CacheEntry{CID: cids[i], Idx: idx}
	}

	irStore, err := reorder(tc)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	blk, err := block.Encode(tc)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	return &State{
		Cache:   cache,
		TCStore: tc,
		IRStore: irStore,
		Block:   blk,
		hash:    hash,
	}, nil
}

// File compiles a fixture read from disk.
func File(path string, prior *State) (*State, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	return Compile(string(src), prior)
}

// PureStore projects the IR store into the comparable declaration form,
// validating that every position reference it carries is in range.
func (s *State) PureStore() (*ir.Store, error) {
	if s == nil || s.IRStore == nil {
		return nil, fmt.Errorf("compile: no IR store")
	}
	for _, c := range s.IRStore.Consts {
		if err := validateRefs(c, s.IRStore.Len()); err != nil {
			return nil, fmt.Errorf("compile: %s %q: %w", c.Kind, c.Name, err)
		}
	}
	return s.IRStore.Clone(), nil
}

// reorder derives the IR view: the same declarations sorted by name, with
// every position reference rewritten through the permutation. The two
// stores then disagree on indices while agreeing on structure, which is
// what cross-store matching has to reconcile.
func reorder(tc *ir.Store) (*ir.Store, error) {
	order := make([]uint32, tc.Len())
	for i := range order {
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			return nil, err
		}
		order[i] = idx
	}
	sort.Slice(order, func(a, b int) bool {
		return tc.Consts[order[a]].Name < tc.Consts[order[b]].Name
	})

	ren := make(ir.Renaming, len(order))
	for newIdx, oldIdx := range order {
		v, err := safecast.Conv[uint32](newIdx)
		if err != nil {
			return nil, err
		}
		ren[oldIdx] = v
	}
	out := ir.NewStore()
	for _, oldIdx := range order {
		out.Append(ir.ReindexConst(ren, tc.Consts[oldIdx]))
	}
	return out, nil
}

func validateRefs(c *ir.Const, n int) error {
	inRange := func(idx uint32, what string) error {
		if int(idx) >= n {
			return fmt.Errorf("%s index %d outside store of %d", what, idx, n)
		}
		return nil
	}
	for _, sib := range c.All {
		if err := inRange(sib, "sibling"); err != nil {
			return err
		}
	}
	switch c.Kind {
	case ir.ConstConstructor, ir.ConstExtRecursor, ir.ConstIntRecursor:
		if err := inRange(c.Ind, "inductive"); err != nil {
			return err
		}
	}
	for _, e := range []*ir.Expr{c.Type, c.Value} {
		if err := validateExprRefs(e, n); err != nil {
			return err
		}
	}
	for _, ct := range c.Ctors {
		if err := validateExprRefs(ct.Type, n); err != nil {
			return err
		}
	}
	for _, r := range c.Rules {
		if err := inRange(r.Ctor, "rule constructor"); err != nil {
			return err
		}
		if err := validateExprRefs(r.RHS, n); err != nil {
			return err
		}
	}
	return nil
}

func validateExprRefs(e *ir.Expr, n int) error {
	if e == nil {
		return nil
	}
	if e.Kind == ir.ExprConst && int(e.ConstIdx) >= n {
		return fmt.Errorf("constant %q references index %d outside store of %d", e.ConstName, e.ConstIdx, n)
	}
	for _, child := range []*ir.Expr{e.Fn, e.Arg, e.Dom, e.Body, e.LetType, e.LetValue, e.Subject} {
		if err := validateExprRefs(child, n); err != nil {
			return err
		}
	}
	return nil
}
