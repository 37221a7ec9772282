package ir

import "fmt"

// Renaming maps declaration positions of a source store onto positions of a
// target store. It must be total over every index reachable from the
// expressions being rewritten.
type Renaming map[uint32]uint32

// Identity returns the identity renaming over a store of n declarations.
func Identity(n int) Renaming {
	m := make(Renaming, n)
	for i := 0; i < n; i++ {
		m[uint32(i)] = uint32(i)
	}
	return m
}

func (m Renaming) apply(idx uint32) uint32 {
	to, ok := m[idx]
	if !ok {
		// A hole in the renaming is a harness bug, never a data error.
		panic(fmt.Sprintf("ir: renaming has no image for store index %d", idx))
	}
	return to
}

// ReindexExpr returns a copy of e with every constant-reference index
// replaced by its image under m. All other node structure is preserved.
// Panics if m is not total over the reachable indices.
func ReindexExpr(m Renaming, e *Expr) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ExprVar, ExprSort, ExprLit:
		out := *e
		return &out
	case ExprConst:
		out := *e
		out.ConstIdx = m.apply(e.ConstIdx)
		return &out
	case ExprApp:
		out := *e
		out.Fn = ReindexExpr(m, e.Fn)
		out.Arg = ReindexExpr(m, e.Arg)
		return &out
	case ExprLam, ExprPi:
		out := *e
		out.Dom = ReindexExpr(m, e.Dom)
		out.Body = ReindexExpr(m, e.Body)
		return &out
	case ExprLet:
		out := *e
		out.LetType = ReindexExpr(m, e.LetType)
		out.LetValue = ReindexExpr(m, e.LetValue)
		out.Body = ReindexExpr(m, e.Body)
		return &out
	case ExprProj:
		out := *e
		out.Subject = ReindexExpr(m, e.Subject)
		return &out
	default:
		panic(fmt.Sprintf("ir: cannot reindex expression kind %v", e.Kind))
	}
}

// ReindexConst returns a copy of c with every contained expression and every
// index-bearing auxiliary field rewritten through m.
func ReindexConst(m Renaming, c *Const) *Const {
	out := *c
	out.Type = ReindexExpr(m, c.Type)
	out.Value = ReindexExpr(m, c.Value)
	if len(c.Ctors) > 0 {
		out.Ctors = make([]CtorSpec, len(c.Ctors))
		for i, ct := range c.Ctors {
			out.Ctors[i] = CtorSpec{Name: ct.Name, Type: ReindexExpr(m, ct.Type)}
		}
	}
	if len(c.All) > 0 {
		out.All = make([]uint32, len(c.All))
		for i, idx := range c.All {
			out.All[i] = m.apply(idx)
		}
	}
	switch c.Kind {
	case ConstConstructor, ConstExtRecursor, ConstIntRecursor:
		out.Ind = m.apply(c.Ind)
	}
	if len(c.Rules) > 0 {
		out.Rules = make([]RecursorRule, len(c.Rules))
		for i, r := range c.Rules {
			out.Rules[i] = RecursorRule{
				Ctor:    m.apply(r.Ctor),
				NFields: r.NFields,
				RHS:     ReindexExpr(m, r.RHS),
			}
		}
	}
	return &out
}
