package lisp

import (
	"fmt"
	"sort"

	"cairn/internal/ir"
)

// builtins maps declaration names onto target primitives. Declarations
// listed here transpile to the primitive symbol instead of a define.
var builtins = map[string]string{
	"Nat.add": "+",
	"Nat.mul": "*",
}

// Define is one top-level binding of a transpiled program.
type Define struct {
	Name string
	Body *Node
}

// Program is a transpiled declaration: its dependencies in evaluation
// order, then the root to evaluate.
type Program struct {
	Defines []Define
	Root    string
}

// Transpile converts the store rooted at name into a target program. Only
// value-carrying declarations and recognized primitives can cross over;
// types and binder annotations are erased.
func Transpile(store *ir.Store, name string) (*Program, error) {
	rootIdx, _, ok := store.ByName(name)
	if !ok {
		return nil, fmt.Errorf("transpile: no declaration named %q", name)
	}
	reach := map[uint32]bool{}
	if err := collect(store, rootIdx, reach); err != nil {
		return nil, fmt.Errorf("transpile: %w", err)
	}
	idxs := make([]uint32, 0, len(reach))
	for idx := range reach {
		idxs = append(idxs, idx)
	}
	// store order is dependency order for value references
	sort.Slice(idxs, func(i, j int) bool { return idxs[i] < idxs[j] })

	p := &Program{Root: name}
	for _, idx := range idxs {
		c := store.Consts[idx]
		if _, prim := builtins[c.Name]; prim {
			continue
		}
		body, err := exprToNode(c.Value, nil)
		if err != nil {
			return nil, fmt.Errorf("transpile: %s %q: %w", c.Kind, c.Name, err)
		}
		p.Defines = append(p.Defines, Define{Name: c.Name, Body: body})
	}
	return p, nil
}

// collect gathers the value-reachable dependency set of idx.
func collect(store *ir.Store, idx uint32, reach map[uint32]bool) error {
	if reach[idx] {
		return nil
	}
	c, ok := store.Get(idx)
	if !ok {
		return fmt.Errorf("reference to index %d outside store of %d", idx, store.Len())
	}
	reach[idx] = true
	if _, prim := builtins[c.Name]; prim {
		return nil
	}
	if !c.HasValue() {
		return fmt.Errorf("%s %q has no value and no primitive mapping", c.Kind, c.Name)
	}
	for _, dep := range valueRefs(c.Value, nil) {
		if err := collect(store, dep, reach); err != nil {
			return err
		}
	}
	return nil
}

// valueRefs lists constant references in value position: binder domains,
// let annotations and other type-only positions are erased by the
// transpiler and do not create dependencies.
func valueRefs(e *ir.Expr, acc []uint32) []uint32 {
	if e == nil {
		return acc
	}
	switch e.Kind {
	case ir.ExprConst:
		return append(acc, e.ConstIdx)
	case ir.ExprApp:
		return valueRefs(e.Arg, valueRefs(e.Fn, acc))
	case ir.ExprLam:
		return valueRefs(e.Body, acc)
	case ir.ExprLet:
		return valueRefs(e.Body, valueRefs(e.LetValue, acc))
	case ir.ExprProj:
		return valueRefs(e.Subject, acc)
	default:
		return acc
	}
}

// exprToNode translates a value expression. scope carries the target-level
// binder names, innermost last.
func exprToNode(e *ir.Expr, scope []string) (*Node, error) {
	if e == nil {
		return nil, fmt.Errorf("missing value expression")
	}
	switch e.Kind {
	case ir.ExprVar:
		i := len(scope) - 1 - int(e.VarIdx)
		if i < 0 {
			return nil, fmt.Errorf("unbound variable %d", e.VarIdx)
		}
		return Sym(scope[i]), nil
	case ir.ExprConst:
		if prim, ok := builtins[e.ConstName]; ok {
			return Sym(prim), nil
		}
		return Sym(e.ConstName), nil
	case ir.ExprApp:
		fn, err := exprToNode(e.Fn, scope)
		if err != nil {
			return nil, err
		}
		arg, err := exprToNode(e.Arg, scope)
		if err != nil {
			return nil, err
		}
		// flatten spines for readability: ((+ a) b) prints as (+ a b)
		if fn.Kind == NList {
			return &Node{Kind: NList, List: append(append([]*Node{}, fn.List...), arg)}, nil
		}
		return ListOf(fn, arg), nil
	case ir.ExprLam:
		name := freshName(e.Binder, scope)
		body, err := exprToNode(e.Body, append(scope, name))
		if err != nil {
			return nil, err
		}
		return ListOf(Sym("lambda"), ListOf(Sym(name)), body), nil
	case ir.ExprLet:
		value, err := exprToNode(e.LetValue, scope)
		if err != nil {
			return nil, err
		}
		name := freshName(e.Binder, scope)
		body, err := exprToNode(e.Body, append(scope, name))
		if err != nil {
			return nil, err
		}
		return ListOf(Sym("let"), ListOf(ListOf(Sym(name), value)), body), nil
	case ir.ExprLit:
		if e.Lit.Kind == ir.LitNat {
			return Num(e.Lit.Nat), nil
		}
		return Str(e.Lit.Str), nil
	case ir.ExprSort, ir.ExprPi:
		return nil, fmt.Errorf("type-level expression %v in value position", e.Kind)
	case ir.ExprProj:
		return nil, fmt.Errorf("projections have no target form")
	default:
		return nil, fmt.Errorf("cannot transpile expression kind %v", e.Kind)
	}
}

// freshName picks a binder name that does not shadow an enclosing one.
func freshName(binder string, scope []string) string {
	name := binder
	if name == "" || name == "_" {
		name = "x"
	}
	for taken(name, scope) {
		name += "'"
	}
	return name
}

func taken(name string, scope []string) bool {
	for _, s := range scope {
		if s == name {
			return true
		}
	}
	return false
}

// ToExpr folds the program into one evaluable expression: every define
// becomes a let binding around the root symbol.
func (p *Program) ToExpr() (*Node, error) {
	if p.Root == "" {
		return nil, fmt.Errorf("program has no root")
	}
	out := Sym(p.Root)
	bound := false
	for i := len(p.Defines) - 1; i >= 0; i-- {
		d := p.Defines[i]
		if d.Name == p.Root {
			bound = true
		}
		out = ListOf(Sym("let"), ListOf(ListOf(Sym(d.Name), d.Body)), out)
	}
	if !bound {
		return nil, fmt.Errorf("root %q is not defined by the program", p.Root)
	}
	return out, nil
}
