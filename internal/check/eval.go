package check

import (
	"fmt"

	"cairn/internal/ir"
)

// evaluator reduces expressions to weak-head normal form against one store.
// It never mutates the store.
type evaluator struct {
	store *ir.Store
}

func (ev *evaluator) force(t *Thunk) (*Value, error) {
	if t.val != nil {
		return t.val, nil
	}
	v, err := ev.eval(t.expr, t.env)
	if err != nil {
		return nil, err
	}
	t.val = v
	t.expr = nil
	return v, nil
}

func (ev *evaluator) eval(e *ir.Expr, env Env) (*Value, error) {
	switch e.Kind {
	case ir.ExprVar:
		t, ok := env.lookup(e.VarIdx)
		if !ok {
			return nil, fmt.Errorf("unbound variable %d", e.VarIdx)
		}
		return ev.force(t)
	case ir.ExprSort:
		return &Value{Kind: VSort, Univ: simplifyUniv(instUniv(e.Univ, env.Univs))}, nil
	case ir.ExprConst:
		univs := make([]*ir.Univ, len(e.Levels))
		for i, lvl := range e.Levels {
			univs[i] = simplifyUniv(instUniv(lvl, env.Univs))
		}
		return ev.evalConst(e.ConstName, e.ConstIdx, univs)
	case ir.ExprApp:
		arg := newThunk(e.Arg, env)
		fn, err := ev.eval(e.Fn, env)
		if err != nil {
			return nil, err
		}
		return ev.apply(fn, arg)
	case ir.ExprLam:
		return &Value{Kind: VLam, Info: e.Info, Body: e.Body, Env: env}, nil
	case ir.ExprPi:
		return &Value{Kind: VPi, Info: e.Info, Dom: newThunk(e.Dom, env), Body: e.Body, Env: env}, nil
	case ir.ExprLet:
		return ev.eval(e.Body, env.push(newThunk(e.LetValue, env)))
	case ir.ExprLit:
		return &Value{Kind: VLit, Lit: e.Lit}, nil
	case ir.ExprProj:
		subj, err := ev.eval(e.Subject, env)
		if err != nil {
			return nil, err
		}
		return ev.project(e.Field, subj)
	default:
		return nil, fmt.Errorf("cannot evaluate expression kind %v", e.Kind)
	}
}

// evalConst unfolds theorems and safe definitions; everything else is a
// neutral head (axioms, opaques, inductive machinery, quotients).
func (ev *evaluator) evalConst(name string, idx uint32, univs []*ir.Univ) (*Value, error) {
	c, ok := ev.store.Get(idx)
	if !ok {
		return nil, fmt.Errorf("constant %q references index %d outside store of %d", name, idx, ev.store.Len())
	}
	unfold := c.Kind == ir.ConstTheorem ||
		(c.Kind == ir.ConstDefinition && c.Safety == ir.DefSafe)
	if unfold {
		return ev.eval(c.Value, Env{Univs: univs})
	}
	return &Value{Kind: VApp, Head: Neutral{Const: idx, Name: c.Name, Univs: univs}}, nil
}

func (ev *evaluator) apply(fn *Value, arg *Thunk) (*Value, error) {
	switch fn.Kind {
	case VLam:
		return ev.eval(fn.Body, fn.Env.push(arg))
	case VApp:
		args := make([]*Thunk, len(fn.Args)+1)
		copy(args, fn.Args)
		args[len(fn.Args)] = arg
		return &Value{Kind: VApp, Head: fn.Head, Args: args}, nil
	default:
		return nil, fmt.Errorf("application head reduced to %v, not a function", fn.Kind)
	}
}

// project reduces a projection when the subject is a constructor
// application, and stays stuck otherwise.
func (ev *evaluator) project(field uint32, subj *Value) (*Value, error) {
	if subj.Kind == VApp && !subj.Head.IsVar {
		if c, ok := ev.store.Get(subj.Head.Const); ok && c.Kind == ir.ConstConstructor {
			i := c.CtorParams + uint64(field)
			if i < uint64(len(subj.Args)) {
				return ev.force(subj.Args[i])
			}
		}
	}
	return &Value{Kind: VProj, Field: field, Subject: subj}, nil
}

// eqThunk forces both sides and compares.
func (ev *evaluator) eqThunk(lvl uint32, a, b *Thunk) (bool, error) {
	va, err := ev.force(a)
	if err != nil {
		return false, err
	}
	vb, err := ev.force(b)
	if err != nil {
		return false, err
	}
	return ev.eqVal(lvl, va, vb)
}

// eqVal is the conversion check: definitional equality of two weak-head
// normal forms, comparing under binders with fresh free variables. lvl is
// the number of free variables already introduced.
func (ev *evaluator) eqVal(lvl uint32, a, b *Value) (bool, error) {
	if a.Kind != b.Kind {
		return false, nil
	}
	switch a.Kind {
	case VSort:
		return univEq(a.Univ, b.Univ), nil
	case VLit:
		return a.Lit == b.Lit, nil
	case VApp:
		if a.Head.IsVar != b.Head.IsVar {
			return false, nil
		}
		if a.Head.IsVar {
			if a.Head.Level != b.Head.Level {
				return false, nil
			}
		} else {
			if a.Head.Const != b.Head.Const || !univEqList(a.Head.Univs, b.Head.Univs) {
				return false, nil
			}
		}
		if len(a.Args) != len(b.Args) {
			return false, nil
		}
		for i := range a.Args {
			ok, err := ev.eqThunk(lvl, a.Args[i], b.Args[i])
			if err != nil || !ok {
				return ok, err
			}
		}
		return true, nil
	case VLam:
		fresh := ready(freeVar(lvl))
		ba, err := ev.eval(a.Body, a.Env.push(fresh))
		if err != nil {
			return false, err
		}
		bb, err := ev.eval(b.Body, b.Env.push(fresh))
		if err != nil {
			return false, err
		}
		return ev.eqVal(lvl+1, ba, bb)
	case VPi:
		ok, err := ev.eqThunk(lvl, a.Dom, b.Dom)
		if err != nil || !ok {
			return ok, err
		}
		fresh := ready(freeVar(lvl))
		ca, err := ev.eval(a.Body, a.Env.push(fresh))
		if err != nil {
			return false, err
		}
		cb, err := ev.eval(b.Body, b.Env.push(fresh))
		if err != nil {
			return false, err
		}
		return ev.eqVal(lvl+1, ca, cb)
	case VProj:
		if a.Field != b.Field {
			return false, nil
		}
		return ev.eqVal(lvl, a.Subject, b.Subject)
	default:
		return false, fmt.Errorf("cannot compare value kind %v", a.Kind)
	}
}
