package check

import (
	"fmt"

	"cairn/internal/ir"
)

// ctx is the typing context: values and types for the variables in scope,
// innermost last. Fresh free variables use the next unused level.
type ctx struct {
	env   Env
	types []*Value
}

func (c ctx) lvl() uint32 {
	return uint32(len(c.types))
}

// pushVar extends the context with a fresh free variable of the given type.
func (c ctx) pushVar(typ *Value) ctx {
	return ctx{
		env:   c.env.push(ready(freeVar(c.lvl()))),
		types: append(append([]*Value{}, c.types...), typ),
	}
}

// pushDef extends the context with a definitionally transparent binding.
func (c ctx) pushDef(value *Thunk, typ *Value) ctx {
	return ctx{
		env:   c.env.push(value),
		types: append(append([]*Value{}, c.types...), typ),
	}
}

// infer synthesizes the type of e as a weak-head normal value.
func (ev *evaluator) infer(c ctx, e *ir.Expr) (*Value, error) {
	switch e.Kind {
	case ir.ExprVar:
		i := len(c.types) - 1 - int(e.VarIdx)
		if i < 0 {
			return nil, fmt.Errorf("unbound variable %d", e.VarIdx)
		}
		return c.types[i], nil
	case ir.ExprSort:
		u := simplifyUniv(instUniv(e.Univ, c.env.Univs))
		return &Value{Kind: VSort, Univ: ir.UnivSuccOf(u)}, nil
	case ir.ExprConst:
		decl, ok := ev.store.Get(e.ConstIdx)
		if !ok {
			return nil, fmt.Errorf("constant %q references index %d outside store of %d", e.ConstName, e.ConstIdx, ev.store.Len())
		}
		if len(e.Levels) != len(decl.Levels) {
			return nil, fmt.Errorf("constant %q applied to %d universe levels, expects %d", e.ConstName, len(e.Levels), len(decl.Levels))
		}
		univs := make([]*ir.Univ, len(e.Levels))
		for i, lvl := range e.Levels {
			univs[i] = simplifyUniv(instUniv(lvl, c.env.Univs))
		}
		// declaration types are closed, so a fresh environment suffices
		return ev.eval(decl.Type, Env{Univs: univs})
	case ir.ExprApp:
		fnTy, err := ev.infer(c, e.Fn)
		if err != nil {
			return nil, err
		}
		if fnTy.Kind != VPi {
			return nil, fmt.Errorf("application head has type %v, expected a function type", fnTy.Kind)
		}
		dom, err := ev.force(fnTy.Dom)
		if err != nil {
			return nil, err
		}
		if err := ev.check(c, e.Arg, dom); err != nil {
			return nil, err
		}
		return ev.eval(fnTy.Body, fnTy.Env.push(newThunk(e.Arg, c.env)))
	case ir.ExprPi:
		domSort, err := ev.inferSort(c, e.Dom)
		if err != nil {
			return nil, err
		}
		domVal, err := ev.eval(e.Dom, c.env)
		if err != nil {
			return nil, err
		}
		bodySort, err := ev.inferSort(c.pushVar(domVal), e.Body)
		if err != nil {
			return nil, err
		}
		u := simplifyUniv(&ir.Univ{Kind: ir.UnivIMax, A: domSort, B: bodySort})
		return &Value{Kind: VSort, Univ: u}, nil
	case ir.ExprLam:
		// lambdas are checked against a pi type; inference would need
		// quotation and nothing in the pipeline requires it
		return nil, fmt.Errorf("cannot infer the type of a bare lambda")
	case ir.ExprLet:
		letTy, err := ev.letBindingType(c, e)
		if err != nil {
			return nil, err
		}
		return ev.infer(c.pushDef(newThunk(e.LetValue, c.env), letTy), e.Body)
	case ir.ExprLit:
		return ev.inferLit(e.Lit)
	case ir.ExprProj:
		return nil, fmt.Errorf("cannot infer the type of a projection")
	default:
		return nil, fmt.Errorf("cannot infer expression kind %v", e.Kind)
	}
}

// inferSort requires e to be a type and returns its universe.
func (ev *evaluator) inferSort(c ctx, e *ir.Expr) (*ir.Univ, error) {
	t, err := ev.infer(c, e)
	if err != nil {
		return nil, err
	}
	if t.Kind != VSort {
		return nil, fmt.Errorf("expected a sort, found %v", t.Kind)
	}
	return t.Univ, nil
}

// letBindingType validates a let binding and returns its annotated type.
func (ev *evaluator) letBindingType(c ctx, e *ir.Expr) (*Value, error) {
	if _, err := ev.inferSort(c, e.LetType); err != nil {
		return nil, err
	}
	letTy, err := ev.eval(e.LetType, c.env)
	if err != nil {
		return nil, err
	}
	if err := ev.check(c, e.LetValue, letTy); err != nil {
		return nil, err
	}
	return letTy, nil
}

// inferLit resolves literal types against the store by name, the same way
// the surface language binds them.
func (ev *evaluator) inferLit(lit ir.Literal) (*Value, error) {
	name := "Nat"
	if lit.Kind == ir.LitStr {
		name = "String"
	}
	idx, _, ok := ev.store.ByName(name)
	if !ok {
		return nil, fmt.Errorf("literal requires a declaration named %q in the store", name)
	}
	return &Value{Kind: VApp, Head: Neutral{Const: idx, Name: name}}, nil
}

// check verifies e against an expected type in weak-head normal form.
func (ev *evaluator) check(c ctx, e *ir.Expr, want *Value) error {
	switch {
	case e.Kind == ir.ExprLam:
		if want.Kind != VPi {
			return fmt.Errorf("lambda checked against %v, expected a function type", want.Kind)
		}
		wantDom, err := ev.force(want.Dom)
		if err != nil {
			return err
		}
		if e.Dom != nil {
			gotDom, err := ev.eval(e.Dom, c.env)
			if err != nil {
				return err
			}
			ok, err := ev.eqVal(c.lvl(), gotDom, wantDom)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("lambda binder type does not match the function type domain")
			}
		}
		inner := c.pushVar(wantDom)
		cod, err := ev.eval(want.Body, want.Env.push(ready(freeVar(c.lvl()))))
		if err != nil {
			return err
		}
		return ev.check(inner, e.Body, cod)
	case e.Kind == ir.ExprLet:
		letTy, err := ev.letBindingType(c, e)
		if err != nil {
			return err
		}
		return ev.check(c.pushDef(newThunk(e.LetValue, c.env), letTy), e.Body, want)
	default:
		got, err := ev.infer(c, e)
		if err != nil {
			return err
		}
		ok, err := ev.eqVal(c.lvl(), got, want)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("type mismatch: inferred type is not definitionally equal to the expected type")
		}
		return nil
	}
}
