package check

import (
	"fmt"

	"cairn/internal/ir"
)

// ValueKind enumerates weak-head normal form shapes.
type ValueKind uint8

const (
	// VSort is a fully reduced universe.
	VSort ValueKind = iota
	// VApp is a neutral head applied to a (possibly empty) argument spine.
	VApp
	// VLam is a lambda closure.
	VLam
	// VPi is a pi closure.
	VPi
	// VLit is a literal.
	VLit
	// VProj is a projection stuck on a neutral subject.
	VProj
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case VSort:
		return "Sort"
	case VApp:
		return "App"
	case VLam:
		return "Lam"
	case VPi:
		return "Pi"
	case VLit:
		return "Lit"
	case VProj:
		return "Proj"
	default:
		return fmt.Sprintf("ValueKind(%d)", k)
	}
}

// Neutral is a stuck head: a free variable (by level, not index) or a
// declaration that does not unfold.
type Neutral struct {
	IsVar bool
	Level uint32 // free variable level
	Const uint32 // store position
	Name  string
	Univs []*ir.Univ
}

// Value is a weak-head normal form. Payload validity follows Kind.
type Value struct {
	Kind ValueKind

	Univ *ir.Univ // VSort

	Head Neutral  // VApp
	Args []*Thunk // VApp spine, first-applied first

	Info ir.BinderInfo // VLam / VPi
	Dom  *Thunk        // VPi
	Body *ir.Expr      // VLam body / VPi codomain
	Env  Env           // closure environment

	Lit ir.Literal // VLit

	Field   uint32 // VProj
	Subject *Value // VProj
}

// Env is an evaluation environment: values for bound variables (innermost
// last) plus the universe instantiation of the enclosing declaration.
type Env struct {
	Exprs []*Thunk
	Univs []*ir.Univ
}

func (e Env) push(t *Thunk) Env {
	exprs := make([]*Thunk, len(e.Exprs)+1)
	copy(exprs, e.Exprs)
	exprs[len(e.Exprs)] = t
	return Env{Exprs: exprs, Univs: e.Univs}
}

// lookup resolves a de Bruijn index.
func (e Env) lookup(idx uint32) (*Thunk, bool) {
	i := len(e.Exprs) - 1 - int(idx)
	if i < 0 {
		return nil, false
	}
	return e.Exprs[i], true
}

// Thunk is a lazily evaluated expression; Force memoizes the result.
type Thunk struct {
	val  *Value
	expr *ir.Expr
	env  Env
}

func newThunk(expr *ir.Expr, env Env) *Thunk {
	return &Thunk{expr: expr, env: env}
}

func ready(v *Value) *Thunk {
	return &Thunk{val: v}
}

// freeVar builds the neutral value for a fresh free variable at the given
// level.
func freeVar(level uint32) *Value {
	return &Value{Kind: VApp, Head: Neutral{IsVar: true, Level: level}}
}
