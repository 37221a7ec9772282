package ir

import "fmt"

// ExprKind enumerates IR expression kinds.
type ExprKind uint8

const (
	// ExprVar is a bound variable by de Bruijn index.
	ExprVar ExprKind = iota
	// ExprSort is a universe (Sort u).
	ExprSort
	// ExprConst references a declaration by name plus store position.
	ExprConst
	// ExprApp is function application.
	ExprApp
	// ExprLam is a lambda abstraction.
	ExprLam
	// ExprPi is a dependent function type.
	ExprPi
	// ExprLet is a local definition.
	ExprLet
	// ExprLit is a literal (natural number or string).
	ExprLit
	// ExprProj projects a field out of a single-constructor inductive value.
	ExprProj
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprVar:
		return "Var"
	case ExprSort:
		return "Sort"
	case ExprConst:
		return "Const"
	case ExprApp:
		return "App"
	case ExprLam:
		return "Lam"
	case ExprPi:
		return "Pi"
	case ExprLet:
		return "Let"
	case ExprLit:
		return "Lit"
	case ExprProj:
		return "Proj"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// BinderInfo describes how a lambda/pi binder is elaborated.
type BinderInfo uint8

const (
	BinderDefault BinderInfo = iota
	BinderImplicit
	BinderStrictImplicit
	BinderInstImplicit
)

// LitKind discriminates literal payloads.
type LitKind uint8

const (
	LitNat LitKind = iota
	LitStr
)

// Literal is a natural-number or string literal.
type Literal struct {
	Kind LitKind
	Nat  uint64
	Str  string
}

// Expr is an IR expression tree node. Payload fields are valid per Kind;
// the rest stay zero.
type Expr struct {
	Kind ExprKind

	// ExprVar
	VarIdx uint32

	// ExprSort
	Univ *Univ

	// ExprLit
	Lit Literal

	// ExprConst. ConstIdx points into one specific Store and is only
	// meaningful relative to it.
	ConstName string
	ConstIdx  uint32
	Levels    []*Univ

	// ExprApp
	Fn  *Expr
	Arg *Expr

	// ExprLam / ExprPi binder; Binder is also the ExprLet name.
	Binder string
	Info   BinderInfo
	Dom    *Expr

	// ExprLam / ExprPi / ExprLet body.
	Body *Expr

	// ExprLet
	LetType  *Expr
	LetValue *Expr

	// ExprProj
	Field   uint32
	Subject *Expr
}

// NewVar builds a bound variable reference.
func NewVar(idx uint32) *Expr {
	return &Expr{Kind: ExprVar, VarIdx: idx}
}

// NewSort builds Sort u.
func NewSort(u *Univ) *Expr {
	return &Expr{Kind: ExprSort, Univ: u}
}

// NewConst builds a reference to the declaration at idx in the owning store.
func NewConst(name string, idx uint32, levels []*Univ) *Expr {
	return &Expr{Kind: ExprConst, ConstName: name, ConstIdx: idx, Levels: levels}
}

// NewApp builds fn arg.
func NewApp(fn, arg *Expr) *Expr {
	return &Expr{Kind: ExprApp, Fn: fn, Arg: arg}
}

// NewLam builds fun (binder : dom) => body.
func NewLam(binder string, info BinderInfo, dom, body *Expr) *Expr {
	return &Expr{Kind: ExprLam, Binder: binder, Info: info, Dom: dom, Body: body}
}

// NewPi builds (binder : dom) -> body.
func NewPi(binder string, info BinderInfo, dom, body *Expr) *Expr {
	return &Expr{Kind: ExprPi, Binder: binder, Info: info, Dom: dom, Body: body}
}

// NewLet builds let binder : typ := value in body.
func NewLet(binder string, typ, value, body *Expr) *Expr {
	return &Expr{Kind: ExprLet, Binder: binder, LetType: typ, LetValue: value, Body: body}
}

// NewNat builds a natural number literal.
func NewNat(n uint64) *Expr {
	return &Expr{Kind: ExprLit, Lit: Literal{Kind: LitNat, Nat: n}}
}

// NewStr builds a string literal.
func NewStr(s string) *Expr {
	return &Expr{Kind: ExprLit, Lit: Literal{Kind: LitStr, Str: s}}
}

// NewProj builds the field-th projection of subject.
func NewProj(field uint32, subject *Expr) *Expr {
	return &Expr{Kind: ExprProj, Field: field, Subject: subject}
}
