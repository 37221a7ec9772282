package parser

import (
	"strings"
	"testing"

	"cairn/internal/ir"
)

func mustParse(t *testing.T, src string) *ir.Store {
	t.Helper()
	s := ir.NewStore()
	if _, err := ParseDecls(src, s); err != nil {
		t.Fatalf("ParseDecls: %v", err)
	}
	return s
}

func TestParseAxiomAndDefinition(t *testing.T) {
	s := mustParse(t, `
axiom P : Prop
def q : P -> P := fun (h : P) => h
`)
	if s.Len() != 2 {
		t.Fatalf("store has %d declarations, want 2", s.Len())
	}
	ax := s.Consts[0]
	if ax.Kind != ir.ConstAxiom || ax.Name != "P" || ax.Type.Kind != ir.ExprSort {
		t.Fatalf("unexpected axiom: %+v", ax)
	}
	def := s.Consts[1]
	if def.Kind != ir.ConstDefinition || def.Value.Kind != ir.ExprLam {
		t.Fatalf("unexpected definition: %+v", def)
	}
	if def.Value.Body.Kind != ir.ExprVar || def.Value.Body.VarIdx != 0 {
		t.Fatalf("lambda body should be de Bruijn 0, got %+v", def.Value.Body)
	}
	if def.Type.Kind != ir.ExprPi || def.Type.Dom.ConstIdx != 0 {
		t.Fatalf("definition type should reference P at index 0")
	}
}

func TestDeBruijnAcrossBinderGroups(t *testing.T) {
	s := mustParse(t, `
axiom A : Sort 1
def k : (x y : A) -> A := fun (x y : A) => x
`)
	lam := s.Consts[1].Value
	if lam.Kind != ir.ExprLam || lam.Body.Kind != ir.ExprLam {
		t.Fatalf("expected two nested lambdas")
	}
	if lam.Body.Body.Kind != ir.ExprVar || lam.Body.Body.VarIdx != 1 {
		t.Fatalf("outer binder should be index 1, got %+v", lam.Body.Body)
	}
	typ := s.Consts[1].Type
	if typ.Kind != ir.ExprPi || typ.Body.Kind != ir.ExprPi {
		t.Fatalf("expected two nested pis, got %v then %v", typ.Kind, typ.Body.Kind)
	}
}

func TestPlusDesugarsToNatAdd(t *testing.T) {
	s := mustParse(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def two : Nat := 1 + 1
`)
	v := s.Consts[2].Value
	if v.Kind != ir.ExprApp || v.Fn.Kind != ir.ExprApp {
		t.Fatalf("expected nested application, got %v", v.Kind)
	}
	head := v.Fn.Fn
	if head.Kind != ir.ExprConst || head.ConstName != "Nat.add" || head.ConstIdx != 1 {
		t.Fatalf("head should be Nat.add at index 1, got %+v", head)
	}
	if v.Fn.Arg.Lit.Nat != 1 || v.Arg.Lit.Nat != 1 {
		t.Fatalf("literal operands lost")
	}
}

func TestUniverseParameters(t *testing.T) {
	s := mustParse(t, `
def id {u} : (A : Sort u) -> A -> A := fun (A : Sort u) (a : A) => a
def idP : Prop -> Prop := id {0} Prop
`)
	id := s.Consts[0]
	if len(id.Levels) != 1 || id.Levels[0] != "u" {
		t.Fatalf("level params: %v", id.Levels)
	}
	sort := id.Type.Dom
	if sort.Kind != ir.ExprSort || sort.Univ.Kind != ir.UnivParam || sort.Univ.Idx != 0 {
		t.Fatalf("Sort u should be a level parameter, got %+v", sort.Univ)
	}
	use := s.Consts[1].Value
	if use.Fn.Kind != ir.ExprConst || len(use.Fn.Levels) != 1 || use.Fn.Levels[0].Kind != ir.UnivZero {
		t.Fatalf("instantiation levels wrong: %+v", use.Fn)
	}
}

func TestPolymorphicReferenceRequiresLevels(t *testing.T) {
	src := `
def id {u} : (A : Sort u) -> A -> A := fun (A : Sort u) (a : A) => a
def bad : Prop -> Prop := id Prop
`
	_, err := ParseDecls(src, ir.NewStore())
	if err == nil || !strings.Contains(err.Error(), "universe levels") {
		t.Fatalf("expected universe arity error, got %v", err)
	}
}

func TestParseInductiveBlock(t *testing.T) {
	s := mustParse(t, `
inductive N : Sort 1
| zero : N
| succ : N -> N
`)
	if s.Len() != 3 {
		t.Fatalf("store has %d declarations, want 3", s.Len())
	}
	ind := s.Consts[0]
	if ind.Kind != ir.ConstInductive || len(ind.Ctors) != 2 {
		t.Fatalf("unexpected inductive: %+v", ind)
	}
	if len(ind.All) != 3 || ind.All[0] != 0 || ind.All[2] != 2 {
		t.Fatalf("sibling list wrong: %v", ind.All)
	}
	succ := s.Consts[2]
	if succ.Kind != ir.ConstConstructor || succ.Name != "N.succ" || succ.Ind != 0 {
		t.Fatalf("unexpected constructor: %+v", succ)
	}
	if succ.Fields != 1 {
		t.Fatalf("succ arity: got %d, want 1", succ.Fields)
	}
}

func TestLetExpression(t *testing.T) {
	s := mustParse(t, `
axiom A : Sort 1
axiom a : A
def v : A := let x : A := a in x
`)
	v := s.Consts[2].Value
	if v.Kind != ir.ExprLet || v.Binder != "x" {
		t.Fatalf("expected let, got %+v", v)
	}
	if v.Body.Kind != ir.ExprVar || v.Body.VarIdx != 0 {
		t.Fatalf("let body should reference the binding")
	}
}

func TestErrorsCarryPositions(t *testing.T) {
	_, err := ParseDecls("def x : missing := missing", ir.NewStore())
	if err == nil || !strings.HasPrefix(err.Error(), "1:9:") {
		t.Fatalf("expected position 1:9, got %v", err)
	}
}

func TestDuplicateNameRejected(t *testing.T) {
	_, err := ParseDecls("axiom P : Prop\naxiom P : Prop", ir.NewStore())
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestCumulativeParsingExtendsStore(t *testing.T) {
	s := ir.NewStore()
	if _, err := ParseDecls("axiom P : Prop", s); err != nil {
		t.Fatalf("first fixture: %v", err)
	}
	added, err := ParseDecls("def q : P -> P := fun (h : P) => h", s)
	if err != nil {
		t.Fatalf("second fixture: %v", err)
	}
	if len(added) != 1 || added[0] != 1 {
		t.Fatalf("added = %v, want [1]", added)
	}
}
