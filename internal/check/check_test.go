package check

import (
	"strings"
	"testing"

	"cairn/internal/ir"
	"cairn/internal/parser"
)

func parseStore(t *testing.T, src string) *ir.Store {
	t.Helper()
	s := ir.NewStore()
	if _, err := parser.ParseDecls(src, s); err != nil {
		t.Fatalf("ParseDecls: %v", err)
	}
	return s
}

func checkAll(t *testing.T, s *ir.Store) {
	t.Helper()
	for i, c := range s.Consts {
		if err := Const(c, uint32(i), s); err != nil {
			t.Fatalf("declaration %q rejected: %v", c.Name, err)
		}
	}
}

func TestAcceptsBasicDeclarations(t *testing.T) {
	checkAll(t, parseStore(t, `
axiom P : Prop
axiom p : P
def q : P := p
def id : P -> P := fun (h : P) => h
theorem t : P := id p
`))
}

func TestAcceptsDefinitionUnfolding(t *testing.T) {
	// b : B only checks because B unfolds to A during conversion
	checkAll(t, parseStore(t, `
axiom A : Sort 1
def B : Sort 1 := A
axiom a : A
def b : B := a
`))
}

func TestAcceptsUniversePolymorphism(t *testing.T) {
	checkAll(t, parseStore(t, `
def id {u} : (A : Sort u) -> A -> A := fun (A : Sort u) (a : A) => a
axiom P : Prop
axiom p : P
def idP : P -> P := id {0} P
def p2 : P := id {0} P p
`))
}

func TestAcceptsNatLiterals(t *testing.T) {
	checkAll(t, parseStore(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def two : Nat := 1 + 1
def three : Nat := Nat.add two 1
`))
}

func TestAcceptsLetBindings(t *testing.T) {
	checkAll(t, parseStore(t, `
axiom A : Sort 1
axiom a : A
def v : A := let x : A := a in x
`))
}

func TestAcceptsInductiveBlock(t *testing.T) {
	checkAll(t, parseStore(t, `
inductive N : Sort 1
| zero : N
| succ : N -> N
`))
}

func TestRejectsValueOfWrongType(t *testing.T) {
	s := parseStore(t, `
axiom P : Prop
axiom Q : Prop
axiom p : P
axiom q : Q
def good : P := p
`)
	idx, good, _ := s.ByName("good")
	qi, _, _ := s.ByName("q")
	bad := *good
	bad.Value = ir.NewConst("q", qi, nil)
	if err := Const(&bad, idx, s); err == nil {
		t.Fatalf("value of type Q accepted at type P")
	}
}

func TestRejectsSwappedTypeAndValue(t *testing.T) {
	s := parseStore(t, `
axiom P : Prop
axiom Q : Prop
axiom p : P
axiom q : Q
def dp : P := p
def dq : Q := q
`)
	i1, d1, _ := s.ByName("dp")
	_, d2, _ := s.ByName("dq")
	synthetic := *d1
	synthetic.Type = d2.Type
	if err := Const(&synthetic, i1, s); err == nil {
		t.Fatalf("mismatched type/value pair accepted")
	}
}

func TestRejectsLambdaAgainstNonFunction(t *testing.T) {
	s := parseStore(t, `axiom P : Prop`)
	idx, _, _ := s.ByName("P")
	bad := &ir.Const{
		Kind:  ir.ConstDefinition,
		Name:  "bad",
		Type:  ir.NewConst("P", idx, nil),
		Value: ir.NewLam("x", ir.BinderDefault, ir.NewConst("P", idx, nil), ir.NewVar(0)),
	}
	err := Const(bad, uint32(s.Len()), s)
	if err == nil || !strings.Contains(err.Error(), "function type") {
		t.Fatalf("expected lambda shape error, got %v", err)
	}
}

func TestRejectsWrongBinderAnnotation(t *testing.T) {
	s := parseStore(t, `
axiom P : Prop
axiom Q : Prop
`)
	pIdx, _, _ := s.ByName("P")
	qIdx, _, _ := s.ByName("Q")
	bad := &ir.Const{
		Kind:  ir.ConstDefinition,
		Name:  "bad",
		Type:  ir.NewPi("h", ir.BinderDefault, ir.NewConst("P", pIdx, nil), ir.NewConst("P", pIdx, nil)),
		Value: ir.NewLam("h", ir.BinderDefault, ir.NewConst("Q", qIdx, nil), ir.NewVar(0)),
	}
	if err := Const(bad, uint32(s.Len()), s); err == nil {
		t.Fatalf("binder annotation mismatch accepted")
	}
}

func TestRejectsLiteralWithoutNatDeclaration(t *testing.T) {
	s := parseStore(t, `axiom P : Prop`)
	bad := &ir.Const{
		Kind:  ir.ConstDefinition,
		Name:  "n",
		Type:  ir.NewSort(ir.UnivZeroVal()),
		Value: ir.NewNat(1),
	}
	err := Const(bad, uint32(s.Len()), s)
	if err == nil || !strings.Contains(err.Error(), "Nat") {
		t.Fatalf("expected missing-Nat error, got %v", err)
	}
}

func TestPositionBoundIncludesNextSlot(t *testing.T) {
	s := parseStore(t, `axiom P : Prop`)
	pIdx, _, _ := s.ByName("P")
	decl := &ir.Const{
		Kind: ir.ConstAxiom,
		Name: "p",
		Type: ir.NewConst("P", pIdx, nil),
	}
	// checking before appending puts the declaration at the next position
	if err := Const(decl, uint32(s.Len()), s); err != nil {
		t.Fatalf("declaration at the next position rejected: %v", err)
	}
	err := Const(decl, uint32(s.Len()+1), s)
	if err == nil || !strings.Contains(err.Error(), "outside store") {
		t.Fatalf("expected a position error, got %v", err)
	}
}

func TestConversionComparesUnderBinders(t *testing.T) {
	// two alpha-renamed identity functions convert to each other
	s := parseStore(t, `
axiom P : Prop
def f : P -> P := fun (x : P) => x
def g : P -> P := fun (y : P) => y
theorem same : P -> P := f
`)
	checkAll(t, s)
	// and a synthetic declaration whose value is g still checks at f's type
	fi, f, _ := s.ByName("f")
	_, g, _ := s.ByName("g")
	synthetic := *f
	synthetic.Value = g.Value
	if err := Const(&synthetic, fi, s); err != nil {
		t.Fatalf("alpha-equivalent value rejected: %v", err)
	}
}
