package oracle

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

func TestRoundtripIdenticalStores(t *testing.T) {
	s := parseStore(t, `
axiom P : Prop
axiom p : P
def q : P := p
`)
	report, err := Roundtrip(s, s.Clone())
	if err != nil {
		t.Fatalf("Roundtrip: %v", err)
	}
	if !report.OK() || len(report) != 3 {
		t.Fatalf("identity roundtrip failed: %v", report.Failures())
	}
}

func TestRoundtripAcrossReorderedStores(t *testing.T) {
	st := compileFixture(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def two : Nat := 1 + 1
def double : Nat := two + two
`)
	pure, err := st.PureStore()
	if err != nil {
		t.Fatalf("PureStore: %v", err)
	}
	if ir.EqualStore(st.TCStore, pure) {
		t.Fatalf("fixture did not produce differently ordered stores")
	}
	report, err := Roundtrip(st.TCStore, pure)
	if err != nil {
		t.Fatalf("Roundtrip: %v", err)
	}
	if !report.OK() {
		t.Fatalf("failures: %v", report.Failures())
	}
}

func TestRoundtripRewritesSiblingIndices(t *testing.T) {
	// the inductive block carries sibling and owner indices that must be
	// rewritten alongside the type and value expressions
	st := compileFixture(t, `
inductive N : Sort 1
| zero : N
| succ : N -> N
def one : N := N.succ N.zero
`)
	pure, err := st.PureStore()
	if err != nil {
		t.Fatalf("PureStore: %v", err)
	}
	report, err := Roundtrip(st.TCStore, pure)
	if err != nil {
		t.Fatalf("Roundtrip: %v", err)
	}
	if !report.OK() {
		t.Fatalf("failures: %v", report.Failures())
	}
	if got, want := len(report), st.TCStore.Len(); got != want {
		t.Fatalf("got %d assertions, want one per declaration (%d)", got, want)
	}
}

func TestRoundtripDetectsStructuralDrift(t *testing.T) {
	x := parseStore(t, `
axiom P : Prop
axiom p : P
def q : P := p
`)
	y := parseStore(t, `
axiom P : Prop
axiom p : P
def q : P := let h : P := p in h
`)
	report, err := Roundtrip(x, y)
	if err != nil {
		t.Fatalf("Roundtrip: %v", err)
	}
	if report.OK() {
		t.Fatalf("structurally different counterpart passed")
	}
}

func TestMatchAggregatesMissingNames(t *testing.T) {
	x := parseStore(t, `
axiom A : Prop
axiom B : Prop
axiom C : Prop
`)
	y := parseStore(t, `axiom B : Prop`)
	_, _, err := Match(x, y)
	if err == nil {
		t.Fatalf("unmatched names not reported")
	}
	for _, name := range []string{"A", "C"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not name %q", err, name)
		}
	}
}

func TestMatchRenamingIsTotal(t *testing.T) {
	st := compileFixture(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def two : Nat := 1 + 1
def double : Nat := two + two
`)
	pure, err := st.PureStore()
	if err != nil {
		t.Fatalf("PureStore: %v", err)
	}
	pairs, ren, err := Match(st.TCStore, pure)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}
	if got, want := len(pairs), st.TCStore.Len(); got != want {
		t.Fatalf("got %d pairs, want %d", got, want)
	}
	seen := make(map[uint32]bool, len(ren))
	for i := range st.TCStore.Consts {
		to, ok := ren[uint32(i)]
		if !ok {
			t.Fatalf("renaming has no image for index %d", i)
		}
		if seen[to] {
			t.Fatalf("renaming maps two indices onto %d", to)
		}
		seen[to] = true
	}
}
