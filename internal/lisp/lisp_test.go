package lisp

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

func evalDecl(t *testing.T, src, root string) *Value {
	t.Helper()
	s := parseStore(t, src)
	p, err := Transpile(s, root)
	if err != nil {
		t.Fatalf("Transpile(%q): %v", root, err)
	}
	expr, err := p.ToExpr()
	if err != nil {
		t.Fatalf("ToExpr: %v", err)
	}
	v, err := Eval(expr)
	if err != nil {
		t.Fatalf("Eval %s: %v", expr, err)
	}
	return v
}

func TestTranspilesAndEvaluatesAddition(t *testing.T) {
	v := evalDecl(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def two : Nat := 1 + 1
`, "two")
	if want := (&Value{Kind: ValNum, Num: 2}); !v.Equal(want) {
		t.Fatalf("two evaluates to %s, want %s", v, want)
	}
}

func TestTranspilesThroughDependencies(t *testing.T) {
	v := evalDecl(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def two : Nat := 1 + 1
def four : Nat := two + two
`, "four")
	if v.Kind != ValNum || v.Num != 4 {
		t.Fatalf("four evaluates to %s, want 4", v)
	}
}

func TestTranspilesLambdaAndLet(t *testing.T) {
	v := evalDecl(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def inc : Nat -> Nat := fun (n : Nat) => n + 1
def five : Nat := let x : Nat := inc 3 in inc x
`, "five")
	if v.Kind != ValNum || v.Num != 5 {
		t.Fatalf("five evaluates to %s, want 5", v)
	}
}

func TestBinderShadowingKeepsScopes(t *testing.T) {
	// both binders are named n; the inner one must not capture the outer
	v := evalDecl(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def f : Nat -> Nat -> Nat := fun (n : Nat) (n : Nat) => n
def r : Nat := f 1 9
`, "r")
	if v.Kind != ValNum || v.Num != 9 {
		t.Fatalf("r evaluates to %s, want 9", v)
	}
}

func TestRejectsValuelessDependency(t *testing.T) {
	s := parseStore(t, `
axiom Nat : Sort 1
axiom mystery : Nat
def m : Nat := mystery
`)
	if _, err := Transpile(s, "m"); err == nil || !strings.Contains(err.Error(), "no value") {
		t.Fatalf("expected valueless dependency error, got %v", err)
	}
}

func TestRejectsUnknownRoot(t *testing.T) {
	s := parseStore(t, `axiom Nat : Sort 1`)
	if _, err := Transpile(s, "nope"); err == nil {
		t.Fatalf("expected unknown-root error")
	}
}

func TestProgramRendersAsSExpressions(t *testing.T) {
	s := parseStore(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def two : Nat := 1 + 1
`)
	p, err := Transpile(s, "two")
	if err != nil {
		t.Fatalf("Transpile: %v", err)
	}
	if len(p.Defines) != 1 {
		t.Fatalf("got %d defines, want 1", len(p.Defines))
	}
	if got, want := p.Defines[0].Body.String(), "(+ 1 1)"; got != want {
		t.Fatalf("two transpiles to %s, want %s", got, want)
	}
}

func TestEvalStringLiteral(t *testing.T) {
	v := evalDecl(t, `
axiom String : Sort 1
def greeting : String := "hello"
`, "greeting")
	if v.Kind != ValStr || v.Str != "hello" {
		t.Fatalf("greeting evaluates to %s, want \"hello\"", v)
	}
}

func TestParseValue(t *testing.T) {
	v, err := ParseValue("42")
	if err != nil || v.Kind != ValNum || v.Num != 42 {
		t.Fatalf("ParseValue(42) = %v, %v", v, err)
	}
	v, err = ParseValue(`"hi"`)
	if err != nil || v.Kind != ValStr || v.Str != "hi" {
		t.Fatalf(`ParseValue("hi") = %v, %v`, v, err)
	}
	if _, err := ParseValue("not a value"); err == nil {
		t.Fatalf("expected parse error")
	}
}
