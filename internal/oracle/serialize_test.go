package oracle

import "testing"

func TestSerializeRoundtrip(t *testing.T) {
	s := parseStore(t, `
axiom Nat : Sort 1
axiom Nat.add : Nat -> Nat -> Nat
def two : Nat := 1 + 1
inductive N : Sort 1
| zero : N
| succ : N -> N
`)
	report := Serialize(s)
	if !report.OK() {
		t.Fatalf("failures: %v", report.Failures())
	}
}

func TestSerializeEmptyStore(t *testing.T) {
	s := parseStore(t, "")
	report := Serialize(s)
	if !report.OK() {
		t.Fatalf("empty store did not survive the roundtrip: %v", report.Failures())
	}
}
