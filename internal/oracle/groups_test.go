package oracle

import (
	"strings"
	"testing"

	"cairn/internal/compile"
)

func compileFixture(t *testing.T, src string) *compile.State {
	t.Helper()
	st, err := compile.Compile(src, nil)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return st
}

func TestGroupsAlphaEquivalence(t *testing.T) {
	// idA and idB differ only in binder names; other differs in structure
	st := compileFixture(t, `
axiom P : Prop
def idA : P -> P := fun (x : P) => x
def idB : P -> P := fun (y : P) => y
def other : P -> P := fun (x : P) => idA x
`)
	report, err := Groups(st, []Group{
		{Name: "identity", Members: []string{"idA", "idB"}},
		{Name: "other", Members: []string{"other"}},
	})
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if !report.OK() {
		t.Fatalf("failures: %v", report.Failures())
	}
	// one intra-group pair plus two cross-group pairs
	if got, want := len(report), 3; got != want {
		t.Fatalf("got %d assertions, want %d", got, want)
	}
}

func TestGroupsDetectSharedCIDAcrossGroups(t *testing.T) {
	st := compileFixture(t, `
axiom P : Prop
def idA : P -> P := fun (x : P) => x
def idB : P -> P := fun (y : P) => y
`)
	report, err := Groups(st, []Group{
		{Name: "left", Members: []string{"idA"}},
		{Name: "right", Members: []string{"idB"}},
	})
	if err != nil {
		t.Fatalf("Groups: %v", err)
	}
	if report.OK() {
		t.Fatalf("alpha-equivalent declarations in distinct groups passed")
	}
}

func TestGroupsAggregateMissingNames(t *testing.T) {
	st := compileFixture(t, `axiom P : Prop`)
	_, err := Groups(st, []Group{
		{Name: "g", Members: []string{"P", "ghost", "phantom"}},
	})
	if err == nil {
		t.Fatalf("missing names not reported")
	}
	for _, name := range []string{"ghost", "phantom"} {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("error %q does not name %q", err, name)
		}
	}
}
