package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "nat.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "nat" {
		t.Fatalf("name %q, want nat", s.Name)
	}
	if len(s.Fixtures) != 1 || s.Fixtures[0] != "nat.cn" {
		t.Fatalf("fixtures %v, want [nat.cn]", s.Fixtures)
	}
	if s.MaxRounds != 2 {
		t.Fatalf("max_rounds %d, want 2", s.MaxRounds)
	}
	// no oracle selection means all of them
	if len(s.Oracles) != 5 {
		t.Fatalf("oracles %v, want all five", s.Oracles)
	}
	if len(s.Groups) != 2 || s.Groups[0].Name != "identity" {
		t.Fatalf("groups %v", s.Groups)
	}
	if len(s.Evals) != 1 || s.Evals[0].Decl != "two" || s.Evals[0].Raw != "2" {
		t.Fatalf("evals %v", s.Evals)
	}
}

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "suite.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadRejectsUnknownOracle(t *testing.T) {
	path := writeManifest(t, `
[suite]
fixtures = ["x.cn"]
oracles = ["cid", "teleport"]
`)
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "teleport") {
		t.Fatalf("unknown oracle accepted: %v", err)
	}
}

func TestLoadRejectsEmptyFixtures(t *testing.T) {
	path := writeManifest(t, `
[suite]
name = "empty"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("manifest without fixtures accepted")
	}
}

func TestLoadRejectsBadExpectedValue(t *testing.T) {
	path := writeManifest(t, `
[suite]
fixtures = ["x.cn"]

[[eval]]
decl = "two"
want = "not a value"
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("unparseable expected value accepted")
	}
}

func TestLoadDefaultsNameAndRounds(t *testing.T) {
	path := writeManifest(t, `
[suite]
fixtures = ["x.cn"]
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Name != "suite" {
		t.Fatalf("name %q, want the manifest basename", s.Name)
	}
	if s.MaxRounds != DefaultMaxRounds {
		t.Fatalf("max_rounds %d, want %d", s.MaxRounds, DefaultMaxRounds)
	}
}

func TestLoadKeepsExplicitZeroRounds(t *testing.T) {
	path := writeManifest(t, `
[suite]
fixtures = ["x.cn"]
max_rounds = 0
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.MaxRounds != 0 {
		t.Fatalf("max_rounds %d, want 0", s.MaxRounds)
	}
}

func TestLoadRejectsNegativeRounds(t *testing.T) {
	path := writeManifest(t, `
[suite]
fixtures = ["x.cn"]
max_rounds = -1
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("negative max_rounds accepted")
	}
}

func TestRunNatSuite(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "nat.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	var stages []string
	r := &Runner{Observer: func(e Event) { stages = append(stages, e.Stage) }}
	result, err := r.Run(s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.OK() {
		for _, st := range result.Stages {
			for _, a := range st.Report.Failures() {
				t.Errorf("%s: %s: %s", st.Stage, a.Label, a.Detail)
			}
		}
		t.Fatalf("suite failed")
	}
	passed, failed := result.Counts()
	if failed != 0 || passed == 0 {
		t.Fatalf("counts: %d passed, %d failed", passed, failed)
	}
	want := []string{"compile", "cid", "roundtrip", "serialize", "transpile", "typecheck"}
	if strings.Join(stages, " ") != strings.Join(want, " ") {
		t.Fatalf("stages %v, want %v", stages, want)
	}
}

func TestRunCumulativeFixtures(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "ext.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	result, err := (&Runner{}).Run(s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.OK() {
		for _, st := range result.Stages {
			for _, a := range st.Report.Failures() {
				t.Errorf("%s: %s: %s", st.Stage, a.Label, a.Detail)
			}
		}
		t.Fatalf("cumulative suite failed")
	}
}

func TestRunFailsFastOnCompileError(t *testing.T) {
	s := &Suite{
		Name:      "broken",
		Dir:       "testdata",
		Fixtures:  []string{"nat.cn", "broken.cn", "ext.cn"},
		MaxRounds: DefaultMaxRounds,
		Oracles:   []string{"serialize"},
	}
	result, err := (&Runner{}).Run(s)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.OK() {
		t.Fatalf("broken fixture compiled")
	}
	last := result.Stages[len(result.Stages)-1]
	if last.Stage != "compile" || !strings.Contains(last.Report[0].Label, "broken.cn") {
		t.Fatalf("last stage %q %v, want a compile failure for broken.cn", last.Stage, last.Report)
	}
}
