// Package suite loads verification suite manifests and runs their
// fixtures through the oracles. A manifest names fixture files, content
// identifier groups, expected evaluation results and the oracle
// selection; the runner compiles the fixtures in order and applies the
// selected oracles to the final artifact.
package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"cairn/internal/lisp"
)

// DefaultMaxRounds bounds negative typechecker rounds when a manifest
// does not set its own limit.
const DefaultMaxRounds = 4

// knownOracles is the oracle selection vocabulary.
var knownOracles = map[string]bool{
	"cid":       true,
	"roundtrip": true,
	"typecheck": true,
	"transpile": true,
	"serialize": true,
}

// Suite is one loaded manifest.
type Suite struct {
	Name      string
	Dir       string
	Fixtures  []string
	MaxRounds int
	Oracles   []string
	Groups    []GroupSpec
	Evals     []EvalSpec
}

// GroupSpec names declarations that must share one content identifier.
type GroupSpec struct {
	Name    string
	Members []string
}

// EvalSpec pairs a declaration with its expected evaluation result.
type EvalSpec struct {
	Decl string
	Want *lisp.Value
	Raw  string
}

type manifest struct {
	Suite struct {
		Name      string   `toml:"name"`
		Fixtures  []string `toml:"fixtures"`
		MaxRounds *int     `toml:"max_rounds"`
		Oracles   []string `toml:"oracles"`
	} `toml:"suite"`
	Groups []struct {
		Name    string   `toml:"name"`
		Members []string `toml:"members"`
	} `toml:"group"`
	Evals []struct {
		Decl string `toml:"decl"`
		Want string `toml:"want"`
	} `toml:"eval"`
}

// Load reads and validates a manifest. Fixture paths in the manifest are
// resolved relative to the manifest's directory.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("suite: %w", err)
	}
	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("suite: %s: %w", path, err)
	}

	s := &Suite{
		Name:      m.Suite.Name,
		Dir:       filepath.Dir(path),
		Fixtures:  m.Suite.Fixtures,
		MaxRounds: DefaultMaxRounds,
		Oracles:   m.Suite.Oracles,
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(s.Fixtures) == 0 {
		return nil, fmt.Errorf("suite: %s: no fixtures listed", path)
	}
	// max_rounds = 0 is a valid request for no negative rounds; only an
	// absent key falls back to the default.
	if m.Suite.MaxRounds != nil {
		if *m.Suite.MaxRounds < 0 {
			return nil, fmt.Errorf("suite: %s: max_rounds must not be negative", path)
		}
		s.MaxRounds = *m.Suite.MaxRounds
	}
	if len(s.Oracles) == 0 {
		s.Oracles = allOracles()
	}
	for _, name := range s.Oracles {
		if !knownOracles[name] {
			return nil, fmt.Errorf("suite: %s: unknown oracle %q (known: %s)",
				path, name, strings.Join(allOracles(), ", "))
		}
	}

	for _, g := range m.Groups {
		if g.Name == "" || len(g.Members) == 0 {
			return nil, fmt.Errorf("suite: %s: every group needs a name and members", path)
		}
		s.Groups = append(s.Groups, GroupSpec{Name: g.Name, Members: g.Members})
	}
	for _, e := range m.Evals {
		if e.Decl == "" {
			return nil, fmt.Errorf("suite: %s: eval entry without a decl", path)
		}
		want, err := lisp.ParseValue(e.Want)
		if err != nil {
			return nil, fmt.Errorf("suite: %s: eval %q: %w", path, e.Decl, err)
		}
		s.Evals = append(s.Evals, EvalSpec{Decl: e.Decl, Want: want, Raw: e.Want})
	}
	return s, nil
}

func allOracles() []string {
	names := make([]string, 0, len(knownOracles))
	for name := range knownOracles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
