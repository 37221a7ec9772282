package oracle

import (
	"fmt"
	"strings"

	"cairn/internal/compile"
)

// Group names declarations that must share one content identifier.
type Group struct {
	Name    string
	Members []string
}

// Groups verifies that members of each group hash identically and that
// members of distinct groups hash differently. Names absent from the
// artifact's cache are collected and reported as one aggregated error
// before any assertion runs.
func Groups(state *compile.State, groups []Group) (Report, error) {
	var missing []string
	for _, g := range groups {
		for _, name := range g.Members {
			if _, ok := state.Cache[name]; !ok {
				missing = append(missing, name)
			}
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("oracle: declarations not found in cache: %s", strings.Join(missing, ", "))
	}

	var report Report
	for _, g := range groups {
		for i, a := range g.Members {
			for _, b := range g.Members[i+1:] {
				ca, cb := state.Cache[a].CID, state.Cache[b].CID
				if ca == cb {
					report.pass("cid group %q: %s = %s", g.Name, a, b)
				} else {
					report.fail(
						fmt.Sprintf("cid group %q: %s = %s", g.Name, a, b),
						"%s hashes to %s, %s hashes to %s", a, ca.Short(), b, cb.Short(),
					)
				}
			}
		}
	}
	for i, g := range groups {
		for _, h := range groups[i+1:] {
			for _, a := range g.Members {
				for _, b := range h.Members {
					ca, cb := state.Cache[a].CID, state.Cache[b].CID
					if ca != cb {
						report.pass("cid groups %q/%q: %s != %s", g.Name, h.Name, a, b)
					} else {
						report.fail(
							fmt.Sprintf("cid groups %q/%q: %s != %s", g.Name, h.Name, a, b),
							"both hash to %s", ca.Short(),
						)
					}
				}
			}
		}
	}
	return report, nil
}
