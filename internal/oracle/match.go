package oracle

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"cairn/internal/ir"
)

// Pair is one name-matched declaration pair across two stores.
type Pair struct {
	Left     *ir.Const
	Right    *ir.Const
	LeftIdx  uint32
	RightIdx uint32
}

// Match pairs every declaration of x with the first declaration of y
// carrying the same name and returns the pairing plus the renaming it
// implies over x's indices. Names with no counterpart in y are collected
// and reported as one aggregated error. Position carries no meaning
// across the two stores; only names do.
func Match(x, y *ir.Store) ([]Pair, ir.Renaming, error) {
	pairs := make([]Pair, 0, x.Len())
	ren := make(ir.Renaming, x.Len())
	var missing []string
	for i, c := range x.Consts {
		li, err := safecast.Conv[uint32](i)
		if err != nil {
			return nil, nil, fmt.Errorf("oracle: %w", err)
		}
		ri, match, ok := y.ByName(c.Name)
		if !ok {
			missing = append(missing, c.Name)
			continue
		}
		pairs = append(pairs, Pair{Left: c, Right: match, LeftIdx: li, RightIdx: ri})
		ren[li] = ri
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("oracle: declarations not found in counterpart store: %s", strings.Join(missing, ", "))
	}
	return pairs, ren, nil
}
