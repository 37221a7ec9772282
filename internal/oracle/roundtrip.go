package oracle

import (
	"fmt"

	"cairn/internal/ir"
)

// Roundtrip matches two stores by name, reindexes every declaration of x
// through the implied renaming and asserts structural equality with its
// counterpart in y. One assertion per pair, labeled by name and kind.
func Roundtrip(x, y *ir.Store) (Report, error) {
	pairs, ren, err := Match(x, y)
	if err != nil {
		return nil, err
	}
	var report Report
	for _, p := range pairs {
		rewritten := ir.ReindexConst(ren, p.Left)
		if ir.EqualConst(rewritten, p.Right) {
			report.pass("roundtrip %s %q", p.Left.Kind, p.Left.Name)
		} else {
			report.fail(
				fmt.Sprintf("roundtrip %s %q", p.Left.Kind, p.Left.Name),
				"reindexed declaration at %d differs from counterpart at %d", p.LeftIdx, p.RightIdx,
			)
		}
	}
	return report, nil
}
