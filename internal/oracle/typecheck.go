package oracle

import (
	"fmt"

	"fortio.org/safecast"

	"cairn/internal/check"
	"cairn/internal/ir"
)

// Positive type-checks every declaration of a trusted store at its own
// position. The compiler already accepted all of them, so any rejection
// is a checker defect.
func Positive(store *ir.Store) (Report, error) {
	var report Report
	for i, c := range store.Consts {
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			return nil, fmt.Errorf("oracle: %w", err)
		}
		if err := check.Const(c, idx, store); err == nil {
			report.pass("accept %s %q", c.Kind, c.Name)
		} else {
			report.fail(fmt.Sprintf("accept %s %q", c.Kind, c.Name), "%v", err)
		}
	}
	return report, nil
}

// candidate is one value-carrying declaration surviving deduplication.
type candidate struct {
	c   *ir.Const
	idx uint32
}

// Negative proves the checker enforces the type/value relationship.
// Value-carrying declarations are deduplicated by exact type, then for
// each rotation round the types (and, independently, the values) are
// cyclically shifted against the original declarations and every
// resulting synthetic declaration must be rejected. Rounds are capped
// below the candidate count so no rotation restores the correct pairing.
func Negative(store *ir.Store, maxRounds int) (Report, error) {
	var cands []candidate
	for i, c := range store.Consts {
		if !c.HasValue() || c.Value == nil {
			continue
		}
		dup := false
		for _, prev := range cands {
			if ir.EqualExpr(prev.c.Type, c.Type) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			return nil, fmt.Errorf("oracle: %w", err)
		}
		cands = append(cands, candidate{c: c, idx: idx})
	}

	n := len(cands)
	rounds := maxRounds
	if n-1 < rounds {
		rounds = n - 1
	}
	var report Report
	for k := 1; k <= rounds; k++ {
		for i, cand := range cands {
			donor := cands[(i+k)%n]
			synthetic := *cand.c
			synthetic.Type = donor.c.Type
			report = append(report, expectRejection(
				store, &synthetic, cand.idx,
				fmt.Sprintf("reject %q with the type of %q (round %d)", cand.c.Name, donor.c.Name, k),
			))
		}
		for i, cand := range cands {
			donor := cands[(i+k)%n]
			synthetic := *cand.c
			synthetic.Value = donor.c.Value
			report = append(report, expectRejection(
				store, &synthetic, cand.idx,
				fmt.Sprintf("reject %q with the value of %q (round %d)", cand.c.Name, donor.c.Name, k),
			))
		}
	}
	return report, nil
}

func expectRejection(store *ir.Store, c *ir.Const, idx uint32, label string) Assertion {
	if err := check.Const(c, idx, store); err != nil {
		return Assertion{Label: label, OK: true}
	}
	return Assertion{Label: label, Detail: "mismatched declaration was accepted"}
}
