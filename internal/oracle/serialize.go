package oracle

import (
	"cairn/internal/block"
	"cairn/internal/ir"
)

// Serialize encodes a store into the block representation, decodes it
// back and asserts full structural equality with the original. A decode
// failure on encoder output is a failure in its own right, never a skip.
func Serialize(store *ir.Store) Report {
	var report Report
	blk, err := block.Encode(store)
	if err != nil {
		report.fail("serialize: encode store", "%v", err)
		return report
	}
	decoded, ok := block.Decode(blk)
	if !ok {
		report.fail("serialize: decode block", "encoder output did not decode")
		return report
	}
	if ir.EqualStore(decoded, store) {
		report.pass("serialize: store of %d survives the roundtrip", store.Len())
	} else {
		report.fail("serialize: compare stores", "decoded store differs from the original")
	}
	return report
}
