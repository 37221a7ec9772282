// Package block implements the portable block encoding of declaration
// stores: a schema-versioned msgpack payload.
package block

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"cairn/internal/ir"
)

// Block is an encoded store.
type Block []byte

// Schema version for the payload. Bump when the declaration shape changes.
const schemaVersion uint16 = 1

type payload struct {
	Schema uint16
	Consts []*ir.Const
}

// Encode serializes a store into a block.
func Encode(s *ir.Store) (Block, error) {
	data, err := msgpack.Marshal(payload{Schema: schemaVersion, Consts: s.Consts})
	if err != nil {
		return nil, fmt.Errorf("block: encode: %w", err)
	}
	return Block(data), nil
}

// Decode deserializes a block back into a store. The boolean is false for
// malformed payloads and for schema mismatches; decoding must be total over
// everything Encode can produce.
func Decode(b Block) (*ir.Store, bool) {
	var p payload
	if err := msgpack.Unmarshal(b, &p); err != nil {
		return nil, false
	}
	if p.Schema != schemaVersion {
		return nil, false
	}
	if p.Consts == nil {
		p.Consts = []*ir.Const{}
	}
	return &ir.Store{Consts: p.Consts}, true
}
