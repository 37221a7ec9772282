package block

import (
	"testing"

	"cairn/internal/ir"
)

func sampleStore() *ir.Store {
	prop := ir.NewSort(ir.UnivZeroVal())
	s := ir.NewStore()
	s.Append(&ir.Const{Kind: ir.ConstAxiom, Name: "P", Type: prop, Safe: true})
	s.Append(&ir.Const{
		Kind:  ir.ConstDefinition,
		Name:  "id",
		Type:  ir.NewPi("x", ir.BinderDefault, ir.NewConst("P", 0, nil), ir.NewConst("P", 0, nil)),
		Value: ir.NewLam("x", ir.BinderDefault, ir.NewConst("P", 0, nil), ir.NewVar(0)),
	})
	s.Append(&ir.Const{
		Kind:  ir.ConstInductive,
		Name:  "N",
		Type:  ir.NewSort(ir.UnivOfNat(1)),
		Ctors: []ir.CtorSpec{{Name: "mk", Type: ir.NewConst("N", 2, nil)}},
		All:   []uint32{2, 3},
	})
	s.Append(&ir.Const{Kind: ir.ConstConstructor, Name: "N.mk", Type: ir.NewConst("N", 2, nil), Ind: 2})
	return s
}

func TestRoundtripPreservesStore(t *testing.T) {
	s := sampleStore()
	b, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, ok := Decode(b)
	if !ok {
		t.Fatalf("Decode rejected encoder output")
	}
	if !ir.EqualStore(got, s) {
		t.Fatalf("decoded store differs from original")
	}
}

func TestRoundtripEmptyStore(t *testing.T) {
	b, err := Encode(ir.NewStore())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, ok := Decode(b)
	if !ok || got.Len() != 0 {
		t.Fatalf("empty store roundtrip failed: ok=%v len=%d", ok, got.Len())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, ok := Decode(Block("not msgpack")); ok {
		t.Fatalf("garbage input decoded successfully")
	}
}

func TestDecodeRejectsWrongSchema(t *testing.T) {
	b, err := Encode(sampleStore())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// payload is a msgpack map; flip the schema by re-encoding through Decode's
	// own struct is not possible from outside, so corrupt the version bytes.
	corrupted := make(Block, len(b))
	copy(corrupted, b)
	for i := range corrupted {
		if corrupted[i] == 1 {
			corrupted[i] = 99
			break
		}
	}
	if got, ok := Decode(corrupted); ok {
		if got != nil && ir.EqualStore(got, sampleStore()) {
			t.Fatalf("corrupted block decoded to the original store")
		}
	}
}
