package ir

import "fmt"

// ConstKind enumerates declaration kinds.
type ConstKind uint8

const (
	// ConstAxiom is a type with no value.
	ConstAxiom ConstKind = iota
	// ConstTheorem is a proved proposition (type + value).
	ConstTheorem
	// ConstOpaque is a definition whose value is hidden from reduction.
	ConstOpaque
	// ConstDefinition is a transparent definition (type + value).
	ConstDefinition
	// ConstInductive is an inductive type declaration.
	ConstInductive
	// ConstConstructor is one constructor of an inductive type.
	ConstConstructor
	// ConstExtRecursor is the eliminator generated outside the mutual block.
	ConstExtRecursor
	// ConstIntRecursor is the eliminator generated inside the mutual block.
	ConstIntRecursor
	// ConstQuotient is one of the four quotient primitives.
	ConstQuotient
)

// String returns a human-readable name for the declaration kind.
func (k ConstKind) String() string {
	switch k {
	case ConstAxiom:
		return "axiom"
	case ConstTheorem:
		return "theorem"
	case ConstOpaque:
		return "opaque"
	case ConstDefinition:
		return "definition"
	case ConstInductive:
		return "inductive"
	case ConstConstructor:
		return "constructor"
	case ConstExtRecursor:
		return "external recursor"
	case ConstIntRecursor:
		return "internal recursor"
	case ConstQuotient:
		return "quotient"
	default:
		return fmt.Sprintf("ConstKind(%d)", k)
	}
}

// DefSafety describes how a definition may participate in reduction.
type DefSafety uint8

const (
	DefUnsafe DefSafety = iota
	DefSafe
	DefPartial
)

// QuotKind discriminates the quotient primitives.
type QuotKind uint8

const (
	QuotType QuotKind = iota
	QuotCtor
	QuotLift
	QuotInd
)

// CtorSpec names one constructor inside an inductive declaration.
type CtorSpec struct {
	Name string
	Type *Expr
}

// RecursorRule is one reduction rule of a recursor. Ctor is a store index.
type RecursorRule struct {
	Ctor    uint32
	NFields uint64
	RHS     *Expr
}

// Const is a declaration. Payload fields are valid per Kind; auxiliary
// integer fields (Ind, All, Rules[].Ctor) are positions in the owning Store
// and are representation-relative.
type Const struct {
	Kind   ConstKind
	Name   string
	Levels []string // universe parameter names
	Type   *Expr

	// theorem / opaque / definition
	Value  *Expr
	Safety DefSafety // definition only
	Safe   bool      // axiom / opaque / inductive / constructor / recursors

	// inductive
	Params  uint64
	Indices uint64
	Ctors   []CtorSpec
	Recr    bool
	Refl    bool
	Nest    bool
	All     []uint32 // mutual block siblings, inductives and recursors

	// constructor / recursors
	Ind        uint32 // owning inductive, store index
	CtorParams uint64
	Fields     uint64

	// recursors
	Motives uint64
	Minors  uint64
	Rules   []RecursorRule
	K       bool

	// quotient
	Quot QuotKind
}

// HasValue reports whether the declaration carries both a type and a value.
// Only these kinds participate in rotation-based negative tests.
func (c *Const) HasValue() bool {
	switch c.Kind {
	case ConstTheorem, ConstOpaque, ConstDefinition:
		return true
	default:
		return false
	}
}
