package ir

import "fmt"

// UnivKind enumerates universe level shapes.
type UnivKind uint8

const (
	// UnivZero is the bottom level (Prop lives in Sort 0).
	UnivZero UnivKind = iota
	// UnivSucc is the successor of an inner level.
	UnivSucc
	// UnivMax is the maximum of two levels.
	UnivMax
	// UnivIMax is the impredicative maximum: imax(a, 0) = 0.
	UnivIMax
	// UnivParam is a reference to a declaration's level parameter.
	UnivParam
)

// String returns a human-readable name for the universe kind.
func (k UnivKind) String() string {
	switch k {
	case UnivZero:
		return "Zero"
	case UnivSucc:
		return "Succ"
	case UnivMax:
		return "Max"
	case UnivIMax:
		return "IMax"
	case UnivParam:
		return "Param"
	default:
		return fmt.Sprintf("UnivKind(%d)", k)
	}
}

// Univ is a universe level expression.
type Univ struct {
	Kind UnivKind
	A    *Univ  // Succ: inner; Max/IMax: left
	B    *Univ  // Max/IMax: right
	Name string // Param: display name
	Idx  uint32 // Param: position in the declaration's level parameter list
}

// UnivZeroVal returns the zero level.
func UnivZeroVal() *Univ {
	return &Univ{Kind: UnivZero}
}

// UnivSuccOf wraps a level in one successor.
func UnivSuccOf(a *Univ) *Univ {
	return &Univ{Kind: UnivSucc, A: a}
}

// UnivOfNat builds the level succ^n(zero).
func UnivOfNat(n uint64) *Univ {
	u := UnivZeroVal()
	for i := uint64(0); i < n; i++ {
		u = UnivSuccOf(u)
	}
	return u
}

// UnivParamOf references the idx-th level parameter of the enclosing declaration.
func UnivParamOf(name string, idx uint32) *Univ {
	return &Univ{Kind: UnivParam, Name: name, Idx: idx}
}

// EqualUniv reports full structural equality, display names included.
func EqualUniv(a, b *Univ) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case UnivZero:
		return true
	case UnivSucc:
		return EqualUniv(a.A, b.A)
	case UnivMax, UnivIMax:
		return EqualUniv(a.A, b.A) && EqualUniv(a.B, b.B)
	case UnivParam:
		return a.Idx == b.Idx && a.Name == b.Name
	default:
		return false
	}
}
