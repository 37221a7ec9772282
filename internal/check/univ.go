package check

import "cairn/internal/ir"

// instUniv substitutes level parameters by position. Parameters outside the
// substitution are kept as-is, which makes the identity instantiation free.
func instUniv(u *ir.Univ, subst []*ir.Univ) *ir.Univ {
	if u == nil {
		return nil
	}
	switch u.Kind {
	case ir.UnivZero:
		return u
	case ir.UnivSucc:
		return ir.UnivSuccOf(instUniv(u.A, subst))
	case ir.UnivMax:
		return &ir.Univ{Kind: ir.UnivMax, A: instUniv(u.A, subst), B: instUniv(u.B, subst)}
	case ir.UnivIMax:
		return &ir.Univ{Kind: ir.UnivIMax, A: instUniv(u.A, subst), B: instUniv(u.B, subst)}
	case ir.UnivParam:
		if int(u.Idx) < len(subst) {
			return subst[u.Idx]
		}
		return u
	default:
		return u
	}
}

// simplifyUniv normalizes a level: concrete max/imax folds away, imax with a
// zero right side collapses to zero.
func simplifyUniv(u *ir.Univ) *ir.Univ {
	if u == nil {
		return nil
	}
	switch u.Kind {
	case ir.UnivZero, ir.UnivParam:
		return u
	case ir.UnivSucc:
		return ir.UnivSuccOf(simplifyUniv(u.A))
	case ir.UnivMax:
		a, b := simplifyUniv(u.A), simplifyUniv(u.B)
		if na, ok := univToNat(a); ok {
			if nb, ok := univToNat(b); ok {
				if nb > na {
					na = nb
				}
				return ir.UnivOfNat(na)
			}
			if na == 0 {
				return b
			}
		}
		if nb, ok := univToNat(b); ok && nb == 0 {
			return a
		}
		if univStructEq(a, b) {
			return a
		}
		return &ir.Univ{Kind: ir.UnivMax, A: a, B: b}
	case ir.UnivIMax:
		a, b := simplifyUniv(u.A), simplifyUniv(u.B)
		if nb, ok := univToNat(b); ok {
			if nb == 0 {
				return ir.UnivZeroVal()
			}
			// a positive right side makes imax an ordinary max
			return simplifyUniv(&ir.Univ{Kind: ir.UnivMax, A: a, B: b})
		}
		if univStructEq(a, b) {
			return a
		}
		return &ir.Univ{Kind: ir.UnivIMax, A: a, B: b}
	default:
		return u
	}
}

// univToNat extracts a concrete level when it has no parameters.
func univToNat(u *ir.Univ) (uint64, bool) {
	n := uint64(0)
	for u != nil && u.Kind == ir.UnivSucc {
		n++
		u = u.A
	}
	if u != nil && u.Kind == ir.UnivZero {
		return n, true
	}
	return 0, false
}

// univStructEq compares levels by structure, display names ignored.
func univStructEq(a, b *ir.Univ) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ir.UnivZero:
		return true
	case ir.UnivSucc:
		return univStructEq(a.A, b.A)
	case ir.UnivMax, ir.UnivIMax:
		return univStructEq(a.A, b.A) && univStructEq(a.B, b.B)
	case ir.UnivParam:
		return a.Idx == b.Idx
	default:
		return false
	}
}

// univEq is definitional level equality: simplify then compare.
func univEq(a, b *ir.Univ) bool {
	return univStructEq(simplifyUniv(a), simplifyUniv(b))
}

func univEqList(a, b []*ir.Univ) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !univEq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// identityLevels returns the identity instantiation for a declaration's
// level parameters.
func identityLevels(names []string) []*ir.Univ {
	out := make([]*ir.Univ, len(names))
	for i, name := range names {
		out[i] = ir.UnivParamOf(name, uint32(i))
	}
	return out
}
