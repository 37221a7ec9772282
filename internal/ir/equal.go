package ir

// EqualExpr reports full structural equality, binder and constant display
// names included. Index fields compare exactly; callers comparing across
// stores must reindex first.
func EqualExpr(a, b *Expr) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ExprVar:
		return a.VarIdx == b.VarIdx
	case ExprSort:
		return EqualUniv(a.Univ, b.Univ)
	case ExprConst:
		if a.ConstName != b.ConstName || a.ConstIdx != b.ConstIdx {
			return false
		}
		return equalLevels(a.Levels, b.Levels)
	case ExprApp:
		return EqualExpr(a.Fn, b.Fn) && EqualExpr(a.Arg, b.Arg)
	case ExprLam, ExprPi:
		return a.Binder == b.Binder && a.Info == b.Info &&
			EqualExpr(a.Dom, b.Dom) && EqualExpr(a.Body, b.Body)
	case ExprLet:
		return a.Binder == b.Binder &&
			EqualExpr(a.LetType, b.LetType) &&
			EqualExpr(a.LetValue, b.LetValue) &&
			EqualExpr(a.Body, b.Body)
	case ExprLit:
		return a.Lit == b.Lit
	case ExprProj:
		return a.Field == b.Field && EqualExpr(a.Subject, b.Subject)
	default:
		return false
	}
}

func equalLevels(a, b []*Univ) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualUniv(a[i], b[i]) {
			return false
		}
	}
	return true
}

// EqualConst reports full structural equality of two declarations.
func EqualConst(a, b *Const) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Name != b.Name {
		return false
	}
	if len(a.Levels) != len(b.Levels) {
		return false
	}
	for i := range a.Levels {
		if a.Levels[i] != b.Levels[i] {
			return false
		}
	}
	if !EqualExpr(a.Type, b.Type) || !EqualExpr(a.Value, b.Value) {
		return false
	}
	if a.Safety != b.Safety || a.Safe != b.Safe {
		return false
	}
	if a.Params != b.Params || a.Indices != b.Indices {
		return false
	}
	if len(a.Ctors) != len(b.Ctors) {
		return false
	}
	for i := range a.Ctors {
		if a.Ctors[i].Name != b.Ctors[i].Name || !EqualExpr(a.Ctors[i].Type, b.Ctors[i].Type) {
			return false
		}
	}
	if a.Recr != b.Recr || a.Refl != b.Refl || a.Nest != b.Nest {
		return false
	}
	if len(a.All) != len(b.All) {
		return false
	}
	for i := range a.All {
		if a.All[i] != b.All[i] {
			return false
		}
	}
	if a.Ind != b.Ind || a.CtorParams != b.CtorParams || a.Fields != b.Fields {
		return false
	}
	if a.Motives != b.Motives || a.Minors != b.Minors || a.K != b.K {
		return false
	}
	if len(a.Rules) != len(b.Rules) {
		return false
	}
	for i := range a.Rules {
		if a.Rules[i].Ctor != b.Rules[i].Ctor ||
			a.Rules[i].NFields != b.Rules[i].NFields ||
			!EqualExpr(a.Rules[i].RHS, b.Rules[i].RHS) {
			return false
		}
	}
	return a.Quot == b.Quot
}

// EqualStore reports positional equality of two stores.
func EqualStore(a, b *Store) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.Consts) != len(b.Consts) {
		return false
	}
	for i := range a.Consts {
		if !EqualConst(a.Consts[i], b.Consts[i]) {
			return false
		}
	}
	return true
}
