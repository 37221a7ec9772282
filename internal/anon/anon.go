// Package anon projects declarations onto their anonymous form (display
// names erased, references by content) and derives content identifiers
// from it. The digest primitive is injected so the verification layer can
// treat content addressing as an opaque oracle.
package anon

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"cairn/internal/ir"
)

// CID is a content identifier: a digest of a declaration's anonymous form.
type CID [32]byte

// String returns the full hex form of the identifier.
func (c CID) String() string {
	return hex.EncodeToString(c[:])
}

// Short returns an abbreviated hex form for labels and logs.
func (c CID) Short() string {
	return hex.EncodeToString(c[:6])
}

// Hasher digests an encoded anonymous form into a CID.
type Hasher func([]byte) CID

// SHA256 is the default hasher.
func SHA256(data []byte) CID {
	return sha256.Sum256(data)
}

// Anonymous-form layout, one tag array per variant:
//
//	Univ:  Zero [0] | Succ [1 a] | Max [2 a b] | IMax [3 a b] | Param [4 idx]
//	Expr:  Var [0 idx] | Sort [1 u] | Const [2 ref lvls] | App [3 f a]
//	       | Lam [4 info dom body] | Pi [5 info dom body]
//	       | Let [6 typ val body] | Lit [7 kind payload] | Proj [8 field subj]
//	Const: Axiom [0 nlvl typ safe] | Theorem [1 nlvl typ val]
//	       | Opaque [2 nlvl typ val safe] | Definition [3 nlvl typ val safety]
//	       | Inductive [4 nlvl typ params indices ctors recr safe refl nest]
//	       | Constructor [5 name nlvl ind typ params fields safe]
//	       | ExtRecursor [6 ...] | IntRecursor [7 ...] | Quotient [8 kind]
//
// A reference to an already-addressed declaration is its CID bytes; a self
// or forward reference inside a mutual block is the signed offset from the
// referencing declaration, which is stable across store orderings that keep
// blocks contiguous.

type addresser struct {
	store *ir.Store
	hash  Hasher
	cids  []CID
	done  []bool
}

// StoreCIDs computes the anonymous CID of every declaration in store order.
// A nil hasher defaults to SHA256.
func StoreCIDs(s *ir.Store, h Hasher) ([]CID, error) {
	if h == nil {
		h = SHA256
	}
	a := &addresser{
		store: s,
		hash:  h,
		cids:  make([]CID, s.Len()),
		done:  make([]bool, s.Len()),
	}
	for i := range s.Consts {
		form, err := a.constAnon(uint32(i), s.Consts[i])
		if err != nil {
			return nil, fmt.Errorf("anon: %s: %w", s.Consts[i].Name, err)
		}
		bytes, err := msgpack.Marshal(form)
		if err != nil {
			return nil, fmt.Errorf("anon: %s: encode: %w", s.Consts[i].Name, err)
		}
		a.cids[i] = h(bytes)
		a.done[i] = true
	}
	return a.cids, nil
}

// ConstCID computes the anonymous CID of a single declaration at idx.
func ConstCID(s *ir.Store, idx uint32, h Hasher) (CID, error) {
	cids, err := StoreCIDs(s, h)
	if err != nil {
		return CID{}, err
	}
	if int(idx) >= len(cids) {
		return CID{}, fmt.Errorf("anon: index %d out of range", idx)
	}
	return cids[idx], nil
}

// ref encodes a declaration reference from position `from`.
func (a *addresser) ref(from, to uint32) (any, error) {
	if int(to) >= a.store.Len() {
		return nil, fmt.Errorf("reference to index %d outside store of %d", to, a.store.Len())
	}
	if a.done[to] {
		return a.cids[to][:], nil
	}
	// self or forward reference within a mutual block
	return int64(to) - int64(from), nil
}

func univAnon(u *ir.Univ) any {
	if u == nil {
		return nil
	}
	switch u.Kind {
	case ir.UnivZero:
		return []any{uint8(0)}
	case ir.UnivSucc:
		return []any{uint8(1), univAnon(u.A)}
	case ir.UnivMax:
		return []any{uint8(2), univAnon(u.A), univAnon(u.B)}
	case ir.UnivIMax:
		return []any{uint8(3), univAnon(u.A), univAnon(u.B)}
	case ir.UnivParam:
		return []any{uint8(4), u.Idx}
	default:
		return nil
	}
}

func (a *addresser) exprAnon(from uint32, e *ir.Expr) (any, error) {
	if e == nil {
		return nil, nil
	}
	switch e.Kind {
	case ir.ExprVar:
		return []any{uint8(0), e.VarIdx}, nil
	case ir.ExprSort:
		return []any{uint8(1), univAnon(e.Univ)}, nil
	case ir.ExprConst:
		ref, err := a.ref(from, e.ConstIdx)
		if err != nil {
			return nil, err
		}
		levels := make([]any, len(e.Levels))
		for i, lvl := range e.Levels {
			levels[i] = univAnon(lvl)
		}
		return []any{uint8(2), ref, levels}, nil
	case ir.ExprApp:
		fn, err := a.exprAnon(from, e.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := a.exprAnon(from, e.Arg)
		if err != nil {
			return nil, err
		}
		return []any{uint8(3), fn, arg}, nil
	case ir.ExprLam, ir.ExprPi:
		tag := uint8(4)
		if e.Kind == ir.ExprPi {
			tag = 5
		}
		dom, err := a.exprAnon(from, e.Dom)
		if err != nil {
			return nil, err
		}
		body, err := a.exprAnon(from, e.Body)
		if err != nil {
			return nil, err
		}
		return []any{tag, uint8(e.Info), dom, body}, nil
	case ir.ExprLet:
		typ, err := a.exprAnon(from, e.LetType)
		if err != nil {
			return nil, err
		}
		val, err := a.exprAnon(from, e.LetValue)
		if err != nil {
			return nil, err
		}
		body, err := a.exprAnon(from, e.Body)
		if err != nil {
			return nil, err
		}
		return []any{uint8(6), typ, val, body}, nil
	case ir.ExprLit:
		if e.Lit.Kind == ir.LitNat {
			return []any{uint8(7), uint8(0), e.Lit.Nat}, nil
		}
		return []any{uint8(7), uint8(1), e.Lit.Str}, nil
	case ir.ExprProj:
		subj, err := a.exprAnon(from, e.Subject)
		if err != nil {
			return nil, err
		}
		return []any{uint8(8), e.Field, subj}, nil
	default:
		return nil, fmt.Errorf("unknown expression kind %v", e.Kind)
	}
}

func (a *addresser) constAnon(from uint32, c *ir.Const) (any, error) {
	typ, err := a.exprAnon(from, c.Type)
	if err != nil {
		return nil, err
	}
	nlvl := uint64(len(c.Levels))
	switch c.Kind {
	case ir.ConstAxiom:
		return []any{uint8(0), nlvl, typ, c.Safe}, nil
	case ir.ConstTheorem:
		val, err := a.exprAnon(from, c.Value)
		if err != nil {
			return nil, err
		}
		return []any{uint8(1), nlvl, typ, val}, nil
	case ir.ConstOpaque:
		val, err := a.exprAnon(from, c.Value)
		if err != nil {
			return nil, err
		}
		return []any{uint8(2), nlvl, typ, val, c.Safe}, nil
	case ir.ConstDefinition:
		val, err := a.exprAnon(from, c.Value)
		if err != nil {
			return nil, err
		}
		return []any{uint8(3), nlvl, typ, val, uint8(c.Safety)}, nil
	case ir.ConstInductive:
		ctors := make([]any, len(c.Ctors))
		for i, ct := range c.Ctors {
			ctTyp, err := a.exprAnon(from, ct.Type)
			if err != nil {
				return nil, err
			}
			ctors[i] = []any{ct.Name, ctTyp}
		}
		return []any{uint8(4), nlvl, typ, c.Params, c.Indices, ctors, c.Recr, c.Safe, c.Refl, c.Nest}, nil
	case ir.ConstConstructor:
		ind, err := a.ref(from, c.Ind)
		if err != nil {
			return nil, err
		}
		return []any{uint8(5), c.Name, nlvl, ind, typ, c.CtorParams, c.Fields, c.Safe}, nil
	case ir.ConstExtRecursor, ir.ConstIntRecursor:
		tag := uint8(6)
		if c.Kind == ir.ConstIntRecursor {
			tag = 7
		}
		ind, err := a.ref(from, c.Ind)
		if err != nil {
			return nil, err
		}
		rules := make([]any, len(c.Rules))
		for i, r := range c.Rules {
			ctor, err := a.ref(from, r.Ctor)
			if err != nil {
				return nil, err
			}
			rhs, err := a.exprAnon(from, r.RHS)
			if err != nil {
				return nil, err
			}
			rules[i] = []any{ctor, r.NFields, rhs}
		}
		return []any{tag, nlvl, ind, typ, c.Params, c.Indices, c.Motives, c.Minors, rules, c.K, c.Safe}, nil
	case ir.ConstQuotient:
		return []any{uint8(8), uint8(c.Quot)}, nil
	default:
		return nil, fmt.Errorf("unknown declaration kind %v", c.Kind)
	}
}
