package parser

import (
	"strconv"

	"fortio.org/safecast"

	"cairn/internal/ir"
	"cairn/internal/lexer"
)

// parseExpr parses a full expression: pi arrows at the lowest precedence,
// then `+` sugar, then application, then atoms.
func (p *Parser) parseExpr() (*ir.Expr, error) {
	return p.parseArrow()
}

// parseArrow handles `(x : T) -> body` binder groups and `A -> B` sugar
// (an anonymous pi). Right associative.
func (p *Parser) parseArrow() (*ir.Expr, error) {
	if p.isBinderGroup() {
		return p.parseBinderPi()
	}
	dom, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if p.peek().Kind != lexer.Arrow {
		return dom, nil
	}
	p.next()
	p.binders = append(p.binders, "_")
	body, err := p.parseArrow()
	p.binders = p.binders[:len(p.binders)-1]
	if err != nil {
		return nil, err
	}
	return ir.NewPi("_", ir.BinderDefault, dom, body), nil
}

// isBinderGroup reports whether the upcoming tokens are `( ident+ :`.
// Nothing else in the grammar puts a colon after identifiers inside parens.
func (p *Parser) isBinderGroup() bool {
	if p.peek().Kind != lexer.LParen {
		return false
	}
	j := 1
	for p.peekAt(j).Kind == lexer.Ident {
		j++
	}
	return j > 1 && p.peekAt(j).Kind == lexer.Colon
}

// parseBinderPi parses `(x y : T) -> body`. The domain tokens are re-parsed
// for every binder in the group so de Bruijn indices stay correct.
func (p *Parser) parseBinderPi() (*ir.Expr, error) {
	names, domStart, domEnd, err := p.parseBinderGroup()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Arrow); err != nil {
		return nil, err
	}
	return p.buildBinders(ir.ExprPi, names, domStart, domEnd, p.parseArrow)
}

// parseBinderGroup consumes `( ident+ : dom )` and returns the binder names
// plus the token span of the domain.
func (p *Parser) parseBinderGroup() ([]string, int, int, error) {
	if _, err := p.expect(lexer.LParen); err != nil {
		return nil, 0, 0, err
	}
	var names []string
	for p.peek().Kind == lexer.Ident {
		names = append(names, p.next().Text)
	}
	if len(names) == 0 {
		return nil, 0, 0, p.errf(p.peek(), "expected binder name")
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, 0, 0, err
	}
	domStart := p.pos
	if _, err := p.parseExpr(); err != nil { // validate and find the span
		return nil, 0, 0, err
	}
	domEnd := p.pos
	if _, err := p.expect(lexer.RParen); err != nil {
		return nil, 0, 0, err
	}
	return names, domStart, domEnd, nil
}

// buildBinders nests one lambda/pi per binder name. The domain span is
// re-parsed under each extended binder stack.
func (p *Parser) buildBinders(kind ir.ExprKind, names []string, domStart, domEnd int, parseBody func() (*ir.Expr, error)) (*ir.Expr, error) {
	doms := make([]*ir.Expr, len(names))
	for i, name := range names {
		dom, err := p.reparseSpan(domStart, domEnd)
		if err != nil {
			return nil, err
		}
		doms[i] = dom
		p.binders = append(p.binders, name)
	}
	body, err := parseBody()
	p.binders = p.binders[:len(p.binders)-len(names)]
	if err != nil {
		return nil, err
	}
	out := body
	for i := len(names) - 1; i >= 0; i-- {
		if kind == ir.ExprPi {
			out = ir.NewPi(names[i], ir.BinderDefault, doms[i], out)
		} else {
			out = ir.NewLam(names[i], ir.BinderDefault, doms[i], out)
		}
	}
	return out, nil
}

// reparseSpan re-parses the token span [start, end) under the current
// binder stack.
func (p *Parser) reparseSpan(start, end int) (*ir.Expr, error) {
	saved := p.pos
	p.pos = start
	e, err := p.parseExpr()
	if err == nil && p.pos != end {
		err = p.errf(p.peek(), "binder domain re-parse diverged")
	}
	p.pos = saved
	return e, err
}

// parseSum handles `a + b` sugar, desugared to Nat.add applications.
func (p *Parser) parseSum() (*ir.Expr, error) {
	left, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == lexer.Plus {
		plus := p.next()
		right, err := p.parseApp()
		if err != nil {
			return nil, err
		}
		add, err := p.resolveConst(plus, "Nat.add", false)
		if err != nil {
			return nil, err
		}
		left = ir.NewApp(ir.NewApp(add, left), right)
	}
	return left, nil
}

func startsAtom(k lexer.Kind) bool {
	switch k {
	case lexer.Ident, lexer.Number, lexer.String, lexer.KwProp, lexer.KwSort, lexer.LParen, lexer.KwFun, lexer.KwLet:
		return true
	default:
		return false
	}
}

// parseApp parses juxtaposed application, left associative.
func (p *Parser) parseApp() (*ir.Expr, error) {
	fn, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for startsAtom(p.peek().Kind) && !p.isBinderGroup() {
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		fn = ir.NewApp(fn, arg)
	}
	return fn, nil
}

func (p *Parser) parseAtom() (*ir.Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Ident:
		p.next()
		return p.resolveIdent(tok)
	case lexer.Number:
		p.next()
		n, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			return nil, p.errf(tok, "invalid number literal: %v", err)
		}
		return ir.NewNat(n), nil
	case lexer.String:
		p.next()
		return ir.NewStr(tok.Text), nil
	case lexer.KwProp:
		p.next()
		return ir.NewSort(ir.UnivZeroVal()), nil
	case lexer.KwSort:
		p.next()
		u, err := p.parseLevel()
		if err != nil {
			return nil, err
		}
		return ir.NewSort(u), nil
	case lexer.LParen:
		p.next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.KwFun:
		return p.parseFun()
	case lexer.KwLet:
		return p.parseLet()
	default:
		return nil, p.errf(tok, "expected an expression, found %v", tok.Kind)
	}
}

// parseFun parses `fun (x y : T) (z : U) => body`.
func (p *Parser) parseFun() (*ir.Expr, error) {
	p.next() // fun
	type group struct {
		names    []string
		domStart int
		domEnd   int
	}
	var groups []group
	for p.peek().Kind == lexer.LParen {
		names, ds, de, err := p.parseBinderGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, group{names, ds, de})
	}
	if len(groups) == 0 {
		return nil, p.errf(p.peek(), "expected `(name : type)` binder after fun")
	}
	if _, err := p.expect(lexer.FatArrow); err != nil {
		return nil, err
	}
	var build func(i int) (*ir.Expr, error)
	build = func(i int) (*ir.Expr, error) {
		if i == len(groups) {
			return p.parseExpr()
		}
		g := groups[i]
		return p.buildBinders(ir.ExprLam, g.names, g.domStart, g.domEnd, func() (*ir.Expr, error) {
			return build(i + 1)
		})
	}
	return build(0)
}

// parseLet parses `let x : T := v in body`.
func (p *Parser) parseLet() (*ir.Expr, error) {
	p.next() // let
	name, err := p.expect(lexer.Ident)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	typ, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.Assign); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.KwIn); err != nil {
		return nil, err
	}
	p.binders = append(p.binders, name.Text)
	body, err := p.parseExpr()
	p.binders = p.binders[:len(p.binders)-1]
	if err != nil {
		return nil, err
	}
	return ir.NewLet(name.Text, typ, value, body), nil
}

// resolveIdent turns a name into a de Bruijn variable or a constant
// reference, innermost binders first.
func (p *Parser) resolveIdent(tok lexer.Token) (*ir.Expr, error) {
	for i := len(p.binders) - 1; i >= 0; i-- {
		if p.binders[i] == tok.Text {
			depth, err := safecast.Conv[uint32](len(p.binders) - 1 - i)
			if err != nil {
				return nil, p.errf(tok, "binder depth overflow: %v", err)
			}
			return ir.NewVar(depth), nil
		}
	}
	return p.resolveConst(tok, tok.Text, true)
}

// resolveConst references a declaration by name. Explicit universe levels
// follow as `{lvl, lvl}` when allowed and are mandatory for polymorphic
// targets.
func (p *Parser) resolveConst(tok lexer.Token, name string, allowLevels bool) (*ir.Expr, error) {
	idx, c, ok := p.store.ByName(name)
	if !ok {
		return nil, p.errf(tok, "unknown name %q", name)
	}
	var levels []*ir.Univ
	if allowLevels && p.peek().Kind == lexer.LBrace {
		open := p.next()
		for {
			u, err := p.parseLevel()
			if err != nil {
				return nil, err
			}
			levels = append(levels, u)
			if p.peek().Kind != lexer.Comma {
				break
			}
			p.next()
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return nil, err
		}
		if len(levels) == 0 {
			return nil, p.errf(open, "empty universe level list")
		}
	}
	if len(levels) != len(c.Levels) {
		return nil, p.errf(tok, "%q expects %d universe levels, got %d", name, len(c.Levels), len(levels))
	}
	return ir.NewConst(name, idx, levels), nil
}

// parseLevel parses a universe level term: a number, a level parameter of
// the current declaration, or a parenthesized level.
func (p *Parser) parseLevel() (*ir.Univ, error) {
	tok := p.next()
	switch tok.Kind {
	case lexer.Number:
		n, err := strconv.ParseUint(tok.Text, 10, 64)
		if err != nil {
			return nil, p.errf(tok, "invalid level literal: %v", err)
		}
		return ir.UnivOfNat(n), nil
	case lexer.Ident:
		for i, name := range p.levels {
			if name == tok.Text {
				idx, err := safecast.Conv[uint32](i)
				if err != nil {
					return nil, p.errf(tok, "level index overflow: %v", err)
				}
				return ir.UnivParamOf(name, idx), nil
			}
		}
		return nil, p.errf(tok, "unknown universe level %q", tok.Text)
	case lexer.LParen:
		u, err := p.parseLevel()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen); err != nil {
			return nil, err
		}
		return u, nil
	default:
		return nil, p.errf(tok, "expected a universe level, found %v", tok.Kind)
	}
}
