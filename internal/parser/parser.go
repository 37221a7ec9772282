// Package parser turns fixture sources into IR declarations. Name
// resolution happens here: identifiers become de Bruijn variables or
// constant references with positions into the target store.
package parser

import (
	"fmt"

	"fortio.org/safecast"

	"cairn/internal/ir"
	"cairn/internal/lexer"
)

// Parser consumes a pre-scanned token slice so the grammar can look
// arbitrarily far ahead (needed to tell `(x : T) -> ...` binder groups from
// parenthesized expressions).
type Parser struct {
	toks  []lexer.Token
	pos   int
	store *ir.Store

	// current declaration context
	levels  []string // universe parameter names
	binders []string // de Bruijn stack, innermost last
}

// ParseDecls parses src and appends every declaration to store, returning
// the new positions in source order.
func ParseDecls(src string, store *ir.Store) ([]uint32, error) {
	lx := lexer.New(src)
	var toks []lexer.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == lexer.EOF {
			break
		}
	}
	p := &Parser{toks: toks, store: store}
	var added []uint32
	for p.peek().Kind != lexer.EOF {
		idx, err := p.parseDecl()
		if err != nil {
			return nil, err
		}
		added = append(added, idx...)
	}
	return added, nil
}

func (p *Parser) peek() lexer.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) lexer.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) next() lexer.Token {
	tok := p.toks[p.pos]
	if p.pos+1 < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) errf(tok lexer.Token, format string, args ...any) error {
	return fmt.Errorf("%d:%d: %s", tok.Line, tok.Col, fmt.Sprintf(format, args...))
}

func (p *Parser) expect(kind lexer.Kind) (lexer.Token, error) {
	tok := p.next()
	if tok.Kind != kind {
		return tok, p.errf(tok, "expected %v, found %v", kind, tok.Kind)
	}
	return tok, nil
}

// parseDecl parses one top-level declaration and appends it (plus any
// constructors) to the store.
func (p *Parser) parseDecl() ([]uint32, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.KwAxiom:
		return p.parseSimpleDecl(ir.ConstAxiom)
	case lexer.KwDef:
		return p.parseSimpleDecl(ir.ConstDefinition)
	case lexer.KwTheorem:
		return p.parseSimpleDecl(ir.ConstTheorem)
	case lexer.KwOpaque:
		return p.parseSimpleDecl(ir.ConstOpaque)
	case lexer.KwInductive:
		return p.parseInductive()
	default:
		return nil, p.errf(tok, "expected a declaration keyword, found %v", tok.Kind)
	}
}

func (p *Parser) parseHeader() (string, error) {
	name, err := p.expect(lexer.Ident)
	if err != nil {
		return "", err
	}
	if _, _, exists := p.store.ByName(name.Text); exists {
		return "", p.errf(name, "duplicate declaration %q", name.Text)
	}
	p.levels = nil
	if p.peek().Kind == lexer.LBrace {
		p.next()
		for p.peek().Kind == lexer.Ident {
			p.levels = append(p.levels, p.next().Text)
		}
		if _, err := p.expect(lexer.RBrace); err != nil {
			return "", err
		}
	}
	return name.Text, nil
}

// parseSimpleDecl handles axiom/def/theorem/opaque:
//
//	axiom   Name {u v} : Type
//	def     Name {u v} : Type := Value
func (p *Parser) parseSimpleDecl(kind ir.ConstKind) ([]uint32, error) {
	p.next() // keyword
	name, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	p.binders = nil
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	typ, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	c := &ir.Const{Kind: kind, Name: name, Levels: p.levels, Type: typ}
	switch kind {
	case ir.ConstAxiom:
		c.Safe = true
	case ir.ConstDefinition, ir.ConstTheorem, ir.ConstOpaque:
		if _, err := p.expect(lexer.Assign); err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.Value = value
		c.Safety = ir.DefSafe
		c.Safe = true
	}
	return []uint32{p.store.Append(c)}, nil
}

// parseInductive handles a non-mutual inductive block:
//
//	inductive Name {u} : Type
//	| ctor : Type
//	| ...
//
// Constructors are appended right after the inductive; the sibling list and
// the owning-inductive back references are filled in.
func (p *Parser) parseInductive() ([]uint32, error) {
	p.next() // keyword
	name, err := p.parseHeader()
	if err != nil {
		return nil, err
	}
	p.binders = nil
	if _, err := p.expect(lexer.Colon); err != nil {
		return nil, err
	}
	typ, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	ind := &ir.Const{Kind: ir.ConstInductive, Name: name, Levels: p.levels, Type: typ, Safe: true, Recr: true}
	indIdx := p.store.Append(ind)
	added := []uint32{indIdx}
	for p.peek().Kind == lexer.Pipe {
		p.next()
		ctorTok, err := p.expect(lexer.Ident)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon); err != nil {
			return nil, err
		}
		p.binders = nil
		ctorTyp, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ctorName := name + "." + ctorTok.Text
		if _, _, exists := p.store.ByName(ctorName); exists {
			return nil, p.errf(ctorTok, "duplicate declaration %q", ctorName)
		}
		fields, err := safecast.Conv[uint64](countPis(ctorTyp))
		if err != nil {
			return nil, p.errf(ctorTok, "constructor arity overflow: %v", err)
		}
		ctor := &ir.Const{
			Kind:   ir.ConstConstructor,
			Name:   ctorName,
			Levels: p.levels,
			Type:   ctorTyp,
			Ind:    indIdx,
			Fields: fields,
			Safe:   true,
		}
		ind.Ctors = append(ind.Ctors, ir.CtorSpec{Name: ctorTok.Text, Type: ctorTyp})
		added = append(added, p.store.Append(ctor))
	}
	// the block is its own mutual sibling set
	ind.All = append([]uint32{}, added...)
	return added, nil
}

func countPis(e *ir.Expr) int {
	n := 0
	for e != nil && e.Kind == ir.ExprPi {
		n++
		e = e.Body
	}
	return n
}
