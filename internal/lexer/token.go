package lexer

import "fmt"

// Kind enumerates token kinds of the declaration language.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	Number
	String

	KwAxiom
	KwDef
	KwTheorem
	KwOpaque
	KwFun
	KwLet
	KwIn
	KwSort
	KwProp
	KwInductive

	LParen
	RParen
	LBrace
	RBrace
	Colon
	Assign   // :=
	Arrow    // ->
	FatArrow // =>
	Plus
	Comma
	Pipe

	Invalid
)

// String returns a human-readable name for the token kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case Ident:
		return "identifier"
	case Number:
		return "number"
	case String:
		return "string"
	case KwAxiom:
		return "axiom"
	case KwDef:
		return "def"
	case KwTheorem:
		return "theorem"
	case KwOpaque:
		return "opaque"
	case KwFun:
		return "fun"
	case KwLet:
		return "let"
	case KwIn:
		return "in"
	case KwSort:
		return "Sort"
	case KwProp:
		return "Prop"
	case KwInductive:
		return "inductive"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case Colon:
		return ":"
	case Assign:
		return ":="
	case Arrow:
		return "->"
	case FatArrow:
		return "=>"
	case Plus:
		return "+"
	case Comma:
		return ","
	case Pipe:
		return "|"
	case Invalid:
		return "invalid"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Token is one lexeme with its source position (1-based).
type Token struct {
	Kind Kind
	Text string
	Line int
	Col  int
}

var keywords = map[string]Kind{
	"axiom":     KwAxiom,
	"def":       KwDef,
	"theorem":   KwTheorem,
	"opaque":    KwOpaque,
	"fun":       KwFun,
	"let":       KwLet,
	"in":        KwIn,
	"Sort":      KwSort,
	"Prop":      KwProp,
	"inductive": KwInductive,
}
