// Package lisp is the transpilation target: a small Lisp-like language
// with S-expression programs and a deterministic tree-walking evaluator.
package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// NodeKind enumerates S-expression node kinds.
type NodeKind uint8

const (
	NSym NodeKind = iota
	NNum
	NStr
	NList
)

// Node is one S-expression.
type Node struct {
	Kind NodeKind
	Sym  string
	Num  uint64
	Str  string
	List []*Node
}

// Sym builds a symbol node.
func Sym(s string) *Node {
	return &Node{Kind: NSym, Sym: s}
}

// Num builds a number node.
func Num(n uint64) *Node {
	return &Node{Kind: NNum, Num: n}
}

// Str builds a string node.
func Str(s string) *Node {
	return &Node{Kind: NStr, Str: s}
}

// ListOf builds a list node.
func ListOf(items ...*Node) *Node {
	return &Node{Kind: NList, List: items}
}

// String renders the node in conventional parenthesized syntax.
func (n *Node) String() string {
	switch n.Kind {
	case NSym:
		return n.Sym
	case NNum:
		return strconv.FormatUint(n.Num, 10)
	case NStr:
		return strconv.Quote(n.Str)
	case NList:
		parts := make([]string, len(n.List))
		for i, item := range n.List {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("<node %d>", n.Kind)
	}
}
