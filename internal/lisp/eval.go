package lisp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind enumerates evaluator result kinds.
type ValueKind uint8

const (
	ValNum ValueKind = iota
	ValStr
	ValClosure
	ValBuiltin
)

func (k ValueKind) String() string {
	switch k {
	case ValNum:
		return "number"
	case ValStr:
		return "string"
	case ValClosure:
		return "closure"
	case ValBuiltin:
		return "builtin"
	default:
		return "unknown"
	}
}

// Value is an evaluation result.
type Value struct {
	Kind    ValueKind
	Num     uint64
	Str     string
	Param   string
	Body    *Node
	Env     *env
	Op      string
	Partial []*Value
}

// env is a persistent binding chain.
type env struct {
	name  string
	value *Value
	next  *env
}

func (e *env) bind(name string, v *Value) *env {
	return &env{name: name, value: v, next: e}
}

func (e *env) lookup(name string) (*Value, bool) {
	for cur := e; cur != nil; cur = cur.next {
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}

// primitiveArity gives the argument count of each builtin operator.
var primitiveArity = map[string]int{
	"+": 2,
	"*": 2,
}

// Eval evaluates a closed S-expression.
func Eval(n *Node) (*Value, error) {
	return eval(n, nil)
}

func eval(n *Node, scope *env) (*Value, error) {
	if n == nil {
		return nil, fmt.Errorf("lisp: nil expression")
	}
	switch n.Kind {
	case NNum:
		return &Value{Kind: ValNum, Num: n.Num}, nil
	case NStr:
		return &Value{Kind: ValStr, Str: n.Str}, nil
	case NSym:
		if v, ok := scope.lookup(n.Sym); ok {
			return v, nil
		}
		if _, ok := primitiveArity[n.Sym]; ok {
			return &Value{Kind: ValBuiltin, Op: n.Sym}, nil
		}
		return nil, fmt.Errorf("lisp: unbound symbol %q", n.Sym)
	case NList:
		return evalList(n, scope)
	default:
		return nil, fmt.Errorf("lisp: cannot evaluate node kind %d", n.Kind)
	}
}

func evalList(n *Node, scope *env) (*Value, error) {
	if len(n.List) == 0 {
		return nil, fmt.Errorf("lisp: empty application")
	}
	if head := n.List[0]; head.Kind == NSym {
		switch head.Sym {
		case "lambda":
			return evalLambda(n, scope)
		case "let":
			return evalLet(n, scope)
		}
	}
	fn, err := eval(n.List[0], scope)
	if err != nil {
		return nil, err
	}
	for _, argNode := range n.List[1:] {
		arg, err := eval(argNode, scope)
		if err != nil {
			return nil, err
		}
		fn, err = apply(fn, arg)
		if err != nil {
			return nil, err
		}
	}
	return fn, nil
}

func evalLambda(n *Node, scope *env) (*Value, error) {
	if len(n.List) != 3 || n.List[1].Kind != NList || len(n.List[1].List) != 1 || n.List[1].List[0].Kind != NSym {
		return nil, fmt.Errorf("lisp: malformed lambda %s", n)
	}
	return &Value{
		Kind:  ValClosure,
		Param: n.List[1].List[0].Sym,
		Body:  n.List[2],
		Env:   scope,
	}, nil
}

func evalLet(n *Node, scope *env) (*Value, error) {
	if len(n.List) != 3 || n.List[1].Kind != NList || len(n.List[1].List) != 1 {
		return nil, fmt.Errorf("lisp: malformed let %s", n)
	}
	binding := n.List[1].List[0]
	if binding.Kind != NList || len(binding.List) != 2 || binding.List[0].Kind != NSym {
		return nil, fmt.Errorf("lisp: malformed let binding %s", binding)
	}
	v, err := eval(binding.List[1], scope)
	if err != nil {
		return nil, err
	}
	return eval(n.List[2], scope.bind(binding.List[0].Sym, v))
}

func apply(fn, arg *Value) (*Value, error) {
	switch fn.Kind {
	case ValClosure:
		return eval(fn.Body, fn.Env.bind(fn.Param, arg))
	case ValBuiltin:
		args := append(append([]*Value{}, fn.Partial...), arg)
		if len(args) < primitiveArity[fn.Op] {
			return &Value{Kind: ValBuiltin, Op: fn.Op, Partial: args}, nil
		}
		return applyPrimitive(fn.Op, args)
	default:
		return nil, fmt.Errorf("lisp: cannot apply a %s", fn.Kind)
	}
}

func applyPrimitive(op string, args []*Value) (*Value, error) {
	for _, a := range args {
		if a.Kind != ValNum {
			return nil, fmt.Errorf("lisp: %s expects numbers, found a %s", op, a.Kind)
		}
	}
	switch op {
	case "+":
		return &Value{Kind: ValNum, Num: args[0].Num + args[1].Num}, nil
	case "*":
		return &Value{Kind: ValNum, Num: args[0].Num * args[1].Num}, nil
	default:
		return nil, fmt.Errorf("lisp: unknown primitive %q", op)
	}
}

// Equal compares two first-order values. Closures and partially applied
// builtins never compare equal.
func (v *Value) Equal(o *Value) bool {
	if v == nil || o == nil || v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case ValNum:
		return v.Num == o.Num
	case ValStr:
		return v.Str == o.Str
	default:
		return false
	}
}

// String renders first-order values the way manifests spell them.
func (v *Value) String() string {
	switch v.Kind {
	case ValNum:
		return strconv.FormatUint(v.Num, 10)
	case ValStr:
		return strconv.Quote(v.Str)
	default:
		return "<" + v.Kind.String() + ">"
	}
}

// ParseValue reads an expected value as spelled in a suite manifest: a
// decimal number or a double-quoted string.
func ParseValue(s string) (*Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("lisp: empty expected value")
	}
	if s[0] == '"' {
		str, err := strconv.Unquote(s)
		if err != nil {
			return nil, fmt.Errorf("lisp: bad string literal %s: %w", s, err)
		}
		return &Value{Kind: ValStr, Str: str}, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("lisp: bad numeric literal %q: %w", s, err)
	}
	return &Value{Kind: ValNum, Num: n}, nil
}
