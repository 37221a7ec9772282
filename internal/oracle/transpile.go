package oracle

import (
	"fmt"

	"cairn/internal/compile"
	"cairn/internal/lisp"
)

// EvalCheck pairs a declaration name with the value its transpiled form
// must evaluate to.
type EvalCheck struct {
	Decl string
	Want *lisp.Value
}

// Transpile runs each check through the full pipeline: transpile the IR
// store rooted at the declaration, fold the program into an expression,
// evaluate it, compare. Each stage fails under its own label so the
// failing stage is identifiable from the report alone.
func Transpile(state *compile.State, checks []EvalCheck) Report {
	var report Report
	for _, ck := range checks {
		program, err := lisp.Transpile(state.IRStore, ck.Decl)
		if err != nil {
			report.fail(fmt.Sprintf("transpile %q", ck.Decl), "%v", err)
			continue
		}
		expr, err := program.ToExpr()
		if err != nil {
			report.fail(fmt.Sprintf("convert %q", ck.Decl), "%v", err)
			continue
		}
		got, err := lisp.Eval(expr)
		if err != nil {
			report.fail(fmt.Sprintf("evaluate %q", ck.Decl), "%v", err)
			continue
		}
		if got.Equal(ck.Want) {
			report.pass("evaluate %q yields %s", ck.Decl, ck.Want)
		} else {
			report.fail(
				fmt.Sprintf("evaluate %q yields %s", ck.Decl, ck.Want),
				"Evaluation of %q yields %s, want %s", ck.Decl, got, ck.Want,
			)
		}
	}
	return report
}
