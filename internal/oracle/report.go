// Package oracle implements the verification oracles: content-identifier
// grouping, cross-store matching with roundtrip comparison, typechecker
// conformance with rotation-based mutation tests, transpilation
// equivalence, and the serialization roundtrip. Each oracle runs against
// immutable compiled artifacts and emits labeled assertions; nothing here
// mutates a store in place.
package oracle

import "fmt"

// Assertion is one labeled pass/fail outcome.
type Assertion struct {
	Label  string
	OK     bool
	Detail string
}

// Report is the ordered assertion list one oracle run produces.
type Report []Assertion

func (r *Report) pass(format string, args ...any) {
	*r = append(*r, Assertion{Label: fmt.Sprintf(format, args...), OK: true})
}

func (r *Report) fail(label string, format string, args ...any) {
	*r = append(*r, Assertion{Label: label, Detail: fmt.Sprintf(format, args...)})
}

// OK reports whether every assertion passed.
func (r Report) OK() bool {
	for _, a := range r {
		if !a.OK {
			return false
		}
	}
	return true
}

// Failures returns the failing assertions in order.
func (r Report) Failures() []Assertion {
	var out []Assertion
	for _, a := range r {
		if !a.OK {
			out = append(out, a)
		}
	}
	return out
}
