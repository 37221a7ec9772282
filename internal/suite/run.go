package suite

import (
	"fmt"
	"path/filepath"

	"cairn/internal/compile"
	"cairn/internal/oracle"
)

// Event reports one finished stage to an observer.
type Event struct {
	Suite  string
	Stage  string
	Report oracle.Report
}

// StageResult is the report of one pipeline stage.
type StageResult struct {
	Stage  string
	Report oracle.Report
}

// Result collects every stage a suite ran.
type Result struct {
	Suite  string
	Stages []StageResult
}

// OK reports whether every assertion of every stage passed.
func (r *Result) OK() bool {
	for _, st := range r.Stages {
		if !st.Report.OK() {
			return false
		}
	}
	return true
}

// Counts tallies passed and failed assertions across all stages.
func (r *Result) Counts() (passed, failed int) {
	for _, st := range r.Stages {
		for _, a := range st.Report {
			if a.OK {
				passed++
			} else {
				failed++
			}
		}
	}
	return passed, failed
}

// Runner executes suites. A nil Observer runs silently.
type Runner struct {
	Observer func(Event)
}

// Run compiles the suite's fixtures in order and applies the selected
// oracles to the final artifact. Fixtures compile fail-fast: later
// fixtures may depend on earlier ones, so a compile error becomes a
// failed assertion and ends the suite. Only harness defects surface as
// a returned error.
func (r *Runner) Run(s *Suite) (*Result, error) {
	result := &Result{Suite: s.Name}

	var state *compile.State
	for _, fixture := range s.Fixtures {
		next, err := compile.File(filepath.Join(s.Dir, fixture), state)
		if err != nil {
			report := oracle.Report{{
				Label:  fmt.Sprintf("compile %s", fixture),
				Detail: err.Error(),
			}}
			r.record(result, "compile", report)
			return result, nil
		}
		state = next
		r.record(result, "compile", oracle.Report{{
			Label: fmt.Sprintf("compile %s", fixture),
			OK:    true,
		}})
	}

	for _, name := range s.Oracles {
		report, err := r.runOracle(name, s, state)
		if err != nil {
			return nil, err
		}
		if report != nil {
			r.record(result, name, report)
		}
	}
	return result, nil
}

func (r *Runner) runOracle(name string, s *Suite, state *compile.State) (oracle.Report, error) {
	switch name {
	case "cid":
		if len(s.Groups) == 0 {
			return nil, nil
		}
		groups := make([]oracle.Group, len(s.Groups))
		for i, g := range s.Groups {
			groups[i] = oracle.Group{Name: g.Name, Members: g.Members}
		}
		report, err := oracle.Groups(state, groups)
		if err != nil {
			return oracle.Report{{Label: "cid lookup", Detail: err.Error()}}, nil
		}
		return report, nil

	case "roundtrip":
		pure, err := state.PureStore()
		if err != nil {
			return oracle.Report{{Label: "extract pure store", Detail: err.Error()}}, nil
		}
		report, err := oracle.Roundtrip(state.TCStore, pure)
		if err != nil {
			return oracle.Report{{Label: "match stores", Detail: err.Error()}}, nil
		}
		return report, nil

	case "typecheck":
		pos, err := oracle.Positive(state.TCStore)
		if err != nil {
			return nil, err
		}
		neg, err := oracle.Negative(state.TCStore, s.MaxRounds)
		if err != nil {
			return nil, err
		}
		return append(pos, neg...), nil

	case "transpile":
		if len(s.Evals) == 0 {
			return nil, nil
		}
		checks := make([]oracle.EvalCheck, len(s.Evals))
		for i, e := range s.Evals {
			checks[i] = oracle.EvalCheck{Decl: e.Decl, Want: e.Want}
		}
		return oracle.Transpile(state, checks), nil

	case "serialize":
		return oracle.Serialize(state.TCStore), nil

	default:
		return nil, fmt.Errorf("suite: unknown oracle %q", name)
	}
}

func (r *Runner) record(result *Result, stage string, report oracle.Report) {
	result.Stages = append(result.Stages, StageResult{Stage: stage, Report: report})
	if r.Observer != nil {
		r.Observer(Event{Suite: result.Suite, Stage: stage, Report: report})
	}
}
