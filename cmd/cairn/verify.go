package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"cairn/internal/suite"
	"cairn/internal/ui"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [flags] manifest...",
	Short: "Run verification suites",
	Long:  "Compile each suite's fixtures and apply its selected oracles, reporting every assertion.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  verifyExecution,
}

func init() {
	verifyCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
}

func verifyExecution(cmd *cobra.Command, args []string) error {
	if err := configureColor(cmd); err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiFlagMode, err := parseFlagMode("ui", uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	suites := make([]*suite.Suite, 0, len(args))
	for _, path := range args {
		s, err := suite.Load(path)
		if err != nil {
			return err
		}
		suites = append(suites, s)
	}

	var results []*suite.Result
	if uiFlagMode.enabled() {
		results, err = runSuitesWithUI(suites)
	} else {
		results, err = runSuites(suites, nil)
	}
	if err != nil {
		return err
	}

	failed := renderResults(cmd, results, quiet)
	if failed > 0 {
		return fmt.Errorf("%d assertion(s) failed", failed)
	}
	return nil
}

// runSuites executes every suite concurrently. Suites share nothing, so
// the only coordination is the observer stream and the results slice.
func runSuites(suites []*suite.Suite, observer func(ui.Event)) ([]*suite.Result, error) {
	results := make([]*suite.Result, len(suites))
	var g errgroup.Group
	for i, s := range suites {
		i, s := i, s
		g.Go(func() error {
			runner := &suite.Runner{}
			if observer != nil {
				runner.Observer = func(e suite.Event) {
					observer(ui.Event{
						Suite:  e.Suite,
						Stage:  e.Stage,
						Failed: len(e.Report.Failures()),
					})
				}
			}
			res, err := runner.Run(s)
			if err != nil {
				return err
			}
			results[i] = res
			if observer != nil {
				observer(ui.Event{Suite: s.Name, Done: true, OK: res.OK()})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

type verifyOutcome struct {
	results []*suite.Result
	err     error
}

func runSuitesWithUI(suites []*suite.Suite) ([]*suite.Result, error) {
	events := make(chan ui.Event, 256)
	outcomeCh := make(chan verifyOutcome, 1)

	go func() {
		results, err := runSuites(suites, func(e ui.Event) { events <- e })
		outcomeCh <- verifyOutcome{results: results, err: err}
		close(events)
	}()

	plans := make([]ui.SuitePlan, len(suites))
	for i, s := range suites {
		plans[i] = ui.SuitePlan{Name: s.Name, Stages: plannedStages(s)}
	}
	model := ui.NewProgressModel("verifying suites", plans, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}

// plannedStages counts the stage events a suite emits when nothing fails.
func plannedStages(s *suite.Suite) int {
	stages := len(s.Fixtures)
	for _, name := range s.Oracles {
		switch name {
		case "cid":
			if len(s.Groups) > 0 {
				stages++
			}
		case "transpile":
			if len(s.Evals) > 0 {
				stages++
			}
		default:
			stages++
		}
	}
	return stages
}

func renderResults(cmd *cobra.Command, results []*suite.Result, quiet bool) int {
	out := cmd.OutOrStdout()
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed, color.Bold)
	dim := color.New(color.Faint)

	totalFailed := 0
	for _, res := range results {
		passed, failed := res.Counts()
		totalFailed += failed
		if failed == 0 {
			if !quiet {
				pass.Fprintf(out, "ok")
				fmt.Fprintf(out, "   %s: %d assertions\n", res.Suite, passed)
			}
			continue
		}
		fail.Fprintf(out, "FAIL")
		fmt.Fprintf(out, " %s: %d of %d assertions failed\n", res.Suite, failed, passed+failed)
		for _, st := range res.Stages {
			for _, a := range st.Report.Failures() {
				fmt.Fprintf(out, "  %s: %s", st.Stage, a.Label)
				if a.Detail != "" {
					dim.Fprintf(out, " (%s)", a.Detail)
				}
				fmt.Fprintln(out)
			}
		}
	}
	return totalFailed
}
