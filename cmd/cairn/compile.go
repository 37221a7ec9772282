package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cairn/internal/compile"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] fixture...",
	Short: "Compile fixtures and print the declaration table",
	Long:  "Compile fixture files in order, each extending the previous artifact, and print every declaration with its kind and content identifier.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  compileExecution,
}

func init() {
	compileCmd.Flags().Bool("full-cid", false, "print full content identifiers")
}

func compileExecution(cmd *cobra.Command, args []string) error {
	if err := configureColor(cmd); err != nil {
		return err
	}
	fullCID, err := cmd.Flags().GetBool("full-cid")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	var state *compile.State
	for _, path := range args {
		state, err = compile.File(path, state)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	kindColor := color.New(color.FgCyan)
	cidColor := color.New(color.Faint)

	names := make([]string, 0, len(state.Cache))
	for name := range state.Cache {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return state.Cache[names[i]].Idx < state.Cache[names[j]].Idx
	})

	for _, name := range names {
		entry := state.Cache[name]
		c, _ := state.TCStore.Get(entry.Idx)
		cid := entry.CID.Short()
		if fullCID {
			cid = entry.CID.String()
		}
		fmt.Fprintf(out, "%4d  ", entry.Idx)
		kindColor.Fprintf(out, "%-18s", c.Kind)
		fmt.Fprintf(out, " %-24s ", name)
		cidColor.Fprintln(out, cid)
	}
	if !quiet {
		fmt.Fprintf(out, "%d declarations, block of %d bytes\n", state.TCStore.Len(), len(state.Block))
	}
	return nil
}
