// Package main implements the cairn CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cairn/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cairn",
	Short: "Conformance harness for a content-addressed toolchain",
	Long:  `Cairn compiles fixture declarations and verifies the compiled artifacts against each other: content-identifier grouping, cross-store roundtrips, typechecker conformance, transpilation equivalence and serialization roundtrips.`,
}

func main() {
	rootCmd.Version = version.Version
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
