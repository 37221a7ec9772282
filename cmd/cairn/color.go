package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// configureColor applies the persistent --color flag to the process-wide
// color state before any output is rendered.
func configureColor(cmd *cobra.Command) error {
	value, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	mode, err := parseFlagMode("color", value)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled()
	return nil
}
