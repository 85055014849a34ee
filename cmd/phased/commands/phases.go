package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newPhasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "List the registered experiment phases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			for _, name := range c.app.Phases() {
				_, _ = fmt.Fprintln(out, name)
			}
		},
	}
}
