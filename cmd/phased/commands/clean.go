package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/phased/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the results of an experiment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			name, _ := cmd.Flags().GetString("name")

			return c.app.Clean(cmd.Context(), app.CleanOptions{
				ConfigPath: configPath,
				Name:       name,
			})
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to the experiment config file")
	cmd.Flags().String("name", "", "Override the experiment name")

	return cmd
}
