package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/phased/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [phases...]",
		Short: "Run experiment phases",
		Long: "Run the named experiment phases in order. Without arguments " +
			"every registered phase is run. Phase names are case-insensitive " +
			"and may carry a trailing \"-phase\" suffix.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			name, _ := cmd.Flags().GetString("name")
			force, _ := cmd.Flags().GetBool("force")
			stopOnError, _ := cmd.Flags().GetBool("stop-on-error")
			noCheckpoint, _ := cmd.Flags().GetBool("no-checkpoint")
			noSave, _ := cmd.Flags().GetBool("no-save")
			reuse, _ := cmd.Flags().GetString("reuse")
			result, _ := cmd.Flags().GetString("result")

			return c.app.Run(cmd.Context(), args, app.RunOptions{
				ConfigPath:   configPath,
				Name:         name,
				Force:        force,
				StopOnError:  stopOnError,
				NoCheckpoint: noCheckpoint,
				NoSave:       noSave,
				ReusePath:    reuse,
				ResultPath:   result,
			})
		},
	}

	cmd.Flags().StringP("config", "c", "", "Path to the experiment config file")
	cmd.Flags().String("name", "", "Override the experiment name")
	cmd.Flags().BoolP("force", "f", false, "Run phases even when they report nothing to do")
	cmd.Flags().Bool("stop-on-error", false, "Abort the batch at the first failing phase")
	cmd.Flags().Bool("no-checkpoint", false, "Skip writing the checkpoint after this run")
	cmd.Flags().Bool("no-save", false, "Disable result persistence entirely")
	cmd.Flags().StringP("reuse", "r", "", "Seed the run with a previous checkpoint file")
	cmd.Flags().String("result", "", "Override where the checkpoint is written")

	return cmd
}
