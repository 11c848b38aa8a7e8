package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCommand(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe all settle data",
		Long:  "Delete every item, state, block amount, correction, match log entry and account. The database file itself is kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to wipe without --yes")
			}
			if err := app.Maintenance.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("all settle data removed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the wipe")
	return cmd
}
