package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/junhokim/banksettle/internal/settle"
)

func newStateCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Adjust per-occurrence state by key",
		Long: `Adjust the overlay state of one occurrence. Keys are the item id for
one-shot items, or "<itemID>_<2006-01-02>" for recurring ones. Manual
adjustments set the override flag, which keeps automation away from the
occurrence from then on.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "exclude <key>",
		Short: "Toggle exclusion for an occurrence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Projection.ToggleExclude(cmd.Context(), args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "confirm <key>",
		Short: "Mark an occurrence confirmed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Projection.SetStatus(cmd.Context(), args[0], settle.StatusConfirmed)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "pending <key>",
		Short: "Mark an occurrence pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Projection.SetStatus(cmd.Context(), args[0], settle.StatusPending)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "shift <key> <days>",
		Short: "Shift an occurrence's displayed date by a day delta",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bad day delta %q: %w", args[1], err)
			}
			return app.Projection.ShiftDate(cmd.Context(), args[0], delta)
		},
	})

	return cmd
}
