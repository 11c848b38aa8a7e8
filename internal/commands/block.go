package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newBlockCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Record and inspect daily block amounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <amount>",
		Short: "Record today's observed block amount (first observation wins)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("bad amount %q: %w", args[0], err)
			}
			return app.Observer.ObserveBlockAmount(cmd.Context(), amount)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show recent block amounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			recent, err := app.Blocks.Recent(cmd.Context(), 30)
			if err != nil {
				return err
			}
			sym := app.Cfg.UI.CurrencySymbol
			for _, b := range recent {
				fmt.Printf("%s  %12s\n", b.Date, sym+comma(b.Amount))
			}
			return nil
		},
	})

	return cmd
}
