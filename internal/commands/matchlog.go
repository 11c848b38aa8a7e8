package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMatchLogCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:     "matchlog",
		Aliases: []string{"log"},
		Short:   "Show recent confirm decisions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := app.MatchLog.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("no match log entries")
				return nil
			}
			for _, e := range entries {
				mode := "manual"
				if e.IsAuto {
					mode = "auto"
				}
				fmt.Printf("%s  %-6s  %-20s -> %-20s  tx %12s  due %12s\n",
					e.CreatedAt.Format("2006-01-02 15:04"),
					mode, e.Counterparty, e.ItemName,
					comma(e.TxAmount), comma(e.SettleAmount))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum entries to show")
	return cmd
}
