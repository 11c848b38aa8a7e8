package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/junhokim/banksettle/internal/database/repository"
	"github.com/junhokim/banksettle/internal/settle"
)

func newItemsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage settle items",
	}
	cmd.AddCommand(newItemsListCommand(app))
	cmd.AddCommand(newItemsAddCommand(app))
	cmd.AddCommand(newItemsDeleteCommand(app))
	return cmd
}

func newItemsListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List settle items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Items.ListAll(cmd.Context())
			if err != nil {
				return err
			}
			sym := app.Cfg.UI.CurrencySymbol
			for _, it := range items {
				when := ""
				switch settle.Cycle(it.Cycle) {
				case settle.CycleMonthly:
					when = fmt.Sprintf("매월 %d일", it.DayOfMonth)
				case settle.CycleWeekly:
					when = fmt.Sprintf("매주 %s", weekdayKo(it.DayOfWeek))
				case settle.CycleDaily:
					when = "매일"
				case settle.CycleOnce:
					if it.Date != nil {
						when = *it.Date
					}
				}
				block := ""
				if it.IsBlock {
					block = " [block]"
				}
				fmt.Printf("%-12s %-20s %-8s %-10s %12s%s\n",
					it.ID, it.Name, it.Direction, when, sym+comma(it.Amount), block)
			}
			return nil
		},
	}
}

func newItemsAddCommand(app *App) *cobra.Command {
	var (
		id, name, direction, cycle, date string
		amount                           int64
		dayOfMonth, dayOfWeek            int
		isBlock                          bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or replace a settle item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !settle.KnownCycle(settle.Cycle(cycle)) {
				return fmt.Errorf("unknown cycle %q", cycle)
			}
			if id == "" {
				id = "sm_" + uuid.NewString()[:8]
			}
			it := repository.SettleItem{
				ID: id, Name: name, Amount: amount, Direction: direction,
				Cycle: cycle, DayOfMonth: dayOfMonth, DayOfWeek: dayOfWeek,
				Source: "manual", IsBlock: isBlock,
			}
			if date != "" {
				it.Date = &date
			}
			if err := app.Items.Upsert(cmd.Context(), it); err != nil {
				return err
			}
			fmt.Printf("added %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "item id (generated when empty)")
	cmd.Flags().StringVar(&name, "name", "", "item name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in minor currency units")
	cmd.Flags().StringVar(&direction, "direction", "expense", "income or expense")
	cmd.Flags().StringVar(&cycle, "cycle", "none", "none, once, daily, weekly or monthly")
	cmd.Flags().IntVar(&dayOfMonth, "day-of-month", 1, "due day for monthly items (1-31)")
	cmd.Flags().IntVar(&dayOfWeek, "day-of-week", 0, "due weekday for weekly items (0=Sun)")
	cmd.Flags().StringVar(&date, "date", "", "due date for once items (2006-01-02)")
	cmd.Flags().BoolVar(&isBlock, "block", false, "amount comes from the daily block feed")
	return cmd
}

func newItemsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a one-shot settle item and its state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			it, err := app.Items.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if it == nil {
				return fmt.Errorf("item %s not found", args[0])
			}
			// Recurring items are excluded, not deleted; their overlay
			// state would silently regenerate otherwise.
			switch settle.Cycle(it.Cycle) {
			case settle.CycleNone, settle.CycleOnce:
			default:
				return fmt.Errorf("recurring item %s cannot be deleted; exclude it instead", it.ID)
			}
			return app.Projection.DeleteItem(cmd.Context(), it.ID)
		},
	}
}

func weekdayKo(d int) string {
	names := []string{"일", "월", "화", "수", "목", "금", "토"}
	if d < 0 || d > 6 {
		return "?"
	}
	return names[d] + "요일"
}
