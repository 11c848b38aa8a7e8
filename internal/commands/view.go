package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/junhokim/banksettle/internal/settle"
)

func newViewCommand(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print the projected settle view",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.Projection.GenerateView(cmd.Context(), days)
			if err != nil {
				return err
			}

			sym := app.Cfg.UI.CurrencySymbol
			fmt.Printf("현재 잔고   %s%s\n", sym, comma(view.Summary.CurrentBalance))
			fmt.Printf("오늘 예상   %s%s\n", sym, comma(view.Summary.TodayPredicted))
			fmt.Printf("%d일 예상  %s%s  (제외 %d건)\n\n",
				daysOrDefault(days, app), sym, comma(view.Summary.WindowPredicted),
				view.Summary.ExcludedCount)

			for _, o := range view.Occurrences {
				mark := " "
				if o.Excluded {
					mark = "x"
				}
				dir := "출금"
				if o.Direction == settle.Income {
					dir = "입금"
				}
				note := ""
				if o.ExcludeReason != "" {
					note = "  [" + o.ExcludeReason + "]"
				} else if o.Status == settle.StatusConfirmed {
					note = "  [confirmed]"
				}
				fmt.Printf("%s %s  %-4s %12s  %-20s %14s%s\n",
					mark, settle.ISO(o.Date), dir, sym+comma(o.Amount), o.Name,
					sym+comma(o.Balance), note)
			}

			if len(view.PendingCorrections) > 0 {
				fmt.Printf("\n대기중 보정 %d건 — `banksettle corrections list`\n", len(view.PendingCorrections))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "projection window in days (default from config)")
	return cmd
}

func daysOrDefault(days int, app *App) int {
	if days > 0 {
		return days
	}
	if app.Cfg.Settle.WindowDays > 0 {
		return app.Cfg.Settle.WindowDays
	}
	return 30
}

// comma formats n with thousands separators.
func comma(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
