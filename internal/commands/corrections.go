package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/junhokim/banksettle/internal/database/repository"
)

func newCorrectionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "corrections",
		Aliases: []string{"corr"},
		Short:   "Review pending amount corrections",
	}
	cmd.AddCommand(newCorrectionsListCommand(app))
	cmd.AddCommand(newCorrectionsProposeCommand(app))
	cmd.AddCommand(newCorrectionsApproveCommand(app))
	cmd.AddCommand(newCorrectionsDismissCommand(app))
	return cmd
}

func newCorrectionsListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending corrections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pending, err := app.Corrections.Pending(cmd.Context())
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				fmt.Println("no pending corrections")
				return nil
			}
			for _, p := range pending {
				amount := "-"
				if p.NewAmount != nil {
					amount = comma(*p.NewAmount)
				}
				fmt.Printf("%-36s  %-20s  %-20s  %12s\n", p.ID, p.ItemName, p.Counterparty, amount)
			}
			return nil
		},
	}
}

func newCorrectionsProposeCommand(app *App) *cobra.Command {
	var counterparty string

	cmd := &cobra.Command{
		Use:   "propose <item-id> <new-amount>",
		Short: "Propose a new amount for an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			err = app.Corrections.Propose(cmd.Context(), repository.PendingCorrection{
				SettleItemID: args[0],
				Counterparty: counterparty,
				NewAmount:    &amount,
			})
			if err != nil {
				return err
			}
			fmt.Printf("proposed: %s -> %s\n", args[0], comma(amount))
			return nil
		},
	}
	cmd.Flags().StringVar(&counterparty, "counterparty", "", "counterparty text the proposal came from")
	return cmd
}

func newCorrectionsApproveCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <correction-id>",
		Short: "Apply a pending correction to its item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Corrections.Approve(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("approved")
			return nil
		},
	}
}

func newCorrectionsDismissCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <correction-id>",
		Short: "Discard a pending correction without applying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Corrections.Dismiss(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("dismissed")
			return nil
		},
	}
}
