package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/junhokim/banksettle/internal/service"
)

func newObserveCommand(app *App) *cobra.Command {
	var (
		bank, account, txType, counterparty string
		balance, amount                     int64
	)

	cmd := &cobra.Command{
		Use:   "observe",
		Short: "Feed one parsed transaction into the engine",
		Long: `Feed a transaction already normalized by an upstream parser. The account
balance is mirrored and, for withdrawals, today's-due monthly items are
auto-confirmed against the counterparty name.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if txType != service.TxDeposit && txType != service.TxWithdrawal {
				return fmt.Errorf("type must be %q or %q", service.TxDeposit, service.TxWithdrawal)
			}
			return app.Observer.ObserveTransaction(cmd.Context(), service.ParsedTransaction{
				BankName:      bank,
				AccountNumber: account,
				Balance:       balance,
				Type:          txType,
				Amount:        amount,
				Counterparty:  counterparty,
			})
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank name (required)")
	_ = cmd.MarkFlagRequired("bank")
	cmd.Flags().StringVar(&account, "account", "", "account number (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().Int64Var(&balance, "balance", 0, "reported balance after the transaction")
	cmd.Flags().StringVar(&txType, "type", service.TxWithdrawal, "deposit or withdrawal")
	cmd.Flags().Int64Var(&amount, "amount", 0, "transaction amount")
	cmd.Flags().StringVar(&counterparty, "counterparty", "", "counterparty text")
	return cmd
}
