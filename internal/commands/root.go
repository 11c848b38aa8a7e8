package commands

import (
	"database/sql"
	"time"

	"github.com/spf13/cobra"

	"github.com/junhokim/banksettle/internal/config"
	"github.com/junhokim/banksettle/internal/database/repository"
	"github.com/junhokim/banksettle/internal/service"
)

// App bundles the wired services the commands operate on. It is built once
// in main and passed by reference.
type App struct {
	Cfg config.Config
	DB  *sql.DB
	Loc *time.Location

	Items    *repository.SettleItemRepo
	Blocks   *repository.BlockAmountRepo
	MatchLog *repository.MatchLogRepo

	Projection  *service.ProjectionService
	Confirm     *service.ConfirmService
	Corrections *service.CorrectionService
	Observer    *service.ObserverService
	Maintenance *service.MaintenanceService
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "banksettle",
		Short: "Rolling cash-position projection over settle items",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newViewCommand(app))
	rootCmd.AddCommand(newItemsCommand(app))
	rootCmd.AddCommand(newStateCommand(app))
	rootCmd.AddCommand(newBlockCommand(app))
	rootCmd.AddCommand(newObserveCommand(app))
	rootCmd.AddCommand(newCorrectionsCommand(app))
	rootCmd.AddCommand(newMatchLogCommand(app))
	rootCmd.AddCommand(newResetCommand(app))
	rootCmd.AddCommand(newTUICommand(app))

	return rootCmd
}
