package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/junhokim/banksettle/internal/commands"
	"github.com/junhokim/banksettle/internal/config"
	"github.com/junhokim/banksettle/internal/database"
	"github.com/junhokim/banksettle/internal/database/repository"
	"github.com/junhokim/banksettle/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	if err := database.RunMigrations(cfg.Database.Path, cfg.Database.MigrationsPath); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		log.Printf("warn: using local timezone due to load failure: %v", err)
		loc = time.Local
	}

	// repositories
	itemRepo := repository.NewSettleItemRepo(db)
	stateRepo := repository.NewOccurrenceStateRepo(db)
	blockRepo := repository.NewBlockAmountRepo(db)
	corrRepo := repository.NewCorrectionRepo(db)
	logRepo := repository.NewMatchLogRepo(db)
	acctRepo := repository.NewAccountRepo(db)

	locks := service.NewKeyLocks()

	// services
	projection := &service.ProjectionService{
		Items:        itemRepo,
		States:       stateRepo,
		Blocks:       blockRepo,
		Corrections:  corrRepo,
		Accounts:     acctRepo,
		Locks:        locks,
		Loc:          loc,
		WindowDays:   cfg.Settle.WindowDays,
		BlockLabel:   cfg.Settle.BlockLabel,
		BlockAliases: cfg.Settle.BlockAliases,
	}
	confirm := &service.ConfirmService{Items: itemRepo, States: stateRepo, MatchLog: logRepo, Locks: locks, Loc: loc}
	corrections := &service.CorrectionService{DB: db, Items: itemRepo, Corrections: corrRepo}
	observer := &service.ObserverService{Accounts: acctRepo, Blocks: blockRepo, Confirm: confirm, Loc: loc}
	maintenance := &service.MaintenanceService{DB: db}

	app := &commands.App{
		Cfg:         cfg,
		DB:          db,
		Loc:         loc,
		Items:       itemRepo,
		Blocks:      blockRepo,
		MatchLog:    logRepo,
		Projection:  projection,
		Confirm:     confirm,
		Corrections: corrections,
		Observer:    observer,
		Maintenance: maintenance,
	}

	if err := commands.NewRootCommand(app).Execute(); err != nil {
		os.Exit(1)
	}
}
