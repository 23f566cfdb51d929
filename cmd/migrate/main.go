package main

import (
	"context"
	"flag"
	"time"

	"career-dash/internal/config"
	"career-dash/internal/database/migration"
	dbpostgres "career-dash/internal/database/postgres"
	"career-dash/internal/database/seeder"
	"career-dash/internal/logging"
)

func main() {
	seed := flag.Bool("seed", true, "run the catalog seeders after migrating")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.New("", "").Fatalf("failed to load config: %v", err)
	}
	logger := logging.New(cfg.App.LogLevel, cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Dir: cfg.App.MigrationsDir, Log: logger}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	if !*seed {
		return
	}
	s := seeder.Runner{Seeders: seeder.Defaults(), Log: logger}
	if err := s.Run(ctx, db); err != nil {
		logger.Fatalf("seeding failed: %v", err)
	}
}
