package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"career-dash/internal/app"
	"career-dash/internal/config"
	"career-dash/internal/logging"
	"career-dash/internal/reminder"
)

func main() {
	once := flag.Bool("once", false, "send one round of reminders and exit")
	interval := flag.Duration("interval", time.Hour, "time between rounds")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.New("", "").Fatalf("failed to load config: %v", err)
	}
	logger := logging.New(cfg.App.LogLevel, cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	if c.Cache.Client() == nil {
		logger.Fatalf("redis is required to deliver reminders")
	}

	d := reminder.NewDispatcher(c.Skills, c.Applications, c.Publisher, c.Cache, cfg.Reminder, c.Clock, logger)
	if *once {
		sum, err := d.Run(ctx)
		if err != nil {
			logger.Fatalf("reminder run failed: %v", err)
		}
		logger.Infof("reminders sent skills=%d applications=%d failed=%d", sum.SkillReminders, sum.ClosingApplications, sum.Failed)
		return
	}

	if err := d.Loop(ctx, *interval); err != nil {
		logger.Fatalf("reminder loop failed: %v", err)
	}
}
