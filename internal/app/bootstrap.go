package app

import (
	"context"
	"fmt"
	"strings"

	"career-dash/internal/config"
	"career-dash/internal/delivery/http/dto"
	"career-dash/internal/delivery/http/handler"
	"career-dash/internal/delivery/http/middleware"
	"career-dash/internal/delivery/http/routes"
	v1 "career-dash/internal/delivery/http/routes/v1"
	"career-dash/internal/domain/ordering"
	"career-dash/internal/infrastructure/pubsub"
	"career-dash/internal/pkg/jwt"
	"career-dash/internal/usecase"
	"career-dash/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

type App struct {
	Fiber *fiber.App
	Hub   *ws.Hub
}

// Bootstrap wires the HTTP server, the websocket hub and the notification
// relay. Background goroutines stop when ctx is done.
func Bootstrap(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*App, func() error, error) {
	container, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	app, err := New(ctx, container)
	if err != nil {
		_ = container.Close()
		return nil, nil, err
	}
	return app, container.Close, nil
}

func New(ctx context.Context, c *Container) (*App, error) {
	cfg := c.Config
	logger := c.Logger

	commitMode, err := ordering.ParseCommitMode(cfg.Ordering.CommitMode)
	if err != nil {
		return nil, err
	}

	jwtSvc := jwt.NewHMACServiceWithClock(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
		c.Clock,
	)

	authUC := usecase.NewAuthUsecase(c.Users, jwtSvc)
	applicationUC := usecase.NewApplicationUsecase(c.Applications, logger)
	reminderUC := usecase.NewReminderUsecase(c.Applications, c.Clock, cfg.Reminder.DaysAhead, logger)
	skillUC := usecase.NewSkillUsecase(c.Skills, c.Cache, logger)
	skillUpdateUC := usecase.NewSkillUpdateUsecase(c.Skills, c.Cache, c.Clock, logger)
	priorityUC := usecase.NewSkillPriorityUsecase(c.Skills, c.Cache, logger)
	badgeUC := usecase.NewBadgeUsecase(c.Badges, c.Cache, c.Clock, logger)

	hub := ws.NewHub(logger)
	go hub.Run(ctx)
	if rc := c.Cache.Client(); rc != nil {
		go func() {
			if err := ws.Relay(ctx, logger, rc, pubsub.DefaultChannel, hub); err != nil {
				logger.Errorf("[PubSub] relay stopped: %v", err)
			}
		}()
	}

	settings := ws.BoardSettings{Timeout: cfg.Ordering.SyncTimeout, Mode: commitMode}
	boards := map[string]ws.BoardFactory{
		ws.ListBadges:     ws.NewBoardFactory(badgeUC.BoardSource, badgeUC.BoardUpdater, usecase.BadgeOrderMessages, settings, dto.BadgeItems),
		ws.ListPriorities: ws.NewBoardFactory(priorityUC.BoardSource, priorityUC.BoardUpdater, usecase.PriorityOrderMessages, settings, dto.PriorityItems),
	}
	wsHandler := ws.NewHandler(ctx, hub, jwtSvc, boards, logger)

	checks := map[string]handler.Pinger{"database": c.DB}
	if c.Cache.Client() != nil {
		checks["redis"] = c.Cache
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(checks),
		v1.Handlers{
			AuthMiddleware: middleware.NewAuthMiddleware(jwtSvc),
			Auth:           handler.NewAuthHandler(authUC),
			Applications:   handler.NewApplicationHandler(applicationUC, reminderUC),
			Skills:         handler.NewSkillHandler(skillUC, skillUpdateUC, priorityUC),
			Badges:         handler.NewBadgeHandler(badgeUC),
		},
		wsHandler.HandleDashboardWS,
	)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, logger)
	registry.Register(f)

	return &App{Fiber: f, Hub: hub}, nil
}

func registerGlobalMiddleware(app *fiber.App, logger logrus.FieldLogger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
