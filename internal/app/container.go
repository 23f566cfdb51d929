package app

import (
	"context"
	"time"

	"career-dash/internal/config"
	"career-dash/internal/database"
	dbpostgres "career-dash/internal/database/postgres"
	"career-dash/internal/infrastructure/cache"
	"career-dash/internal/infrastructure/persistence/postgres"
	"career-dash/internal/infrastructure/pubsub"
	"career-dash/internal/repository"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

// Container owns the long-lived dependencies shared by the server and the
// reminder job.
type Container struct {
	Config config.Config
	Logger logrus.FieldLogger
	Clock  clockwork.Clock

	DB        database.DB
	Cache     *cache.Redis
	Publisher *pubsub.Publisher

	Users        *postgres.UserRepository
	Applications repository.ApplicationRepository
	Skills       repository.SkillRepository
	Badges       repository.BadgeRepository
}

func NewContainer(ctx context.Context, cfg config.Config, logger logrus.FieldLogger) (*Container, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, err
	}

	users, err := postgres.NewUserRepository(connectCtx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	rc := cache.NewRedis(ctx, cfg.Redis, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Clock:        clockwork.NewRealClock(),
		DB:           db,
		Cache:        rc,
		Publisher:    pubsub.NewPublisher(rc.Client(), pubsub.DefaultChannel),
		Users:        users,
		Applications: repository.NewPostgresApplicationRepository(db),
		Skills:       repository.NewPostgresSkillRepository(db),
		Badges:       repository.NewPostgresBadgeRepository(db),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Users != nil {
		_ = c.Users.Close()
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
