package seeder

import (
	"context"

	"career-dash/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
