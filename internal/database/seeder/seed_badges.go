package seeder

import (
	"context"

	"career-dash/internal/database"
)

type BadgesSeeder struct{}

func (BadgesSeeder) Name() string { return "badges" }

func (BadgesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "badges", "id", "name", "description", "icon_url", "created_at"); err != nil {
		return err
	}

	items := []struct {
		Name        string
		Description string
		IconURL     string
	}{
		{Name: "Go Beginner", Description: "Completed an introductory Go course", IconURL: "/static/badges/go-beginner.svg"},
		{Name: "Go Intermediate", Description: "Built and shipped a Go service", IconURL: "/static/badges/go-intermediate.svg"},
		{Name: "Go Advanced", Description: "Contributed to a production Go codebase", IconURL: "/static/badges/go-advanced.svg"},
		{Name: "SQL Beginner", Description: "Wrote your first joins and aggregates", IconURL: "/static/badges/sql-beginner.svg"},
		{Name: "SQL Intermediate", Description: "Designed a normalized schema", IconURL: "/static/badges/sql-intermediate.svg"},
		{Name: "Interview Ready", Description: "Completed five mock interviews", IconURL: "/static/badges/interview-ready.svg"},
	}

	return database.WithTx(ctx, db, func(tx database.Tx) error {
		for _, it := range items {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO badges (id, name, description, icon_url) VALUES (gen_random_uuid(), $1, $2, $3) ON CONFLICT (name) DO NOTHING`,
				it.Name,
				it.Description,
				it.IconURL,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
