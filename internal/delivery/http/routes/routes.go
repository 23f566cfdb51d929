package routes

import (
	"career-dash/internal/delivery/http/handler"
	v1 "career-dash/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	v1     v1.Handlers
	board  fiber.Handler
}

// NewRegistry collects the route groups. board serves the websocket channel
// and may be nil.
func NewRegistry(health *handler.HealthHandler, v1Handlers v1.Handlers, board fiber.Handler) *Registry {
	return &Registry{health: health, v1: v1Handlers, board: board}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.v1)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.board != nil {
		app.Get("/ws/board", r.board)
	}
}
