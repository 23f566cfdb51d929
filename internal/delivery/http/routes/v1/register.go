package v1

import (
	"career-dash/internal/delivery/http/handler"
	"career-dash/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	AuthMiddleware *middleware.AuthMiddleware

	Auth         *handler.AuthHandler
	Applications *handler.ApplicationHandler
	Skills       *handler.SkillHandler
	Badges       *handler.BadgeHandler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}

	protected := r.Group("", h.AuthMiddleware.Middleware())

	RegisterUsers(protected, h.Auth)
	RegisterDashboard(protected, h.Applications, h.Skills, h.Badges)
}
