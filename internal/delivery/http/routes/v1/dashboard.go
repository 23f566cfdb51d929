package v1

import (
	"career-dash/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterDashboard(r fiber.Router, applications *handler.ApplicationHandler, skills *handler.SkillHandler, badges *handler.BadgeHandler) {
	if r == nil {
		return
	}

	if applications != nil {
		applications.RegisterRoutes(r)
	}
	if skills != nil {
		skills.RegisterRoutes(r)
	}
	if badges != nil {
		badges.RegisterRoutes(r)
	}
}
