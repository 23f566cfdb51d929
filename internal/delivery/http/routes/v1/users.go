package v1

import (
	"career-dash/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterUsers(r fiber.Router, authHandler *handler.AuthHandler) {
	if r == nil {
		return
	}
	if authHandler == nil {
		return
	}

	authHandler.RegisterProtectedRoutes(r)
}
