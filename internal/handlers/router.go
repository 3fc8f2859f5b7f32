package handlers

import (
	"galhub/internal/app"
	"galhub/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api", app.Middleware.TraceID())

	HealthHandler(api, app.Config)
	NewAuthHandler(*app, api).Register()
	NewCaptchaHandler(*app, api).Register()
	NewGameHandler(*app, api).Register()
	NewUserHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()
	NewLogsHandler(*app, api).Register()

	return nil
}
