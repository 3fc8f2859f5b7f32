package handlers

import (
	"errors"

	"galhub/internal/app"
	logsController "galhub/internal/controllers/logs"
	"galhub/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type LogsHandler struct {
	Handler
	logsController logsController.LogsControllerInterface
}

func NewLogsHandler(app app.App, router fiber.Router) *LogsHandler {
	log := logger.New("handlers").File("logs_handler")
	return &LogsHandler{
		logsController: app.Controllers.Logs,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *LogsHandler) Register() {
	h.router.Post("/logs", h.middleware.RequireAuth(), h.processBatch)
}

func (h *LogsHandler) processBatch(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req logsController.LogBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.logsController.ProcessLogBatch(c.UserContext(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, logsController.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process log batch",
			})
		}
	}

	return c.JSON(response)
}
