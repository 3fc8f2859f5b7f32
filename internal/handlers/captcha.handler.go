package handlers

import (
	"galhub/internal/app"
	"galhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type CaptchaHandler struct {
	Handler
	captchaService *services.CaptchaService
}

func NewCaptchaHandler(app app.App, router fiber.Router) *CaptchaHandler {
	log := logger.New("handlers").File("captcha_handler")
	return &CaptchaHandler{
		captchaService: app.Services.Captcha,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *CaptchaHandler) Register() {
	h.router.Get("/captcha", h.getCaptcha)
}

func (h *CaptchaHandler) getCaptcha(c *fiber.Ctx) error {
	challenge, err := h.captchaService.Generate(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate captcha",
		})
	}

	return c.JSON(challenge)
}
