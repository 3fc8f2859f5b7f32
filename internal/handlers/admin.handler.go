package handlers

import (
	"errors"

	"galhub/internal/app"
	adminController "galhub/internal/controllers/admin"
	"galhub/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.Controllers.Admin,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAdmin())
	admin.Get("/verify", h.verify)
	admin.Get("/users", h.listUsers)
	admin.Get("/admins", h.listAdmins)
	admin.Post("/admins", h.createAdmin)
	admin.Delete("/admins/:id", h.deleteAdmin)
}

// verify confirms the bearer token still resolves to an admin account. The
// middleware already did the work, so reaching the handler is the answer.
func (h *AdminHandler) verify(c *fiber.Ctx) error {
	admin := middleware.GetAdmin(c)
	if admin == nil {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Admin access required",
		})
	}

	return c.JSON(fiber.Map{
		"valid":    true,
		"username": admin.Username,
	})
}

func (h *AdminHandler) listUsers(c *fiber.Ctx) error {
	users, err := h.adminController.ListUsers(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

func (h *AdminHandler) listAdmins(c *fiber.Ctx) error {
	admins, err := h.adminController.ListAdmins(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list admins",
		})
	}

	return c.JSON(fiber.Map{
		"admins": admins,
	})
}

func (h *AdminHandler) createAdmin(c *fiber.Ctx) error {
	var req adminController.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	admin, err := h.adminController.CreateAdmin(c.UserContext(), &req)
	if err != nil {
		switch {
		case errors.Is(err, adminController.ErrValidation),
			errors.Is(err, adminController.ErrUsernameTaken):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create admin",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(admin)
}

func (h *AdminHandler) deleteAdmin(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid admin id",
		})
	}

	if err := h.adminController.DeleteAdmin(c.UserContext(), id); err != nil {
		switch {
		case errors.Is(err, adminController.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, adminController.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Admin not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to delete admin",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Admin deleted successfully",
	})
}
