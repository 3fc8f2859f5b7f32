package middleware

import (
	"strings"

	"galhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const (
	UserKeyFiber  string = "User"  // Fiber context key for the authenticated user
	AdminKeyFiber string = "Admin" // Fiber context key for the authenticated admin
)

// RequireAuth validates a user bearer token and loads the owning user row.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireAuth")

		token, ok := bearerToken(c)
		if !ok {
			log.Info("missing or malformed authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		claims, err := m.tokenService.ValidateUserToken(token)
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		user, err := m.userRepo.GetByUID(c.UserContext(), claims.UID)
		if err != nil {
			log.Info("user not found", "uid", claims.UID, "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		c.Locals(UserKeyFiber, user)

		return c.Next()
	}
}

// RequireAdmin validates an admin bearer token and loads the admin row.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireAdmin")

		token, ok := bearerToken(c)
		if !ok {
			log.Info("missing or malformed authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		claims, err := m.tokenService.ValidateAdminToken(token)
		if err != nil {
			log.Info("admin token validation failed", "error", err.Error())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		admin, err := m.adminRepo.GetByUsername(c.UserContext(), claims.Username)
		if err != nil {
			log.Info("admin not found", "username", claims.Username, "error", err.Error())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		c.Locals(AdminKeyFiber, admin)

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return "", false
	}

	if tokenParts[1] == "" {
		return "", false
	}

	return tokenParts[1], true
}

// GetUser extracts user from Fiber context
func GetUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(UserKeyFiber).(*models.User)
	if !ok {
		return nil
	}
	return user
}

// GetAdmin extracts admin from Fiber context
func GetAdmin(c *fiber.Ctx) *models.Admin {
	admin, ok := c.Locals(AdminKeyFiber).(*models.Admin)
	if !ok {
		return nil
	}
	return admin
}
