package handlers

import (
	"errors"
	"strconv"

	"galhub/internal/app"
	gameController "galhub/internal/controllers/games"
	recentController "galhub/internal/controllers/recent"
	"galhub/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type GameHandler struct {
	Handler
	gameController   gameController.GameControllerInterface
	recentController recentController.RecentControllerInterface
}

func NewGameHandler(app app.App, router fiber.Router) *GameHandler {
	log := logger.New("handlers").File("game_handler")
	return &GameHandler{
		gameController:   app.Controllers.Game,
		recentController: app.Controllers.Recent,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *GameHandler) Register() {
	games := h.router.Group("/games")

	// The recent routes are registered before "/:id" so fiber matches them
	// ahead of the id wildcard.
	games.Post("/recent/:gameId", h.middleware.RequireAuth(), h.recordPlay)
	games.Get("/recent/user", h.middleware.RequireAuth(), h.getRecentGames)

	games.Get("", h.listGames)
	games.Get("/:id", h.getGame)
	games.Post("", h.middleware.RequireAdmin(), h.createGame)
	games.Put("/:id", h.middleware.RequireAdmin(), h.updateGame)
	games.Delete("/:id", h.middleware.RequireAdmin(), h.deleteGame)
}

func (h *GameHandler) listGames(c *fiber.Ctx) error {
	request := gameController.ListGamesRequest{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", gameController.DefaultPageSize),
		Search: c.Query("search"),
	}

	response, err := h.gameController.ListGames(c.UserContext(), request)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list games",
		})
	}

	return c.JSON(response)
}

func (h *GameHandler) getGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game id",
		})
	}

	game, err := h.gameController.GetGame(c.UserContext(), id)
	if err != nil {
		return h.gameError(c, err, "Failed to get game")
	}

	return c.JSON(game)
}

func (h *GameHandler) createGame(c *fiber.Ctx) error {
	var req gameController.GameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.gameController.CreateGame(c.UserContext(), &req)
	if err != nil {
		return h.gameError(c, err, "Failed to create game")
	}

	return c.Status(fiber.StatusCreated).JSON(game)
}

func (h *GameHandler) updateGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game id",
		})
	}

	var req gameController.GameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	game, err := h.gameController.UpdateGame(c.UserContext(), id, &req)
	if err != nil {
		return h.gameError(c, err, "Failed to update game")
	}

	return c.JSON(game)
}

func (h *GameHandler) deleteGame(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game id",
		})
	}

	if err := h.gameController.DeleteGame(c.UserContext(), id); err != nil {
		return h.gameError(c, err, "Failed to delete game")
	}

	return c.JSON(fiber.Map{
		"message": "Game deleted successfully",
	})
}

func (h *GameHandler) recordPlay(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	gameID, err := strconv.Atoi(c.Params("gameId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid game id",
		})
	}

	if _, err := h.recentController.RecordPlay(c.UserContext(), user, gameID); err != nil {
		switch {
		case errors.Is(err, recentController.ErrValidation):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, recentController.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Game not found",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to record play",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Play recorded",
	})
}

func (h *GameHandler) getRecentGames(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	entries, err := h.recentController.GetRecentGames(c.UserContext(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get recent games",
		})
	}

	return c.JSON(fiber.Map{
		"games": entries,
	})
}

func (h *GameHandler) gameError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, gameController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, gameController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Game not found",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fallback,
		})
	}
}
