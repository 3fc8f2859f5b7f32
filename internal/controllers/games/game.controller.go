package gameController

import (
	"context"
	"errors"
	"strings"

	"galhub/config"
	"galhub/internal/database"
	. "galhub/internal/models"
	"galhub/internal/repositories"
	"galhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	MaxGameNameLength = 100
	MaxTagLength      = 50
	MaxLinkLength     = 255

	DefaultPageSize = 10
	MaxPageSize     = 100
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

type GameController struct {
	gameRepo           repositories.GameRepository
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
}

type GameRequest struct {
	Name                string           `json:"name"`
	BriefDescription    string           `json:"briefDescription"`
	DetailedDescription string           `json:"detailedDescription"`
	GameLink            string           `json:"gameLink"`
	CoverImageLink      string           `json:"coverImageLink"`
	Tag1                string           `json:"tag1"`
	Tag2                string           `json:"tag2"`
	Tag3                string           `json:"tag3"`
	Tag4                string           `json:"tag4"`
	Rating              *decimal.Decimal `json:"rating"`
}

type ListGamesRequest struct {
	Page   int
	Limit  int
	Search string
}

type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type ListGamesResponse struct {
	Games      []*Game    `json:"games"`
	Pagination Pagination `json:"pagination"`
}

type GameControllerInterface interface {
	ListGames(ctx context.Context, request ListGamesRequest) (*ListGamesResponse, error)
	GetGame(ctx context.Context, id int) (*Game, error)
	CreateGame(ctx context.Context, request *GameRequest) (*Game, error)
	UpdateGame(ctx context.Context, id int, request *GameRequest) (*Game, error)
	DeleteGame(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) GameControllerInterface {
	return &GameController{
		gameRepo:           repos.Game,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
	}
}

func (c *GameController) ListGames(
	ctx context.Context,
	request ListGamesRequest,
) (*ListGamesResponse, error) {
	log := logger.New("gameController").TraceFromContext(ctx).Function("ListGames")

	if request.Page <= 0 {
		request.Page = 1
	}
	if request.Limit <= 0 {
		request.Limit = DefaultPageSize
	}
	if request.Limit > MaxPageSize {
		return nil, log.ErrorWithType(
			ErrValidation,
			"limit exceeds maximum",
			"limit", request.Limit,
			"max", MaxPageSize,
		)
	}

	games, total, err := c.gameRepo.List(ctx, repositories.GameListParams{
		Page:   request.Page,
		Limit:  request.Limit,
		Search: strings.TrimSpace(request.Search),
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(request.Limit) - 1) / int64(request.Limit))

	return &ListGamesResponse{
		Games: games,
		Pagination: Pagination{
			Page:       request.Page,
			Limit:      request.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

func (c *GameController) GetGame(ctx context.Context, id int) (*Game, error) {
	log := logger.New("gameController").TraceFromContext(ctx).Function("GetGame")

	if id <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "game id must be a positive integer")
	}

	game, err := c.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not found", "gameID", id)
		}
		return nil, log.Err("failed to get game", err, "gameID", id)
	}

	return game, nil
}

func (c *GameController) CreateGame(
	ctx context.Context,
	request *GameRequest,
) (*Game, error) {
	log := logger.New("gameController").TraceFromContext(ctx).Function("CreateGame")

	if err := validateGameRequest(request, log); err != nil {
		return nil, err
	}

	game := &Game{}
	applyGameRequest(game, request)

	if err := c.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (c *GameController) UpdateGame(
	ctx context.Context,
	id int,
	request *GameRequest,
) (*Game, error) {
	log := logger.New("gameController").TraceFromContext(ctx).Function("UpdateGame")

	if id <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "game id must be a positive integer")
	}

	if err := validateGameRequest(request, log); err != nil {
		return nil, err
	}

	game, err := c.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not found", "gameID", id)
		}
		return nil, log.Err("failed to get game", err, "gameID", id)
	}

	applyGameRequest(game, request)

	if err := c.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (c *GameController) DeleteGame(ctx context.Context, id int) error {
	log := logger.New("gameController").TraceFromContext(ctx).Function("DeleteGame")

	if id <= 0 {
		return log.ErrorWithType(ErrValidation, "game id must be a positive integer")
	}

	rowsAffected, err := c.gameRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return log.ErrorWithType(ErrNotFound, "game not found", "gameID", id)
	}

	return nil
}

func validateGameRequest(request *GameRequest, log logger.Logger) error {
	if strings.TrimSpace(request.Name) == "" {
		return log.ErrorWithType(ErrValidation, "game name is required")
	}

	if len(request.Name) > MaxGameNameLength {
		return log.ErrorWithType(
			ErrValidation,
			"game name exceeds maximum length",
			"length", len(request.Name),
			"max", MaxGameNameLength,
		)
	}

	for _, link := range []string{request.GameLink, request.CoverImageLink} {
		if len(link) > MaxLinkLength {
			return log.ErrorWithType(ErrValidation, "link exceeds maximum length")
		}
		if link != "" && !strings.HasPrefix(link, "http://") &&
			!strings.HasPrefix(link, "https://") {
			return log.ErrorWithType(ErrValidation, "link must be a valid URL", "link", link)
		}
	}

	for _, tag := range []string{request.Tag1, request.Tag2, request.Tag3, request.Tag4} {
		if len(tag) > MaxTagLength {
			return log.ErrorWithType(ErrValidation, "tag exceeds maximum length", "tag", tag)
		}
	}

	if request.Rating != nil {
		if request.Rating.IsNegative() || request.Rating.GreaterThan(decimal.NewFromInt(5)) {
			return log.ErrorWithType(
				ErrValidation,
				"rating must be between 0 and 5",
				"rating", request.Rating.String(),
			)
		}
	}

	return nil
}

func applyGameRequest(game *Game, request *GameRequest) {
	game.Name = strings.TrimSpace(request.Name)
	game.BriefDescription = request.BriefDescription
	game.DetailedDescription = request.DetailedDescription
	game.GameLink = request.GameLink
	game.CoverImageLink = request.CoverImageLink
	game.Tag1 = request.Tag1
	game.Tag2 = request.Tag2
	game.Tag3 = request.Tag3
	game.Tag4 = request.Tag4
	game.Rating = request.Rating
}
