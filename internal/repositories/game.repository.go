package repositories

import (
	"context"

	"galhub/internal/database"
	. "galhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

type GameListParams struct {
	Page   int
	Limit  int
	Search string
}

type GameRepository interface {
	GetByID(ctx context.Context, id int) (*Game, error)
	List(ctx context.Context, params GameListParams) ([]*Game, int64, error)
	Create(ctx context.Context, game *Game) error
	Update(ctx context.Context, game *Game) error
	Delete(ctx context.Context, id int) (int64, error)
}

type gameRepository struct {
	db  database.DB
	log logger.Logger
}

func NewGameRepository(db database.DB) GameRepository {
	return &gameRepository{
		db:  db,
		log: logger.New("gameRepository"),
	}
}

func (r *gameRepository) GetByID(ctx context.Context, id int) (*Game, error) {
	var game Game
	if err := r.db.SQLWithContext(ctx).First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &game, nil
}

func (r *gameRepository) List(
	ctx context.Context,
	params GameListParams,
) ([]*Game, int64, error) {
	log := r.log.Function("List")

	query := r.db.SQLWithContext(ctx).Model(&Game{})
	if params.Search != "" {
		query = query.Where("name LIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, log.Err("failed to count games", err, "search", params.Search)
	}

	offset := (params.Page - 1) * params.Limit

	games := []*Game{}
	err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(offset).
		Find(&games).Error
	if err != nil {
		return nil, 0, log.Err("failed to list games", err, "search", params.Search)
	}

	return games, total, nil
}

func (r *gameRepository) Create(ctx context.Context, game *Game) error {
	log := r.log.Function("Create")

	if err := r.db.SQLWithContext(ctx).Create(game).Error; err != nil {
		return log.Err("failed to create game", err, "name", game.Name)
	}

	return nil
}

func (r *gameRepository) Update(ctx context.Context, game *Game) error {
	log := r.log.Function("Update")

	if err := r.db.SQLWithContext(ctx).Save(game).Error; err != nil {
		return log.Err("failed to update game", err, "id", game.ID)
	}

	return nil
}

// Delete soft-deletes the game. Recent-play rows referencing it stay in place
// until the row is hard-deleted, but a soft-deleted game no longer resolves
// through GetByID, so new plays against it are rejected upstream.
func (r *gameRepository) Delete(ctx context.Context, id int) (int64, error) {
	log := r.log.Function("Delete")

	result := r.db.SQLWithContext(ctx).Delete(&Game{}, "id = ?", id)
	if result.Error != nil {
		return 0, log.Err("failed to delete game", result.Error, "id", id)
	}

	return result.RowsAffected, nil
}
