package recentController

import (
	"context"
	"errors"
	"time"

	"galhub/config"
	"galhub/internal/database"
	. "galhub/internal/models"
	"galhub/internal/repositories"
	"galhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
)

// RecentController owns the recently-played ledger: it records plays with
// upsert-on-replay semantics and keeps every user's history capped at
// MaxRecentGames by evicting the least-recently-played entry.
type RecentController struct {
	recentGameRepo     repositories.RecentGameRepository
	gameRepo           repositories.GameRepository
	transactionService *services.TransactionService
	db                 database.DB
	Config             config.Config
}

type RecentControllerInterface interface {
	RecordPlay(ctx context.Context, user *User, gameID int) (*RecentGame, error)
	GetRecentGames(ctx context.Context, user *User) ([]RecentGameEntry, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) RecentControllerInterface {
	return &RecentController{
		recentGameRepo:     repos.RecentGame,
		gameRepo:           repos.Game,
		transactionService: services.Transaction,
		db:                 db,
		Config:             config,
	}
}

// RecordPlay upserts the (user, game) pair and enforces the history cap. The
// lookup, the insert-or-touch, and the count-then-evict all run inside one
// transaction so the cap holds after every commit, including under concurrent
// first plays for the same user.
func (c *RecentController) RecordPlay(
	ctx context.Context,
	user *User,
	gameID int,
) (*RecentGame, error) {
	log := logger.New("recentController").TraceFromContext(ctx).Function("RecordPlay")

	if gameID <= 0 {
		return nil, log.ErrorWithType(ErrValidation, "gameId must be a positive integer")
	}

	if _, err := c.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "game not found", "gameID", gameID)
		}
		return nil, log.Err("failed to look up game", err, "gameID", gameID)
	}

	now := time.Now().UTC()
	var recorded *RecentGame

	err := c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := c.recentGameRepo.LockUserHistory(ctx, tx, user.UID); err != nil {
			return err
		}

		existing, err := c.recentGameRepo.FindByUserAndGame(ctx, tx, user.UID, gameID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if existing != nil {
			// Replay: refresh the timestamp, row count unchanged.
			if err := c.recentGameRepo.TouchPlayedAt(ctx, tx, existing.ID, now); err != nil {
				return err
			}
			existing.PlayedAt = now
			recorded = existing
			return nil
		}

		recentGame := &RecentGame{
			UID:      user.UID,
			GameID:   gameID,
			PlayedAt: now,
		}
		if err := c.recentGameRepo.Create(ctx, tx, recentGame); err != nil {
			return err
		}

		count, err := c.recentGameRepo.CountByUser(ctx, tx, user.UID)
		if err != nil {
			return err
		}

		// The fresh row is never the victim: it carries the newest played_at.
		if count > MaxRecentGames {
			if err := c.recentGameRepo.DeleteOldest(ctx, tx, user.UID); err != nil {
				return err
			}
		}

		recorded = recentGame
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.recentGameRepo.ClearUserRecentCache(ctx, user.UID)

	return recorded, nil
}

func (c *RecentController) GetRecentGames(
	ctx context.Context,
	user *User,
) ([]RecentGameEntry, error) {
	recentGames, err := c.recentGameRepo.GetRecentByUser(ctx, user.UID, MaxRecentGames)
	if err != nil {
		return nil, err
	}

	entries := make([]RecentGameEntry, 0, len(recentGames))
	for _, recentGame := range recentGames {
		entries = append(entries, recentGame.Entry())
	}

	return entries, nil
}
