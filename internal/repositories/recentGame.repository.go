package repositories

import (
	"context"
	"time"

	"galhub/internal/database"
	. "galhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	RECENT_GAMES_CACHE_PREFIX = "recent_games"
	RECENT_GAMES_CACHE_EXPIRY = 24 * time.Hour

	// Advisory lock class for per-user recent-games mutation. The second lock
	// key is the uid, so concurrent first plays for the same user serialize
	// while different users never contend.
	recentGamesLockClass = 4201
)

type RecentGameRepository interface {
	FindByUserAndGame(ctx context.Context, tx *gorm.DB, uid, gameID int) (*RecentGame, error)
	Create(ctx context.Context, tx *gorm.DB, recentGame *RecentGame) error
	TouchPlayedAt(ctx context.Context, tx *gorm.DB, id int, playedAt time.Time) error
	CountByUser(ctx context.Context, tx *gorm.DB, uid int) (int64, error)
	DeleteOldest(ctx context.Context, tx *gorm.DB, uid int) error
	LockUserHistory(ctx context.Context, tx *gorm.DB, uid int) error
	GetRecentByUser(ctx context.Context, uid, limit int) ([]*RecentGame, error)
	UsersOverCapacity(ctx context.Context, tx *gorm.DB, capacity int) ([]int, error)
	TrimUser(ctx context.Context, tx *gorm.DB, uid, capacity int) (int64, error)
	ClearUserRecentCache(ctx context.Context, uid int)
}

type recentGameRepository struct {
	db  database.DB
	log logger.Logger
}

func NewRecentGameRepository(db database.DB) RecentGameRepository {
	return &recentGameRepository{
		db:  db,
		log: logger.New("recentGameRepository"),
	}
}

func (r *recentGameRepository) FindByUserAndGame(
	ctx context.Context,
	tx *gorm.DB,
	uid, gameID int,
) (*RecentGame, error) {
	var recentGame RecentGame
	err := tx.WithContext(ctx).
		Where("uid = ? AND game_id = ?", uid, gameID).
		First(&recentGame).Error
	if err != nil {
		return nil, err
	}

	return &recentGame, nil
}

func (r *recentGameRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	recentGame *RecentGame,
) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(recentGame).Error; err != nil {
		return log.Err(
			"failed to create recent game",
			err,
			"uid", recentGame.UID,
			"gameID", recentGame.GameID,
		)
	}

	r.ClearUserRecentCache(ctx, recentGame.UID)

	return nil
}

func (r *recentGameRepository) TouchPlayedAt(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	playedAt time.Time,
) error {
	log := r.log.Function("TouchPlayedAt")

	result := tx.WithContext(ctx).
		Model(&RecentGame{}).
		Where("id = ?", id).
		Update("played_at", playedAt)
	if result.Error != nil {
		return log.Err("failed to touch recent game", result.Error, "id", id)
	}

	if result.RowsAffected == 0 {
		return log.ErrMsg("recent game row vanished during touch")
	}

	return nil
}

func (r *recentGameRepository) CountByUser(
	ctx context.Context,
	tx *gorm.DB,
	uid int,
) (int64, error) {
	log := r.log.Function("CountByUser")

	var count int64
	err := tx.WithContext(ctx).
		Model(&RecentGame{}).
		Where("uid = ?", uid).
		Count(&count).Error
	if err != nil {
		return 0, log.Err("failed to count recent games", err, "uid", uid)
	}

	return count, nil
}

// DeleteOldest removes the user's least-recently-played row. Ties on played_at
// break on the lowest id so the victim is deterministic.
func (r *recentGameRepository) DeleteOldest(
	ctx context.Context,
	tx *gorm.DB,
	uid int,
) error {
	log := r.log.Function("DeleteOldest")

	var oldest RecentGame
	err := tx.WithContext(ctx).
		Where("uid = ?", uid).
		Order("played_at ASC, id ASC").
		First(&oldest).Error
	if err != nil {
		return log.Err("failed to find oldest recent game", err, "uid", uid)
	}

	if err := tx.WithContext(ctx).Delete(&oldest).Error; err != nil {
		return log.Err("failed to delete oldest recent game", err, "uid", uid, "id", oldest.ID)
	}

	return nil
}

// LockUserHistory takes a transaction-scoped advisory lock on the user's
// history so the count-then-evict sequence cannot interleave with a concurrent
// insert for the same user. SQLite serializes writers on its own, so the lock
// is a Postgres-only statement.
func (r *recentGameRepository) LockUserHistory(
	ctx context.Context,
	tx *gorm.DB,
	uid int,
) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}

	return tx.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(?, ?)", recentGamesLockClass, uid).Error
}

func (r *recentGameRepository) GetRecentByUser(
	ctx context.Context,
	uid, limit int,
) ([]*RecentGame, error) {
	log := r.log.Function("GetRecentByUser")

	if limit <= 0 || limit > MaxRecentGames {
		limit = MaxRecentGames
	}

	var cached []*RecentGame
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKeyForUser(uid)).
		WithContext(ctx).
		WithHash(RECENT_GAMES_CACHE_PREFIX).
		Get(&cached)
	if err != nil {
		log.Warn("failed to get recent games from cache", "uid", uid, "error", err)
	}

	if found {
		if len(cached) > limit {
			cached = cached[:limit]
		}
		return cached, nil
	}

	// Ledger rows survive a game's soft delete, but a soft-deleted game must
	// not surface in the listing, so join the live catalog instead of relying
	// on the preload alone.
	recentGames := []*RecentGame{}
	err = r.db.SQLWithContext(ctx).
		Preload("Game").
		Joins("JOIN games ON games.id = user_recent_games.game_id AND games.deleted_at IS NULL").
		Where("user_recent_games.uid = ?", uid).
		Order("user_recent_games.played_at DESC, user_recent_games.id DESC").
		Limit(limit).
		Find(&recentGames).Error
	if err != nil {
		return nil, log.Err("failed to get recent games", err, "uid", uid)
	}

	err = database.NewCacheBuilder(r.db.Cache.User, cacheKeyForUser(uid)).
		WithContext(ctx).
		WithHash(RECENT_GAMES_CACHE_PREFIX).
		WithStruct(recentGames).
		WithTTL(RECENT_GAMES_CACHE_EXPIRY).
		Set()
	if err != nil {
		log.Warn("failed to set recent games in cache", "uid", uid, "error", err)
	}

	return recentGames, nil
}

// UsersOverCapacity lists uids holding more rows than the capacity allows.
// Rows can only exceed the cap when written outside the API path, so this
// backs the nightly trim job rather than the request flow.
func (r *recentGameRepository) UsersOverCapacity(
	ctx context.Context,
	tx *gorm.DB,
	capacity int,
) ([]int, error) {
	log := r.log.Function("UsersOverCapacity")

	var uids []int
	err := tx.WithContext(ctx).
		Model(&RecentGame{}).
		Select("uid").
		Group("uid").
		Having("COUNT(*) > ?", capacity).
		Find(&uids).Error
	if err != nil {
		return nil, log.Err("failed to find users over capacity", err)
	}

	return uids, nil
}

func (r *recentGameRepository) TrimUser(
	ctx context.Context,
	tx *gorm.DB,
	uid, capacity int,
) (int64, error) {
	log := r.log.Function("TrimUser")

	count, err := r.CountByUser(ctx, tx, uid)
	if err != nil {
		return 0, err
	}

	excess := count - int64(capacity)
	if excess <= 0 {
		return 0, nil
	}

	var victims []RecentGame
	err = tx.WithContext(ctx).
		Where("uid = ?", uid).
		Order("played_at ASC, id ASC").
		Limit(int(excess)).
		Find(&victims).Error
	if err != nil {
		return 0, log.Err("failed to find trim victims", err, "uid", uid)
	}

	ids := make([]int, 0, len(victims))
	for _, victim := range victims {
		ids = append(ids, victim.ID)
	}

	result := tx.WithContext(ctx).Where("id IN ?", ids).Delete(&RecentGame{})
	if result.Error != nil {
		return 0, log.Err("failed to trim recent games", result.Error, "uid", uid)
	}

	r.ClearUserRecentCache(ctx, uid)

	return result.RowsAffected, nil
}

func (r *recentGameRepository) ClearUserRecentCache(ctx context.Context, uid int) {
	log := r.log.Function("ClearUserRecentCache")

	err := database.NewCacheBuilder(r.db.Cache.User, cacheKeyForUser(uid)).
		WithContext(ctx).
		WithHash(RECENT_GAMES_CACHE_PREFIX).
		Delete()
	if err != nil {
		log.Warn("failed to clear recent games cache", "uid", uid, "error", err)
	}
}
