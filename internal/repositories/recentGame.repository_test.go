package repositories_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"galhub/internal/database"
	"galhub/internal/models"
	"galhub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) database.DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = gormDB.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.RecentGame{},
	)
	require.NoError(t, err)

	return database.DB{SQL: gormDB}
}

func createTestUser(t *testing.T, db database.DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Password: "hashed"}
	require.NoError(t, db.SQL.Create(user).Error)
	return user
}

func createTestGames(t *testing.T, db database.DB, count int) []*models.Game {
	t.Helper()

	games := make([]*models.Game, 0, count)
	for i := range count {
		game := &models.Game{
			Name:     fmt.Sprintf("Game %d", i+1),
			GameLink: fmt.Sprintf("https://games.example.com/game-%d", i+1),
		}
		require.NoError(t, db.SQL.Create(game).Error)
		games = append(games, game)
	}
	return games
}

func recordTestPlay(
	t *testing.T,
	db database.DB,
	repo repositories.RecentGameRepository,
	uid, gameID int,
	playedAt time.Time,
) {
	t.Helper()

	ctx := context.Background()
	tx := db.SQL

	existing, err := repo.FindByUserAndGame(ctx, tx, uid, gameID)
	if err == nil {
		require.NoError(t, repo.TouchPlayedAt(ctx, tx, existing.ID, playedAt))
		return
	}
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(ctx, tx, &models.RecentGame{
		UID:      uid,
		GameID:   gameID,
		PlayedAt: playedAt,
	}))

	count, err := repo.CountByUser(ctx, tx, uid)
	require.NoError(t, err)
	if count > models.MaxRecentGames {
		require.NoError(t, repo.DeleteOldest(ctx, tx, uid))
	}
}

func TestRecentGameRepository_UpsertOnReplay(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, 1)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	recordTestPlay(t, db, repo, user.UID, games[0].ID, base)
	recordTestPlay(t, db, repo, user.UID, games[0].ID, base.Add(time.Hour))

	count, err := repo.CountByUser(ctx, db.SQL, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "replaying a game must not create a second row")

	entry, err := repo.FindByUserAndGame(ctx, db.SQL, user.UID, games[0].ID)
	require.NoError(t, err)
	assert.True(t, entry.PlayedAt.After(base), "replay must advance played_at")
}

func TestRecentGameRepository_CapEnforcement(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, models.MaxRecentGames+1)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i := range models.MaxRecentGames {
		recordTestPlay(t, db, repo, user.UID, games[i].ID, base.Add(time.Duration(i)*time.Minute))
	}

	count, err := repo.CountByUser(ctx, db.SQL, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(models.MaxRecentGames), count)

	// One more distinct game pushes the history over the cap and must evict
	// the least-recently-played entry.
	recordTestPlay(
		t, db, repo,
		user.UID,
		games[models.MaxRecentGames].ID,
		base.Add(time.Duration(models.MaxRecentGames)*time.Minute),
	)

	count, err = repo.CountByUser(ctx, db.SQL, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(models.MaxRecentGames), count)

	_, err = repo.FindByUserAndGame(ctx, db.SQL, user.UID, games[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "oldest entry must be evicted")

	newest, err := repo.FindByUserAndGame(ctx, db.SQL, user.UID, games[models.MaxRecentGames].ID)
	require.NoError(t, err)
	assert.Equal(t, games[models.MaxRecentGames].ID, newest.GameID)
}

func TestRecentGameRepository_ReplayAtCapDoesNotEvict(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, models.MaxRecentGames)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i := range models.MaxRecentGames {
		recordTestPlay(t, db, repo, user.UID, games[i].ID, base.Add(time.Duration(i)*time.Minute))
	}

	// Replaying the oldest entry at the cap touches it in place.
	recordTestPlay(t, db, repo, user.UID, games[0].ID, base.Add(24*time.Hour))

	count, err := repo.CountByUser(ctx, db.SQL, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(models.MaxRecentGames), count)

	for _, game := range games {
		_, err := repo.FindByUserAndGame(ctx, db.SQL, user.UID, game.ID)
		assert.NoError(t, err, "no entry should be evicted on replay")
	}
}

func TestRecentGameRepository_DeleteOldestTieBreak(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, 3)

	// All three entries share a played_at, so the lowest id must be the victim.
	playedAt := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for _, game := range games {
		require.NoError(t, repo.Create(ctx, db.SQL, &models.RecentGame{
			UID:      user.UID,
			GameID:   game.ID,
			PlayedAt: playedAt,
		}))
	}

	require.NoError(t, repo.DeleteOldest(ctx, db.SQL, user.UID))

	_, err := repo.FindByUserAndGame(ctx, db.SQL, user.UID, games[0].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	count, err := repo.CountByUser(ctx, db.SQL, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRecentGameRepository_GetRecentByUserOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, 3)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	recordTestPlay(t, db, repo, user.UID, games[0].ID, base)
	recordTestPlay(t, db, repo, user.UID, games[1].ID, base.Add(time.Minute))
	recordTestPlay(t, db, repo, user.UID, games[2].ID, base.Add(2*time.Minute))

	recent, err := repo.GetRecentByUser(ctx, user.UID, 0)
	require.NoError(t, err)
	require.Len(t, recent, 3)

	assert.Equal(t, games[2].ID, recent[0].GameID)
	assert.Equal(t, games[1].ID, recent[1].GameID)
	assert.Equal(t, games[0].ID, recent[2].GameID)
	assert.Equal(t, games[2].Name, recent[0].Game.Name, "game details must be preloaded")
}

func TestRecentGameRepository_GetRecentByUserEmptyHistory(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)

	user := createTestUser(t, db, "player1")

	recent, err := repo.GetRecentByUser(context.Background(), user.UID, 10)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestRecentGameRepository_GetRecentByUserSkipsDeletedGames(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, 2)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	recordTestPlay(t, db, repo, user.UID, games[0].ID, base)
	recordTestPlay(t, db, repo, user.UID, games[1].ID, base.Add(time.Minute))

	require.NoError(t, db.SQL.Delete(&models.Game{}, games[0].ID).Error)

	recent, err := repo.GetRecentByUser(ctx, user.UID, 0)
	require.NoError(t, err)
	require.Len(t, recent, 1, "a soft-deleted game must not surface in the listing")
	assert.Equal(t, games[1].ID, recent[0].GameID)
	assert.Equal(t, games[1].Name, recent[0].Game.Name)

	// The ledger row itself survives the soft delete.
	count, err := repo.CountByUser(ctx, db.SQL, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestRecentGameRepository_GetRecentByUserLimitClamp(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, 5)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i, game := range games {
		recordTestPlay(t, db, repo, user.UID, game.ID, base.Add(time.Duration(i)*time.Minute))
	}

	recent, err := repo.GetRecentByUser(context.Background(), user.UID, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	recent, err = repo.GetRecentByUser(context.Background(), user.UID, models.MaxRecentGames*10)
	require.NoError(t, err)
	assert.Len(t, recent, 5, "oversized limits clamp to the history cap")
}

func TestRecentGameRepository_HistoriesAreIndependent(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	games := createTestGames(t, db, models.MaxRecentGames+1)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i := range models.MaxRecentGames + 1 {
		recordTestPlay(t, db, repo, alice.UID, games[i].ID, base.Add(time.Duration(i)*time.Minute))
	}
	recordTestPlay(t, db, repo, bob.UID, games[0].ID, base)

	aliceCount, err := repo.CountByUser(ctx, db.SQL, alice.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(models.MaxRecentGames), aliceCount)

	bobCount, err := repo.CountByUser(ctx, db.SQL, bob.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), bobCount, "eviction for one user must not touch another")
}

func TestRecentGameRepository_TrimUser(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, models.MaxRecentGames+7)

	// Bypass the record path to simulate rows written outside the API.
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	for i, game := range games {
		require.NoError(t, db.SQL.Create(&models.RecentGame{
			UID:      user.UID,
			GameID:   game.ID,
			PlayedAt: base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	uids, err := repo.UsersOverCapacity(ctx, db.SQL, models.MaxRecentGames)
	require.NoError(t, err)
	assert.Equal(t, []int{user.UID}, uids)

	trimmed, err := repo.TrimUser(ctx, db.SQL, user.UID, models.MaxRecentGames)
	require.NoError(t, err)
	assert.Equal(t, int64(7), trimmed)

	count, err := repo.CountByUser(ctx, db.SQL, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(models.MaxRecentGames), count)

	// The oldest seven entries are the ones trimmed.
	for i := range 7 {
		_, err := repo.FindByUserAndGame(ctx, db.SQL, user.UID, games[i].ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	}

	uids, err = repo.UsersOverCapacity(ctx, db.SQL, models.MaxRecentGames)
	require.NoError(t, err)
	assert.Empty(t, uids)
}

func TestRecentGameRepository_TrimUserUnderCapacityIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRecentGameRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "player1")
	games := createTestGames(t, db, 2)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	recordTestPlay(t, db, repo, user.UID, games[0].ID, base)
	recordTestPlay(t, db, repo, user.UID, games[1].ID, base.Add(time.Minute))

	trimmed, err := repo.TrimUser(ctx, db.SQL, user.UID, models.MaxRecentGames)
	require.NoError(t, err)
	assert.Zero(t, trimmed)

	count, err := repo.CountByUser(ctx, db.SQL, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
