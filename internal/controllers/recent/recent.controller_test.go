package recentController_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"galhub/config"
	recentController "galhub/internal/controllers/recent"
	"galhub/internal/database"
	"galhub/internal/models"
	"galhub/internal/repositories"
	"galhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db         database.DB
	controller recentController.RecentControllerInterface
	user       *models.User
	games      []*models.Game
}

func setupEnv(t *testing.T, gameCount int) *testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.RecentGame{},
	))

	db := database.DB{SQL: gormDB}
	repos := repositories.New(db)
	svc := services.Service{Transaction: services.NewTransactionService(db)}
	controller := recentController.New(repos, svc, config.Config{}, db)

	user := &models.User{Username: "player1", Password: "hashed"}
	require.NoError(t, gormDB.Create(user).Error)

	games := make([]*models.Game, 0, gameCount)
	for i := range gameCount {
		game := &models.Game{
			Name:     fmt.Sprintf("Game %d", i+1),
			GameLink: fmt.Sprintf("https://games.example.com/game-%d", i+1),
		}
		require.NoError(t, gormDB.Create(game).Error)
		games = append(games, game)
	}

	return &testEnv{db: db, controller: controller, user: user, games: games}
}

func TestRecordPlay_Validation(t *testing.T) {
	env := setupEnv(t, 1)
	ctx := context.Background()

	// Seed one successful play so each failing case can prove it left the
	// existing history untouched.
	seeded, err := env.controller.RecordPlay(ctx, env.user, env.games[0].ID)
	require.NoError(t, err)

	tests := []struct {
		name    string
		gameID  int
		wantErr error
	}{
		{name: "zero game id", gameID: 0, wantErr: recentController.ErrValidation},
		{name: "negative game id", gameID: -3, wantErr: recentController.ErrValidation},
		{name: "unknown game", gameID: 9999, wantErr: recentController.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.controller.RecordPlay(ctx, env.user, tt.gameID)
			assert.ErrorIs(t, err, tt.wantErr)

			rows := []*models.RecentGame{}
			require.NoError(t, env.db.SQL.
				Where("uid = ?", env.user.UID).
				Find(&rows).Error)
			require.Len(t, rows, 1, "a rejected play must not touch the history")
			assert.Equal(t, seeded.ID, rows[0].ID)
			assert.Equal(t, seeded.GameID, rows[0].GameID)
			assert.WithinDuration(t, seeded.PlayedAt, rows[0].PlayedAt, time.Second)
		})
	}
}

func TestRecordPlay_FirstPlayCreatesEntry(t *testing.T) {
	env := setupEnv(t, 1)
	ctx := context.Background()

	recorded, err := env.controller.RecordPlay(ctx, env.user, env.games[0].ID)
	require.NoError(t, err)
	assert.Equal(t, env.games[0].ID, recorded.GameID)
	assert.Equal(t, env.user.UID, recorded.UID)
	assert.False(t, recorded.PlayedAt.IsZero())

	entries, err := env.controller.GetRecentGames(ctx, env.user)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, env.games[0].ID, entries[0].Game.ID)
}

func TestRecordPlay_ReplayIsIdempotent(t *testing.T) {
	env := setupEnv(t, 2)
	ctx := context.Background()

	first, err := env.controller.RecordPlay(ctx, env.user, env.games[0].ID)
	require.NoError(t, err)

	_, err = env.controller.RecordPlay(ctx, env.user, env.games[1].ID)
	require.NoError(t, err)

	replayed, err := env.controller.RecordPlay(ctx, env.user, env.games[0].ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, replayed.ID, "replay must reuse the existing row")

	var count int64
	require.NoError(t, env.db.SQL.Model(&models.RecentGame{}).
		Where("uid = ?", env.user.UID).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// The replayed game is now the most recent.
	entries, err := env.controller.GetRecentGames(ctx, env.user)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, env.games[0].ID, entries[0].Game.ID)
	assert.Equal(t, env.games[1].ID, entries[1].Game.ID)
}

func TestRecordPlay_EvictsOldestAtCap(t *testing.T) {
	env := setupEnv(t, models.MaxRecentGames+1)
	ctx := context.Background()

	for i := range models.MaxRecentGames {
		_, err := env.controller.RecordPlay(ctx, env.user, env.games[i].ID)
		require.NoError(t, err)
		// Distinct played_at values so the eviction order is unambiguous.
		require.NoError(t, env.db.SQL.Model(&models.RecentGame{}).
			Where("uid = ? AND game_id = ?", env.user.UID, env.games[i].ID).
			Update("played_at", time.Date(2026, 1, 10, 12, i, 0, 0, time.UTC)).Error)
	}

	_, err := env.controller.RecordPlay(ctx, env.user, env.games[models.MaxRecentGames].ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, env.db.SQL.Model(&models.RecentGame{}).
		Where("uid = ?", env.user.UID).
		Count(&count).Error)
	assert.Equal(t, int64(models.MaxRecentGames), count, "history must never exceed the cap")

	var evicted int64
	require.NoError(t, env.db.SQL.Model(&models.RecentGame{}).
		Where("uid = ? AND game_id = ?", env.user.UID, env.games[0].ID).
		Count(&evicted).Error)
	assert.Zero(t, evicted, "the least-recently-played entry is the victim")

	entries, err := env.controller.GetRecentGames(ctx, env.user)
	require.NoError(t, err)
	require.Len(t, entries, models.MaxRecentGames)
	assert.Equal(t, env.games[models.MaxRecentGames].ID, entries[0].Game.ID)
}

func TestGetRecentGames_EmptyHistory(t *testing.T) {
	env := setupEnv(t, 0)

	entries, err := env.controller.GetRecentGames(context.Background(), env.user)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGetRecentGames_IncludesPlayedAt(t *testing.T) {
	env := setupEnv(t, 1)
	ctx := context.Background()

	recorded, err := env.controller.RecordPlay(ctx, env.user, env.games[0].ID)
	require.NoError(t, err)

	entries, err := env.controller.GetRecentGames(ctx, env.user)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.WithinDuration(t, recorded.PlayedAt, entries[0].PlayedAt, time.Second)
	assert.Equal(t, env.games[0].Name, entries[0].Game.Name)
}
