package gameController_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"galhub/config"
	gameController "galhub/internal/controllers/games"
	"galhub/internal/database"
	"galhub/internal/models"
	"galhub/internal/repositories"
	"galhub/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupController(t *testing.T) gameController.GameControllerInterface {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.AutoMigrate(&models.Game{}))

	db := database.DB{SQL: gormDB}
	repos := repositories.New(db)
	svc := services.Service{Transaction: services.NewTransactionService(db)}
	return gameController.New(repos, svc, config.Config{}, db)
}

func validGameRequest() *gameController.GameRequest {
	rating := decimal.NewFromFloat(4.5)
	return &gameController.GameRequest{
		Name:             "Starfall Drift",
		BriefDescription: "Arcade racer.",
		GameLink:         "https://games.example.com/starfall-drift",
		CoverImageLink:   "https://cdn.example.com/covers/starfall-drift.png",
		Tag1:             "racing",
		Rating:           &rating,
	}
}

func TestCreateGame_Validation(t *testing.T) {
	controller := setupController(t)
	ctx := context.Background()

	lowRating := decimal.NewFromInt(-1)
	highRating := decimal.NewFromFloat(5.5)

	tests := []struct {
		name   string
		mutate func(*gameController.GameRequest)
	}{
		{name: "empty name", mutate: func(r *gameController.GameRequest) { r.Name = "" }},
		{name: "whitespace name", mutate: func(r *gameController.GameRequest) { r.Name = "   " }},
		{
			name:   "name too long",
			mutate: func(r *gameController.GameRequest) { r.Name = strings.Repeat("a", 101) },
		},
		{
			name:   "link without scheme",
			mutate: func(r *gameController.GameRequest) { r.GameLink = "games.example.com/x" },
		},
		{
			name: "link too long",
			mutate: func(r *gameController.GameRequest) {
				r.CoverImageLink = "https://" + strings.Repeat("a", 300)
			},
		},
		{
			name:   "tag too long",
			mutate: func(r *gameController.GameRequest) { r.Tag2 = strings.Repeat("t", 51) },
		},
		{
			name:   "negative rating",
			mutate: func(r *gameController.GameRequest) { r.Rating = &lowRating },
		},
		{
			name:   "rating above five",
			mutate: func(r *gameController.GameRequest) { r.Rating = &highRating },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validGameRequest()
			tt.mutate(request)

			_, err := controller.CreateGame(ctx, request)
			assert.ErrorIs(t, err, gameController.ErrValidation)
		})
	}
}

func TestCreateAndGetGame(t *testing.T) {
	controller := setupController(t)
	ctx := context.Background()

	created, err := controller.CreateGame(ctx, validGameRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := controller.GetGame(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Starfall Drift", fetched.Name)
	require.NotNil(t, fetched.Rating)
	assert.True(t, fetched.Rating.Equal(decimal.NewFromFloat(4.5)))
}

func TestGetGame_NotFound(t *testing.T) {
	controller := setupController(t)

	_, err := controller.GetGame(context.Background(), 9999)
	assert.ErrorIs(t, err, gameController.ErrNotFound)

	_, err = controller.GetGame(context.Background(), 0)
	assert.ErrorIs(t, err, gameController.ErrValidation)
}

func TestUpdateGame(t *testing.T) {
	controller := setupController(t)
	ctx := context.Background()

	created, err := controller.CreateGame(ctx, validGameRequest())
	require.NoError(t, err)

	request := validGameRequest()
	request.Name = "Starfall Drift: Redux"
	request.Tag2 = "remaster"

	updated, err := controller.UpdateGame(ctx, created.ID, request)
	require.NoError(t, err)
	assert.Equal(t, "Starfall Drift: Redux", updated.Name)
	assert.Equal(t, "remaster", updated.Tag2)

	_, err = controller.UpdateGame(ctx, 9999, validGameRequest())
	assert.ErrorIs(t, err, gameController.ErrNotFound)
}

func TestDeleteGame(t *testing.T) {
	controller := setupController(t)
	ctx := context.Background()

	created, err := controller.CreateGame(ctx, validGameRequest())
	require.NoError(t, err)

	require.NoError(t, controller.DeleteGame(ctx, created.ID))

	_, err = controller.GetGame(ctx, created.ID)
	assert.ErrorIs(t, err, gameController.ErrNotFound)

	err = controller.DeleteGame(ctx, created.ID)
	assert.ErrorIs(t, err, gameController.ErrNotFound)
}

func TestListGames_PaginationAndSearch(t *testing.T) {
	controller := setupController(t)
	ctx := context.Background()

	for i := range 15 {
		request := validGameRequest()
		request.Name = fmt.Sprintf("Puzzle Quest %d", i+1)
		if i >= 10 {
			request.Name = fmt.Sprintf("Racing League %d", i+1)
		}
		_, err := controller.CreateGame(ctx, request)
		require.NoError(t, err)
	}

	response, err := controller.ListGames(ctx, gameController.ListGamesRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, response.Games, 10)
	assert.Equal(t, int64(15), response.Pagination.Total)
	assert.Equal(t, 2, response.Pagination.TotalPages)

	response, err = controller.ListGames(ctx, gameController.ListGamesRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, response.Games, 5)

	response, err = controller.ListGames(ctx, gameController.ListGamesRequest{Search: "Racing"})
	require.NoError(t, err)
	assert.Len(t, response.Games, 5)
	assert.Equal(t, int64(5), response.Pagination.Total)

	_, err = controller.ListGames(ctx, gameController.ListGamesRequest{Limit: 500})
	assert.ErrorIs(t, err, gameController.ErrValidation)
}
