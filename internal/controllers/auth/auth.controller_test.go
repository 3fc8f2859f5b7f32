package authController_test

import (
	"context"
	"testing"

	"galhub/config"
	authController "galhub/internal/controllers/auth"
	"galhub/internal/database"
	"galhub/internal/models"
	"galhub/internal/repositories"
	"galhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func setupAuth(t *testing.T) (authController.AuthControllerInterface, database.DB) {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gormDB.AutoMigrate(&models.User{}, &models.Admin{}))

	cfg := config.Config{
		JWTSecret:      "test-secret-key",
		JWTExpiryHours: 24,
		BcryptCost:     bcrypt.MinCost,
	}

	db := database.DB{SQL: gormDB}
	repos := repositories.New(db)
	svc := services.Service{
		Token:   services.NewTokenService(cfg),
		Captcha: services.NewCaptchaService(db, cfg),
	}

	return authController.New(repos, svc, cfg, db), db
}

func TestRegister_Validation(t *testing.T) {
	controller, _ := setupAuth(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		request authController.RegisterRequest
		wantErr error
	}{
		{
			name:    "username too short",
			request: authController.RegisterRequest{Username: "ab", Password: "secret123"},
			wantErr: authController.ErrValidation,
		},
		{
			name:    "username with spaces",
			request: authController.RegisterRequest{Username: "cool player", Password: "secret123"},
			wantErr: authController.ErrValidation,
		},
		{
			name:    "password too short",
			request: authController.RegisterRequest{Username: "player1", Password: "12345"},
			wantErr: authController.ErrValidation,
		},
		{
			name: "missing captcha",
			request: authController.RegisterRequest{
				Username: "player1",
				Password: "secret123",
			},
			wantErr: authController.ErrCaptchaFailed,
		},
		{
			name: "unknown captcha id",
			request: authController.RegisterRequest{
				Username:      "player1",
				Password:      "secret123",
				CaptchaID:     "no-such-challenge",
				CaptchaAnswer: "abcd",
			},
			wantErr: authController.ErrCaptchaFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := controller.Register(ctx, &tt.request)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLogin(t *testing.T) {
	controller, db := setupAuth(t)
	ctx := context.Background()

	user := &models.User{Username: "player1"}
	require.NoError(t, user.SetPassword("secret123", bcrypt.MinCost))
	require.NoError(t, db.SQL.Create(user).Error)

	t.Run("valid credentials", func(t *testing.T) {
		response, err := controller.Login(ctx, &authController.LoginRequest{
			Username: "player1",
			Password: "secret123",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, response.Token)
		assert.Equal(t, "player1", response.User.Username)
		assert.Equal(t, user.UID, response.User.UID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := controller.Login(ctx, &authController.LoginRequest{
			Username: "player1",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, authController.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := controller.Login(ctx, &authController.LoginRequest{
			Username: "nobody",
			Password: "secret123",
		})
		assert.ErrorIs(t, err, authController.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := controller.Login(ctx, &authController.LoginRequest{})
		assert.ErrorIs(t, err, authController.ErrValidation)
	})
}

func TestAdminLogin(t *testing.T) {
	controller, db := setupAuth(t)
	ctx := context.Background()

	admin := &models.Admin{Username: "admin"}
	require.NoError(t, admin.SetPassword("admin123", bcrypt.MinCost))
	require.NoError(t, db.SQL.Create(admin).Error)

	response, err := controller.AdminLogin(ctx, &authController.LoginRequest{
		Username: "admin",
		Password: "admin123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "admin", response.Username)

	_, err = controller.AdminLogin(ctx, &authController.LoginRequest{
		Username: "admin",
		Password: "nope",
	})
	assert.ErrorIs(t, err, authController.ErrInvalidCredentials)

	// A regular user cannot log in through the admin endpoint.
	_, err = controller.AdminLogin(ctx, &authController.LoginRequest{
		Username: "player1",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, authController.ErrInvalidCredentials)
}
