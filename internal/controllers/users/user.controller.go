package userController

import (
	"context"
	"errors"

	"galhub/config"
	"galhub/internal/database"
	. "galhub/internal/models"
	"galhub/internal/repositories"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrUsernameTaken = errors.New("username already exists")
)

type UserController struct {
	userRepo repositories.UserRepository
	db       database.DB
	Config   config.Config
}

type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
}

type UserControllerInterface interface {
	GetProfile(ctx context.Context, user *User) UserProfile
	UpdateProfile(ctx context.Context, user *User, request *UpdateProfileRequest) (*UserProfile, error)
	DeleteAccount(ctx context.Context, user *User) error
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) UserControllerInterface {
	return &UserController{
		userRepo: repos.User,
		db:       db,
		Config:   config,
	}
}

func (c *UserController) GetProfile(ctx context.Context, user *User) UserProfile {
	return user.Profile()
}

func (c *UserController) UpdateProfile(
	ctx context.Context,
	user *User,
	request *UpdateProfileRequest,
) (*UserProfile, error) {
	log := logger.New("userController").TraceFromContext(ctx).Function("UpdateProfile")

	if request.Username != nil && *request.Username != user.Username {
		if !ValidUsername(*request.Username) {
			return nil, log.ErrorWithType(
				ErrValidation,
				"username must be 3-50 characters of letters, numbers, and underscores",
			)
		}

		if _, err := c.userRepo.GetByUsername(ctx, *request.Username); err == nil {
			return nil, log.ErrorWithType(
				ErrUsernameTaken,
				"username already exists",
				"username", *request.Username,
			)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.Err("failed to check username", err)
		}

		user.Username = *request.Username
	}

	if err := c.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	profile := user.Profile()
	return &profile, nil
}

// DeleteAccount removes the user row; recent-play and client-log rows cascade
// at the store level.
func (c *UserController) DeleteAccount(ctx context.Context, user *User) error {
	log := logger.New("userController").TraceFromContext(ctx).Function("DeleteAccount")

	if err := c.userRepo.Delete(ctx, user); err != nil {
		return err
	}

	log.Info("user account deleted", "uid", user.UID)
	return nil
}
