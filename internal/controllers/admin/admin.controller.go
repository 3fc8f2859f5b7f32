package adminController

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
	ErrNotFound      = errors.New("not found")
	ErrUsernameTaken = errors.New("username already exists")
)

type AdminController struct {
	adminRepo repositories.AdminRepository
	userRepo  repositories.UserRepository
	db        database.DB
	Config    config.Config
}

type CreateAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminControllerInterface interface {
	ListAdmins(ctx context.Context) ([]*Admin, error)
	ListUsers(ctx context.Context) ([]UserProfile, error)
	CreateAdmin(ctx context.Context, request *CreateAdminRequest) (*Admin, error)
	DeleteAdmin(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) AdminControllerInterface {
	return &AdminController{
		adminRepo: repos.Admin,
		userRepo:  repos.User,
		db:        db,
		Config:    config,
	}
}

func (c *AdminController) ListAdmins(ctx context.Context) ([]*Admin, error) {
	return c.adminRepo.GetAll(ctx)
}

// ListUsers returns every registered user as a public profile, never the
// password hashes.
func (c *AdminController) ListUsers(ctx context.Context) ([]UserProfile, error) {
	users, err := c.userRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, user.Profile())
	}

	return profiles, nil
}

func (c *AdminController) CreateAdmin(
	ctx context.Context,
	request *CreateAdminRequest,
) (*Admin, error) {
	log := logger.New("adminController").TraceFromContext(ctx).Function("CreateAdmin")

	if !ValidUsername(request.Username) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"username must be 3-50 characters of letters, numbers, and underscores",
		)
	}

	if len(request.Password) < MinPasswordLength {
		return nil, log.ErrorWithType(
			ErrValidation,
			"password must be at least 6 characters long",
		)
	}

	if _, err := c.adminRepo.GetByUsername(ctx, request.Username); err == nil {
		return nil, log.ErrorWithType(
			ErrUsernameTaken,
			"username already exists",
			"username", request.Username,
		)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to check admin username", err)
	}

	admin := &Admin{Username: request.Username}
	if err := admin.SetPassword(request.Password, c.Config.BcryptCost); err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	if err := c.adminRepo.Create(ctx, admin); err != nil {
		return nil, err
	}

	log.Info("admin created", "id", admin.ID, "username", admin.Username)

	return admin, nil
}

func (c *AdminController) DeleteAdmin(ctx context.Context, id int) error {
	log := logger.New("adminController").TraceFromContext(ctx).Function("DeleteAdmin")

	if id <= 0 {
		return log.ErrorWithType(ErrValidation, "admin id must be a positive integer")
	}

	rowsAffected, err := c.adminRepo.Delete(ctx, id)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return log.ErrorWithType(ErrNotFound, "admin not found", "id", id)
	}

	return nil
}
