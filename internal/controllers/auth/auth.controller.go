package authController

import (
	"context"
	"errors"

	"galhub/config"
	"galhub/internal/database"
	. "galhub/internal/models"
	"galhub/internal/repositories"
	"galhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrCaptchaFailed      = errors.New("captcha verification failed")
)

type AuthController struct {
	userRepo       repositories.UserRepository
	adminRepo      repositories.AdminRepository
	tokenService   *services.TokenService
	captchaService *services.CaptchaService
	db             database.DB
	Config         config.Config
}

type RegisterRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	CaptchaID     string `json:"captchaId"`
	CaptchaAnswer string `json:"captchaAnswer"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type AdminAuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type AuthControllerInterface interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, request *LoginRequest) (*AuthResponse, error)
	AdminLogin(ctx context.Context, request *LoginRequest) (*AdminAuthResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	config config.Config,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:       repos.User,
		adminRepo:      repos.Admin,
		tokenService:   services.Token,
		captchaService: services.Captcha,
		db:             db,
		Config:         config,
	}
}

func (c *AuthController) Register(
	ctx context.Context,
	request *RegisterRequest,
) (*AuthResponse, error) {
	log := logger.New("authController").TraceFromContext(ctx).Function("Register")

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

	if !c.captchaService.Verify(ctx, request.CaptchaID, request.CaptchaAnswer) {
		return nil, log.ErrorWithType(ErrCaptchaFailed, "captcha verification failed")
	}

	if _, err := c.userRepo.GetByUsername(ctx, request.Username); err == nil {
		return nil, log.ErrorWithType(
			ErrUsernameTaken,
			"username already exists",
			"username", request.Username,
		)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to check username", err, "username", request.Username)
	}

	user := &User{Username: request.Username}
	if err := user.SetPassword(request.Password, c.Config.BcryptCost); err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	if err := c.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := c.tokenService.IssueUserToken(user.UID)
	if err != nil {
		return nil, err
	}

	log.Info("user registered", "uid", user.UID, "username", user.Username)

	return &AuthResponse{
		Token: token,
		User:  user.Profile(),
	}, nil
}

func (c *AuthController) Login(
	ctx context.Context,
	request *LoginRequest,
) (*AuthResponse, error) {
	log := logger.New("authController").TraceFromContext(ctx).Function("Login")

	if request.Username == "" || request.Password == "" {
		return nil, log.ErrorWithType(ErrValidation, "username and password are required")
	}

	user, err := c.userRepo.GetByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrInvalidCredentials, "invalid credentials")
		}
		return nil, log.Err("failed to look up user", err, "username", request.Username)
	}

	if !user.ComparePassword(request.Password) {
		return nil, log.ErrorWithType(
			ErrInvalidCredentials,
			"invalid credentials",
			"username", request.Username,
		)
	}

	token, err := c.tokenService.IssueUserToken(user.UID)
	if err != nil {
		return nil, err
	}

	log.Info("user logged in", "uid", user.UID, "username", user.Username)

	return &AuthResponse{
		Token: token,
		User:  user.Profile(),
	}, nil
}

func (c *AuthController) AdminLogin(
	ctx context.Context,
	request *LoginRequest,
) (*AdminAuthResponse, error) {
	log := logger.New("authController").TraceFromContext(ctx).Function("AdminLogin")

	if request.Username == "" || request.Password == "" {
		return nil, log.ErrorWithType(ErrValidation, "username and password are required")
	}

	admin, err := c.adminRepo.GetByUsername(ctx, request.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrInvalidCredentials, "invalid credentials")
		}
		return nil, log.Err("failed to look up admin", err, "username", request.Username)
	}

	if !admin.ComparePassword(request.Password) {
		return nil, log.ErrorWithType(
			ErrInvalidCredentials,
			"invalid credentials",
			"username", request.Username,
		)
	}

	token, err := c.tokenService.IssueAdminToken(admin.Username)
	if err != nil {
		return nil, err
	}

	log.Info("admin logged in", "username", admin.Username)

	return &AdminAuthResponse{
		Token:    token,
		Username: admin.Username,
	}, nil
}
