package middleware

import (
	"galhub/config"
	"galhub/internal/database"
	"galhub/internal/repositories"
	"galhub/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB           database.DB
	userRepo     repositories.UserRepository
	adminRepo    repositories.AdminRepository
	tokenService *services.TokenService
	Config       config.Config
	log          logger.Logger
}

func New(
	db database.DB,
	config config.Config,
	repos repositories.Repository,
	services services.Service,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:           db,
		userRepo:     repos.User,
		adminRepo:    repos.Admin,
		tokenService: services.Token,
		Config:       config,
		log:          log,
	}
}
