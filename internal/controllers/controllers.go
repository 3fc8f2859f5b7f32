package controllers

import (
	"galhub/config"
	"galhub/internal/database"
	"galhub/internal/repositories"
	"galhub/internal/services"

	adminController "galhub/internal/controllers/admin"
	authController "galhub/internal/controllers/auth"
	gameController "galhub/internal/controllers/games"
	logsController "galhub/internal/controllers/logs"
	recentController "galhub/internal/controllers/recent"
	userController "galhub/internal/controllers/users"
)

type Controllers struct {
	Auth   authController.AuthControllerInterface
	User   userController.UserControllerInterface
	Game   gameController.GameControllerInterface
	Recent recentController.RecentControllerInterface
	Admin  adminController.AdminControllerInterface
	Logs   logsController.LogsControllerInterface
}

func New(
	services services.Service,
	repos repositories.Repository,
	config config.Config,
	db database.DB,
) Controllers {
	return Controllers{
		Auth:   authController.New(repos, services, config, db),
		User:   userController.New(repos, config, db),
		Game:   gameController.New(repos, services, config, db),
		Recent: recentController.New(repos, services, config, db),
		Admin:  adminController.New(repos, config, db),
		Logs:   logsController.New(repos),
	}
}
