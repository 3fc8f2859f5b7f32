package repositories

import (
	"galhub/internal/database"
)

type Repository struct {
	User       UserRepository
	Admin      AdminRepository
	Game       GameRepository
	RecentGame RecentGameRepository
	ClientLog  ClientLogRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:       NewUserRepository(db),
		Admin:      NewAdminRepository(db),
		Game:       NewGameRepository(db),
		RecentGame: NewRecentGameRepository(db),
		ClientLog:  NewClientLogRepository(db),
	}
}
