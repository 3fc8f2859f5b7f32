package seed

import (
	"galhub/config"
	. "galhub/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func ratingPtr(value string) *decimal.Decimal {
	rating, err := decimal.NewFromString(value)
	if err != nil {
		return nil
	}
	return &rating
}

// Seed creates the initial admin account and a handful of sample games so a
// fresh environment is usable immediately.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	if err := seedAdmin(db, config, log); err != nil {
		return log.Err("failed to seed admin", err)
	}

	if err := seedGames(db, log); err != nil {
		return log.Err("failed to seed games", err)
	}

	return nil
}

func seedAdmin(db *gorm.DB, config config.Config, log logger.Logger) error {
	var existing Admin
	if err := db.First(&existing, "username = ?", "admin").Error; err == nil {
		log.Info("Admin already exists, skipping")
		return nil
	}

	admin := Admin{Username: "admin"}
	if err := admin.SetPassword("admin123", config.BcryptCost); err != nil {
		return log.Err("failed to hash admin password", err)
	}

	if err := db.Create(&admin).Error; err != nil {
		return log.Err("failed to create admin", err)
	}

	log.Info("Seeded initial admin account", "username", admin.Username)
	return nil
}

func seedGames(db *gorm.DB, log logger.Logger) error {
	games := []Game{
		{
			Name:             "Starfall Drift",
			BriefDescription: "Arcade racer set in a collapsing asteroid belt.",
			GameLink:         "https://games.example.com/starfall-drift",
			CoverImageLink:   "https://cdn.example.com/covers/starfall-drift.png",
			Tag1:             "racing",
			Tag2:             "arcade",
			Rating:           ratingPtr("4.5"),
		},
		{
			Name:             "Mossbound",
			BriefDescription: "Cozy exploration through an overgrown ruin.",
			GameLink:         "https://games.example.com/mossbound",
			CoverImageLink:   "https://cdn.example.com/covers/mossbound.png",
			Tag1:             "exploration",
			Tag2:             "casual",
			Rating:           ratingPtr("4.0"),
		},
		{
			Name:             "Circuit Breaker",
			BriefDescription: "Puzzle game about rerouting power grids under pressure.",
			GameLink:         "https://games.example.com/circuit-breaker",
			CoverImageLink:   "https://cdn.example.com/covers/circuit-breaker.png",
			Tag1:             "puzzle",
			Tag2:             "strategy",
			Rating:           ratingPtr("3.5"),
		},
	}

	for _, game := range games {
		var existing Game
		if err := db.First(&existing, "name = ?", game.Name).Error; err == nil {
			log.Info("Game already exists, skipping", "name", game.Name)
			continue
		}
		if err := db.Create(&game).Error; err != nil {
			return log.Err("failed to create game", err, "name", game.Name)
		}
	}

	log.Info("Seeded sample games", "count", len(games))
	return nil
}
