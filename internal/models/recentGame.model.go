package models

import (
	"time"
)

// MaxRecentGames caps how many recent-play rows a single user may hold.
// Once exceeded, the row with the oldest played_at is evicted.
const MaxRecentGames = 32

// RecentGame is one entry in a user's recently-played ledger. A (uid, game_id)
// pair is unique; replaying a game refreshes played_at instead of inserting.
type RecentGame struct {
	ID       int       `gorm:"type:int;primaryKey;autoIncrement"                                        json:"id"`
	UID      int       `gorm:"column:uid;not null;uniqueIndex:uk_user_recent_games,priority:1;index:idx_user_recent_games_played,priority:1" json:"uid"`
	User     User      `gorm:"foreignKey:UID;references:UID;constraint:OnDelete:CASCADE"                json:"-"`
	GameID   int       `gorm:"not null;uniqueIndex:uk_user_recent_games,priority:2"                     json:"gameId"`
	Game     Game      `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE"                            json:"game"`
	PlayedAt time.Time `gorm:"not null;index:idx_user_recent_games_played,priority:2"                   json:"playedAt"`
}

func (RecentGame) TableName() string {
	return "user_recent_games"
}

// RecentGameEntry is the response shape for the recent-games listing.
type RecentGameEntry struct {
	Game     GameSummary `json:"game"`
	PlayedAt time.Time   `json:"playedAt"`
}

func (rg *RecentGame) Entry() RecentGameEntry {
	return RecentGameEntry{
		Game:     rg.Game.Summary(),
		PlayedAt: rg.PlayedAt,
	}
}
