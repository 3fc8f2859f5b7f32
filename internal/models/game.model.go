package models

import (
	"github.com/shopspring/decimal"
)

type Game struct {
	BaseModel
	Name                string           `gorm:"type:varchar(100);not null;index" json:"name"`
	BriefDescription    string           `gorm:"type:text"                        json:"briefDescription"`
	DetailedDescription string           `gorm:"type:text"                        json:"detailedDescription"`
	GameLink            string           `gorm:"type:varchar(255)"                json:"gameLink"`
	CoverImageLink      string           `gorm:"type:varchar(255)"                json:"coverImageLink"`
	Tag1                string           `gorm:"type:varchar(50)"                 json:"tag1,omitempty"`
	Tag2                string           `gorm:"type:varchar(50)"                 json:"tag2,omitempty"`
	Tag3                string           `gorm:"type:varchar(50)"                 json:"tag3,omitempty"`
	Tag4                string           `gorm:"type:varchar(50)"                 json:"tag4,omitempty"`
	Rating              *decimal.Decimal `gorm:"type:decimal(2,1)"                json:"rating,omitempty"`
}

func (Game) TableName() string {
	return "games"
}

// GameSummary is the trimmed shape embedded in recent-play responses.
type GameSummary struct {
	ID               int              `json:"id"`
	Name             string           `json:"name"`
	BriefDescription string           `json:"briefDescription"`
	CoverImageLink   string           `json:"coverImageLink"`
	Tag1             string           `json:"tag1,omitempty"`
	Tag2             string           `json:"tag2,omitempty"`
	Tag3             string           `json:"tag3,omitempty"`
	Tag4             string           `json:"tag4,omitempty"`
	Rating           *decimal.Decimal `json:"rating,omitempty"`
}

func (g *Game) Summary() GameSummary {
	return GameSummary{
		ID:               g.ID,
		Name:             g.Name,
		BriefDescription: g.BriefDescription,
		CoverImageLink:   g.CoverImageLink,
		Tag1:             g.Tag1,
		Tag2:             g.Tag2,
		Tag3:             g.Tag3,
		Tag4:             g.Tag4,
		Rating:           g.Rating,
	}
}
