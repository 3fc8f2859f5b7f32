package models

import (
	"time"

	"gorm.io/datatypes"
)

type ClientLog struct {
	ID        int            `gorm:"type:int;primaryKey;autoIncrement"                         json:"id"`
	UID       int            `gorm:"column:uid;not null;index"                                 json:"uid"`
	User      User           `gorm:"foreignKey:UID;references:UID;constraint:OnDelete:CASCADE" json:"-"`
	SessionID string         `gorm:"type:varchar(64);not null;index"                           json:"sessionId"`
	Level     string         `gorm:"type:varchar(10);not null"                                 json:"level"`
	Message   string         `gorm:"type:text;not null"                                        json:"message"`
	Metadata  datatypes.JSON `gorm:"type:jsonb"                                                json:"metadata,omitempty"`
	LoggedAt  time.Time      `gorm:"not null"                                                  json:"loggedAt"`
	CreatedAt time.Time      `gorm:"autoCreateTime"                                            json:"createdAt"`
}

func (ClientLog) TableName() string {
	return "client_logs"
}
