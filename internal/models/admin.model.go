package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type Admin struct {
	ID        int       `gorm:"type:int;primaryKey;autoIncrement"     json:"id"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null"            json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime"                        json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                        json:"updatedAt"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) SetPassword(plaintext string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return err
	}
	a.Password = string(hash)
	return nil
}

func (a *Admin) ComparePassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(plaintext)) == nil
}
