package models

import (
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
)

type User struct {
	UID       int       `gorm:"column:uid;primaryKey;autoIncrement" json:"uid"`
	Username  string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Password  string    `gorm:"type:varchar(255);not null"            json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime"                        json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"                        json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// ValidUsername reports whether a username satisfies the registration rules.
func ValidUsername(username string) bool {
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return false
	}
	return usernamePattern.MatchString(username)
}

func (u *User) SetPassword(plaintext string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

func (u *User) ComparePassword(plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plaintext)) == nil
}

// UserProfile is the public shape returned by profile endpoints.
type UserProfile struct {
	UID       int       `json:"uid"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) Profile() UserProfile {
	return UserProfile{
		UID:       u.UID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}
