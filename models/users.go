package models

import (
	"strings"
	"time"
)

// Staff roles.
const (
	RoleBarista = "barista"
	RoleAdmin   = "admin"
)

type User struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"type:varchar(255); not null"`
	Email           string `gorm:"type:varchar(255); unique;not null"`
	Password        string `gorm:"type:varchar(255); not null"`
	Role            string `gorm:"type:varchar(255); not null"`
	ProfileImageURL string `gorm:"type:varchar(512)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// AvatarInitial returns the single-letter avatar for the user, defaulting to
// "B" when the name is absent.
func (u *User) AvatarInitial() string {
	if u.Name == "" {
		return "B"
	}
	return strings.ToUpper(string([]rune(u.Name)[0:1]))
}
