package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCitizen Role = "citizen"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleCitizen || r == RoleAdmin
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username     string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	FirstName    string    `gorm:"size:150" json:"first_name"`
	LastName     string    `gorm:"size:150" json:"last_name"`
	Role         Role      `gorm:"size:10;not null;default:citizen" json:"role"`
	PhoneNumber  *string   `gorm:"size:15" json:"phone_number,omitempty"`
	CreatedAt    time.Time `json:"date_joined"`
	UpdatedAt    time.Time `json:"-"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u User) IsCitizen() bool {
	return u.Role == RoleCitizen
}

// DisplayName is how a user is rendered in activity feeds.
func (u User) DisplayName() string {
	return u.Username
}
