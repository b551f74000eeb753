package user

import (
	"time"
)

// User represents a registered account.
type User struct {
	ID           string    `gorm:"primaryKey;type:text" bson:"_id"`
	Name         string    `gorm:"not null;type:text" bson:"name"`
	Email        string    `gorm:"uniqueIndex;not null;type:text" bson:"email"`
	PasswordHash string    `gorm:"not null;type:text" bson:"password_hash"`
	CreatedAt    time.Time `bson:"created_at"`
}

// TableName returns the table name for the User entity.
func (User) TableName() string {
	return "users"
}

// Public returns the view of the user that is safe to hand to clients.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// PublicUser is a user without credential material.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string     `json:"token"`
	User  PublicUser `json:"user"`
}

// Claims represents JWT claims.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
