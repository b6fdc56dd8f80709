// Package models contains data structures for the application's domain models.
package models

// User represents an account in the Labook application.
// Password holds the bcrypt digest and is never serialized.
type User struct {
	ID       string `gorm:"type:char(36);primaryKey" json:"id"`
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null;uniqueIndex" json:"email"`
	Password string `gorm:"not null" json:"-"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser builds a user from an already generated ID and password digest.
func NewUser(id, name, email, passwordHash string) *User {
	return &User{
		ID:       id,
		Name:     name,
		Email:    email,
		Password: passwordHash,
	}
}
