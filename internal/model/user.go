package model

import "time"

// Role is the authorization role carried by a user and its tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a registered account.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	FullName       string    `json:"fullName" gorm:"size:255;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"column:password;size:255;not null"` // Never expose in JSON
	ContactNo      string    `json:"contactNo" gorm:"size:32"`
	Role           Role      `json:"role" gorm:"type:varchar(20);not null;default:'user';index"`
	ProfilePicture string    `json:"profilePicture,omitempty" gorm:"size:512"`
	TermsAccepted  bool      `json:"termsAccepted" gorm:"default:false"`
	IsActive       bool      `json:"isActive" gorm:"default:false"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
