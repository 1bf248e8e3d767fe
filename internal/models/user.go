package models

import (
	"time"
)

// User represents a registered student account.
type User struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	Phone        string `json:"phone"`
	Year         string `json:"year"`
	ProfilePic   string `json:"profile_pic"`
	CoverImage   string `json:"cover_image"`
	IsVerified   bool   `json:"is_verified"`
	Wishlist     []Item `gorm:"many2many:user_wishlist_items;" json:"wishlist,omitempty"`
}

// EmailVerification keeps track of OTP codes sent to users.
type EmailVerification struct {
	BaseModel
	Email     string     `gorm:"index" json:"email"`
	Code      string     `json:"code"`
	ExpiresAt time.Time  `json:"expires_at"`
	Verified  bool       `json:"verified"`
	UsedAt    *time.Time `json:"used_at"`
}

// PasswordResetToken stores the hashed single-use reset token.
type PasswordResetToken struct {
	BaseModel
	Email     string     `gorm:"index" json:"email"`
	TokenHash string     `gorm:"uniqueIndex" json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
}
