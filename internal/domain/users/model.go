package users

import (
	"time"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Email        string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     *string `gorm:""`
	AuthProvider string  `gorm:"type:varchar(20);not null;default:'local'"`
	GoogleSub    *string `gorm:"uniqueIndex:idx_users_google_sub"`
	Role         string
	IsVerified   bool

	// Entitlement state. Plan is one of the plans package constants;
	// TrialRemaining is only meaningful while Plan is "free".
	Plan           string `gorm:"type:varchar(16);not null;default:'free'"`
	UsageCount     int    `gorm:"not null;default:0"`
	TrialRemaining int    `gorm:"not null;default:3"`
	LastReset      time.Time

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_users_stripe_customer_id"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
