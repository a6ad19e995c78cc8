package users

import "time"

type VerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index:idx_verification_tokens_user_id"`
	Token     string `gorm:"not null;uniqueIndex:idx_verification_tokens_token"`
	CreatedAt time.Time
}
