package users

import (
	"net/http"

	"ecomcopy-app/database"
	"ecomcopy-app/internal/domain/plans"
	"ecomcopy-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type MeResponse struct {
	ID             uint     `json:"id"`
	Email          string   `json:"email"`
	Plan           string   `json:"plan"`
	UsageCount     int      `json:"usage_count"`
	MaxGenerates   int      `json:"max_generates"` // -1 means unlimited
	TrialRemaining int      `json:"trial_remaining"`
	Channels       []string `json:"channels"`
	IsVerified     bool     `json:"is_verified"`
}

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	rule := plans.RuleFor(user.Plan)
	c.JSON(http.StatusOK, MeResponse{
		ID:             user.ID,
		Email:          user.Email,
		Plan:           user.Plan,
		UsageCount:     user.UsageCount,
		MaxGenerates:   rule.MaxGenerates,
		TrialRemaining: user.TrialRemaining,
		Channels:       rule.Channels,
		IsVerified:     user.IsVerified,
	})
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing token"})
		return
	}

	var t users.VerificationToken
	if err := database.DB.Where("token = ?", token).First(&t).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", t.UserID).
		Update("is_verified", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify user"})
		return
	}

	_ = database.DB.Delete(&users.VerificationToken{}, t.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}
