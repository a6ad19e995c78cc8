package admin

import (
	"net/http"

	"ecomcopy-app/database"
	"ecomcopy-app/internal/domain/generations"
	"ecomcopy-app/internal/domain/plans"
	"ecomcopy-app/internal/domain/users"
	"ecomcopy-app/internal/entitlement"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	entitlements *entitlement.Service
}

func NewHandler(svc *entitlement.Service) *Handler {
	return &Handler{entitlements: svc}
}

func (h *Handler) AdminDashboard(c *gin.Context) {
	var totalUsers int64
	var totalGenerations int64
	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&generations.Generation{}).Count(&totalGenerations)

	byPlan := map[string]int64{}
	for _, p := range plans.AllPlans() {
		var n int64
		database.DB.Model(&users.User{}).Where("plan = ?", p).Count(&n)
		byPlan[p] = n
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":       totalUsers,
		"total_generations": totalGenerations,
		"users_by_plan":     byPlan,
	})
}

func (h *Handler) ListAllUsers(c *gin.Context) {
	var all []users.User
	if err := database.DB.Order("id").Find(&all).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	type row struct {
		ID             uint   `json:"id"`
		Email          string `json:"email"`
		Plan           string `json:"plan"`
		UsageCount     int    `json:"usage_count"`
		TrialRemaining int    `json:"trial_remaining"`
		IsVerified     bool   `json:"is_verified"`
	}
	out := make([]row, 0, len(all))
	for _, u := range all {
		out = append(out, row{
			ID:             u.ID,
			Email:          u.Email,
			Plan:           u.Plan,
			UsageCount:     u.UsageCount,
			TrialRemaining: u.TrialRemaining,
			IsVerified:     u.IsVerified,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) GetUserDetails(c *gin.Context) {
	id := c.Param("id")
	var user users.User
	if err := database.DB.Where("id = ?", id).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var recent []generations.Generation
	database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(10).
		Find(&recent)

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":              user.ID,
			"email":           user.Email,
			"plan":            user.Plan,
			"usage_count":     user.UsageCount,
			"trial_remaining": user.TrialRemaining,
			"last_reset":      user.LastReset,
			"created_at":      user.CreatedAt,
		},
		"recent_generations": recent,
	})
}

// ResetUsage is the monthly reset job: every account back to zero usage.
// Safe to re-run; already-zero accounts stay zero.
func (h *Handler) ResetUsage(c *gin.Context) {
	count, err := h.entitlements.ResetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset usage"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": count})
}
