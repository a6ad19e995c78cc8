package plans

import (
	"net/http"

	"ecomcopy-app/internal/domain/plans"

	"github.com/gin-gonic/gin"
)

type planDTO struct {
	Plan         string   `json:"plan"`
	MaxGenerates int      `json:"max_generates"` // -1 means unlimited
	Channels     []string `json:"channels"`
}

// ListPlans exposes the static plan rules so the frontend can render the
// pricing table without hardcoding them.
func ListPlans(c *gin.Context) {
	out := make([]planDTO, 0, len(plans.AllPlans()))
	for _, p := range plans.AllPlans() {
		rule := plans.RuleFor(p)
		out = append(out, planDTO{
			Plan:         p,
			MaxGenerates: rule.MaxGenerates,
			Channels:     rule.Channels,
		})
	}
	c.JSON(http.StatusOK, out)
}
