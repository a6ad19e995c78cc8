// Package generate hosts the request-time orchestrator: entitlement check,
// pipeline (or remote strategy) invocation, record persistence and the
// single quota increment.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"ecomcopy-app/internal/ai"
	"ecomcopy-app/internal/copygen"
	"ecomcopy-app/internal/domain/generations"
	"ecomcopy-app/internal/domain/plans"
	"ecomcopy-app/internal/entitlement"

	"github.com/gin-gonic/gin"
)

// RemoteGenerator is the pluggable external content source behind the same
// seven-field contract as the local pipeline.
type RemoteGenerator interface {
	Generate(ctx context.Context, productName, voice string, include []string) (copygen.GeneratedCopy, error)
}

type Handler struct {
	entitlements *entitlement.Service
	records      RecordStore
	remote       RemoteGenerator // nil means rule-based pipeline only
}

func NewHandler(svc *entitlement.Service, records RecordStore, remote RemoteGenerator) *Handler {
	return &Handler{entitlements: svc, records: records, remote: remote}
}

type generateInput struct {
	ProductName string   `json:"product_name" binding:"required,min=2"`
	Voice       string   `json:"voice" binding:"omitempty,oneof=default minimal playful luxury"`
	Include     []string `json:"include"`
}

// GenerateCopy handles POST /generate. Content is produced before the
// quota slot is taken, so a remote failure never burns a generation; the
// Consume call is the single atomic increment.
func (h *Handler) GenerateCopy(c *gin.Context) {
	var input generateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Voice == "" {
		input.Voice = copygen.VoiceDefault
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	ctx := c.Request.Context()

	_, include, err := h.entitlements.Authorize(ctx, userID, input.Include)
	if err != nil {
		writeEntitlementError(c, err)
		return
	}

	name := strings.TrimSpace(input.ProductName)
	var output copygen.GeneratedCopy
	if h.remote != nil {
		output, err = h.remote.Generate(ctx, name, input.Voice, include)
		if err != nil {
			var upstream *ai.UpstreamError
			if errors.As(err, &upstream) {
				c.JSON(http.StatusBadGateway, gin.H{"error": "Generation service unavailable. Please try again."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Generation failed"})
			return
		}
	} else {
		output = copygen.Generate(name, input.Voice)
	}

	if _, err := h.entitlements.Consume(ctx, userID); err != nil {
		writeEntitlementError(c, err)
		return
	}

	blob, err := json.Marshal(output)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode output"})
		return
	}
	rec := &generations.Generation{
		UserID:      userID,
		ProductName: name,
		Voice:       input.Voice,
		Include:     strings.Join(include, ","),
		Output:      string(blob),
	}
	if err := h.records.Create(ctx, rec); err != nil {
		// The quota slot is already taken; surface the failure instead of
		// pretending the record exists.
		log.Println("❌ Failed to store generation record:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store generation"})
		return
	}

	c.JSON(http.StatusOK, output)
}

type historyEntry struct {
	ID          uint            `json:"id"`
	ProductName string          `json:"product_name"`
	Voice       string          `json:"voice"`
	Include     []string        `json:"include"`
	Output      json.RawMessage `json:"output"`
	CreatedAt   time.Time       `json:"created_at"`
}

// History handles GET /history: the caller's generation records, newest
// first.
func (h *Handler) History(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	recs, err := h.records.ListByUser(c.Request.Context(), userID, 50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
		return
	}

	out := make([]historyEntry, 0, len(recs))
	for _, r := range recs {
		entry := historyEntry{
			ID:          r.ID,
			ProductName: r.ProductName,
			Voice:       r.Voice,
			CreatedAt:   r.CreatedAt,
			Output:      json.RawMessage(r.Output),
		}
		if r.Include != "" {
			entry.Include = strings.Split(r.Include, ",")
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

type emailInput struct {
	ProductName string `json:"product_name" binding:"required,min=2"`
	EmailType   string `json:"email_type"`
}

// GenerateEmail handles POST /generate_email, the premium-only full-email
// generator. Route-level plan guard enforces the premium requirement; the
// quota increment still applies.
func (h *Handler) GenerateEmail(c *gin.Context) {
	var input emailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.EmailType == "" {
		input.EmailType = "promo"
	}

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	if _, err := h.entitlements.Consume(c.Request.Context(), userID); err != nil {
		writeEntitlementError(c, err)
		return
	}

	// Sanitize the interpolated values, not the assembled body: the
	// whitespace collapse in Sanitize would flatten the line structure.
	name := copygen.Sanitize(strings.TrimSpace(input.ProductName))
	emailType := copygen.Sanitize(input.EmailType)
	subject := copygen.Clamp(
		fmt.Sprintf("[%s] %s just for you", titleWord(emailType), name),
		copygen.MaxEmailSubject)
	body := fmt.Sprintf(
		"Hello,\n\nHere's a %s email for %s.\n\nCheers,\nThe Team",
		emailType, name)

	c.JSON(http.StatusOK, gin.H{"subject": subject, "body": body})
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeEntitlementError maps the entitlement taxonomy onto status codes:
// quota is 402 (upgrade or wait for reset), feature gaps are 403, unknown
// channels are the caller's mistake.
func writeEntitlementError(c *gin.Context, err error) {
	var quota *entitlement.QuotaExceededError
	if errors.As(err, &quota) {
		msg := "Monthly limit reached. Upgrade your plan or wait for the monthly reset."
		if quota.Plan == plans.PlanFree {
			msg = "Trial limit reached. Upgrade to a paid plan to continue."
		}
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":       msg,
			"limit":       quota.Limit,
			"used":        quota.Used,
			"plan":        quota.Plan,
			"upgradeable": quota.Upgradeable(),
		})
		return
	}

	var feature *entitlement.FeatureNotEntitledError
	if errors.As(err, &feature) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   fmt.Sprintf("%s not available on %s plan", feature.Channel, feature.Plan),
			"channel": feature.Channel,
			"plan":    feature.Plan,
		})
		return
	}

	if errors.Is(err, entitlement.ErrAccountNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var unknown *entitlement.UnknownChannelError
	if errors.As(err, &unknown) {
		c.JSON(http.StatusBadRequest, gin.H{"error": unknown.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
}
