package stripewebhooks

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

// handleSubscriptionDeleted downgrades the cancelled account to basic. An
// event for an account we do not know is acknowledged as a no-op so Stripe
// stops retrying.
func (h *Handler) handleSubscriptionDeleted(c *gin.Context, sub *stripe.Subscription) error {
	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}
	email := ""
	if sub.Metadata != nil {
		email = sub.Metadata["customer_email"]
	}

	updated, err := h.entitlements.ApplySubscriptionCanceled(c.Request.Context(), email, customerID)
	if err != nil {
		return fmt.Errorf("failed to apply cancellation: %w", err)
	}
	if updated {
		fmt.Printf("❌ Downgraded customer %s to basic (subscription cancelled)\n", customerID)
	}
	return nil
}
