package stripewebhooks

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutSessionCompleted moves the purchasing account onto the
// plan named in the session metadata and starts a fresh usage period.
func (h *Handler) handleCheckoutSessionCompleted(c *gin.Context, session *stripe.CheckoutSession) error {
	plan := targetPlanFromSession(session)
	if plan == "" {
		return errors.New("checkout session missing plan metadata")
	}

	email := emailFromSession(session)
	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}
	if email == "" && customerID == "" {
		return errors.New("checkout session missing customer identity")
	}

	updated, err := h.entitlements.ApplyCheckoutCompleted(c.Request.Context(), email, plan, customerID)
	if err != nil {
		return fmt.Errorf("failed to apply checkout: %w", err)
	}
	if updated {
		fmt.Printf("✅ Upgraded %s to %s\n", email, plan)
	}
	return nil
}

func targetPlanFromSession(session *stripe.CheckoutSession) string {
	if session.Metadata != nil {
		if p, ok := session.Metadata["plan"]; ok {
			return p
		}
	}
	if session.Subscription != nil && session.Subscription.Metadata != nil {
		return session.Subscription.Metadata["plan"]
	}
	return ""
}

func emailFromSession(session *stripe.CheckoutSession) string {
	if session.CustomerEmail != "" {
		return session.CustomerEmail
	}
	if session.CustomerDetails != nil {
		return session.CustomerDetails.Email
	}
	return ""
}
