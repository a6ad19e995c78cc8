package entitlement

import (
	"fmt"

	"ecomcopy-app/internal/domain/plans"
)

// QuotaExceededError reports a generation attempt over the plan ceiling.
// Upgradeable tells the caller whether moving to a higher plan would help,
// as opposed to waiting for the monthly reset.
type QuotaExceededError struct {
	Plan  string
	Limit int
	Used  int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("quota exceeded: %d/%d generations used on %s plan", e.Used, e.Limit, e.Plan)
}

func (e *QuotaExceededError) Upgradeable() bool {
	return e.Plan != plans.PlanPremium
}

// FeatureNotEntitledError reports a requested channel outside the plan's
// allowed set. The whole request is rejected, never silently trimmed.
type FeatureNotEntitledError struct {
	Channel string
	Plan    string
}

func (e *FeatureNotEntitledError) Error() string {
	return fmt.Sprintf("%s not available on %s plan", e.Channel, e.Plan)
}

// UnknownChannelError reports a channel name outside the closed set.
type UnknownChannelError struct {
	Channel string
}

func (e *UnknownChannelError) Error() string {
	return fmt.Sprintf("unknown channel %q", e.Channel)
}
