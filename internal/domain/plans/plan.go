package plans

import "strings"

// Plan constants (single source of truth)
const (
	PlanFree    = "free"
	PlanBasic   = "basic"
	PlanPro     = "pro"
	PlanPremium = "premium"
)

// ParsePlan normalizes a raw plan string to one of the known plans.
// Unknown values are rejected rather than defaulted so a bad webhook
// payload can never invent a plan.
func ParsePlan(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case PlanFree:
		return PlanFree, true
	case PlanBasic:
		return PlanBasic, true
	case PlanPro:
		return PlanPro, true
	case PlanPremium:
		return PlanPremium, true
	}
	return "", false
}

func AllPlans() []string {
	return []string{PlanFree, PlanBasic, PlanPro, PlanPremium}
}
