// Package entitlement is the quota/plan state machine: it decides whether
// an account may generate, which channels it may use, and how billing
// events and the monthly reset mutate its standing.
package entitlement

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ecomcopy-app/internal/domain/plans"
	"ecomcopy-app/internal/domain/users"
)

// Service serializes every mutation of a single account behind a keyed
// mutex, so a quota check and its increment form one atomic unit even
// under concurrent requests. Billing events and resets take the same lock.
type Service struct {
	store AccountStore

	mu    sync.Mutex
	locks map[uint]*accountLock

	// resetMu orders the bulk reset against per-account writers: account
	// operations hold it shared, ResetAll holds it exclusively, so a zeroed
	// counter cannot be overwritten by an increment that read the old value.
	resetMu sync.RWMutex

	now func() time.Time
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(store AccountStore) *Service {
	return &Service{
		store: store,
		locks: make(map[uint]*accountLock),
		now:   time.Now,
	}
}

func (s *Service) lockAccount(id uint) func() {
	s.resetMu.RLock()

	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &accountLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
		s.resetMu.RUnlock()
	}
}

func monthStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// refreshPeriod applies the lazy month-boundary reset: usage recorded
// before the current UTC month start counts as zero. Caller must hold the
// account lock.
func (s *Service) refreshPeriod(ctx context.Context, u *users.User) error {
	now := s.now()
	if !u.LastReset.Before(monthStartUTC(now)) {
		return nil
	}

	fields := map[string]interface{}{
		"usage_count": 0,
		"last_reset":  now,
	}
	if u.Plan == plans.PlanFree {
		fields["trial_remaining"] = plans.RuleFor(plans.PlanFree).MaxGenerates
		u.TrialRemaining = plans.RuleFor(plans.PlanFree).MaxGenerates
	}
	if err := s.store.Update(ctx, u.ID, fields); err != nil {
		return err
	}
	u.UsageCount = 0
	u.LastReset = now
	return nil
}

// CheckChannels verifies the requested channel set is a subset of the
// plan's allowed set. An empty request means the default channel set.
func (s *Service) CheckChannels(plan string, channels []string) ([]string, error) {
	if len(channels) == 0 {
		channels = plans.AllChannels()
	}
	rule := plans.RuleFor(plan)
	resolved := make([]string, 0, len(channels))
	for _, raw := range channels {
		ch, ok := plans.ParseChannel(raw)
		if !ok {
			return nil, &UnknownChannelError{Channel: raw}
		}
		if !rule.Allows(ch) {
			return nil, &FeatureNotEntitledError{Channel: ch, Plan: plan}
		}
		resolved = append(resolved, ch)
	}
	return resolved, nil
}

// Authorize is the read-only pre-generation gate: entitlement check plus a
// quota peek. The authoritative check-and-increment happens in Consume.
func (s *Service) Authorize(ctx context.Context, userID uint, channels []string) (*users.User, []string, error) {
	unlock := s.lockAccount(userID)
	defer unlock()

	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.refreshPeriod(ctx, u); err != nil {
		return nil, nil, err
	}

	resolved, err := s.CheckChannels(u.Plan, channels)
	if err != nil {
		return nil, nil, err
	}

	rule := plans.RuleFor(u.Plan)
	if !rule.IsUnlimited() && u.UsageCount >= rule.MaxGenerates {
		return nil, nil, &QuotaExceededError{Plan: u.Plan, Limit: rule.MaxGenerates, Used: u.UsageCount}
	}
	return u, resolved, nil
}

// Consume performs the atomic compare-and-increment: the generation slot
// is taken iff the account is still under its ceiling. Exactly one of N
// concurrent callers gets the last slot.
func (s *Service) Consume(ctx context.Context, userID uint) (*users.User, error) {
	unlock := s.lockAccount(userID)
	defer unlock()

	u, err := s.store.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshPeriod(ctx, u); err != nil {
		return nil, err
	}

	rule := plans.RuleFor(u.Plan)
	if !rule.IsUnlimited() && u.UsageCount >= rule.MaxGenerates {
		return nil, &QuotaExceededError{Plan: u.Plan, Limit: rule.MaxGenerates, Used: u.UsageCount}
	}

	fields := map[string]interface{}{"usage_count": u.UsageCount + 1}
	if u.Plan == plans.PlanFree && u.TrialRemaining > 0 {
		fields["trial_remaining"] = u.TrialRemaining - 1
		u.TrialRemaining--
	}
	if err := s.store.Update(ctx, u.ID, fields); err != nil {
		return nil, err
	}
	u.UsageCount++
	return u, nil
}

// ApplyCheckoutCompleted moves an account to the purchased plan and starts
// a fresh usage period. Unknown billing subjects are a deliberate no-op so
// the provider gets an acknowledgment, not a retry loop.
func (s *Service) ApplyCheckoutCompleted(ctx context.Context, email, plan, stripeCustomerID string) (bool, error) {
	target, ok := plans.ParsePlan(plan)
	if !ok || target == plans.PlanFree {
		return false, fmt.Errorf("invalid target plan %q", plan)
	}

	u, err := s.findBillingSubject(ctx, email, stripeCustomerID)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	unlock := s.lockAccount(u.ID)
	defer unlock()

	fields := map[string]interface{}{
		"plan":            target,
		"usage_count":     0,
		"trial_remaining": 0,
		"last_reset":      s.now(),
	}
	if stripeCustomerID != "" {
		fields["stripe_customer_id"] = stripeCustomerID
	}
	if err := s.store.Update(ctx, u.ID, fields); err != nil {
		return false, err
	}
	return true, nil
}

// ApplySubscriptionCanceled downgrades a cancelled account to basic with a
// fresh usage period. The subject may arrive as a billing customer ref, an
// email, or both; unknown subjects are a no-op.
func (s *Service) ApplySubscriptionCanceled(ctx context.Context, email, stripeCustomerID string) (bool, error) {
	u, err := s.findBillingSubject(ctx, email, stripeCustomerID)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	unlock := s.lockAccount(u.ID)
	defer unlock()

	return true, s.store.Update(ctx, u.ID, map[string]interface{}{
		"plan":        plans.PlanBasic,
		"usage_count": 0,
		"last_reset":  s.now(),
	})
}

func (s *Service) findBillingSubject(ctx context.Context, email, stripeCustomerID string) (*users.User, error) {
	if stripeCustomerID != "" {
		u, err := s.store.GetByStripeCustomer(ctx, stripeCustomerID)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, ErrAccountNotFound) {
			return nil, err
		}
	}
	if email != "" {
		return s.store.GetByEmail(ctx, email)
	}
	return nil, ErrAccountNotFound
}

// ResetAll zeroes every account's usage counter and stamps the reset time.
// It excludes all in-flight account operations so a concurrent Consume
// cannot write an increment over the zeroed counter. Idempotent:
// re-running on already-zero counters changes nothing that matters.
func (s *Service) ResetAll(ctx context.Context) (int64, error) {
	s.resetMu.Lock()
	defer s.resetMu.Unlock()

	return s.store.ResetAllUsage(ctx, s.now())
}
