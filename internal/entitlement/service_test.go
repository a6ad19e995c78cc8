package entitlement

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"ecomcopy-app/internal/domain/plans"
	"ecomcopy-app/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu       sync.Mutex
	accounts map[uint]*users.User
}

func newMemStore(accs ...*users.User) *memStore {
	s := &memStore{accounts: map[uint]*users.User{}}
	for _, a := range accs {
		cp := *a
		s.accounts[a.ID] = &cp
	}
	return s
}

func (s *memStore) GetByID(_ context.Context, id uint) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.accounts {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (s *memStore) GetByStripeCustomer(_ context.Context, customerID string) (*users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.accounts {
		if u.StripeCustomerID != nil && *u.StripeCustomerID == customerID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (s *memStore) Update(_ context.Context, id uint, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.accounts[id]
	if !ok {
		return ErrAccountNotFound
	}
	for k, v := range fields {
		switch k {
		case "plan":
			u.Plan = v.(string)
		case "usage_count":
			u.UsageCount = v.(int)
		case "trial_remaining":
			u.TrialRemaining = v.(int)
		case "last_reset":
			u.LastReset = v.(time.Time)
		case "stripe_customer_id":
			id := v.(string)
			u.StripeCustomerID = &id
		}
	}
	return nil
}

func (s *memStore) ResetAllUsage(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, u := range s.accounts {
		u.UsageCount = 0
		u.LastReset = now
		if u.Plan == plans.PlanFree {
			u.TrialRemaining = plans.RuleFor(plans.PlanFree).MaxGenerates
		}
		n++
	}
	return n, nil
}

func (s *memStore) get(id uint) *users.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

func freeUser(id uint) *users.User {
	return &users.User{
		ID: id, Email: "free@example.test", Plan: plans.PlanFree,
		TrialRemaining: 3, LastReset: time.Now(),
	}
}

func planUser(id uint, plan string, used int) *users.User {
	return &users.User{
		ID: id, Email: plan + "@example.test", Plan: plan,
		UsageCount: used, LastReset: time.Now(),
	}
}

func TestFreePlanAllowsThreeGenerations(t *testing.T) {
	store := newMemStore(freeUser(1))
	svc := NewService(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Consume(ctx, 1)
		require.NoError(t, err, "generation %d", i+1)
	}

	_, err := svc.Consume(ctx, 1)
	var quota *QuotaExceededError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, 3, quota.Limit)
	assert.Equal(t, 3, quota.Used)
	assert.True(t, quota.Upgradeable())
	assert.Equal(t, 3, store.get(1).UsageCount)
	assert.Equal(t, 0, store.get(1).TrialRemaining)
}

func TestBasicPlanCeiling(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanBasic, 19))
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.Consume(ctx, 1)
	require.NoError(t, err)

	_, err = svc.Consume(ctx, 1)
	var quota *QuotaExceededError
	require.ErrorAs(t, err, &quota)
	assert.Equal(t, 20, quota.Limit)
	assert.Equal(t, 20, store.get(1).UsageCount)
}

func TestPremiumIsUnlimited(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanPremium, 10_000))
	svc := NewService(store)

	_, err := svc.Consume(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 10_001, store.get(1).UsageCount)
}

func TestBasicPlanRejectsInstagram(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanBasic, 0))
	svc := NewService(store)

	_, _, err := svc.Authorize(context.Background(), 1, []string{"seo", "instagram"})
	var feature *FeatureNotEntitledError
	require.ErrorAs(t, err, &feature)
	assert.Equal(t, "instagram", feature.Channel)
	assert.Equal(t, plans.PlanBasic, feature.Plan)
	// Whole-request failure: nothing consumed.
	assert.Equal(t, 0, store.get(1).UsageCount)
}

func TestDefaultChannelSetNeedsProOrHigher(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanBasic, 0), planUser(2, plans.PlanPro, 0))
	svc := NewService(store)
	ctx := context.Background()

	_, _, err := svc.Authorize(ctx, 1, nil)
	var feature *FeatureNotEntitledError
	require.ErrorAs(t, err, &feature)

	_, resolved, err := svc.Authorize(ctx, 2, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, plans.AllChannels(), resolved)
}

func TestUnknownChannelRejected(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanPremium, 0))
	svc := NewService(store)

	_, _, err := svc.Authorize(context.Background(), 1, []string{"carrier-pigeon"})
	var unknown *UnknownChannelError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "carrier-pigeon", unknown.Channel)
}

func TestCheckoutCompletedUpgradesAndResetsUsage(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanBasic, 20))
	svc := NewService(store)

	updated, err := svc.ApplyCheckoutCompleted(context.Background(), "basic@example.test", "pro", "cus_123")
	require.NoError(t, err)
	assert.True(t, updated)

	u := store.get(1)
	assert.Equal(t, plans.PlanPro, u.Plan)
	assert.Equal(t, 0, u.UsageCount)
	require.NotNil(t, u.StripeCustomerID)
	assert.Equal(t, "cus_123", *u.StripeCustomerID)
}

func TestCheckoutCompletedUnknownSubjectIsNoop(t *testing.T) {
	svc := NewService(newMemStore())

	updated, err := svc.ApplyCheckoutCompleted(context.Background(), "ghost@example.test", "pro", "")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestCheckoutCompletedRejectsInvalidPlan(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanBasic, 0))
	svc := NewService(store)
	ctx := context.Background()

	_, err := svc.ApplyCheckoutCompleted(ctx, "basic@example.test", "platinum", "")
	require.Error(t, err)

	// free is not a purchasable target either
	_, err = svc.ApplyCheckoutCompleted(ctx, "basic@example.test", "free", "")
	require.Error(t, err)
	assert.Equal(t, plans.PlanBasic, store.get(1).Plan)
}

func TestSubscriptionCanceledDowngradesToBasic(t *testing.T) {
	u := planUser(1, plans.PlanPro, 42)
	cus := "cus_999"
	u.StripeCustomerID = &cus
	store := newMemStore(u)
	svc := NewService(store)

	updated, err := svc.ApplySubscriptionCanceled(context.Background(), "", "cus_999")
	require.NoError(t, err)
	assert.True(t, updated)
	assert.Equal(t, plans.PlanBasic, store.get(1).Plan)
	assert.Equal(t, 0, store.get(1).UsageCount)
}

func TestSubscriptionCanceledUnknownSubjectIsNoop(t *testing.T) {
	svc := NewService(newMemStore())

	updated, err := svc.ApplySubscriptionCanceled(context.Background(), "ghost@example.test", "cus_void")
	require.NoError(t, err)
	assert.False(t, updated)
}

func TestConcurrentConsumeNeverExceedsCeiling(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanBasic, 19))
	svc := NewService(store)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Consume(ctx, 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	successes := 0
	quotaFailures := 0
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		var quota *QuotaExceededError
		if errors.As(err, &quota) {
			quotaFailures++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, successes, "exactly one request should take the last slot")
	assert.Equal(t, workers-1, quotaFailures)
	assert.Equal(t, 20, store.get(1).UsageCount)
}

func TestResetAllIsIdempotent(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanBasic, 20), freeUser(2))
	svc := NewService(store)
	ctx := context.Background()

	count, err := svc.ResetAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Equal(t, 0, store.get(1).UsageCount)
	assert.Equal(t, 3, store.get(2).TrialRemaining)

	count, err = svc.ResetAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Equal(t, 0, store.get(1).UsageCount)
}

// gatedStore parks the first GetByID until released, holding its caller
// mid-flight inside the account lock.
type gatedStore struct {
	*memStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *gatedStore) GetByID(ctx context.Context, id uint) (*users.User, error) {
	s.once.Do(func() {
		close(s.entered)
		<-s.release
	})
	return s.memStore.GetByID(ctx, id)
}

func TestResetAllWaitsForInFlightConsume(t *testing.T) {
	inner := newMemStore(planUser(1, plans.PlanBasic, 5))
	store := &gatedStore{
		memStore: inner,
		entered:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	svc := NewService(store)
	ctx := context.Background()

	consumeDone := make(chan struct{})
	go func() {
		defer close(consumeDone)
		if _, err := svc.Consume(ctx, 1); err != nil {
			t.Error("Consume:", err)
		}
	}()
	<-store.entered

	resetDone := make(chan struct{})
	go func() {
		defer close(resetDone)
		if _, err := svc.ResetAll(ctx); err != nil {
			t.Error("ResetAll:", err)
		}
	}()

	select {
	case <-resetDone:
		t.Fatal("ResetAll finished while a Consume held its account")
	case <-time.After(20 * time.Millisecond):
	}

	close(store.release)
	<-consumeDone
	<-resetDone

	// The increment landed first, then the reset zeroed it; the reset is
	// never silently overwritten.
	assert.Equal(t, 0, inner.get(1).UsageCount)
}

func TestAccountLocksDoNotAccumulate(t *testing.T) {
	store := newMemStore(planUser(1, plans.PlanPremium, 0), planUser(2, plans.PlanPremium, 0))
	svc := NewService(store)
	ctx := context.Background()

	for id := uint(1); id <= 2; id++ {
		for i := 0; i < 3; i++ {
			_, err := svc.Consume(ctx, id)
			require.NoError(t, err)
		}
	}

	svc.mu.Lock()
	held := len(svc.locks)
	svc.mu.Unlock()
	assert.Equal(t, 0, held, "idle accounts should not retain lock entries")
}

func TestLazyMonthBoundaryReset(t *testing.T) {
	u := planUser(1, plans.PlanBasic, 20)
	u.LastReset = time.Date(2025, time.March, 28, 12, 0, 0, 0, time.UTC)
	store := newMemStore(u)
	svc := NewService(store)
	svc.now = func() time.Time {
		return time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)
	}

	// Usage from last month counts as zero; the consume succeeds.
	updated, err := svc.Consume(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.UsageCount)
	assert.Equal(t, 1, store.get(1).UsageCount)
	assert.True(t, store.get(1).LastReset.After(u.LastReset))
}
