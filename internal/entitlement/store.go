package entitlement

import (
	"context"
	"errors"
	"time"

	"ecomcopy-app/internal/domain/plans"
	"ecomcopy-app/internal/domain/users"

	"gorm.io/gorm"
)

var ErrAccountNotFound = errors.New("account not found")

// AccountStore is the persistence boundary of the state machine. The
// service serializes all writers per account, so implementations only need
// plain reads and field updates.
type AccountStore interface {
	GetByID(ctx context.Context, id uint) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	GetByStripeCustomer(ctx context.Context, customerID string) (*users.User, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	ResetAllUsage(ctx context.Context, now time.Time) (int64, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetByID(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	var u users.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) GetByStripeCustomer(ctx context.Context, customerID string) (*users.User, error) {
	var u users.User
	if err := s.db.WithContext(ctx).Where("stripe_customer_id = ?", customerID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (s *GormStore) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (s *GormStore) ResetAllUsage(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&users.User{}).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Updates(map[string]interface{}{"usage_count": 0, "last_reset": now})
	if res.Error != nil {
		return 0, res.Error
	}
	// Free accounts get their trial allowance back with the new period.
	if err := s.db.WithContext(ctx).Model(&users.User{}).
		Where("plan = ?", plans.PlanFree).
		Update("trial_remaining", plans.RuleFor(plans.PlanFree).MaxGenerates).Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}
