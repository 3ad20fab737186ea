package discounts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
)

// Repository defines persistence operations for discount codes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateCode(ctx context.Context, code *models.DiscountCode) (*models.DiscountCode, error)
	FindByCode(ctx context.Context, code string) (*models.DiscountCode, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DiscountCode, error)
	ListCodes(ctx context.Context) ([]models.DiscountCode, error)
	UpdateCode(ctx context.Context, id uuid.UUID, updates map[string]any) error

	HasRedemption(ctx context.Context, customerID, codeID uuid.UUID) (bool, error)
	// IncrementRedemptionGuarded bumps times_redeemed only while the cap
	// has not been reached and reports whether the bump happened.
	IncrementRedemptionGuarded(ctx context.Context, codeID uuid.UUID) (bool, error)
	CreateRedemption(ctx context.Context, redemption *models.CustomerDiscountRedemption) error
}

// Service exposes discount code management and order-time redemption.
type Service interface {
	CreateCode(ctx context.Context, input CreateCodeInput) (*models.DiscountCode, error)
	ListCodes(ctx context.Context) ([]models.DiscountCode, error)
	DeactivateCode(ctx context.Context, id uuid.UUID) error

	// Validate checks a code for a customer at the given instant and
	// returns it when redeemable.
	Validate(ctx context.Context, code string, customerID uuid.UUID, at time.Time) (*models.DiscountCode, error)

	// Redeem consumes one redemption inside the caller's transaction.
	Redeem(ctx context.Context, tx *gorm.DB, code *models.DiscountCode, customerID, orderID uuid.UUID) error
}

// CreateCodeInput carries the fields for a new discount code. A nil
// ValidUntil leaves the code open ended.
type CreateCodeInput struct {
	Code           string
	Description    string
	DiscountType   enums.DiscountType
	Percent        *decimal.Decimal
	AmountEUR      *decimal.Decimal
	ValidFrom      time.Time
	ValidUntil     *time.Time
	IsOneTime      bool
	MaxRedemptions *int
}
