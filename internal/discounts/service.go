package discounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mammamia/pizzeria-backend/pkg/db"
	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

type service struct {
	repo Repository
}

// NewService builds a discounts service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discounts repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCode(ctx context.Context, input CreateCodeInput) (*models.DiscountCode, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "code required")
	}
	if !input.DiscountType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown discount type")
	}
	switch input.DiscountType {
	case enums.DiscountTypePercentage:
		if input.Percent == nil || input.Percent.Sign() <= 0 || input.Percent.GreaterThan(oneHundred) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage must be between 0 and 100")
		}
		if input.AmountEUR != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage code cannot carry an amount")
		}
	case enums.DiscountTypeFixedAmount:
		if input.AmountEUR == nil || input.AmountEUR.Sign() <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
		}
		if input.Percent != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "fixed amount code cannot carry a percentage")
		}
	}
	if input.ValidUntil != nil && !input.ValidUntil.After(input.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validity window must end after it starts")
	}
	if input.MaxRedemptions != nil && *input.MaxRedemptions <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "max redemptions must be positive")
	}

	row := &models.DiscountCode{
		Code:           code,
		Description:    input.Description,
		DiscountType:   input.DiscountType,
		Percent:        input.Percent,
		AmountEUR:      input.AmountEUR,
		ValidFrom:      input.ValidFrom,
		ValidUntil:     input.ValidUntil,
		IsOneTime:      input.IsOneTime,
		MaxRedemptions: input.MaxRedemptions,
		IsActive:       true,
	}
	created, err := s.repo.CreateCode(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, "discount_codes_code_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create discount code")
	}
	return created, nil
}

func (s *service) ListCodes(ctx context.Context) ([]models.DiscountCode, error) {
	codes, err := s.repo.ListCodes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list discount codes")
	}
	return codes, nil
}

func (s *service) DeactivateCode(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "discount code not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load discount code")
	}
	if err := s.repo.UpdateCode(ctx, id, map[string]any{"is_active": false}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate discount code")
	}
	return nil
}

// Validate rejects the code with a validation error unless it is active,
// inside its window and under its cap. One-time codes additionally fail
// when this customer redeemed them before. Orders carrying a bad code
// fail outright rather than silently dropping it.
func (s *service) Validate(ctx context.Context, code string, customerID uuid.UUID, at time.Time) (*models.DiscountCode, error) {
	row, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown discount code")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup discount code")
	}
	if !row.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is no longer active")
	}
	if at.Before(row.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is not valid right now")
	}
	if row.ValidUntil != nil && at.After(*row.ValidUntil) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code is not valid right now")
	}
	if row.MaxRedemptions != nil && row.TimesRedeemed >= *row.MaxRedemptions {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code has been fully redeemed")
	}
	if row.IsOneTime {
		used, err := s.repo.HasRedemption(ctx, customerID, row.ID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check prior redemption")
		}
		if used {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount code already used by this customer")
		}
	}
	return row, nil
}

func (s *service) Redeem(ctx context.Context, tx *gorm.DB, code *models.DiscountCode, customerID, orderID uuid.UUID) error {
	repo := s.repo.WithTx(tx)

	if code.IsOneTime {
		// Recheck inside the transaction so two concurrent orders cannot
		// both consume a one-time code.
		used, err := repo.HasRedemption(ctx, customerID, code.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check prior redemption")
		}
		if used {
			return pkgerrors.New(pkgerrors.CodeValidation, "discount code already used by this customer")
		}
	}

	bumped, err := repo.IncrementRedemptionGuarded(ctx, code.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment redemption counter")
	}
	if !bumped {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount code has been fully redeemed")
	}

	redemption := &models.CustomerDiscountRedemption{
		CustomerID:     customerID,
		DiscountCodeID: code.ID,
		OrderID:        orderID,
	}
	if err := repo.CreateRedemption(ctx, redemption); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record redemption")
	}
	return nil
}

// Amount computes what a code takes off the given remainder. Percentage
// codes round half-up to cents; fixed codes never exceed the remainder.
func Amount(code *models.DiscountCode, remainder decimal.Decimal) decimal.Decimal {
	if remainder.Sign() <= 0 {
		return decimal.Zero
	}
	switch code.DiscountType {
	case enums.DiscountTypePercentage:
		if code.Percent == nil {
			return decimal.Zero
		}
		return remainder.Mul(*code.Percent).Div(oneHundred).Round(2)
	case enums.DiscountTypeFixedAmount:
		if code.AmountEUR == nil {
			return decimal.Zero
		}
		if code.AmountEUR.GreaterThan(remainder) {
			return remainder
		}
		return *code.AmountEUR
	}
	return decimal.Zero
}
