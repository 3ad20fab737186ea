package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
)

const defaultPendingOrderTTL = 24 * time.Hour

type staleOrderReader interface {
	FindStaleOrders(ctx context.Context, status enums.OrderStatus, placedBefore time.Time) ([]models.CustomerOrder, error)
}

type orderCanceller interface {
	Cancel(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error)
}

// StaleOrderJobParams configure the pending order expiry job.
type StaleOrderJobParams struct {
	Logger *logger.Logger
	Reader staleOrderReader
	Orders orderCanceller
	TTL    time.Duration
}

// NewStaleOrderJob builds the job that cancels pending orders nobody
// started preparing within the TTL.
func NewStaleOrderJob(params StaleOrderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reader == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order canceller required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultPendingOrderTTL
	}
	return &staleOrderJob{
		logg:   params.Logger,
		reader: params.Reader,
		orders: params.Orders,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

type staleOrderJob struct {
	logg   *logger.Logger
	reader staleOrderReader
	orders orderCanceller
	ttl    time.Duration
	now    func() time.Time
}

func (j *staleOrderJob) Name() string { return "stale-order-expiry" }

func (j *staleOrderJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.ttl)
	stale, err := j.reader.FindStaleOrders(ctx, enums.OrderStatusPending, cutoff)
	if err != nil {
		return fmt.Errorf("query stale pending orders: %w", err)
	}

	var errs []error
	cancelled := 0
	for _, order := range stale {
		if _, err := j.orders.Cancel(ctx, order.ID); err != nil {
			errs = append(errs, fmt.Errorf("cancel order %s: %w", order.ID, err))
			continue
		}
		cancelled++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"found":     len(stale),
		"cancelled": cancelled,
	})
	j.logg.Info(logCtx, "stale order sweep complete")
	return multierr.Combine(errs...)
}
