package cron

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mammamia/pizzeria-backend/pkg/db/models"
	"github.com/mammamia/pizzeria-backend/pkg/enums"
	pkgerrors "github.com/mammamia/pizzeria-backend/pkg/errors"
	"github.com/mammamia/pizzeria-backend/pkg/logger"
)

type stubStaleReader struct {
	orders []models.CustomerOrder
	cutoff time.Time
}

func (s *stubStaleReader) FindStaleOrders(ctx context.Context, status enums.OrderStatus, placedBefore time.Time) ([]models.CustomerOrder, error) {
	s.cutoff = placedBefore
	return s.orders, nil
}

type stubCanceller struct {
	cancelled []uuid.UUID
	failFor   map[uuid.UUID]error
}

func (s *stubCanceller) Cancel(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error) {
	if err, ok := s.failFor[id]; ok {
		return nil, err
	}
	s.cancelled = append(s.cancelled, id)
	return &models.CustomerOrder{ID: id, Status: enums.OrderStatusCancelled}, nil
}

func TestStaleOrderJobCancelsEverythingPastTTL(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	reader := &stubStaleReader{orders: []models.CustomerOrder{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}}
	canceller := &stubCanceller{}

	job, err := NewStaleOrderJob(StaleOrderJobParams{
		Logger: logg,
		Reader: reader,
		Orders: canceller,
		TTL:    24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(canceller.cancelled) != 2 {
		t.Fatalf("expected 2 cancellations, got %d", len(canceller.cancelled))
	}
	if time.Since(reader.cutoff) < 24*time.Hour {
		t.Fatalf("cutoff %s not a full TTL in the past", reader.cutoff)
	}
}

func TestStaleOrderJobKeepsGoingPastFailures(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "cron-test"})
	bad := uuid.New()
	good := uuid.New()
	reader := &stubStaleReader{orders: []models.CustomerOrder{{ID: bad}, {ID: good}}}
	canceller := &stubCanceller{failFor: map[uuid.UUID]error{
		bad: pkgerrors.New(pkgerrors.CodeStateConflict, "already preparing"),
	}}

	job, err := NewStaleOrderJob(StaleOrderJobParams{
		Logger: logg,
		Reader: reader,
		Orders: canceller,
	})
	if err != nil {
		t.Fatalf("construct job: %v", err)
	}
	runErr := job.Run(context.Background())
	if runErr == nil {
		t.Fatalf("expected combined error for the failed cancel")
	}
	if len(canceller.cancelled) != 1 || canceller.cancelled[0] != good {
		t.Fatalf("expected the healthy order to still be cancelled")
	}
}
