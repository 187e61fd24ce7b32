package sale

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pos_gateway/internal/posapi"
)

// ErrSubmissionInFlight is returned when Submit is called while a previous
// submission has not finished. Double-clicking "pay" must not create two
// sale records.
var ErrSubmissionInFlight = errors.New("sale submission already in flight")

// Service submits sales to the POS API and lists the sales history.
type Service struct {
	api      *posapi.Client
	logger   *zap.Logger
	inFlight atomic.Bool
}

// NewService creates a new Service.
func NewService(api *posapi.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}

	return &Service{
		api:    api,
		logger: logger,
	}
}

// Submit validates and formats the raw cart, then creates the sale record
// with a single request. Validation failures never reach the network.
// Submissions are not retried automatically; the caller decides whether to
// re-invoke.
func (s *Service) Submit(ctx context.Context, in SaleInput) (*Receipt, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer s.inFlight.Store(false)

	ref := uuid.NewString()

	payload, err := Format(in)
	if err != nil {
		s.logger.Warn("sale rejected before submission",
			zap.String("submission_id", ref), zap.Error(err))
		return nil, err
	}

	s.logger.Info("submitting sale",
		zap.String("submission_id", ref),
		zap.Int("customer_id", int(payload.CustomerID)),
		zap.Int("lines", len(payload.Products)),
		zap.Float64("subtotal", payload.Subtotal),
	)

	ack, err := s.api.InsertSale(ctx, payload)
	if err != nil {
		s.logger.Error("sale submission failed",
			zap.String("submission_id", ref), zap.Error(err))
		return nil, err
	}

	s.logger.Info("sale created",
		zap.String("submission_id", ref),
		zap.Int("sale_id", ack.SaleID.Int()),
	)

	return &Receipt{Reference: ref, Ack: ack, Payload: payload}, nil
}

// History fetches the sales history and applies the filter gateway-side,
// accumulating metadata over the matches.
func (s *Service) History(ctx context.Context, f HistoryFilter) ([]posapi.SaleRecord, HistoryMetadata, error) {
	all, err := s.api.AllSales(ctx)
	if err != nil {
		s.logger.Error("failed to fetch sales history", zap.Error(err))
		return nil, HistoryMetadata{}, err
	}

	filtered := make([]posapi.SaleRecord, 0, len(all))
	metadata := HistoryMetadata{}

	for _, rec := range all {
		if f.CustomerID != 0 && rec.CustomerID.Int() != f.CustomerID {
			continue
		}
		if f.Status != "" && rec.Status != f.Status {
			continue
		}
		if !f.From.IsZero() || !f.To.IsZero() {
			date, ok := posapi.ParseTimestamp(rec.Date)
			if !ok {
				continue
			}
			if !f.From.IsZero() && date.Before(f.From) {
				continue
			}
			if !f.To.IsZero() && date.After(f.To) {
				continue
			}
		}

		filtered = append(filtered, rec)
		metadata.Quantity++
		metadata.TotalAmount += rec.Subtotal.Float64()
	}

	s.logger.Info("sales history filtered",
		zap.Int("customer_filter", f.CustomerID),
		zap.String("status_filter", f.Status),
		zap.Int("results_count", len(filtered)),
	)

	return filtered, metadata, nil
}
