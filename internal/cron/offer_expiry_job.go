package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/motordesk/backend/pkg/logger"
)

// offerSweeper is the slice of the offer repository this job needs.
type offerSweeper interface {
	DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

// OfferExpiryJobParams configure the expired offer sweep.
type OfferExpiryJobParams struct {
	Logger *logger.Logger
	Offers offerSweeper
}

// NewOfferExpiryJob builds the job that flips is_active off for offers
// whose validity window has ended. Validity is always computed against
// the clock, so the sweep is housekeeping: it keeps admin listings and
// filters honest rather than changing storefront pricing.
func NewOfferExpiryJob(params OfferExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Offers == nil {
		return nil, fmt.Errorf("offer repository required")
	}
	return &offerExpiryJob{logg: params.Logger, offers: params.Offers, now: time.Now}, nil
}

type offerExpiryJob struct {
	logg   *logger.Logger
	offers offerSweeper
	now    func() time.Time
}

func (j *offerExpiryJob) Name() string { return "offer-expiry" }

func (j *offerExpiryJob) Run(ctx context.Context) error {
	swept, err := j.offers.DeactivateExpired(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate expired offers: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": swept})
	j.logg.Info(logCtx, "expired offer sweep complete")
	return nil
}
