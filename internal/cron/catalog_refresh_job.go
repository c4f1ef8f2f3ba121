package cron

import (
	"context"
	"fmt"

	"github.com/motordesk/backend/internal/catalog"
	"github.com/motordesk/backend/pkg/logger"
)

// snapshotRefresher is the slice of the catalog service this job needs.
type snapshotRefresher interface {
	Refresh(ctx context.Context) (*catalog.Snapshot, error)
}

// CatalogRefreshJobParams configure the storefront refresh job.
type CatalogRefreshJobParams struct {
	Logger  *logger.Logger
	Catalog snapshotRefresher
}

// NewCatalogRefreshJob builds the job that rebuilds the storefront
// snapshot on cadence, keeping the cache warm between invalidations.
func NewCatalogRefreshJob(params CatalogRefreshJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	return &catalogRefreshJob{logg: params.Logger, catalog: params.Catalog}, nil
}

type catalogRefreshJob struct {
	logg    *logger.Logger
	catalog snapshotRefresher
}

func (j *catalogRefreshJob) Name() string { return "catalog-refresh" }

func (j *catalogRefreshJob) Run(ctx context.Context) error {
	snapshot, err := j.catalog.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("rebuild storefront snapshot: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"vehicles": len(snapshot.Vehicles),
		"offers":   len(snapshot.FeaturedOffers),
	})
	j.logg.Info(logCtx, "storefront snapshot refreshed")
	return nil
}
