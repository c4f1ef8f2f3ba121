package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/motordesk/backend/pkg/db/models"
)

// vehicleReader is the slice of the vehicle repository the storefront
// needs.
type vehicleReader interface {
	FindDetail(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	ListAll(ctx context.Context) ([]models.Vehicle, error)
}

// offerReader is the slice of the offer repository the storefront
// needs.
type offerReader interface {
	ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]models.Offer, error)
	ListAll(ctx context.Context) ([]models.Offer, error)
}

// snapshotCache is the cache surface the storefront uses. The redis
// client satisfies it; a nil cache disables caching entirely.
type snapshotCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}
