package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/motordesk/backend/internal/offers"
	"github.com/motordesk/backend/internal/pricing"
	"github.com/motordesk/backend/pkg/db/models"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
	"github.com/motordesk/backend/pkg/redis"
)

const snapshotKeyName = "storefront"

// Service assembles the public storefront: listings priced against
// their offers, featured picks, and the offer highlights rail.
type Service interface {
	Storefront(ctx context.Context) (*Snapshot, error)
	VehicleStorefront(ctx context.Context, vehicleID uuid.UUID) (*StorefrontVehicle, error)
	Refresh(ctx context.Context) (*Snapshot, error)
	Invalidate(ctx context.Context) error
}

type service struct {
	vehicleRepo vehicleReader
	offerRepo   offerReader
	cache       snapshotCache
	ttl         time.Duration
	logg        *logger.Logger
	group       singleflight.Group
	now         func() time.Time
}

// NewService constructs the storefront service. cache may be nil, in
// which case every read rebuilds the snapshot.
func NewService(vehicleRepo vehicleReader, offerRepo offerReader, cache snapshotCache, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if vehicleRepo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if offerRepo == nil {
		return nil, fmt.Errorf("offer repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		vehicleRepo: vehicleRepo,
		offerRepo:   offerRepo,
		cache:       cache,
		ttl:         ttl,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// Storefront returns the cached snapshot, rebuilding it on a miss.
// Concurrent misses collapse into a single rebuild.
func (s *service) Storefront(ctx context.Context) (*Snapshot, error) {
	if cached := s.readCache(ctx); cached != nil {
		return cached, nil
	}

	result, err, _ := s.group.Do(snapshotKeyName, func() (any, error) {
		if cached := s.readCache(ctx); cached != nil {
			return cached, nil
		}
		return s.rebuild(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// VehicleStorefront prices a single listing against its offers.
func (s *service) VehicleStorefront(ctx context.Context, vehicleID uuid.UUID) (*StorefrontVehicle, error) {
	vehicle, err := s.vehicleRepo.FindDetail(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle detail")
	}
	// Deactivated listings stay out of the public surface.
	if !vehicle.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
	}

	vehicleOffers, err := s.offerRepo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicle offers")
	}
	return NewStorefrontVehicle(vehicle, vehicleOffers, s.now()), nil
}

// Refresh rebuilds the snapshot unconditionally and recaches it.
func (s *service) Refresh(ctx context.Context) (*Snapshot, error) {
	return s.rebuild(ctx)
}

// Invalidate drops the cached snapshot so the next read rebuilds.
func (s *service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, s.cache.CacheKey("catalog", snapshotKeyName)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "drop storefront cache")
	}
	return nil
}

func (s *service) rebuild(ctx context.Context) (*Snapshot, error) {
	vehicleRows, err := s.vehicleRepo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicles")
	}
	offerRows, err := s.offerRepo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}

	snapshot := s.assemble(vehicleRows, offerRows)
	s.writeCache(ctx, snapshot)
	return snapshot, nil
}

// assemble builds the snapshot from raw rows. offerRows must be in
// creation order so first-valid-wins pricing holds per vehicle.
func (s *service) assemble(vehicleRows []models.Vehicle, offerRows []models.Offer) *Snapshot {
	now := s.now()

	byVehicle := make(map[uuid.UUID][]models.Offer)
	for _, offer := range offerRows {
		byVehicle[offer.VehicleID] = append(byVehicle[offer.VehicleID], offer)
	}

	entries := make([]StorefrontVehicle, 0, len(vehicleRows))
	names := make(map[uuid.UUID]string, len(vehicleRows))
	for i := range vehicleRows {
		vehicle := &vehicleRows[i]
		if !vehicle.IsActive {
			continue
		}
		names[vehicle.ID] = vehicle.Name
		entries = append(entries, *NewStorefrontVehicle(vehicle, byVehicle[vehicle.ID], now))
	}
	SortVehicles(entries, "name", "asc")

	featured := make([]StorefrontVehicle, 0)
	for _, entry := range entries {
		if entry.IsFeatured {
			featured = append(featured, entry)
		}
	}

	highlights := make([]OfferHighlight, 0)
	for i := range offerRows {
		offer := &offerRows[i]
		if !pricing.IsOfferCurrentlyValid(*offer, now) {
			continue
		}
		highlight := OfferHighlight{OfferDTO: *offers.NewOfferDTO(offer, now)}
		// A highlight survives its listing being removed; it just
		// carries no vehicle context.
		if name, ok := names[offer.VehicleID]; ok {
			highlight.VehicleName = &name
			for _, entry := range entries {
				if entry.ID == offer.VehicleID {
					final := entry.FinalPrice
					highlight.FinalPrice = &final
					break
				}
			}
		}
		highlights = append(highlights, highlight)
	}

	return &Snapshot{
		Vehicles:         entries,
		FeaturedVehicles: featured,
		FeaturedOffers:   highlights,
		GeneratedAt:      now,
	}
}

// SortVehicles orders listings in place. String columns compare
// case-insensitively, numeric columns by value; the sort is stable so
// ties keep their prior order. Unknown columns leave the order alone.
func SortVehicles(entries []StorefrontVehicle, by, direction string) {
	var less func(a, b *StorefrontVehicle) bool
	switch by {
	case "name":
		less = func(a, b *StorefrontVehicle) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "brand":
		less = func(a, b *StorefrontVehicle) bool {
			return strings.ToLower(a.Brand) < strings.ToLower(b.Brand)
		}
	case "price":
		less = func(a, b *StorefrontVehicle) bool {
			return a.FinalPrice.LessThan(b.FinalPrice)
		}
	case "year":
		less = func(a, b *StorefrontVehicle) bool {
			return a.Year < b.Year
		}
	default:
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if direction == "desc" {
			return less(&entries[j], &entries[i])
		}
		return less(&entries[i], &entries[j])
	})
}

func (s *service) readCache(ctx context.Context) *Snapshot {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cache.CacheKey("catalog", snapshotKeyName))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logg.Warn(ctx, "storefront cache read failed: "+err.Error())
		}
		return nil
	}
	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		s.logg.Warn(ctx, "storefront cache payload corrupt, rebuilding")
		return nil
	}
	return &snapshot
}

func (s *service) writeCache(ctx context.Context, snapshot *Snapshot) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(snapshot)
	if err != nil {
		s.logg.Warn(ctx, "storefront snapshot marshal failed: "+err.Error())
		return
	}
	if err := s.cache.Set(ctx, s.cache.CacheKey("catalog", snapshotKeyName), string(payload), s.ttl); err != nil {
		s.logg.Warn(ctx, "storefront cache write failed: "+err.Error())
	}
}
