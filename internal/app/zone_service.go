package app

import (
	"context"
	"fmt"

	"github.com/mapselect/mapserver/internal/clock"
	"github.com/mapselect/mapserver/internal/domain"
	"github.com/mapselect/mapserver/internal/zonestore"
)

// ZoneStore is what the service needs from the backing store.
type ZoneStore interface {
	Zones() *zonestore.View
	Add(zone domain.Zone) (domain.Zone, error)
	Nearest(x, y, radius float64) ([]domain.Zone, error)
	Subscribe(fn func(zonestore.Change)) func()
}

// ZoneService is the handle the rest of the application uses to reach the
// zone list. Without a store every call fails with ErrStoreUnavailable.
type ZoneService struct {
	store  ZoneStore
	clock  clock.Clock
	bounds domain.Bounds
}

type ZoneServiceOption func(*ZoneService)

// WithBounds restricts accepted coordinates.
func WithBounds(b domain.Bounds) ZoneServiceOption {
	return func(s *ZoneService) {
		s.bounds = b
	}
}

func NewZoneService(store ZoneStore, clk clock.Clock, opts ...ZoneServiceOption) *ZoneService {
	if s, ok := store.(*zonestore.Store); ok && s == nil {
		store = nil
	}
	if clk == nil {
		clk = clock.NewSystem()
	}
	svc := &ZoneService{
		store: store,
		clock: clk,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type AddZoneInput struct {
	X float64
	Y float64
}

func (s *ZoneService) ListZones(ctx context.Context) ([]domain.Zone, error) {
	if s == nil || s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.Zones().Snapshot(), nil
}

func (s *ZoneService) GetZone(ctx context.Context, id string) (domain.Zone, error) {
	if s == nil || s.store == nil {
		return domain.Zone{}, domain.ErrStoreUnavailable
	}
	zone, ok := s.store.Zones().Get(id)
	if !ok {
		return domain.Zone{}, domain.ErrZoneNotFound
	}
	return zone, nil
}

func (s *ZoneService) AddZone(ctx context.Context, in AddZoneInput) (domain.Zone, error) {
	if s == nil || s.store == nil {
		return domain.Zone{}, domain.ErrStoreUnavailable
	}
	if !domain.IsFinite(in.X, in.Y) || !s.bounds.Contains(in.X, in.Y) {
		return domain.Zone{}, domain.ErrInvalidCoordinate
	}
	if err := ctx.Err(); err != nil {
		return domain.Zone{}, err
	}

	id, err := newZoneID()
	if err != nil {
		return domain.Zone{}, err
	}
	zone, err := s.store.Add(domain.Zone{
		ID:        id,
		X:         in.X,
		Y:         in.Y,
		CreatedAt: s.clock.Now(),
	})
	if err != nil {
		return domain.Zone{}, fmt.Errorf("add zone: %w", err)
	}
	return zone, nil
}

func (s *ZoneService) NearbyZones(ctx context.Context, x, y, radius float64) ([]domain.Zone, error) {
	if s == nil || s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.Nearest(x, y, radius)
}

// Subscribe registers fn for every zone added after the call.
func (s *ZoneService) Subscribe(fn func(domain.Zone)) (func(), error) {
	if s == nil || s.store == nil {
		return nil, domain.ErrStoreUnavailable
	}
	return s.store.Subscribe(func(c zonestore.Change) {
		fn(c.Zone)
	}), nil
}
