// Package zonestore holds the in-memory, observable list of map zones.
package zonestore

import (
	"io"
	"log"
	"math"
	"sort"
	"sync"

	"github.com/mapselect/mapserver/internal/domain"
)

// Change describes a single successful append.
type Change struct {
	Zone domain.Zone
	// Len is the length of the list right after the append.
	Len int
}

type subscriber struct {
	id int
	fn func(Change)
}

// Store owns the zone list. Order is insertion order and is never changed.
type Store struct {
	mu     sync.RWMutex
	zones  []domain.Zone
	subs   []subscriber
	nextID int
	logger *log.Logger
}

type Option func(*Store)

// WithLogger sets the logger used for add diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		zones:  []domain.Zone{},
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Zones returns a live handle on the list. The handle sees every later add.
func (s *Store) Zones() *View {
	return &View{store: s}
}

// Add appends zone to the end of the list and notifies subscribers.
func (s *Store) Add(zone domain.Zone) (domain.Zone, error) {
	if !domain.IsFinite(zone.X, zone.Y) {
		return domain.Zone{}, domain.ErrInvalidCoordinate
	}

	s.mu.Lock()
	s.logger.Printf("zones len=%d zones=%v", len(s.zones), s.zones)
	s.zones = append(s.zones, zone)
	change := Change{Zone: zone, Len: len(s.zones)}
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	// Called without the lock so subscribers may read the store.
	for _, sub := range subs {
		sub.fn(change)
	}
	return zone, nil
}

// Subscribe registers fn to be called after every add, in subscription
// order. The returned func removes the registration and is safe to call
// more than once.
func (s *Store) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Nearest returns zones within radius of (x, y), closest first. Zones at
// equal distance keep insertion order.
func (s *Store) Nearest(x, y, radius float64) ([]domain.Zone, error) {
	if !domain.IsFinite(x, y) {
		return nil, domain.ErrInvalidCoordinate
	}
	if radius < 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, domain.ErrInvalidRadius
	}

	type hit struct {
		zone domain.Zone
		dist float64
	}

	s.mu.RLock()
	hits := make([]hit, 0)
	for _, z := range s.zones {
		d := math.Hypot(z.X-x, z.Y-y)
		if d <= radius {
			hits = append(hits, hit{zone: z, dist: d})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].dist < hits[j].dist
	})

	out := make([]domain.Zone, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.zone)
	}
	return out, nil
}

func (s *Store) subscriberCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
