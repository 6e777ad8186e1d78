package zonestore

import "github.com/mapselect/mapserver/internal/domain"

// View is a read-only handle on a Store's zone list.
type View struct {
	store *Store
}

// Snapshot copies the current list. The result is never nil.
func (v *View) Snapshot() []domain.Zone {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	out := make([]domain.Zone, len(v.store.zones))
	copy(out, v.store.zones)
	return out
}

func (v *View) Len() int {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return len(v.store.zones)
}

// Get returns the first zone with the given id.
func (v *View) Get(id string) (domain.Zone, bool) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	for _, z := range v.store.zones {
		if z.ID == id {
			return z, true
		}
	}
	return domain.Zone{}, false
}
