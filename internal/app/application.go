package app

import (
	"fmt"
	"net/http"

	"github.com/mapselect/mapserver/internal/clock"
	"github.com/mapselect/mapserver/internal/domain"
	"github.com/mapselect/mapserver/internal/zonestore"
)

// Plugin is registered on an Application before it is mounted.
type Plugin interface {
	Name() string
	Install(a *Application) error
}

// Application is the root every plugin installs into. Until the zone
// plugin is installed, Zones returns a service that reports
// ErrStoreUnavailable.
type Application struct {
	installed map[string]struct{}
	order     []string
	zones     *ZoneService
	frontend  Frontend
	mounted   bool
}

// Frontend locates the built single-page app and the map images.
type Frontend struct {
	DistDir string
	MapDir  string
}

func NewApplication() *Application {
	return &Application{
		installed: make(map[string]struct{}),
		zones:     NewZoneService(nil, nil),
	}
}

// Use installs p. Each plugin name may be installed once, and only before
// Mount.
func (a *Application) Use(p Plugin) error {
	if a.mounted {
		return fmt.Errorf("install %s: application already mounted", p.Name())
	}
	if _, ok := a.installed[p.Name()]; ok {
		return fmt.Errorf("install %s: %w", p.Name(), domain.ErrAlreadyInstalled)
	}
	if err := p.Install(a); err != nil {
		return fmt.Errorf("install %s: %w", p.Name(), err)
	}
	a.installed[p.Name()] = struct{}{}
	a.order = append(a.order, p.Name())
	return nil
}

// Plugins lists installed plugin names in install order.
func (a *Application) Plugins() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

func (a *Application) Zones() *ZoneService {
	return a.zones
}

func (a *Application) Frontend() Frontend {
	return a.frontend
}

// Mount freezes the plugin set and hands the application to build, which
// returns the handler served to clients.
func (a *Application) Mount(build func(*Application) http.Handler) http.Handler {
	a.mounted = true
	return build(a)
}

// ZonePlugin installs a zone store.
type ZonePlugin struct {
	Store  *zonestore.Store
	Clock  clock.Clock
	Bounds domain.Bounds
}

func (ZonePlugin) Name() string { return "zones" }

func (p ZonePlugin) Install(a *Application) error {
	if p.Store == nil {
		return domain.ErrStoreUnavailable
	}
	a.zones = NewZoneService(p.Store, p.Clock, WithBounds(p.Bounds))
	return nil
}

// FrontendPlugin registers the static frontend. The application treats it
// as opaque; only the HTTP layer reads it.
type FrontendPlugin struct {
	DistDir string
	MapDir  string
}

func (FrontendPlugin) Name() string { return "frontend" }

func (p FrontendPlugin) Install(a *Application) error {
	a.frontend = Frontend{DistDir: p.DistDir, MapDir: p.MapDir}
	return nil
}
