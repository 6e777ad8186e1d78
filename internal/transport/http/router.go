package http

import (
	"log"
	"net/http"

	"github.com/mapselect/mapserver/internal/app"
)

// NewRouter builds the handler an Application is mounted on. Closing drain
// ends open zone streams.
func NewRouter(a *app.Application, corsOrigins []string, logger *log.Logger, drain *Drain) http.Handler {
	zones := a.Zones()
	frontend := a.Frontend()

	mux := http.NewServeMux()
	mux.HandleFunc("/health", HealthHandler)
	mux.Handle("/zones", HandleZones(zones))
	mux.Handle("/zones/", HandleZoneLookup(zones, drain))
	if frontend.MapDir != "" {
		mux.Handle("/map/", HandleMapImages(frontend.MapDir))
	}
	if frontend.DistDir != "" {
		mux.Handle("/", HandleSPA(frontend.DistDir))
	} else {
		mux.Handle("/", NotFoundHandler())
	}

	return RequestLogger(CORS(corsOrigins, mux), logger)
}
