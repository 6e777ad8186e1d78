package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mapselect/mapserver/internal/app"
	"github.com/mapselect/mapserver/internal/domain"
)

// ZoneCollection is the minimal interface needed for /zones.
type ZoneCollection interface {
	ListZones(ctx context.Context) ([]domain.Zone, error)
	AddZone(ctx context.Context, in app.AddZoneInput) (domain.Zone, error)
}

// ZoneLookup is the minimal interface needed for /zones/{id},
// /zones/nearby and /zones/stream.
type ZoneLookup interface {
	GetZone(ctx context.Context, id string) (domain.Zone, error)
	NearbyZones(ctx context.Context, x, y, radius float64) ([]domain.Zone, error)
	Subscribe(fn func(domain.Zone)) (func(), error)
}

// HandleZones returns an HTTP handler for listing and adding zones.
func HandleZones(svc ZoneCollection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			zones, err := svc.ListZones(r.Context())
			if err != nil {
				writeZoneError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toZoneResponses(zones))
		case http.MethodPost:
			var req createZoneRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			if req.X == nil || req.Y == nil {
				writeError(w, http.StatusBadRequest, codeMissingRequiredField, "x and y are required")
				return
			}
			zone, err := svc.AddZone(r.Context(), app.AddZoneInput{X: *req.X, Y: *req.Y})
			if err != nil {
				writeZoneError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, toZoneResponse(zone))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleZoneLookup returns an HTTP handler for everything below /zones/.
// Open streams end when drain closes.
func HandleZoneLookup(svc ZoneLookup, drain *Drain) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}
		segment, ok := parseZonePath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch segment {
		case "nearby":
			handleNearby(w, r, svc)
		case "stream":
			streamZones(w, r, svc, drain.Done())
		default:
			zone, err := svc.GetZone(r.Context(), segment)
			if err != nil {
				writeZoneError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, toZoneResponse(zone))
		}
	}
}

func handleNearby(w http.ResponseWriter, r *http.Request, svc ZoneLookup) {
	q := r.URL.Query()
	var vals [3]float64
	for i, name := range []string{"x", "y", "radius"} {
		raw := q.Get(name)
		if raw == "" {
			writeError(w, http.StatusBadRequest, codeMissingRequiredField, name+" is required")
			return
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			code := codeInvalidCoordinate
			if name == "radius" {
				code = codeInvalidRadius
			}
			writeError(w, http.StatusBadRequest, code, "invalid "+name)
			return
		}
		vals[i] = v
	}

	zones, err := svc.NearbyZones(r.Context(), vals[0], vals[1], vals[2])
	if err != nil {
		writeZoneError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toZoneResponses(zones))
}

const (
	streamBuffer    = 64
	streamKeepAlive = 15 * time.Second
)

// streamZones sends every added zone as a server-sent event until the
// client goes away or done closes. A client that falls more than
// streamBuffer events behind loses the overflow.
func streamZones(w http.ResponseWriter, r *http.Request, svc ZoneLookup, done <-chan struct{}) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, codeStreamingUnsupported, "streaming unsupported")
		return
	}

	events := make(chan domain.Zone, streamBuffer)
	unsubscribe, err := svc.Subscribe(func(z domain.Zone) {
		select {
		case events <- z:
		default:
		}
	})
	if err != nil {
		writeZoneError(w, err)
		return
	}
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-done:
			return
		case <-ticker.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		case z := <-events:
			payload, err := json.Marshal(toZoneResponse(z))
			if err != nil {
				continue
			}
			if _, err := w.Write([]byte("event: zone\ndata: " + string(payload) + "\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

type createZoneRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type zoneResponse struct {
	ID        string    `json:"id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	CreatedAt time.Time `json:"created_at"`
}

func toZoneResponse(z domain.Zone) zoneResponse {
	return zoneResponse{
		ID:        z.ID,
		X:         z.X,
		Y:         z.Y,
		CreatedAt: z.CreatedAt,
	}
}

func toZoneResponses(zones []domain.Zone) []zoneResponse {
	resp := make([]zoneResponse, 0, len(zones))
	for _, z := range zones {
		resp = append(resp, toZoneResponse(z))
	}
	return resp
}

func parseZonePath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 {
		return "", false
	}
	if parts[0] != "zones" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
