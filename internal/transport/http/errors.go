package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mapselect/mapserver/internal/domain"
)

const (
	codeMethodNotAllowed     = "method_not_allowed"
	codeNotFound             = "not_found"
	codeInvalidRequestBody   = "invalid_request_body"
	codeMissingRequiredField = "missing_required_field"
	codeInvalidCoordinate    = "invalid_coordinate"
	codeInvalidRadius        = "invalid_radius"
	codeZoneNotFound         = "zone_not_found"
	codeStoreUnavailable     = "store_unavailable"
	codeStreamingUnsupported = "streaming_unsupported"
	codeForbidden            = "forbidden"
	codeInternalError        = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeZoneError maps service errors onto status codes.
func writeZoneError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate):
		writeError(w, http.StatusBadRequest, codeInvalidCoordinate, domain.ErrInvalidCoordinate.Error())
	case errors.Is(err, domain.ErrInvalidRadius):
		writeError(w, http.StatusBadRequest, codeInvalidRadius, domain.ErrInvalidRadius.Error())
	case errors.Is(err, domain.ErrZoneNotFound):
		writeError(w, http.StatusNotFound, codeZoneNotFound, domain.ErrZoneNotFound.Error())
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable, domain.ErrStoreUnavailable.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
