package server

import (
	"encoding/json"
	"net/http"

	"github.com/fracshare/rwaledger/internal/domain"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error struct {
		Kind    domain.ErrorKind `json:"kind"`
		Message string           `json:"message"`
	} `json:"error"`
}

// statusFor maps ledger error kinds to HTTP status codes.
func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidArgument:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAlreadyExists:
		return http.StatusConflict
	case domain.KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case domain.KindInvariantViolation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	var body errorBody
	body.Error.Kind = domain.KindOf(err)
	body.Error.Message = err.Error()
	writeJSON(w, statusFor(body.Error.Kind), body)
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.Errorf(domain.KindInvalidArgument, "invalid request body: %v", err)
	}
	return nil
}
