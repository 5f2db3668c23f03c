package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/DioGolang/GoUniversity/internal/application/port/outbound"
	"github.com/DioGolang/GoUniversity/internal/application/usecase/academic"
	"github.com/DioGolang/GoUniversity/internal/domain/entity"
	"github.com/go-chi/chi/v5"
)

type errorResponse struct {
	Error      string             `json:"error"`
	Violations []entity.Violation `json:"violations,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeRead answers a failed read. Absence is 404; anything else is a server error.
func writeRead(w http.ResponseWriter, data any, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, data)
	case errors.Is(err, outbound.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeResult maps a write outcome to a status. ok is used when the write committed;
// body is sent along with it unless ok is 204.
func writeResult(w http.ResponseWriter, res academic.WriteResult, ok int, body any) {
	switch res.State {
	case academic.Committed:
		if ok == http.StatusNoContent {
			w.WriteHeader(ok)
			return
		}
		writeJSON(w, ok, body)
	case academic.Rejected:
		resp := errorResponse{Error: res.Err.Error()}
		var verr *entity.ValidationError
		if errors.As(res.Err, &verr) {
			resp.Error = "validation failed"
			resp.Violations = verr.Violations
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case academic.NotFound, academic.NotFoundOnRecheck:
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
	case academic.FatalConflict:
		writeError(w, http.StatusConflict, outbound.ErrConcurrencyConflict.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// pathID reads a positive integer route parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

// bindID reconciles the route id with the body id. A body without an id takes the
// route's; a different one is treated as an unknown resource.
func bindID(w http.ResponseWriter, r *http.Request, bodyID *int64) bool {
	id, ok := pathID(r, "id")
	if !ok || (*bodyID != 0 && *bodyID != id) {
		writeError(w, http.StatusNotFound, outbound.ErrNotFound.Error())
		return false
	}
	*bodyID = id
	return true
}
