package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
)

type errorBody struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, errorBody{Detail: detail})
}

// writeError maps err to a status code. Unexpected errors are logged and
// hidden behind a generic message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *common.ConflictError

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeDetail(w, http.StatusUnauthorized, "Unauthorized user")
	case errors.As(err, &conflict):
		writeDetail(w, http.StatusBadRequest, conflict.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeDetail(w, http.StatusNotFound, "Not found")
	case errors.Is(err, common.ErrorBodyTooLarge):
		writeDetail(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorImmutableField):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed",
			"error", err.Error(),
			"request_id", requestIDFrom(r.Context()),
		)
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
