package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/itemkeeper/internal/common"
	"github.com/dmitrijs2005/itemkeeper/internal/server/models"
)

const maxBodySize = 1 << 20

// readBody reads at most maxBodySize bytes; a larger body yields
// common.ErrorBodyTooLarge.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, common.ErrorBodyTooLarge
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}
	return b, nil
}

// decodeStrict decodes a single JSON object, rejecting unknown fields.
func decodeStrict(w http.ResponseWriter, r *http.Request, v any) error {
	b, err := readBody(w, r)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request payload: %v", common.ErrorValidation, err)
	}
	if t, err := dec.Token(); err != io.EOF || t != nil {
		return fmt.Errorf("%w: request body must only contain a single JSON object", common.ErrorValidation)
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q is not an integer", common.ErrorValidation, raw)
	}
	return id, nil
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req UserPost
	if err := decodeStrict(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	draft, err := req.draft()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Create(r.Context(), sessionFrom(r.Context()), identityFrom(r.Context()), draft)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userDB(user))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	user, err := s.users.Get(r.Context(), sessionFrom(r.Context()), identityFrom(r.Context()), id)
	if errors.Is(err, common.ErrorNotFound) {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("User %d does not exist", id))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, userDB(user))
}

func (s *Server) createItem(w http.ResponseWriter, r *http.Request) {
	var req ItemPost
	if err := decodeStrict(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	draft, err := req.draft()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.items.Create(r.Context(), sessionFrom(r.Context()), identityFrom(r.Context()), draft)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemDB(item))
}

func (s *Server) patchItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	patch, err := models.DecodeItemPatch(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	item, err := s.items.Patch(r.Context(), sessionFrom(r.Context()), identityFrom(r.Context()), id, patch)
	if errors.Is(err, common.ErrorNotFound) {
		writeDetail(w, http.StatusNotFound, fmt.Sprintf("Item %d does not exist", id))
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itemDB(item))
}
