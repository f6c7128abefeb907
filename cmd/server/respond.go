package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"go.uber.org/zap"

	"github.com/newindiatimber/timbercraft/internal/catalog"
	"github.com/newindiatimber/timbercraft/internal/inquiry"
	"github.com/newindiatimber/timbercraft/internal/seo"
	"github.com/newindiatimber/timbercraft/internal/validate"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decodeJSON reads a single JSON object from the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// writeStoreError maps store errors onto HTTP statuses. Anything unexpected is
// logged and reported as 500 without details.
func (s *server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, inquiry.ErrNotFound), errors.Is(err, seo.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, inquiry.ErrInvalidTransition), errors.Is(err, catalog.ErrSlugTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// clientIP is the request address without the port. RealIP has already applied
// forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
