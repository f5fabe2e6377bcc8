package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Veraticus/cashiering/internal/common"
	"github.com/Veraticus/cashiering/internal/delivery"
	"github.com/go-chi/chi/v5/middleware"
)

const bodyLimit = 1 << 20

var (
	errBadRequest  = errors.New("invalid request")
	errNoSelection = errors.New("no items selected")
	errIncomplete  = errors.New("delivery needs an address and a carrier")
)

type errResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		s.logger.Error("json encode error", "req_id", middleware.GetReqID(r.Context()), "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	s.logger.Warn("http error",
		"req_id", middleware.GetReqID(r.Context()),
		"status", status,
		"error", err)
	s.writeJSON(w, r, status, errResponse{Error: msg})
}

func (s *Server) writeDocument(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, delivery.ErrNotReviewing),
		errors.Is(err, errNoSelection),
		errors.Is(err, errIncomplete):
		return http.StatusConflict
	case errors.Is(err, delivery.ErrUnknownOption),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON[T any](w http.ResponseWriter, r *http.Request, dst *T) error {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid json", errBadRequest)
	}
	if err := dec.Decode(new(struct{})); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", errBadRequest)
	}
	return nil
}
