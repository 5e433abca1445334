package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/kotoba/internal/llm"
)

// ErrorResponse is the body of every non-2xx reply that carries no
// substitute payload.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, kind llm.ErrorKind, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		Kind:      string(kind),
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// statusFor maps a client error kind to the bridge's HTTP status.
func statusFor(kind llm.ErrorKind) int {
	switch kind {
	case llm.KindInvalidInput:
		return http.StatusBadRequest
	case llm.KindMissingCredential:
		return http.StatusUnauthorized
	case llm.KindTransport:
		return http.StatusGatewayTimeout
	case llm.KindAPI, llm.KindMalformedPayload:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// decodeRequest reads a JSON body into v and validates it.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, r, http.StatusRequestEntityTooLarge, llm.KindInvalidInput, "request body too large")
			return false
		}
		respondError(w, r, http.StatusBadRequest, llm.KindInvalidInput, "invalid request format")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		respondError(w, r, http.StatusBadRequest, llm.KindInvalidInput, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "validation error: " + err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	return "validation error: " + strings.Join(parts, "; ")
}
