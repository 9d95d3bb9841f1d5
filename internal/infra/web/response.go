// Package web holds the HTTP plumbing shared by every module handler: the
// response envelope, error mapping, body decoding and query parsing.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Envelope is the shape of every JSON response.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Message    string      `json:"message"`
}

func Respond(w http.ResponseWriter, status int, data interface{}, message string) {
	write(w, status, Envelope{Success: true, Data: data, Message: message})
}

func RespondPage(w http.ResponseWriter, data interface{}, p Pagination, message string) {
	write(w, http.StatusOK, Envelope{Success: true, Data: data, Pagination: &p, Message: message})
}

// Fail maps err to a status code and writes the error envelope. Errors that
// are not part of the apperr taxonomy are logged and hidden from the caller.
func Fail(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	status := StatusOf(err)
	msg, ok := apperr.Message(err)
	if !ok || status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		msg = "internal server error"
	}
	write(w, status, Envelope{Success: false, Message: msg})
}

// StatusOf returns the HTTP status for an error kind.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrReference),
		errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes an error envelope without going through the taxonomy.
// Middleware uses it for responses such as 429.
func WriteError(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message})
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
