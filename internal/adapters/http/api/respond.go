package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/titanic/internal/adapters/repository"
	"github.com/okian/titanic/internal/domain/scoring"
)

type errorResponse struct {
	Error string `json:"error"`
}

type validationResponse struct {
	Error          string   `json:"error"`
	RequiredFields []string `json:"required_fields"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// mapError translates domain sentinel errors to HTTP status codes.
func mapError(w http.ResponseWriter, err error) {
	var (
		fe      *scoring.FieldError
		tooLong *http.MaxBytesError
	)
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:          fe.Error(),
			RequiredFields: scoring.RequiredFields,
		})
	case errors.As(err, &tooLong):
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("request body exceeds %d bytes", tooLong.Limit))
	case errors.Is(err, scoring.ErrMalformedInput), errors.Is(err, ErrBadRequest):
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:          "Cuerpo JSON inválido",
			RequiredFields: scoring.RequiredFields,
		})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Pasajero no encontrado")
	case errors.Is(err, ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, ErrInternal.Error())
	}
}
