package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zapponejosh/lunar-calendar/internal/database"
	"github.com/zapponejosh/lunar-calendar/lunar"
)

// Response represents a standard API response.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains error details.
type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

// WriteCreated writes a 201 Created response.
func WriteCreated(w http.ResponseWriter, data any) error {
	return WriteJSON(w, http.StatusCreated, Response{
		Success: true,
		Data:    data,
	})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, status int, message string, code ...string) error {
	errInfo := ErrorInfo{
		Message: message,
	}
	if len(code) > 0 {
		errInfo.Code = code[0]
	}

	return WriteJSON(w, status, Response{
		Success: false,
		Error:   &errInfo,
	})
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusNotFound, message, "NOT_FOUND")
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusBadRequest, message, "BAD_REQUEST")
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusInternalServerError, message, "INTERNAL_ERROR")
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusUnauthorized, message, "UNAUTHORIZED")
}

// WriteConflict writes a 409 Conflict response.
func WriteConflict(w http.ResponseWriter, message string) error {
	return WriteError(w, http.StatusConflict, message, "DUPLICATE")
}

// writeDomainError maps lunar and database errors to client errors.
// It reports false when err is not one of them and the caller should
// treat it as an internal error.
func writeDomainError(w http.ResponseWriter, err error) bool {
	switch {
	case lunar.IsOutOfRange(err):
		WriteError(w, http.StatusBadRequest, err.Error(), "OUT_OF_RANGE")
	case lunar.IsInvalidUnit(err):
		WriteError(w, http.StatusBadRequest, err.Error(), "INVALID_UNIT")
	case errors.Is(err, lunar.ErrNoSuchDate):
		WriteError(w, http.StatusBadRequest, err.Error(), "NO_SUCH_DATE")
	case errors.Is(err, database.ErrNameRequired):
		WriteBadRequest(w, err.Error())
	case database.IsNotFound(err):
		WriteNotFound(w, "Anniversary not found")
	case database.IsDuplicate(err):
		WriteConflict(w, "Anniversary already exists")
	default:
		return false
	}
	return true
}
