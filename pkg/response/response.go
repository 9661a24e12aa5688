// Package response writes the JSON envelope used by every endpoint.
//
// The envelope carries a status discriminator, not an HTTP code:
//
//	{"status":"success","data":{...}}           2xx
//	{"status":"fail","data":{"error":"..."}}    caller-correctable 4xx
//	{"status":"error","data":{"error":"..."}}   unexpected 5xx
package response

import (
	"encoding/json"
	"net/http"

	"github.com/aymanhs/souq/pkg/apperr"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

type envelope struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

func write(w http.ResponseWriter, code int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: StatusSuccess, Data: data})
}

// Created sends a 201 with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: StatusSuccess, Data: data})
}

// Fail sends a caller-correctable failure with the given HTTP code.
func Fail(w http.ResponseWriter, code int, message string) {
	write(w, code, envelope{Status: StatusFail, Data: map[string]string{"error": message}})
}

// Internal sends a 500 with the "error" discriminator.
func Internal(w http.ResponseWriter, message string) {
	write(w, http.StatusInternalServerError, envelope{Status: StatusError, Data: map[string]string{"error": message}})
}

// FromError maps a tagged application error onto the envelope. Internal
// faults get status "error"; everything else is "fail".
func FromError(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	if e.Internal() {
		Internal(w, e.Message)
		return
	}
	Fail(w, e.Status, e.Message)
}

// ValidationFailed sends a 400 with field-level error messages.
func ValidationFailed(w http.ResponseWriter, errs map[string]string) {
	write(w, http.StatusBadRequest, envelope{
		Status: StatusFail,
		Data:   map[string]interface{}{"error": "Validation failed", "fields": errs},
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Fail(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}
