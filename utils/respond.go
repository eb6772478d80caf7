package utils

import (
	"encoding/json"
	"net/http"
)

// RespondJSON writes payload as the response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// RespondError writes a {message} body.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"message": message})
}

// RespondErrorDetail writes a {message, error} body carrying the underlying
// error detail.
func RespondErrorDetail(w http.ResponseWriter, status int, message string, err error) {
	RespondJSON(w, status, map[string]string{"message": message, "error": err.Error()})
}
