package utils

import (
	"encoding/json"
	"net/http"
)

// JSONResponse sends a JSON response with the given status and payload
func JSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
