package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nurhusenm/Devtracker/middleware"
)

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"message": message})
}

// identity pulls the caller's user id out of the request context. The auth
// middleware guarantees it is present on protected routes.
func identity(r *http.Request) (string, bool) {
	return middleware.UserIDFromContext(r.Context())
}
