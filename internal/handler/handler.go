// Package handler provides HTTP request handlers.
package handler

import (
	"net/http"

	"github.com/newsroom/newsroom/internal/respond"
)

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusNotFound, "Resource not found", "no route for "+r.Method+" "+r.URL.Path)
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respond.Message(w, http.StatusMethodNotAllowed, "Method not allowed", r.Method+" is not supported on "+r.URL.Path)
}
