// Package site serves the embedded prediction form.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register serves the form at / on r.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Handle("/", http.FileServer(FS()))
	r.Handle("/assets/*", http.FileServer(FS()))
}
