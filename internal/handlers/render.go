package handlers

import (
	"log"
	"net/http"

	"github.com/a-h/templ"
)

// render writes a templ component as the full HTML response. A component that
// fails mid-write has already produced partial output, so the error status is
// best-effort.
func render(w http.ResponseWriter, r *http.Request, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(r.Context(), w); err != nil {
		log.Printf("handlers: render %s: %v", r.URL.Path, err)
		http.Error(w, "failed to render", http.StatusInternalServerError)
	}
}
