package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// renderPage executes a page template into a buffer first so a template
// failure becomes an opaque 500 instead of a half-written body.
func renderPage(w http.ResponseWriter, statusCode int, name string, data any) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
}

type loginPageData struct {
	Error      string
	Email      string
	RedirectTo string
}

type registerPageData struct {
	Error      string
	Email      string
	RedirectTo string
}
