package view

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type errorPage struct {
	Status int
	Text   string
}

type appBridgePage struct {
	APIKey string
	Target string
}

// RenderSessionBounce serves a page that asks App Bridge for a fresh session
// token and reloads the current URL with it, keeping every other parameter.
func RenderSessionBounce(w http.ResponseWriter, apiKey string) error {
	return render(w, http.StatusOK, "session_bounce.html", appBridgePage{APIKey: apiKey})
}

// RenderExitIframe navigates the top-level admin window to target. OAuth
// screens refuse to load inside the admin iframe.
func RenderExitIframe(w http.ResponseWriter, apiKey, target string) error {
	return render(w, http.StatusOK, "exit_iframe.html", appBridgePage{APIKey: apiKey, Target: target})
}

func RenderProducts(w http.ResponseWriter, page ProductsPage) error {
	return render(w, http.StatusOK, "products.html", page)
}

// RenderError writes the generic error page. Only the status text is shown.
func RenderError(w http.ResponseWriter, status int) error {
	return render(w, status, "error.html", errorPage{Status: status, Text: http.StatusText(status)})
}

func render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
