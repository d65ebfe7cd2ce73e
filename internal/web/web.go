// Package web renders the provider pages.
package web

import (
	"embed"
	"html/template"
	"io"

	"specialties/internal/notify"
	"specialties/internal/panel"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

// SpecialtiesPage is the data of the specialties page.
type SpecialtiesPage struct {
	View      panel.View
	Toasts    []notify.Toast
	CSRFToken string
}

// LoginPage is the data of the login page.
type LoginPage struct {
	Error     string
	Email     string
	CSRFToken string
}

// RenderSpecialties writes the two-pane specialties page.
func RenderSpecialties(w io.Writer, page SpecialtiesPage) error {
	return templates.ExecuteTemplate(w, "specialties.html", page)
}

// RenderLogin writes the login form.
func RenderLogin(w io.Writer, page LoginPage) error {
	return templates.ExecuteTemplate(w, "login.html", page)
}
