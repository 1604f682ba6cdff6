package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "page.html"

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// Render writes the storefront page.
func Render(w io.Writer, tmpl *template.Template, page Page) error {
	if err := tmpl.ExecuteTemplate(w, pageTemplate, page); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
