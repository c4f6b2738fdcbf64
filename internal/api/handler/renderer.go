package handler

import (
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/userhub/user-portal/web"
)

// Renderer adapts the embedded html/template set to Echo's Renderer
// interface.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. Call once at startup and
// assign to echo.Echo.Renderer.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t}, nil
}

// Render satisfies the echo.Renderer interface.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
