package api

import (
	_ "embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cardioinsight/riskservice/report"
)

//go:embed dashboard.html
var dashboardTemplate string

// PageRenderer adapts html/template to echo's Renderer interface.
type PageRenderer struct {
	templates *template.Template
}

func NewPageRenderer() (*PageRenderer, error) {
	templates, err := template.New("dashboard").Parse(dashboardTemplate)
	if err != nil {
		return nil, err
	}
	return &PageRenderer{templates: templates}, nil
}

func (r *PageRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// DashboardPage is the template payload for the landing page.
type DashboardPage struct {
	Algorithm string
	Version   string
	Policy    string
	Renderers []string
}

// Dashboard serves the three tab assessment page. Submitted state lives
// client side; the tabs drive the JSON endpoints.
func (h *Handler) Dashboard(ec echo.Context) error {
	metadata := h.model.Metadata()
	return ec.Render(http.StatusOK, "dashboard", DashboardPage{
		Algorithm: metadata.Algorithm,
		Version:   metadata.Version,
		Policy:    h.policy.Name,
		Renderers: []string{report.RendererRaster, report.RendererChart},
	})
}
