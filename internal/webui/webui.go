package webui

import (
	"embed"
	"html/template"

	"github.com/rue-joseph-bens/tramboard/internal/app"
)

//go:embed dashboard.html debug_index.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "dashboard.html", "debug_index.html"))

// WebUI serves the HTML pages.
type WebUI struct {
	*app.Application
}

func NewWebUI(application *app.Application) *WebUI {
	return &WebUI{Application: application}
}
