package webui

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rue-joseph-bens/tramboard/internal/appconf"
	"github.com/rue-joseph-bens/tramboard/internal/logging"
	"github.com/rue-joseph-bens/tramboard/internal/models"
)

// dashboardCSP allows the page's inline script and style, its web font, the
// background photo and the weather API.
const dashboardCSP = "default-src 'none'; " +
	"script-src 'unsafe-inline'; " +
	"style-src 'unsafe-inline' https://fonts.googleapis.com; " +
	"font-src https://fonts.gstatic.com; " +
	"img-src https://images.unsplash.com; " +
	"connect-src https://api.open-meteo.com; " +
	"frame-ancestors 'none';"

type dashboardData struct {
	Title          string
	Stops          []models.StopDepartures
	Now            string
	RefreshSeconds int
	Weather        appconf.Weather
}

func (webUI *WebUI) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	refresh := int(webUI.Config.RefreshInterval.Seconds())
	if refresh <= 0 {
		refresh = 60
	}

	data := dashboardData{
		Title:          webUI.Config.Title,
		Stops:          webUI.Board.Departures(r.Context()),
		Now:            webUI.Now().Format("15:04:05"),
		RefreshSeconds: refresh,
		Weather:        webUI.Config.Weather,
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "dashboard.html", data); err != nil {
		logging.LogError(logging.FromContext(r.Context()), "failed to render dashboard", err,
			slog.String("component", "webui"))
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", dashboardCSP)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Refresh", strconv.Itoa(refresh))
	_, _ = buf.WriteTo(w)
}
