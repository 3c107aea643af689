package webui

import (
	"bytes"
	"net/http"

	"github.com/davecgh/go-spew/spew"
)

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "debug_index.html", debugData{
		Title: title,
		Pre:   spew.Sdump(data),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'; frame-ancestors 'none';")
	_, _ = buf.WriteTo(w)
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")

	var data interface{}
	var title string

	switch dataType {
	case "config":
		cfg := webUI.Config
		if cfg.APIKey != "" {
			cfg.APIKey = "REDACTED"
		}
		if len(cfg.GtfsRtHeaders) > 0 {
			headers := make(map[string]string, len(cfg.GtfsRtHeaders))
			for key := range cfg.GtfsRtHeaders {
				headers[key] = "REDACTED"
			}
			cfg.GtfsRtHeaders = headers
		}
		data = cfg
		title = "Configuration"
	case "stops":
		data = webUI.Board.Stops()
		title = "Configured Stops"
	case "board":
		data = webUI.Board.Departures(r.Context())
		title = "Departures Board"
	default:
		data = map[string]string{
			"error": "Please use one of the following: config, stops, board.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, data)
}
