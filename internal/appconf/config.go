package appconf

import (
	"fmt"
	"net"
	"strconv"
	"time"
	_ "time/tzdata" // timezone database for minimal containers

	"github.com/rue-joseph-bens/tramboard/internal/models"
)

// Upstream passage sources.
const (
	SourceSTIB   = "stib"
	SourceGTFSRT = "gtfsrt"
)

// Weather holds the coordinate the page's weather widget reports on.
type Weather struct {
	Latitude  float64
	Longitude float64
	Place     string
}

// Compression tunes the gzip middleware in front of every route.
type Compression struct {
	// MinSize is the smallest response body, in bytes, that gets compressed.
	MinSize int
	// Level is a gzip level from 1 (fastest) to 9 (smallest).
	Level int
}

// Config holds all the configuration settings for the Application. It is
// built once at startup and never mutated afterwards.
type Config struct {
	Host      string
	Port      int
	Env       Environment
	RateLimit int

	Compression Compression

	Title           string
	Timezone        string
	LineID          string
	Stops           []models.StopQuery
	Limit           int
	RefreshInterval time.Duration

	Source          string
	APIKey          string
	UpstreamURL     string
	GtfsRtURL       string
	GtfsRtHeaders   map[string]string
	UpstreamTimeout time.Duration

	Weather Weather
}

// Default returns the configuration for the Rue Joseph Bens tram 18 board.
func Default() Config {
	return Config{
		Host:      "0.0.0.0",
		Port:      5050,
		Env:       Development,
		RateLimit: 10,

		// A single stop entry stays under MinSize; the dashboard page does not.
		Compression: Compression{
			MinSize: 1024,
			Level:   6,
		},

		Title:    "Rue Joseph Bens - STIB Tram 18 – Real-Time Brussels Departures",
		Timezone: "Europe/Brussels",
		LineID:   "18",
		Stops: []models.StopQuery{
			{Name: "in the direction of VAN HAELEN", PointID: "5831"},
			{Name: "in the direction of Albert", PointID: "5830"},
		},
		Limit:           3,
		RefreshInterval: 60 * time.Second,

		Source:          SourceSTIB,
		UpstreamURL:     "https://stibmivb.opendatasoft.com",
		UpstreamTimeout: 10 * time.Second,

		Weather: Weather{
			Latitude:  50.7987,
			Longitude: 4.3369,
			Place:     "Uccle",
		},
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Location loads the civil timezone departures are displayed in.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// FindStop returns the configured stop with the given upstream point id.
func (c Config) FindStop(pointID string) (models.StopQuery, bool) {
	for _, stop := range c.Stops {
		if stop.PointID == pointID {
			return stop, true
		}
	}
	return models.StopQuery{}, false
}
