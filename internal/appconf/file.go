package appconf

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rue-joseph-bens/tramboard/internal/models"
)

// fileConfig is the on-disk YAML layout. Zero values leave the corresponding
// Config field untouched.
type fileConfig struct {
	Title          string             `yaml:"title"`
	Timezone       string             `yaml:"timezone"`
	LineID         string             `yaml:"lineId"`
	Stops          []models.StopQuery `yaml:"stops" validate:"omitempty,dive"`
	Limit          int                `yaml:"limit" validate:"gte=0"`
	RefreshSeconds int                `yaml:"refreshSeconds" validate:"gte=0"`
	RateLimit      int                `yaml:"rateLimit" validate:"gte=0"`

	Compression struct {
		MinSize int `yaml:"minSize" validate:"gte=0"`
		Level   int `yaml:"level" validate:"omitempty,min=1,max=9"`
	} `yaml:"compression"`

	Upstream struct {
		Source        string            `yaml:"source" validate:"omitempty,oneof=stib gtfsrt"`
		URL           string            `yaml:"url" validate:"omitempty,url"`
		GtfsRtURL     string            `yaml:"gtfsRtUrl" validate:"omitempty,url"`
		GtfsRtHeaders map[string]string `yaml:"gtfsRtHeaders" validate:"omitempty,dive,keys,required,endkeys,required"`
		TimeoutMS     int               `yaml:"timeoutMS" validate:"gte=0"`
	} `yaml:"upstream"`

	Weather struct {
		Latitude  *float64 `yaml:"latitude" validate:"omitempty,gte=-90,lte=90"`
		Longitude *float64 `yaml:"longitude" validate:"omitempty,gte=-180,lte=180"`
		Place     string   `yaml:"place"`
	} `yaml:"weather"`
}

// LoadFile reads a YAML config file and applies it on top of cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return apply(data, cfg)
}

func apply(data []byte, cfg *Config) error {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	v := validator.New()
	if err := v.Struct(fc); err != nil {
		return fmt.Errorf("invalid config file: %w", err)
	}

	if fc.Title != "" {
		cfg.Title = fc.Title
	}
	if fc.Timezone != "" {
		cfg.Timezone = fc.Timezone
	}
	if fc.LineID != "" {
		cfg.LineID = fc.LineID
	}
	if len(fc.Stops) > 0 {
		cfg.Stops = fc.Stops
	}
	if fc.Limit > 0 {
		cfg.Limit = fc.Limit
	}
	if fc.RefreshSeconds > 0 {
		cfg.RefreshInterval = time.Duration(fc.RefreshSeconds) * time.Second
	}
	if fc.RateLimit > 0 {
		cfg.RateLimit = fc.RateLimit
	}
	if fc.Compression.MinSize > 0 {
		cfg.Compression.MinSize = fc.Compression.MinSize
	}
	if fc.Compression.Level > 0 {
		cfg.Compression.Level = fc.Compression.Level
	}
	if fc.Upstream.Source != "" {
		cfg.Source = fc.Upstream.Source
	}
	if fc.Upstream.URL != "" {
		cfg.UpstreamURL = fc.Upstream.URL
	}
	if fc.Upstream.GtfsRtURL != "" {
		cfg.GtfsRtURL = fc.Upstream.GtfsRtURL
	}
	if len(fc.Upstream.GtfsRtHeaders) > 0 {
		cfg.GtfsRtHeaders = fc.Upstream.GtfsRtHeaders
	}
	if fc.Upstream.TimeoutMS > 0 {
		cfg.UpstreamTimeout = time.Duration(fc.Upstream.TimeoutMS) * time.Millisecond
	}
	if fc.Weather.Latitude != nil {
		cfg.Weather.Latitude = *fc.Weather.Latitude
	}
	if fc.Weather.Longitude != nil {
		cfg.Weather.Longitude = *fc.Weather.Longitude
	}
	if fc.Weather.Place != "" {
		cfg.Weather.Place = fc.Weather.Place
	}

	if cfg.Source == SourceGTFSRT && cfg.GtfsRtURL == "" {
		return fmt.Errorf("invalid config file: upstream.gtfsRtUrl is required for source %q", SourceGTFSRT)
	}
	return nil
}
