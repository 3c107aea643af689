// Package gtfsrt reads passages from a GTFS-realtime TripUpdates feed.
package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jamespfennell/gtfs"

	"github.com/rue-joseph-bens/tramboard/internal/logging"
	"github.com/rue-joseph-bens/tramboard/internal/models"
)

// Fetcher downloads the feed on every call and keeps the stop time updates
// of one route.
type Fetcher struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	URL        string
	RouteID    string
	Headers    map[string]string
}

func NewFetcher(url, routeID string, timeout time.Duration, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger.With(slog.String("component", "gtfs_realtime")),
		URL:        url,
		RouteID:    routeID,
		Headers:    map[string]string{},
	}
}

// FetchPassages returns one passage per trip update that calls at stopID.
// GTFS-realtime carries no headsign, so the last stop of each trip update
// stands in for the destination.
func (f *Fetcher) FetchPassages(ctx context.Context, stopID string) ([]models.RawPassage, error) {
	realtime, err := f.load(ctx)
	if err != nil {
		return nil, err
	}

	var passages []models.RawPassage
	for _, trip := range realtime.Trips {
		if f.RouteID != "" && trip.ID.RouteID != f.RouteID {
			continue
		}

		destination := lastStopID(trip.StopTimeUpdates)
		for _, update := range trip.StopTimeUpdates {
			if update.StopID == nil || *update.StopID != stopID {
				continue
			}
			passages = append(passages, models.RawPassage{
				Destination:     destination,
				ExpectedArrival: expectedTime(update),
			})
		}
	}
	return passages, nil
}

func (f *Fetcher) load(ctx context.Context) (*gtfs.Realtime, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating GTFS-RT request: %w", err)
	}
	for key, value := range f.Headers {
		req.Header.Add(key, value)
	}

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading GTFS-RT feed: %w", err)
	}
	defer logging.SafeCloseWithLogging(resp.Body, f.Logger, "http_response_body")

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("GTFS-RT feed returned %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading GTFS-RT feed: %w", err)
	}

	realtime, err := gtfs.ParseRealtime(b, &gtfs.ParseRealtimeOptions{})
	if err != nil {
		return nil, fmt.Errorf("parsing GTFS-RT feed: %w", err)
	}
	return realtime, nil
}

func lastStopID(updates []gtfs.StopTimeUpdate) string {
	for i := len(updates) - 1; i >= 0; i-- {
		if updates[i].StopID != nil {
			return *updates[i].StopID
		}
	}
	return ""
}

// expectedTime prefers the predicted arrival and falls back to the departure.
func expectedTime(update gtfs.StopTimeUpdate) string {
	for _, event := range []*gtfs.StopTimeEvent{update.Arrival, update.Departure} {
		if event != nil && event.Time != nil {
			return event.Time.UTC().Format(time.RFC3339)
		}
	}
	return ""
}
