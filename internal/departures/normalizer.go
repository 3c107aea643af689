// Package departures turns upstream passage predictions into the ranked
// departure lists shown on the board.
package departures

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rue-joseph-bens/tramboard/internal/logging"
	"github.com/rue-joseph-bens/tramboard/internal/models"
)

// unknownSortKey places passages without a usable arrival time after every
// real one.
const unknownSortKey = 999

// PassageFetcher returns the raw passages predicted at a stop.
type PassageFetcher interface {
	FetchPassages(ctx context.Context, pointID string) ([]models.RawPassage, error)
}

// Normalizer ranks the passages of one stop.
type Normalizer struct {
	fetcher  PassageFetcher
	location *time.Location
	timeout  time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewNormalizer builds a Normalizer reporting times in location. A positive
// timeout bounds each upstream query.
func NewNormalizer(fetcher PassageFetcher, location *time.Location, timeout time.Duration, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		fetcher:  fetcher,
		location: location,
		timeout:  timeout,
		now:      time.Now,
		logger:   logger.With(slog.String("component", "normalizer")),
	}
}

// Departures returns the upcoming departures at pointID, soonest first.
// Failures are not returned: they become a single error placeholder.
func (n *Normalizer) Departures(ctx context.Context, pointID string) []models.Departure {
	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	passages, err := n.fetcher.FetchPassages(ctx, pointID)
	if err != nil {
		logging.LogError(n.logger, "failed to fetch passages", err,
			slog.String("point_id", pointID))
		return []models.Departure{models.NewErrorDeparture(err)}
	}

	return n.Rank(passages)
}

// Rank converts passages to departures, orders them by minutes until arrival
// and keeps only those that have not arrived yet.
func (n *Normalizer) Rank(passages []models.RawPassage) []models.Departure {
	departures := make([]models.Departure, 0, len(passages))
	for _, p := range passages {
		departures = append(departures, n.convert(p))
	}

	sort.SliceStable(departures, func(i, j int) bool {
		return sortKey(departures[i]) < sortKey(departures[j])
	})

	upcoming := departures[:0]
	for _, d := range departures {
		if d.IsUpcoming() {
			upcoming = append(upcoming, d)
		}
	}
	return upcoming
}

func (n *Normalizer) convert(p models.RawPassage) models.Departure {
	destination := p.Destination
	if destination == "" {
		destination = models.UnknownValue
	}

	if p.ExpectedArrival == "" || !strings.Contains(p.ExpectedArrival, "T") {
		return models.NewUnknownDeparture(destination)
	}

	arrival, err := time.Parse(time.RFC3339, p.ExpectedArrival)
	if err != nil {
		n.logger.Debug("dropping passage with unparseable arrival time",
			slog.String("destination", destination),
			slog.String("expected_arrival", p.ExpectedArrival))
		return models.NewUnknownDeparture(destination)
	}

	arrival = arrival.In(n.location)
	now := n.now().In(n.location)

	return models.Departure{
		Destination: destination,
		Minutes:     models.Minutes(math.Floor(arrival.Sub(now).Seconds() / 60)),
		Time:        arrival.Format("15:04"),
	}
}

func sortKey(d models.Departure) int {
	if !d.Minutes.Known() {
		return unknownSortKey
	}
	return int(d.Minutes)
}
