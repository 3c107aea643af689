package departures

import (
	"context"
	"log/slog"
	"time"

	"github.com/rue-joseph-bens/tramboard/internal/logging"
	"github.com/rue-joseph-bens/tramboard/internal/models"
)

// DefaultLimit is the number of departures shown per stop.
const DefaultLimit = 3

// Board collects the departures of every configured stop.
type Board struct {
	normalizer *Normalizer
	stops      []models.StopQuery
	limit      int
	logger     *slog.Logger
}

func NewBoard(normalizer *Normalizer, stops []models.StopQuery, limit int, logger *slog.Logger) *Board {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		normalizer: normalizer,
		stops:      stops,
		limit:      limit,
		logger:     logger.With(slog.String("component", "board")),
	}
}

// Stops returns the configured stops in display order.
func (b *Board) Stops() []models.StopQuery {
	return b.stops
}

// Departures queries each stop in turn. A failing stop only affects its own
// entry.
func (b *Board) Departures(ctx context.Context) []models.StopDepartures {
	start := time.Now()

	board := make([]models.StopDepartures, 0, len(b.stops))
	for _, stop := range b.stops {
		board = append(board, b.StopDepartures(ctx, stop))
	}

	logging.LogOperation(b.logger, "board_refreshed",
		slog.Int("stops_count", len(board)),
		slog.Duration("duration", time.Since(start)))

	return board
}

// StopDepartures returns the first departures at a single stop.
func (b *Board) StopDepartures(ctx context.Context, stop models.StopQuery) models.StopDepartures {
	departures := b.normalizer.Departures(ctx, stop.PointID)
	if len(departures) > b.limit {
		departures = departures[:b.limit]
	}
	return models.StopDepartures{
		Stop:       stop,
		Departures: departures,
	}
}
