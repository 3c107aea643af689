package app

import (
	"log/slog"
	"time"

	"github.com/rue-joseph-bens/tramboard/internal/appconf"
	"github.com/rue-joseph-bens/tramboard/internal/departures"
)

// Application holds the dependencies shared by the HTTP handlers, helpers,
// and middleware.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Location *time.Location
	Board    *departures.Board
}

// Now returns the current wall-clock time in the board's timezone.
func (a *Application) Now() time.Time {
	return time.Now().In(a.Location)
}
