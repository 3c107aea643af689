package gtfsrt

import (
	"time"

	"github.com/jamespfennell/gtfs"
)

func gtfsStopTimeUpdate(stopID string, arrival, departure *time.Time) gtfs.StopTimeUpdate {
	update := gtfs.StopTimeUpdate{StopID: &stopID}
	if arrival != nil {
		update.Arrival = &gtfs.StopTimeEvent{Time: arrival}
	}
	if departure != nil {
		update.Departure = &gtfs.StopTimeEvent{Time: departure}
	}
	return update
}
