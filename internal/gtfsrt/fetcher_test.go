package gtfsrt

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	p "github.com/jamespfennell/gtfs/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/rue-joseph-bens/tramboard/internal/models"
)

var feedTime = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

type stopEvent struct {
	stopID    string
	arrival   int64
	departure int64
}

func tripUpdate(tripID, routeID string, events ...stopEvent) *p.FeedEntity {
	var updates []*p.TripUpdate_StopTimeUpdate
	for _, e := range events {
		stu := &p.TripUpdate_StopTimeUpdate{StopId: proto.String(e.stopID)}
		if e.arrival != 0 {
			stu.Arrival = &p.TripUpdate_StopTimeEvent{Time: proto.Int64(e.arrival)}
		}
		if e.departure != 0 {
			stu.Departure = &p.TripUpdate_StopTimeEvent{Time: proto.Int64(e.departure)}
		}
		updates = append(updates, stu)
	}
	return &p.FeedEntity{
		Id: proto.String(tripID),
		TripUpdate: &p.TripUpdate{
			Trip: &p.TripDescriptor{
				TripId:  proto.String(tripID),
				RouteId: proto.String(routeID),
			},
			StopTimeUpdate: updates,
		},
	}
}

func buildFeed(t *testing.T, entities ...*p.FeedEntity) []byte {
	incrementality := p.FeedHeader_FULL_DATASET
	feed := &p.FeedMessage{
		Header: &p.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Incrementality:      &incrementality,
			Timestamp:           proto.Uint64(uint64(feedTime.Unix())),
		},
		Entity: entities,
	}
	data, err := proto.Marshal(feed)
	require.NoError(t, err)
	return data
}

func serveFeed(t *testing.T, status int, data []byte) *Fetcher {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/x-protobuf")
		w.WriteHeader(status)
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)

	f := NewFetcher(server.URL, "18", time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	f.Headers["x-api-key"] = "secret"
	return f
}

func TestFetchPassages(t *testing.T) {
	in := func(d time.Duration) int64 { return feedTime.Add(d).Unix() }

	data := buildFeed(t,
		tripUpdate("trip-1", "18",
			stopEvent{stopID: "5830", arrival: in(7 * time.Minute)},
			stopEvent{stopID: "5900", arrival: in(15 * time.Minute)},
			stopEvent{stopID: "ALBERT", arrival: in(20 * time.Minute)},
		),
		tripUpdate("trip-2", "18",
			stopEvent{stopID: "5830", departure: in(12 * time.Minute)},
			stopEvent{stopID: "VANHAELEN", arrival: in(30 * time.Minute)},
		),
		tripUpdate("trip-3", "51",
			stopEvent{stopID: "5830", arrival: in(2 * time.Minute)},
		),
		tripUpdate("trip-4", "18",
			stopEvent{stopID: "5831", arrival: in(4 * time.Minute)},
		),
	)

	t.Run("keeps updates of the route at the stop", func(t *testing.T) {
		f := serveFeed(t, http.StatusOK, data)

		passages, err := f.FetchPassages(context.Background(), "5830")
		require.NoError(t, err)

		assert.Equal(t, []models.RawPassage{
			{Destination: "ALBERT", ExpectedArrival: "2026-10-16T08:07:00Z"},
			{Destination: "VANHAELEN", ExpectedArrival: "2026-10-16T08:12:00Z"},
		}, passages)
	})

	t.Run("empty route id keeps every route", func(t *testing.T) {
		f := serveFeed(t, http.StatusOK, data)
		f.RouteID = ""

		passages, err := f.FetchPassages(context.Background(), "5830")
		require.NoError(t, err)
		assert.Len(t, passages, 3)
	})

	t.Run("unknown stop", func(t *testing.T) {
		f := serveFeed(t, http.StatusOK, data)

		passages, err := f.FetchPassages(context.Background(), "0000")
		require.NoError(t, err)
		assert.Empty(t, passages)
	})

	t.Run("error status", func(t *testing.T) {
		f := serveFeed(t, http.StatusServiceUnavailable, nil)

		_, err := f.FetchPassages(context.Background(), "5830")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("unreachable feed", func(t *testing.T) {
		f := NewFetcher("http://127.0.0.1:1/trip-updates.pb", "18", time.Second, nil)

		_, err := f.FetchPassages(context.Background(), "5830")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "downloading GTFS-RT feed")
	})
}

func TestExpectedTime(t *testing.T) {
	arrival := feedTime.Add(time.Minute)
	departure := feedTime.Add(2 * time.Minute)
	stopID := "5830"

	assert.Equal(t, "2026-10-16T08:01:00Z", expectedTime(gtfsStopTimeUpdate(stopID, &arrival, &departure)))
	assert.Equal(t, "2026-10-16T08:02:00Z", expectedTime(gtfsStopTimeUpdate(stopID, nil, &departure)))
	assert.Equal(t, "", expectedTime(gtfsStopTimeUpdate(stopID, nil, nil)))
}
