package restapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"github.com/rue-joseph-bens/tramboard/internal/app"
	"github.com/rue-joseph-bens/tramboard/internal/appconf"
	"github.com/rue-joseph-bens/tramboard/internal/departures"
	"github.com/rue-joseph-bens/tramboard/internal/logging"
	"github.com/rue-joseph-bens/tramboard/internal/models"
)

// stubFetcher serves fixed passages per point id.
type stubFetcher struct {
	passages map[string][]models.RawPassage
	errs     map[string]error
}

func (s *stubFetcher) FetchPassages(_ context.Context, pointID string) ([]models.RawPassage, error) {
	if err := s.errs[pointID]; err != nil {
		return nil, err
	}
	return s.passages[pointID], nil
}

func inMinutes(m int) string {
	return time.Now().Add(time.Duration(m)*time.Minute + 30*time.Second).UTC().Format(time.RFC3339)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestApi creates a RestAPI over the default stop list backed by fetcher.
func createTestApi(t *testing.T, fetcher departures.PassageFetcher) *RestAPI {
	cfg := appconf.Default()
	cfg.Env = appconf.EnvFlagToEnvironment("test")

	location, err := cfg.Location()
	require.NoError(t, err)

	logger := testLogger()
	normalizer := departures.NewNormalizer(fetcher, location, time.Second, logger)

	application := &app.Application{
		Config:   cfg,
		Logger:   logger,
		Location: location,
		Board:    departures.NewBoard(normalizer, cfg.Stops, cfg.Limit, logger),
	}

	return &RestAPI{Application: application}
}

// serveApiAndRetrieveEndpoint sets up a test server, makes a request to the specified endpoint, and returns the response
// and decoded body.
func serveApiAndRetrieveEndpoint(t *testing.T, api *RestAPI, endpoint string) (*http.Response, map[string]interface{}) {
	router := httprouter.New()
	api.SetRoutes(router)
	server := httptest.NewServer(router)
	defer server.Close()

	resp, err := http.Get(server.URL + endpoint)
	require.NoError(t, err)
	defer logging.SafeCloseWithLogging(resp.Body,
		slog.Default().With(slog.String("component", "test")),
		"http_response_body")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return resp, body
}
