// Package stib reads real-time waiting times from the STIB/MIVB open data
// portal.
package stib

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/rue-joseph-bens/tramboard/internal/logging"
	"github.com/rue-joseph-bens/tramboard/internal/models"
)

const (
	recordsPath = "/api/explore/v2.1/catalog/datasets/waiting-time-rt-production/records"
	recordLimit = 100

	// maxResponseBytes bounds a records response; a full page of 100
	// records is well under it.
	maxResponseBytes = 1 << 20
)

// Client queries the waiting-time-rt-production dataset for one line.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	BaseURL    string
	APIKey     string
	LineID     string
}

// NewClient builds a Client whose requests give up after timeout.
func NewClient(baseURL, apiKey, lineID string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger.With(slog.String("component", "stib_client")),
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		LineID:     lineID,
	}
}

type recordsResponse struct {
	TotalCount int      `json:"total_count"`
	Results    []record `json:"results"`
}

type record struct {
	LineID       string `json:"lineid"`
	PointID      string `json:"pointid"`
	PassingTimes string `json:"passingtimes"`
}

type passingTime struct {
	Destination         map[string]string `json:"destination"`
	ExpectedArrivalTime string            `json:"expectedArrivalTime"`
	LineID              string            `json:"lineId"`
}

// FetchPassages returns every predicted passage of the client's line at pointID.
func (c *Client) FetchPassages(ctx context.Context, pointID string) ([]models.RawPassage, error) {
	req, err := c.newRequest(ctx, pointID)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create STIB request")
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(withoutURL(err), "cannot reach STIB open data")
	}
	defer logging.SafeCloseWithLogging(resp.Body, c.Logger, "http_response_body")

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, errors.Wrap(withoutURL(err), "cannot read STIB response")
	}
	if len(body) > maxResponseBytes {
		return nil, errors.Errorf("STIB response exceeds %d bytes", maxResponseBytes)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errors.Errorf("STIB open data returned %s", resp.Status)
	}

	passages, err := decodePassages(body)
	if err != nil {
		return nil, errors.Wrap(err, "cannot decode STIB response")
	}

	c.Logger.Debug("fetched passages",
		slog.String("point_id", pointID),
		slog.Int("passages_count", len(passages)),
		slog.Duration("duration", time.Since(start)))

	return passages, nil
}

func (c *Client) newRequest(ctx context.Context, pointID string) (*http.Request, error) {
	u, err := url.Parse(c.BaseURL + recordsPath)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	q.Set("where", fmt.Sprintf(`lineid="%s" AND pointid="%s"`, c.LineID, pointID))
	q.Set("limit", fmt.Sprint(recordLimit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Apikey "+c.APIKey)
	}
	return req, nil
}

// withoutURL drops the request URL that *url.Error prepends, so error text
// shown on the board never carries the query.
func withoutURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// decodePassages flattens the records of a response. Each record carries its
// passing times as a JSON document embedded in a string field.
func decodePassages(body []byte) ([]models.RawPassage, error) {
	var response recordsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, err
	}

	var passages []models.RawPassage
	for _, rec := range response.Results {
		if strings.TrimSpace(rec.PassingTimes) == "" {
			continue
		}

		var times []passingTime
		if err := json.Unmarshal([]byte(rec.PassingTimes), &times); err != nil {
			return nil, errors.Wrapf(err, "passingtimes of point %s", rec.PointID)
		}

		for _, pt := range times {
			passages = append(passages, models.RawPassage{
				Destination:     pt.destinationLabel(),
				ExpectedArrival: pt.ExpectedArrivalTime,
			})
		}
	}
	return passages, nil
}

func (pt passingTime) destinationLabel() string {
	if label := pt.Destination["fr"]; label != "" {
		return label
	}
	return pt.Destination["nl"]
}
