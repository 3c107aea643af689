package models

// RawPassage is a single predicted vehicle arrival as reported upstream,
// before any time conversion has been applied.
type RawPassage struct {
	Destination     string `json:"destination"`
	ExpectedArrival string `json:"expectedArrivalTime"`
}
