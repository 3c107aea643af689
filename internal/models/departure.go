package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Minutes is the whole number of minutes until a vehicle reaches a stop.
type Minutes int

// UnknownMinutes marks a minute count that could not be determined. It is
// distinct from every value a real arrival can produce, including zero.
const UnknownMinutes Minutes = math.MinInt32

func (m Minutes) Known() bool {
	return m != UnknownMinutes
}

func (m Minutes) String() string {
	if !m.Known() {
		return UnknownValue
	}
	return strconv.Itoa(int(m))
}

// MarshalJSON encodes unknown minutes as null.
func (m Minutes) MarshalJSON() ([]byte, error) {
	if !m.Known() {
		return []byte("null"), nil
	}
	return json.Marshal(int(m))
}

// UnmarshalJSON accepts the output of MarshalJSON.
func (m *Minutes) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = UnknownMinutes
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Minutes(v)
	return nil
}

// Departure is the display-ready form of a passage.
type Departure struct {
	Destination string  `json:"destination"`
	Minutes     Minutes `json:"minutes"`
	Time        string  `json:"time"`
}

// NewUnknownDeparture builds a departure whose arrival time could not be read.
func NewUnknownDeparture(destination string) Departure {
	return Departure{
		Destination: destination,
		Minutes:     UnknownMinutes,
		Time:        UnknownValue,
	}
}

// NewErrorDeparture builds the placeholder shown in place of a stop's
// departures when they could not be retrieved at all.
func NewErrorDeparture(err error) Departure {
	return Departure{
		Destination: "",
		Minutes:     UnknownMinutes,
		Time:        ErrorPrefix + err.Error(),
	}
}

// IsError reports whether d is an error placeholder rather than a real departure.
func (d Departure) IsError() bool {
	return d.Destination == "" && !d.Minutes.Known() && strings.HasPrefix(d.Time, ErrorPrefix)
}

// IsUpcoming reports whether d has a known arrival that has not passed yet.
func (d Departure) IsUpcoming() bool {
	return d.Minutes.Known() && d.Minutes >= 0
}
