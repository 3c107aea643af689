package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinutes(t *testing.T) {
	tests := []struct {
		name    string
		minutes Minutes
		known   bool
		text    string
		json    string
	}{
		{"zero is a real value", 0, true, "0", "0"},
		{"positive", 7, true, "7", "7"},
		{"negative", -2, true, "-2", "-2"},
		{"unknown", UnknownMinutes, false, "?", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.known, tt.minutes.Known())
			assert.Equal(t, tt.text, tt.minutes.String())

			b, err := json.Marshal(tt.minutes)
			require.NoError(t, err)
			assert.Equal(t, tt.json, string(b))

			var decoded Minutes
			require.NoError(t, json.Unmarshal(b, &decoded))
			assert.Equal(t, tt.minutes, decoded)
		})
	}
}

func TestErrorDeparture(t *testing.T) {
	d := NewErrorDeparture(errors.New("context deadline exceeded"))

	assert.Equal(t, "", d.Destination)
	assert.Equal(t, "Error: context deadline exceeded", d.Time)
	assert.Equal(t, UnknownMinutes, d.Minutes)
	assert.True(t, d.IsError())
	assert.False(t, d.IsUpcoming())
}

func TestDepartureClassification(t *testing.T) {
	assert.True(t, Departure{Destination: "Albert", Minutes: 0, Time: "10:00"}.IsUpcoming())
	assert.False(t, Departure{Destination: "Albert", Minutes: -1, Time: "09:59"}.IsUpcoming())

	unknown := NewUnknownDeparture("Albert")
	assert.False(t, unknown.IsUpcoming())
	assert.False(t, unknown.IsError(), "an unknown passage is not an error placeholder")
	assert.Equal(t, "?", unknown.Time)
}
