package models

// Common constants used across the application
const (
	// UnknownValue is shown wherever a destination or time could not be determined
	UnknownValue = "?"

	// ErrorPrefix starts the display time of an error placeholder departure
	ErrorPrefix = "Error: "
)
