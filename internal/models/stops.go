package models

// StopQuery identifies one configured boarding point on the board.
type StopQuery struct {
	Name    string `json:"name" yaml:"name" validate:"required"`
	PointID string `json:"pointId" yaml:"pointId" validate:"required"`
}

// StopDepartures is the board entry for a single stop.
type StopDepartures struct {
	Stop       StopQuery   `json:"stop"`
	Departures []Departure `json:"departures"`
}
