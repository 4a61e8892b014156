package domain

import "time"

// WeatherSnapshot annotates a sale with conditions at checkout time. The ledger never reads it back.
type WeatherSnapshot struct {
	Condition    string    `json:"condition"`
	WeatherCode  int       `json:"weatherCode"`
	TemperatureC float64   `json:"temperatureC"`
	ObservedAt   time.Time `json:"observedAt"`
}
