package service

import (
	"context"
	"time"
)

// CityCandidate is one city returned by the place-search collaborator.
type CityCandidate struct {
	PlaceID          string
	Name             string
	FormattedAddress string
}

// PlaceCandidate is one ranked place supplied by the recommendation
// collaborator. Coordinates and estimates are optional; the scheduler
// falls back to density defaults when they are zero.
type PlaceCandidate struct {
	PlaceID      string
	Name         string
	Address      string
	Rating       *float64
	EntranceFee  int
	VisitMinutes int
	Lat          float64
	Lng          float64
}

// FlightOffer is one ranked flight recommendation.
type FlightOffer struct {
	FlightNumber string
	Airline      string
	Price        int
	Currency     string
}

// Forecast is the weather summary stored verbatim on a day.
type Forecast struct {
	Condition   string
	Temperature int
	Advisory    string
}

// PlaceSearcher resolves a free-text city name to candidate cities.
type PlaceSearcher interface {
	SearchCity(ctx context.Context, cityName string) ([]CityCandidate, error)
}

// PlaceRecommender returns up to count places for a city, ranked against
// the given place-category hints. Fewer results than requested is not an
// error; the scheduler degrades.
type PlaceRecommender interface {
	RankPlaces(ctx context.Context, city, cityPlaceID string, typeHints []string, count int) ([]PlaceCandidate, error)
}

// FlightLookup returns ranked flight offers toward the destination for
// the trip's date range.
type FlightLookup interface {
	Recommend(ctx context.Context, destinationCity string, start, end *time.Time) ([]FlightOffer, error)
}

// WeatherLookup returns the forecast for a city on a date.
type WeatherLookup interface {
	Forecast(ctx context.Context, city string, date time.Time) (Forecast, error)
}
