package models

import (
	"time"

	"github.com/google/uuid"
)

// Trip length bounds enforced on step 2.
const (
	MinTripDays = 1
	MaxTripDays = 14
)

// MinBudget is the smallest accepted total or accommodation budget, in
// whole currency units (KRW).
const MinBudget = 10000

// InputRecord accumulates one user's trip specification across the
// 8-step wizard. Fields fill in step order; Status gates mutation.
type InputRecord struct {
	ID     int64     `json:"id" db:"id"`
	UserID uuid.UUID `json:"user_id" db:"user_id"`

	// Step 1: destination
	DestinationCity    string `json:"destination_city" db:"destination_city"`
	DestinationPlaceID string `json:"destination_place_id" db:"destination_place_id"`

	// Step 2: dates (TotalDays is derived, inclusive)
	StartDate *time.Time `json:"start_date" db:"start_date"`
	EndDate   *time.Time `json:"end_date" db:"end_date"`
	TotalDays int        `json:"total_days" db:"total_days"`

	// Step 3: pre-booked transport; times are minutes since midnight
	HasTransportTicket bool `json:"has_transport_ticket" db:"has_transport_ticket"`
	ArrivalTime        *int `json:"arrival_time" db:"arrival_time"`
	DepartureTime      *int `json:"departure_time" db:"departure_time"`

	// Step 4
	NumberOfPeople int `json:"number_of_people" db:"number_of_people"`

	// Step 5
	TransportModes []TransportMode `json:"transport_modes" db:"transport_modes"`

	// Step 6
	TravelStyles    []TravelStyle   `json:"travel_styles" db:"travel_styles"`
	ScheduleDensity ScheduleDensity `json:"schedule_density" db:"schedule_density"`

	// Step 7
	Budget int `json:"budget" db:"budget"`

	// Step 8
	NeedsAccommodation  bool `json:"needs_accommodation" db:"needs_accommodation"`
	AccommodationBudget *int `json:"accommodation_budget" db:"accommodation_budget"`

	Status    InputStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

// TripDayCount returns the inclusive day count for a date pair.
func TripDayCount(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
