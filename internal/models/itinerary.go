package models

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is the generated day-by-day plan for one completed input.
// TotalBudget is fixed at creation; TotalSpent is recomputed after all
// days are built.
type Itinerary struct {
	ID          int64           `json:"id" db:"id"`
	InputID     int64           `json:"input_id" db:"itinerary_input_id"`
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`
	Title       string          `json:"title" db:"title"`
	TotalBudget int             `json:"total_budget" db:"total_budget"`
	TotalSpent  int             `json:"total_spent" db:"total_spent"`
	Status      ItineraryStatus `json:"status" db:"status"`
	Days        []Day           `json:"days"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`
}

// Day is one calendar day of an itinerary with its time-ordered
// activities and verbatim weather summary.
type Day struct {
	ID          int64     `json:"id" db:"id"`
	ItineraryID int64     `json:"itinerary_id" db:"itinerary_id"`
	DayNumber   int       `json:"day_number" db:"day_number"`
	Date        time.Time `json:"date" db:"date"`

	WeatherCondition string `json:"weather_condition" db:"weather_condition"`
	Temperature      int    `json:"temperature" db:"temperature"`
	WeatherAdvice    string `json:"weather_advice" db:"weather_advice"`

	DailyBudget int `json:"daily_budget" db:"daily_budget"`
	DailySpent  int `json:"daily_spent" db:"daily_spent"`

	Activities []Activity `json:"activities"`
}

// Activity is one scheduled unit within a day. StartTime/EndTime are
// minutes since midnight. The outbound transport fields describe the leg
// to the next activity and are absent on a day's last activity.
type Activity struct {
	ID           int64        `json:"id" db:"id"`
	DayID        int64        `json:"day_id" db:"itinerary_day_id"`
	Sequence     int          `json:"sequence" db:"sequence"`
	ActivityType ActivityType `json:"activity_type" db:"activity_type"`

	PlaceName string   `json:"place_name" db:"place_name"`
	PlaceID   string   `json:"place_id,omitempty" db:"place_id"`
	Address   string   `json:"address,omitempty" db:"address"`
	Rating    *float64 `json:"rating,omitempty" db:"rating"`

	StartTime       int `json:"start_time" db:"start_time"`
	EndTime         int `json:"end_time" db:"end_time"`
	DurationMinutes int `json:"duration_minutes" db:"duration_minutes"`

	EntranceFee int `json:"entrance_fee" db:"entrance_fee"`
	MealCost    int `json:"meal_cost" db:"meal_cost"`

	TransportToNext   *TransportMode `json:"transport_to_next,omitempty" db:"transport_to_next"`
	TransportDuration int            `json:"transport_duration,omitempty" db:"transport_duration"`
	TransportCost     int            `json:"transport_cost,omitempty" db:"transport_cost"`

	Tips string `json:"tips,omitempty" db:"tips"`
}

// Cost is the activity's full contribution to the day's spend: entrance
// fee plus meal cost plus the outbound leg.
func (a Activity) Cost() int {
	return a.EntranceFee + a.MealCost + a.TransportCost
}
