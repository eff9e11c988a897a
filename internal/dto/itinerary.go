package dto

// GenerateResponse returns the id of the generated itinerary
type GenerateResponse struct {
	ItineraryID int64 `json:"itinerary_id"`
}

// ActivityResponse is one scheduled unit within a day
type ActivityResponse struct {
	ActivityID      int64    `json:"activity_id"`
	Sequence        int      `json:"sequence"`
	ActivityType    string   `json:"activity_type"`
	PlaceName       string   `json:"place_name"`
	PlaceID         string   `json:"place_id,omitempty"`
	Address         string   `json:"address,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	StartTime       string   `json:"start_time"`
	EndTime         string   `json:"end_time"`
	DurationMinutes int      `json:"duration_minutes"`
	EntranceFee     int      `json:"entrance_fee"`
	MealCost        int      `json:"meal_cost"`

	// Leg to the next activity; absent on the day's last activity
	TransportToNext   string `json:"transport_to_next,omitempty"`
	TransportDuration int    `json:"transport_duration,omitempty"`
	TransportCost     int    `json:"transport_cost,omitempty"`

	Tips string `json:"tips,omitempty"`
}

// DayResponse is one calendar day with its activities
type DayResponse struct {
	DayID            int64              `json:"day_id"`
	DayNumber        int                `json:"day_number"`
	Date             string             `json:"date"`
	WeatherCondition string             `json:"weather_condition,omitempty"`
	Temperature      int                `json:"temperature,omitempty"`
	WeatherAdvice    string             `json:"weather_advice,omitempty"`
	DailyBudget      int                `json:"daily_budget"`
	DailySpent       int                `json:"daily_spent"`
	Activities       []ActivityResponse `json:"activities"`
}

// ItineraryResponse is the full generated itinerary
type ItineraryResponse struct {
	ItineraryID int64         `json:"itinerary_id"`
	UserID      string        `json:"user_id"`
	Title       string        `json:"title"`
	TotalBudget int           `json:"total_budget"`
	TotalSpent  int           `json:"total_spent"`
	Status      string        `json:"status"`
	Days        []DayResponse `json:"days"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}
