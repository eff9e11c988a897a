package dto

// SearchCityRequest is the payload for POST /api/itinerary/input/step1/search-city
type SearchCityRequest struct {
	CityName string `json:"city_name"`
}

// CityCandidate is one city returned by the place-search collaborator
type CityCandidate struct {
	PlaceID          string `json:"place_id"`
	CityName         string `json:"city_name"`
	FormattedAddress string `json:"formatted_address,omitempty"`
}

// SelectCityRequest is the payload for POST /api/itinerary/input/step1/select.
// The city is assumed to be one of the search results.
type SelectCityRequest struct {
	CityName string `json:"city_name"`
	PlaceID  string `json:"place_id"`
}

// SelectCityResponse returns the id of the newly created input record
type SelectCityResponse struct {
	InputID int64 `json:"input_id"`
}

// Step2Request carries the trip dates (YYYY-MM-DD)
type Step2Request struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Step3Request carries the pre-booked transport flag and times (HH:MM)
type Step3Request struct {
	HasTicket     bool    `json:"has_ticket"`
	ArrivalTime   *string `json:"arrival_time"`
	DepartureTime *string `json:"departure_time"`
}

// FlightOffer is one ranked flight recommendation, passed through from
// the flight-lookup collaborator when no ticket is held
type FlightOffer struct {
	FlightNumber string `json:"flight_number"`
	Airline      string `json:"airline"`
	Price        int    `json:"price"`
	Currency     string `json:"currency"`
}

// Step3Response wraps the optional flight recommendations
type Step3Response struct {
	Message string        `json:"message"`
	Flights []FlightOffer `json:"flights,omitempty"`
}

// Step4Request carries the party size (1-10)
type Step4Request struct {
	NumberOfPeople int `json:"number_of_people"`
}

// Step5Request carries the selected transport mode tags
type Step5Request struct {
	TransportModes []string `json:"transport_modes"`
}

// Step6Request carries 1-2 travel styles and the schedule density
type Step6Request struct {
	TravelStyles    []string `json:"travel_styles"`
	ScheduleDensity string   `json:"schedule_density"`
}

// Step7Request carries the total budget in whole currency units
type Step7Request struct {
	Budget int `json:"budget"`
}

// Step8Request carries the accommodation flag and optional budget
type Step8Request struct {
	NeedsAccommodation  bool `json:"needs_accommodation"`
	AccommodationBudget *int `json:"accommodation_budget"`
}

// InputResponse is the full current state of an input record
type InputResponse struct {
	InputID             int64    `json:"input_id"`
	UserID              string   `json:"user_id"`
	Status              string   `json:"status"`
	DestinationCity     string   `json:"destination_city"`
	DestinationPlaceID  string   `json:"destination_place_id"`
	StartDate           string   `json:"start_date,omitempty"`
	EndDate             string   `json:"end_date,omitempty"`
	TotalDays           int      `json:"total_days,omitempty"`
	HasTransportTicket  bool     `json:"has_transport_ticket"`
	ArrivalTime         string   `json:"arrival_time,omitempty"`
	DepartureTime       string   `json:"departure_time,omitempty"`
	NumberOfPeople      int      `json:"number_of_people,omitempty"`
	TransportModes      []string `json:"transport_modes,omitempty"`
	TravelStyles        []string `json:"travel_styles,omitempty"`
	ScheduleDensity     string   `json:"schedule_density,omitempty"`
	Budget              int      `json:"budget,omitempty"`
	NeedsAccommodation  bool     `json:"needs_accommodation"`
	AccommodationBudget *int     `json:"accommodation_budget,omitempty"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}
