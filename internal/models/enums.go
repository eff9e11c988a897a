package models

import (
	"fmt"
	"strings"
)

// InputStatus tracks the lifecycle of an itinerary input.
//
// IN_PROGRESS -> COMPLETED -> GENERATED, one-way. A GENERATED input is
// read-only: it already produced an itinerary.
type InputStatus string

const (
	InputInProgress InputStatus = "IN_PROGRESS"
	InputCompleted  InputStatus = "COMPLETED"
	InputGenerated  InputStatus = "GENERATED"
)

// CanTransition reports whether the status may advance to next.
// Only forward single-step transitions are allowed.
func (s InputStatus) CanTransition(next InputStatus) bool {
	switch s {
	case InputInProgress:
		return next == InputCompleted
	case InputCompleted:
		return next == InputGenerated
	default:
		return false
	}
}

// Transition returns the next status or an error for an invalid move.
func (s InputStatus) Transition(next InputStatus) (InputStatus, error) {
	if !s.CanTransition(next) {
		return s, fmt.Errorf("invalid input status transition %s -> %s", s, next)
	}
	return next, nil
}

// Mutable reports whether step payloads may still be applied.
func (s InputStatus) Mutable() bool {
	return s != InputGenerated
}

// ItineraryStatus tracks a generated itinerary.
// ACTIVE -> COMPLETED or CANCELLED; terminal states do not move.
type ItineraryStatus string

const (
	ItineraryActive    ItineraryStatus = "ACTIVE"
	ItineraryCompleted ItineraryStatus = "COMPLETED"
	ItineraryCancelled ItineraryStatus = "CANCELLED"
)

// CanTransition reports whether the itinerary status may move to next.
func (s ItineraryStatus) CanTransition(next ItineraryStatus) bool {
	return s == ItineraryActive && (next == ItineraryCompleted || next == ItineraryCancelled)
}

// ActivityType classifies one scheduled unit within a day.
type ActivityType string

const (
	ActivityPlace         ActivityType = "PLACE"         // sightseeing, carries entrance fee
	ActivityMeal          ActivityType = "MEAL"          // carries meal cost
	ActivityAccommodation ActivityType = "ACCOMMODATION" // check-in, no cost
)

// DensityPolicy holds the fixed parameters behind a schedule density tag.
type DensityPolicy struct {
	DisplayName         string
	StartHour           int // day start, minute 0
	PlacesPerDay        int
	DefaultVisitMinutes int // per place, when the candidate has no estimate
}

// ScheduleDensity selects how packed a day's schedule is.
type ScheduleDensity string

const (
	DensityRelaxed ScheduleDensity = "RELAXED"
	DensityPacked  ScheduleDensity = "PACKED"
)

var densityPolicies = map[ScheduleDensity]DensityPolicy{
	DensityRelaxed: {DisplayName: "느슨하게", StartHour: 11, PlacesPerDay: 2, DefaultVisitMinutes: 150},
	DensityPacked:  {DisplayName: "빡빡하게", StartHour: 8, PlacesPerDay: 4, DefaultVisitMinutes: 90},
}

// Policy returns the fixed parameters for the density.
func (d ScheduleDensity) Policy() DensityPolicy {
	return densityPolicies[d]
}

// ParseScheduleDensity resolves a tag case-insensitively.
func ParseScheduleDensity(s string) (ScheduleDensity, error) {
	d := ScheduleDensity(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := densityPolicies[d]; !ok {
		return "", fmt.Errorf("unknown schedule density %q", s)
	}
	return d, nil
}

// TravelStyle is a user preference tag; each maps to place-category hints
// forwarded to the place recommendation collaborator.
type TravelStyle string

const (
	StyleActive  TravelStyle = "ACTIVE"
	StyleRelaxed TravelStyle = "RELAXED"
	StyleNature  TravelStyle = "NATURE"
	StyleCulture TravelStyle = "CULTURE"
	StyleFood    TravelStyle = "FOOD"
	StyleCity    TravelStyle = "CITY"
)

type stylePolicy struct {
	DisplayName string
	PlaceTypes  []string
}

var stylePolicies = map[TravelStyle]stylePolicy{
	StyleActive:  {"활동적인 스타일", []string{"amusement_park", "park", "stadium"}},
	StyleRelaxed: {"차분한 휴양 스타일", []string{"spa", "beach", "cafe"}},
	StyleNature:  {"자연 탐방 스타일", []string{"park", "natural_feature", "campground"}},
	StyleCulture: {"문화/역사 탐방 스타일", []string{"museum", "art_gallery", "historical"}},
	StyleFood:    {"미식 여행 스타일", []string{"restaurant", "cafe", "food"}},
	StyleCity:    {"도시 탐험 스타일", []string{"shopping_mall", "tourist_attraction", "night_club"}},
}

// DisplayName returns the user-facing label.
func (t TravelStyle) DisplayName() string {
	return stylePolicies[t].DisplayName
}

// PlaceTypes returns the place-category hints for this style.
func (t TravelStyle) PlaceTypes() []string {
	return stylePolicies[t].PlaceTypes
}

// ParseTravelStyles resolves tags case-insensitively and rejects
// duplicates. Between 1 and 2 styles are allowed.
func ParseTravelStyles(values []string) ([]TravelStyle, error) {
	if len(values) < 1 || len(values) > 2 {
		return nil, fmt.Errorf("select 1 to 2 travel styles, got %d", len(values))
	}
	seen := make(map[TravelStyle]bool, len(values))
	out := make([]TravelStyle, 0, len(values))
	for _, v := range values {
		t := TravelStyle(strings.ToUpper(strings.TrimSpace(v)))
		if _, ok := stylePolicies[t]; !ok {
			return nil, fmt.Errorf("unknown travel style %q", v)
		}
		if seen[t] {
			return nil, fmt.Errorf("duplicate travel style %q", v)
		}
		seen[t] = true
		out = append(out, t)
	}
	return out, nil
}

// PlaceTypeHints flattens the category hints of the given styles,
// preserving order and dropping duplicates.
func PlaceTypeHints(styles []TravelStyle) []string {
	seen := make(map[string]bool)
	var hints []string
	for _, s := range styles {
		for _, t := range s.PlaceTypes() {
			if !seen[t] {
				seen[t] = true
				hints = append(hints, t)
			}
		}
	}
	return hints
}

// TransportMode is one selectable way of moving between activities.
type TransportMode string

const (
	TransportBus    TransportMode = "BUS"
	TransportSubway TransportMode = "SUBWAY"
	TransportTaxi   TransportMode = "TAXI"
	TransportWalk   TransportMode = "WALK"
	TransportCar    TransportMode = "CAR"
)

var transportLabels = map[TransportMode]string{
	TransportBus:    "버스",
	TransportSubway: "지하철",
	TransportTaxi:   "택시",
	TransportWalk:   "도보",
	TransportCar:    "자차(렌트)",
}

// DisplayName returns the user-facing label.
func (m TransportMode) DisplayName() string {
	return transportLabels[m]
}

// ParseTransportModes resolves tags case-insensitively. At least one mode
// is required; duplicates collapse to one.
func ParseTransportModes(values []string) ([]TransportMode, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("select at least one transport mode")
	}
	seen := make(map[TransportMode]bool, len(values))
	out := make([]TransportMode, 0, len(values))
	for _, v := range values {
		m := TransportMode(strings.ToUpper(strings.TrimSpace(v)))
		if _, ok := transportLabels[m]; !ok {
			return nil, fmt.Errorf("unknown transport mode %q", v)
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}
