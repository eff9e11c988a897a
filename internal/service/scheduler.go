package service

import (
	"math"
	"time"

	"github.com/golang/geo/s2"

	"WAYGO_BACK-END/internal/models"
)

// Scheduling defaults. Visit lengths stay inside the domain's typical
// 60-180 minute window regardless of what the collaborator estimates.
const (
	minVisitMinutes = 60
	maxVisitMinutes = 180

	mealMinutes     = 60
	defaultMealCost = 15000

	checkInMinutes = 30

	defaultLegMinutes = 20

	earthRadiusKm = 6371.0
)

// legProfile holds the per-mode defaults the scheduler prices legs with.
// The domain fixes no cost/speed table, so these are implementation
// constants, not invariants.
type legProfile struct {
	minutesPerKm float64
	fixedMinutes int // boarding, waiting, parking
	baseCost     int
	costPerKm    int
}

var legProfiles = map[models.TransportMode]legProfile{
	models.TransportWalk:   {minutesPerKm: 12, fixedMinutes: 0, baseCost: 0},
	models.TransportBus:    {minutesPerKm: 4, fixedMinutes: 10, baseCost: 1500},
	models.TransportSubway: {minutesPerKm: 3, fixedMinutes: 8, baseCost: 1500},
	models.TransportTaxi:   {minutesPerKm: 3, fixedMinutes: 2, baseCost: 4000, costPerKm: 1000},
	models.TransportCar:    {minutesPerKm: 3, fixedMinutes: 5, baseCost: 3000},
}

// Distance bands from the domain's transport guidance: short hops on
// foot, mid-range by bus/subway, anything longer by rail or road.
var bandPreferences = []struct {
	maxKm float64
	order []models.TransportMode
}{
	{1, []models.TransportMode{models.TransportWalk, models.TransportBus, models.TransportSubway, models.TransportTaxi, models.TransportCar}},
	{5, []models.TransportMode{models.TransportBus, models.TransportSubway, models.TransportTaxi, models.TransportCar, models.TransportWalk}},
	{math.MaxFloat64, []models.TransportMode{models.TransportSubway, models.TransportCar, models.TransportTaxi, models.TransportBus, models.TransportWalk}},
}

// DayPlan is everything ScheduleDay needs to lay out one day. It is a
// pure value: the candidate list was already fetched by the caller.
type DayPlan struct {
	DayNumber int
	Date      time.Time
	LastDay   bool

	Density            models.ScheduleDensity
	TransportModes     []models.TransportMode
	NeedsAccommodation bool

	// ArrivalTime overrides the density start hour on day 1 when the
	// user holds a pre-booked ticket. Minutes since midnight.
	ArrivalTime *int

	Candidates []PlaceCandidate
}

// startMinutes resolves the day's start time.
func (p DayPlan) startMinutes() int {
	if p.DayNumber == 1 && p.ArrivalTime != nil {
		return *p.ArrivalTime
	}
	return p.Density.Policy().StartHour * 60
}

// draft is an activity plus the coordinates used for leg estimation.
type draft struct {
	activity models.Activity
	lat, lng float64
}

// ScheduleDay produces the day's time-ordered activities and total
// spend. The sequence is strictly chained: each activity starts exactly
// at the previous activity's end plus the leg duration. With fewer
// candidates than the density target the day degrades to what is
// available; the meal and accommodation slots stay.
func ScheduleDay(p DayPlan) ([]models.Activity, int) {
	policy := p.Density.Policy()

	places := p.Candidates
	if len(places) > policy.PlacesPerDay {
		places = places[:policy.PlacesPerDay]
	}

	// Lunch lands after half of the day's place visits.
	mealAfter := (len(places) + 1) / 2

	drafts := make([]draft, 0, len(places)+2)
	for i, c := range places {
		if i == mealAfter {
			drafts = append(drafts, mealDraft())
		}
		drafts = append(drafts, placeDraft(c, policy))
	}
	if len(places) <= mealAfter {
		drafts = append(drafts, mealDraft())
	}
	if p.NeedsAccommodation && !p.LastDay {
		drafts = append(drafts, draft{activity: models.Activity{
			ActivityType:    models.ActivityAccommodation,
			PlaceName:       "숙소 체크인",
			DurationMinutes: checkInMinutes,
			Tips:            "체크인 후 다음 날 일정을 확인해두세요",
		}})
	}

	activities := make([]models.Activity, len(drafts))
	var spent int
	var history []models.TransportMode
	cur := p.startMinutes()

	for i := range drafts {
		a := drafts[i].activity
		a.Sequence = i + 1
		a.StartTime = cur
		a.EndTime = cur + a.DurationMinutes

		if i < len(drafts)-1 {
			km := distanceKm(drafts[i], drafts[i+1])
			mode := chooseMode(p.TransportModes, km, len(history), history)
			minutes, cost := legEstimate(mode, km)
			a.TransportToNext = &mode
			a.TransportDuration = minutes
			a.TransportCost = cost
			history = append(history, mode)
			cur = a.EndTime + minutes
		} else {
			cur = a.EndTime
		}

		spent += a.Cost()
		activities[i] = a
	}

	return activities, spent
}

func placeDraft(c PlaceCandidate, policy models.DensityPolicy) draft {
	minutes := c.VisitMinutes
	if minutes <= 0 {
		minutes = policy.DefaultVisitMinutes
	}
	if minutes < minVisitMinutes {
		minutes = minVisitMinutes
	}
	if minutes > maxVisitMinutes {
		minutes = maxVisitMinutes
	}
	return draft{
		activity: models.Activity{
			ActivityType:    models.ActivityPlace,
			PlaceName:       c.Name,
			PlaceID:         c.PlaceID,
			Address:         c.Address,
			Rating:          c.Rating,
			DurationMinutes: minutes,
			EntranceFee:     c.EntranceFee,
		},
		lat: c.Lat,
		lng: c.Lng,
	}
}

func mealDraft() draft {
	return draft{activity: models.Activity{
		ActivityType:    models.ActivityMeal,
		PlaceName:       "점심 식사",
		DurationMinutes: mealMinutes,
		MealCost:        defaultMealCost,
	}}
}

// chooseMode picks the leg's transport mode from the allowed set.
// Preference follows the distance bands when coordinates are known and
// falls back to round-robin otherwise; the same mode is never assigned
// three legs in a row when an alternative exists.
func chooseMode(allowed []models.TransportMode, km float64, legIndex int, history []models.TransportMode) models.TransportMode {
	if len(allowed) == 0 {
		// Step 5 guarantees a non-empty set; guard for direct callers.
		return models.TransportWalk
	}

	choice := allowed[legIndex%len(allowed)]
	if km > 0 {
		for _, band := range bandPreferences {
			if km <= band.maxKm {
				for _, pref := range band.order {
					if containsMode(allowed, pref) {
						choice = pref
						break
					}
				}
				break
			}
		}
	}

	// With a single selected mode the repetition rule is vacuously
	// inapplicable.
	if len(allowed) < 2 {
		return choice
	}
	n := len(history)
	if n >= 2 && history[n-1] == choice && history[n-2] == choice {
		for _, alt := range allowed {
			if alt != choice {
				return alt
			}
		}
	}
	return choice
}

func containsMode(modes []models.TransportMode, m models.TransportMode) bool {
	for _, v := range modes {
		if v == m {
			return true
		}
	}
	return false
}

// legEstimate prices one leg. Unknown distances use the default leg
// duration and the mode's base cost.
func legEstimate(mode models.TransportMode, km float64) (minutes, cost int) {
	p := legProfiles[mode]
	if km <= 0 {
		return defaultLegMinutes, p.baseCost
	}
	minutes = p.fixedMinutes + int(math.Ceil(km*p.minutesPerKm))
	if minutes < 1 {
		minutes = 1
	}
	cost = p.baseCost + int(math.Ceil(km))*p.costPerKm
	return minutes, cost
}

// distanceKm is the great-circle distance between two drafts' places.
// Zero when either side has no coordinates (meals, check-ins, candidates
// without geometry).
func distanceKm(a, b draft) float64 {
	if (a.lat == 0 && a.lng == 0) || (b.lat == 0 && b.lng == 0) {
		return 0
	}
	from := s2.LatLngFromDegrees(a.lat, a.lng)
	to := s2.LatLngFromDegrees(b.lat, b.lng)
	return from.Distance(to).Radians() * earthRadiusKm
}
