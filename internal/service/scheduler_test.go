package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WAYGO_BACK-END/internal/models"
)

func testCandidates(n int) []PlaceCandidate {
	out := make([]PlaceCandidate, n)
	for i := range out {
		out[i] = PlaceCandidate{
			PlaceID: fmt.Sprintf("place-%d", i+1),
			Name:    fmt.Sprintf("명소 %d", i+1),
			Address: "서울 어딘가",
		}
	}
	return out
}

func activityTypes(activities []models.Activity) []models.ActivityType {
	out := make([]models.ActivityType, len(activities))
	for i, a := range activities {
		out[i] = a.ActivityType
	}
	return out
}

func TestScheduleDayPackedLayout(t *testing.T) {
	activities, spent := ScheduleDay(DayPlan{
		DayNumber:      2,
		Date:           time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC),
		Density:        models.DensityPacked,
		TransportModes: []models.TransportMode{models.TransportSubway},
		Candidates:     testCandidates(4),
	})

	// Four places with lunch in the middle.
	assert.Equal(t, []models.ActivityType{
		models.ActivityPlace,
		models.ActivityPlace,
		models.ActivityMeal,
		models.ActivityPlace,
		models.ActivityPlace,
	}, activityTypes(activities))

	assert.Equal(t, 8*60, activities[0].StartTime, "packed days start at 08:00")

	// One meal per day at the default cost.
	assert.GreaterOrEqual(t, spent, 15000)
	assert.Equal(t, 15000, activities[2].MealCost)
}

func TestScheduleDayRelaxedLayout(t *testing.T) {
	activities, _ := ScheduleDay(DayPlan{
		DayNumber:      1,
		Density:        models.DensityRelaxed,
		TransportModes: []models.TransportMode{models.TransportWalk},
		Candidates:     testCandidates(5),
	})

	// Relaxed caps the day at two places.
	assert.Equal(t, []models.ActivityType{
		models.ActivityPlace,
		models.ActivityMeal,
		models.ActivityPlace,
	}, activityTypes(activities))

	assert.Equal(t, 11*60, activities[0].StartTime, "relaxed days start at 11:00")
}

func TestScheduleDayArrivalOverride(t *testing.T) {
	arrival := 14*60 + 30
	activities, _ := ScheduleDay(DayPlan{
		DayNumber:      1,
		Density:        models.DensityPacked,
		TransportModes: []models.TransportMode{models.TransportBus},
		ArrivalTime:    &arrival,
		Candidates:     testCandidates(2),
	})
	assert.Equal(t, arrival, activities[0].StartTime)

	// The override only applies on day 1.
	activities, _ = ScheduleDay(DayPlan{
		DayNumber:      2,
		Density:        models.DensityPacked,
		TransportModes: []models.TransportMode{models.TransportBus},
		ArrivalTime:    &arrival,
		Candidates:     testCandidates(2),
	})
	assert.Equal(t, 8*60, activities[0].StartTime)
}

func TestScheduleDayChainInvariant(t *testing.T) {
	activities, _ := ScheduleDay(DayPlan{
		DayNumber:          3,
		Density:            models.DensityPacked,
		TransportModes:     []models.TransportMode{models.TransportSubway, models.TransportWalk},
		NeedsAccommodation: true,
		Candidates:         testCandidates(4),
	})
	require.NotEmpty(t, activities)

	for i, a := range activities {
		assert.Equal(t, i+1, a.Sequence)
		assert.Equal(t, a.StartTime+a.DurationMinutes, a.EndTime)
		if i < len(activities)-1 {
			require.NotNil(t, a.TransportToNext, "activity %d needs an outbound leg", i+1)
			assert.Equal(t, a.EndTime+a.TransportDuration, activities[i+1].StartTime,
				"activity %d must start exactly after the leg", i+2)
		} else {
			assert.Nil(t, a.TransportToNext, "last activity has no outbound leg")
		}
	}
}

func TestScheduleDayAccommodationPlacement(t *testing.T) {
	plan := DayPlan{
		DayNumber:          1,
		Density:            models.DensityRelaxed,
		TransportModes:     []models.TransportMode{models.TransportWalk},
		NeedsAccommodation: true,
		Candidates:         testCandidates(2),
	}

	activities, _ := ScheduleDay(plan)
	require.NotEmpty(t, activities)
	last := activities[len(activities)-1]
	assert.Equal(t, models.ActivityAccommodation, last.ActivityType, "check-in closes a non-last day")
	assert.Equal(t, checkInMinutes, last.DurationMinutes)

	plan.LastDay = true
	activities, _ = ScheduleDay(plan)
	for _, a := range activities {
		assert.NotEqual(t, models.ActivityAccommodation, a.ActivityType, "no check-in on the last day")
	}
}

func TestScheduleDayNoThreeConsecutiveModes(t *testing.T) {
	// Places spaced over 5km apart so the distance band keeps asking
	// for the subway; the third time in a row it must yield to walking.
	candidates := testCandidates(4)
	coords := [][2]float64{
		{37.50, 126.90},
		{37.50, 127.02},
		{37.59, 127.02},
		{37.59, 127.14},
	}
	for i := range candidates {
		candidates[i].Lat = coords[i][0]
		candidates[i].Lng = coords[i][1]
	}

	activities, _ := ScheduleDay(DayPlan{
		DayNumber:          2,
		Density:            models.DensityPacked,
		TransportModes:     []models.TransportMode{models.TransportSubway, models.TransportWalk},
		NeedsAccommodation: true,
		Candidates:         candidates,
	})

	var legs []models.TransportMode
	for _, a := range activities {
		if a.TransportToNext != nil {
			legs = append(legs, *a.TransportToNext)
		}
	}
	require.Len(t, legs, 5)
	// Meal and check-in legs have no coordinates and round-robin; the
	// final leg would repeat the subway a third time and switches.
	assert.Equal(t, []models.TransportMode{
		models.TransportSubway,
		models.TransportWalk,
		models.TransportSubway,
		models.TransportSubway,
		models.TransportWalk,
	}, legs)
	for i := 2; i < len(legs); i++ {
		same := legs[i] == legs[i-1] && legs[i-1] == legs[i-2]
		assert.False(t, same, "three identical consecutive legs at %d", i)
	}
}

func TestScheduleDaySingleModeRepeats(t *testing.T) {
	activities, _ := ScheduleDay(DayPlan{
		DayNumber:      2,
		Density:        models.DensityPacked,
		TransportModes: []models.TransportMode{models.TransportCar},
		Candidates:     testCandidates(4),
	})

	for _, a := range activities {
		if a.TransportToNext != nil {
			assert.Equal(t, models.TransportCar, *a.TransportToNext)
		}
	}
}

func TestScheduleDayDegradesWithFewCandidates(t *testing.T) {
	activities, _ := ScheduleDay(DayPlan{
		DayNumber:      2,
		Density:        models.DensityPacked,
		TransportModes: []models.TransportMode{models.TransportWalk},
		Candidates:     testCandidates(1),
	})

	// One place, then lunch; the day shrinks instead of failing.
	assert.Equal(t, []models.ActivityType{
		models.ActivityPlace,
		models.ActivityMeal,
	}, activityTypes(activities))
}

func TestScheduleDayVisitMinutesClamped(t *testing.T) {
	candidates := testCandidates(2)
	candidates[0].VisitMinutes = 10  // below the floor
	candidates[1].VisitMinutes = 600 // above the ceiling

	activities, _ := ScheduleDay(DayPlan{
		DayNumber:      2,
		Density:        models.DensityRelaxed,
		TransportModes: []models.TransportMode{models.TransportWalk},
		Candidates:     candidates,
	})

	var visits []int
	for _, a := range activities {
		if a.ActivityType == models.ActivityPlace {
			visits = append(visits, a.DurationMinutes)
		}
	}
	assert.Equal(t, []int{minVisitMinutes, maxVisitMinutes}, visits)
}

func TestChooseModeDistanceBands(t *testing.T) {
	all := []models.TransportMode{
		models.TransportWalk, models.TransportBus,
		models.TransportSubway, models.TransportTaxi,
	}

	assert.Equal(t, models.TransportWalk, chooseMode(all, 0.5, 0, nil), "short hops go on foot")
	assert.Equal(t, models.TransportBus, chooseMode(all, 3, 0, nil), "mid range rides the bus")
	assert.Equal(t, models.TransportSubway, chooseMode(all, 12, 0, nil), "long legs take the subway")

	// Preference falls through to the best allowed mode.
	assert.Equal(t, models.TransportTaxi,
		chooseMode([]models.TransportMode{models.TransportTaxi}, 0.5, 0, nil))

	// Two subway legs in a row override the band preference.
	pair := []models.TransportMode{models.TransportSubway, models.TransportWalk}
	history := []models.TransportMode{models.TransportSubway, models.TransportSubway}
	assert.Equal(t, models.TransportWalk, chooseMode(pair, 12, 2, history))
	assert.Equal(t, models.TransportSubway,
		chooseMode(pair, 12, 2, []models.TransportMode{models.TransportWalk, models.TransportSubway}),
		"a single repeat is allowed")
}

func TestLegEstimateUnknownDistance(t *testing.T) {
	minutes, cost := legEstimate(models.TransportSubway, 0)
	assert.Equal(t, defaultLegMinutes, minutes)
	assert.Equal(t, 1500, cost)

	minutes, cost = legEstimate(models.TransportWalk, 0)
	assert.Equal(t, defaultLegMinutes, minutes)
	assert.Equal(t, 0, cost)
}

func TestDistanceKm(t *testing.T) {
	// Seoul City Hall to Gangnam Station, roughly 8.5km.
	a := draft{lat: 37.5663, lng: 126.9779}
	b := draft{lat: 37.4979, lng: 127.0276}
	km := distanceKm(a, b)
	assert.InDelta(t, 8.6, km, 1.0)

	// Missing coordinates yield zero.
	assert.Zero(t, distanceKm(a, draft{}))
	assert.Zero(t, distanceKm(draft{}, b))
}
