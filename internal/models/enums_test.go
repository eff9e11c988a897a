package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputStatusTransitions(t *testing.T) {
	assert.True(t, InputInProgress.CanTransition(InputCompleted))
	assert.True(t, InputCompleted.CanTransition(InputGenerated))

	// No skipping, no going back.
	assert.False(t, InputInProgress.CanTransition(InputGenerated))
	assert.False(t, InputCompleted.CanTransition(InputInProgress))
	assert.False(t, InputGenerated.CanTransition(InputCompleted))
	assert.False(t, InputGenerated.CanTransition(InputInProgress))

	next, err := InputInProgress.Transition(InputCompleted)
	require.NoError(t, err)
	assert.Equal(t, InputCompleted, next)

	_, err = InputGenerated.Transition(InputCompleted)
	assert.Error(t, err)
}

func TestInputStatusMutable(t *testing.T) {
	assert.True(t, InputInProgress.Mutable())
	assert.True(t, InputCompleted.Mutable())
	assert.False(t, InputGenerated.Mutable())
}

func TestItineraryStatusTransitions(t *testing.T) {
	assert.True(t, ItineraryActive.CanTransition(ItineraryCompleted))
	assert.True(t, ItineraryActive.CanTransition(ItineraryCancelled))
	assert.False(t, ItineraryCompleted.CanTransition(ItineraryActive))
	assert.False(t, ItineraryCancelled.CanTransition(ItineraryCompleted))
}

func TestDensityPolicies(t *testing.T) {
	relaxed := DensityRelaxed.Policy()
	assert.Equal(t, 11, relaxed.StartHour)
	assert.Equal(t, 2, relaxed.PlacesPerDay)

	packed := DensityPacked.Policy()
	assert.Equal(t, 8, packed.StartHour)
	assert.Equal(t, 4, packed.PlacesPerDay)
}

func TestParseScheduleDensity(t *testing.T) {
	d, err := ParseScheduleDensity("relaxed")
	require.NoError(t, err)
	assert.Equal(t, DensityRelaxed, d)

	d, err = ParseScheduleDensity(" PACKED ")
	require.NoError(t, err)
	assert.Equal(t, DensityPacked, d)

	_, err = ParseScheduleDensity("medium")
	assert.Error(t, err)
}

func TestParseTravelStyles(t *testing.T) {
	styles, err := ParseTravelStyles([]string{"culture", "FOOD"})
	require.NoError(t, err)
	assert.Equal(t, []TravelStyle{StyleCulture, StyleFood}, styles)

	_, err = ParseTravelStyles(nil)
	assert.Error(t, err, "at least one style is required")

	_, err = ParseTravelStyles([]string{"CULTURE", "FOOD", "NATURE"})
	assert.Error(t, err, "at most two styles")

	_, err = ParseTravelStyles([]string{"CULTURE", "culture"})
	assert.Error(t, err, "duplicates are rejected")

	_, err = ParseTravelStyles([]string{"SHOPPING"})
	assert.Error(t, err)
}

func TestPlaceTypeHints(t *testing.T) {
	// FOOD and RELAXED both carry "cafe"; the hint appears once.
	hints := PlaceTypeHints([]TravelStyle{StyleFood, StyleRelaxed})
	assert.Equal(t, []string{"restaurant", "cafe", "food", "spa", "beach"}, hints)
}

func TestParseTransportModes(t *testing.T) {
	modes, err := ParseTransportModes([]string{"subway", "WALK", "Subway"})
	require.NoError(t, err)
	assert.Equal(t, []TransportMode{TransportSubway, TransportWalk}, modes, "duplicates collapse")

	_, err = ParseTransportModes(nil)
	assert.Error(t, err)

	_, err = ParseTransportModes([]string{"BOAT"})
	assert.Error(t, err)
}
