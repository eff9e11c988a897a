package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"WAYGO_BACK-END/internal/models"
	"WAYGO_BACK-END/internal/repository"
)

func newTestInputService() (*InputService, *memInputRepo, *stubFlights) {
	repo := newMemInputRepo()
	flights := &stubFlights{offers: []FlightOffer{
		{FlightNumber: "KE123", Airline: "대한항공", Price: 350000, Currency: "KRW"},
	}}
	places := &stubPlaces{cities: []CityCandidate{
		{PlaceID: "tokyo-1", Name: "도쿄", FormattedAddress: "Tokyo, Japan"},
	}}
	return NewInputService(repo, places, flights), repo, flights
}

func startWizard(t *testing.T, svc *InputService) (uuid.UUID, int64) {
	t.Helper()
	userID := uuid.New()
	id, err := svc.SelectCity(context.Background(), userID, "도쿄", "tokyo-1")
	require.NoError(t, err)
	return userID, id
}

// fillSteps completes steps 2 through 7 so step 8 can seal the record.
func fillSteps(t *testing.T, svc *InputService, userID uuid.UUID, id int64) {
	t.Helper()
	ctx := context.Background()

	start := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SaveStep2(ctx, userID, id, start, start.AddDate(0, 0, 2)))
	_, err := svc.SaveStep3(ctx, userID, id, false, nil, nil)
	require.NoError(t, err)
	require.NoError(t, svc.SaveStep4(ctx, userID, id, 2))
	require.NoError(t, svc.SaveStep5(ctx, userID, id, []string{"SUBWAY", "WALK"}))
	require.NoError(t, svc.SaveStep6(ctx, userID, id, []string{"CULTURE"}, "PACKED"))
	require.NoError(t, svc.SaveStep7(ctx, userID, id, 300000))
}

func TestSearchCityRequiresName(t *testing.T) {
	svc, _, _ := newTestInputService()
	_, err := svc.SearchCity(context.Background(), "")
	var verr ValidationError
	assert.ErrorAs(t, err, &verr)

	cities, err := svc.SearchCity(context.Background(), "도쿄")
	require.NoError(t, err)
	assert.Len(t, cities, 1)
}

func TestSelectCityCreatesInProgressRecord(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)

	rec, err := svc.Get(context.Background(), userID, id)
	require.NoError(t, err)
	assert.Equal(t, models.InputInProgress, rec.Status)
	assert.Equal(t, "도쿄", rec.DestinationCity)
	assert.Equal(t, "tokyo-1", rec.DestinationPlaceID)
}

func TestSaveStep2Validation(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	start := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)

	// End before start.
	err := svc.SaveStep2(ctx, userID, id, start, start.AddDate(0, 0, -1))
	assert.ErrorIs(t, err, ErrDateRangeInvalid)

	// 15 days exceeds the cap.
	err = svc.SaveStep2(ctx, userID, id, start, start.AddDate(0, 0, 14))
	assert.ErrorIs(t, err, ErrDateRangeInvalid)

	// Single-day trips are allowed.
	require.NoError(t, svc.SaveStep2(ctx, userID, id, start, start))
	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.TotalDays)

	// Steps may be revisited while the input is mutable.
	require.NoError(t, svc.SaveStep2(ctx, userID, id, start, start.AddDate(0, 0, 2)))
	rec, err = svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, 3, rec.TotalDays)
}

func TestSaveStep2OverlapAgainstFinalizedTrips(t *testing.T) {
	svc, repo, _ := newTestInputService()
	ctx := context.Background()
	userID := uuid.New()

	start := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 2)

	// A COMPLETED trip of the same user occupies the dates.
	otherID, err := svc.SelectCity(ctx, userID, "도쿄", "tokyo-1")
	require.NoError(t, err)
	require.NoError(t, repo.Mutate(ctx, otherID, func(rec *models.InputRecord, _ repository.MutationScope) error {
		rec.StartDate = &start
		rec.EndDate = &end
		rec.Status = models.InputCompleted
		return nil
	}))

	id, err := svc.SelectCity(ctx, userID, "도쿄", "tokyo-1")
	require.NoError(t, err)
	err = svc.SaveStep2(ctx, userID, id, end, end.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, ErrDateOverlap, "touching endpoints overlap")

	// Nothing was written on the rejected step.
	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Nil(t, rec.StartDate)

	// Another user's identical dates are fine.
	foreignUser := uuid.New()
	foreignID, err := svc.SelectCity(ctx, foreignUser, "도쿄", "tokyo-1")
	require.NoError(t, err)
	assert.NoError(t, svc.SaveStep2(ctx, foreignUser, foreignID, start, end))

	// An IN_PROGRESS record of the same user does not conflict.
	assert.NoError(t, svc.SaveStep2(ctx, userID, id, end.AddDate(0, 0, 1), end.AddDate(0, 0, 3)))

	// Re-editing step 2 on the finalized record never conflicts with
	// itself.
	assert.NoError(t, svc.SaveStep2(ctx, userID, otherID, start, end))
}

func TestSaveStep3WithTicket(t *testing.T) {
	svc, _, flights := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	arrival := 14 * 60
	departure := 18 * 60

	_, err := svc.SaveStep3(ctx, userID, id, true, &arrival, nil)
	var verr ValidationError
	assert.ErrorAs(t, err, &verr, "both times are required with a ticket")

	_, err = svc.SaveStep3(ctx, userID, id, true, &departure, &arrival)
	assert.ErrorAs(t, err, &verr, "departure must be after arrival")

	offers, err := svc.SaveStep3(ctx, userID, id, true, &arrival, &departure)
	require.NoError(t, err)
	assert.Nil(t, offers, "no recommendations when a ticket is held")
	assert.Zero(t, flights.calls)

	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.True(t, rec.HasTransportTicket)
	require.NotNil(t, rec.ArrivalTime)
	assert.Equal(t, arrival, *rec.ArrivalTime)
}

func TestSaveStep3WithoutTicketRecommendsFlights(t *testing.T) {
	svc, _, flights := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	offers, err := svc.SaveStep3(ctx, userID, id, false, nil, nil)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "KE123", offers[0].FlightNumber)
	assert.Equal(t, 1, flights.calls)

	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.False(t, rec.HasTransportTicket)
	assert.Nil(t, rec.ArrivalTime)
	assert.Nil(t, rec.DepartureTime)
}

func TestSaveStep4PartySizeBounds(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	var verr ValidationError
	assert.ErrorAs(t, svc.SaveStep4(ctx, userID, id, 0), &verr)
	assert.ErrorAs(t, svc.SaveStep4(ctx, userID, id, 11), &verr)
	assert.NoError(t, svc.SaveStep4(ctx, userID, id, 1))
	assert.NoError(t, svc.SaveStep4(ctx, userID, id, 10))
}

func TestSaveStep5TransportModes(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	var verr ValidationError
	assert.ErrorAs(t, svc.SaveStep5(ctx, userID, id, nil), &verr)
	assert.ErrorAs(t, svc.SaveStep5(ctx, userID, id, []string{"BOAT"}), &verr)

	require.NoError(t, svc.SaveStep5(ctx, userID, id, []string{"subway", "WALK"}))
	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, []models.TransportMode{models.TransportSubway, models.TransportWalk}, rec.TransportModes)
}

func TestSaveStep6StylesAndDensity(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	var verr ValidationError
	assert.ErrorAs(t, svc.SaveStep6(ctx, userID, id, []string{"CULTURE", "FOOD", "NATURE"}, "PACKED"), &verr)
	assert.ErrorAs(t, svc.SaveStep6(ctx, userID, id, []string{"CULTURE"}, "MEDIUM"), &verr)

	require.NoError(t, svc.SaveStep6(ctx, userID, id, []string{"culture"}, "packed"))
	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, []models.TravelStyle{models.StyleCulture}, rec.TravelStyles)
	assert.Equal(t, models.DensityPacked, rec.ScheduleDensity)
}

func TestSaveStep7BudgetFloor(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	var verr ValidationError
	assert.ErrorAs(t, svc.SaveStep7(ctx, userID, id, 9999), &verr)
	assert.NoError(t, svc.SaveStep7(ctx, userID, id, 10000))
}

func TestSaveStep8CompletesInput(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	fillSteps(t, svc, userID, id)
	ctx := context.Background()

	var verr ValidationError
	assert.ErrorAs(t, svc.SaveStep8(ctx, userID, id, true, nil), &verr, "budget required with accommodation")
	low := 5000
	assert.ErrorAs(t, svc.SaveStep8(ctx, userID, id, true, &low), &verr)

	budget := 50000
	require.NoError(t, svc.SaveStep8(ctx, userID, id, true, &budget))

	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, models.InputCompleted, rec.Status)
	assert.True(t, rec.NeedsAccommodation)
	require.NotNil(t, rec.AccommodationBudget)
	assert.Equal(t, budget, *rec.AccommodationBudget)

	// Re-running step 8 on a COMPLETED input keeps it COMPLETED.
	require.NoError(t, svc.SaveStep8(ctx, userID, id, false, nil))
	rec, err = svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, models.InputCompleted, rec.Status)
	assert.Nil(t, rec.AccommodationBudget)
}

func TestSaveStep8RejectsUnfilledRecord(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	// Straight from step 1 to step 8: the record has no dates, party,
	// modes, styles, or budget yet.
	err := svc.SaveStep8(ctx, userID, id, false, nil)
	assert.ErrorIs(t, err, ErrInputIncomplete)

	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, models.InputInProgress, rec.Status, "a rejected step 8 seals nothing")

	// One missing step is enough to block completion.
	start := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SaveStep2(ctx, userID, id, start, start.AddDate(0, 0, 2)))
	require.NoError(t, svc.SaveStep4(ctx, userID, id, 2))
	require.NoError(t, svc.SaveStep5(ctx, userID, id, []string{"WALK"}))
	require.NoError(t, svc.SaveStep6(ctx, userID, id, []string{"FOOD"}, "RELAXED"))
	err = svc.SaveStep8(ctx, userID, id, false, nil)
	assert.ErrorIs(t, err, ErrInputIncomplete, "budget still missing")

	require.NoError(t, svc.SaveStep7(ctx, userID, id, 100000))
	require.NoError(t, svc.SaveStep8(ctx, userID, id, false, nil))
	rec, err = svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, models.InputCompleted, rec.Status)
}

func TestStepsRejectUnknownInput(t *testing.T) {
	svc, _, _ := newTestInputService()
	ctx := context.Background()
	userID := uuid.New()

	assert.ErrorIs(t, svc.SaveStep4(ctx, userID, 999, 2), ErrInputNotFound)
	_, err := svc.Get(ctx, userID, 999)
	assert.ErrorIs(t, err, ErrInputNotFound)
}

func TestStepsHiddenFromOtherUsers(t *testing.T) {
	svc, _, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()
	stranger := uuid.New()

	start := time.Date(2025, 11, 9, 0, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, svc.SaveStep2(ctx, stranger, id, start, start.AddDate(0, 0, 1)), ErrInputNotFound)
	assert.ErrorIs(t, svc.SaveStep4(ctx, stranger, id, 2), ErrInputNotFound)
	_, err := svc.Get(ctx, stranger, id)
	assert.ErrorIs(t, err, ErrInputNotFound)

	// The owner is unaffected.
	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Nil(t, rec.StartDate, "the stranger's write never landed")
}

func TestStepsRejectGeneratedInput(t *testing.T) {
	svc, repo, _ := newTestInputService()
	userID, id := startWizard(t, svc)
	ctx := context.Background()

	require.NoError(t, repo.Mutate(ctx, id, func(rec *models.InputRecord, _ repository.MutationScope) error {
		rec.Status = models.InputGenerated
		return nil
	}))

	assert.ErrorIs(t, svc.SaveStep4(ctx, userID, id, 2), ErrInputReadOnly)
	assert.ErrorIs(t, svc.SaveStep7(ctx, userID, id, 100000), ErrInputReadOnly)
	_, err := svc.SaveStep3(ctx, userID, id, false, nil, nil)
	assert.ErrorIs(t, err, ErrInputReadOnly)

	// Reading stays allowed.
	rec, err := svc.Get(ctx, userID, id)
	require.NoError(t, err)
	assert.Equal(t, models.InputGenerated, rec.Status)
}
