package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"WAYGO_BACK-END/internal/models"
	"WAYGO_BACK-END/internal/repository"
)

// GenerationService turns one completed input into a full itinerary:
// title, budget split, per-day scheduling with weather, totals, and the
// input's one-way transition to GENERATED. The whole write is atomic; a
// failed run leaves the input COMPLETED and retryable.
type GenerationService struct {
	inputs      repository.InputRepository
	itineraries repository.ItineraryRepository
	recommender PlaceRecommender
	weather     WeatherLookup
}

// NewGenerationService creates a new GenerationService instance
func NewGenerationService(inputs repository.InputRepository, itineraries repository.ItineraryRepository, recommender PlaceRecommender, weather WeatherLookup) *GenerationService {
	return &GenerationService{
		inputs:      inputs,
		itineraries: itineraries,
		recommender: recommender,
		weather:     weather,
	}
}

// Title derives the itinerary title, e.g. "도쿄 2박 3일".
func Title(rec *models.InputRecord) string {
	return fmt.Sprintf("%s %d박 %d일", rec.DestinationCity, rec.TotalDays-1, rec.TotalDays)
}

// Generate builds and persists the itinerary for the caller's inputID,
// returning the new itinerary id.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, inputID int64) (int64, error) {
	rec, err := s.inputs.Get(ctx, inputID)
	if err != nil {
		return 0, mapInputErr(err)
	}
	if rec.UserID != userID {
		return 0, ErrInputNotFound
	}
	if rec.Status != models.InputCompleted {
		return 0, ErrInputNotCompleted
	}
	// A COMPLETED record always carries dates; a stored row that lost
	// them is a state error, not a crash.
	if rec.StartDate == nil || rec.EndDate == nil {
		return 0, ErrInputIncomplete
	}

	log.Printf("generating itinerary: input=%d city=%s days=%d", inputID, rec.DestinationCity, rec.TotalDays)

	policy := rec.ScheduleDensity.Policy()
	hints := models.PlaceTypeHints(rec.TravelStyles)
	candidates, err := s.recommender.RankPlaces(ctx, rec.DestinationCity, rec.DestinationPlaceID,
		hints, rec.TotalDays*policy.PlacesPerDay)
	if err != nil {
		return 0, fmt.Errorf("place recommendation failed: %w", err)
	}

	itinerary := &models.Itinerary{
		InputID:     rec.ID,
		UserID:      rec.UserID,
		Title:       Title(rec),
		TotalBudget: rec.Budget,
		TotalSpent:  0,
		Status:      models.ItineraryActive,
	}

	budgets := DailyBudgets(rec.Budget, rec.TotalDays)
	date := *rec.StartDate

	for day := 1; day <= rec.TotalDays; day++ {
		forecast, err := s.weather.Forecast(ctx, rec.DestinationCity, date)
		if err != nil {
			return 0, fmt.Errorf("weather lookup failed for day %d: %w", day, err)
		}

		lo := (day - 1) * policy.PlacesPerDay
		hi := lo + policy.PlacesPerDay
		if lo > len(candidates) {
			lo = len(candidates)
		}
		if hi > len(candidates) {
			hi = len(candidates)
		}

		plan := DayPlan{
			DayNumber:          day,
			Date:               date,
			LastDay:            day == rec.TotalDays,
			Density:            rec.ScheduleDensity,
			TransportModes:     rec.TransportModes,
			NeedsAccommodation: rec.NeedsAccommodation,
			Candidates:         candidates[lo:hi],
		}
		if day == 1 && rec.HasTransportTicket {
			plan.ArrivalTime = rec.ArrivalTime
		}

		activities, spent := ScheduleDay(plan)

		itinerary.Days = append(itinerary.Days, models.Day{
			DayNumber:        day,
			Date:             date,
			WeatherCondition: forecast.Condition,
			Temperature:      forecast.Temperature,
			WeatherAdvice:    forecast.Advisory,
			DailyBudget:      budgets[day-1],
			DailySpent:       spent,
			Activities:       activities,
		})
		itinerary.TotalSpent += spent
		date = date.AddDate(0, 0, 1)
	}

	id, err := s.itineraries.CreateFull(ctx, itinerary)
	if err != nil {
		if errors.Is(err, repository.ErrNotCompleted) {
			return 0, ErrInputNotCompleted
		}
		return 0, err
	}
	log.Printf("itinerary generated: id=%d spent=%d budget=%d", id, itinerary.TotalSpent, itinerary.TotalBudget)
	return id, nil
}

// Get returns the caller's full itinerary with days and activities.
func (s *GenerationService) Get(ctx context.Context, userID uuid.UUID, itineraryID int64) (*models.Itinerary, error) {
	it, err := s.itineraries.Get(ctx, itineraryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrItineraryNotFound
		}
		return nil, err
	}
	if it.UserID != userID {
		return nil, ErrItineraryNotFound
	}
	return it, nil
}
