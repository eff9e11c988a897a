package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"WAYGO_BACK-END/internal/models"
	"WAYGO_BACK-END/internal/repository"
)

// InputService runs the 8-step trip input pipeline. Each step validates
// its payload, fails fast before any write, and applies a single atomic
// mutation to one record. Every operation takes the authenticated
// caller; a record owned by someone else is reported as not found.
type InputService struct {
	inputs  repository.InputRepository
	places  PlaceSearcher
	flights FlightLookup
}

// NewInputService creates a new InputService instance
func NewInputService(inputs repository.InputRepository, places PlaceSearcher, flights FlightLookup) *InputService {
	return &InputService{inputs: inputs, places: places, flights: flights}
}

// SearchCity resolves a free-text city name through the place-search
// collaborator. Step 1, read-only half.
func (s *InputService) SearchCity(ctx context.Context, cityName string) ([]CityCandidate, error) {
	if cityName == "" {
		return nil, validationf("city_name is required")
	}
	return s.places.SearchCity(ctx, cityName)
}

// SelectCity creates a new input record for the caller with the chosen
// city. Step 1, write half. Returns the new record id.
func (s *InputService) SelectCity(ctx context.Context, userID uuid.UUID, cityName, placeID string) (int64, error) {
	if cityName == "" || placeID == "" {
		return 0, validationf("city_name and place_id are required")
	}
	rec := &models.InputRecord{
		UserID:             userID,
		DestinationCity:    cityName,
		DestinationPlaceID: placeID,
		Status:             models.InputInProgress,
	}
	id, err := s.inputs.Create(ctx, rec)
	if err != nil {
		return 0, err
	}
	log.Printf("step 1 saved: input=%d city=%s", id, cityName)
	return id, nil
}

// stepGuard rejects records the caller does not own and records that
// already produced an itinerary. Ownership hides the record entirely.
func stepGuard(rec *models.InputRecord, userID uuid.UUID) error {
	if rec.UserID != userID {
		return repository.ErrNotFound
	}
	if !rec.Status.Mutable() {
		return ErrInputReadOnly
	}
	return nil
}

// SaveStep2 stores the trip dates after checking the day-count bounds
// and the overlap invariant against the user's other finalized trips.
// The overlap read runs inside the mutation's transaction.
func (s *InputService) SaveStep2(ctx context.Context, userID uuid.UUID, inputID int64, start, end time.Time) error {
	if end.Before(start) {
		return ErrDateRangeInvalid
	}
	days := models.TripDayCount(start, end)
	if days < models.MinTripDays || days > models.MaxTripDays {
		return ErrDateRangeInvalid
	}

	return mapInputErr(s.inputs.Mutate(ctx, inputID, func(rec *models.InputRecord, scope repository.MutationScope) error {
		if err := stepGuard(rec, userID); err != nil {
			return err
		}
		overlap, err := scope.HasOverlappingDates(ctx, rec.UserID, start, end, rec.ID)
		if err != nil {
			return err
		}
		if overlap {
			log.Printf("step 2 rejected: input=%d overlapping %s~%s", inputID, start.Format("2006-01-02"), end.Format("2006-01-02"))
			return ErrDateOverlap
		}
		rec.StartDate = &start
		rec.EndDate = &end
		rec.TotalDays = days
		return nil
	}))
}

// SaveStep3 stores the pre-booked transport info. Without a ticket it
// returns ranked flight offers from the flight-lookup collaborator
// instead; the record then carries no times.
func (s *InputService) SaveStep3(ctx context.Context, userID uuid.UUID, inputID int64, hasTicket bool, arrival, departure *int) ([]FlightOffer, error) {
	if hasTicket {
		if arrival == nil || departure == nil {
			return nil, validationf("arrival_time and departure_time are required with a ticket")
		}
		if *departure <= *arrival {
			return nil, validationf("departure_time must be after arrival_time")
		}
	}

	var rec models.InputRecord
	err := s.inputs.Mutate(ctx, inputID, func(r *models.InputRecord, _ repository.MutationScope) error {
		if err := stepGuard(r, userID); err != nil {
			return err
		}
		r.HasTransportTicket = hasTicket
		if hasTicket {
			r.ArrivalTime = arrival
			r.DepartureTime = departure
		} else {
			r.ArrivalTime = nil
			r.DepartureTime = nil
		}
		rec = *r
		return nil
	})
	if err != nil {
		return nil, mapInputErr(err)
	}
	if hasTicket {
		return nil, nil
	}
	return s.flights.Recommend(ctx, rec.DestinationCity, rec.StartDate, rec.EndDate)
}

// SaveStep4 stores the party size (1-10).
func (s *InputService) SaveStep4(ctx context.Context, userID uuid.UUID, inputID int64, people int) error {
	if people < 1 || people > 10 {
		return validationf("number_of_people must be between 1 and 10")
	}
	return mapInputErr(s.inputs.Mutate(ctx, inputID, func(rec *models.InputRecord, _ repository.MutationScope) error {
		if err := stepGuard(rec, userID); err != nil {
			return err
		}
		rec.NumberOfPeople = people
		return nil
	}))
}

// SaveStep5 resolves and stores the selected transport modes.
func (s *InputService) SaveStep5(ctx context.Context, userID uuid.UUID, inputID int64, modes []string) error {
	parsed, err := models.ParseTransportModes(modes)
	if err != nil {
		return ValidationError(err.Error())
	}
	return mapInputErr(s.inputs.Mutate(ctx, inputID, func(rec *models.InputRecord, _ repository.MutationScope) error {
		if err := stepGuard(rec, userID); err != nil {
			return err
		}
		rec.TransportModes = parsed
		return nil
	}))
}

// SaveStep6 resolves and stores travel styles (1-2, no duplicates) and
// the schedule density.
func (s *InputService) SaveStep6(ctx context.Context, userID uuid.UUID, inputID int64, styles []string, density string) error {
	parsedStyles, err := models.ParseTravelStyles(styles)
	if err != nil {
		return ValidationError(err.Error())
	}
	parsedDensity, err := models.ParseScheduleDensity(density)
	if err != nil {
		return ValidationError(err.Error())
	}
	return mapInputErr(s.inputs.Mutate(ctx, inputID, func(rec *models.InputRecord, _ repository.MutationScope) error {
		if err := stepGuard(rec, userID); err != nil {
			return err
		}
		rec.TravelStyles = parsedStyles
		rec.ScheduleDensity = parsedDensity
		return nil
	}))
}

// SaveStep7 stores the total budget.
func (s *InputService) SaveStep7(ctx context.Context, userID uuid.UUID, inputID int64, budget int) error {
	if budget < models.MinBudget {
		return validationf("budget must be at least %d", models.MinBudget)
	}
	return mapInputErr(s.inputs.Mutate(ctx, inputID, func(rec *models.InputRecord, _ repository.MutationScope) error {
		if err := stepGuard(rec, userID); err != nil {
			return err
		}
		rec.Budget = budget
		return nil
	}))
}

// SaveStep8 stores the accommodation choice and completes the input.
// Completion requires every earlier step to have populated the record;
// step order within 2-7 is free, but 8 seals only a full record.
func (s *InputService) SaveStep8(ctx context.Context, userID uuid.UUID, inputID int64, needs bool, budget *int) error {
	if needs {
		if budget == nil {
			return validationf("accommodation_budget is required when accommodation is needed")
		}
		if *budget < models.MinBudget {
			return validationf("accommodation_budget must be at least %d", models.MinBudget)
		}
	}
	return mapInputErr(s.inputs.Mutate(ctx, inputID, func(rec *models.InputRecord, _ repository.MutationScope) error {
		if err := stepGuard(rec, userID); err != nil {
			return err
		}
		if rec.StartDate == nil || rec.EndDate == nil ||
			rec.NumberOfPeople == 0 ||
			len(rec.TransportModes) == 0 ||
			len(rec.TravelStyles) == 0 || rec.ScheduleDensity == "" ||
			rec.Budget == 0 {
			return ErrInputIncomplete
		}
		rec.NeedsAccommodation = needs
		if needs {
			rec.AccommodationBudget = budget
		} else {
			rec.AccommodationBudget = nil
		}
		if rec.Status == models.InputInProgress {
			next, err := rec.Status.Transition(models.InputCompleted)
			if err != nil {
				return err
			}
			rec.Status = next
		}
		log.Printf("step 8 saved: input=%d completed", inputID)
		return nil
	}))
}

// Get returns the caller's full current record regardless of status.
func (s *InputService) Get(ctx context.Context, userID uuid.UUID, inputID int64) (*models.InputRecord, error) {
	rec, err := s.inputs.Get(ctx, inputID)
	if err != nil {
		return nil, mapInputErr(err)
	}
	if rec.UserID != userID {
		return nil, ErrInputNotFound
	}
	return rec, nil
}
