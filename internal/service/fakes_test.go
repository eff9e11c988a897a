package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"WAYGO_BACK-END/internal/models"
	"WAYGO_BACK-END/internal/repository"
)

// memInputRepo is an in-memory InputRepository with the same semantics
// as the Postgres implementation: serialized mutations, overlap checks
// against other finalized records only.
type memInputRepo struct {
	mu     sync.Mutex
	nextID int64
	recs   map[int64]*models.InputRecord
}

func newMemInputRepo() *memInputRepo {
	return &memInputRepo{recs: make(map[int64]*models.InputRecord)}
}

func (r *memInputRepo) Create(ctx context.Context, rec *models.InputRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *rec
	clone.ID = r.nextID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.recs[clone.ID] = &clone
	return clone.ID, nil
}

func (r *memInputRepo) Get(ctx context.Context, id int64) (*models.InputRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *memInputRepo) Mutate(ctx context.Context, id int64, fn func(*models.InputRecord, repository.MutationScope) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recs[id]
	if !ok {
		return repository.ErrNotFound
	}
	clone := *rec
	if err := fn(&clone, memScope{r}); err != nil {
		return err
	}
	clone.UpdatedAt = time.Now()
	r.recs[id] = &clone
	return nil
}

// memScope reads the repository state while Mutate already holds the
// lock, mirroring the transactional scope of the Postgres repository.
type memScope struct {
	repo *memInputRepo
}

func (s memScope) HasOverlappingDates(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID int64) (bool, error) {
	for _, rec := range s.repo.recs {
		if rec.ID == excludeID || rec.UserID != userID || rec.Status == models.InputInProgress {
			continue
		}
		if rec.StartDate == nil || rec.EndDate == nil {
			continue
		}
		if models.RangesOverlap(start, end, *rec.StartDate, *rec.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

// memItineraryRepo mirrors the transactional CreateFull: the itinerary
// write and the input's COMPLETED -> GENERATED flip succeed or fail as
// one unit.
type memItineraryRepo struct {
	mu     sync.Mutex
	nextID int64
	its    map[int64]*models.Itinerary
	inputs *memInputRepo
}

func newMemItineraryRepo(inputs *memInputRepo) *memItineraryRepo {
	return &memItineraryRepo{its: make(map[int64]*models.Itinerary), inputs: inputs}
}

func (r *memItineraryRepo) CreateFull(ctx context.Context, itinerary *models.Itinerary) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs.mu.Lock()
	defer r.inputs.mu.Unlock()

	input, ok := r.inputs.recs[itinerary.InputID]
	if !ok || input.Status != models.InputCompleted {
		return 0, repository.ErrNotCompleted
	}

	r.nextID++
	clone := *itinerary
	clone.ID = r.nextID
	clone.CreatedAt = time.Now()
	clone.UpdatedAt = clone.CreatedAt
	r.its[clone.ID] = &clone
	input.Status = models.InputGenerated
	return clone.ID, nil
}

func (r *memItineraryRepo) Get(ctx context.Context, id int64) (*models.Itinerary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.its[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *it
	return &clone, nil
}

// Stub collaborators.

type stubPlaces struct {
	cities     []CityCandidate
	candidates []PlaceCandidate
}

func (s *stubPlaces) SearchCity(ctx context.Context, cityName string) ([]CityCandidate, error) {
	return s.cities, nil
}

func (s *stubPlaces) RankPlaces(ctx context.Context, city, cityPlaceID string, typeHints []string, count int) ([]PlaceCandidate, error) {
	if count < len(s.candidates) {
		return s.candidates[:count], nil
	}
	return s.candidates, nil
}

type stubFlights struct {
	offers []FlightOffer
	calls  int
}

func (s *stubFlights) Recommend(ctx context.Context, destinationCity string, start, end *time.Time) ([]FlightOffer, error) {
	s.calls++
	return s.offers, nil
}

type stubWeather struct {
	forecast Forecast
}

func (s *stubWeather) Forecast(ctx context.Context, city string, date time.Time) (Forecast, error) {
	return s.forecast, nil
}
