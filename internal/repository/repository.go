package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"WAYGO_BACK-END/internal/models"
)

// Storage-level sentinel errors. Services translate these into their own
// domain errors.
var (
	// ErrNotFound: no row for the requested id.
	ErrNotFound = errors.New("record not found")

	// ErrNotCompleted: the generation write found the input no longer in
	// COMPLETED status (raced or already generated).
	ErrNotCompleted = errors.New("input not in completed status")
)

// InputRepository persists itinerary input records.
type InputRepository interface {
	// Create inserts a new record and returns its id.
	Create(ctx context.Context, rec *models.InputRecord) (int64, error)

	// Get loads the full record.
	Get(ctx context.Context, id int64) (*models.InputRecord, error)

	// Mutate loads the record under a per-record write lock, applies fn,
	// and persists the result. An error from fn aborts without writing.
	// The scope runs reads inside the same transaction as the lock.
	Mutate(ctx context.Context, id int64, fn func(rec *models.InputRecord, scope MutationScope) error) error
}

// MutationScope exposes queries that execute inside the transaction of
// the surrounding Mutate call, so a step's validation reads and its
// write see one consistent snapshot.
type MutationScope interface {
	// HasOverlappingDates reports whether any other non-IN_PROGRESS
	// record of the user intersects [start,end] (inclusive bounds).
	// excludeID keeps a record from conflicting with itself.
	HasOverlappingDates(ctx context.Context, userID uuid.UUID, start, end time.Time, excludeID int64) (bool, error)
}

// ItineraryRepository persists generated itineraries.
type ItineraryRepository interface {
	// CreateFull writes the itinerary with all days and activities and
	// advances the source input to GENERATED, all in one transaction.
	// Nothing is visible from a failed run.
	CreateFull(ctx context.Context, itinerary *models.Itinerary) (int64, error)

	// Get loads the itinerary with days and activities in order.
	Get(ctx context.Context, id int64) (*models.Itinerary, error)
}
