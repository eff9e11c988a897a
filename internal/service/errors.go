package service

import (
	"errors"
	"fmt"

	"WAYGO_BACK-END/internal/repository"
)

// Sentinel errors surfaced to handlers. Not-found and wrong-state
// conditions are distinct signals, never conflated.
var (
	ErrInputNotFound     = errors.New("itinerary input not found")
	ErrItineraryNotFound = errors.New("itinerary not found")

	// ErrInputReadOnly: the input already produced an itinerary and
	// cannot be mutated again.
	ErrInputReadOnly = errors.New("input is generated and read-only")

	// ErrInputNotCompleted: generation was requested before step 8.
	ErrInputNotCompleted = errors.New("input is not completed")

	// ErrInputIncomplete: step 8 (or generation) found the record
	// missing fields an earlier step should have populated.
	ErrInputIncomplete = errors.New("earlier input steps are incomplete")

	ErrDateRangeInvalid = errors.New("invalid date range")

	// ErrDateOverlap: the requested dates intersect another finalized
	// trip of the same user.
	ErrDateOverlap = errors.New("date range overlaps an existing trip")
)

// mapInputErr translates storage sentinels into input domain errors.
func mapInputErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInputNotFound
	}
	return err
}

// ValidationError marks a client-correctable payload problem.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

func validationf(format string, args ...interface{}) error {
	return ValidationError(fmt.Sprintf(format, args...))
}
