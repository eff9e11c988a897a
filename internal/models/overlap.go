package models

import "time"

// RangesOverlap reports whether two inclusive date ranges intersect:
// startA <= endB && endA >= startB. Touching endpoints count as overlap
// because both days are occupied.
func RangesOverlap(startA, endA, startB, endB time.Time) bool {
	return !startA.After(endB) && !endA.Before(startB)
}
