package service

import (
	"fmt"

	"roombook/config"
	"roombook/internal/domains/booking/model"
)

// OverlapPolicy decides whether candidate collides with an existing booking
// for the same room and date.
type OverlapPolicy func(candidate, existing model.Booking) bool

// LegacyOverlap flags a conflict when either endpoint of the candidate falls
// inside the existing interval. A candidate that fully contains an existing
// booking is not flagged.
func LegacyOverlap(candidate, existing model.Booking) bool {
	start, end := candidate.StartTime.Minutes(), candidate.EndTime.Minutes()
	heldStart, heldEnd := existing.StartTime.Minutes(), existing.EndTime.Minutes()

	return (start >= heldStart && start < heldEnd) || (end > heldStart && end <= heldEnd)
}

// StrictOverlap is the half-open interval test, containment included.
func StrictOverlap(candidate, existing model.Booking) bool {
	return candidate.StartTime.Minutes() < existing.EndTime.Minutes() &&
		candidate.EndTime.Minutes() > existing.StartTime.Minutes()
}

func NewOverlapPolicy(name string) (OverlapPolicy, error) {
	switch name {
	case config.OverlapPolicyLegacy, "":
		return LegacyOverlap, nil
	case config.OverlapPolicyStrict:
		return StrictOverlap, nil
	default:
		return nil, fmt.Errorf("unknown overlap policy %q", name)
	}
}
