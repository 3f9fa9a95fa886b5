// Package fee implements the transaction-fee schedule: a current fee in
// basis points plus an optional pending change that activates lazily once
// the clock reaches its start time. There is no background timer; any
// operation that needs the fee resolves the schedule on demand.
package fee

import (
	"fmt"
	"time"
)

// MaxBps is the basis-point denominator and the upper bound on a fee.
const MaxBps = 10000

// PendingChange is a scheduled fee change that has not yet activated.
type PendingChange struct {
	Bps      uint32    `json:"bps"`
	StartsAt time.Time `json:"starts_at"`
}

// Schedule holds the current transaction fee and at most one pending change.
// Series snapshot the resolved fee at creation and price-set time; a sale
// pays the snapshot, never the live schedule.
type Schedule struct {
	CurrentBps uint32         `json:"current_bps"`
	Pending    *PendingChange `json:"pending,omitempty"`
}

// NewSchedule returns a schedule with the given current fee and no pending
// change.
func NewSchedule(bps uint32) *Schedule {
	return &Schedule{CurrentBps: bps}
}

// Set installs a new fee. With a nil start time the fee applies immediately
// and any pending change is discarded. With a start time, the change is
// stored as pending and CurrentBps is untouched until Resolve reaches it;
// the start time must be strictly after now.
func (s *Schedule) Set(bps uint32, startsAt *time.Time, now time.Time) error {
	if bps > MaxBps {
		return fmt.Errorf("%w: %d", ErrFeeTooHigh, bps)
	}
	if startsAt == nil {
		s.CurrentBps = bps
		s.Pending = nil
		return nil
	}
	if !startsAt.After(now) {
		return fmt.Errorf("%w: %s", ErrStartNotFuture, startsAt.Format(time.RFC3339))
	}
	s.Pending = &PendingChange{Bps: bps, StartsAt: *startsAt}
	return nil
}

// Resolve promotes the pending change into CurrentBps if its start time has
// been reached, and returns the fee now in effect. Resolving before the
// start time is a no-op. Idempotent.
func (s *Schedule) Resolve(now time.Time) uint32 {
	if s.Pending != nil && !now.Before(s.Pending.StartsAt) {
		s.CurrentBps = s.Pending.Bps
		s.Pending = nil
	}
	return s.CurrentBps
}
