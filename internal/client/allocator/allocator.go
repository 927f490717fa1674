// Package allocator picks the day number for the next diary entry.
package allocator

import (
	"context"

	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
)

// EntryLister is the read side of client.Gateway.
type EntryLister interface {
	ListEntries(ctx context.Context, q models.EntryQuery) ([]models.Entry, error)
}

// Allocation is the outcome of Next. Degraded is set when the store could
// not be read and Day fell back to 1; Err carries the cause.
type Allocation struct {
	Day      int
	Degraded bool
	Err      error
}

type Allocator struct {
	entries EntryLister
	maxDay  int
	logger  logging.Logger
}

func New(entries EntryLister, maxDay int, l logging.Logger) *Allocator {
	return &Allocator{entries: entries, maxDay: maxDay, logger: l.With("module", "allocator")}
}

// Next returns min(maxDay, highest recorded day + 1), or 1 for an empty
// diary. Two sessions calling Next concurrently can receive the same day.
func (a *Allocator) Next(ctx context.Context, diaryID string) Allocation {
	items, err := a.entries.ListEntries(ctx, models.EntryQuery{
		DiaryID:     diaryID,
		WithDayOnly: true,
		OrderBy:     models.OrderByDayNumber,
	})
	if err != nil {
		a.logger.Warn(ctx, "cannot read recorded days, starting from day 1", "diary", diaryID, "error", err)
		return Allocation{Day: 1, Degraded: true, Err: err}
	}

	highest := 0
	for _, e := range items {
		if e.DayNumber != nil && *e.DayNumber > highest {
			highest = *e.DayNumber
		}
	}
	return Allocation{Day: min(a.maxDay, highest+1)}
}

// Advance is the day to show after a successful submit of day.
func Advance(day, maxDay int) int {
	return min(maxDay, day+1)
}
