// Package services holds the daybookd use cases behind the gRPC handlers.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/dmitrijs2005/daybook/internal/server/metrics"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var (
	timeNow = time.Now
	newID   = uuid.NewString
)

type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	maxDay      int
	logger      logging.Logger
}

func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, maxDay int, l logging.Logger) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: m,
		maxDay:      maxDay,
		logger:      l.With("module", "entry_service"),
	}
}

// List returns the entries of one diary.
func (s *EntryService) List(ctx context.Context, q models.EntryQuery) ([]models.Entry, error) {
	if q.DiaryID == "" {
		return nil, fmt.Errorf("%w: diary_id is required", common.ErrorValidation)
	}
	if !models.ValidOrderBy(q.OrderBy) {
		return nil, fmt.Errorf("%w: cannot order by %q", common.ErrorValidation, q.OrderBy)
	}
	if q.Limit < 0 {
		q.Limit = 0
	}

	items, err := s.repomanager.Entries(s.db).List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %w", err)
	}
	return items, nil
}

// Insert validates e, assigns its id and creation time and stores it.
// A missing date defaults to today (UTC).
func (s *EntryService) Insert(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: entry is required", common.ErrorValidation)
	}
	if e.DiaryID == "" {
		return nil, fmt.Errorf("%w: diary_id is required", common.ErrorValidation)
	}
	if e.DayNumber != nil && (*e.DayNumber < 1 || *e.DayNumber > s.maxDay) {
		return nil, fmt.Errorf("%w: day_number %d outside [1, %d]", common.ErrorValidation, *e.DayNumber, s.maxDay)
	}

	now := timeNow().UTC()
	if e.Date == "" {
		e.Date = now.Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return nil, fmt.Errorf("%w: date %q is not YYYY-MM-DD", common.ErrorValidation, e.Date)
	}

	e.ID = newID()
	e.CreatedAt = now

	if err := s.repomanager.Entries(s.db).Insert(ctx, e); err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}

	metrics.EntriesInsertedTotal.WithLabelValues(strconv.FormatBool(e.DayNumber != nil)).Inc()
	s.logger.Info(ctx, "entry inserted", "id", e.ID, "diary", e.DiaryID, "day", models.Deref(e.DayNumber))
	return e, nil
}

// Delete removes an entry; a missing id is reported as common.ErrorNotFound.
func (s *EntryService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", common.ErrorValidation)
	}

	if err := s.repomanager.Entries(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting entry: %w", err)
	}

	metrics.EntriesDeletedTotal.Inc()
	s.logger.Info(ctx, "entry deleted", "id", id)
	return nil
}
