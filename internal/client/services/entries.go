package services

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/daybook/internal/client/allocator"
	"github.com/dmitrijs2005/daybook/internal/client/client"
	"github.com/dmitrijs2005/daybook/internal/client/prompts"
	"github.com/dmitrijs2005/daybook/internal/common"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/models"
)

const (
	defaultImageType = "image/png"
	recentLimit      = 10
	videoListLimit   = 100
	videoLinkExpiry  = 86400 * time.Second
)

var notFoundMessage = regexp.MustCompile(`(?i)not\s*found`)

// Options are the diary-wide settings the workflows need.
type Options struct {
	ImageBucket  string
	VideoBucket  string
	MaxDay       int
	DefaultTitle string
}

// Attachment is an image picked in the form.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Form is one filled-in entry form. Day outside [1, MaxDay] submits an
// entry with no day and no prompt.
type Form struct {
	DiaryID   string
	Day       int
	Author    string
	Title     string
	Text      string
	Mood      string
	DateLabel string
	DayLabel  string
	Image     *Attachment
}

type SubmitResult struct {
	Entry     *models.Entry
	NextDay   int
	HasPrompt bool
}

// VideoLink is a signed link to the newest video of a diary.
type VideoLink struct {
	Name string
	URL  string
}

type EntryService struct {
	gw         client.Gateway
	opts       Options
	prompts    atomic.Pointer[prompts.Table]
	submitting atomic.Bool
	logger     logging.Logger
	now        func() time.Time
}

func NewEntryService(gw client.Gateway, table *prompts.Table, opts Options, l logging.Logger) *EntryService {
	s := &EntryService{
		gw:     gw,
		opts:   opts,
		logger: l.With("module", "services"),
		now:    time.Now,
	}
	s.prompts.Store(table)
	return s
}

// SetPrompts replaces the table used for new submissions. Stored entries
// keep the prompt text they were written with.
func (s *EntryService) SetPrompts(t *prompts.Table) {
	s.prompts.Store(t)
}

func (s *EntryService) Prompts() *prompts.Table {
	return s.prompts.Load()
}

// Submit uploads the attached image, if any, then inserts the entry.
// Nothing is inserted when the upload fails.
func (s *EntryService) Submit(ctx context.Context, f Form) (*SubmitResult, error) {
	if !s.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInProgress
	}
	defer s.submitting.Store(false)

	now := s.now()
	e := &models.Entry{
		DiaryID:   f.DiaryID,
		Date:      now.UTC().Format(time.DateOnly),
		Author:    models.StringOrNil(f.Author),
		Title:     models.StringOrNil(f.Title),
		Text:      models.StringOrNil(f.Text),
		Mood:      models.StringOrNil(f.Mood),
		DateLabel: models.StringOrNil(f.DateLabel),
		DayLabel:  models.StringOrNil(f.DayLabel),
	}
	if e.Title == nil {
		e.Title = models.StringOrNil(s.opts.DefaultTitle)
	}

	if f.Image != nil && len(f.Image.Data) > 0 {
		key := StorageKey(f.DiaryID, f.Image.Name, now)
		opts := models.UploadOptions{ContentType: contentType(f.Image), Upsert: true}
		if err := s.gw.UploadAsset(ctx, s.opts.ImageBucket, key, f.Image.Data, opts); err != nil {
			return nil, fmt.Errorf("image upload failed: %w", err)
		}
		e.ImagePath = models.Ptr(key)
		e.ImageURL = models.Ptr(s.gw.PublicURL(s.opts.ImageBucket, key))
	}

	hasPrompt := false
	if f.Day >= 1 && f.Day <= s.opts.MaxDay {
		e.DayNumber = models.Ptr(f.Day)
		e.PromptID = models.Ptr(f.Day)
		if text, ok := s.Prompts().Text(f.Day); ok {
			e.PromptText = models.Ptr(text)
			hasPrompt = true
		}
	}

	saved, err := s.gw.InsertEntry(ctx, e)
	if err != nil {
		return nil, fmt.Errorf("saving entry failed: %w", err)
	}

	next := f.Day
	if e.DayNumber != nil {
		next = allocator.Advance(f.Day, s.opts.MaxDay)
	}
	s.logger.Info(ctx, "entry saved", "diary", f.DiaryID, "id", saved.ID, "day", f.Day)

	return &SubmitResult{Entry: saved, NextDay: next, HasPrompt: hasPrompt}, nil
}

func contentType(a *Attachment) string {
	if a.ContentType != "" {
		return a.ContentType
	}
	if t := mime.TypeByExtension(strings.ToLower(path.Ext(a.Name))); t != "" {
		return t
	}
	return defaultImageType
}

// Delete removes the entry image, then the entry row. A missing image
// counts as removed. When the image cannot be removed the row is kept.
func (s *EntryService) Delete(ctx context.Context, id, imagePath, imageURL string) error {
	key := imagePath
	if key == "" {
		key = ExtractPathFromPublicURL(imageURL, s.opts.ImageBucket)
	}

	if key != "" {
		err := s.gw.RemoveAssets(ctx, s.opts.ImageBucket, []string{key})
		if err != nil && !isNotFound(err) {
			return fmt.Errorf("%w: %w", ErrAssetRemoval, err)
		}
	}

	if err := s.gw.DeleteEntry(ctx, id); err != nil {
		if key != "" {
			s.logger.Warn(ctx, "image removed but entry kept", "id", id, "key", key, "error", err)
		}
		return fmt.Errorf("%w: %w", ErrRowRemoval, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound) || notFoundMessage.MatchString(err.Error())
}

// Browse loads every entry of the diary, lowest day first.
func (s *EntryService) Browse(ctx context.Context, diaryID string) ([]models.Entry, error) {
	items, err := s.gw.ListEntries(ctx, models.EntryQuery{
		DiaryID:   diaryID,
		OrderBy:   models.OrderByDayNumber,
		Ascending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error loading entries: %w", err)
	}
	return items, nil
}

// Recent returns the newest entries by date.
func (s *EntryService) Recent(ctx context.Context, diaryID string) ([]models.Entry, error) {
	items, err := s.gw.ListEntries(ctx, models.EntryQuery{
		DiaryID: diaryID,
		OrderBy: models.OrderByDate,
		Limit:   recentLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("error loading recent entries: %w", err)
	}
	return items, nil
}

// LatestVideo signs the last video of the diary by name.
// It returns ErrNoVideos when the diary has none.
func (s *EntryService) LatestVideo(ctx context.Context, diaryID string) (*VideoLink, error) {
	items, err := s.gw.ListAssets(ctx, s.opts.VideoBucket, diaryID+"/", models.ListOptions{
		Limit:      videoListLimit,
		SortBy:     models.SortByName,
		Descending: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error listing videos: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrNoVideos
	}

	name := items[0].Name
	url, err := s.gw.SignAssetURL(ctx, s.opts.VideoBucket, diaryID+"/"+name, videoLinkExpiry)
	if err != nil {
		return nil, fmt.Errorf("error signing video link: %w", err)
	}
	return &VideoLink{Name: name, URL: url}, nil
}
