// Package models defines the data shared by the daybook client and server.
package models

import "time"

// Entry is one diary submission. Optional columns are pointers so that
// "absent" survives the round trip through the store and the wire.
type Entry struct {
	ID        string `json:"id"`
	DiaryID   string `json:"diary_id"`
	DayNumber *int   `json:"day_number,omitempty"`
	// Date is the ISO calendar date (YYYY-MM-DD) taken at submit time.
	Date   string  `json:"date"`
	Author *string `json:"author,omitempty"`
	Title  *string `json:"title,omitempty"`
	Text   *string `json:"text,omitempty"`
	Mood   *string `json:"mood,omitempty"`

	// ImagePath is the canonical storage key; ImageURL is derived from it.
	// Older rows may carry only ImageURL.
	ImageURL  *string `json:"image_url,omitempty"`
	ImagePath *string `json:"image_path,omitempty"`

	// PromptID and PromptText snapshot the prompt bound to DayNumber when the
	// entry was written.
	PromptID   *int    `json:"prompt_id,omitempty"`
	PromptText *string `json:"prompt_text,omitempty"`

	DateLabel *string `json:"date_label,omitempty"`
	DayLabel  *string `json:"day_label,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Order columns accepted by EntryQuery.OrderBy.
const (
	OrderByDayNumber = "day_number"
	OrderByDate      = "date"
	OrderByCreatedAt = "created_at"
)

// EntryQuery scopes a listing to one diary.
type EntryQuery struct {
	DiaryID string `json:"diary_id"`
	// WithDayOnly drops rows whose day_number is NULL.
	WithDayOnly bool   `json:"with_day_only,omitempty"`
	OrderBy     string `json:"order_by,omitempty"`
	Ascending   bool   `json:"ascending,omitempty"`
	// Limit <= 0 means no limit.
	Limit int `json:"limit,omitempty"`
}

// ValidOrderBy reports whether column may be used for ordering.
func ValidOrderBy(column string) bool {
	switch column {
	case "", OrderByDayNumber, OrderByDate, OrderByCreatedAt:
		return true
	}
	return false
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// StringOrNil returns nil for the empty string.
func StringOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to value or the zero value.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
