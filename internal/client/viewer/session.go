package viewer

import (
	"github.com/dmitrijs2005/daybook/internal/client/prompts"
	"github.com/dmitrijs2005/daybook/internal/models"
)

type Mode int

const (
	// ModePrompt browses days and their prompts.
	ModePrompt Mode = iota
	// ModeEntries browses submitted entries.
	ModeEntries
)

func (m Mode) String() string {
	switch m {
	case ModePrompt:
		return "prompt"
	case ModeEntries:
		return "entries"
	}
	return "unknown"
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "prompt", "prompts", "day":
		return ModePrompt, true
	case "entries", "entry", "list":
		return ModeEntries, true
	}
	return ModePrompt, false
}

// Session is the full viewer state of one diary.
type Session struct {
	DiaryID string
	Prompts *prompts.Table
	Days    DayCursor
	List    ListCursor
	Mode    Mode
}

func NewSession(diaryID string, maxDay int, table *prompts.Table) Session {
	return Session{
		DiaryID: diaryID,
		Prompts: table,
		Days:    NewDayCursor(1, maxDay),
		Mode:    ModePrompt,
	}
}

// WithEntries replaces the loaded entries and points at the newest one.
func (s Session) WithEntries(entries []models.Entry) Session {
	s.List = NewListCursor(entries)
	return s
}

func (s Session) WithDay(day int) Session {
	s.Days = NewDayCursor(day, s.Days.Max())
	return s
}

func (s Session) WithMode(m Mode) Session {
	s.Mode = m
	return s
}

// Prompt returns the prompt bound to the current day.
func (s Session) Prompt() (string, bool) {
	return s.Prompts.Text(s.Days.Day())
}
