package viewer

import "github.com/dmitrijs2005/daybook/internal/models"

// DayCursor points at one day in [1, max].
type DayCursor struct {
	day int
	max int
}

func NewDayCursor(day, upper int) DayCursor {
	if upper < 1 {
		upper = 1
	}
	return DayCursor{day: ClampNumber(float64(day), upper), max: upper}
}

func (c DayCursor) Day() int { return c.day }
func (c DayCursor) Max() int { return c.max }

func (c DayCursor) HasPrev() bool { return c.day > 1 }
func (c DayCursor) HasNext() bool { return c.day < c.max }

func (c DayCursor) Prev() DayCursor {
	if c.HasPrev() {
		c.day--
	}
	return c
}

func (c DayCursor) Next() DayCursor {
	if c.HasNext() {
		c.day++
	}
	return c
}

// Jump moves to the clamped value of input.
func (c DayCursor) Jump(input string) DayCursor {
	c.day = ClampDay(input, c.max)
	return c
}

// ListCursor walks entries loaded for a diary, ordered by day ascending.
// The zero value is an empty list.
type ListCursor struct {
	entries []models.Entry
	index   int
}

// NewListCursor positions the cursor on the last entry.
func NewListCursor(entries []models.Entry) ListCursor {
	c := ListCursor{entries: entries}
	if len(entries) > 0 {
		c.index = len(entries) - 1
	}
	return c
}

func (c ListCursor) Len() int { return len(c.entries) }

// Position is the zero-based index of the current entry.
func (c ListCursor) Position() int { return c.index }

func (c ListCursor) Current() (models.Entry, bool) {
	if len(c.entries) == 0 {
		return models.Entry{}, false
	}
	return c.entries[c.index], true
}

func (c ListCursor) HasPrev() bool { return c.index > 0 }
func (c ListCursor) HasNext() bool { return c.index < len(c.entries)-1 }

func (c ListCursor) Prev() ListCursor {
	if c.HasPrev() {
		c.index--
	}
	return c
}

func (c ListCursor) Next() ListCursor {
	if c.HasNext() {
		c.index++
	}
	return c
}

// Jump takes a 1-based position.
func (c ListCursor) Jump(input string) ListCursor {
	if len(c.entries) == 0 {
		return c
	}
	c.index = ClampDay(input, len(c.entries)) - 1
	return c
}

// Find looks up a loaded entry by id without moving the cursor.
func (c ListCursor) Find(id string) (models.Entry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, true
		}
	}
	return models.Entry{}, false
}
