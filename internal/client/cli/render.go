package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/daybook/internal/client/viewer"
	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var (
	titleStyle  = color.New(color.Bold, color.Underline)
	promptStyle = color.New(color.FgCyan, color.Italic)
	faintStyle  = color.New(color.Faint)
	warnStyle   = color.New(color.FgYellow)
	okStyle     = color.New(color.FgGreen)
)

func (a *App) warn(msg string) {
	_, _ = warnStyle.Fprintln(a.out, msg)
}

func (a *App) renderDay(s viewer.Session) {
	_, _ = titleStyle.Fprintf(a.out, "Day %d", s.Days.Day())
	_, _ = faintStyle.Fprintf(a.out, " of %d\n", s.Days.Max())

	if text, ok := s.Prompt(); ok {
		_, _ = promptStyle.Fprintf(a.out, "%s\n", text)
	} else {
		_, _ = faintStyle.Fprintln(a.out, "(no prompt)")
	}
	a.renderNav(s.Days.HasPrev(), s.Days.HasNext())
}

func (a *App) renderEntry(s viewer.Session) {
	e, ok := s.List.Current()
	if !ok {
		_, _ = faintStyle.Fprintln(a.out, "No entries yet.")
		return
	}

	_, _ = titleStyle.Fprint(a.out, entryTitle(e))
	_, _ = faintStyle.Fprintf(a.out, "  %d/%d  %s\n", s.List.Position()+1, s.List.Len(), e.ID)

	if e.PromptText != nil {
		_, _ = promptStyle.Fprintf(a.out, "“%s”\n", *e.PromptText)
	}
	_, _ = faintStyle.Fprintln(a.out, entryMeta(e))
	if e.Text != nil {
		fmt.Fprintln(a.out, *e.Text)
	}
	if e.ImageURL != nil {
		fmt.Fprintln(a.out, "image:", *e.ImageURL)
	}
	a.renderNav(s.List.HasPrev(), s.List.HasNext())
}

func (a *App) renderNav(hasPrev, hasNext bool) {
	var hints []string
	if hasPrev {
		hints = append(hints, "prev")
	}
	if hasNext {
		hints = append(hints, "next")
	}
	if len(hints) > 0 {
		_, _ = faintStyle.Fprintf(a.out, "[%s]\n", strings.Join(hints, " | "))
	}
}

func (a *App) renderRecent(items []models.Entry) {
	if len(items) == 0 {
		_, _ = faintStyle.Fprintln(a.out, "No entries yet.")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.Wrap = true
	tbl.AddRow("DATE", "DAY", "TITLE", "MOOD", "ID")
	for _, e := range items {
		day := "-"
		if e.DayNumber != nil {
			day = fmt.Sprint(*e.DayNumber)
		}
		tbl.AddRow(dateText(e), day, entryTitle(e), models.Deref(e.Mood), e.ID)
	}
	fmt.Fprintln(a.out, tbl)
}

func entryTitle(e models.Entry) string {
	if e.Title == nil || *e.Title == "" {
		return "(untitled)"
	}
	return *e.Title
}

func dateText(e models.Entry) string {
	if e.DateLabel != nil && *e.DateLabel != "" {
		return *e.DateLabel
	}
	return e.Date
}

// entryMeta is the "<date> · <day> · <author> · <mood>" line.
func entryMeta(e models.Entry) string {
	parts := []string{dateText(e)}
	switch {
	case e.DayLabel != nil && *e.DayLabel != "":
		parts = append(parts, *e.DayLabel)
	case e.DayNumber != nil:
		parts = append(parts, fmt.Sprintf("Day %d", *e.DayNumber))
	}
	if e.Author != nil && *e.Author != "" {
		parts = append(parts, *e.Author)
	}
	mood := "🙂"
	if e.Mood != nil && *e.Mood != "" {
		mood = *e.Mood
	}
	parts = append(parts, mood)
	return strings.Join(parts, " · ")
}
