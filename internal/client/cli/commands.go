package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/daybook/internal/client/services"
	"github.com/dmitrijs2005/daybook/internal/client/viewer"
	"github.com/dmitrijs2005/daybook/internal/models"
)

func (a *App) Show(ctx context.Context) error {
	if a.session.Mode == viewer.ModeEntries {
		a.renderEntry(a.session)
	} else {
		a.renderDay(a.session)
	}
	return nil
}

func (a *App) Prev(ctx context.Context) error {
	if a.session.Mode == viewer.ModeEntries {
		a.session.List = a.session.List.Prev()
	} else {
		a.session.Days = a.session.Days.Prev()
	}
	return a.Show(ctx)
}

func (a *App) Next(ctx context.Context) error {
	if a.session.Mode == viewer.ModeEntries {
		a.session.List = a.session.List.Next()
	} else {
		a.session.Days = a.session.Days.Next()
	}
	return a.Show(ctx)
}

func (a *App) Jump(ctx context.Context, arg string) error {
	if a.session.Mode == viewer.ModeEntries {
		a.session.List = a.session.List.Jump(arg)
	} else {
		a.session.Days = a.session.Days.Jump(arg)
	}
	return a.Show(ctx)
}

// SetMode switches browsing mode; an empty argument toggles it.
func (a *App) SetMode(ctx context.Context, arg string) error {
	var m viewer.Mode
	switch {
	case arg == "" && a.session.Mode == viewer.ModePrompt:
		m = viewer.ModeEntries
	case arg == "":
		m = viewer.ModePrompt
	default:
		var ok bool
		if m, ok = viewer.ParseMode(arg); !ok {
			return fmt.Errorf("unknown mode %q, use prompt or entries", arg)
		}
	}
	a.session = a.session.WithMode(m)
	return a.Show(ctx)
}

// Add reads an entry form and submits it for the day under the cursor.
func (a *App) Add(ctx context.Context) error {
	form, err := a.readForm()
	if err != nil {
		return err
	}

	tctx, cancel := a.withTimeout(ctx)
	res, err := a.entries.Submit(tctx, form)
	cancel()
	if err != nil {
		return err
	}

	if res.Entry.DayNumber != nil {
		a.session = a.session.WithDay(res.NextDay)
		note := "no prompt"
		if res.HasPrompt {
			note = "with prompt"
		}
		_, _ = okStyle.Fprintf(a.out, "Saved! Day %d (%s)\n", *res.Entry.DayNumber, note)
	} else {
		_, _ = okStyle.Fprintln(a.out, "Saved!")
	}

	if err := a.reloadEntries(ctx); err != nil {
		a.warn(err.Error())
	}
	return nil
}

func (a *App) readForm() (services.Form, error) {
	f := services.Form{DiaryID: a.session.DiaryID, Day: a.session.Days.Day()}

	label := fmt.Sprintf("Day [%d] (- for none)", f.Day)
	if text, ok := a.session.Prompt(); ok {
		label = fmt.Sprintf("Day [%d] %s (- for none)", f.Day, text)
	}
	day, err := GetSimpleText(a.reader, label, a.out)
	if err != nil {
		return f, err
	}
	switch day {
	case "":
	case "-":
		f.Day = 0
	default:
		f.Day = viewer.ClampDay(day, a.config.MaxDay)
	}

	fields := []struct {
		prompt string
		dst    *string
	}{
		{fmt.Sprintf("Title [%s]", a.config.DefaultTitle), &f.Title},
		{"Author", &f.Author},
		{"Mood", &f.Mood},
	}
	for _, fl := range fields {
		if *fl.dst, err = GetSimpleText(a.reader, fl.prompt, a.out); err != nil {
			return f, err
		}
	}

	if f.Text, err = GetMultiline(a.reader, "Text", a.out); err != nil {
		return f, err
	}

	for _, fl := range []struct {
		prompt string
		dst    *string
	}{
		{"Date label (optional)", &f.DateLabel},
		{"Day label (optional)", &f.DayLabel},
	} {
		if *fl.dst, err = GetSimpleText(a.reader, fl.prompt, a.out); err != nil {
			return f, err
		}
	}

	path, err := GetSimpleText(a.reader, "Image file (optional)", a.out)
	if err != nil {
		return f, err
	}
	if path != "" {
		data, err := a.readFile(path, a.config.MaxImageBytes)
		if err != nil {
			return f, fmt.Errorf("cannot read image: %w", err)
		}
		f.Image = &services.Attachment{Name: filepath.Base(path), Data: data}
	}

	return f, nil
}

// Delete removes the entry with id, or the current entry when id is empty.
func (a *App) Delete(ctx context.Context, id string) error {
	var target models.Entry
	if id == "" {
		e, ok := a.session.List.Current()
		if !ok {
			return errors.New("no entry selected, use entries mode or pass an id")
		}
		target = e
	} else {
		e, ok := a.session.List.Find(id)
		if !ok {
			// the loaded list may be stale
			if err := a.reloadEntries(ctx); err != nil {
				return err
			}
			if e, ok = a.session.List.Find(id); !ok {
				return fmt.Errorf("unknown entry %q", id)
			}
		}
		target = e
	}

	if !Confirm(a.reader, fmt.Sprintf("Delete %q? Its image is removed too.", entryTitle(target)), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	tctx, cancel := a.withTimeout(ctx)
	err := a.entries.Delete(tctx, target.ID, models.Deref(target.ImagePath), models.Deref(target.ImageURL))
	cancel()

	if rerr := a.reloadEntries(ctx); rerr != nil {
		a.warn(rerr.Error())
	}
	if err != nil {
		return err
	}
	_, _ = okStyle.Fprintln(a.out, "Deleted.")
	return nil
}

func (a *App) Recent(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	items, err := a.entries.Recent(ctx, a.session.DiaryID)
	if err != nil {
		return err
	}
	a.renderRecent(items)
	return nil
}

func (a *App) Video(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	v, err := a.entries.LatestVideo(ctx, a.session.DiaryID)
	if errors.Is(err, services.ErrNoVideos) {
		_, _ = faintStyle.Fprintln(a.out, "No videos yet.")
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = titleStyle.Fprintln(a.out, v.Name)
	fmt.Fprintln(a.out, strings.TrimSpace(v.URL))
	return nil
}

func (a *App) Reload(ctx context.Context) error {
	a.loadPrompts(ctx)
	if err := a.reloadEntries(ctx); err != nil {
		return err
	}
	return a.Show(ctx)
}
