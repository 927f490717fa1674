package entries

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/daybook/internal/dbx"
	"github.com/dmitrijs2005/daybook/internal/models"
)

const entryColumns = `id, diary_id, day_number, date, author, title, text, mood, image_url, image_path, prompt_id, prompt_text, date_label, day_label, created_at`

// placeholder renders the n-th (1-based) bind parameter for a dialect.
type placeholder func(n int) string

func dollar(n int) string { return "$" + strconv.Itoa(n) }
func question(int) string { return "?" }

// buildListQuery renders the SELECT for q. OrderBy is whitelisted by
// models.ValidOrderBy before reaching here; ties break on created_at, id.
func buildListQuery(q models.EntryQuery, ph placeholder) (string, []any) {
	var b strings.Builder
	args := []any{q.DiaryID}

	b.WriteString("SELECT " + entryColumns + " FROM entries WHERE diary_id = " + ph(1))
	if q.WithDayOnly {
		b.WriteString(" AND day_number IS NOT NULL")
	}

	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = models.OrderByCreatedAt
	}
	dir := "DESC"
	if q.Ascending {
		dir = "ASC"
	}
	fmt.Fprintf(&b, " ORDER BY %s %s", orderBy, dir)
	if orderBy != models.OrderByCreatedAt {
		fmt.Fprintf(&b, ", created_at %s", dir)
	}
	fmt.Fprintf(&b, ", id %s", dir)

	if q.Limit > 0 {
		args = append(args, q.Limit)
		b.WriteString(" LIMIT " + ph(len(args)))
	}

	return b.String(), args
}

func buildInsertQuery(ph placeholder) string {
	n := strings.Count(entryColumns, ",") + 1
	params := make([]string, n)
	for i := range params {
		params[i] = ph(i + 1)
	}
	return "INSERT INTO entries (" + entryColumns + ") VALUES (" + strings.Join(params, ", ") + ")"
}

func insertArgs(e *models.Entry) []any {
	return []any{
		e.ID, e.DiaryID, nullInt(e.DayNumber), e.Date,
		nullString(e.Author), nullString(e.Title), nullString(e.Text), nullString(e.Mood),
		nullString(e.ImageURL), nullString(e.ImagePath),
		nullInt(e.PromptID), nullString(e.PromptText),
		nullString(e.DateLabel), nullString(e.DayLabel),
		e.CreatedAt,
	}
}

func selectEntries(ctx context.Context, db dbx.DBTX, query string, args ...any) ([]models.Entry, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	result := make([]models.Entry, 0)
	for rows.Next() {
		var (
			item                            models.Entry
			day, promptID                   sql.NullInt64
			author, title, text, mood       sql.NullString
			imageURL, imagePath, promptText sql.NullString
			dateLabel, dayLabel             sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.DiaryID, &day, &item.Date,
			&author, &title, &text, &mood,
			&imageURL, &imagePath, &promptID, &promptText,
			&dateLabel, &dayLabel, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.DayNumber = intPtr(day)
		item.PromptID = intPtr(promptID)
		item.Author = stringPtr(author)
		item.Title = stringPtr(title)
		item.Text = stringPtr(text)
		item.Mood = stringPtr(mood)
		item.ImageURL = stringPtr(imageURL)
		item.ImagePath = stringPtr(imagePath)
		item.PromptText = stringPtr(promptText)
		item.DateLabel = stringPtr(dateLabel)
		item.DayLabel = stringPtr(dayLabel)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
