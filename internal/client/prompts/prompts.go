// Package prompts holds the static day → prompt table.
package prompts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/daybook/internal/models"
)

// Table maps prompt ids to their text. The zero value is an empty table.
type Table struct {
	byID map[int]string
}

// Parse decodes a {"prompts":[{"id":..,"text":..}]} document. A repeated id
// keeps its last text.
func Parse(r io.Reader) (*Table, error) {
	var set models.PromptSet
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode prompts: %w", err)
	}

	t := &Table{byID: make(map[int]string, len(set.Prompts))}
	for _, p := range set.Prompts {
		t.byID[p.ID] = p.Text
	}
	return t, nil
}

// Text returns the prompt for id by exact match.
func (t *Table) Text(id int) (string, bool) {
	if t == nil {
		return "", false
	}
	s, ok := t.byID[id]
	return s, ok
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byID)
}

// Fetcher retrieves a remote document; netx.HTTPClient implements it.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Load reads the table from an http(s) URL via f or from a local file.
func Load(ctx context.Context, f Fetcher, source string) (*Table, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = f.Get(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("load prompts from %s: %w", source, err)
	}
	return Parse(bytes.NewReader(data))
}
