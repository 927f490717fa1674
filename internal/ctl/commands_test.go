package ctl

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/daybook/internal/models"
	"github.com/dmitrijs2005/daybook/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrate_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "daybook.db")

	out, err := run(t, "migrate", "--dsn", "sqlite:"+path)
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied (sqlite)")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n))
	assert.Equal(t, 0, n)

	_, err = run(t, "migrate", "--dsn", "sqlite:"+path)
	require.NoError(t, err)
}

func TestIssueKey(t *testing.T) {
	out, err := run(t, "issue-key", "--secret", "s3cret", "--role", "service", "--ttl", "1h")
	require.NoError(t, err)

	role, err := auth.ParseAccessKey(strings.TrimSpace(out), []byte("s3cret"))
	require.NoError(t, err)
	assert.Equal(t, auth.RoleService, role)
}

func TestIssueKey_Rejects(t *testing.T) {
	_, err := run(t, "issue-key", "--secret", "")
	require.Error(t, err)

	_, err = run(t, "issue-key", "--secret", "x", "--role", "admin")
	require.Error(t, err)

	_, err = run(t, "issue-key", "--secret", "x", "--ttl", "-1h")
	require.Error(t, err)
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestCheckPrompts_OK(t *testing.T) {
	path := writeFile(t, `{"prompts":[{"id":1,"text":"a"},{"id":2,"text":"b"},{"id":5,"text":"c"}]}`)

	out, err := run(t, "check-prompts", "--max-day", "6", path)
	require.NoError(t, err)
	assert.Contains(t, out, "days without prompt: 3-4, 6")
	assert.Contains(t, out, "3 prompts ok")
}

func TestCheckPrompts_Problems(t *testing.T) {
	path := writeFile(t, `{"prompts":[{"id":0,"text":"a"},{"id":2,"text":" "},{"id":2,"text":"b"}]}`)

	out, err := run(t, "check-prompts", "--max-day", "3", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 problem(s)")
	assert.Contains(t, out, "id 0 outside [1, 3]")
	assert.Contains(t, out, "id 2 has empty text")
	assert.Contains(t, out, "id 2 repeated")
}

func TestCheckPrompts_BadFile(t *testing.T) {
	_, err := run(t, "check-prompts", writeFile(t, `{"prompts":`))
	require.Error(t, err)

	_, err = run(t, "check-prompts", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestCheckPrompts_Func(t *testing.T) {
	problems, missing := checkPrompts(models.PromptSet{Prompts: []models.Prompt{{ID: 1, Text: "x"}}}, 3)
	assert.Empty(t, problems)
	assert.Equal(t, []int{2, 3}, missing)
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "", formatDays(nil))
	assert.Equal(t, "1", formatDays([]int{1}))
	assert.Equal(t, "1-3, 7, 9-10", formatDays([]int{1, 2, 3, 7, 9, 10}))
}

func TestRoot_ShowsHelp(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "issue-key")
	assert.Contains(t, out, "migrate")
}
