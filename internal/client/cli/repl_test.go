package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	calls []string
	err   error
}

func (f *fakeExec) record(c string) error {
	f.calls = append(f.calls, c)
	return f.err
}

func (f *fakeExec) Show(context.Context) error   { return f.record("show") }
func (f *fakeExec) Prev(context.Context) error   { return f.record("prev") }
func (f *fakeExec) Next(context.Context) error   { return f.record("next") }
func (f *fakeExec) Add(context.Context) error    { return f.record("add") }
func (f *fakeExec) Recent(context.Context) error { return f.record("recent") }
func (f *fakeExec) Video(context.Context) error  { return f.record("video") }
func (f *fakeExec) Reload(context.Context) error { return f.record("reload") }
func (f *fakeExec) Jump(_ context.Context, arg string) error {
	return f.record("jump:" + arg)
}
func (f *fakeExec) SetMode(_ context.Context, arg string) error {
	return f.record("mode:" + arg)
}
func (f *fakeExec) Delete(_ context.Context, arg string) error {
	return f.record("delete:" + arg)
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"",
		"show",
		"n",
		"prev",
		"jump 12.5",
		"jump",
		"mode entries",
		"mode",
		"add",
		"delete abc",
		"d",
		"recent",
		"video",
		"reload",
		"help",
		"bogus",
		"exit",
		"show",
	}, "\n")

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "(d day 1/151)" }, rdr(input))

	assert.Equal(t, []string{
		"show", "next", "prev", "jump:12.5", "mode:entries", "mode:",
		"add", "delete:abc", "delete:", "recent", "video", "reload",
	}, f.calls)

	joined := strings.Join(*out, "")
	assert.Contains(t, joined, "daybook (d day 1/151)> ")
	assert.Contains(t, joined, "Usage: jump <n>")
	assert.Contains(t, joined, "Available commands:")
	assert.Contains(t, joined, "Unknown command: bogus")
	assert.Contains(t, joined, "Bye!")
}

func TestRunREPL_PrintsErrorsAndContinues(t *testing.T) {
	out := captureOutput(t)

	f := &fakeExec{err: errors.New("server unavailable")}
	runREPL(context.Background(), f, func() string { return "" }, rdr("add\nshow\n"))

	assert.Equal(t, []string{"add", "show"}, f.calls)
	assert.Contains(t, strings.Join(*out, ""), "Error: server unavailable")
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, rdr("next"))
	assert.Equal(t, []string{"next"}, f.calls)
}
