package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/daybook/internal/client/allocator"
	"github.com/dmitrijs2005/daybook/internal/client/client"
	"github.com/dmitrijs2005/daybook/internal/client/config"
	"github.com/dmitrijs2005/daybook/internal/client/prompts"
	"github.com/dmitrijs2005/daybook/internal/client/services"
	"github.com/dmitrijs2005/daybook/internal/client/viewer"
	"github.com/dmitrijs2005/daybook/internal/filex"
	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/netx"
	"github.com/fatih/color"
)

type App struct {
	config   *config.Config
	gateway  client.Gateway
	entries  *services.EntryService
	alloc    *allocator.Allocator
	fetcher  prompts.Fetcher
	session  viewer.Session
	reader   *bufio.Reader
	out      io.Writer
	logger   logging.Logger
	readFile func(path string, limit int64) ([]byte, error)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	l := logging.NewJSONLogger(os.Stderr, c.LogLevel).With("app", "daybook")
	reader := bufio.NewReader(os.Stdin)

	if c.AccessKey == "" && isTerminal(int(os.Stdin.Fd())) {
		key, err := GetAccessKey(os.Stdout)
		if err != nil {
			return nil, fmt.Errorf("error reading access key: %w", err)
		}
		c.AccessKey = key
	}

	httpClient := netx.NewHTTPClient(c.RequestTimeout)

	gw, err := client.NewGRPCClient(c.ServerEndpointAddr, c.ServiceURL, c.AccessKey, httpClient)
	if err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}

	a := newApp(c, gw, httpClient, reader, color.Output, l)
	a.loadPrompts(ctx)
	return a, nil
}

func newApp(c *config.Config, gw client.Gateway, f prompts.Fetcher, reader *bufio.Reader, out io.Writer, l logging.Logger) *App {
	svc := services.NewEntryService(gw, nil, services.Options{
		ImageBucket:  c.ImageBucket,
		VideoBucket:  c.VideoBucket,
		MaxDay:       c.MaxDay,
		DefaultTitle: c.DefaultTitle,
	}, l)

	return &App{
		config:   c,
		gateway:  gw,
		entries:  svc,
		alloc:    allocator.New(gw, c.MaxDay, l),
		fetcher:  f,
		session:  viewer.NewSession(c.DiaryID, c.MaxDay, nil),
		reader:   reader,
		out:      out,
		logger:   l,
		readFile: filex.ReadFile,
	}
}

// loadPrompts installs a freshly loaded prompt table. On failure the
// previous table stays in place.
func (a *App) loadPrompts(ctx context.Context) {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	table, err := prompts.Load(ctx, a.fetcher, a.config.PromptsLocation())
	if err != nil {
		a.logger.Warn(ctx, "prompts unavailable", "error", err)
		return
	}
	a.entries.SetPrompts(table)
	a.session.Prompts = table
}

// start positions the day cursor on the next free day and loads entries.
func (a *App) start(ctx context.Context) {
	tctx, cancel := a.withTimeout(ctx)
	alloc := a.alloc.Next(tctx, a.session.DiaryID)
	cancel()

	if alloc.Degraded {
		a.warn("Could not read earlier entries, starting at day 1.")
	}
	a.session = a.session.WithDay(alloc.Day)

	if err := a.reloadEntries(ctx); err != nil {
		a.warn(err.Error())
	}
}

func (a *App) reloadEntries(ctx context.Context) error {
	ctx, cancel := a.withTimeout(ctx)
	defer cancel()

	items, err := a.entries.Browse(ctx, a.session.DiaryID)
	if err != nil {
		return err
	}
	a.session = a.session.WithEntries(items)
	return nil
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}

func (a *App) status() string {
	if a.session.Mode == viewer.ModeEntries {
		if a.session.List.Len() == 0 {
			return fmt.Sprintf("(%s entries 0/0)", a.session.DiaryID)
		}
		return fmt.Sprintf("(%s entry %d/%d)", a.session.DiaryID, a.session.List.Position()+1, a.session.List.Len())
	}
	return fmt.Sprintf("(%s day %d/%d)", a.session.DiaryID, a.session.Days.Day(), a.session.Days.Max())
}

// Run blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.gateway.Close()

	printlnFn("Welcome to daybook (type 'help' for commands)")
	a.start(ctx)
	_ = a.Show(ctx)
	runREPL(ctx, a, a.status, a.reader)
}
