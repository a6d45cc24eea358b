package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/smileynet/swcatalog"
	"github.com/smileynet/swcatalog/internal/catalog"
	"github.com/smileynet/swcatalog/internal/config"
	"github.com/smileynet/swcatalog/internal/server"
	"github.com/smileynet/swcatalog/internal/swapi"
	"github.com/smileynet/swcatalog/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Config string `help:"Extra config file, applied after the user and project files." type:"existingfile" placeholder:"PATH"`
}

// CLI is the top-level command structure for swcatalog.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	Browse  BrowseCmd        `cmd:"" help:"Browse the catalog in an interactive dashboard."`
	List    ListCmd          `cmd:"" help:"Print one collection as plain text."`
	Show    ShowCmd          `cmd:"" help:"Print the related records of one item."`
	Serve   ServeCmd         `cmd:"" help:"Serve the catalog as JSON over HTTP."`
	Conf    ConfigCmd        `cmd:"" name:"config" help:"Manage configuration files."`
}

// loadConfig loads .env, then the layered config files, then environment
// overrides, and validates the result.
func loadConfig(extra string) (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.LoadLayered(append(config.DefaultPaths(), extra)...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLogger returns the diagnostic logger for a command. With log.file set,
// lines go to that file; otherwise the dashboard discards them and the plain
// commands write to stderr.
func openLogger(cfg *config.Config, interactive bool) (*log.Logger, func(), error) {
	if cfg.Log.File != "" {
		f, err := tea.LogToFile(cfg.Log.File, "swcatalog")
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		return log.Default(), func() { _ = f.Close() }, nil
	}
	if interactive {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	return log.New(os.Stderr, "swcatalog: ", log.LstdFlags), func() {}, nil
}

// newCatalog wires the upstream client and the five sections from cfg.
func newCatalog(cfg *config.Config, logger catalog.Logger) *catalog.Catalog {
	client := swapi.NewClient(cfg.API.BaseURL,
		swapi.WithTimeout(cfg.API.Timeout),
		swapi.WithUserAgent(cfg.API.UserAgent),
		swapi.WithRateLimit(cfg.API.RatePerSecond),
		swapi.WithMaxRetries(cfg.API.MaxRetries),
	)
	return catalog.New(client, cfg.API.BaseURL,
		catalog.WithConcurrency(cfg.Resolver.Concurrency),
		catalog.WithLogger(logger),
	)
}

// setup loads config, opens the logger and builds the catalog.
func setup(g *Globals, interactive bool) (*config.Config, *catalog.Catalog, *log.Logger, func(), error) {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	logger, closeLog, err := openLogger(cfg, interactive)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, newCatalog(cfg, logger), logger, closeLog, nil
}

// --- Browse command ---

// BrowseCmd opens the interactive dashboard.
type BrowseCmd struct {
	Kind string `help:"Kind shown first (people, starships, planets, films, vehicles)." default:"people"`
}

// Run builds real dependencies and launches the dashboard.
func (b *BrowseCmd) Run(g *Globals) error {
	kind, err := swapi.ParseKind(b.Kind)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	if !tui.IsTTY(os.Stdout) {
		return b.run(context.Background(), false, nil, nil)
	}

	_, cat, _, closeLog, err := setup(g, true)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	defer closeLog()

	display := tui.NewDisplay(tui.DisplayOptions{Writer: os.Stdout, Kind: kind})
	return b.run(context.Background(), true, display, cat)
}

// run executes the display, enabling testable wiring.
func (b *BrowseCmd) run(ctx context.Context, isTTY bool, d tui.Display, cat *catalog.Catalog) error {
	if !isTTY {
		return fmt.Errorf("browse: requires a terminal (TTY); use list or show for plain output")
	}
	if err := d.Run(ctx, cat); err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return nil
}

// --- List command ---

// ListCmd prints one collection as plain text cards.
type ListCmd struct {
	Kind string `arg:"" help:"Kind to list (people, starships, planets, films, vehicles)."`
}

// Run executes the list command.
func (l *ListCmd) Run(g *Globals) error {
	kind, err := swapi.ParseKind(l.Kind)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	_, cat, _, closeLog, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return l.run(ctx, os.Stdout, cat, kind)
}

func (l *ListCmd) run(ctx context.Context, w io.Writer, cat *catalog.Catalog, kind swapi.Kind) error {
	d := tui.NewDisplay(tui.DisplayOptions{Writer: w, ForcePlain: true, Kind: kind})
	if err := d.Run(ctx, cat); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return nil
}

// --- Show command ---

// ShowCmd prints the detail dialog for one item.
type ShowCmd struct {
	Kind  string `arg:"" help:"Kind of the item."`
	Query string `arg:"" help:"Numeric ID or part of the item's name or title."`
}

// Run executes the show command.
func (s *ShowCmd) Run(g *Globals) error {
	kind, err := swapi.ParseKind(s.Kind)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	_, cat, _, closeLog, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return s.run(ctx, os.Stdout, cat, kind)
}

func (s *ShowCmd) run(ctx context.Context, w io.Writer, cat *catalog.Catalog, kind swapi.Kind) error {
	sec, err := cat.Section(kind)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}

	sec.Load(ctx)
	if v := sec.View(); v.State == catalog.StateFailed {
		return fmt.Errorf("show: %w: %s: %s", tui.ErrLoadFailed, kind, v.Error)
	}

	idx, ok := sec.Find(s.Query)
	if !ok {
		return fmt.Errorf("show: %w: no %s matching %q", catalog.ErrItemNotFound, kind.Noun(1), s.Query)
	}
	if err := sec.OpenDetails(ctx, idx); err != nil {
		return fmt.Errorf("show: %w", err)
	}
	defer sec.Close()

	return tui.WriteDialog(w, sec.View())
}

// --- Serve command ---

// ServeCmd serves the catalog over HTTP until interrupted.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides serve.addr)." placeholder:"HOST:PORT"`
}

// Run executes the serve command.
func (s *ServeCmd) Run(g *Globals) error {
	cfg, cat, logger, closeLog, err := setup(g, false)
	if err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return s.run(ctx, cfg, cat, logger)
}

func (s *ServeCmd) run(ctx context.Context, cfg *config.Config, cat *catalog.Catalog, logger *log.Logger) error {
	addr := cfg.Serve.Addr
	if s.Addr != "" {
		addr = s.Addr
	}
	srv := server.New(cat, server.WithLogger(logger), server.WithAccessLog(logger.Writer()))
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// --- Config command ---

// ConfigCmd groups configuration helpers.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the sample config file."`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration."`
}

// ConfigInitCmd writes the embedded sample config.
type ConfigInitCmd struct {
	Path  string `help:"Destination file." default:".swcatalog.yaml"`
	Force bool   `help:"Overwrite an existing file."`
}

// Run executes the config init command.
func (c *ConfigInitCmd) Run() error {
	return c.run(os.Stdout)
}

func (c *ConfigInitCmd) run(w io.Writer) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if c.Force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(c.Path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("config init: %s already exists (use --force to overwrite)", c.Path)
		}
		return fmt.Errorf("config init: %w", err)
	}
	if _, err := f.Write(swcatalog.ExampleConfig); err != nil {
		_ = f.Close()
		return fmt.Errorf("config init: writing %s: %w", c.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("config init: %w", err)
	}

	_, _ = fmt.Fprintf(w, "Wrote %s\n", c.Path)
	return nil
}

// ConfigShowCmd prints the merged configuration as YAML.
type ConfigShowCmd struct{}

// Run executes the config show command.
func (c *ConfigShowCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		return fmt.Errorf("config show: %w", err)
	}
	return c.run(os.Stdout, cfg)
}

func (c *ConfigShowCmd) run(w io.Writer, cfg *config.Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config show: %w", err)
	}
	return enc.Close()
}

// Exit codes.
const (
	exitSuccess  = 0
	exitUpstream = 1
	exitSetup    = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *swapi.StatusError
	if errors.As(err, &se) || errors.Is(err, tui.ErrLoadFailed) {
		return exitUpstream
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("swcatalog"),
		kong.Description("Browse the Star Wars reference API."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
