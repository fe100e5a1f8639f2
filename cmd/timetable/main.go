package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/crawl"
	"github.com/fwojciec/timetable/gemini"
	"github.com/fwojciec/timetable/goquery"
	"github.com/fwojciec/timetable/htmltomarkdown"
	tthttp "github.com/fwojciec/timetable/http"
	locregexp "github.com/fwojciec/timetable/regexp"
	"github.com/fwojciec/timetable/rod"
	ttslog "github.com/fwojciec/timetable/slog"
	"github.com/fwojciec/timetable/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("timetable"),
		kong.Description("Extract, store and query university course timetables"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars(Vars()),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'timetable --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	deps.Logger = newLogger(stderr, cli.LogLevel)

	var fetcher timetable.Fetcher = tthttp.NewFetcher(tthttp.WithTimeout(cli.Timeout))
	if cli.Browser && usesFetcher(cmd, cli.Extract.Source) {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: --browser needs Chrome or Chromium installed")
			return err
		}
		defer f.Close()
		fetcher = f
	}
	deps.Fetcher = ttslog.NewLoggingFetcher(fetcher, deps.Logger)
	deps.Extractor = ttslog.NewLoggingExtractor(locregexp.NewExtractor(locregexp.WithCampus(cli.Campus)), deps.Logger)
	deps.Converter = htmltomarkdown.NewConverter()

	// extract works on a single page and never touches the database.
	if cmd == "extract" {
		return kongCtx.Run(deps)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TIMETABLE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Departments = sqlite.NewDepartmentService(m.DB)
	deps.Courses = sqlite.NewCourseService(m.DB)

	switch cmd {
	case "discover":
		deps.Selector = goquery.NewDepartmentSelector(
			goquery.WithParam(cli.Discover.Param),
			goquery.WithSelector(cli.Discover.Selector),
		)
	case "sync":
		deps.Harvester = &crawl.Harvester{
			Fetcher:     deps.Fetcher,
			Extractor:   deps.Extractor,
			Departments: deps.Departments,
			Courses:     deps.Courses,
			RateLimiter: crawl.NewDomainLimiter(cli.Sync.RPS),
			Concurrency: cli.Sync.Concurrency,
			Force:       cli.Sync.Force,
		}
	case "ask":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		asker := gemini.NewAsker(client, deps.Departments, deps.Courses, gemini.WithModel(cli.Ask.Model))
		deps.Asker = ttslog.NewLoggingAsker(asker, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// usesFetcher reports whether cmd downloads pages. extract reads local files
// from disk and only fetches http(s) sources.
func usesFetcher(cmd, source string) bool {
	switch cmd {
	case "extract":
		return isURL(source)
	case "discover", "sync":
		return true
	}
	return false
}

// newLogger returns a text logger on w at the named level, or a logger that
// discards everything for "off".
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultDBPath() string {
	if path := os.Getenv("TIMETABLE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "timetable.db"
	}
	dir := filepath.Join(home, ".timetable")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "timetable.db")
}
