package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/crawl"
	"github.com/fwojciec/timetable/gemini"
	"github.com/fwojciec/timetable/goquery"
	locregexp "github.com/fwojciec/timetable/regexp"
	"github.com/fwojciec/timetable/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	DB          *sqlite.DB
	Departments timetable.DepartmentService
	Courses     timetable.CourseService
	Fetcher     timetable.Fetcher
	Extractor   timetable.CourseExtractor
	Selector    timetable.DepartmentSelector
	Converter   timetable.Converter
	Harvester   *crawl.Harvester
	Asker       timetable.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string        `name:"log-level" enum:"off,debug,info,warn,error" default:"off" env:"TIMETABLE_LOG" help:"Log level for diagnostics on stderr (off, debug, info, warn, error)"`
	Timeout  time.Duration `default:"10s" help:"HTTP fetch timeout"`
	Browser  bool          `env:"TIMETABLE_BROWSER" help:"Render pages in headless Chrome for timetables built with JavaScript"`
	Campus   string        `default:"${campus}" help:"Campus recorded on extracted courses"`

	Extract  ExtractCmd  `cmd:"" help:"Extract courses from a timetable page (file or URL) without storing them"`
	Add      AddCmd      `cmd:"" help:"Register a department timetable page"`
	Discover DiscoverCmd `cmd:"" help:"Register departments linked from a timetable index page"`
	Sync     SyncCmd     `cmd:"" help:"Fetch registered departments and store their courses"`
	List     ListCmd     `cmd:"" help:"List registered departments"`
	Courses  CoursesCmd  `cmd:"" help:"List stored courses of a department"`
	Show     ShowCmd     `cmd:"" help:"Show a course by its full code, e.g. CSC108H5F"`
	Export   ExportCmd   `cmd:"" help:"Write a department's timetable to a Markdown or XML file"`
	Ask      AskCmd      `cmd:"" help:"Ask a question about a department's timetable"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a department and its courses"`
}

// Vars returns the kong variables interpolated into CLI tags.
func Vars() map[string]string {
	return map[string]string{
		"campus":       locregexp.DefaultCampus,
		"param":        goquery.DefaultParam,
		"selector":     goquery.DefaultSelector,
		"concurrency":  fmt.Sprint(crawl.DefaultConcurrency),
		"rps":          fmt.Sprint(crawl.DefaultRequestsPerSecond),
		"model":        gemini.DefaultModel,
		"exportFormat": "markdown",
	}
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Source string `arg:"" help:"Timetable page: a file path or an http(s) URL"`
	Dept   string `short:"d" help:"Department code recorded on each course"`
	Format string `short:"o" enum:"text,markdown,xml" default:"text" help:"Output format (text, markdown, xml)"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Code string `arg:"" help:"Department code, e.g. CSC"`
	URL  string `arg:"" help:"Department timetable page URL"`
	Name string `short:"n" help:"Department name"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL      string `arg:"" help:"Timetable index page URL"`
	Preview  bool   `short:"p" help:"Show departments without registering them"`
	Param    string `default:"${param}" help:"Query parameter naming the department in links"`
	Selector string `default:"${selector}" help:"CSS selector for candidate links"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	Codes       []string `arg:"" optional:"" help:"Department codes to sync (default: all)"`
	Force       bool     `short:"f" help:"Re-extract pages that have not changed"`
	Concurrency int      `short:"c" default:"${concurrency}" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"${rps}" help:"Requests per second per host"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// CoursesCmd is the "courses" subcommand.
type CoursesCmd struct {
	Code     string `arg:"" help:"Department code"`
	Category string `help:"Only courses carrying this category (SSc, SCI, HUM)"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Abbr string `arg:"" help:"Full course code, e.g. CSC108H5F"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Code   string `arg:"" help:"Department code"`
	Format string `short:"o" enum:"markdown,xml" default:"${exportFormat}" help:"Output format (markdown, xml)"`
	Out    string `default:"." type:"path" help:"Output directory"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Code     string `arg:"" help:"Department code"`
	Question string `arg:"" help:"Question to ask about the timetable"`
	Model    string `default:"${model}" help:"Gemini model"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Code  string `arg:"" help:"Department code"`
	Force bool   `help:"Confirm deletion"`
}

// findDepartment looks up a registered department by code and reports
// failures on stderr.
func findDepartment(deps *Dependencies, code string) (*timetable.Department, error) {
	code = strings.ToUpper(code)
	depts, err := deps.Departments.FindDepartments(deps.Ctx, timetable.DepartmentFilter{Code: &code})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", timetable.ErrorMessage(err))
		return nil, err
	}

	if len(depts) == 0 {
		fmt.Fprintf(deps.Stderr, "error: department %q not found. Use 'timetable list' to see registered departments.\n", code)
		return nil, timetable.Errorf(timetable.ENOTFOUND, "department %q not found", code)
	}

	return depts[0], nil
}
