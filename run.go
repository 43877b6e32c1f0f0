package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fryou12/chapters/internal/chapter"
	"github.com/fryou12/chapters/internal/config"
	"github.com/fryou12/chapters/internal/reader"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// defaultJobs is the fixed run used when neither files nor a config are given.
var defaultJobs = []job{
	{path: "path/to/file.epub", format: "EPUB"},
	{path: "path/to/file.pdf", format: "PDF"},
	{path: "path/to/file.zip", format: "ZIP"},
}

// job is one file to extract. An empty format dispatches on the extension.
type job struct {
	path   string
	format string
}

type cliFlags struct {
	configPath  string
	stripMarkup bool
	spineOrder  bool
	splitPDF    bool
	showVersion bool
}

func registerFlags(fs *flag.FlagSet) *cliFlags {
	f := &cliFlags{}
	fs.StringVar(&f.configPath, "c", "", "YAML config listing inputs and extraction options")
	fs.BoolVar(&f.stripMarkup, "text", false, "Reduce HTML/XHTML resources to plain text")
	fs.BoolVar(&f.spineOrder, "spine", false, "Read EPUB resources in spine order instead of manifest order")
	fs.BoolVar(&f.splitPDF, "split-pdf", false, "Split PDFs into chapters at detected headings")
	fs.BoolVar(&f.showVersion, "v", false, "Show version information")
	fs.BoolVar(&f.showVersion, "version", false, "Show version information")
	return f
}

// plan resolves the jobs and options for a run. Positional files win over
// config inputs; with neither, the default jobs run. Flags can only turn
// options on.
func plan(f *cliFlags, args []string) ([]job, reader.Options, error) {
	var opts reader.Options
	var jobs []job

	if f.configPath != "" {
		cfg, err := config.Load(f.configPath)
		if err != nil {
			return nil, opts, err
		}
		opts = cfg.Options()
		for _, in := range cfg.Inputs {
			jobs = append(jobs, job{path: in.Path, format: in.Format})
		}
	}

	opts.StripMarkup = opts.StripMarkup || f.stripMarkup
	opts.SpineOrder = opts.SpineOrder || f.spineOrder
	opts.SplitHeadings = opts.SplitHeadings || f.splitPDF

	if len(args) > 0 {
		jobs = jobs[:0]
		for _, a := range args {
			jobs = append(jobs, job{path: a})
		}
	}
	if len(jobs) == 0 && f.configPath == "" {
		jobs = defaultJobs
	}
	return jobs, opts, nil
}

// collect runs every job against dst in order. Each failure is written to
// logger as one line and does not stop the run. It returns the number of
// failed jobs.
func collect(jobs []job, opts reader.Options, dst *chapter.Aggregator, logger *log.Logger) int {
	failures := 0
	for _, j := range jobs {
		if err := runJob(j, opts, dst); err != nil {
			logger.Print(err)
			failures++
		}
	}
	return failures
}

func runJob(j job, opts reader.Options, dst reader.Appender) error {
	if j.format == "" {
		return reader.Process(j.path, dst, opts)
	}
	f, ok := reader.Lookup(j.format)
	if !ok {
		return &reader.ProcessingError{
			Format: j.format,
			Path:   j.path,
			Err:    fmt.Errorf("%w: format %q", reader.ErrUnsupported, j.format),
		}
	}
	return f.Process(j.path, dst, opts)
}

// errorLog is the channel adapter failures are reported on.
func errorLog() *log.Logger {
	return log.New(os.Stderr, "", 0)
}

func printVersion(name string) {
	fmt.Printf("%s %s (commit: %s, built: %s)\n", name, version, commit, date)
}
