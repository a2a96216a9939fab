package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/triplify"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Fetcher    triplify.Fetcher
	Pipeline   triplify.Pipeline
	Extractors *triplify.ExtractorRegistry
	Writers    *triplify.WriterRegistry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Timeout    time.Duration `default:"10s" help:"Fetch timeout"`
	Render     bool          `help:"Render pages in headless Chrome before extraction"`
	Rate       float64       `default:"0" help:"Requests per second per host (0 disables limiting)"`
	Concurrent bool          `help:"Run extractors in parallel"`
	Article    string        `default:"trafilatura" enum:"trafilatura,readability,none" help:"Main-content engine for the html-article extractor"`
	LogFile    string        `name:"log-file" env:"TRIPLIFY_LOG_FILE" help:"Write logs to a rotated file instead of stderr"`
	Verbose    bool          `short:"v" help:"Log debug output"`

	Serve      ServeCmd      `cmd:"" help:"Run the HTTP extraction service"`
	Extract    ExtractCmd    `cmd:"" help:"Extract triples from a URI or local file"`
	Extractors ExtractorsCmd `cmd:"" help:"List registered extractors"`
	Batch      BatchCmd      `cmd:"" help:"Extract every URI listed in a file"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" env:"TRIPLIFY_ADDR" help:"Listen address"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Input      string   `arg:"" help:"URI, host or local file"`
	Format     string   `short:"f" default:"nt" help:"Output format"`
	Extractors []string `short:"e" name:"extractor" help:"Run only the named extractor (repeatable)"`
	Type       string   `short:"t" help:"Declared media type of the input"`
	AutoDetect bool     `name:"auto-detect" help:"Guess the media type from content when needed"`
	Output     string   `short:"o" type:"path" help:"Write output to file instead of stdout"`
}

// ExtractorsCmd is the "extractors" subcommand.
type ExtractorsCmd struct{}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	ListFile    string   `arg:"" type:"existingfile" help:"File with one URI per line"`
	OutDir      string   `arg:"" type:"path" help:"Output directory, replaced on success"`
	Format      string   `short:"f" default:"nt" help:"Output format"`
	Extractors  []string `short:"e" name:"extractor" help:"Run only the named extractor (repeatable)"`
	Concurrency int      `short:"c" default:"3" help:"Documents processed at once"`
}
