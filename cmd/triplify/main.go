package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/triplify"
	"github.com/fwojciec/triplify/cayley"
	"github.com/fwojciec/triplify/etree"
	"github.com/fwojciec/triplify/extractor"
	"github.com/fwojciec/triplify/goquery"
	"github.com/fwojciec/triplify/htmltomarkdown"
	thttp "github.com/fwojciec/triplify/http"
	"github.com/fwojciec/triplify/pipeline"
	"github.com/fwojciec/triplify/readability"
	"github.com/fwojciec/triplify/rod"
	tslog "github.com/fwojciec/triplify/slog"
	"github.com/fwojciec/triplify/trafilatura"
	"github.com/fwojciec/triplify/writer"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the fetcher built from flags. Set before calling Run().
	Fetcher triplify.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
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
		kong.Name("triplify"),
		kong.Description("Extract RDF triples from web documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'triplify --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logOutput := stderr
	if cli.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cli.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		defer rotator.Close()
		logOutput = rotator
	}
	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	} else if strings.HasPrefix(kongCtx.Command(), "serve") {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{Level: level}))

	deps.Writers, err = NewWriterRegistry()
	if err != nil {
		return err
	}
	deps.Extractors, err = NewExtractorRegistry(cli.Article, deps.Logger)
	if err != nil {
		return err
	}

	// Commands that read documents need a fetcher and a pipeline.
	if !strings.HasPrefix(kongCtx.Command(), "extractors") {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(cli); err != nil {
				return err
			}
		}
		deps.Fetcher = tslog.NewLoggingFetcher(fetcher, deps.Logger)
		defer deps.Fetcher.Close()

		deps.Pipeline = tslog.NewLoggingPipeline(&pipeline.Runner{
			Parser:     goquery.NewParser(),
			Extractors: deps.Extractors,
			Writers:    deps.Writers,
			Concurrent: cli.Concurrent,
		}, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// NewWriterRegistry registers every output format.
func NewWriterRegistry() (*triplify.WriterRegistry, error) {
	return triplify.NewWriterRegistry(
		cayley.NTriplesWriterFactory,
		cayley.NQuadsWriterFactory,
		writer.TurtleWriterFactory,
		etree.WriterFactory,
		writer.JSONWriterFactory,
	)
}

// NewExtractorRegistry registers the built-in extractors, the article
// extractor backed by engine, and the RDF input extractors. Every extractor
// logs its runs at debug level.
func NewExtractorRegistry(engine string, logger *slog.Logger) (*triplify.ExtractorRegistry, error) {
	factories := extractor.Factories()
	switch engine {
	case "trafilatura":
		factories = append(factories, extractor.NewArticleFactory(trafilatura.NewExtractor(), htmltomarkdown.NewConverter()))
	case "readability":
		factories = append(factories, extractor.NewArticleFactory(readability.NewExtractor(), htmltomarkdown.NewConverter()))
	}
	factories = append(factories, cayley.NTriplesFactory, cayley.NQuadsFactory)
	return triplify.NewExtractorRegistry(tslog.WrapExtractorFactories(factories, logger)...)
}

func newFetcher(cli *CLI) (triplify.Fetcher, error) {
	if cli.Render {
		f, err := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	}

	opts := []thttp.Option{thttp.WithTimeout(cli.Timeout)}
	if cli.Rate > 0 {
		opts = append(opts, thttp.WithRateLimiter(thttp.NewDomainLimiter(cli.Rate)))
	}
	return thttp.NewFetcher(opts...), nil
}
