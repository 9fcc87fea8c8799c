package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"bikeshare/internal/config"
	"bikeshare/internal/dataprocessing"
	"bikeshare/internal/exporter"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/services"
	"bikeshare/pkg/contracts"
	"bikeshare/pkg/contracts/domain"
)

// analyzer is the part of the analysis service the command drives
type analyzer interface {
	Parse(req services.AnalysisRequest) (domain.City, domain.FilterCriteria, error)
	RunAnalysisTyped(ctx context.Context, city domain.City, criteria domain.FilterCriteria) (*domain.PipelineResult, error)
}

type options struct {
	configFile string
	dataDir    string
	city       string
	month      string
	day        string
	raw        bool
	pageSize   int
	jsonOut    bool
	exportPath string
	logLevel   string
	version    bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("bikeshare", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configFile, "config", "", "path to a YAML config file (default: config.yaml when present)")
	fs.StringVar(&opts.dataDir, "data", "", "directory holding the city datasets (overrides config)")
	fs.StringVar(&opts.city, "city", "", "city to analyze: chicago, new york city or washington (omit for interactive mode)")
	fs.StringVar(&opts.month, "month", "all", "month filter: all or january through june")
	fs.StringVar(&opts.day, "day", "all", "day of week filter: all or monday through sunday")
	fs.BoolVar(&opts.raw, "raw", false, "print the filtered rows as CSV after the statistics")
	fs.IntVar(&opts.pageSize, "page-size", 0, "rows per raw data page in interactive mode (overrides config)")
	fs.BoolVar(&opts.jsonOut, "json", false, "print the statistics as JSON")
	fs.StringVar(&opts.exportPath, "export", "", "write the filtered rows to this CSV file")
	fs.StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")
	fs.BoolVar(&opts.version, "version", false, "print version information and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

// run is main without the process exit, returning the exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return 0
	}

	cfg, err := loadConfig(opts.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "bikeshare: %v\n", err)
		return 1
	}
	if opts.dataDir != "" {
		cfg.Data.Dir = opts.dataDir
	}
	if opts.pageSize > 0 {
		cfg.Data.PageSize = opts.pageSize
	}

	logCfg := cfg.Logging
	logCfg.Level = opts.logLevel
	logCfg.Format = "text"
	logger := infrastructure.NewLogger(logCfg, stderr)

	service, err := newAnalyzer(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "bikeshare: %v\n", err)
		return 1
	}

	if opts.city == "" {
		session := newSession(stdin, stdout, service, cfg.Data.PageSize)
		if err := session.Run(ctx); err != nil {
			fmt.Fprintf(stderr, "bikeshare: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runOnce(ctx, opts, service, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "bikeshare: %v\n", err)
		return 1
	}
	return 0
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}

func newAnalyzer(cfg *config.Config, logger *slog.Logger) (*services.AnalysisService, error) {
	metrics, err := infrastructure.CreatePipelineMetrics(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	loader := dataprocessing.NewLoader(cfg.DataSources(), logger)
	engine := dataprocessing.NewEngine(logger)
	return services.NewAnalysisService(loader, engine, metrics, logger), nil
}

// runOnce analyzes the selection given on the command line
func runOnce(ctx context.Context, opts *options, service analyzer, stdout io.Writer, logger *slog.Logger) error {
	city, criteria, err := service.Parse(services.AnalysisRequest{
		City:  opts.city,
		Month: opts.month,
		Day:   opts.day,
	})
	if err != nil {
		return err
	}

	result, err := service.RunAnalysisTyped(ctx, city, criteria)
	if err != nil {
		return err
	}

	if opts.exportPath != "" {
		if err := exporter.ExportCSV(opts.exportPath, result.Table); err != nil {
			return fmt.Errorf("export rows: %w", err)
		}
		logger.InfoContext(ctx, "rows exported",
			slog.String("path", opts.exportPath),
			slog.Int("rows", result.Table.Len()))
	}

	if opts.jsonOut {
		if err := exporter.WriteJSON(stdout, result); err != nil {
			return err
		}
	} else {
		report := exporter.NewTextReport(stdout)
		if err := report.Selection(result.City, result.Criteria, result.Table.Len(), result.TotalRows); err != nil {
			return err
		}
		if err := report.Write(result); err != nil {
			return err
		}
	}

	if opts.raw && result.Table != nil {
		return exporter.WriteRows(stdout, result.Table.Schema, result.Table.Rows, exporter.WriteOptions{Headers: true})
	}
	return nil
}
