// Package commands implements CLI command handlers for importscout.
package commands

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/importscout/importscout/internal/config"
	"github.com/importscout/importscout/internal/observability"
	"github.com/importscout/importscout/internal/report"
	"github.com/importscout/importscout/internal/scanner"
	"github.com/importscout/importscout/internal/store"
	"github.com/importscout/importscout/pkg/extract"
)

const metricsReadHeaderTimeout = 5 * time.Second

// ErrNoFilesMatched is returned when the walk finds nothing to scan.
var ErrNoFilesMatched = errors.New("no files matched under the scan root")

// ScanCommand holds configuration and flag state for the scan command.
type ScanCommand struct {
	configPath  string
	format      string
	outputFile  string
	storePath   string
	workers     int
	topModules  int
	include     []string
	exclude     []string
	skipVendor  bool
	noColor     bool
	grammarFile string
	metricsAddr string
}

// NewScanCommand creates the scan command.
func NewScanCommand() *cobra.Command {
	sc := &ScanCommand{}

	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Extract imports from files under a path",
		Long: `Scan walks a source tree, detects languages, and extracts normalized
import records from every supported file. Results render as a terminal
table, JSON, YAML, or an HTML chart.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}

			return sc.run(cmd, roots)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sc.configPath, "config", "", "explicit config file path")
	flags.StringVarP(&sc.format, "format", "f", "", "output format: table, json, yaml, html")
	flags.StringVarP(&sc.outputFile, "output", "o", "", "write the report to a file instead of stdout")
	flags.StringVar(&sc.storePath, "store", "", "persist the full result as JSON (.lz4 suffix compresses)")
	flags.IntVarP(&sc.workers, "workers", "w", 0, "worker pool size (0 = CPU count)")
	flags.IntVar(&sc.topModules, "top", 0, "how many top modules to rank")
	flags.StringSliceVar(&sc.include, "include", nil, "glob patterns to include")
	flags.StringSliceVar(&sc.exclude, "exclude", nil, "glob patterns to exclude")
	flags.BoolVar(&sc.skipVendor, "skip-vendor", true, "skip vendored and generated trees")
	flags.BoolVar(&sc.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&sc.grammarFile, "grammar-file", "", "YAML file with extra language grammars")
	flags.StringVar(&sc.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while scanning")

	return cmd
}

// run executes one scan: config resolution, grammar loading, walk,
// extraction, and rendering.
func (sc *ScanCommand) run(cmd *cobra.Command, roots []string) error {
	cfg, err := config.LoadConfig(sc.configPath)
	if err != nil {
		return err
	}

	sc.applyFlagOverrides(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	if cfg.GrammarFile != "" {
		if _, loadErr := extract.LoadGrammarFile(cfg.GrammarFile); loadErr != nil {
			return loadErr
		}
	}

	metrics := observability.NewMetrics()

	if sc.metricsAddr != "" {
		go serveMetrics(sc.metricsAddr, metrics, cmd.ErrOrStderr())
	}

	walker, err := scanner.NewWalker(scanner.WalkOptions{
		Include:    cfg.Scan.Include,
		Exclude:    cfg.Scan.Exclude,
		SkipVendor: cfg.Scan.SkipVendor,
	})
	if err != nil {
		return err
	}

	var paths []string

	for _, root := range roots {
		rootPaths, walkErr := walker.Walk(root)
		if walkErr != nil {
			return walkErr
		}

		paths = append(paths, rootPaths...)
	}

	if len(paths) == 0 {
		return fmt.Errorf("%w: %s", ErrNoFilesMatched, strings.Join(roots, ", "))
	}

	runner, err := scanner.NewRunner(scanner.Options{
		Workers:     cfg.Scan.Workers,
		CacheSize:   cfg.Scan.CacheSize,
		MaxFileSize: cfg.Scan.MaxFileSize,
		Metrics:     metrics,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	files := runner.Run(cmd.Context(), paths)
	result := report.Build(strings.Join(roots, ", "), files, time.Since(start), cfg.Output.TopModules)

	if sc.storePath != "" {
		if saveErr := store.Save(sc.storePath, result); saveErr != nil {
			return saveErr
		}
	}

	return sc.render(cmd, cfg, result)
}

// applyFlagOverrides copies explicitly set flags over loaded config values.
func (sc *ScanCommand) applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = sc.format
	}

	if flags.Changed("output") {
		cfg.Output.File = sc.outputFile
	}

	if flags.Changed("workers") {
		cfg.Scan.Workers = sc.workers
	}

	if flags.Changed("top") {
		cfg.Output.TopModules = sc.topModules
	}

	if flags.Changed("include") {
		cfg.Scan.Include = sc.include
	}

	if flags.Changed("exclude") {
		cfg.Scan.Exclude = sc.exclude
	}

	if flags.Changed("skip-vendor") {
		cfg.Scan.SkipVendor = sc.skipVendor
	}

	if flags.Changed("no-color") {
		cfg.Output.NoColor = sc.noColor
	}

	if flags.Changed("grammar-file") {
		cfg.GrammarFile = sc.grammarFile
	}
}

// render writes the result in the configured format to stdout or a file.
func (sc *ScanCommand) render(cmd *cobra.Command, cfg *config.Config, result report.Result) (err error) {
	var w io.Writer = cmd.OutOrStdout()

	if cfg.Output.File != "" {
		f, createErr := os.Create(cfg.Output.File)
		if createErr != nil {
			return fmt.Errorf("create output file: %w", createErr)
		}

		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("close output file: %w", closeErr)
			}
		}()

		w = f
	}

	switch cfg.Output.Format {
	case "json":
		return report.WriteJSON(w, result)
	case "yaml":
		return report.WriteYAML(w, result)
	case "html":
		return report.WriteHTML(w, result)
	default:
		return report.WriteTable(w, result, report.TableOptions{NoColor: cfg.Output.NoColor})
	}
}

func serveMetrics(addr string, metrics *observability.Metrics, errOut io.Writer) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: metricsReadHeaderTimeout,
	}

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(errOut, "metrics server: %v\n", err)
	}
}
