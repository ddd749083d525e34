package scanner

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/src-d/enry/v2"

	"github.com/importscout/importscout/internal/observability"
	"github.com/importscout/importscout/pkg/extract"
	"github.com/importscout/importscout/pkg/importmodel"
)

// DefaultCacheSize bounds the result cache entry count.
const DefaultCacheSize = 4096

// DefaultMaxFileSize skips files above 1 MiB; import statements live near
// the top of real source files, and anything larger is usually generated.
const DefaultMaxFileSize = 1 << 20

// Options configure a Runner.
type Options struct {
	// Workers sizes the pool; 0 means one worker per CPU.
	Workers int
	// CacheSize bounds the result cache; 0 means DefaultCacheSize.
	CacheSize int
	// MaxFileSize skips larger files; 0 means DefaultMaxFileSize.
	MaxFileSize int64
	// Metrics receives instrumentation; nil builds a private set.
	Metrics *observability.Metrics
}

// Runner extracts imports from a batch of files. The engine itself is
// stateless, so the pool shares nothing but the result cache.
type Runner struct {
	workers     int
	maxFileSize int64
	cache       *resultCache
	metrics     *observability.Metrics
}

// NewRunner builds a runner from options, applying defaults.
func NewRunner(opts Options) (*Runner, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	cacheSize := opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	cache, err := newResultCache(cacheSize)
	if err != nil {
		return nil, err
	}

	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}

	return &Runner{
		workers:     workers,
		maxFileSize: maxFileSize,
		cache:       cache,
		metrics:     metrics,
	}, nil
}

// Run extracts imports from every path. Results come back in input order
// regardless of worker scheduling; files that are unreadable keep a slot
// with Error set, files with no detectable grammar are dropped.
func (r *Runner) Run(ctx context.Context, paths []string) []importmodel.File {
	start := time.Now()

	type slot struct {
		file importmodel.File
		keep bool
	}

	slots := make([]slot, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup

	for i := 0; i < r.workers; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					continue
				}

				file, keep := r.processFile(paths[idx])
				slots[idx] = slot{file: file, keep: keep}
			}
		}()
	}

	for idx := range paths {
		jobs <- idx
	}

	close(jobs)
	wg.Wait()

	files := make([]importmodel.File, 0, len(paths))

	for _, s := range slots {
		if s.keep {
			files = append(files, s.file)
		}
	}

	r.metrics.ScanDuration.Observe(time.Since(start).Seconds())

	return files
}

// processFile reads, detects, and extracts one file. The second return is
// false when the file is out of scope (too large, binary, or no grammar).
func (r *Runner) processFile(path string) (importmodel.File, bool) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return importmodel.File{Path: path, Error: fmt.Errorf("read file: %w", err)}, true
	}

	if int64(len(contents)) > r.maxFileSize {
		return importmodel.File{}, false
	}

	if enry.IsBinary(contents) {
		return importmodel.File{}, false
	}

	lang := DetectLanguage(path, contents)
	if lang == "" {
		return importmodel.File{}, false
	}

	records, diags := r.extract(lang, contents)

	r.metrics.FilesScanned.Inc()
	r.metrics.RecordsExtracted.Add(float64(len(records)))

	for _, diag := range diags {
		r.metrics.Diagnostics.WithLabelValues(diag.Kind.String()).Inc()
	}

	return importmodel.File{
		Path:        path,
		Lang:        lang,
		Records:     records,
		Diagnostics: diags,
	}, true
}

func (r *Runner) extract(lang string, contents []byte) ([]importmodel.Record, []importmodel.Diagnostic) {
	key := cacheKey(lang, contents)

	if cached, ok := r.cache.get(key); ok {
		r.metrics.CacheHits.Inc()

		return cached.records, cached.diags
	}

	r.metrics.CacheMisses.Inc()

	records, diags, err := extract.Extract(string(contents), lang)
	if err != nil {
		// DetectLanguage only returns registered grammars; an engine
		// lookup failure here means the table changed mid-run.
		return nil, nil
	}

	r.cache.put(key, cachedResult{records: records, diags: diags})

	return records, diags
}
