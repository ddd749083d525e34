// Package report aggregates scan results and renders them for terminals,
// machines, and browsers.
package report

import (
	"sort"
	"time"

	"github.com/importscout/importscout/pkg/importmodel"
)

// DefaultTopModules bounds the most-imported-modules list.
const DefaultTopModules = 20

// ModuleCount is one module with its import frequency.
type ModuleCount struct {
	Module string `json:"module" yaml:"module"`
	Count  int    `json:"count"  yaml:"count"`
}

// Summary aggregates one scan run.
type Summary struct {
	FileCount       int            `json:"file_count"       yaml:"file_count"`
	RecordCount     int            `json:"record_count"     yaml:"record_count"`
	DiagnosticCount int            `json:"diagnostic_count" yaml:"diagnostic_count"`
	ErrorCount      int            `json:"error_count"      yaml:"error_count"`
	Languages       map[string]int `json:"languages"        yaml:"languages"`
	TopModules      []ModuleCount  `json:"top_modules"      yaml:"top_modules"`
	Duration        time.Duration  `json:"duration_ns"      yaml:"duration_ns"`
}

// Result is the full output of one scan run.
type Result struct {
	Root    string             `json:"root"    yaml:"root"`
	Files   []importmodel.File `json:"files"   yaml:"files"`
	Summary Summary            `json:"summary" yaml:"summary"`
}

// Build aggregates per-file results into a Result. Top modules sort by
// count descending, then name, so identical inputs render identically.
func Build(root string, files []importmodel.File, duration time.Duration, topModules int) Result {
	if topModules <= 0 {
		topModules = DefaultTopModules
	}

	summary := Summary{
		FileCount: len(files),
		Languages: map[string]int{},
		Duration:  duration,
	}

	counts := map[string]int{}

	for _, file := range files {
		if file.Error != nil {
			summary.ErrorCount++

			continue
		}

		summary.Languages[file.Lang]++
		summary.RecordCount += len(file.Records)
		summary.DiagnosticCount += len(file.Diagnostics)

		for _, rec := range file.Records {
			counts[rec.Module]++
		}
	}

	summary.TopModules = rankModules(counts, topModules)

	return Result{Root: root, Files: files, Summary: summary}
}

func rankModules(counts map[string]int, limit int) []ModuleCount {
	ranked := make([]ModuleCount, 0, len(counts))
	for module, count := range counts {
		ranked = append(ranked, ModuleCount{Module: module, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}

		return ranked[i].Module < ranked[j].Module
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
