// Package ingest implements the offline generation pipeline: it parses the
// markdown source catalog into validated Category and Entry collections,
// derives the compatibility rule set, and writes the three canonical JSON
// files. Generation is all-or-nothing; a structural violation aborts the run
// before anything is written.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/biostack-io/biostack-engine/pkg/apperrors"
	"github.com/biostack-io/biostack-engine/pkg/dataset"
	"github.com/biostack-io/biostack-engine/pkg/models"
)

// Pipeline runs the markdown-to-dataset generation.
type Pipeline struct {
	logger *zap.Logger
}

// NewPipeline creates a Pipeline. Pass zap.NewNop() to silence it.
func NewPipeline(logger *zap.Logger) *Pipeline {
	return &Pipeline{logger: logger}
}

// Summary reports what a generation run produced.
type Summary struct {
	Categories int
	Entries    int
	Rules      int
}

// Run reads the markdown source at sourcePath, regenerates all three
// collections, and writes them to outDir. Output is sorted (categories by
// display order, entries by index number), pretty-printed, and
// newline-terminated; re-running on an unchanged source is byte-identical.
func (p *Pipeline) Run(sourcePath, outDir string) (*Summary, error) {
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source document: %w", err)
	}

	categories, entries, err := parseDocument(string(raw))
	if err != nil {
		return nil, err
	}

	rules := deriveRules(entries, categories)

	if err := assertUniqueness(entries); err != nil {
		return nil, err
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].DisplayOrder < categories[j].DisplayOrder
	})
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].IndexNumber < entries[j].IndexNumber
	})

	// Validate before writing anything so a schema failure leaves the
	// previous output untouched.
	if _, err := dataset.New(categories, entries, rules); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := writeJSONFile(filepath.Join(outDir, dataset.CategoriesFile), categories); err != nil {
		return nil, err
	}
	if err := writeJSONFile(filepath.Join(outDir, dataset.EntriesFile), entries); err != nil {
		return nil, err
	}
	if err := writeJSONFile(filepath.Join(outDir, dataset.RulesFile), rules); err != nil {
		return nil, err
	}

	summary := &Summary{Categories: len(categories), Entries: len(entries), Rules: len(rules)}
	p.logger.Info("Generated data files",
		zap.Int("categories", summary.Categories),
		zap.Int("entries", summary.Entries),
		zap.Int("rules", summary.Rules))
	return summary, nil
}

// assertUniqueness enforces global uniqueness of entry ids and index numbers.
func assertUniqueness(entries []models.Entry) error {
	idSeen := make(map[string]bool, len(entries))
	indexSeen := make(map[int]bool, len(entries))

	for _, entry := range entries {
		if idSeen[entry.ID] {
			return fmt.Errorf("%w: %s", apperrors.ErrDuplicateEntryID, entry.ID)
		}
		if indexSeen[entry.IndexNumber] {
			return fmt.Errorf("%w: %d", apperrors.ErrDuplicateEntryIdx, entry.IndexNumber)
		}
		idSeen[entry.ID] = true
		indexSeen[entry.IndexNumber] = true
	}
	return nil
}

func writeJSONFile(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
