// Package dataset loads the generated static data files into an immutable
// in-memory snapshot. Everything is read-only after Load; there is no write
// path at runtime, so the snapshot is safe for concurrent request handling
// without locking.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/biostack-io/biostack-engine/pkg/apperrors"
	"github.com/biostack-io/biostack-engine/pkg/models"
)

// File names of the three generated collections within the data directory.
const (
	CategoriesFile = "categories.json"
	EntriesFile    = "entries.json"
	RulesFile      = "compatibility-rules.json"
)

// Dataset is the validated, id-indexed snapshot of categories, entries, and
// compatibility rules. Construct it once at startup and inject it; do not
// reach for package-level state.
type Dataset struct {
	categories []models.Category
	entries    []models.Entry
	rules      []models.CompatibilityRule

	entryByID    map[string]models.Entry
	categoryByID map[string]models.Category
}

// New validates the three collections and builds the lookup indexes.
// Every record must re-validate against its schema; a single invalid record
// fails construction.
func New(categories []models.Category, entries []models.Entry, rules []models.CompatibilityRule) (*Dataset, error) {
	for i := range categories {
		if err := categories[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: category %q: %v", apperrors.ErrSchemaValidation, categories[i].ID, err)
		}
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: entry %q: %v", apperrors.ErrSchemaValidation, entries[i].ID, err)
		}
	}
	for i := range rules {
		if err := rules[i].Validate(); err != nil {
			return nil, fmt.Errorf("%w: rule %q: %v", apperrors.ErrSchemaValidation, rules[i].ID, err)
		}
	}

	ds := &Dataset{
		categories:   categories,
		entries:      entries,
		rules:        rules,
		entryByID:    make(map[string]models.Entry, len(entries)),
		categoryByID: make(map[string]models.Category, len(categories)),
	}
	for _, entry := range entries {
		ds.entryByID[entry.ID] = entry
	}
	for _, category := range categories {
		ds.categoryByID[category.ID] = category
	}
	return ds, nil
}

// Load reads the three generated JSON files from dir and builds a Dataset.
func Load(dir string) (*Dataset, error) {
	var categories []models.Category
	if err := readJSONFile(filepath.Join(dir, CategoriesFile), &categories); err != nil {
		return nil, err
	}

	var entries []models.Entry
	if err := readJSONFile(filepath.Join(dir, EntriesFile), &entries); err != nil {
		return nil, err
	}

	var rules []models.CompatibilityRule
	if err := readJSONFile(filepath.Join(dir, RulesFile), &rules); err != nil {
		return nil, err
	}

	return New(categories, entries, rules)
}

func readJSONFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Categories returns all categories in display order.
func (d *Dataset) Categories() []models.Category {
	return d.categories
}

// Entries returns all entries in index-number order.
func (d *Dataset) Entries() []models.Entry {
	return d.entries
}

// Rules returns all compatibility rules.
func (d *Dataset) Rules() []models.CompatibilityRule {
	return d.rules
}

// EntryByID looks up a single entry. The second return is false when the id
// is unknown.
func (d *Dataset) EntryByID(id string) (models.Entry, bool) {
	entry, ok := d.entryByID[id]
	return entry, ok
}

// CategoryByID looks up a single category. The second return is false when
// the id is unknown.
func (d *Dataset) CategoryByID(id string) (models.Category, bool) {
	category, ok := d.categoryByID[id]
	return category, ok
}

// EntriesByIDs resolves ids to entries in the given order, silently dropping
// ids that do not resolve.
func (d *Dataset) EntriesByIDs(ids []string) []models.Entry {
	entries := make([]models.Entry, 0, len(ids))
	for _, id := range ids {
		if entry, ok := d.entryByID[id]; ok {
			entries = append(entries, entry)
		}
	}
	return entries
}
