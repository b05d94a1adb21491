package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors for seed file validation.
var (
	ErrSeedCollectionMissing = errors.New("seed file must name a collection")
	ErrSeedNoDocuments       = errors.New("seed file contains no documents")
	ErrSeedKeyMissing        = errors.New("document is missing the declared key field")
)

// SeedFile is one YAML seed file: a target collection, an optional natural
// key, and the documents to load. Keyed documents are upserted so re-running
// the seeder converges instead of duplicating; unkeyed documents are inserted.
type SeedFile struct {
	Collection string           `yaml:"collection"`
	Key        string           `yaml:"key,omitempty"`
	Documents  []map[string]any `yaml:"documents"`
}

// Validate checks the structural requirements of a parsed seed file.
func (f *SeedFile) Validate() error {
	if strings.TrimSpace(f.Collection) == "" {
		return ErrSeedCollectionMissing
	}

	if len(f.Documents) == 0 {
		return ErrSeedNoDocuments
	}

	if f.Key != "" {
		for i, doc := range f.Documents {
			value, ok := doc[f.Key].(string)
			if !ok || value == "" {
				return fmt.Errorf("%w: document %d lacks %q", ErrSeedKeyMissing, i, f.Key)
			}
		}
	}

	return nil
}

// ParseSeedFile parses a single YAML seed file.
func ParseSeedFile(data []byte) (*SeedFile, error) {
	var file SeedFile

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	if err := file.Validate(); err != nil {
		return nil, err
	}

	return &file, nil
}

// LoadSeedDir reads every .yaml/.yml file in dir, sorted by name so seeding
// order is deterministic across runs.
func LoadSeedDir(dir string) ([]*SeedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed directory: %w", err)
	}

	var names []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}

	sort.Strings(names)

	files := make([]*SeedFile, 0, len(names))

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file %s: %w", name, err)
		}

		file, err := ParseSeedFile(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		files = append(files, file)
	}

	return files, nil
}
