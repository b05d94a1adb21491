package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const validSeedYAML = `collection: parameter_standards
key: parameter_name
documents:
  - parameter_name: ph
    unit: pH units
    thresholds:
      optimal:
        min: 6.5
        max: 8.5
  - parameter_name: nitrate
    unit: mg/L
`

func TestParseSeedFile(t *testing.T) {
	if !testing.Short() {
		t.Skip("skipping unit test in non-short mode")
	}

	t.Run("valid keyed file", func(t *testing.T) {
		file, err := ParseSeedFile([]byte(validSeedYAML))
		if err != nil {
			t.Fatalf("ParseSeedFile() error = %v", err)
		}

		if file.Collection != "parameter_standards" {
			t.Errorf("Collection = %q, want %q", file.Collection, "parameter_standards")
		}

		if file.Key != "parameter_name" {
			t.Errorf("Key = %q, want %q", file.Key, "parameter_name")
		}

		if len(file.Documents) != 2 {
			t.Fatalf("len(Documents) = %d, want 2", len(file.Documents))
		}

		if file.Documents[1]["parameter_name"] != "nitrate" {
			t.Errorf("Documents[1][parameter_name] = %v, want nitrate", file.Documents[1]["parameter_name"])
		}
	})

	t.Run("unkeyed file", func(t *testing.T) {
		_, err := ParseSeedFile([]byte("collection: compliance_rules\ndocuments:\n  - standard: WHO\n"))
		if err != nil {
			t.Errorf("ParseSeedFile() error = %v, want nil", err)
		}
	})

	t.Run("missing collection", func(t *testing.T) {
		_, err := ParseSeedFile([]byte("documents:\n  - a: 1\n"))
		if !errors.Is(err, ErrSeedCollectionMissing) {
			t.Errorf("ParseSeedFile() error = %v, want ErrSeedCollectionMissing", err)
		}
	})

	t.Run("no documents", func(t *testing.T) {
		_, err := ParseSeedFile([]byte("collection: scoring_config\n"))
		if !errors.Is(err, ErrSeedNoDocuments) {
			t.Errorf("ParseSeedFile() error = %v, want ErrSeedNoDocuments", err)
		}
	})

	t.Run("document missing the declared key", func(t *testing.T) {
		_, err := ParseSeedFile([]byte("collection: parameter_standards\nkey: parameter_name\ndocuments:\n  - unit: mg/L\n"))
		if !errors.Is(err, ErrSeedKeyMissing) {
			t.Errorf("ParseSeedFile() error = %v, want ErrSeedKeyMissing", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		if _, err := ParseSeedFile([]byte("collection: [unterminated")); err == nil {
			t.Error("ParseSeedFile() error = nil, want parse error")
		}
	})
}

func TestLoadSeedDir(t *testing.T) {
	if !testing.Short() {
		t.Skip("skipping unit test in non-short mode")
	}

	t.Run("loads yaml files in name order", func(t *testing.T) {
		dir := t.TempDir()

		writeFile(t, dir, "20-formulas.yaml", "collection: calculation_formulas\ndocuments:\n  - formula_name: lsi\n")
		writeFile(t, dir, "10-standards.yml", validSeedYAML)
		writeFile(t, dir, "README.md", "not a seed file")

		files, err := LoadSeedDir(dir)
		if err != nil {
			t.Fatalf("LoadSeedDir() error = %v", err)
		}

		if len(files) != 2 {
			t.Fatalf("len(files) = %d, want 2", len(files))
		}

		if files[0].Collection != "parameter_standards" {
			t.Errorf("files[0].Collection = %q, want parameter_standards first", files[0].Collection)
		}

		if files[1].Collection != "calculation_formulas" {
			t.Errorf("files[1].Collection = %q, want calculation_formulas second", files[1].Collection)
		}
	})

	t.Run("names the offending file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "bad.yaml", "documents:\n  - a: 1\n")

		_, err := LoadSeedDir(dir)
		if !errors.Is(err, ErrSeedCollectionMissing) {
			t.Fatalf("LoadSeedDir() error = %v, want ErrSeedCollectionMissing", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		if _, err := LoadSeedDir(filepath.Join(t.TempDir(), "absent")); err == nil {
			t.Error("LoadSeedDir() error = nil, want read error")
		}
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}
