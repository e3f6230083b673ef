package reflection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// Load reads a project dump from path. The format follows the extension:
// .json, .yaml or .yml, each optionally followed by .zst for zstd
// compression.
func Load(path string) (*Project, error) {
	dump, err := LoadDump(path)
	if err != nil {
		return nil, err
	}
	project, err := New(dump)
	if err != nil {
		return nil, fmt.Errorf("building project from %s: %w", path, err)
	}
	return project, nil
}

// LoadDump reads and decodes a dump without building a Project.
func LoadDump(path string) (*Dump, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dump: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if strings.HasSuffix(name, ".zst") {
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
		name = strings.TrimSuffix(name, ".zst")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dump %s: %w", path, err)
	}
	return Decode(data, filepath.Ext(name))
}

// Decode parses dump bytes; ext selects YAML (".yaml", ".yml") or JSON.
func Decode(data []byte, ext string) (*Dump, error) {
	var dump Dump
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&dump); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decoding YAML dump: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &dump); err != nil {
			return nil, fmt.Errorf("decoding JSON dump: %w", err)
		}
	}
	return &dump, nil
}

// Save writes dump to path as zstd-compressed JSON.
func Save(dump *Dump, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating dump dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dump file: %w", err)
	}
	defer f.Close()

	w, err := zstd.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if err := json.NewEncoder(w).Encode(dump); err != nil {
		w.Close()
		return fmt.Errorf("writing compressed dump: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}
	return nil
}
