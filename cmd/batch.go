package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/jcdickinson/seedoc/internal/batch"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Render every description in the project",
	Long:  `Render all class and method descriptions concurrently. Output is JSON, or YAML when --out ends in .yaml or .yml.`,
	Example: `  seedoc batch --out site/descriptions.json
  seedoc --project reflection.json batch`,
	Run: runBatch,
}

var batchOut string

func init() {
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "output file (default stdout)")
}

func runBatch(cmd *cobra.Command, args []string) {
	w, err := openWorkspace()
	if err != nil {
		slog.Error("failed to open project", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := w.batch.RenderProject(ctx, w.project)
	if err != nil {
		slog.Error("batch render failed", "error", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if batchOut != "" {
		if err := os.MkdirAll(filepath.Dir(batchOut), 0755); err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		f, err := os.Create(batchOut)
		if err != nil {
			slog.Error("failed to create output file", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := writeResults(out, results, batchOut); err != nil {
		slog.Error("failed to write results", "error", err)
		os.Exit(1)
	}

	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}
	fmt.Fprintf(os.Stderr, "rendered %d descriptions (%d from cache)\n", len(results), cached)
}

// writeResults encodes results keyed by Class or Class::method.
func writeResults(out io.Writer, results []batch.Result, name string) error {
	byKey := make(map[string]string, len(results))
	for _, r := range results {
		byKey[r.Key] = r.HTML
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(byKey); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(byKey)
	}
}
