package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jcdickinson/seedoc/internal/config"
	"github.com/jcdickinson/seedoc/internal/db"
	"github.com/jcdickinson/seedoc/internal/highlight"
	"github.com/spf13/cobra"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Discard cached renders",
	Run:   runClearCache,
}

func runClearCache(cmd *cobra.Command, args []string) {
	database, err := db.New(config.DBPath())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	n, err := database.CountRenderCache()
	if err != nil {
		slog.Error("failed to count cache", "error", err)
		os.Exit(1)
	}
	if err := database.ClearRenderCache(); err != nil {
		slog.Error("failed to clear cache", "error", err)
		os.Exit(1)
	}
	if err := os.RemoveAll(config.CASDir()); err != nil {
		slog.Error("failed to remove cache blobs", "error", err)
		os.Exit(1)
	}
	fmt.Printf("cleared %d cached renders\n", n)
}

var cssCmd = &cobra.Command{
	Use:   "css",
	Short: "Print the stylesheet for highlighted code blocks",
	Run:   runCSS,
}

func runCSS(cmd *cobra.Command, args []string) {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	h := highlight.New(cfg.Markdown.CodeLanguage, true, cfg.Markdown.HighlightStyle)
	if err := h.WriteCSS(os.Stdout); err != nil {
		slog.Error("failed to write css", "error", err)
		os.Exit(1)
	}
}
