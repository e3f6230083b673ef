package cmd

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	debug       bool
	projectPath string
)

var rootCmd = &cobra.Command{
	Use:   "seedoc",
	Short: "Render PHP docblock descriptions with @see links to HTML",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "verbose log output")
	rootCmd.PersistentFlags().StringVar(&projectPath, "project", "", "reflection dump to use instead of the indexed project")

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(cssCmd)
	rootCmd.AddCommand(clearCacheCmd)
	rootCmd.AddCommand(mcpCmd)
}
