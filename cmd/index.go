package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/jcdickinson/seedoc/internal/config"
	"github.com/jcdickinson/seedoc/internal/db"
	"github.com/jcdickinson/seedoc/internal/reflection"
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index <dump>",
	Short: "Import a reflection dump into the project index",
	Long:  `Replace the indexed project with the classes in a reflection dump. Dumps are JSON or YAML, optionally zstd-compressed (.zst). Cached renders are discarded.`,
	Example: `  seedoc index build/reflection.json
  seedoc index build/reflection.yaml.zst`,
	Args: cobra.ExactArgs(1),
	Run:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) {
	dump, err := reflection.LoadDump(args[0])
	if err != nil {
		log.Fatalf("failed to read dump: %v", err)
	}

	source, err := filepath.Abs(args[0])
	if err != nil {
		source = args[0]
	}

	database, err := db.New(config.DBPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	imp, err := database.ImportDump(source, dump)
	if err != nil {
		log.Fatalf("failed to import dump: %v", err)
	}
	fmt.Printf("indexed %d classes from %s\n", imp.ClassCount, imp.Source)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the indexed project",
	Run:   runStatus,
}

var statusJSON bool

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) {
	database, err := db.New(config.DBPath())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	imp, err := database.LastImport()
	if err != nil {
		log.Fatalf("status failed: %v", err)
	}
	cached, err := database.CountRenderCache()
	if err != nil {
		log.Fatalf("status failed: %v", err)
	}

	if statusJSON {
		out, _ := json.MarshalIndent(struct {
			Import        *db.Import `json:"import"`
			CachedRenders int        `json:"cached_renders"`
		}{imp, cached}, "", "  ")
		fmt.Println(string(out))
		return
	}

	if imp == nil {
		fmt.Println("no project indexed")
		return
	}
	fmt.Printf("  %s\n", imp.Source)
	fmt.Printf("  %d classes, imported %s\n", imp.ClassCount, imp.ImportedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  %d cached renders\n", cached)
}

var exportCmd = &cobra.Command{
	Use:   "export <file.json.zst>",
	Short: "Write the indexed project out as a compressed dump",
	Args:  cobra.ExactArgs(1),
	Run:   runExport,
}

func runExport(cmd *cobra.Command, args []string) {
	w, err := openWorkspace()
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer w.Close()

	if err := reflection.Save(w.project.Dump(), args[0]); err != nil {
		log.Fatalf("export failed: %v", err)
	}
	fmt.Printf("wrote %d classes to %s\n", len(w.project.Classes()), args[0])
}
