package cmd

import (
	"github.com/jcdickinson/seedoc/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run as MCP server over stdio",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := openWorkspace()
		if err != nil {
			return err
		}
		defer w.Close()

		return mcp.NewServer(w.project, w.rewriter, w.batch).Run()
	},
}
