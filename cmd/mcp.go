package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ziadkadry99/grocer/internal/mcp"
	"github.com/ziadkadry99/grocer/internal/tools"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing the
product retrieval tools to external AI agents. Stdout carries the
protocol; all diagnostics go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// Progress output would corrupt the stdio protocol, so the index
		// build runs silently.
		cat, idx, err := openIndex(context.Background(), cfg, false, true)
		if err != nil {
			return err
		}

		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "grocer MCP server started on stdio (products=%d, indexed=%d)\n",
			cat.Len(), idx.Count())

		srv := mcpserver.NewServer(tools.NewRegistry(cat, idx))
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
