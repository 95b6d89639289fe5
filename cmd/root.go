package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "grocer",
	Short: "AI-powered grocery store assistant with semantic product search",
	Long: `Grocer loads a store's product catalog, builds a semantic vector index
over it, and answers shopping questions through an AI assistant that
searches the catalog with retrieval tools. Conversations keep their
context per thread, on the terminal, over the web, or via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".grocer.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
