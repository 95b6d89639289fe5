// Package mcp exposes the retrieval tools to external AI agents over the
// Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/grocer/internal/tools"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes product search tools.
type Server struct {
	registry *tools.Registry
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server over the given tool registry.
func NewServer(registry *tools.Registry) *Server {
	s := &Server{registry: registry}

	s.mcp = server.NewMCPServer(
		"grocer",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP
// server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchProductsTool, s.handleSearchProducts)
	s.mcp.AddTool(productsByCategoryTool, s.handleProductsByCategory)
	s.mcp.AddTool(recipeSuggestionsTool, s.handleRecipeSuggestions)
	s.mcp.AddTool(athleteProductsTool, s.handleAthleteProducts)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
