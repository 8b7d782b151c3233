// Package mcpserver exposes the analyzer over the Model Context Protocol
// so editor agents can inspect Drafter sites without shelling out.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers all analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "drafter-analyze",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_site",
		Description: describeSite(),
	}, handleAnalyzeSite)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_records",
		Description: describeRecords(),
	}, handleListRecords)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_routes",
		Description: describeRoutes(),
	}, handleListRoutes)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_graph",
		Description: describeGraph(),
	}, handleAnalyzeGraph)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_complexity",
		Description: describeComplexity(),
	}, handleAnalyzeComplexity)
}
