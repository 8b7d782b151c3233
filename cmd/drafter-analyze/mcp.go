package main

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/drafter-edu/analyze-drafter-site/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes the Drafter
analyzers as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "drafter-analyze": {
        "command": "drafter-analyze",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_site        Full site analysis
  - list_records        Dataclass records with field detail
  - list_routes         Route handlers and components
  - analyze_graph       Composition and call graphs
  - analyze_complexity  Record and body complexity scores`,
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	server := mcpserver.NewServer(version)
	return server.Run(context.Background())
}
