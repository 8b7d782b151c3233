package mcpserver

import (
	"context"
	"encoding/json"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/drafter-edu/analyze-drafter-site/internal/scanner"
	"github.com/drafter-edu/analyze-drafter-site/internal/service/analysis"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/graph"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
	"github.com/drafter-edu/analyze-drafter-site/pkg/config"
)

// AnalyzeInput is the base input for all analyze tools.
type AnalyzeInput struct {
	Paths  []string `json:"paths,omitempty" jsonschema:"Files or directories to analyze. Defaults to current directory if empty."`
	Format string   `json:"format,omitempty" jsonschema:"Output format: toon (default) or json."`
}

// GraphInput adds graph-specific options.
type GraphInput struct {
	AnalyzeInput
	IncludeMetrics bool `json:"include_metrics,omitempty" jsonschema:"Include PageRank and degree metrics for the call graph."`
}

func collectFiles(input AnalyzeInput) ([]string, error) {
	paths := input.Paths
	if len(paths) == 0 {
		paths = []string{"."}
	}

	s := scanner.NewScanner(config.LoadOrDefault())
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			found, err := s.ScanDir(path)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func formatOutput(data any, format string) (string, error) {
	if format == "json" {
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func toolResult(data any, format string) (*mcp.CallToolResult, any, error) {
	text, err := formatOutput(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func analyzeAll(input AnalyzeInput) ([]*analysis.FileResult, *mcp.CallToolResult, any, error) {
	files, err := collectFiles(input)
	if err != nil {
		r, a, e := toolError(err.Error())
		return nil, r, a, e
	}
	if len(files) == 0 {
		r, a, e := toolError("no source files found")
		return nil, r, a, e
	}

	svc := analysis.New()
	results, errs := svc.AnalyzeFiles(files, analysis.Options{})
	if len(results) == 0 && errs != nil {
		r, a, e := toolError(errs.Error())
		return nil, r, a, e
	}
	return results, nil, nil, nil
}

func handleAnalyzeSite(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	results, r, a, e := analyzeAll(input)
	if results == nil {
		return r, a, e
	}
	return toolResult(results, input.Format)
}

func handleListRecords(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	results, r, a, e := analyzeAll(input)
	if results == nil {
		return r, a, e
	}

	type fileRecords struct {
		Path    string                  `json:"path"`
		Records []analysis.RecordResult `json:"records"`
	}
	out := make([]fileRecords, 0, len(results))
	for _, res := range results {
		out = append(out, fileRecords{Path: res.Path, Records: res.Records})
	}
	return toolResult(out, input.Format)
}

func handleListRoutes(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	results, r, a, e := analyzeAll(input)
	if results == nil {
		return r, a, e
	}

	type fileRoutes struct {
		Path   string                 `json:"path"`
		Routes []analysis.RouteResult `json:"routes"`
	}
	out := make([]fileRoutes, 0, len(results))
	for _, res := range results {
		out = append(out, fileRoutes{Path: res.Path, Routes: res.Routes})
	}
	return toolResult(out, input.Format)
}

func handleAnalyzeGraph(ctx context.Context, req *mcp.CallToolRequest, input GraphInput) (*mcp.CallToolResult, any, error) {
	results, r, a, e := analyzeAll(input.AnalyzeInput)
	if results == nil {
		return r, a, e
	}

	type fileGraph struct {
		Path        string                `json:"path"`
		Composition []analysis.EdgeResult `json:"composition,omitempty"`
		CallGraph   []analysis.EdgeResult `json:"callGraph,omitempty"`
		Metrics     *graph.Metrics        `json:"metrics,omitempty"`
	}
	out := make([]fileGraph, 0, len(results))
	for _, res := range results {
		fg := fileGraph{
			Path:        res.Path,
			Composition: res.Composition,
			CallGraph:   res.CallGraph,
		}
		if input.IncludeMetrics {
			edges := make([]site.Edge, 0, len(res.CallGraph))
			for _, e := range res.CallGraph {
				edges = append(edges, site.Edge{From: e.From, To: e.To})
			}
			fg.Metrics = graph.Compute(edges)
		}
		out = append(out, fg)
	}
	return toolResult(out, input.Format)
}

func handleAnalyzeComplexity(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	results, r, a, e := analyzeAll(input)
	if results == nil {
		return r, a, e
	}

	type recordScore struct {
		Name       string  `json:"name"`
		Complexity float64 `json:"complexity"`
	}
	type fileComplexity struct {
		Path     string                   `json:"path"`
		Records  []recordScore            `json:"records"`
		Sections []analysis.SectionResult `json:"sections"`
		Total    float64                  `json:"total"`
	}
	out := make([]fileComplexity, 0, len(results))
	for _, res := range results {
		fc := fileComplexity{
			Path:     res.Path,
			Sections: res.Sections,
			Total:    res.TotalComplexity,
		}
		for _, rec := range res.Records {
			fc.Records = append(fc.Records, recordScore{Name: rec.Name, Complexity: rec.Complexity})
		}
		out = append(out, fc)
	}
	return toolResult(out, input.Format)
}
