package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/drafter-edu/analyze-drafter-site/internal/output"
	"github.com/drafter-edu/analyze-drafter-site/internal/progress"
	"github.com/drafter-edu/analyze-drafter-site/internal/service/analysis"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/graph"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
)

func graphCmd() *cli.Command {
	return &cli.Command{
		Name:      "graph",
		Aliases:   []string{"dag"},
		Usage:     "Generate composition and call graphs (Mermaid output)",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "kind",
				Value: "calls",
				Usage: "Graph kind: calls (route call graph) or composition (record graph)",
			},
			&cli.BoolFlag{
				Name:  "metrics",
				Usage: "Include PageRank and degree metrics",
			},
		},
		Action: runGraph,
	}
}

func runGraph(c *cli.Context) error {
	kind := c.String("kind")
	if kind != "calls" && kind != "composition" {
		return fmt.Errorf("invalid --kind %q: want calls or composition", kind)
	}

	svc, err := newService(c)
	if err != nil {
		return err
	}

	files, err := collectFiles(c, svc.Config())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	tracker := progress.NewTracker("Building graph...", len(files))
	results, errs := svc.AnalyzeFiles(files, analysis.Options{OnProgress: tracker.Tick})
	tracker.Finish()
	if len(results) == 0 && errs != nil {
		return errs
	}

	var edges []analysis.EdgeResult
	for _, res := range results {
		if kind == "composition" {
			edges = append(edges, res.Composition...)
		} else {
			edges = append(edges, res.CallGraph...)
		}
	}

	var metrics *graph.Metrics
	if c.Bool("metrics") {
		siteEdges := make([]site.Edge, 0, len(edges))
		for _, e := range edges {
			siteEdges = append(siteEdges, site.Edge{From: e.From, To: e.To})
		}
		metrics = graph.Compute(siteEdges)
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), svc.Config().Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText && formatter.Format() != output.FormatMarkdown {
		if metrics != nil {
			return formatter.Output(struct {
				Edges   []analysis.EdgeResult `json:"edges"`
				Metrics *graph.Metrics        `json:"metrics"`
			}{edges, metrics})
		}
		return formatter.Output(struct {
			Edges []analysis.EdgeResult `json:"edges"`
		}{edges})
	}

	fmt.Fprintln(formatter.Writer(), "```mermaid")
	fmt.Fprintln(formatter.Writer(), "graph TD")
	for _, edge := range edges {
		fmt.Fprintf(formatter.Writer(), "    %s --> %s\n", sanitizeID(edge.From), sanitizeID(edge.To))
	}
	fmt.Fprintln(formatter.Writer(), "```")

	if metrics != nil {
		fmt.Fprintln(formatter.Writer())
		if formatter.Colored() {
			color.Cyan("Graph Metrics:")
		} else {
			fmt.Fprintln(formatter.Writer(), "Graph Metrics:")
		}
		for i, node := range metrics.Nodes {
			if i >= 10 {
				break
			}
			fmt.Fprintf(formatter.Writer(), "  %s: %.4f (in: %d, out: %d)\n",
				node.Name, node.Rank, node.InDegree, node.OutDegree)
		}
		for _, cycle := range metrics.Cycles {
			fmt.Fprintf(formatter.Writer(), "  cycle: %v\n", cycle)
		}
	}

	if errs != nil {
		return errs
	}
	return nil
}
