package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/drafter-edu/analyze-drafter-site/internal/output"
	"github.com/drafter-edu/analyze-drafter-site/internal/progress"
	"github.com/drafter-edu/analyze-drafter-site/internal/service/analysis"
)

func routesCmd() *cli.Command {
	return &cli.Command{
		Name:      "routes",
		Usage:     "List route handlers, their components, and state usage",
		ArgsUsage: "[path...]",
		Action:    runRoutes,
	}
}

func runRoutes(c *cli.Context) error {
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

	tracker := progress.NewTracker("Analyzing routes...", len(files))
	results, errs := svc.AnalyzeFiles(files, analysis.Options{OnProgress: tracker.Tick})
	tracker.Finish()
	if len(results) == 0 && errs != nil {
		return errs
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), svc.Config().Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	totalRoutes := 0
	totalComponents := 0

	for _, res := range results {
		totalRoutes += len(res.Routes)
		for _, rt := range res.Routes {
			componentCount := 0
			for _, n := range rt.Components {
				componentCount += n
			}
			totalComponents += componentCount

			rows = append(rows, []string{
				res.Path,
				rt.Signature,
				summarizeCounts(rt.Components),
				strings.Join(rt.FieldsUsed, ", "),
				strings.Join(rt.Calls, ", "),
			})
		}
	}

	table := output.NewTable(
		"Routes",
		[]string{"File", "Route", "Components", "Fields Used", "Calls"},
		rows,
		[]string{
			fmt.Sprintf("Routes: %d", totalRoutes),
			fmt.Sprintf("Component Calls: %d", totalComponents),
		},
		results,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}
	if errs != nil {
		return errs
	}
	return nil
}

// summarizeCounts renders a component count map as "Button x2, Link x1",
// sorted by name.
func summarizeCounts(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s x%d", name, counts[name]))
	}
	return strings.Join(parts, ", ")
}
