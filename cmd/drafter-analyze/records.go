package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/drafter-edu/analyze-drafter-site/internal/output"
	"github.com/drafter-edu/analyze-drafter-site/internal/progress"
	"github.com/drafter-edu/analyze-drafter-site/internal/service/analysis"
)

func recordsCmd() *cli.Command {
	return &cli.Command{
		Name:      "records",
		Usage:     "List dataclass records and their state complexity",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "fields",
				Usage: "Show one row per field instead of per record",
			},
		},
		Action: runRecords,
	}
}

func runRecords(c *cli.Context) error {
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

	tracker := progress.NewTracker("Analyzing records...", len(files))
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

	threshold := svc.Config().Analysis.ComplexityThreshold
	byField := c.Bool("fields")

	var rows [][]string
	var headers []string
	totalRecords := 0
	totalComplexity := 0.0

	for _, res := range results {
		totalRecords += len(res.Records)
		totalComplexity += res.TotalComplexity
		for _, rec := range res.Records {
			if byField {
				for _, f := range rec.Fields {
					rows = append(rows, []string{
						res.Path,
						rec.Name,
						f.Name,
						f.Type,
						fmt.Sprintf("%d", f.UsageCount),
						fmt.Sprintf("%.1f", f.Complexity),
					})
				}
				continue
			}

			score := fmt.Sprintf("%.1f", rec.Complexity)
			if formatter.Colored() && rec.Complexity >= threshold {
				score = color.RedString("%.1f", rec.Complexity)
			}
			rows = append(rows, []string{
				res.Path,
				rec.Name,
				fmt.Sprintf("%d", len(rec.Fields)),
				strings.Join(rec.DependsOn, ", "),
				fmt.Sprintf("%d", rec.UsageTotal),
				score,
			})
		}
	}

	if byField {
		headers = []string{"File", "Dataclass", "Field", "Type", "Usage", "Complexity"}
	} else {
		headers = []string{"File", "Dataclass", "Fields", "Depends On", "Usage", "Complexity"}
	}

	table := output.NewTable(
		"Records",
		headers,
		rows,
		[]string{
			fmt.Sprintf("Records: %d", totalRecords),
			fmt.Sprintf("Total Complexity: %.1f", totalComplexity),
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
