package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/drafter-edu/analyze-drafter-site/internal/output"
	"github.com/drafter-edu/analyze-drafter-site/internal/progress"
	"github.com/drafter-edu/analyze-drafter-site/internal/service/analysis"
)

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Score dataclass state and route body complexity",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "records-only",
				Usage: "Show only record complexity, omit function body scores",
			},
		},
		Action: runComplexity,
	}
}

func runComplexity(c *cli.Context) error {
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

	tracker := progress.NewTracker("Analyzing complexity...", len(files))
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

	var recordRows [][]string
	total := 0.0
	for _, res := range results {
		total += res.TotalComplexity
		for _, rec := range res.Records {
			score := fmt.Sprintf("%.1f", rec.Complexity)
			if formatter.Colored() && rec.Complexity >= threshold {
				score = color.RedString("%.1f", rec.Complexity)
			}
			recordRows = append(recordRows, []string{res.Path, rec.Name, score})
		}
	}

	recordTable := output.NewTable(
		"Record Complexity",
		[]string{"File", "Dataclass", "Complexity"},
		recordRows,
		[]string{fmt.Sprintf("Total: %.1f", total)},
		results,
	)
	if err := formatter.Output(recordTable); err != nil {
		return err
	}

	if c.Bool("records-only") || formatter.Format() != output.FormatText {
		if errs != nil {
			return errs
		}
		return nil
	}

	var sectionRows [][]string
	for _, res := range results {
		for _, s := range res.Sections {
			sectionRows = append(sectionRows, []string{
				res.Path,
				s.Name,
				strconv.Itoa(s.StartLine),
				strconv.Itoa(s.EndLine),
				fmt.Sprintf("%.3f", s.Score),
			})
		}
	}

	fmt.Fprintln(formatter.Writer())
	sectionTable := output.NewTable(
		"Function Body Complexity",
		[]string{"File", "Function", "Start", "End", "Score"},
		sectionRows,
		nil,
		results,
	)
	if err := formatter.Output(sectionTable); err != nil {
		return err
	}
	if errs != nil {
		return errs
	}
	return nil
}
