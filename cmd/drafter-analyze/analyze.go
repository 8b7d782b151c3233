package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/drafter-edu/analyze-drafter-site/internal/output"
	"github.com/drafter-edu/analyze-drafter-site/internal/report"
	"github.com/drafter-edu/analyze-drafter-site/internal/service/analysis"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/structure"
	"github.com/drafter-edu/analyze-drafter-site/pkg/config"
	"github.com/drafter-edu/analyze-drafter-site/pkg/diagram"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Run the full site analysis",
		ArgsUsage: "[path...]",
		Description: `Analyzes each Drafter source file and prints the complete report:
complexity and attribute-usage tables, unused-state warnings, dataclass and
route dumps, and Mermaid diagram source.`,
		Action: runAnalyze,
	}
}

const sectionSeparator = 80

func runAnalyze(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	files, err := collectFiles(c, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() != output.FormatText {
		svc, err := newService(c)
		if err != nil {
			return err
		}
		results, errs := svc.AnalyzeFiles(files, analysis.Options{})
		if len(results) == 0 && errs != nil {
			return errs
		}
		if err := formatter.Output(results); err != nil {
			return err
		}
		if errs != nil {
			return errs
		}
		return nil
	}

	siteAnalyzer := site.New()
	defer siteAnalyzer.Close()
	structAnalyzer := structure.New()
	defer structAnalyzer.Close()

	for i, path := range files {
		if i > 0 {
			fmt.Fprintln(formatter.Writer())
		}
		if len(files) > 1 {
			fmt.Fprintf(formatter.Writer(), "%s\n", path)
		}
		if err := analyzeOne(formatter.Writer(), siteAnalyzer, structAnalyzer, cfg, path); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// analyzeOne prints the full text report for one file: three CSV sections
// separated by dash rules, warnings, the dataclass and route dumps, and the
// two Mermaid diagrams.
func analyzeOne(w io.Writer, siteAnalyzer *site.Analyzer, structAnalyzer *structure.Analyzer, cfg *config.Config, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	model, err := siteAnalyzer.Analyze(source)
	if err != nil {
		return err
	}

	sections, diags, err := structAnalyzer.Analyze(source)
	if err != nil {
		return err
	}

	rule := strings.Repeat("-", sectionSeparator)

	if err := report.BodyComplexityTable(sections).RenderCSV(w); err != nil {
		return err
	}
	fmt.Fprintln(w, rule)
	if err := report.AttributeTable(model).RenderCSV(w); err != nil {
		return err
	}
	fmt.Fprintln(w, rule)
	if err := report.RecordComplexityTable(model).RenderCSV(w); err != nil {
		return err
	}

	warnings := append(
		report.Warnings(model, cfg.Analysis.WarnUnusedRecords, cfg.Analysis.WarnUnusedFields),
		diags.Warnings...)
	if len(warnings) > 0 {
		fmt.Fprintln(w)
		for _, warning := range warnings {
			fmt.Fprintln(w, warning)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, report.DataclassesText(model))
	fmt.Fprintln(w)
	fmt.Fprint(w, report.RoutesText(model))
	fmt.Fprintln(w)
	fmt.Fprint(w, diagram.ClassDiagram(model))
	fmt.Fprintln(w)
	fmt.Fprint(w, diagram.RouteDiagram(model))

	return nil
}
