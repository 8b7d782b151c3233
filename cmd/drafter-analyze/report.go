package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/drafter-edu/analyze-drafter-site/internal/cache"
	"github.com/drafter-edu/analyze-drafter-site/internal/report"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/structure"
)

func reportCmd() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Generate a standalone HTML report per file",
		ArgsUsage: "[path...]",
		Action:    runReport,
	}
}

func runReport(c *cli.Context) error {
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

	outputPath := c.String("output")
	if outputPath != "" && len(files) > 1 {
		return fmt.Errorf("--output needs a single input file, got %d", len(files))
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}

	siteAnalyzer := site.New()
	defer siteAnalyzer.Close()
	structAnalyzer := structure.New()
	defer structAnalyzer.Close()

	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		model, err := siteAnalyzer.Analyze(source)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		sections, _, err := structAnalyzer.Analyze(source)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		target := outputPath
		if target == "" {
			target = reportPath(path)
		}

		meta := report.Metadata{
			Path:        path,
			SourceHash:  cache.HashBytes(source),
			GeneratedAt: time.Now().UTC(),
			Version:     version,
		}
		if err := renderer.RenderToFile(target, meta, model, sections); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		color.Green("Report written to %s", target)
	}
	return nil
}

// reportPath derives the report file name from the source path.
func reportPath(source string) string {
	base := strings.TrimSuffix(source, ".py")
	return base + ".report.html"
}
