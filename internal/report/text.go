// Package report turns a finished analysis into the shapes people read:
// CSV tables, textual summaries, warning lines, and a standalone HTML
// report. Everything here consumes only the model's query surface.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/drafter-edu/analyze-drafter-site/internal/output"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/structure"
)

// BodyComplexityTable tabulates per-function structural scores as
// Name,Start,End,Total.
func BodyComplexityTable(sections []structure.Section) *output.Table {
	rows := make([][]string, 0, len(sections))
	for _, section := range sections {
		rows = append(rows, []string{
			section.Name,
			strconv.Itoa(section.StartLine),
			strconv.Itoa(section.EndLine),
			strconv.FormatFloat(section.Score.Total, 'f', 3, 64),
		})
	}
	return output.NewTable("", []string{"Name", "Start", "End", "Total"}, rows, nil, sections)
}

// AttributeTable tabulates every declared field with its rendered type,
// recorded access count, and complexity weight.
func AttributeTable(m *site.Model) *output.Table {
	var rows [][]string
	for _, record := range m.Records() {
		for _, field := range record.Fields {
			rows = append(rows, []string{
				record.Name,
				field.Name,
				field.Type,
				strconv.Itoa(m.AttributeUsage(record.Name, field.Name)),
				formatScore(m.FieldComplexity(field.Type)),
			})
		}
	}
	return output.NewTable("", []string{"Dataclass", "Attribute", "Type", "Usage Count", "Complexity"}, rows, nil, nil)
}

// RecordComplexityTable tabulates per-record complexity with a TOTAL
// footer.
func RecordComplexityTable(m *site.Model) *output.Table {
	var rows [][]string
	for _, record := range m.Records() {
		rows = append(rows, []string{record.Name, formatScore(m.RecordComplexity(record.Name))})
	}
	footer := []string{"TOTAL", formatScore(m.TotalComplexity())}
	return output.NewTable("", []string{"Dataclass", "Complexity"}, rows, footer, nil)
}

// Warnings lists unused records and unused fields as WARNING lines. Each
// audit can be toggled off independently.
func Warnings(m *site.Model, warnRecords, warnFields bool) []string {
	var warnings []string
	if warnRecords {
		for _, name := range m.UnusedRecords() {
			warnings = append(warnings, fmt.Sprintf("WARNING: dataclass %s appears unused", name))
		}
	}
	if warnFields {
		for _, pair := range m.UnusedFields() {
			warnings = append(warnings, fmt.Sprintf("WARNING: field %s is never accessed", pair))
		}
	}
	return warnings
}

// DataclassesText renders the record summary block.
func DataclassesText(m *site.Model) string {
	var b strings.Builder
	b.WriteString("Dataclasses:\n")
	for _, record := range m.Records() {
		b.WriteString(record.Name)
		b.WriteString("\n")
		for _, field := range record.Fields {
			fmt.Fprintf(&b, "  %s\n", field.Name)
		}
	}
	return b.String()
}

// RoutesText renders the route summary block: signature, component counts,
// fields used, and called names.
func RoutesText(m *site.Model) string {
	var b strings.Builder
	b.WriteString("Routes:\n")
	for _, route := range m.Routes() {
		b.WriteString(route.Signature)
		b.WriteString("\n")
		for _, component := range sortedCounts(route.Components) {
			fmt.Fprintf(&b, "  %s: %d\n", component.name, component.count)
		}
		for _, field := range route.FieldsUsed() {
			fmt.Fprintf(&b, "  %s used\n", field)
		}
		for _, called := range route.CalledNames() {
			fmt.Fprintf(&b, "  calls %s\n", called)
		}
	}
	return b.String()
}

// formatScore renders complexity scores with one decimal so 1 reads as 1.0
// and 0.1 stays 0.1.
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

type namedCount struct {
	name  string
	count int
}

func sortedCounts(counts map[string]int) []namedCount {
	out := make([]namedCount, 0, len(counts))
	for _, name := range sortedNames(counts) {
		out = append(out, namedCount{name: name, count: counts[name]})
	}
	return out
}

func sortedNames(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
