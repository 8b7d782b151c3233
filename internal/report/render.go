package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/structure"
	"github.com/drafter-edu/analyze-drafter-site/pkg/diagram"
)

//go:embed template.html
var templateFS embed.FS

// Metadata describes one analyzed file.
type Metadata struct {
	Path        string
	SourceHash  string
	GeneratedAt time.Time
	Version     string
}

// RecordRow is one dataclass in the HTML report.
type RecordRow struct {
	Name         string
	Fields       []FieldRow
	Dependencies []string
	Complexity   string
	Unused       bool
}

// FieldRow is one field in the HTML report.
type FieldRow struct {
	Name       string
	Type       string
	UsageCount int
	Complexity string
	Unused     bool
}

// RouteRow is one route in the HTML report.
type RouteRow struct {
	Name       string
	Signature  string
	Components []string
	FieldsUsed []string
	Calls      []string
}

// SectionRow is one scored function body in the HTML report.
type SectionRow struct {
	Name      string
	StartLine int
	EndLine   int
	Total     string
}

// RenderData is everything the template needs.
type RenderData struct {
	Metadata        Metadata
	Records         []RecordRow
	Routes          []RouteRow
	Sections        []SectionRow
	Warnings        []string
	TotalComplexity string
	ClassDiagram    string
	RouteDiagram    string
}

// Renderer generates the standalone HTML report.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded template.
func NewRenderer() (*Renderer, error) {
	content, err := templateFS.ReadFile("template.html")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded template: %w", err)
	}
	tmpl, err := template.New("report").Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the HTML report for one analyzed file.
func (r *Renderer) Render(w io.Writer, meta Metadata, m *site.Model, sections []structure.Section) error {
	return r.tmpl.Execute(w, buildRenderData(meta, m, sections))
}

// RenderToFile writes the HTML report to a file.
func (r *Renderer) RenderToFile(path string, meta Metadata, m *site.Model, sections []structure.Section) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()
	return r.Render(f, meta, m, sections)
}

func buildRenderData(meta Metadata, m *site.Model, sections []structure.Section) RenderData {
	unusedRecords := make(map[string]bool)
	for _, name := range m.UnusedRecords() {
		unusedRecords[name] = true
	}

	var records []RecordRow
	for _, record := range m.Records() {
		row := RecordRow{
			Name:         record.Name,
			Dependencies: record.Dependencies(),
			Complexity:   formatScore(m.RecordComplexity(record.Name)),
			Unused:       unusedRecords[record.Name],
		}
		for _, field := range record.Fields {
			count := m.AttributeUsage(record.Name, field.Name)
			row.Fields = append(row.Fields, FieldRow{
				Name:       field.Name,
				Type:       field.Type,
				UsageCount: count,
				Complexity: formatScore(m.FieldComplexity(field.Type)),
				Unused:     count == 0,
			})
		}
		records = append(records, row)
	}

	var routes []RouteRow
	for _, route := range m.Routes() {
		row := RouteRow{
			Name:       route.Name,
			Signature:  route.Signature,
			FieldsUsed: route.FieldsUsed(),
			Calls:      route.CalledNames(),
		}
		for _, component := range sortedCounts(route.Components) {
			row.Components = append(row.Components, fmt.Sprintf("%s x%d", component.name, component.count))
		}
		routes = append(routes, row)
	}

	var sectionRows []SectionRow
	for _, section := range sections {
		sectionRows = append(sectionRows, SectionRow{
			Name:      section.Name,
			StartLine: section.StartLine,
			EndLine:   section.EndLine,
			Total:     fmt.Sprintf("%.3f", section.Score.Total),
		})
	}

	return RenderData{
		Metadata:        meta,
		Records:         records,
		Routes:          routes,
		Sections:        sectionRows,
		Warnings:        Warnings(m, true, true),
		TotalComplexity: formatScore(m.TotalComplexity()),
		ClassDiagram:    diagram.ClassDiagram(m),
		RouteDiagram:    diagram.RouteDiagram(m),
	}
}
