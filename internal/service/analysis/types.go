package analysis

import (
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/structure"
)

// FileResult is the full analysis of one source file, flattened into a
// serializable shape so it can round-trip through the cache and the JSON,
// YAML, and TOON output formats.
type FileResult struct {
	Path            string          `json:"path"`
	Hash            string          `json:"hash"`
	Records         []RecordResult  `json:"records"`
	Routes          []RouteResult   `json:"routes"`
	ComponentTotals map[string]int  `json:"componentTotals,omitempty"`
	Composition     []EdgeResult    `json:"composition,omitempty"`
	CallGraph       []EdgeResult    `json:"callGraph,omitempty"`
	UnresolvedTypes []string        `json:"unresolvedTypes,omitempty"`
	UnusedRecords   []string        `json:"unusedRecords,omitempty"`
	UnusedFields    []string        `json:"unusedFields,omitempty"`
	TotalComplexity float64         `json:"totalComplexity"`
	Sections        []SectionResult `json:"sections"`
	Warnings        []string        `json:"warnings,omitempty"`
}

// RecordResult summarizes one dataclass.
type RecordResult struct {
	Name        string        `json:"name"`
	Fields      []FieldResult `json:"fields"`
	BaseClasses []string      `json:"baseClasses,omitempty"`
	DependsOn   []string      `json:"dependsOn,omitempty"`
	Complexity  float64       `json:"complexity"`
	UsageTotal  int           `json:"usageTotal"`
}

// FieldResult summarizes one dataclass field.
type FieldResult struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	UsageCount int     `json:"usageCount"`
	Complexity float64 `json:"complexity"`
}

// RouteResult summarizes one route handler.
type RouteResult struct {
	Name       string         `json:"name"`
	Signature  string         `json:"signature"`
	Components map[string]int `json:"components,omitempty"`
	FieldsUsed []string       `json:"fieldsUsed,omitempty"`
	Calls      []string       `json:"calls,omitempty"`
}

// EdgeResult is one directed edge of the composition graph or call graph.
type EdgeResult struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SectionResult is the scored body of one top-level function.
type SectionResult struct {
	Name      string         `json:"name"`
	StartLine int            `json:"startLine"`
	EndLine   int            `json:"endLine"`
	Score     float64        `json:"score"`
	Parts     map[string]int `json:"parts,omitempty"`
}

func newFileResult(path, hash string, m *site.Model, sections []structure.Section, diags *structure.Diagnostics) *FileResult {
	r := &FileResult{
		Path:            path,
		Hash:            hash,
		Records:         make([]RecordResult, 0, len(m.Records())),
		Routes:          make([]RouteResult, 0, len(m.Routes())),
		ComponentTotals: m.ComponentTotals(),
		UnresolvedTypes: m.UnresolvedTypes(),
		UnusedRecords:   m.UnusedRecords(),
		UnusedFields:    m.UnusedFields(),
		TotalComplexity: m.TotalComplexity(),
	}

	for _, d := range m.Records() {
		rec := RecordResult{
			Name:        d.Name,
			Fields:      make([]FieldResult, 0, len(d.Fields)),
			BaseClasses: d.BaseClasses,
			DependsOn:   d.Dependencies(),
			Complexity:  m.RecordComplexity(d.Name),
			UsageTotal:  m.RecordUsageTotal(d.Name),
		}
		for _, f := range d.Fields {
			rec.Fields = append(rec.Fields, FieldResult{
				Name:       f.Name,
				Type:       f.Type,
				UsageCount: m.AttributeUsage(d.Name, f.Name),
				Complexity: m.FieldComplexity(f.Type),
			})
		}
		r.Records = append(r.Records, rec)
	}

	for _, rt := range m.Routes() {
		r.Routes = append(r.Routes, RouteResult{
			Name:       rt.Name,
			Signature:  rt.Signature,
			Components: rt.Components,
			FieldsUsed: rt.FieldsUsed(),
			Calls:      rt.CalledNames(),
		})
	}

	for _, e := range m.CompositionEdges() {
		r.Composition = append(r.Composition, EdgeResult{From: e.From, To: e.To})
	}
	for _, e := range m.CallEdges() {
		r.CallGraph = append(r.CallGraph, EdgeResult{From: e.From, To: e.To})
	}

	for _, s := range sections {
		parts := make(map[string]int, len(s.Score.Parts))
		for cat, n := range s.Score.Parts {
			parts[string(cat)] = n
		}
		r.Sections = append(r.Sections, SectionResult{
			Name:      s.Name,
			StartLine: s.StartLine,
			EndLine:   s.EndLine,
			Score:     s.Score.Total,
			Parts:     parts,
		})
	}

	if diags != nil {
		r.Warnings = append(r.Warnings, diags.Warnings...)
	}

	return r
}
