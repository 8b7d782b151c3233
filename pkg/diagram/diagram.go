// Package diagram renders Mermaid diagrams from a finished site model. It
// consumes only the model's read-only query surface, so rendering is
// repeatable and never mutates the analysis.
package diagram

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
)

// ClassDiagram renders the record model as a Mermaid classDiagram: one
// class block per dataclass with rendered field types, and an arrow for
// every composition edge between known records. Dangling dependencies are
// never drawn.
func ClassDiagram(m *site.Model) string {
	var b strings.Builder
	b.WriteString("classDiagram\n")

	for _, record := range m.Records() {
		fmt.Fprintf(&b, "    class %s {\n", record.Name)
		for _, field := range record.Fields {
			fmt.Fprintf(&b, "        %s %s\n", field.Type, field.Name)
		}
		b.WriteString("    }\n")
		for _, dep := range record.Dependencies() {
			if _, known := m.Record(dep); known {
				fmt.Fprintf(&b, "    %s --> %s\n", record.Name, dep)
			}
		}
	}

	return b.String()
}

// RouteDiagram renders the call graph as a Mermaid graph TD. Edges are
// unrestricted: a target may name a route, a helper, or something the
// analysis never saw declared.
func RouteDiagram(m *site.Model) string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	for _, edge := range m.CallEdges() {
		fmt.Fprintf(&b, "    %s --> %s\n", nodeID(edge.From), nodeID(edge.To))
	}

	return b.String()
}

// nodeID returns a Mermaid-safe identifier. Plain Python identifiers pass
// through untouched; anything else (string link targets may contain spaces
// or slashes) gets a stable hashed id with the original text as its label.
func nodeID(name string) string {
	if isIdentifier(name) {
		return name
	}
	return fmt.Sprintf("n%x[\"%s\"]", xxhash.Sum64String(name), strings.ReplaceAll(name, `"`, "'"))
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_',
			r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
