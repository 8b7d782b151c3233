// Package structure scores route and helper function bodies by syntax-tree
// shape. Each top-level function becomes a section whose node kinds are
// bucketed into severity categories and summed into a weighted total, a
// cheap signal for bodies that deserve a closer look.
package structure

import (
	"fmt"
	"strings"

	"github.com/drafter-edu/analyze-drafter-site/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Score is the per-category node tally of one section plus the weighted
// total at 1/1000 scale.
type Score struct {
	Total float64          `json:"total"`
	Parts map[Category]int `json:"parts"`
}

// Section is the scored body of one top-level function, keyed by name and
// source line span.
type Section struct {
	Name      string `json:"name"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Code      string `json:"code"`
	Score     Score  `json:"score"`
}

// Analyzer scores function bodies. Reusable across calls, not safe for
// concurrent use.
type Analyzer struct {
	parser *parser.Parser
}

// New creates a new structure analyzer.
func New() *Analyzer {
	return &Analyzer{parser: parser.New()}
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// AnalyzeFile scores every top-level function in a source file.
func (a *Analyzer) AnalyzeFile(path string) ([]Section, *Diagnostics, error) {
	result, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, nil, err
	}
	return a.analyze(result)
}

// Analyze scores every top-level function in the source text. The only
// error is a syntax error; scrubbing or extent problems surface through the
// returned diagnostics instead.
func (a *Analyzer) Analyze(source []byte) ([]Section, *Diagnostics, error) {
	result, err := a.parser.Parse(source, "")
	if err != nil {
		return nil, nil, err
	}
	return a.analyze(result)
}

func (a *Analyzer) analyze(result *parser.ParseResult) ([]Section, *Diagnostics, error) {
	diagnostics := &Diagnostics{}
	root := result.Tree.RootNode()
	cleaned := scrubUserText(root, result.Source)
	lines := strings.Split(cleaned, "\n")

	sections := make([]Section, 0)
	seen := make(map[string]struct{})
	for _, stmt := range parser.NamedChildren(root) {
		fn := topLevelFunction(stmt)
		if fn == nil {
			continue
		}
		section := buildSection(stmt, fn, result.Source, lines)
		if _, dup := seen[section.Name]; dup {
			diagnostics.AddWarning(fmt.Sprintf(
				"function %s redefined on line %d", section.Name, section.StartLine+1))
		}
		seen[section.Name] = struct{}{}
		sections = append(sections, section)
	}

	return sections, diagnostics, nil
}

// topLevelFunction unwraps a module statement to a function definition,
// looking through decorators.
func topLevelFunction(stmt *sitter.Node) *sitter.Node {
	switch stmt.Type() {
	case "function_definition":
		return stmt
	case "decorated_definition":
		if def := stmt.ChildByFieldName("definition"); def != nil && def.Type() == "function_definition" {
			return def
		}
	}
	return nil
}

// buildSection scores one function and captures its scrubbed snippet with
// blank lines removed. Extents and score cover the whole statement, so a
// decorated function's span and tally include its decorators.
func buildSection(stmt, fn *sitter.Node, source []byte, cleanedLines []string) Section {
	ext := nodeExtents(stmt)
	name := parser.GetNodeText(fn.ChildByFieldName("name"), source)

	return Section{
		Name:      name,
		StartLine: ext.StartLine - 1,
		EndLine:   ext.EndLine + 1,
		Code:      snippet(cleanedLines, ext.StartLine, ext.EndLine),
		Score:     scoreNode(stmt, source),
	}
}

// snippet joins the non-blank lines of a 1-based inclusive line range.
func snippet(lines []string, startLine, endLine int) string {
	if startLine < 1 {
		startLine = 1
	}
	if endLine > len(lines) {
		endLine = len(lines)
	}
	var kept []string
	for _, line := range lines[startLine-1 : endLine] {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// scoreNode tallies category counts over a subtree and folds them into the
// weighted total.
func scoreNode(node *sitter.Node, source []byte) Score {
	parts := map[Category]int{
		CategoryUnusual:   0,
		CategoryImportant: 0,
		CategoryMundane:   0,
		CategoryDrafter:   0,
	}

	parser.WalkTyped(node, source, func(n *sitter.Node, nodeType string, src []byte) bool {
		if category, ok := nodeCategories[nodeType]; ok {
			parts[category]++
		}
		if nodeType == "identifier" {
			if category, ok := nameCategories[parser.GetNodeText(n, src)]; ok {
				parts[category]++
			}
		}
		return true
	})

	total := 0
	for _, entry := range categoryOrder {
		total += parts[entry.Category] * entry.Weight
	}

	return Score{
		Total: float64(total) / 1000,
		Parts: parts,
	}
}
