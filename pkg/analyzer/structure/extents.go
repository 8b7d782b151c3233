package structure

import (
	"github.com/drafter-edu/analyze-drafter-site/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Extents is the smallest source region covering a node and its subtree.
// Lines are 1-based, columns 0-based.
type Extents struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// nodeExtents widens the node's own span to cover every descendant,
// skipping the insides of string literals so interpolation fragments never
// distort the region.
func nodeExtents(node *sitter.Node) Extents {
	ext := Extents{
		StartLine: int(node.StartPoint().Row) + 1,
		StartCol:  int(node.StartPoint().Column),
		EndLine:   int(node.EndPoint().Row) + 1,
		EndCol:    int(node.EndPoint().Column),
	}

	parser.WalkTyped(node, nil, func(n *sitter.Node, nodeType string, _ []byte) bool {
		startLine := int(n.StartPoint().Row) + 1
		startCol := int(n.StartPoint().Column)
		endLine := int(n.EndPoint().Row) + 1
		endCol := int(n.EndPoint().Column)

		if startLine < ext.StartLine {
			ext.StartLine = startLine
			ext.StartCol = startCol
		} else if startLine == ext.StartLine && startCol < ext.StartCol {
			ext.StartCol = startCol
		}
		if endLine > ext.EndLine {
			ext.EndLine = endLine
			ext.EndCol = endCol
		} else if endLine == ext.EndLine && endCol > ext.EndCol {
			ext.EndCol = endCol
		}

		return nodeType != "string"
	})

	return ext
}
