package structure

import (
	"github.com/drafter-edu/analyze-drafter-site/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// scrubUserText blanks out the user-authored prose in a source file:
// comments and bare string-literal expression statements (docstrings and
// the stray quoted lines students leave behind). String literals that feed
// real arguments stay, so a "#" inside page text never looks like a
// comment. Line structure is preserved exactly; removed characters become
// spaces.
func scrubUserText(root *sitter.Node, source []byte) string {
	cleaned := make([]byte, len(source))
	copy(cleaned, source)

	for _, comment := range parser.FindNodesByType(root, source, "comment") {
		blankRange(cleaned, comment.StartByte(), comment.EndByte())
	}

	parser.WalkTyped(root, source, func(n *sitter.Node, nodeType string, _ []byte) bool {
		if nodeType != "expression_statement" {
			return true
		}
		if n.NamedChildCount() == 1 {
			if str := n.NamedChild(0); str != nil && str.Type() == "string" {
				blankRange(cleaned, str.StartByte(), str.EndByte())
			}
		}
		return true
	})

	return string(cleaned)
}

// blankRange replaces a byte range with spaces, keeping newlines so line
// numbers stay stable.
func blankRange(buf []byte, start, end uint32) {
	if int(end) > len(buf) {
		end = uint32(len(buf))
	}
	for i := start; i < end; i++ {
		if buf[i] != '\n' {
			buf[i] = ' '
		}
	}
}
