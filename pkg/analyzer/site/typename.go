package site

import (
	"strings"

	"github.com/drafter-edu/analyze-drafter-site/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// TypeName converts a type-annotation node into its canonical display
// string. Every node shape has a defined rendering; unrecognized shapes
// degrade to the raw source text rather than erroring.
func TypeName(node *sitter.Node, source []byte) string {
	if node == nil {
		return ""
	}

	switch node.Type() {
	case "type":
		// Annotations arrive wrapped in a type node; unwrap it.
		if inner := node.NamedChild(0); inner != nil {
			return TypeName(inner, source)
		}
		return parser.GetNodeText(node, source)

	case "identifier":
		return parser.GetNodeText(node, source)

	case "attribute":
		// Qualified references like typing.Optional render as outer.inner.
		obj := node.ChildByFieldName("object")
		attr := node.ChildByFieldName("attribute")
		return TypeName(obj, source) + "." + parser.GetNodeText(attr, source)

	case "subscript":
		return subscriptTypeName(node, source)

	case "string":
		return stringLiteralValue(node, source)

	case "integer", "float", "true", "false", "none":
		return parser.GetNodeText(node, source)

	default:
		return parser.GetNodeText(node, source)
	}
}

// subscriptTypeName renders generic types. A single identifier index gives
// Base[arg]; multiple indexes give Base[a, b, ...] with each element fully
// rendered; any other single index renders as just the base.
func subscriptTypeName(node *sitter.Node, source []byte) string {
	base := TypeName(node.ChildByFieldName("value"), source)

	var indexes []*sitter.Node
	for i := range int(node.ChildCount()) {
		if node.FieldNameForChild(i) == "subscript" {
			indexes = append(indexes, node.Child(i))
		}
	}

	switch {
	case len(indexes) == 1 && indexes[0].Type() == "identifier":
		return base + "[" + parser.GetNodeText(indexes[0], source) + "]"
	case len(indexes) > 1:
		parts := make([]string, len(indexes))
		for i, idx := range indexes {
			parts[i] = TypeName(idx, source)
		}
		return base + "[" + strings.Join(parts, ", ") + "]"
	default:
		return base
	}
}

// stringLiteralValue returns the unquoted value of a string node. Prefix
// characters (f, r, b, u) and any of the four quote styles are stripped.
func stringLiteralValue(node *sitter.Node, source []byte) string {
	text := parser.GetNodeText(node, source)
	for len(text) > 0 {
		c := text[0]
		if c == '\'' || c == '"' {
			break
		}
		text = text[1:]
	}
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, q) && strings.HasSuffix(text, q) && len(text) >= 2*len(q) {
			return text[len(q) : len(text)-len(q)]
		}
	}
	return text
}
