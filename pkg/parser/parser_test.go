package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
)

func TestParseValidSource(t *testing.T) {
	p := New()
	defer p.Close()

	result, err := p.Parse([]byte("def main():\n    return 1\n"), "site.py")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if result.Tree == nil {
		t.Fatal("Parse() returned nil tree")
	}
	if result.Path != "site.py" {
		t.Errorf("Path = %q", result.Path)
	}
	if result.Tree.RootNode().Type() != "module" {
		t.Errorf("root type = %q", result.Tree.RootNode().Type())
	}
}

func TestParseSyntaxError(t *testing.T) {
	p := New()
	defer p.Close()

	_, err := p.Parse([]byte("x = 1\ndef broken(:\n"), "bad.py")
	if !errors.Is(err, ErrSyntax) {
		t.Fatalf("Parse() error = %v, want ErrSyntax", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.py")
	if err := os.WriteFile(path, []byte("x = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	p := New()
	defer p.Close()

	result, err := p.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if string(result.Source) != "x = 1\n" {
		t.Errorf("Source = %q", result.Source)
	}
}

func TestParseFileMissing(t *testing.T) {
	p := New()
	defer p.Close()

	if _, err := p.ParseFile(filepath.Join(t.TempDir(), "nope.py")); err == nil {
		t.Fatal("ParseFile() succeeded on a missing file")
	}
}

func TestFindNodesByType(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("def a():\n    pass\n\ndef b():\n    pass\n")
	result, err := p.Parse(source, "site.py")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	funcs := FindNodesByType(result.Tree.RootNode(), source, "function_definition")
	if len(funcs) != 2 {
		t.Fatalf("found %d functions, want 2", len(funcs))
	}

	name := GetNodeText(funcs[0].ChildByFieldName("name"), source)
	if name != "a" {
		t.Errorf("first function = %q", name)
	}
}

func TestWalkSkipsChildrenOnFalse(t *testing.T) {
	p := New()
	defer p.Close()

	source := []byte("def a():\n    x = 1\n")
	result, err := p.Parse(source, "site.py")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	sawAssignment := false
	Walk(result.Tree.RootNode(), source, func(n *sitter.Node, _ []byte) bool {
		switch n.Type() {
		case "function_definition":
			return false
		case "assignment":
			sawAssignment = true
		}
		return true
	})
	if sawAssignment {
		t.Error("Walk descended into a skipped subtree")
	}
}

func TestGetNodeTextNil(t *testing.T) {
	if got := GetNodeText(nil, []byte("x")); got != "" {
		t.Errorf("GetNodeText(nil) = %q", got)
	}
}
