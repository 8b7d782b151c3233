package structure

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/drafter-edu/analyze-drafter-site/pkg/parser"
)

func analyzeSource(t *testing.T, source string) []Section {
	t.Helper()
	a := New()
	defer a.Close()

	sections, _, err := a.Analyze([]byte(source))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return sections
}

func TestTopLevelFunctionsBecomeSections(t *testing.T) {
	sections := analyzeSource(t, `
def first():
    return 1

@route
def second(state):
    return Page(state, [])

class Holder:
    def method(self):
        return 2

x = 3
`)

	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2 (methods and statements excluded)", len(sections))
	}
	if sections[0].Name != "first" || sections[1].Name != "second" {
		t.Errorf("section names = %s, %s; want first, second", sections[0].Name, sections[1].Name)
	}
}

func TestSectionLineSpan(t *testing.T) {
	sections := analyzeSource(t, `
def f():
    return 1
`)

	f := sections[0]
	// The reported span is widened by one line on each side.
	if f.StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", f.StartLine)
	}
	if f.EndLine != 4 {
		t.Errorf("EndLine = %d, want 4", f.EndLine)
	}
}

func TestDecoratedSectionSpansDecorator(t *testing.T) {
	sections := analyzeSource(t, `
@route
def index(state):
    return Page(state, [])
`)

	index := sections[0]
	// The span covers the decorator line, widened by one on each side.
	if index.StartLine != 1 {
		t.Errorf("StartLine = %d, want 1", index.StartLine)
	}
	if index.EndLine != 5 {
		t.Errorf("EndLine = %d, want 5", index.EndLine)
	}
	if !strings.Contains(index.Code, "@route") {
		t.Errorf("snippet lost the decorator: %q", index.Code)
	}
}

func TestDecoratorContributesToScore(t *testing.T) {
	sections := analyzeSource(t, `
@route
def index(state):
    return Page(state, [])
`)

	parts := sections[0].Score.Parts
	// The bare @route identifier lands in the drafter bucket next to Page.
	if parts[CategoryDrafter] != 2 {
		t.Errorf("drafter = %d, want 2 (parts %v)", parts[CategoryDrafter], parts)
	}
	if parts[CategoryUnusual] != 0 {
		t.Errorf("unusual = %d, want 0 (parts %v)", parts[CategoryUnusual], parts)
	}
}

func TestRedefinedFunctionWarns(t *testing.T) {
	a := New()
	defer a.Close()

	sections, diags, err := a.Analyze([]byte(`
def page():
    return 1

def page():
    return 2
`))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	if len(sections) != 2 {
		t.Fatalf("sections = %d, want 2 (both declarations kept)", len(sections))
	}
	if len(diags.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", diags.Warnings)
	}
	want := "function page redefined on line 5"
	if diags.Warnings[0] != want {
		t.Errorf("warning = %q, want %q", diags.Warnings[0], want)
	}
}

func TestUniqueFunctionsNoWarnings(t *testing.T) {
	a := New()
	defer a.Close()

	_, diags, err := a.Analyze([]byte("def a():\n    return 1\n\ndef b():\n    return 2\n"))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if len(diags.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", diags.Warnings)
	}
}

func TestScoreWeights(t *testing.T) {
	cases := []struct {
		name   string
		source string
		want   float64
	}{
		{
			name: "plain control flow",
			source: `
def simple():
    return 1
`,
			// function_definition + return_statement
			want: 0.2,
		},
		{
			name: "drafter constructs",
			source: `
def index(state):
    return Page(state, [Header("hi")])
`,
			// 2 important, 2 calls, Page + Header identifiers
			want: 0.222,
		},
		{
			name: "comprehension is unusual",
			source: `
def tricky(xs):
    return [x for x in xs]
`,
			want: 1.2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sections := analyzeSource(t, tc.source)
			if len(sections) != 1 {
				t.Fatalf("sections = %d, want 1", len(sections))
			}
			got := sections[0].Score.Total
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Score.Total = %v, want %v (parts %v)", got, tc.want, sections[0].Score.Parts)
			}
		})
	}
}

func TestScoreParts(t *testing.T) {
	sections := analyzeSource(t, `
def branchy(x):
    if x > 0:
        return x
    else:
        return -x
`)

	parts := sections[0].Score.Parts
	// function_definition, if_statement, else_clause, comparison_operator,
	// and two return statements.
	if parts[CategoryImportant] != 6 {
		t.Errorf("important = %d, want 6 (parts %v)", parts[CategoryImportant], parts)
	}
	if parts[CategoryUnusual] != 0 {
		t.Errorf("unusual = %d, want 0", parts[CategoryUnusual])
	}
	// unary minus
	if parts[CategoryMundane] != 1 {
		t.Errorf("mundane = %d, want 1", parts[CategoryMundane])
	}
}

func TestSnippetScrubsUserText(t *testing.T) {
	sections := analyzeSource(t, `
def documented():
    "student docstring"
    x = 1  # student comment
    return x
`)

	code := sections[0].Code
	if strings.Contains(code, "docstring") {
		t.Error("docstring should be scrubbed from snippet")
	}
	if strings.Contains(code, "student comment") {
		t.Error("comments should be scrubbed from snippet")
	}
	if !strings.Contains(code, "x = 1") {
		t.Errorf("snippet lost code: %q", code)
	}
}

func TestArgumentStringsSurvive(t *testing.T) {
	sections := analyzeSource(t, `
def page(state):
    return Page(state, [Header("# not a comment")])
`)

	if !strings.Contains(sections[0].Code, "# not a comment") {
		t.Errorf("argument strings must survive scrubbing: %q", sections[0].Code)
	}
}

func TestSyntaxError(t *testing.T) {
	a := New()
	defer a.Close()

	_, _, err := a.Analyze([]byte("def broken(:\n"))
	if err == nil {
		t.Fatal("Analyze() should fail on a syntax error")
	}
	if !errors.Is(err, parser.ErrSyntax) {
		t.Errorf("error = %v, want ErrSyntax", err)
	}
}
