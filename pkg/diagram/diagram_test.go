package diagram

import (
	"strings"
	"testing"

	"github.com/drafter-edu/analyze-drafter-site/pkg/analyzer/site"
)

func model(t *testing.T, source string) *site.Model {
	t.Helper()
	m, err := site.Analyze([]byte(source))
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	return m
}

func TestClassDiagram(t *testing.T) {
	m := model(t, `
@dataclass
class Item:
    name: str

@dataclass
class State:
    items: list[Item]
    count: int
`)

	got := ClassDiagram(m)

	for _, want := range []string{
		"classDiagram\n",
		"    class Item {\n        str name\n    }\n",
		"    class State {\n        list[Item] items\n        int count\n    }\n",
		"    State --> Item\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ClassDiagram missing %q in:\n%s", want, got)
		}
	}
}

func TestClassDiagramSkipsDanglingDependencies(t *testing.T) {
	m := model(t, `
@dataclass
class State:
    count: int
    extra: Mystery
`)

	got := ClassDiagram(m)
	if strings.Contains(got, "-->") {
		t.Errorf("unknown types must not produce edges:\n%s", got)
	}
}

func TestRouteDiagram(t *testing.T) {
	m := model(t, `
@route
def index(state):
    return Page(state, [Button("Go", shop)])

@route
def shop(state):
    return render(state)
`)

	got := RouteDiagram(m)
	if !strings.HasPrefix(got, "graph TD\n") {
		t.Errorf("RouteDiagram should start with graph TD:\n%s", got)
	}
	for _, want := range []string{
		"    index --> shop\n",
		"    shop --> render\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RouteDiagram missing %q in:\n%s", want, got)
		}
	}
}

func TestRouteDiagramHashesNonIdentifierTargets(t *testing.T) {
	m := model(t, `
@route
def index(state):
    return Page(state, [Link("Go", "shop page")])
`)

	got := RouteDiagram(m)
	if strings.Contains(got, " shop page\n") {
		t.Errorf("raw non-identifier targets must not appear as node ids:\n%s", got)
	}
	if !strings.Contains(got, `["shop page"]`) {
		t.Errorf("non-identifier targets should keep their label:\n%s", got)
	}
}

func TestNodeID(t *testing.T) {
	if got := nodeID("shop"); got != "shop" {
		t.Errorf("nodeID(shop) = %q, want shop", got)
	}
	hashed := nodeID("a b")
	if !strings.HasPrefix(hashed, "n") || !strings.Contains(hashed, `["a b"]`) {
		t.Errorf("nodeID(a b) = %q, want hashed id with label", hashed)
	}
	if nodeID("a b") != hashed {
		t.Error("hashed ids must be stable")
	}
}
