// Package site builds a structural model of a Drafter web site from one
// Python compilation unit: its dataclasses, its route handlers, the
// components each route renders, and the composition and call graphs
// between them. Name resolution is syntactic; the model trades precision
// for simplicity and never fails on valid input.
package site

import (
	"fmt"
	"strings"

	"github.com/drafter-edu/analyze-drafter-site/pkg/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// Analyzer parses and analyzes Drafter source files. It is reusable across
// calls but not safe for concurrent use; each Analyze call is synchronous
// and single-threaded.
type Analyzer struct {
	parser *parser.Parser
}

// New creates a new site analyzer.
func New() *Analyzer {
	return &Analyzer{parser: parser.New()}
}

// Close releases analyzer resources.
func (a *Analyzer) Close() {
	a.parser.Close()
}

// AnalyzeFile analyzes a single Drafter source file.
func (a *Analyzer) AnalyzeFile(path string) (*Model, error) {
	result, err := a.parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return buildModel(result), nil
}

// Analyze analyzes Drafter source text. The only error is a syntax error;
// every other irregularity is absorbed into the model as approximate facts.
func (a *Analyzer) Analyze(source []byte) (*Model, error) {
	result, err := a.parser.Parse(source, "")
	if err != nil {
		return nil, err
	}
	return buildModel(result), nil
}

// Analyze is a one-shot convenience wrapper around a throwaway Analyzer.
func Analyze(source []byte) (*Model, error) {
	a := New()
	defer a.Close()
	return a.Analyze(source)
}

// buildModel runs the single traversal and the resolution pass.
func buildModel(result *parser.ParseResult) *Model {
	m := newModel()
	t := &traversal{model: m, source: result.Source}
	t.walk(result.Tree.RootNode(), nil)
	m.resolveDependencies()
	return m
}

// traversal is the single-owner state for one walk over the tree. The
// current route is threaded as a parameter rather than held as ambient
// state, so each function body can be traversed in isolation.
type traversal struct {
	model  *Model
	source []byte
}

// walk dispatches on node kind. route is the active route context; calls
// and attribute accesses seen while it is nil are dropped from the graph.
func (t *traversal) walk(node *sitter.Node, route *Route) {
	if node == nil {
		return
	}

	switch node.Type() {
	case "decorated_definition":
		t.walkDecorated(node, route)
		return

	case "class_definition":
		t.handleClass(node, nil)

	case "function_definition":
		t.walkFunction(node, nil, route)
		return

	case "call":
		t.handleCall(node, route)

	case "return_statement":
		t.handleReturn(node, route)

	case "attribute":
		t.handleAttribute(node, route)
	}

	for i := range int(node.ChildCount()) {
		t.walk(node.Child(i), route)
	}
}

// walkDecorated splits a decorated definition into its decorator list and
// the wrapped declaration, then dispatches once with both in hand.
func (t *traversal) walkDecorated(node *sitter.Node, route *Route) {
	var decorators []*sitter.Node
	for i := range int(node.ChildCount()) {
		if child := node.Child(i); child.Type() == "decorator" {
			decorators = append(decorators, child)
		}
	}

	def := node.ChildByFieldName("definition")
	if def == nil {
		return
	}

	switch def.Type() {
	case "class_definition":
		t.handleClass(def, decorators)
		for i := range int(def.ChildCount()) {
			t.walk(def.Child(i), route)
		}
	case "function_definition":
		t.walkFunction(def, decorators, route)
	default:
		t.walk(def, route)
	}
}

// walkFunction handles a function definition.
//
// A route sets itself as the context for its own top-level body statements
// only; its decorators are not visited, so a path argument in @route("/x")
// never shows up as a call. A non-route function keeps whatever context is
// already active, which at the top level means none.
func (t *traversal) walkFunction(node *sitter.Node, decorators []*sitter.Node, route *Route) {
	if hasRouteDecorator(decorators, t.source) {
		r := t.beginRoute(node)
		if body := node.ChildByFieldName("body"); body != nil {
			for i := range int(body.ChildCount()) {
				t.walk(body.Child(i), r)
			}
		}
		return
	}

	for _, dec := range decorators {
		t.walk(dec, route)
	}
	for i := range int(node.ChildCount()) {
		t.walk(node.Child(i), route)
	}
}

// hasRouteDecorator recognizes both the bare @route marker and the
// argument-taking @route(...) form.
func hasRouteDecorator(decorators []*sitter.Node, source []byte) bool {
	for _, dec := range decorators {
		expr := dec.NamedChild(0)
		if expr == nil {
			continue
		}
		switch expr.Type() {
		case "identifier":
			if parser.GetNodeText(expr, source) == "route" {
				return true
			}
		case "call":
			fn := expr.ChildByFieldName("function")
			if fn != nil && fn.Type() == "identifier" && parser.GetNodeText(fn, source) == "route" {
				return true
			}
		}
	}
	return false
}

// hasBareDecorator recognizes only the bare-name form. Call-style markers
// are deliberately not matched here.
func hasBareDecorator(decorators []*sitter.Node, source []byte, name string) bool {
	for _, dec := range decorators {
		expr := dec.NamedChild(0)
		if expr != nil && expr.Type() == "identifier" && parser.GetNodeText(expr, source) == name {
			return true
		}
	}
	return false
}

// beginRoute creates the RouteHandler for a qualifying function and resets
// its name-keyed call edges; a re-declared route name overwrites the earlier
// edge set while the route list stays append-only.
func (t *traversal) beginRoute(node *sitter.Node) *Route {
	name := parser.GetNodeText(node.ChildByFieldName("name"), t.source)
	r := &Route{
		Name:        name,
		Signature:   functionSignature(name, node, t.source),
		Components:  make(map[string]int),
		fieldsUsed:  make(map[string]struct{}),
		calledNames: make(map[string]struct{}),
	}
	t.model.routes = append(t.model.routes, r)
	if _, seen := t.model.callEdges[name]; !seen {
		t.model.callOrder = append(t.model.callOrder, name)
	}
	t.model.callEdges[name] = make(map[string]struct{})
	return r
}

// functionSignature renders name(param1, param2, ...) with types and
// defaults omitted.
func functionSignature(name string, node *sitter.Node, source []byte) string {
	var params []string
	paramsNode := node.ChildByFieldName("parameters")
	for _, p := range parser.NamedChildren(paramsNode) {
		switch p.Type() {
		case "identifier":
			params = append(params, parser.GetNodeText(p, source))
		case "typed_parameter":
			if id := p.NamedChild(0); id != nil && id.Type() == "identifier" {
				params = append(params, parser.GetNodeText(id, source))
			}
		case "default_parameter", "typed_default_parameter":
			if id := p.ChildByFieldName("name"); id != nil {
				params = append(params, parser.GetNodeText(id, source))
			}
		}
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(params, ", "))
}

// handleClass records a dataclass declaration. Only the bare @dataclass
// marker qualifies. A re-declared name overwrites the earlier entry but
// keeps its original position.
func (t *traversal) handleClass(node *sitter.Node, decorators []*sitter.Node) {
	if !hasBareDecorator(decorators, t.source, "dataclass") {
		return
	}

	name := parser.GetNodeText(node.ChildByFieldName("name"), t.source)
	d := &Dataclass{
		Name:         name,
		Fields:       collectFields(node, t.source),
		BaseClasses:  collectBaseClasses(node, t.source),
		dependencies: make(map[string]struct{}),
	}

	if _, exists := t.model.records[name]; !exists {
		t.model.recordOrder = append(t.model.recordOrder, name)
	}
	t.model.records[name] = d
}

// collectFields gathers the annotated assignments of a class body in source
// order. Both bare annotations (x: int) and annotated defaults
// (x: int = 0) qualify; plain assignments without annotations do not.
func collectFields(node *sitter.Node, source []byte) []Field {
	var fields []Field
	body := node.ChildByFieldName("body")
	for _, stmt := range parser.NamedChildren(body) {
		if stmt.Type() != "expression_statement" {
			continue
		}
		assign := stmt.NamedChild(0)
		if assign == nil || assign.Type() != "assignment" {
			continue
		}
		typeNode := assign.ChildByFieldName("type")
		left := assign.ChildByFieldName("left")
		if typeNode == nil || left == nil || left.Type() != "identifier" {
			continue
		}
		fields = append(fields, Field{
			Name: parser.GetNodeText(left, source),
			Type: TypeName(typeNode, source),
		})
	}
	return fields
}

// collectBaseClasses gathers simple superclass names. Qualified or
// subscripted bases are skipped; base classes are informational only.
func collectBaseClasses(node *sitter.Node, source []byte) []string {
	var bases []string
	supers := node.ChildByFieldName("superclasses")
	for _, arg := range parser.NamedChildren(supers) {
		if arg.Type() == "identifier" {
			bases = append(bases, parser.GetNodeText(arg, source))
		}
	}
	return bases
}

// handleCall classifies a call as a component invocation or a plain call.
// Traversal continues into the arguments afterward, so nested calls are all
// discovered.
func (t *traversal) handleCall(node *sitter.Node, route *Route) {
	name := calledName(node, t.source)

	if IsComponent(name) {
		if route != nil {
			route.Components[name]++
		}
		t.model.componentTotals[name]++

		if IsLinkingComponent(name) && route != nil {
			if target := linkTarget(node, t.source); target != "" {
				t.addCall(route, target)
			}
		}
		return
	}

	if name != "" && route != nil {
		t.addCall(route, name)
	}
}

// handleReturn captures the tail-delegation pattern where one route returns
// the result of calling another.
func (t *traversal) handleReturn(node *sitter.Node, route *Route) {
	value := node.NamedChild(0)
	if value == nil || value.Type() != "call" {
		return
	}
	if name := calledName(value, t.source); name != "" && route != nil {
		t.addCall(route, name)
	}
}

// handleAttribute records an attribute access against the current route and
// against every known record declaring a field of that name. Chained
// accesses like b.a.field1 record both a and field1 as traversal recurses
// through the object.
func (t *traversal) handleAttribute(node *sitter.Node, route *Route) {
	if route == nil {
		return
	}
	attr := parser.GetNodeText(node.ChildByFieldName("attribute"), t.source)
	if attr == "" {
		return
	}

	route.fieldsUsed[attr] = struct{}{}

	for recordName, record := range t.model.records {
		if _, declared := record.Field(attr); !declared {
			continue
		}
		usage, ok := t.model.attributeUsage[recordName]
		if !ok {
			usage = make(map[string]int)
			t.model.attributeUsage[recordName] = usage
		}
		usage[attr]++
	}
}

// addCall records name in the route's called set and in the global
// call-graph edge set.
func (t *traversal) addCall(route *Route, name string) {
	route.calledNames[name] = struct{}{}
	t.model.callEdges[route.Name][name] = struct{}{}
}

// calledName resolves the target of a call expression. An attribute call
// resolves to the attribute's simple name with the qualifying object
// ignored; anything else resolves to nothing.
func calledName(node *sitter.Node, source []byte) string {
	fn := node.ChildByFieldName("function")
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return parser.GetNodeText(fn, source)
	case "attribute":
		return parser.GetNodeText(fn.ChildByFieldName("attribute"), source)
	}
	return ""
}

// linkTarget inspects the second positional argument of a navigation
// component. A bare name or a string literal resolves to the target route
// name; any other shape resolves to nothing.
func linkTarget(node *sitter.Node, source []byte) string {
	args := node.ChildByFieldName("arguments")
	var positional []*sitter.Node
	for _, arg := range parser.NamedChildren(args) {
		switch arg.Type() {
		case "keyword_argument", "comment":
			continue
		}
		positional = append(positional, arg)
	}
	if len(positional) < 2 {
		return ""
	}

	target := positional[1]
	switch target.Type() {
	case "identifier":
		return parser.GetNodeText(target, source)
	case "string":
		return stringLiteralValue(target, source)
	}
	return ""
}
