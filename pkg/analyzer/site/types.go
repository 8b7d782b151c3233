package site

import "sort"

// Field is one annotated field of a dataclass, with its type rendered to the
// canonical display string (e.g. "list[Item]").
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Dataclass is a discovered record declaration.
type Dataclass struct {
	Name        string   `json:"name"`
	Fields      []Field  `json:"fields"`
	BaseClasses []string `json:"base_classes,omitempty"`

	// dependencies is recomputed wholesale by the resolver; it only ever
	// contains names of records known to the model, never the owner itself.
	dependencies map[string]struct{}
}

// Dependencies returns the names of other known dataclasses this record's
// fields reference, sorted.
func (d *Dataclass) Dependencies() []string {
	return sortedKeys(d.dependencies)
}

// DependsOn reports whether this record's fields reference name.
func (d *Dataclass) DependsOn(name string) bool {
	_, ok := d.dependencies[name]
	return ok
}

// Field returns the named field, if declared.
func (d *Dataclass) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Route is a discovered page-handler function.
type Route struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`

	// Components maps component constructor name to invocation count within
	// this route's body.
	Components map[string]int `json:"components,omitempty"`

	fieldsUsed  map[string]struct{}
	calledNames map[string]struct{}
}

// FieldsUsed returns the attribute names read or written in the route body,
// sorted. Names are flat, not qualified by owner.
func (r *Route) FieldsUsed() []string {
	return sortedKeys(r.fieldsUsed)
}

// CalledNames returns the identifiers this route calls, returns the result
// of, or links to via a navigation component, sorted.
func (r *Route) CalledNames() []string {
	return sortedKeys(r.calledNames)
}

// Calls reports whether the route references name.
func (r *Route) Calls(name string) bool {
	_, ok := r.calledNames[name]
	return ok
}

// Edge is a directed relationship between two named entities.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Model is the finished analysis result. It is mutable only while Analyze
// runs; every exported query is read-only and repeatable.
type Model struct {
	records     map[string]*Dataclass
	recordOrder []string
	routes      []*Route

	// attributeUsage counts attribute accesses per record per field. An
	// access x.f counts against every known record declaring a field f;
	// ambiguity is resolved by over-counting, not by guessing ownership.
	attributeUsage map[string]map[string]int

	componentTotals map[string]int
	callEdges       map[string]map[string]struct{}
	callOrder       []string

	// unresolvedTypes collects field-type names that matched no known
	// record. They are tracked for reporting but never drawn in diagrams.
	unresolvedTypes map[string]struct{}
}

func newModel() *Model {
	return &Model{
		records:         make(map[string]*Dataclass),
		attributeUsage:  make(map[string]map[string]int),
		componentTotals: make(map[string]int),
		callEdges:       make(map[string]map[string]struct{}),
		unresolvedTypes: make(map[string]struct{}),
	}
}

// Records returns all discovered dataclasses in declaration order.
func (m *Model) Records() []*Dataclass {
	out := make([]*Dataclass, 0, len(m.recordOrder))
	for _, name := range m.recordOrder {
		out = append(out, m.records[name])
	}
	return out
}

// Record returns the named dataclass, if known.
func (m *Model) Record(name string) (*Dataclass, bool) {
	d, ok := m.records[name]
	return d, ok
}

// Routes returns all discovered routes in declaration order. Re-declared
// names appear once per declaration.
func (m *Model) Routes() []*Route {
	out := make([]*Route, len(m.routes))
	copy(out, m.routes)
	return out
}

// AttributeUsage returns the access count recorded for a record's field.
func (m *Model) AttributeUsage(record, field string) int {
	return m.attributeUsage[record][field]
}

// RecordUsageTotal returns the total access count across all of a record's
// fields.
func (m *Model) RecordUsageTotal(record string) int {
	total := 0
	for _, count := range m.attributeUsage[record] {
		total += count
	}
	return total
}

// ComponentTotals returns the global component invocation tally.
func (m *Model) ComponentTotals() map[string]int {
	out := make(map[string]int, len(m.componentTotals))
	for name, count := range m.componentTotals {
		out[name] = count
	}
	return out
}

// CompositionEdges returns (record, dependency) pairs restricted to known
// records, ordered by declaring record then dependency name.
func (m *Model) CompositionEdges() []Edge {
	var edges []Edge
	for _, name := range m.recordOrder {
		for _, dep := range m.records[name].Dependencies() {
			if _, known := m.records[dep]; known {
				edges = append(edges, Edge{From: name, To: dep})
			}
		}
	}
	return edges
}

// CallEdges returns (route, calledName) pairs. Targets may reference
// unknown or external identifiers.
func (m *Model) CallEdges() []Edge {
	var edges []Edge
	for _, from := range m.callOrder {
		for _, to := range sortedKeys(m.callEdges[from]) {
			edges = append(edges, Edge{From: from, To: to})
		}
	}
	return edges
}

// UnresolvedTypes returns field-type names that matched no known record,
// sorted.
func (m *Model) UnresolvedTypes() []string {
	return sortedKeys(m.unresolvedTypes)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
