package site

import "strings"

// Field-type weights. The score is a structural-risk heuristic, not a
// runtime cost model: it flags unusually exotic or heavily nested field
// types.
const (
	weightPrimitive = 0.1
	weightContainer = 1.0
	weightMapping   = 10.0
	weightExotic    = 100.0
)

// FieldComplexity scores one rendered field type by its base name,
// case-insensitively. A type naming another known record weighs the same as
// a list.
func (m *Model) FieldComplexity(typeName string) float64 {
	base, _, _ := strings.Cut(typeName, "[")
	switch strings.ToLower(base) {
	case "int", "str", "bool", "float":
		return weightPrimitive
	case "list":
		return weightContainer
	case "dict", "tuple", "set":
		return weightMapping
	}
	if _, known := m.records[base]; known {
		return weightContainer
	}
	return weightExotic
}

// RecordComplexity sums the field scores of the named record. Unknown names
// score zero.
func (m *Model) RecordComplexity(name string) float64 {
	record, ok := m.records[name]
	if !ok {
		return 0
	}
	total := 0.0
	for _, field := range record.Fields {
		total += m.FieldComplexity(field.Type)
	}
	return total
}

// TotalComplexity sums the complexity of every known record.
func (m *Model) TotalComplexity() float64 {
	total := 0.0
	for _, name := range m.recordOrder {
		total += m.RecordComplexity(name)
	}
	return total
}
