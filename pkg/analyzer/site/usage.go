package site

import "fmt"

// UnusedRecords returns records that no other record composes and whose
// fields were never accessed, in declaration order. A record referenced by
// another's dependency set is never unused, even with zero direct accesses.
func (m *Model) UnusedRecords() []string {
	var unused []string
	for _, name := range m.recordOrder {
		if m.recordIsComposed(name) {
			continue
		}
		if m.RecordUsageTotal(name) > 0 {
			continue
		}
		unused = append(unused, name)
	}
	return unused
}

// UnusedFields returns Record.field pairs with an access count of exactly
// zero, in declaration order. A field is judged on its own count regardless
// of whether its owning record is used.
func (m *Model) UnusedFields() []string {
	var unused []string
	for _, name := range m.recordOrder {
		for _, field := range m.records[name].Fields {
			if m.attributeUsage[name][field.Name] == 0 {
				unused = append(unused, fmt.Sprintf("%s.%s", name, field.Name))
			}
		}
	}
	return unused
}

// recordIsComposed reports whether any other record's dependency set names
// this record.
func (m *Model) recordIsComposed(name string) bool {
	for other, record := range m.records {
		if other == name {
			continue
		}
		if record.DependsOn(name) {
			return true
		}
	}
	return false
}
