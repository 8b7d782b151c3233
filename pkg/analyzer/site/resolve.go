package site

import "strings"

// resolveDependencies recomputes every record's dependency set from scratch
// against the current record set. It runs after the traversal completes and
// is idempotent: resolving twice with no model changes yields the same
// result, and resolving again after new records appear picks up previously
// unresolvable field types.
func (m *Model) resolveDependencies() {
	for _, record := range m.records {
		record.dependencies = make(map[string]struct{})
		for _, field := range record.Fields {
			m.resolveFieldType(record, field.Type)
		}
	}
}

// resolveFieldType adds composition edges induced by one rendered type.
// The base name before any bracket is checked against the record set, then
// the bracket interior is split on top-level commas with each part checked
// the same way, recursing into nested generics.
func (m *Model) resolveFieldType(owner *Dataclass, typeName string) {
	base, _, generic := strings.Cut(typeName, "[")
	m.addDependency(owner, base)

	if generic {
		m.resolveInterior(owner, bracketInterior(typeName))
	}
}

// resolveInterior processes the comma-separated parts of a bracket
// interior. Recursion bounds only by nesting depth, which is finite in any
// parsed annotation.
func (m *Model) resolveInterior(owner *Dataclass, interior string) {
	for _, part := range splitTopLevel(interior) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, known := m.records[part]; known {
			m.addDependency(owner, part)
		} else if strings.Contains(part, "[") {
			m.resolveInterior(owner, bracketInterior(part))
		} else {
			m.trackUnresolved(part)
		}
	}
}

// addDependency records name as a dependency of owner when it names a known
// record other than the owner itself; otherwise the name is tracked as
// unresolved.
func (m *Model) addDependency(owner *Dataclass, name string) {
	if name == "" || name == owner.Name {
		return
	}
	if _, known := m.records[name]; known {
		owner.dependencies[name] = struct{}{}
		return
	}
	m.trackUnresolved(name)
}

// trackUnresolved remembers a type name that matched no known record.
// Unresolved names are reported but never drawn as edges.
func (m *Model) trackUnresolved(name string) {
	if name != "" {
		m.unresolvedTypes[name] = struct{}{}
	}
}

// bracketInterior extracts the substring between the first "[" and the last
// "]". Missing brackets yield an empty string.
func bracketInterior(s string) string {
	open := strings.Index(s, "[")
	close := strings.LastIndex(s, "]")
	if open < 0 || close <= open {
		return ""
	}
	return s[open+1 : close]
}

// splitTopLevel splits on commas outside any bracket nesting, so the
// elements of dict[str, list[Item]] come back as "str" and "list[Item]".
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
