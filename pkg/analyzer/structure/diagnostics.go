package structure

// Diagnostics collects non-fatal problems noticed while scoring. Scoring
// degrades instead of failing; callers decide what to surface.
type Diagnostics struct {
	Warnings []string `json:"warnings,omitempty"`
}

// AddWarning records an advisory message.
func (d *Diagnostics) AddWarning(message string) {
	d.Warnings = append(d.Warnings, message)
}
