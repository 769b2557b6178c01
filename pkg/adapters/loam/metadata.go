package loam

// ProblemMetadata is the front matter (or top-level JSON object) of a problem
// document. Arrangements stay generic here and are decoded by problem.Decode, so
// Markdown, YAML and JSON documents share one decoding path.
type ProblemMetadata struct {
	Name        string         `json:"name" mapstructure:"name"`
	Description string         `json:"description" mapstructure:"description"`
	Start       map[string]any `json:"start" mapstructure:"start"`
	Goal        map[string]any `json:"goal" mapstructure:"goal"`
	MaxSteps    any            `json:"max_steps" mapstructure:"max_steps"`
}

func (m ProblemMetadata) toMap(name, body string) map[string]any {
	out := map[string]any{"name": name}

	desc := m.Description
	if desc == "" {
		desc = body
	}
	if desc != "" {
		out["description"] = desc
	}
	if m.Start != nil {
		out["start"] = m.Start
	}
	if m.Goal != nil {
		out["goal"] = m.Goal
	}
	if m.MaxSteps != nil {
		out["max_steps"] = m.MaxSteps
	}
	return out
}
