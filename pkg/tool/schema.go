package tool

// JSONSchema captures the subset of JSON Schema we require for tool
// parameter contracts: an object with typed properties and a required list.
type JSONSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required,omitempty"`
}

// Property builds a schema property entry with a type and description.
func Property(typ, description string) map[string]any {
	return map[string]any{
		"type":        typ,
		"description": description,
	}
}
