package gemini

import "sort"

// Schema is the subset of the OpenAPI schema object accepted as a
// generationConfig.responseSchema.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

func String(desc string) *Schema  { return &Schema{Type: "STRING", Description: desc} }
func Number(desc string) *Schema  { return &Schema{Type: "NUMBER", Description: desc} }
func Integer(desc string) *Schema { return &Schema{Type: "INTEGER", Description: desc} }

func Enum(desc string, values ...string) *Schema {
	return &Schema{Type: "STRING", Description: desc, Enum: values}
}

func Array(items *Schema) *Schema {
	return &Schema{Type: "ARRAY", Items: items}
}

// Object builds an OBJECT schema in which every property is required.
func Object(props map[string]*Schema) *Schema {
	s := &Schema{Type: "OBJECT", Properties: props}
	for name := range props {
		s.Required = append(s.Required, name)
	}
	sort.Strings(s.Required)
	return s
}
