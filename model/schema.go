package model

import (
	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"gopkg.in/yaml.v3"
)

// Schema describes a data type. Only the JSON Schema subset shared by Swagger 2.0 and OpenAPI 3.0 is modelled.
type Schema struct {
	Referencing
	Source
	Extended

	Title       string
	Description string
	Type        string
	Format      string

	Properties           *sequencedmap.Map[string, *Schema]
	Required             []string
	AdditionalProperties *Schema
	// AdditionalPropertiesAllowed is set when additionalProperties is given as a boolean.
	AdditionalPropertiesAllowed *bool
	Items                       *Schema
	AllOf                       []*Schema
	Discriminator               string

	MultipleOf       *float64
	Maximum          *float64
	ExclusiveMaximum bool
	Minimum          *float64
	ExclusiveMinimum bool
	MaxLength        *int64
	MinLength        *int64
	Pattern          string
	MaxItems         *int64
	MinItems         *int64
	UniqueItems      bool
	MaxProperties    *int64
	MinProperties    *int64

	Enum     []*yaml.Node
	Default  *yaml.Node
	Example  *yaml.Node
	Nullable bool
	ReadOnly bool

	ExternalDocs *ExternalDocs
}
