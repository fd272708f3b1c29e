package swagger

import (
	"github.com/speakeasy-api/oasgraph/fieldmap"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

// simpleSchemaKeywords are the schema keywords Swagger 2.0 also allows directly on non-body
// parameters, headers and items.
var simpleSchemaKeywords = []string{
	"type", "format", "items", "default", "enum", "multipleOf",
	"maximum", "exclusiveMaximum", "minimum", "exclusiveMinimum",
	"maxLength", "minLength", "pattern", "maxItems", "minItems", "uniqueItems",
}

// schemaFields and itemsFields refer back to the schema loaders, so they are filled in by init.
var (
	schemaFields fieldmap.FixedFieldMap[*model.Schema]
	itemsFields  fieldmap.FixedFieldMap[*model.Schema]
)

var schemaPatterns = fieldmap.PatternFieldMap[*model.Schema]{
	{
		Match: func(key string) bool { return key == "x-nullable" },
		Handle: func(s *model.Schema, key string, n parsenode.Node) error {
			nullable, err := parsenode.GetBool(n)
			if err != nil {
				return err
			}
			s.Nullable = nullable
			s.AddExtension(key, n.CreateAny())
			return nil
		},
	},
}

func init() {
	schemaFields = fieldmap.FixedFieldMap[*model.Schema]{
		"title":            stringField(func(s *model.Schema) *string { return &s.Title }),
		"description":      stringField(func(s *model.Schema) *string { return &s.Description }),
		"type":             stringField(func(s *model.Schema) *string { return &s.Type }),
		"format":           stringField(func(s *model.Schema) *string { return &s.Format }),
		"pattern":          stringField(func(s *model.Schema) *string { return &s.Pattern }),
		"discriminator":    stringField(func(s *model.Schema) *string { return &s.Discriminator }),
		"required":         stringListField(func(s *model.Schema) *[]string { return &s.Required }),
		"multipleOf":       floatField(func(s *model.Schema) **float64 { return &s.MultipleOf }),
		"maximum":          floatField(func(s *model.Schema) **float64 { return &s.Maximum }),
		"minimum":          floatField(func(s *model.Schema) **float64 { return &s.Minimum }),
		"exclusiveMaximum": boolField(func(s *model.Schema) *bool { return &s.ExclusiveMaximum }),
		"exclusiveMinimum": boolField(func(s *model.Schema) *bool { return &s.ExclusiveMinimum }),
		"uniqueItems":      boolField(func(s *model.Schema) *bool { return &s.UniqueItems }),
		"readOnly":         boolField(func(s *model.Schema) *bool { return &s.ReadOnly }),
		"maxLength":        intField(func(s *model.Schema) **int64 { return &s.MaxLength }),
		"minLength":        intField(func(s *model.Schema) **int64 { return &s.MinLength }),
		"maxItems":         intField(func(s *model.Schema) **int64 { return &s.MaxItems }),
		"minItems":         intField(func(s *model.Schema) **int64 { return &s.MinItems }),
		"maxProperties":    intField(func(s *model.Schema) **int64 { return &s.MaxProperties }),
		"minProperties":    intField(func(s *model.Schema) **int64 { return &s.MinProperties }),
		"default": func(s *model.Schema, n parsenode.Node) error {
			s.Default = n.CreateAny()
			return nil
		},
		"example": func(s *model.Schema, n parsenode.Node) error {
			s.Example = n.CreateAny()
			return nil
		},
		"enum": func(s *model.Schema, n parsenode.Node) error {
			values, err := parsenode.CreateRawList(n)
			s.Enum = values
			return err
		},
		"items": func(s *model.Schema, n parsenode.Node) error {
			items, err := loadSchema(n)
			s.Items = items
			return err
		},
		"allOf": func(s *model.Schema, n parsenode.Node) error {
			allOf, err := parsenode.CreateList(n, buildSubschema)
			s.AllOf = allOf
			return err
		},
		"properties": func(s *model.Schema, n parsenode.Node) error {
			properties, err := loadSchemaMap(n)
			s.Properties = properties
			return err
		},
		"additionalProperties": func(s *model.Schema, n parsenode.Node) error {
			if n.Kind() == parsenode.KindValue {
				allowed, err := parsenode.GetBool(n)
				if err != nil {
					return err
				}
				s.AdditionalPropertiesAllowed = &allowed
				return nil
			}
			additional, err := loadSchema(n)
			s.AdditionalProperties = additional
			return err
		},
		"externalDocs": func(s *model.Schema, n parsenode.Node) error {
			docs, err := loadExternalDocs(n)
			s.ExternalDocs = docs
			return err
		},
		// xml naming hints have no place in the model
		"xml": func(_ *model.Schema, _ parsenode.Node) error { return nil },
	}

	itemsFields = schemaKeywordFields(func(s *model.Schema) *model.Schema { return s })
	// Only the outer collectionFormat of a parameter maps onto a serialization style.
	itemsFields["collectionFormat"] = func(_ *model.Schema, _ parsenode.Node) error { return nil }
}

// schemaKeywordFields adapts the simple schema keywords onto the schema owned by another object,
// such as a non-body parameter or a header.
func schemaKeywordFields[T any](schema func(T) *model.Schema) fieldmap.FixedFieldMap[T] {
	fields := make(fieldmap.FixedFieldMap[T], len(simpleSchemaKeywords))
	for _, keyword := range simpleSchemaKeywords {
		fields[keyword] = func(target T, n parsenode.Node) error {
			if keyword == "items" {
				items, err := loadItems(n)
				schema(target).Items = items
				return err
			}
			return schemaFields[keyword](schema(target), n)
		}
	}
	return fields
}

// loadSchema reads a schema, or a placeholder when it is a reference.
func loadSchema(n parsenode.Node) (*model.Schema, error) {
	return parsenode.CreateReferenceable[model.Schema](n, "schema", model.ReferenceTypeSchema, buildSchema)
}

func buildSubschema(m *parsenode.MapNode) (*model.Schema, error) {
	return loadSchema(m)
}

func buildSchema(m *parsenode.MapNode) (*model.Schema, error) {
	s := &model.Schema{}
	if err := fieldmap.ParseMap(m, s, schemaFields, schemaPatterns); err != nil {
		return nil, err
	}
	return s, nil
}

// loadItems reads the items of a non-body parameter or header, which cannot be references.
func loadItems(n parsenode.Node) (*model.Schema, error) {
	m, err := n.CheckMapNode("items")
	if err != nil {
		return nil, err
	}
	s := &model.Schema{}
	if err := fieldmap.ParseMap(m, s, itemsFields, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// loadSchemaMap reads a properties map. Unlike component collections the entries get no identity.
func loadSchemaMap(n parsenode.Node) (*sequencedmap.Map[string, *model.Schema], error) {
	m, err := n.CheckMapNode("properties")
	if err != nil {
		return nil, err
	}

	ctx := m.Context()
	out := sequencedmap.NewWithCapacity[string, *model.Schema](m.Len())
	for p := range m.Properties() {
		ctx.StartObject(p.Name)
		s, err := loadSchema(p.Value)
		if err = ctx.Report(err, p.Value.YAMLNode()); err != nil {
			ctx.EndObject()
			return nil, err
		}
		ctx.EndObject()

		if s != nil {
			out.Set(p.Name, s)
		}
	}
	return out, nil
}
