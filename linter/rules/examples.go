package rules

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsValidator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/speakeasy-api/oasgraph/internal/yamljson"
	"github.com/speakeasy-api/oasgraph/linter"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/walk"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const exampleSchemaURL = "example-schema.json"

var defaultPrinter = message.NewPrinter(language.English)

// SchemaExampleValidRule validates the example of every component schema against the schema.
type SchemaExampleValidRule struct{}

func (r *SchemaExampleValidRule) ID() string       { return RuleSchemaExampleValid }
func (r *SchemaExampleValidRule) Category() string { return "schemas" }
func (r *SchemaExampleValidRule) Description() string {
	return "Examples of component schemas must be valid against the schema they belong to."
}
func (r *SchemaExampleValidRule) DefaultSeverity() validation.Severity {
	return validation.SeverityWarning
}

func (r *SchemaExampleValidRule) Run(ctx context.Context, docInfo *linter.DocumentInfo, config *linter.RuleConfig) []error {
	doc := docInfo.Document
	if doc == nil || doc.Components == nil {
		return nil
	}

	var errs []error
	for name, schema := range doc.Components.Schemas.All() {
		if ctx.Err() != nil {
			return errs
		}
		if schema == nil || schema.IsUnresolved() || schema.Example == nil {
			continue
		}

		location := "#/components/schemas/" + walk.EscapeSegment(name) + "/example"
		for _, err := range validateExample(schema, schema.Example) {
			errs = append(errs, newError(r, config, docInfo, err, location, exampleNode{schema.Example}))
		}
	}
	return errs
}

// exampleNode positions a diagnostic at the example value.
type exampleNode struct {
	node *yaml.Node
}

func (e exampleNode) GetRootNode() *yaml.Node  { return e.node }
func (e exampleNode) SetRootNode(_ *yaml.Node) {}

// validateExample returns one error per failed leaf assertion of the example.
func validateExample(schema *model.Schema, example *yaml.Node) []error {
	compiled, err := compileSchema(schema)
	if err != nil {
		return []error{fmt.Errorf("schema cannot be compiled: %w", err)}
	}

	var buf bytes.Buffer
	if err := yamljson.Encode(example, 0, &buf); err != nil {
		return []error{fmt.Errorf("example is not valid json: %w", err)}
	}
	instance, err := jsValidator.UnmarshalJSON(&buf)
	if err != nil {
		return []error{fmt.Errorf("example is not valid json: %w", err)}
	}

	err = compiled.Validate(instance)
	if err == nil {
		return nil
	}

	var validationErr *jsValidator.ValidationError
	if !errors.As(err, &validationErr) {
		return []error{fmt.Errorf("example invalid: %w", err)}
	}
	return rootCauses(validationErr)
}

func rootCauses(err *jsValidator.ValidationError) []error {
	if len(err.Causes) == 0 {
		at := "example"
		if len(err.InstanceLocation) > 0 {
			at = "example field " + strings.Join(err.InstanceLocation, ".")
		}
		return []error{fmt.Errorf("%s %s", at, err.ErrorKind.LocalizedString(defaultPrinter))}
	}

	var errs []error
	for _, cause := range err.Causes {
		errs = append(errs, rootCauses(cause)...)
	}
	return errs
}

func compileSchema(schema *model.Schema) (*jsValidator.Schema, error) {
	doc, err := jsonSchema(schema, map[*model.Schema]struct{}{})
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	resource, err := jsValidator.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	c := jsValidator.NewCompiler()
	if err := c.AddResource(exampleSchemaURL, resource); err != nil {
		return nil, err
	}
	return c.Compile(exampleSchemaURL)
}

// jsonSchema renders schema as a JSON Schema 2020-12 document. Unresolved references and
// recursive occurrences of a schema already being rendered accept any value.
func jsonSchema(schema *model.Schema, active map[*model.Schema]struct{}) (*sequencedmap.Map[string, any], error) {
	out := sequencedmap.New[string, any]()
	if schema == nil || schema.IsUnresolved() {
		return out, nil
	}
	if _, ok := active[schema]; ok {
		return out, nil
	}
	active[schema] = struct{}{}
	defer delete(active, schema)

	switch {
	case schema.Type == "" || schema.Type == "file":
	case schema.Nullable:
		out.Set("type", []string{schema.Type, "null"})
	default:
		out.Set("type", schema.Type)
	}

	if schema.Properties.Len() > 0 {
		properties := sequencedmap.New[string, any]()
		for name, property := range schema.Properties.All() {
			p, err := jsonSchema(property, active)
			if err != nil {
				return nil, err
			}
			properties.Set(name, p)
		}
		out.Set("properties", properties)
	}
	if len(schema.Required) > 0 {
		out.Set("required", schema.Required)
	}
	switch {
	case schema.AdditionalProperties != nil:
		additional, err := jsonSchema(schema.AdditionalProperties, active)
		if err != nil {
			return nil, err
		}
		out.Set("additionalProperties", additional)
	case schema.AdditionalPropertiesAllowed != nil:
		out.Set("additionalProperties", *schema.AdditionalPropertiesAllowed)
	}
	if schema.Items != nil {
		items, err := jsonSchema(schema.Items, active)
		if err != nil {
			return nil, err
		}
		out.Set("items", items)
	}
	if len(schema.AllOf) > 0 {
		allOf := make([]any, 0, len(schema.AllOf))
		for _, s := range schema.AllOf {
			sub, err := jsonSchema(s, active)
			if err != nil {
				return nil, err
			}
			allOf = append(allOf, sub)
		}
		out.Set("allOf", allOf)
	}

	setNumber(out, "multipleOf", schema.MultipleOf)
	setBound(out, "maximum", "exclusiveMaximum", schema.Maximum, schema.ExclusiveMaximum)
	setBound(out, "minimum", "exclusiveMinimum", schema.Minimum, schema.ExclusiveMinimum)
	setNumber(out, "maxLength", schema.MaxLength)
	setNumber(out, "minLength", schema.MinLength)
	setNumber(out, "maxItems", schema.MaxItems)
	setNumber(out, "minItems", schema.MinItems)
	setNumber(out, "maxProperties", schema.MaxProperties)
	setNumber(out, "minProperties", schema.MinProperties)
	if schema.Pattern != "" {
		out.Set("pattern", schema.Pattern)
	}
	if schema.UniqueItems {
		out.Set("uniqueItems", true)
	}

	if len(schema.Enum) > 0 {
		enum := make([]any, 0, len(schema.Enum)+1)
		for _, n := range schema.Enum {
			v, err := yamljson.Value(n)
			if err != nil {
				return nil, err
			}
			enum = append(enum, v)
		}
		if schema.Nullable {
			enum = append(enum, nil)
		}
		out.Set("enum", enum)
	}

	return out, nil
}

func setNumber[T float64 | int64](out *sequencedmap.Map[string, any], key string, v *T) {
	if v != nil {
		out.Set(key, *v)
	}
}

// setBound writes a Swagger style boolean exclusive bound as its 2020-12 numeric form.
func setBound(out *sequencedmap.Map[string, any], key, exclusiveKey string, v *float64, exclusive bool) {
	if v == nil {
		return
	}
	if exclusive {
		out.Set(exclusiveKey, *v)
		return
	}
	out.Set(key, *v)
}
