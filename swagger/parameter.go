package swagger

import (
	"fmt"
	"maps"

	"github.com/speakeasy-api/oasgraph/fieldmap"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"github.com/speakeasy-api/oasgraph/validation"
)

const (
	inBody     = "body"
	inFormData = "formData"
)

// parameterOwner says where a parameter is declared, which decides what happens to body and
// formData parameters.
type parameterOwner int

const (
	ownerOperation parameterOwner = iota
	ownerPathItem
	ownerComponents
)

var parameterLocations = map[string]model.ParameterLocation{
	"query":  model.ParameterLocationQuery,
	"header": model.ParameterLocationHeader,
	"path":   model.ParameterLocationPath,
}

var parameterFields = func() fieldmap.FixedFieldMap[*model.Parameter] {
	fields := schemaKeywordFields(parameterSchema)
	maps.Copy(fields, fieldmap.FixedFieldMap[*model.Parameter]{
		"name":            stringField(func(p *model.Parameter) *string { return &p.Name }),
		"description":     stringField(func(p *model.Parameter) *string { return &p.Description }),
		"required":        boolField(func(p *model.Parameter) *bool { return &p.Required }),
		"allowEmptyValue": boolField(func(p *model.Parameter) *bool { return &p.AllowEmptyValue }),
		"in": func(p *model.Parameter, n parsenode.Node) error {
			in, err := n.GetScalarValue()
			if err != nil {
				return err
			}
			if location, ok := parameterLocations[in]; ok {
				p.In = location
			} else if in != inBody && in != inFormData {
				return fmt.Errorf("unknown parameter location %q", in)
			}
			n.Context().SetTempStorage(keyParameterIn, in, p)
			return nil
		},
		"collectionFormat": func(p *model.Parameter, n parsenode.Node) error {
			return storeScalar(n, keyCollectionFormat, p)
		},
		"schema": func(p *model.Parameter, n parsenode.Node) error {
			schema, err := loadSchema(n)
			p.Schema = schema
			return err
		},
	})
	return fields
}()

func parameterSchema(p *model.Parameter) *model.Schema {
	if p.Schema == nil {
		p.Schema = &model.Schema{}
	}
	return p.Schema
}

// loadParameter reads a parameter declared by owner. Body and formData parameters are not returned:
// they are stashed under scope, the object owning them, to become a request body.
func loadParameter(m *parsenode.MapNode, owner parameterOwner, scope any) (*model.Parameter, error) {
	ctx := m.Context()

	p := &model.Parameter{}
	if err := fieldmap.ParseMap(m, p, parameterFields, nil); err != nil {
		return nil, err
	}
	in, _ := parsenode.GetFromTempStorage[string](ctx, keyParameterIn, p)
	collectionFormat, hasFormat := parsenode.GetFromTempStorage[string](ctx, keyCollectionFormat, p)
	ctx.ClearTempStorage(p)

	if in != inBody && (hasFormat || (p.Schema != nil && p.Schema.Type == "array")) {
		applyCollectionFormat(p, collectionFormat)
	}

	switch {
	case in == inBody && owner != ownerPathItem:
		ctx.SetTempStorage(keyBodyParameter, p, scope)
		return nil, nil
	case in == inFormData && owner == ownerOperation:
		appendTemp(ctx, keyFormParameters, scope, p)
		return nil, nil
	case in == inBody || in == inFormData:
		ctx.AddError(validation.SeverityWarning, validation.RuleValidationUnsupported, fmt.Errorf("%s parameter %q is only supported on operations", in, p.Name), m.YAMLNode())
		return nil, nil
	}

	return p, nil
}

// applyCollectionFormat maps a Swagger 2.0 collectionFormat onto a serialization style.
func applyCollectionFormat(p *model.Parameter, collectionFormat string) {
	explode := false
	switch collectionFormat {
	case "multi":
		p.Style = "form"
		explode = true
	case "ssv":
		p.Style = "spaceDelimited"
	case "pipes":
		p.Style = "pipeDelimited"
	default:
		p.Style = "form"
	}
	if p.In != model.ParameterLocationQuery {
		p.Style = "simple"
	}
	p.Explode = &explode
}

func parameterReference(owner parameterOwner, scope any) func(*parsenode.MapNode) (*model.Parameter, error) {
	return func(m *parsenode.MapNode) (*model.Parameter, error) {
		return parsenode.CreateReferenceable[model.Parameter](m, "parameter", model.ReferenceTypeParameter, func(m *parsenode.MapNode) (*model.Parameter, error) {
			return loadParameter(m, owner, scope)
		})
	}
}

// loadParameterComponents reads the top-level parameters. Body parameters are declared as request
// bodies under the same name, every other parameter as a parameter component.
func loadParameterComponents(n parsenode.Node, c *model.Components) error {
	m, err := n.CheckMapNode("parameters")
	if err != nil {
		return err
	}

	ctx := m.Context()
	if c.Parameters == nil {
		c.Parameters = sequencedmap.New[string, *model.Parameter]()
	}
	build := parameterReference(ownerComponents, c)

	for p := range m.Properties() {
		ctx.StartObject(p.Name)
		err := loadParameterComponent(c, p, build)
		if err = ctx.Report(err, p.Value.YAMLNode()); err != nil {
			ctx.EndObject()
			return err
		}
		ctx.EndObject()
	}
	return nil
}

func loadParameterComponent(c *model.Components, p parsenode.Property, build func(*parsenode.MapNode) (*model.Parameter, error)) error {
	m, err := p.Value.CheckMapNode(p.Name)
	if err != nil {
		return err
	}
	ctx := m.Context()

	param, err := build(m)
	if err != nil {
		return err
	}
	if param != nil {
		model.StampIdentity(param, model.ReferenceTypeParameter, p.Name)
		c.Parameters.Set(p.Name, param)
		return nil
	}

	body, ok := parsenode.GetFromTempStorage[*model.Parameter](ctx, keyBodyParameter, c)
	if !ok {
		return nil
	}
	ctx.ClearTempStorage(c)
	c.AddRequestBody(p.Name, requestBodyFromParameter(ctx, body, nil))
	return nil
}

// requestBodyFromParameter turns a body parameter into a request body whose content is filled in
// for each consumed media type once they are known.
func requestBodyFromParameter(ctx *parsenode.Context, body *model.Parameter, scope any) *model.RequestBody {
	rb := &model.RequestBody{
		Description: body.Description,
		Required:    body.Required,
		Content:     sequencedmap.New[string, *model.MediaType](),
	}
	rb.Extended = body.Extended
	rb.SetRootNode(body.GetRootNode())

	appendTemp(ctx, keyRequestContent, scope, contentFunc(func(mediaTypes []string) {
		for _, mediaType := range orDefault(mediaTypes, mediaTypeJSON) {
			rb.Content.Set(mediaType, &model.MediaType{Schema: body.Schema})
		}
	}))
	return rb
}

// requestBodyFromForm turns formData parameters into a request body with one object schema whose
// properties are the parameters. Only form media types apply; without any the body is multipart
// when a parameter is a file and urlencoded otherwise.
func requestBodyFromForm(ctx *parsenode.Context, params []*model.Parameter, scope any) *model.RequestBody {
	schema := &model.Schema{
		Type:       "object",
		Properties: sequencedmap.NewWithCapacity[string, *model.Schema](len(params)),
	}
	multipart := false
	for _, p := range params {
		property := parameterSchema(p)
		if property.Type == "file" {
			property.Type = "string"
			property.Format = "binary"
			multipart = true
		}
		if property.Description == "" {
			property.Description = p.Description
		}
		schema.Properties.Set(p.Name, property)
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	rb := &model.RequestBody{
		Required: len(schema.Required) > 0,
		Content:  sequencedmap.New[string, *model.MediaType](),
	}
	appendTemp(ctx, keyRequestContent, scope, contentFunc(func(mediaTypes []string) {
		var formTypes []string
		for _, mediaType := range mediaTypes {
			if mediaType == mediaTypeForm || mediaType == mediaTypeMultipart {
				formTypes = append(formTypes, mediaType)
			}
		}
		def := mediaTypeForm
		if multipart {
			def = mediaTypeMultipart
		}
		for _, mediaType := range orDefault(formTypes, def) {
			rb.Content.Set(mediaType, &model.MediaType{Schema: schema})
		}
	}))
	return rb
}
