package swagger

import (
	"maps"

	"github.com/speakeasy-api/oasgraph/extensions"
	"github.com/speakeasy-api/oasgraph/fieldmap"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"gopkg.in/yaml.v3"
)

var responseFields = fieldmap.FixedFieldMap[*model.Response]{
	"description": stringField(func(r *model.Response) *string { return &r.Description }),
	"headers": func(r *model.Response, n parsenode.Node) error {
		headers, err := parsenode.CreateMap(n, loadHeader)
		r.Headers = headers
		return err
	},
	"schema": func(r *model.Response, n parsenode.Node) error {
		schema, err := loadSchema(n)
		if err != nil {
			return err
		}
		n.Context().SetTempStorage(keyResponseSchema, schema, r)
		return nil
	},
	"examples": func(r *model.Response, n parsenode.Node) error {
		m, err := n.CheckMapNode("examples")
		if err != nil {
			return err
		}
		examples := sequencedmap.NewWithCapacity[string, *yaml.Node](m.Len())
		for p := range m.Properties() {
			examples.Set(p.Name, p.Value.CreateAny())
		}
		n.Context().SetTempStorage(keyResponseExamples, examples, r)
		return nil
	},
}

var headerFields = func() fieldmap.FixedFieldMap[*model.Header] {
	fields := schemaKeywordFields(func(h *model.Header) *model.Schema {
		if h.Schema == nil {
			h.Schema = &model.Schema{}
		}
		return h.Schema
	})
	maps.Copy(fields, fieldmap.FixedFieldMap[*model.Header]{
		"description": stringField(func(h *model.Header) *string { return &h.Description }),
		// headers are always serialized with the simple style
		"collectionFormat": func(_ *model.Header, _ parsenode.Node) error { return nil },
	})
	return fields
}()

// loadResponses reads the responses of op, keeping status codes in declaration order.
func loadResponses(n parsenode.Node, op *model.Operation) (*model.Responses, error) {
	m, err := n.CheckMapNode("responses")
	if err != nil {
		return nil, err
	}

	responses := model.NewResponses()
	patterns := fieldmap.PatternFieldMap[*model.Responses]{
		{
			Match: isNotExtension,
			Handle: func(rs *model.Responses, status string, n parsenode.Node) error {
				r, err := parsenode.CreateReferenceable[model.Response](n, status, model.ReferenceTypeResponse, func(m *parsenode.MapNode) (*model.Response, error) {
					return loadResponse(m, op)
				})
				if err != nil {
					return err
				}
				rs.Set(status, r)
				return nil
			},
		},
	}
	if err := fieldmap.ParseMap(m, responses, nil, patterns); err != nil {
		return nil, err
	}
	return responses, nil
}

// loadResponse reads a response. Its content depends on the produces list of the operation
// (scope) or of the document, so it is registered to be filled in later; a nil scope is the document.
func loadResponse(m *parsenode.MapNode, scope any) (*model.Response, error) {
	ctx := m.Context()

	r := &model.Response{}
	if err := fieldmap.ParseMap(m, r, responseFields, nil); err != nil {
		return nil, err
	}
	schema, hasSchema := parsenode.GetFromTempStorage[*model.Schema](ctx, keyResponseSchema, r)
	examples, hasExamples := parsenode.GetFromTempStorage[*sequencedmap.Map[string, *yaml.Node]](ctx, keyResponseExamples, r)
	ctx.ClearTempStorage(r)

	if !hasSchema && !hasExamples {
		return r, nil
	}

	appendTemp(ctx, keyResponseContent, scope, contentFunc(func(mediaTypes []string) {
		if hasSchema {
			for _, mediaType := range orDefault(mediaTypes, mediaTypeJSON) {
				r.CreateContent(mediaType, func(mt *model.MediaType) {
					mt.Schema = schema
				})
			}
		}
		for mediaType, example := range examples.All() {
			mt, ok := r.Content.Get(mediaType)
			if !ok {
				mt = r.CreateContent(mediaType, nil)
			}
			mt.Example = example
		}
	}))
	return r, nil
}

func loadHeader(m *parsenode.MapNode) (*model.Header, error) {
	h := &model.Header{}
	if err := fieldmap.ParseMap(m, h, headerFields, nil); err != nil {
		return nil, err
	}
	return h, nil
}

func isNotExtension(key string) bool {
	return !extensions.IsExtension(key)
}
