package resolve

import (
	"slices"
	"strconv"

	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

func (r *resolver) VisitPathItem(item *model.PathItem) {
	resolveList(r, item.Parameters, r.root, "parameters")
}

func (r *resolver) VisitOperation(op *model.Operation) {
	resolveList(r, op.Parameters, r.root, "parameters")
	resolveSlot(r, &op.RequestBody, r.root, "requestBody")
}

func (r *resolver) VisitResponses(responses *model.Responses) {
	resolveMap(r, responses.Map, r.root)
}

func (r *resolver) VisitParameter(param *model.Parameter) {
	resolveSlot(r, &param.Schema, r.originOf(param), "schema")
}

func (r *resolver) VisitRequestBody(body *model.RequestBody) {
	from := r.originOf(body)
	for mediaType := range body.Content.Values() {
		r.inherit(mediaType, from)
	}
}

func (r *resolver) VisitResponse(response *model.Response) {
	from := r.originOf(response)
	resolveMap(r, response.Headers, from, "headers")
	for mediaType := range response.Content.Values() {
		r.inherit(mediaType, from)
	}
}

func (r *resolver) VisitMediaType(mediaType *model.MediaType) {
	resolveSlot(r, &mediaType.Schema, r.originOf(mediaType), "schema")
}

func (r *resolver) VisitHeader(header *model.Header) {
	resolveSlot(r, &header.Schema, r.originOf(header), "schema")
}

func (r *resolver) VisitSchema(schema *model.Schema) {
	from := r.originOf(schema)
	resolveMap(r, schema.Properties, from, "properties")
	resolveSlot(r, &schema.Items, from, "items")
	resolveList(r, schema.AllOf, from, "allOf")
	resolveSlot(r, &schema.AdditionalProperties, from, "additionalProperties")
}

// VisitComponents binds aliases, components declared as a reference to another component.
func (r *resolver) VisitComponents(c *model.Components) {
	resolveMap(r, c.Schemas, r.root, string(model.ReferenceTypeSchema))
	resolveMap(r, c.Responses, r.root, string(model.ReferenceTypeResponse))
	resolveMap(r, c.Parameters, r.root, string(model.ReferenceTypeParameter))
	resolveMap(r, c.RequestBodies, r.root, string(model.ReferenceTypeRequestBody))
	resolveMap(r, c.Headers, r.root, string(model.ReferenceTypeHeader))
	resolveMap(r, c.SecuritySchemes, r.root, string(model.ReferenceTypeSecurityScheme))
}

func (r *resolver) VisitSecurityRequirement(req *model.SecurityRequirement) {
	for _, entry := range req.Entries {
		if entry == nil || entry.Scheme == nil {
			continue
		}
		name := ""
		if ref := entry.Scheme.GetReference(); ref != nil {
			name = ref.ID
		}
		resolveSlot(r, &entry.Scheme, r.root, name)
	}
}

func resolveList[T any, P interface {
	*T
	model.Referenceable
}](r *resolver, list []P, from *origin, field string) {
	for i := range list {
		resolveSlot(r, &list[i], from, field, strconv.Itoa(i))
	}
}

func resolveMap[T any, P interface {
	*T
	model.Referenceable
}](r *resolver, m *sequencedmap.Map[string, P], from *origin, segments ...string) {
	for key, v := range m.All() {
		slot := v
		resolveSlot(r, &slot, from, append(slices.Clip(segments), key)...)
		if slot != v {
			m.Set(key, slot)
		}
	}
}
