package walk

import (
	"strconv"

	"github.com/speakeasy-api/oasgraph/extensions"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

// Walker performs one pass over a document. Every object is marked visited before its hook
// runs and is never entered again in the same pass, so reference cycles terminate.
type Walker struct {
	visitor Visitor
	visited map[any]struct{}
}

// New creates a Walker dispatching to visitor.
func New(visitor Visitor) *Walker {
	return &Walker{
		visitor: visitor,
		visited: map[any]struct{}{},
	}
}

// Walk runs a single pass of visitor over doc.
func Walk(doc *model.Document, visitor Visitor) {
	New(visitor).Walk(doc)
}

// Walk traverses doc. Calling Walk again on the same Walker continues the pass: objects visited earlier are skipped.
func (w *Walker) Walk(doc *model.Document) {
	if doc == nil || !w.mark(doc) {
		return
	}

	w.visitor.VisitDocument(doc)

	w.walkInfo(doc.Info)
	walkList(w, "servers", doc.Servers, w.walkServer)
	w.walkPaths(doc.Paths)
	w.walkComponents(doc.Components)
	walkList(w, "security", doc.SecurityRequirements, w.walkSecurityRequirement)
	walkList(w, "tags", doc.Tags, w.walkTag)
	w.walkExternalDocs(doc.ExternalDocs)
	w.walkExtensions(doc.Extensions)
}

// Visited reports whether obj has been presented to the visitor in this pass.
func (w *Walker) Visited(obj any) bool {
	_, ok := w.visited[obj]
	return ok
}

func (w *Walker) mark(obj any) bool {
	if _, ok := w.visited[obj]; ok {
		return false
	}
	w.visited[obj] = struct{}{}
	return true
}

func (w *Walker) enter(segment string, fn func()) {
	w.visitor.Enter(segment)
	fn()
	w.visitor.Leave()
}

func (w *Walker) walkInfo(info *model.Info) {
	if info == nil {
		return
	}
	w.enter("info", func() {
		if !w.mark(info) {
			return
		}
		w.visitor.VisitInfo(info)

		if info.Contact != nil {
			w.enter("contact", func() {
				if w.mark(info.Contact) {
					w.visitor.VisitContact(info.Contact)
					w.walkExtensions(info.Contact.Extensions)
				}
			})
		}
		if info.License != nil {
			w.enter("license", func() {
				if w.mark(info.License) {
					w.visitor.VisitLicense(info.License)
					w.walkExtensions(info.License.Extensions)
				}
			})
		}
		w.walkExtensions(info.Extensions)
	})
}

func (w *Walker) walkServer(server *model.Server) {
	if !w.mark(server) {
		return
	}
	w.visitor.VisitServer(server)
	w.walkExtensions(server.Extensions)
}

func (w *Walker) walkPaths(paths *model.Paths) {
	if paths == nil {
		return
	}
	w.enter("paths", func() {
		if !w.mark(paths) {
			return
		}
		w.visitor.VisitPaths(paths)

		for path, item := range paths.All() {
			if item == nil {
				continue
			}
			w.enter(path, func() { w.walkPathItem(item) })
		}
		w.walkExtensions(paths.Extensions)
	})
}

func (w *Walker) walkPathItem(item *model.PathItem) {
	if !w.mark(item) {
		return
	}
	w.visitor.VisitPathItem(item)

	walkList(w, "servers", item.Servers, w.walkServer)
	walkList(w, "parameters", item.Parameters, w.walkParameter)
	for method, op := range item.Operations.All() {
		if op == nil {
			continue
		}
		w.enter(string(method), func() { w.walkOperation(op) })
	}
	w.walkExtensions(item.Extensions)
}

func (w *Walker) walkOperation(op *model.Operation) {
	if !w.mark(op) {
		return
	}
	w.visitor.VisitOperation(op)

	walkList(w, "parameters", op.Parameters, w.walkParameter)
	if op.RequestBody != nil {
		w.enter("requestBody", func() { w.walkRequestBody(op.RequestBody) })
	}
	w.walkResponses(op.Responses)
	walkList(w, "security", op.Security, w.walkSecurityRequirement)
	walkList(w, "servers", op.Servers, w.walkServer)
	w.walkExternalDocs(op.ExternalDocs)
	w.walkExtensions(op.Extensions)
}

func (w *Walker) walkParameter(param *model.Parameter) {
	if !w.mark(param) {
		return
	}
	w.visitor.VisitParameter(param)

	w.walkSchemaField("schema", param.Schema)
	w.walkExtensions(param.Extensions)
}

func (w *Walker) walkRequestBody(body *model.RequestBody) {
	if !w.mark(body) {
		return
	}
	w.visitor.VisitRequestBody(body)

	w.walkContent(body.Content)
	w.walkExtensions(body.Extensions)
}

func (w *Walker) walkResponses(responses *model.Responses) {
	if responses == nil {
		return
	}
	w.enter("responses", func() {
		if !w.mark(responses) {
			return
		}
		w.visitor.VisitResponses(responses)

		for status, response := range responses.All() {
			if response == nil {
				continue
			}
			w.enter(status, func() { w.walkResponse(response) })
		}
		w.walkExtensions(responses.Extensions)
	})
}

func (w *Walker) walkResponse(response *model.Response) {
	if !w.mark(response) {
		return
	}
	w.visitor.VisitResponse(response)

	walkMap(w, "headers", response.Headers, w.walkHeader)
	w.walkContent(response.Content)
	w.walkExtensions(response.Extensions)
}

func (w *Walker) walkContent(content *sequencedmap.Map[string, *model.MediaType]) {
	walkMap(w, "content", content, w.walkMediaType)
}

func (w *Walker) walkMediaType(mediaType *model.MediaType) {
	if !w.mark(mediaType) {
		return
	}
	w.visitor.VisitMediaType(mediaType)

	w.walkSchemaField("schema", mediaType.Schema)
	w.walkExtensions(mediaType.Extensions)
}

func (w *Walker) walkHeader(header *model.Header) {
	if !w.mark(header) {
		return
	}
	w.visitor.VisitHeader(header)

	w.walkSchemaField("schema", header.Schema)
	w.walkExtensions(header.Extensions)
}

func (w *Walker) walkSchemaField(field string, schema *model.Schema) {
	if schema == nil {
		return
	}
	w.enter(field, func() { w.walkSchema(schema) })
}

func (w *Walker) walkSchema(schema *model.Schema) {
	if !w.mark(schema) {
		return
	}
	w.visitor.VisitSchema(schema)

	walkMap(w, "properties", schema.Properties, w.walkSchema)
	w.walkSchemaField("items", schema.Items)
	walkList(w, "allOf", schema.AllOf, w.walkSchema)
	w.walkSchemaField("additionalProperties", schema.AdditionalProperties)
	w.walkExternalDocs(schema.ExternalDocs)
	w.walkExtensions(schema.Extensions)
}

func (w *Walker) walkComponents(components *model.Components) {
	if components == nil {
		return
	}
	w.enter("components", func() {
		if !w.mark(components) {
			return
		}
		w.visitor.VisitComponents(components)

		walkMap(w, string(model.ReferenceTypeSchema), components.Schemas, w.walkSchema)
		walkMap(w, string(model.ReferenceTypeResponse), components.Responses, w.walkResponse)
		walkMap(w, string(model.ReferenceTypeParameter), components.Parameters, w.walkParameter)
		walkMap(w, string(model.ReferenceTypeRequestBody), components.RequestBodies, w.walkRequestBody)
		walkMap(w, string(model.ReferenceTypeHeader), components.Headers, w.walkHeader)
		walkMap(w, string(model.ReferenceTypeSecurityScheme), components.SecuritySchemes, w.walkSecurityScheme)
		w.walkExtensions(components.Extensions)
	})
}

func (w *Walker) walkSecurityScheme(scheme *model.SecurityScheme) {
	if !w.mark(scheme) {
		return
	}
	w.visitor.VisitSecurityScheme(scheme)

	w.walkExtensions(scheme.Extensions)
}

func (w *Walker) walkSecurityRequirement(req *model.SecurityRequirement) {
	if !w.mark(req) {
		return
	}
	w.visitor.VisitSecurityRequirement(req)

	for _, entry := range req.Entries {
		if entry == nil || entry.Scheme == nil {
			continue
		}
		name := ""
		if ref := entry.Scheme.GetReference(); ref != nil {
			name = ref.ID
		}
		w.enter(name, func() { w.walkSecurityScheme(entry.Scheme) })
	}
}

func (w *Walker) walkTag(tag *model.Tag) {
	if !w.mark(tag) {
		return
	}
	w.visitor.VisitTag(tag)

	w.walkExternalDocs(tag.ExternalDocs)
	w.walkExtensions(tag.Extensions)
}

func (w *Walker) walkExternalDocs(docs *model.ExternalDocs) {
	if docs == nil {
		return
	}
	w.enter("externalDocs", func() {
		if !w.mark(docs) {
			return
		}
		w.visitor.VisitExternalDocs(docs)
		w.walkExtensions(docs.Extensions)
	})
}

func (w *Walker) walkExtensions(ext *extensions.Extensions) {
	if ext.Len() == 0 || !w.mark(ext) {
		return
	}
	w.visitor.VisitExtensions(ext)
}

// walkList descends into field and walks each non-nil element under its index.
// The slice is read after the parent's hook ran, and each element is re-read by index
// so hooks replacing elements are honoured.
func walkList[T any](w *Walker, field string, list []*T, walk func(*T)) {
	if len(list) == 0 {
		return
	}
	w.enter(field, func() {
		for i := range list {
			if list[i] == nil {
				continue
			}
			w.enter(strconv.Itoa(i), func() { walk(list[i]) })
		}
	})
}

func walkMap[T any](w *Walker, field string, m *sequencedmap.Map[string, *T], walk func(*T)) {
	if m.Len() == 0 {
		return
	}
	w.enter(field, func() {
		for key, v := range m.All() {
			if v == nil {
				continue
			}
			w.enter(key, func() { walk(v) })
		}
	})
}
