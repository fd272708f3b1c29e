package walk

import (
	"github.com/speakeasy-api/oasgraph/extensions"
	"github.com/speakeasy-api/oasgraph/model"
)

type multi []Visitor

// Multi composes visitors so they share one traversal. Hooks run in argument order.
func Multi(visitors ...Visitor) Visitor {
	return multi(visitors)
}

func (m multi) Enter(segment string) {
	for _, v := range m {
		v.Enter(segment)
	}
}

func (m multi) Leave() {
	for _, v := range m {
		v.Leave()
	}
}

func (m multi) VisitDocument(doc *model.Document) {
	for _, v := range m {
		v.VisitDocument(doc)
	}
}

func (m multi) VisitInfo(info *model.Info) {
	for _, v := range m {
		v.VisitInfo(info)
	}
}

func (m multi) VisitContact(contact *model.Contact) {
	for _, v := range m {
		v.VisitContact(contact)
	}
}

func (m multi) VisitLicense(license *model.License) {
	for _, v := range m {
		v.VisitLicense(license)
	}
}

func (m multi) VisitServer(server *model.Server) {
	for _, v := range m {
		v.VisitServer(server)
	}
}

func (m multi) VisitPaths(paths *model.Paths) {
	for _, v := range m {
		v.VisitPaths(paths)
	}
}

func (m multi) VisitPathItem(item *model.PathItem) {
	for _, v := range m {
		v.VisitPathItem(item)
	}
}

func (m multi) VisitOperation(op *model.Operation) {
	for _, v := range m {
		v.VisitOperation(op)
	}
}

func (m multi) VisitParameter(param *model.Parameter) {
	for _, v := range m {
		v.VisitParameter(param)
	}
}

func (m multi) VisitRequestBody(body *model.RequestBody) {
	for _, v := range m {
		v.VisitRequestBody(body)
	}
}

func (m multi) VisitResponses(responses *model.Responses) {
	for _, v := range m {
		v.VisitResponses(responses)
	}
}

func (m multi) VisitResponse(response *model.Response) {
	for _, v := range m {
		v.VisitResponse(response)
	}
}

func (m multi) VisitMediaType(mediaType *model.MediaType) {
	for _, v := range m {
		v.VisitMediaType(mediaType)
	}
}

func (m multi) VisitHeader(header *model.Header) {
	for _, v := range m {
		v.VisitHeader(header)
	}
}

func (m multi) VisitSchema(schema *model.Schema) {
	for _, v := range m {
		v.VisitSchema(schema)
	}
}

func (m multi) VisitComponents(components *model.Components) {
	for _, v := range m {
		v.VisitComponents(components)
	}
}

func (m multi) VisitSecurityScheme(scheme *model.SecurityScheme) {
	for _, v := range m {
		v.VisitSecurityScheme(scheme)
	}
}

func (m multi) VisitSecurityRequirement(req *model.SecurityRequirement) {
	for _, v := range m {
		v.VisitSecurityRequirement(req)
	}
}

func (m multi) VisitTag(tag *model.Tag) {
	for _, v := range m {
		v.VisitTag(tag)
	}
}

func (m multi) VisitExternalDocs(docs *model.ExternalDocs) {
	for _, v := range m {
		v.VisitExternalDocs(docs)
	}
}

func (m multi) VisitExtensions(ext *extensions.Extensions) {
	for _, v := range m {
		v.VisitExtensions(ext)
	}
}
