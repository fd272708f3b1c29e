// Package walk traverses a model.Document depth first, presenting each reachable object to a Visitor once.
package walk

import (
	"strings"

	"github.com/speakeasy-api/oasgraph/extensions"
	"github.com/speakeasy-api/oasgraph/model"
)

// Visitor receives a callback per model object. Enter and Leave bracket every descent so a
// visitor can track where it is. Visit hooks run before the walker reads the object's children,
// so a hook may replace them.
type Visitor interface {
	Enter(segment string)
	Leave()

	VisitDocument(doc *model.Document)
	VisitInfo(info *model.Info)
	VisitContact(contact *model.Contact)
	VisitLicense(license *model.License)
	VisitServer(server *model.Server)
	VisitPaths(paths *model.Paths)
	VisitPathItem(item *model.PathItem)
	VisitOperation(op *model.Operation)
	VisitParameter(param *model.Parameter)
	VisitRequestBody(body *model.RequestBody)
	VisitResponses(responses *model.Responses)
	VisitResponse(response *model.Response)
	VisitMediaType(mediaType *model.MediaType)
	VisitHeader(header *model.Header)
	VisitSchema(schema *model.Schema)
	VisitComponents(components *model.Components)
	VisitSecurityScheme(scheme *model.SecurityScheme)
	VisitSecurityRequirement(req *model.SecurityRequirement)
	VisitTag(tag *model.Tag)
	VisitExternalDocs(docs *model.ExternalDocs)
	VisitExtensions(ext *extensions.Extensions)
}

// VisitorBase tracks the current location and implements every hook as a no-op.
// Embed it and override the hooks of interest.
type VisitorBase struct {
	path []string
}

var _ Visitor = (*VisitorBase)(nil)

func (v *VisitorBase) Enter(segment string) {
	v.path = append(v.path, segment)
}

func (v *VisitorBase) Leave() {
	if len(v.path) > 0 {
		v.path = v.path[:len(v.path)-1]
	}
}

// Location returns the current position as a JSON pointer fragment, e.g. "#/paths/~1pets/get".
func (v *VisitorBase) Location() string {
	var sb strings.Builder
	sb.WriteString("#")
	for _, segment := range v.path {
		sb.WriteString("/")
		sb.WriteString(EscapeSegment(segment))
	}
	return sb.String()
}

// CurrentKey returns the innermost segment, e.g. the path template while visiting a PathItem.
func (v *VisitorBase) CurrentKey() string {
	if len(v.path) == 0 {
		return ""
	}
	return v.path[len(v.path)-1]
}

// Path returns a copy of the current segments.
func (v *VisitorBase) Path() []string {
	return append([]string(nil), v.path...)
}

func (v *VisitorBase) VisitDocument(*model.Document) {}
func (v *VisitorBase) VisitInfo(*model.Info) {}
func (v *VisitorBase) VisitContact(*model.Contact) {}
func (v *VisitorBase) VisitLicense(*model.License) {}
func (v *VisitorBase) VisitServer(*model.Server) {}
func (v *VisitorBase) VisitPaths(*model.Paths) {}
func (v *VisitorBase) VisitPathItem(*model.PathItem) {}
func (v *VisitorBase) VisitOperation(*model.Operation) {}
func (v *VisitorBase) VisitParameter(*model.Parameter) {}
func (v *VisitorBase) VisitRequestBody(*model.RequestBody) {}
func (v *VisitorBase) VisitResponses(*model.Responses) {}
func (v *VisitorBase) VisitResponse(*model.Response) {}
func (v *VisitorBase) VisitMediaType(*model.MediaType) {}
func (v *VisitorBase) VisitHeader(*model.Header) {}
func (v *VisitorBase) VisitSchema(*model.Schema) {}
func (v *VisitorBase) VisitComponents(*model.Components) {}
func (v *VisitorBase) VisitSecurityScheme(*model.SecurityScheme) {}
func (v *VisitorBase) VisitSecurityRequirement(*model.SecurityRequirement) {}
func (v *VisitorBase) VisitTag(*model.Tag) {}
func (v *VisitorBase) VisitExternalDocs(*model.ExternalDocs) {}
func (v *VisitorBase) VisitExtensions(*extensions.Extensions) {}

// EscapeSegment escapes a location segment as a JSON pointer token.
func EscapeSegment(segment string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(segment)
}
