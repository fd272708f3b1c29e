package swagger

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/oasgraph/model"
)

// sections maps the top-level Swagger 2.0 collections to the component kind they hold.
var sections = map[string]model.ReferenceType{
	"definitions":         model.ReferenceTypeSchema,
	"parameters":          model.ReferenceTypeParameter,
	"responses":           model.ReferenceTypeResponse,
	"securityDefinitions": model.ReferenceTypeSecurityScheme,
}

// VersionService converts Swagger 2.0 $ref strings such as "#/definitions/Pet" or
// "common.yaml#/parameters/limit" into references.
type VersionService struct{}

// ConvertToReference implements parsenode.VersionService.
func (VersionService) ConvertToReference(ref string, t model.ReferenceType) (*model.Reference, error) {
	external, fragment, found := strings.Cut(ref, "#")
	if !found {
		return nil, fmt.Errorf("reference %q has no fragment", ref)
	}

	segments := strings.Split(strings.TrimPrefix(fragment, "/"), "/")
	if len(segments) != 2 || segments[1] == "" {
		return nil, fmt.Errorf("reference %q does not name a component", ref)
	}

	section, ok := sections[segments[0]]
	if !ok {
		return nil, fmt.Errorf("reference %q points into unsupported section %q", ref, segments[0])
	}
	if section != t && !(section == model.ReferenceTypeParameter && t == model.ReferenceTypeRequestBody) {
		return nil, fmt.Errorf("reference %q is a %s reference, expected %s", ref, section, t)
	}

	return &model.Reference{
		Type:             t,
		ID:               unescape(segments[1]),
		ExternalResource: external,
	}, nil
}

func unescape(token string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
}
