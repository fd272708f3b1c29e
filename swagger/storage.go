package swagger

import (
	"github.com/speakeasy-api/oasgraph/parsenode"
)

// Transient storage keys. Document entries use the nil scope; the others are scoped to the
// operation, parameter, response or security scheme being built.
const (
	keyHost           = "host"
	keyBasePath       = "basePath"
	keySchemes        = "schemes"
	keyGlobalConsumes = "globalConsumes"
	keyGlobalProduces = "globalProduces"
	keyServerFixups   = "serverFixups"

	keyConsumes        = "consumes"
	keyProduces        = "produces"
	keyBodyParameter   = "bodyParameter"
	keyFormParameters  = "formParameters"
	keyRequestContent  = "requestContent"
	keyResponseContent = "responseContent"

	keyParameterIn      = "in"
	keyCollectionFormat = "collectionFormat"
	keyResponseSchema   = "schema"
	keyResponseExamples = "examples"
	keySchemeType       = "type"
	keyFlow             = "flow"
	keyAuthorizationURL = "authorizationUrl"
	keyTokenURL         = "tokenUrl"
	keyScopes           = "scopes"
)

const (
	mediaTypeJSON      = "application/json"
	mediaTypeForm      = "application/x-www-form-urlencoded"
	mediaTypeMultipart = "multipart/form-data"
)

// contentFunc fills in request or response content once the media types that apply are known.
// mediaTypes is empty when neither the operation nor the document declared any.
type contentFunc func(mediaTypes []string)

func appendTemp[T any](ctx *parsenode.Context, key string, scope any, v T) {
	list, _ := parsenode.GetFromTempStorage[[]T](ctx, key, scope)
	ctx.SetTempStorage(key, append(list, v), scope)
}

// settleContent runs the content funcs registered under key for an operation when it declared its
// own media types, otherwise hands them to the document scope.
func settleContent(ctx *parsenode.Context, key string, scope any, mediaTypes []string) {
	pending, _ := parsenode.GetFromTempStorage[[]contentFunc](ctx, key, scope)
	for _, fn := range pending {
		if len(mediaTypes) > 0 {
			fn(mediaTypes)
			continue
		}
		appendTemp(ctx, key, nil, fn)
	}
}

// applyContent runs the document scope content funcs with the document's media types.
func applyContent(ctx *parsenode.Context, key string, mediaTypes []string) {
	pending, _ := parsenode.GetFromTempStorage[[]contentFunc](ctx, key, nil)
	for _, fn := range pending {
		fn(mediaTypes)
	}
}

func orDefault(mediaTypes []string, def string) []string {
	if len(mediaTypes) == 0 {
		return []string{def}
	}
	return mediaTypes
}

func stringList(n parsenode.Node) ([]string, error) {
	return parsenode.CreateSimpleList(n, parsenode.ScalarString)
}
