package swagger

import (
	"fmt"

	"github.com/speakeasy-api/oasgraph/fieldmap"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

var securitySchemeFields = fieldmap.FixedFieldMap[*model.SecurityScheme]{
	"description": stringField(func(s *model.SecurityScheme) *string { return &s.Description }),
	"name":        stringField(func(s *model.SecurityScheme) *string { return &s.Name }),
	"type": func(s *model.SecurityScheme, n parsenode.Node) error {
		return storeScalar(n, keySchemeType, s)
	},
	"in": func(s *model.SecurityScheme, n parsenode.Node) error {
		in, err := n.GetScalarValue()
		if err != nil {
			return err
		}
		location, ok := parameterLocations[in]
		if !ok || location == model.ParameterLocationPath {
			return fmt.Errorf("api key location must be query or header, got %q", in)
		}
		s.In = location
		return nil
	},
	"flow": func(s *model.SecurityScheme, n parsenode.Node) error {
		return storeScalar(n, keyFlow, s)
	},
	"authorizationUrl": func(s *model.SecurityScheme, n parsenode.Node) error {
		return storeScalar(n, keyAuthorizationURL, s)
	},
	"tokenUrl": func(s *model.SecurityScheme, n parsenode.Node) error {
		return storeScalar(n, keyTokenURL, s)
	},
	"scopes": func(s *model.SecurityScheme, n parsenode.Node) error {
		scopes, err := parsenode.CreateSimpleMap(n, parsenode.ScalarString)
		if err != nil {
			return err
		}
		n.Context().SetTempStorage(keyScopes, scopes, s)
		return nil
	},
}

// loadSecurityScheme reads a security definition. Swagger 2.0 basic schemes become http schemes
// and the single oauth2 flow is placed by its kind.
func loadSecurityScheme(m *parsenode.MapNode) (*model.SecurityScheme, error) {
	ctx := m.Context()

	s := &model.SecurityScheme{}
	defer ctx.ClearTempStorage(s)
	if err := fieldmap.ParseMap(m, s, securitySchemeFields, nil); err != nil {
		return nil, err
	}

	schemeType, _ := parsenode.GetFromTempStorage[string](ctx, keySchemeType, s)
	switch schemeType {
	case "basic":
		s.Type = model.SecuritySchemeTypeHTTP
		s.Scheme = "basic"
	case "apiKey":
		s.Type = model.SecuritySchemeTypeAPIKey
	case "oauth2":
		s.Type = model.SecuritySchemeTypeOAuth2
		flows, err := loadOAuthFlows(ctx, s)
		if err != nil {
			return nil, err
		}
		s.Flows = flows
	default:
		return nil, fmt.Errorf("unknown security scheme type %q", schemeType)
	}

	return s, nil
}

func loadOAuthFlows(ctx *parsenode.Context, s *model.SecurityScheme) (*model.OAuthFlows, error) {
	flow := &model.OAuthFlow{}
	flow.AuthorizationURL, _ = parsenode.GetFromTempStorage[string](ctx, keyAuthorizationURL, s)
	flow.TokenURL, _ = parsenode.GetFromTempStorage[string](ctx, keyTokenURL, s)
	flow.Scopes, _ = parsenode.GetFromTempStorage[*sequencedmap.Map[string, string]](ctx, keyScopes, s)

	flows := &model.OAuthFlows{}
	kind, _ := parsenode.GetFromTempStorage[string](ctx, keyFlow, s)
	switch kind {
	case "implicit":
		flows.Implicit = flow
	case "password":
		flows.Password = flow
	case "application":
		flows.ClientCredentials = flow
	case "accessCode":
		flows.AuthorizationCode = flow
	default:
		return nil, fmt.Errorf("unknown oauth2 flow %q", kind)
	}
	return flows, nil
}

// loadSecurityRequirement reads one alternative of a security requirement. The schemes are named,
// not declared, so each entry holds a placeholder for the scheme.
func loadSecurityRequirement(m *parsenode.MapNode) (*model.SecurityRequirement, error) {
	ctx := m.Context()

	req := &model.SecurityRequirement{}
	req.SetRootNode(m.YAMLNode())
	for p := range m.Properties() {
		ctx.StartObject(p.Name)
		scopes, err := stringList(p.Value)
		if err = ctx.Report(err, p.Value.YAMLNode()); err != nil {
			ctx.EndObject()
			return nil, err
		}
		ctx.EndObject()

		req.Entries = append(req.Entries, &model.SecurityRequirementEntry{
			Scheme: model.NewPlaceholder[model.SecurityScheme](&model.Reference{
				Type: model.ReferenceTypeSecurityScheme,
				ID:   p.Name,
			}),
			Scopes: scopes,
		})
	}
	return req, nil
}
