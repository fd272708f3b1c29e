// Package swagger reads Swagger 2.0 documents into the version neutral model.
//
// The package is a set of field tables for the fieldmap engine plus the post-processing that
// combines sibling fields Swagger 2.0 spreads over several keys: host, basePath and schemes become
// servers, body and formData parameters become request bodies, and schema, examples and produces
// become response content.
package swagger

import (
	"strings"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/fieldmap"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
)

// Version is the document version this package reads.
const Version = "2.0"

// ErrUnsupportedVersion is returned for documents that are not Swagger 2.0.
const ErrUnsupportedVersion = errors.Error("unsupported document version")

const (
	defaultHost     = "example.org/"
	defaultBasePath = "/"
)

var documentFields = fieldmap.FixedFieldMap[*model.Document]{
	// already checked by Load
	"swagger": func(_ *model.Document, _ parsenode.Node) error { return nil },
	"info": func(d *model.Document, n parsenode.Node) error {
		info, err := loadInfo(n)
		d.Info = info
		return err
	},
	"host": func(_ *model.Document, n parsenode.Node) error {
		return storeScalar(n, keyHost, nil)
	},
	"basePath": func(_ *model.Document, n parsenode.Node) error {
		return storeScalar(n, keyBasePath, nil)
	},
	"schemes": func(_ *model.Document, n parsenode.Node) error {
		return storeList(n, keySchemes, nil)
	},
	"consumes": func(_ *model.Document, n parsenode.Node) error {
		return storeList(n, keyGlobalConsumes, nil)
	},
	"produces": func(_ *model.Document, n parsenode.Node) error {
		return storeList(n, keyGlobalProduces, nil)
	},
	"paths": func(d *model.Document, n parsenode.Node) error {
		paths, err := loadPaths(n)
		if err != nil {
			return err
		}
		d.Paths = paths
		return nil
	},
	"definitions": func(d *model.Document, n parsenode.Node) error {
		schemas, err := parsenode.CreateMapWithReference(n, model.ReferenceTypeSchema, buildSchema)
		if err != nil {
			return err
		}
		components(d).Schemas = schemas
		return nil
	},
	"parameters": func(d *model.Document, n parsenode.Node) error {
		return loadParameterComponents(n, components(d))
	},
	"responses": func(d *model.Document, n parsenode.Node) error {
		responses, err := parsenode.CreateMapWithReference(n, model.ReferenceTypeResponse, func(m *parsenode.MapNode) (*model.Response, error) {
			return loadResponse(m, nil)
		})
		if err != nil {
			return err
		}
		components(d).Responses = responses
		return nil
	},
	"securityDefinitions": func(d *model.Document, n parsenode.Node) error {
		schemes, err := parsenode.CreateMapWithReference(n, model.ReferenceTypeSecurityScheme, loadSecurityScheme)
		if err != nil {
			return err
		}
		components(d).SecuritySchemes = schemes
		return nil
	},
	"security": func(d *model.Document, n parsenode.Node) error {
		security, err := parsenode.CreateList(n, loadSecurityRequirement)
		if err != nil {
			return err
		}
		d.SecurityRequirements = security
		return nil
	},
	"tags": func(d *model.Document, n parsenode.Node) error {
		tags, err := parsenode.CreateList(n, loadTag)
		if err != nil {
			return err
		}
		d.Tags = tags
		return nil
	},
	"externalDocs": func(d *model.Document, n parsenode.Node) error {
		docs, err := loadExternalDocs(n)
		d.ExternalDocs = docs
		return err
	},
}

// Load reads a Swagger 2.0 document. Problems with individual fields are recorded on the context's
// diagnostic and the field is skipped; an error is only returned when the root is not a Swagger 2.0
// mapping, or for structural errors when the context stops on them.
func Load(root parsenode.Node) (*model.Document, error) {
	m, err := root.CheckMapNode("document")
	if err != nil {
		return nil, err
	}
	ctx := m.Context()

	if _, ok := m.Get("openapi"); ok {
		return nil, ErrUnsupportedVersion.Wrapf("openapi %s documents are not supported", m.GetScalarValueOf("openapi"))
	}
	version := m.GetScalarValueOf("swagger")
	if version != Version {
		return nil, ErrUnsupportedVersion.Wrapf("swagger %q", version)
	}

	if ctx.VersionService() == nil {
		ctx.SetVersionService(VersionService{})
	}
	ctx.Diagnostic().SpecificationVersion = version
	defer ctx.ClearTempStorage(nil)

	doc := &model.Document{SpecVersion: version}
	if err := fieldmap.ParseMap(m, doc, documentFields, nil); err != nil {
		return nil, err
	}

	produces, _ := parsenode.GetFromTempStorage[[]string](ctx, keyGlobalProduces, nil)
	applyContent(ctx, keyResponseContent, produces)
	consumes, _ := parsenode.GetFromTempStorage[[]string](ctx, keyGlobalConsumes, nil)
	applyContent(ctx, keyRequestContent, consumes)

	schemes, _ := parsenode.GetFromTempStorage[[]string](ctx, keySchemes, nil)
	doc.Servers = append(doc.Servers, MakeServers(ctx, schemes)...)
	fixups, _ := parsenode.GetFromTempStorage[[]func()](ctx, keyServerFixups, nil)
	for _, fixup := range fixups {
		fixup()
	}

	FixRequestBodyReferences(doc)

	ctx.Logger().Debug("loaded swagger document", "location", ctx.DocumentLocation(), "servers", len(doc.Servers))
	return doc, nil
}

// MakeServers synthesizes one server per scheme, in order, from the host and basePath stored on the
// context. An absent host or basePath falls back to "example.org/" and "/". The default host's
// trailing slash is dropped before a basePath starting with "/"; a declared host is used as given.
func MakeServers(ctx *parsenode.Context, schemes []string) []*model.Server {
	basePath, ok := parsenode.GetFromTempStorage[string](ctx, keyBasePath, nil)
	if !ok {
		basePath = defaultBasePath
	}
	host, ok := parsenode.GetFromTempStorage[string](ctx, keyHost, nil)
	if !ok {
		host = defaultHost
		if strings.HasPrefix(basePath, "/") {
			host = strings.TrimSuffix(host, "/")
		}
	}

	servers := make([]*model.Server, 0, len(schemes))
	for _, scheme := range schemes {
		servers = append(servers, &model.Server{URL: scheme + "://" + host + basePath})
	}
	return servers
}

func components(d *model.Document) *model.Components {
	if d.Components == nil {
		d.Components = &model.Components{}
	}
	return d.Components
}

func storeScalar(n parsenode.Node, key string, scope any) error {
	v, err := n.GetScalarValue()
	if err != nil {
		return err
	}
	n.Context().SetTempStorage(key, v, scope)
	return nil
}

func storeList(n parsenode.Node, key string, scope any) error {
	list, err := stringList(n)
	if err != nil {
		return err
	}
	n.Context().SetTempStorage(key, list, scope)
	return nil
}
