package swagger

import (
	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/fieldmap"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/validation"
)

var pathsPatterns = fieldmap.PatternFieldMap[*model.Paths]{
	{
		Match: isNotExtension,
		Handle: func(paths *model.Paths, path string, n parsenode.Node) error {
			item, err := loadPathItem(n)
			if err != nil {
				return err
			}
			paths.Set(path, item)
			return nil
		},
	},
}

var pathItemFields = fieldmap.FixedFieldMap[*model.PathItem]{
	"parameters": func(item *model.PathItem, n parsenode.Node) error {
		params, err := parsenode.CreateList(n, parameterReference(ownerPathItem, item))
		item.Parameters = params
		return err
	},
	parsenode.RefKey: func(_ *model.PathItem, n parsenode.Node) error {
		n.Context().AddError(validation.SeverityWarning, validation.RuleValidationUnsupported, errors.New("path item references are not supported"), n.YAMLNode())
		return nil
	},
}

func init() {
	for _, method := range []model.OperationType{
		model.OperationTypeGet,
		model.OperationTypePut,
		model.OperationTypePost,
		model.OperationTypeDelete,
		model.OperationTypeOptions,
		model.OperationTypeHead,
		model.OperationTypePatch,
	} {
		pathItemFields[string(method)] = func(item *model.PathItem, n parsenode.Node) error {
			m, err := n.CheckMapNode(string(method))
			if err != nil {
				return err
			}
			op, err := loadOperation(m)
			if err != nil {
				return err
			}
			item.SetOperation(method, op)
			return nil
		}
	}
}

var operationFields = fieldmap.FixedFieldMap[*model.Operation]{
	"tags":        stringListField(func(o *model.Operation) *[]string { return &o.Tags }),
	"summary":     stringField(func(o *model.Operation) *string { return &o.Summary }),
	"description": stringField(func(o *model.Operation) *string { return &o.Description }),
	"operationId": stringField(func(o *model.Operation) *string { return &o.OperationID }),
	"deprecated":  boolField(func(o *model.Operation) *bool { return &o.Deprecated }),
	"externalDocs": func(o *model.Operation, n parsenode.Node) error {
		docs, err := loadExternalDocs(n)
		o.ExternalDocs = docs
		return err
	},
	"consumes": func(o *model.Operation, n parsenode.Node) error {
		return storeList(n, keyConsumes, o)
	},
	"produces": func(o *model.Operation, n parsenode.Node) error {
		return storeList(n, keyProduces, o)
	},
	"schemes": func(o *model.Operation, n parsenode.Node) error {
		return storeList(n, keySchemes, o)
	},
	"parameters": func(o *model.Operation, n parsenode.Node) error {
		params, err := parsenode.CreateList(n, parameterReference(ownerOperation, o))
		o.Parameters = params
		return err
	},
	"responses": func(o *model.Operation, n parsenode.Node) error {
		responses, err := loadResponses(n, o)
		if err != nil {
			return err
		}
		o.Responses = responses
		return nil
	},
	"security": func(o *model.Operation, n parsenode.Node) error {
		security, err := parsenode.CreateList(n, loadSecurityRequirement)
		o.Security = security
		return err
	},
}

func loadPaths(n parsenode.Node) (*model.Paths, error) {
	m, err := n.CheckMapNode("paths")
	if err != nil {
		return nil, err
	}
	paths := model.NewPaths()
	if err := fieldmap.ParseMap(m, paths, nil, pathsPatterns); err != nil {
		return nil, err
	}
	return paths, nil
}

func loadPathItem(n parsenode.Node) (*model.PathItem, error) {
	return loadObject(n, "path item", pathItemFields)
}

// loadOperation reads an operation and then combines the fields Swagger 2.0 spreads over it:
// body and formData parameters with consumes into the request body, responses with produces into
// response content, and schemes into operation servers.
func loadOperation(m *parsenode.MapNode) (*model.Operation, error) {
	ctx := m.Context()
	op := &model.Operation{}
	defer ctx.ClearTempStorage(op)

	if err := fieldmap.ParseMap(m, op, operationFields, nil); err != nil {
		return nil, err
	}

	if body, ok := parsenode.GetFromTempStorage[*model.Parameter](ctx, keyBodyParameter, op); ok {
		op.RequestBody = requestBodyFromParameter(ctx, body, op)
	} else if form, ok := parsenode.GetFromTempStorage[[]*model.Parameter](ctx, keyFormParameters, op); ok {
		op.RequestBody = requestBodyFromForm(ctx, form, op)
	}

	consumes, _ := parsenode.GetFromTempStorage[[]string](ctx, keyConsumes, op)
	settleContent(ctx, keyRequestContent, op, consumes)
	produces, _ := parsenode.GetFromTempStorage[[]string](ctx, keyProduces, op)
	settleContent(ctx, keyResponseContent, op, produces)

	if schemes, ok := parsenode.GetFromTempStorage[[]string](ctx, keySchemes, op); ok {
		appendTemp(ctx, keyServerFixups, nil, func() {
			op.Servers = MakeServers(ctx, schemes)
		})
	}

	return op, nil
}
