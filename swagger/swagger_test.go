package swagger_test

import (
	"slices"
	"testing"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/swagger"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func load(t *testing.T, src string, opts ...parsenode.Option[parsenode.Context]) (*model.Document, *parsenode.Context) {
	t.Helper()

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &root))
	ctx := parsenode.NewContext(opts...)
	doc, err := swagger.Load(parsenode.Create(ctx, &root))
	require.NoError(t, err)
	require.NotNil(t, doc)
	return doc, ctx
}

func serverURLs(servers []*model.Server) []string {
	urls := make([]string, 0, len(servers))
	for _, s := range servers {
		urls = append(urls, s.URL)
	}
	return urls
}

func TestLoad_Servers_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected []string
	}{
		{
			name: "one server per scheme in declared order",
			src: `swagger: "2.0"
schemes: [https, http, wss]
host: api.example.com
basePath: /v1
`,
			expected: []string{"https://api.example.com/v1", "http://api.example.com/v1", "wss://api.example.com/v1"},
		},
		{
			name: "schemes declared before host",
			src: `swagger: "2.0"
basePath: /v2
schemes: [http]
host: petstore.io
`,
			expected: []string{"http://petstore.io/v2"},
		},
		{
			name: "missing host and basePath use defaults",
			src: `swagger: "2.0"
schemes: [https]
`,
			expected: []string{"https://example.org/"},
		},
		{
			name: "missing host keeps basePath",
			src: `swagger: "2.0"
schemes: [https]
basePath: /api
`,
			expected: []string{"https://example.org/api"},
		},
		{
			name: "declared host used as given",
			src: `swagger: "2.0"
schemes: [https]
host: api.io/
basePath: /v1
`,
			expected: []string{"https://api.io//v1"},
		},
		{
			name: "no schemes no servers",
			src: `swagger: "2.0"
host: api.example.com
`,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, _ := load(t, tt.src)
			assert.Equal(t, tt.expected, serverURLs(doc.Servers))
		})
	}
}

func TestLoad_OperationSchemes_Success(t *testing.T) {
	t.Parallel()

	doc, _ := load(t, `swagger: "2.0"
paths:
  /pets:
    get:
      schemes: [wss]
      responses:
        "200":
          description: ok
host: stream.example.com
`)

	op := doc.Paths.GetOrZero("/pets").GetOperation(model.OperationTypeGet)
	require.NotNil(t, op)
	assert.Equal(t, []string{"wss://stream.example.com/"}, serverURLs(op.Servers))
	assert.Empty(t, doc.Servers)
}

func TestLoad_UnsupportedVersion_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "openapi 3", src: "openapi: 3.0.3\ninfo: {title: t, version: v}"},
		{name: "old swagger", src: `swagger: "1.2"`},
		{name: "no version", src: "info: {title: t, version: v}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var root yaml.Node
			require.NoError(t, yaml.Unmarshal([]byte(tt.src), &root))
			_, err := swagger.Load(parsenode.Create(parsenode.NewContext(), &root))
			require.Error(t, err)
			assert.ErrorIs(t, err, swagger.ErrUnsupportedVersion)
		})
	}
}

func TestLoad_NotAMapping_Error(t *testing.T) {
	t.Parallel()

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("- swagger"), &root))
	_, err := swagger.Load(parsenode.Create(parsenode.NewContext(), &root))
	require.Error(t, err)
	assert.ErrorIs(t, err, parsenode.ErrStructural)
}

func TestLoad_Info_Success(t *testing.T) {
	t.Parallel()

	doc, ctx := load(t, `swagger: "2.0"
info:
  title: Petstore
  version: 1.0.0
  description: pets
  contact:
    name: API team
    email: api@example.com
  license:
    name: MIT
  x-audience: public
tags:
  - name: pets
    externalDocs:
      url: https://example.com/pets
externalDocs:
  url: https://example.com
`)

	require.NotNil(t, doc.Info)
	assert.Equal(t, "Petstore", doc.Info.Title)
	assert.Equal(t, "1.0.0", doc.Info.Version)
	assert.Equal(t, "api@example.com", doc.Info.Contact.Email)
	assert.Equal(t, "MIT", doc.Info.License.Name)
	assert.True(t, doc.Info.Extensions.Has("x-audience"))
	require.Len(t, doc.Tags, 1)
	assert.Equal(t, "https://example.com/pets", doc.Tags[0].ExternalDocs.URL)
	assert.Equal(t, "https://example.com", doc.ExternalDocs.URL)
	assert.Equal(t, "2.0", doc.SpecVersion)
	assert.Equal(t, "2.0", ctx.Diagnostic().SpecificationVersion)
	assert.Empty(t, ctx.Diagnostic().Errors)
}

func TestLoad_BodyParameter_Success(t *testing.T) {
	t.Parallel()

	doc, _ := load(t, `swagger: "2.0"
paths:
  /pets:
    post:
      consumes: [application/json, application/xml]
      parameters:
        - name: pet
          in: body
          required: true
          description: the pet
          schema:
            $ref: "#/definitions/Pet"
        - name: dryRun
          in: query
          type: boolean
      responses:
        "201":
          description: created
    put:
      parameters:
        - name: pet
          in: body
          schema:
            type: object
      responses:
        "200":
          description: ok
consumes: [application/vnd.pets+json]
definitions:
  Pet:
    type: object
`)

	item := doc.Paths.GetOrZero("/pets")
	post := item.GetOperation(model.OperationTypePost)
	require.Len(t, post.Parameters, 1)
	assert.Equal(t, "dryRun", post.Parameters[0].Name)
	assert.Equal(t, "boolean", post.Parameters[0].Schema.Type)

	body := post.RequestBody
	require.NotNil(t, body)
	assert.True(t, body.Required)
	assert.Equal(t, "the pet", body.Description)
	assert.Equal(t, []string{"application/json", "application/xml"}, slices.Collect(body.Content.Keys()))
	schema := body.Content.GetOrZero("application/json").Schema
	require.NotNil(t, schema)
	assert.True(t, schema.IsUnresolved())
	assert.Equal(t, "Pet", schema.GetReference().ID)

	put := item.GetOperation(model.OperationTypePut)
	require.NotNil(t, put.RequestBody)
	assert.Empty(t, put.Parameters)
	assert.Equal(t, []string{"application/vnd.pets+json"}, slices.Collect(put.RequestBody.Content.Keys()))
}

func TestLoad_BodyParameter_DefaultMediaType_Success(t *testing.T) {
	t.Parallel()

	doc, _ := load(t, `swagger: "2.0"
paths:
  /pets:
    post:
      parameters:
        - {name: pet, in: body, schema: {type: object}}
      responses:
        default:
          description: error
`)

	body := doc.Paths.GetOrZero("/pets").GetOperation(model.OperationTypePost).RequestBody
	require.NotNil(t, body)
	assert.Equal(t, []string{"application/json"}, slices.Collect(body.Content.Keys()))
}

func TestLoad_FormParameters_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		consumes  string
		fileType  string
		expected  []string
		formatted string
	}{
		{name: "urlencoded by default", fileType: "string", expected: []string{"application/x-www-form-urlencoded"}},
		{name: "multipart for files", fileType: "file", expected: []string{"multipart/form-data"}, formatted: "binary"},
		{name: "declared form media types", consumes: "consumes: [multipart/form-data, application/json]", fileType: "string", expected: []string{"multipart/form-data"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, _ := load(t, `swagger: "2.0"
paths:
  /upload:
    post:
      `+tt.consumes+`
      parameters:
        - {name: name, in: formData, type: string, required: true}
        - {name: content, in: formData, type: `+tt.fileType+`, description: the upload}
      responses:
        "204":
          description: done
`)

			op := doc.Paths.GetOrZero("/upload").GetOperation(model.OperationTypePost)
			assert.Empty(t, op.Parameters)
			require.NotNil(t, op.RequestBody)
			assert.True(t, op.RequestBody.Required)
			assert.Equal(t, tt.expected, slices.Collect(op.RequestBody.Content.Keys()))

			schema := op.RequestBody.Content.GetOrZero(tt.expected[0]).Schema
			require.NotNil(t, schema)
			assert.Equal(t, "object", schema.Type)
			assert.Equal(t, []string{"name", "content"}, slices.Collect(schema.Properties.Keys()))
			assert.Equal(t, []string{"name"}, schema.Required)
			content := schema.Properties.GetOrZero("content")
			assert.Equal(t, "string", content.Type)
			assert.Equal(t, tt.formatted, content.Format)
			assert.Equal(t, "the upload", content.Description)
		})
	}
}

func TestLoad_ResponseContent_Success(t *testing.T) {
	t.Parallel()

	doc, _ := load(t, `swagger: "2.0"
produces: [application/json]
paths:
  /pets:
    get:
      produces: [application/json, text/csv]
      responses:
        "200":
          description: pets
          headers:
            X-Rate-Limit:
              type: integer
              description: calls left
          schema:
            type: array
            items:
              $ref: "#/definitions/Pet"
          examples:
            application/json: [{name: rex}]
        "404":
          description: missing
    delete:
      responses:
        "200":
          $ref: "#/responses/Gone"
responses:
  Gone:
    description: gone
    schema:
      type: string
definitions:
  Pet:
    type: object
`)

	get := doc.Paths.GetOrZero("/pets").GetOperation(model.OperationTypeGet)
	require.NotNil(t, get.Responses)
	assert.Equal(t, []string{"200", "404"}, slices.Collect(get.Responses.Keys()))

	ok := get.Responses.GetOrZero("200")
	assert.Equal(t, []string{"application/json", "text/csv"}, slices.Collect(ok.Content.Keys()))
	jsonContent := ok.Content.GetOrZero("application/json")
	assert.Equal(t, "array", jsonContent.Schema.Type)
	assert.Equal(t, "Pet", jsonContent.Schema.Items.GetReference().ID)
	require.NotNil(t, jsonContent.Example)
	assert.Equal(t, yaml.SequenceNode, jsonContent.Example.Kind)
	assert.Nil(t, ok.Content.GetOrZero("text/csv").Example)
	assert.Equal(t, "integer", ok.Headers.GetOrZero("X-Rate-Limit").Schema.Type)

	assert.Nil(t, get.Responses.GetOrZero("404").Content)

	deleted := doc.Paths.GetOrZero("/pets").GetOperation(model.OperationTypeDelete).Responses.GetOrZero("200")
	assert.True(t, deleted.IsUnresolved())
	assert.Equal(t, model.ReferenceTypeResponse, deleted.GetReference().Type)

	gone := doc.Components.Responses.GetOrZero("Gone")
	require.NotNil(t, gone)
	assert.Equal(t, []string{"application/json"}, slices.Collect(gone.Content.Keys()))
	assert.Equal(t, "Gone", gone.GetReference().ID)
	assert.False(t, gone.IsUnresolved())
}

func TestLoad_Definitions_Success(t *testing.T) {
	t.Parallel()

	doc, ctx := load(t, `swagger: "2.0"
definitions:
  Node:
    type: object
    required: [value]
    properties:
      value: {type: integer, minimum: 0, maximum: 10}
      next:
        $ref: "#/definitions/Node"
      tags:
        type: array
        items: {type: string, enum: [a, b]}
    additionalProperties: false
    x-nullable: true
  Alias:
    $ref: "#/definitions/Node"
`)

	require.NotNil(t, doc.Components)
	assert.Equal(t, []string{"Node", "Alias"}, slices.Collect(doc.Components.Schemas.Keys()))

	node := doc.Components.Schemas.GetOrZero("Node")
	assert.False(t, node.IsUnresolved())
	assert.Equal(t, &model.Reference{Type: model.ReferenceTypeSchema, ID: "Node", State: model.ReferenceStateResolved}, node.GetReference())
	assert.Equal(t, []string{"value"}, node.Required)
	assert.True(t, node.Nullable)
	assert.True(t, node.Extensions.Has("x-nullable"))
	require.NotNil(t, node.AdditionalPropertiesAllowed)
	assert.False(t, *node.AdditionalPropertiesAllowed)

	value := node.Properties.GetOrZero("value")
	assert.Nil(t, value.GetReference())
	assert.InDelta(t, 10, *value.Maximum, 0)

	next := node.Properties.GetOrZero("next")
	assert.True(t, next.IsUnresolved())
	assert.Equal(t, "Node", next.GetReference().ID)
	assert.Len(t, node.Properties.GetOrZero("tags").Items.Enum, 2)

	alias := doc.Components.Schemas.GetOrZero("Alias")
	assert.True(t, alias.IsUnresolved())
	assert.Equal(t, "Node", alias.GetReference().ID)
	assert.Empty(t, ctx.Diagnostic().Errors)
}

func TestLoad_Parameters_CollectionFormat_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format  string
		style   string
		explode bool
	}{
		{format: "multi", style: "form", explode: true},
		{format: "csv", style: "form"},
		{format: "ssv", style: "spaceDelimited"},
		{format: "pipes", style: "pipeDelimited"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			doc, _ := load(t, `swagger: "2.0"
parameters:
  ids:
    name: ids
    in: query
    type: array
    items: {type: integer, collectionFormat: csv}
    collectionFormat: `+tt.format+`
`)

			p := doc.Components.Parameters.GetOrZero("ids")
			require.NotNil(t, p)
			assert.Equal(t, model.ParameterLocationQuery, p.In)
			assert.Equal(t, tt.style, p.Style)
			require.NotNil(t, p.Explode)
			assert.Equal(t, tt.explode, *p.Explode)
			assert.Equal(t, "integer", p.Schema.Items.Type)
		})
	}
}

func TestLoad_BodyParameterComponent_FixesReferences_Success(t *testing.T) {
	t.Parallel()

	doc, _ := load(t, `swagger: "2.0"
paths:
  /pets:
    post:
      parameters:
        - $ref: "#/parameters/body"
        - $ref: "#/parameters/limit"
      responses:
        "200":
          description: ok
parameters:
  body:
    name: body
    in: body
    schema:
      type: object
  limit:
    name: limit
    in: query
    type: integer
`)

	require.NotNil(t, doc.Components)
	assert.Equal(t, []string{"limit"}, slices.Collect(doc.Components.Parameters.Keys()))
	assert.Equal(t, []string{"body"}, slices.Collect(doc.Components.RequestBodies.Keys()))
	assert.Equal(t, []string{"application/json"}, slices.Collect(doc.Components.RequestBodies.GetOrZero("body").Content.Keys()))

	op := doc.Paths.GetOrZero("/pets").GetOperation(model.OperationTypePost)
	for _, p := range op.Parameters {
		assert.NotEqual(t, "body", p.GetReference().ID)
	}
	require.Len(t, op.Parameters, 1)
	assert.Equal(t, "limit", op.Parameters[0].GetReference().ID)

	require.NotNil(t, op.RequestBody)
	assert.True(t, op.RequestBody.IsUnresolved())
	assert.Equal(t, &model.Reference{Type: model.ReferenceTypeRequestBody, ID: "body"}, op.RequestBody.GetReference())
}

func TestFixRequestBodyReferences_Success(t *testing.T) {
	t.Parallel()

	doc := &model.Document{Components: &model.Components{}}
	doc.Components.AddRequestBody("body", &model.RequestBody{})
	op := doc.CreatePathItem("/pets", nil).CreateOperation(model.OperationTypePost, func(op *model.Operation) {
		op.Parameters = []*model.Parameter{
			model.NewPlaceholder[model.Parameter](&model.Reference{Type: model.ReferenceTypeParameter, ID: "other"}),
			model.NewPlaceholder[model.Parameter](&model.Reference{Type: model.ReferenceTypeParameter, ID: "body"}),
			model.NewPlaceholder[model.Parameter](&model.Reference{Type: model.ReferenceTypeParameter, ID: "body", ExternalResource: "common.yaml"}),
		}
	})

	swagger.FixRequestBodyReferences(doc)

	require.Len(t, op.Parameters, 2)
	assert.Equal(t, "other", op.Parameters[0].GetReference().ID)
	assert.Equal(t, "common.yaml", op.Parameters[1].GetReference().ExternalResource)
	require.NotNil(t, op.RequestBody)
	assert.Equal(t, "body", op.RequestBody.GetReference().ID)
	assert.Equal(t, model.ReferenceTypeRequestBody, op.RequestBody.GetReference().Type)
}

func TestFixRequestBodyReferences_NoRequestBodies_Success(t *testing.T) {
	t.Parallel()

	doc := &model.Document{}
	op := doc.CreatePathItem("/pets", nil).CreateOperation(model.OperationTypePost, func(op *model.Operation) {
		op.Parameters = []*model.Parameter{
			model.NewPlaceholder[model.Parameter](&model.Reference{Type: model.ReferenceTypeParameter, ID: "body"}),
		}
	})

	swagger.FixRequestBodyReferences(doc)

	assert.Len(t, op.Parameters, 1)
	assert.Nil(t, op.RequestBody)
}

func TestLoad_Security_Success(t *testing.T) {
	t.Parallel()

	doc, _ := load(t, `swagger: "2.0"
securityDefinitions:
  basicAuth:
    type: basic
  key:
    type: apiKey
    name: X-API-Key
    in: header
  oauth:
    type: oauth2
    flow: accessCode
    authorizationUrl: https://example.com/authorize
    tokenUrl: https://example.com/token
    scopes:
      read: read things
security:
  - oauth: [read]
    key: []
`)

	schemes := doc.Components.SecuritySchemes
	assert.Equal(t, model.SecuritySchemeTypeHTTP, schemes.GetOrZero("basicAuth").Type)
	assert.Equal(t, "basic", schemes.GetOrZero("basicAuth").Scheme)
	assert.Equal(t, model.ParameterLocationHeader, schemes.GetOrZero("key").In)

	oauth := schemes.GetOrZero("oauth")
	assert.Equal(t, model.SecuritySchemeTypeOAuth2, oauth.Type)
	require.NotNil(t, oauth.Flows.AuthorizationCode)
	assert.Equal(t, "https://example.com/token", oauth.Flows.AuthorizationCode.TokenURL)
	assert.Equal(t, "read things", oauth.Flows.AuthorizationCode.Scopes.GetOrZero("read"))

	require.Len(t, doc.SecurityRequirements, 1)
	entries := doc.SecurityRequirements[0].Entries
	require.Len(t, entries, 2)
	assert.Equal(t, "oauth", entries[0].Scheme.GetReference().ID)
	assert.True(t, entries[0].Scheme.IsUnresolved())
	assert.Equal(t, []string{"read"}, entries[0].Scopes)
	assert.Empty(t, entries[1].Scopes)
}

func TestLoad_Diagnostics_Success(t *testing.T) {
	t.Parallel()

	doc, ctx := load(t, `swagger: "2.0"
info:
  title: t
  version: v
  colour: blue
paths:
  /pets:
    parameters:
      - {name: pet, in: body, schema: {type: object}}
      - {name: id, in: cookie}
    get:
      responses:
        "200":
          description: ok
securityDefinitions:
  odd:
    type: openIdConnect
`)

	rules := map[string]validation.Severity{}
	for _, err := range ctx.Diagnostic().Errors {
		var vErr *validation.Error
		require.True(t, errors.As(err, &vErr))
		rules[vErr.Rule] = vErr.Severity
	}
	assert.Equal(t, map[string]validation.Severity{
		validation.RuleValidationUnrecognizedField: validation.SeverityWarning,
		validation.RuleValidationUnsupported:       validation.SeverityWarning,
		validation.RuleValidationInvalidFormat:     validation.SeverityError,
	}, rules)

	params := doc.Paths.GetOrZero("/pets").Parameters
	require.Len(t, params, 1)
	assert.Equal(t, "id", params[0].Name)
	assert.Empty(t, params[0].In)
	assert.NotNil(t, doc.Paths.GetOrZero("/pets").GetOperation(model.OperationTypeGet))
	assert.False(t, doc.Components.SecuritySchemes.Has("odd"))
}

func TestLoad_StopOnStructuralError_Error(t *testing.T) {
	t.Parallel()

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`swagger: "2.0"
info: [not, a, map]
`), &root))
	_, err := swagger.Load(parsenode.Create(parsenode.NewContext(parsenode.WithStopOnStructuralError()), &root))
	require.Error(t, err)
	assert.ErrorIs(t, err, parsenode.ErrStructural)
}
