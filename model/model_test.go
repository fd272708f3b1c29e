package model_test

import (
	"testing"

	"github.com/speakeasy-api/oasgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponents_Get_Success(t *testing.T) {
	t.Parallel()

	pet := &model.Schema{Type: "object"}
	c := &model.Components{}
	c.AddSchema("Pet", pet)

	got, ok := c.Get(model.ReferenceTypeSchema, "Pet")
	require.True(t, ok)
	assert.Same(t, pet, got)

	ref := pet.GetReference()
	require.NotNil(t, ref)
	assert.Equal(t, model.ReferenceStateResolved, ref.State)
	assert.False(t, pet.IsUnresolved())

	_, ok = c.Get(model.ReferenceTypeParameter, "Pet")
	assert.False(t, ok)

	var nilComponents *model.Components
	assert.False(t, nilComponents.Has(model.ReferenceTypeSchema, "Pet"))
}

func TestNewPlaceholder_Success(t *testing.T) {
	t.Parallel()

	ref := &model.Reference{Type: model.ReferenceTypeSchema, ID: "test", ExternalResource: "common"}
	p := model.NewPlaceholder[model.Schema](ref)

	assert.True(t, p.UnresolvedReference)
	assert.Same(t, ref, p.Reference)
	assert.True(t, ref.IsExternal())
	assert.Equal(t, "common#/components/schemas/test", ref.String())
}

func TestReference_Pointer_Escapes_Success(t *testing.T) {
	t.Parallel()

	ref := &model.Reference{Type: model.ReferenceTypeSchema, ID: "a/b~c"}
	assert.Equal(t, "#/components/schemas/a~1b~0c", ref.Pointer())
	assert.False(t, ref.IsExternal())
	assert.Equal(t, "failed", model.ReferenceStateFailed.String())
}

func TestDocument_Builders_Success(t *testing.T) {
	t.Parallel()

	doc := &model.Document{}
	doc.CreatePathItem("/", func(p *model.PathItem) {
		p.Description = "Consumer"
		p.CreateOperation(model.OperationTypeGet, func(op *model.Operation) {
			op.CreateResponse("200", func(r *model.Response) {
				r.Description = "Success"
				r.CreateContent("application/json", func(mt *model.MediaType) {
					mt.Schema = &model.Schema{Type: "string"}
				})
			})
		})
	})

	item, ok := doc.Paths.Get("/")
	require.True(t, ok)
	assert.Equal(t, "Consumer", item.Description)

	op := item.GetOperation(model.OperationTypeGet)
	require.NotNil(t, op)
	resp := op.Responses.GetOrZero("200")
	require.NotNil(t, resp)
	assert.Equal(t, "string", resp.Content.GetOrZero("application/json").Schema.Type)
}

func TestExtended_AddExtension_Success(t *testing.T) {
	t.Parallel()

	info := &model.Info{}
	info.AddExtension("x-logo", nil)
	assert.Equal(t, 1, info.Extensions.Len())
}
