package parsenode_test

import (
	"strings"
	"testing"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type localRefs struct{}

func (localRefs) ConvertToReference(ref string, t model.ReferenceType) (*model.Reference, error) {
	id, ok := strings.CutPrefix(ref, "#/components/"+string(t)+"/")
	if !ok {
		return nil, errors.New("unsupported reference " + ref)
	}
	return &model.Reference{Type: t, ID: id}, nil
}

func parse(t *testing.T, src string, opts ...parsenode.Option[parsenode.Context]) parsenode.Node {
	t.Helper()

	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &root))
	return parsenode.Create(parsenode.NewContext(opts...), &root)
}

func TestCreate_Variants_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected parsenode.Kind
	}{
		{name: "mapping", src: "a: 1", expected: parsenode.KindMap},
		{name: "sequence", src: "- a", expected: parsenode.KindList},
		{name: "scalar", src: "hello", expected: parsenode.KindValue},
		{name: "empty document", src: "", expected: parsenode.KindValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := parse(t, tt.src)
			assert.Equal(t, tt.expected, n.Kind())
		})
	}
}

func TestCheckMapNode_Error(t *testing.T) {
	t.Parallel()

	n := parse(t, "- a\n- b\n")
	_, err := n.CheckMapNode("info")
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsenode.ErrStructural))

	var sErr *parsenode.StructuralError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, parsenode.KindMap, sErr.Expected)
	assert.Equal(t, parsenode.KindList, sErr.Actual)
	assert.Equal(t, "#: info must be a map, got list", sErr.Error())
}

func TestGetScalarValue_Success(t *testing.T) {
	t.Parallel()

	n := parse(t, "a: &v hello\nb: *v\n")
	m, err := n.CheckMapNode("root")
	require.NoError(t, err)

	b, ok := m.Get("b")
	require.True(t, ok)
	v, err := b.GetScalarValue()
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = m.GetScalarValue()
	assert.True(t, errors.Is(err, parsenode.ErrStructural))
}

func TestMapNode_Properties_Order_Success(t *testing.T) {
	t.Parallel()

	m, err := parse(t, "z: 1\na: 2\nm: 3\n").CheckMapNode("root")
	require.NoError(t, err)

	var names []string
	for p := range m.Properties() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"z", "a", "m"}, names)
}

type item struct {
	Name string
}

func buildItem(m *parsenode.MapNode) (*item, error) {
	name := m.GetScalarValueOf("name")
	if name == "skip" {
		return nil, nil
	}
	return &item{Name: name}, nil
}

func TestCreateList_Success(t *testing.T) {
	t.Parallel()

	n := parse(t, "- name: a\n- name: skip\n- scalar\n- name: b\n")

	items, err := parsenode.CreateList(n, buildItem)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].Name)
	assert.Equal(t, "b", items[1].Name)

	errs := n.Context().Diagnostic().Errors
	require.Len(t, errs, 1)
	var vErr *validation.Error
	require.True(t, errors.As(errs[0], &vErr))
	assert.Equal(t, "#/2", vErr.Location)
	assert.Equal(t, validation.RuleValidationTypeMismatch, vErr.Rule)
	assert.Equal(t, 3, vErr.Line)
}

func TestCreateList_StopOnStructuralError_Error(t *testing.T) {
	t.Parallel()

	n := parse(t, "- name: a\n- scalar\n", parsenode.WithStopOnStructuralError())

	_, err := parsenode.CreateList(n, buildItem)
	require.Error(t, err)
	assert.True(t, errors.Is(err, parsenode.ErrStructural))
}

func TestCreateList_WrongVariant_Error(t *testing.T) {
	t.Parallel()

	_, err := parsenode.CreateList(parse(t, "a: 1"), buildItem)
	var sErr *parsenode.StructuralError
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, parsenode.KindList, sErr.Expected)
	assert.Equal(t, parsenode.KindMap, sErr.Actual)

	_, err = parsenode.CreateMap(parse(t, "- a"), buildItem)
	require.True(t, errors.As(err, &sErr))
	assert.Equal(t, parsenode.KindMap, sErr.Expected)
	assert.Equal(t, parsenode.KindList, sErr.Actual)
}

func TestCreateMap_Success(t *testing.T) {
	t.Parallel()

	m, err := parsenode.CreateMap(parse(t, "one:\n  name: first\ntwo:\n  name: second\n"), buildItem)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, "second", m.GetOrZero("two").Name)
}

func TestCreateSimpleListAndMap_Success(t *testing.T) {
	t.Parallel()

	list, err := parsenode.CreateSimpleList(parse(t, "[http, https]"), parsenode.ScalarString)
	require.NoError(t, err)
	assert.Equal(t, []string{"http", "https"}, list)

	m, err := parsenode.CreateSimpleMap(parse(t, "read: Read access\nwrite: Write access\n"), parsenode.ScalarString)
	require.NoError(t, err)
	assert.Equal(t, "Write access", m.GetOrZero("write"))
}

func buildSchema(m *parsenode.MapNode) (*model.Schema, error) {
	return &model.Schema{Type: m.GetScalarValueOf("type")}, nil
}

func TestCreateMapWithReference_Success(t *testing.T) {
	t.Parallel()

	src := `
Pet:
  type: object
Alias:
  $ref: '#/components/schemas/Pet'
`
	n := parse(t, src, parsenode.WithVersionService(localRefs{}))

	schemas, err := parsenode.CreateMapWithReference(n, model.ReferenceTypeSchema, buildSchema)
	require.NoError(t, err)
	require.Equal(t, 2, schemas.Len())

	pet := schemas.GetOrZero("Pet")
	assert.False(t, pet.UnresolvedReference)
	assert.Equal(t, "Pet", pet.Reference.ID)
	assert.Equal(t, model.ReferenceStateResolved, pet.Reference.State)

	alias := schemas.GetOrZero("Alias")
	assert.True(t, alias.UnresolvedReference)
	assert.Equal(t, "Pet", alias.Reference.ID)
	assert.Equal(t, model.ReferenceStateUnresolved, alias.Reference.State)
	require.NotNil(t, alias.GetRootNode())
	assert.Equal(t, 5, alias.GetRootNode().Line)
}

func TestCreateMapWithReference_InvalidReference_Error(t *testing.T) {
	t.Parallel()

	n := parse(t, "Bad:\n  $ref: 'http://elsewhere'\n", parsenode.WithVersionService(localRefs{}))

	schemas, err := parsenode.CreateMapWithReference(n, model.ReferenceTypeSchema, buildSchema)
	require.NoError(t, err)
	assert.Equal(t, 0, schemas.Len())

	errs := n.Context().Diagnostic().Errors
	require.Len(t, errs, 1)
	var vErr *validation.Error
	require.True(t, errors.As(errs[0], &vErr))
	assert.Equal(t, validation.RuleValidationInvalidReference, vErr.Rule)
	assert.Equal(t, "#/Bad", vErr.Location)
}

func TestTempStorage_Scopes_Success(t *testing.T) {
	t.Parallel()

	ctx := parsenode.NewContext()
	op := &model.Operation{}

	ctx.SetTempStorage("produces", []string{"application/json"}, nil)
	ctx.SetTempStorage("produces", []string{"application/xml"}, op)

	global, ok := parsenode.GetFromTempStorage[[]string](ctx, "produces", nil)
	require.True(t, ok)
	assert.Equal(t, []string{"application/json"}, global)

	scoped, ok := parsenode.GetFromTempStorage[[]string](ctx, "produces", op)
	require.True(t, ok)
	assert.Equal(t, []string{"application/xml"}, scoped)

	_, ok = parsenode.GetFromTempStorage[string](ctx, "produces", nil)
	assert.False(t, ok, "wrong type")

	ctx.ClearTempStorage(op)
	_, ok = parsenode.GetFromTempStorage[[]string](ctx, "produces", op)
	assert.False(t, ok)
}

func TestTempStorage_IsolatedPerContext_Success(t *testing.T) {
	t.Parallel()

	a := parsenode.NewContext()
	b := parsenode.NewContext()
	a.SetTempStorage("host", "a.example.com", nil)

	_, ok := parsenode.GetFromTempStorage[string](b, "host", nil)
	assert.False(t, ok)
}

func TestContext_Location_Success(t *testing.T) {
	t.Parallel()

	ctx := parsenode.NewContext()
	assert.Equal(t, "#", ctx.Location())

	ctx.StartObject("paths")
	ctx.StartObject("/pets/{id}")
	ctx.StartObject("get")
	assert.Equal(t, "#/paths/~1pets~1{id}/get", ctx.Location())

	ctx.EndObject()
	ctx.EndObject()
	ctx.EndObject()
	ctx.EndObject()
	assert.Equal(t, "#", ctx.Location())
}

func TestQuery_Success(t *testing.T) {
	t.Parallel()

	src := `
paths:
  /pets:
    get:
      operationId: listPets
    post:
      operationId: createPet
`
	n := parse(t, src)

	found, err := parsenode.Query(n, "$.paths['/pets'].*.operationId")
	require.NoError(t, err)
	require.Len(t, found, 2)

	var ids []string
	for _, f := range found {
		v, err := f.GetScalarValue()
		require.NoError(t, err)
		ids = append(ids, v)
	}
	assert.Equal(t, []string{"listPets", "createPet"}, ids)
}
