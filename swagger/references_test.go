package swagger_test

import (
	"testing"

	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/swagger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionService_ConvertToReference_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ref      string
		refType  model.ReferenceType
		expected model.Reference
	}{
		{
			name:     "local definition",
			ref:      "#/definitions/Pet",
			refType:  model.ReferenceTypeSchema,
			expected: model.Reference{Type: model.ReferenceTypeSchema, ID: "Pet"},
		},
		{
			name:     "external parameter",
			ref:      "common.yaml#/parameters/limit",
			refType:  model.ReferenceTypeParameter,
			expected: model.Reference{Type: model.ReferenceTypeParameter, ID: "limit", ExternalResource: "common.yaml"},
		},
		{
			name:     "parameter read as request body",
			ref:      "#/parameters/body",
			refType:  model.ReferenceTypeRequestBody,
			expected: model.Reference{Type: model.ReferenceTypeRequestBody, ID: "body"},
		},
		{
			name:     "escaped id",
			ref:      "#/definitions/a~1b",
			refType:  model.ReferenceTypeSchema,
			expected: model.Reference{Type: model.ReferenceTypeSchema, ID: "a/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref, err := swagger.VersionService{}.ConvertToReference(tt.ref, tt.refType)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *ref)
		})
	}
}

func TestVersionService_ConvertToReference_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		ref     string
		refType model.ReferenceType
	}{
		{name: "no fragment", ref: "Pet", refType: model.ReferenceTypeSchema},
		{name: "unknown section", ref: "#/components/schemas/Pet", refType: model.ReferenceTypeSchema},
		{name: "wrong kind", ref: "#/definitions/Pet", refType: model.ReferenceTypeParameter},
		{name: "too deep", ref: "#/definitions/Pet/properties/id", refType: model.ReferenceTypeSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := swagger.VersionService{}.ConvertToReference(tt.ref, tt.refType)
			assert.Error(t, err)
		})
	}
}
