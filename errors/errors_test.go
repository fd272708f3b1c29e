package errors_test

import (
	"fmt"
	"testing"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const errTest = errors.Error("test failure")

func TestError_Is_Success(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "sentinel itself", err: errTest, expected: true},
		{name: "wrapped sentinel", err: errTest.Wrap(errors.New("cause")), expected: true},
		{name: "wrapped with fmt", err: fmt.Errorf("outer: %w", errTest.Wrapf("id %s", "Pet")), expected: true},
		{name: "different sentinel", err: errors.Error("other failure"), expected: false},
		{name: "plain error", err: errors.New("test failure extra"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, errors.Is(tt.err, errTest))
		})
	}
}

func TestError_Wrap_Success(t *testing.T) {
	t.Parallel()

	cause := errors.New("Pet not found")
	err := errTest.Wrap(cause)

	assert.Equal(t, "test failure -- Pet not found", err.Error())
	require.ErrorIs(t, err, cause)

	var sentinel errors.Error
	require.True(t, errors.As(err, &sentinel))
	assert.Equal(t, errTest, sentinel)
}

func TestUnwrapErrors_Success(t *testing.T) {
	t.Parallel()

	a := errors.New("a")
	b := errors.New("b")

	assert.Nil(t, errors.UnwrapErrors(nil))
	assert.Equal(t, []error{a}, errors.UnwrapErrors(a))
	assert.Equal(t, []error{a, b}, errors.UnwrapErrors(errors.Join(a, b)))
}
