// Package extensions holds the vendor extensions (x-* fields) attached to model objects.
package extensions

import (
	"fmt"
	"strings"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
	"gopkg.in/yaml.v3"
)

const (
	// Prefix is the key prefix that marks a field as a vendor extension.
	Prefix = "x-"

	ErrNotFound = errors.Error("extension not found")
)

// Extension represents a single extension to an object, in its raw form.
type Extension = *yaml.Node

// Extensible is implemented by model objects that can carry vendor extensions.
type Extensible interface {
	AddExtension(key string, value Extension)
}

// Extensions represents a set of extensions to an object in declaration order.
type Extensions struct {
	*sequencedmap.Map[string, Extension]
}

// New will create a new extensions set.
func New(elements ...*sequencedmap.Element[string, Extension]) *Extensions {
	return &Extensions{
		Map: sequencedmap.New(elements...),
	}
}

// IsExtension reports whether key names a vendor extension.
func IsExtension(key string) bool {
	return strings.HasPrefix(key, Prefix)
}

// Init will initialize the extensions set.
func (e *Extensions) Init() {
	if e.Map == nil {
		e.Map = sequencedmap.New[string, Extension]()
	}
}

// Add stores value under key, replacing any previous value.
func (e *Extensions) Add(key string, value Extension) {
	e.Init()
	e.Set(key, value)
}

// Len returns the number of extensions. nil safe.
func (e *Extensions) Len() int {
	if e == nil {
		return 0
	}
	return e.Map.Len()
}

// Decode decodes the extension stored under key into a value of type T.
func Decode[T any](e *Extensions, key string) (*T, error) {
	if e == nil {
		return nil, ErrNotFound.Wrapf("%s", key)
	}

	node, ok := e.Get(key)
	if !ok || node == nil {
		return nil, ErrNotFound.Wrapf("%s", key)
	}

	var v T
	if err := node.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode extension %s: %w", key, err)
	}

	return &v, nil
}
