// Package workspace holds a set of documents keyed by location so references between them can be resolved.
package workspace

import (
	"fmt"
	"iter"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/internal/location"
	"github.com/speakeasy-api/oasgraph/logging"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/sequencedmap"
)

const (
	// ErrExternalDocumentNotRegistered is returned for references into a location with no document.
	ErrExternalDocumentNotRegistered = errors.Error("external document not registered")
	// ErrExternalReferenceNotFound is returned when the document is registered but does not declare the component.
	ErrExternalReferenceNotFound = errors.Error("external reference not found")
)

type Option[T any] func(o *T)

// WithLogger sets the logger used to trace registrations and lookups.
func WithLogger(logger logging.Logger) Option[Workspace] {
	return func(w *Workspace) {
		w.logger = logging.OrNop(logger)
	}
}

// Workspace is a registry of documents keyed by normalized location, in registration order.
//
// A Workspace is not safe for concurrent mutation. Register every document before resolving;
// lookups afterwards only read.
type Workspace struct {
	documents *sequencedmap.Map[string, *model.Document]
	logger    logging.Logger
}

// New creates an empty Workspace.
func New(opts ...Option[Workspace]) *Workspace {
	w := &Workspace{
		documents: sequencedmap.New[string, *model.Document](),
		logger:    logging.NopLogger{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// AddDocument registers doc under loc. A document already registered there is replaced.
func (w *Workspace) AddDocument(loc string, doc *model.Document) {
	key := NormalizeLocation(loc)
	if w.documents.Has(key) {
		w.logger.Debug("replacing workspace document", "location", key)
	} else {
		w.logger.Debug("adding workspace document", "location", key)
	}
	w.documents.Set(key, doc)
}

// Document returns the document registered under loc.
func (w *Workspace) Document(loc string) (*model.Document, bool) {
	return w.documents.Get(NormalizeLocation(loc))
}

// Contains reports whether a document is registered under loc.
func (w *Workspace) Contains(loc string) bool {
	return w.documents.Has(NormalizeLocation(loc))
}

// Documents iterates the registered documents in registration order.
func (w *Workspace) Documents() iter.Seq2[string, *model.Document] {
	return w.documents.All()
}

// Len returns the number of registered documents.
func (w *Workspace) Len() int {
	return w.documents.Len()
}

// ResolveReference returns the component ref names in the document registered under its external
// resource. The component is returned as declared, which may itself be an unresolved alias.
func (w *Workspace) ResolveReference(ref *model.Reference) (model.Referenceable, error) {
	if ref == nil {
		return nil, ErrExternalReferenceNotFound.Wrapf("no reference")
	}

	loc := NormalizeLocation(ref.ExternalResource)
	doc, ok := w.documents.Get(loc)
	if !ok || doc == nil {
		return nil, ErrExternalDocumentNotRegistered.Wrapf("%s", loc)
	}

	target, ok := doc.Components.Get(ref.Type, ref.ID)
	if !ok {
		return nil, ErrExternalReferenceNotFound.Wrap(fmt.Errorf("%s has no %s %q", loc, ref.Type, ref.ID))
	}
	return target, nil
}

// NormalizeLocation returns the key a location is registered under. URLs are kept as given, file
// paths are cleaned and use forward slashes, so "./specs/../common.yaml" and "common.yaml" match.
func NormalizeLocation(loc string) string {
	return location.Normalize(loc)
}
