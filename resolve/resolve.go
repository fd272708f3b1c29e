// Package resolve binds the reference placeholders of a document to the components they name.
//
// Resolution is a single walk. Every hook replaces the placeholders among the children of the
// object it is given before the walker reads those children, so a bound component is walked at
// most once no matter how many references, or reference cycles, lead to it.
package resolve

import (
	"context"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/internal/location"
	"github.com/speakeasy-api/oasgraph/logging"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/walk"
	"github.com/speakeasy-api/oasgraph/workspace"
)

type Option[T any] func(o *T)

// Options configure a resolution pass.
type Options struct {
	workspace *workspace.Workspace
	logger    logging.Logger
}

// WithWorkspace resolves external references against the documents registered in ws. Without a
// workspace external references are left unresolved.
func WithWorkspace(ws *workspace.Workspace) Option[Options] {
	return func(o *Options) {
		o.workspace = ws
	}
}

// WithLogger sets the logger used to trace resolution.
func WithLogger(logger logging.Logger) Option[Options] {
	return func(o *Options) {
		o.logger = logging.OrNop(logger)
	}
}

// References resolves the references of doc in place.
//
// Placeholders whose target is found are replaced by the target and their reference marked
// resolved. Placeholders whose target is missing stay in place with their reference marked failed;
// each failure is returned as a *validation.Error wrapping a *Failure. The returned error is only
// set when ctx is done before the pass completes.
//
// Objects of other workspace documents reached through external references are walked too and
// their placeholders bound, but a reference that fails there is left untouched: it is reported by
// the resolution pass of the document that declares it.
func References(ctx context.Context, doc *model.Document, opts ...Option[Options]) ([]error, error) {
	o := Options{logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}

	r := newResolver(ctx, doc, o)
	walk.Walk(doc, r)

	if err := ctx.Err(); err != nil {
		return r.errs, err
	}
	r.logger.Debug("resolved references", "location", r.root.location, "resolved", r.resolved, "failed", len(r.errs), "unresolved", r.unresolved, "deferred", r.deferred)
	return r.errs, nil
}

// origin is the document an object was declared in, which local and relative references within
// the object are resolved against.
type origin struct {
	doc      *model.Document
	location string
}

type resolver struct {
	walk.VisitorBase

	ctx       context.Context
	workspace *workspace.Workspace
	logger    logging.Logger

	root    *origin
	origins map[any]*origin
	byLoc   map[string]*origin

	errs       []error
	resolved   int
	unresolved int
	// deferred counts failures in other documents, left for their own pass.
	deferred int
}

func newResolver(ctx context.Context, doc *model.Document, o Options) *resolver {
	r := &resolver{
		ctx:       ctx,
		workspace: o.workspace,
		logger:    o.logger,
		root:      &origin{doc: doc},
		origins:   map[any]*origin{},
		byLoc:     map[string]*origin{},
	}

	if r.workspace != nil {
		for loc, d := range r.workspace.Documents() {
			if d == doc {
				r.root.location = loc
				break
			}
		}
	}
	r.byLoc[r.root.location] = r.root
	return r
}

// originOf returns the document obj was declared in. Objects never reached through an external
// reference belong to the document being resolved.
func (r *resolver) originOf(obj any) *origin {
	if o, ok := r.origins[obj]; ok {
		return o
	}
	return r.root
}

// inherit records that child was declared in the same document as its parent.
func (r *resolver) inherit(child any, from *origin) {
	if from == r.root {
		return
	}
	if _, ok := r.origins[child]; !ok {
		r.origins[child] = from
	}
}

func (r *resolver) originAt(loc string, doc *model.Document) *origin {
	if o, ok := r.byLoc[loc]; ok {
		return o
	}
	o := &origin{doc: doc, location: loc}
	r.byLoc[loc] = o
	return o
}

// lookup finds the component ref names, following aliases: components that are themselves
// references. Local references are looked up in from, external ones in the workspace relative
// to from's location.
func (r *resolver) lookup(ref *model.Reference, from *origin) (model.Referenceable, *origin, error) {
	seen := map[string]struct{}{}

	for {
		var target model.Referenceable
		if ref.IsExternal() {
			if r.workspace == nil {
				return nil, nil, errNoWorkspace
			}
			loc, err := location.Join(from.location, ref.ExternalResource)
			if err != nil {
				return nil, nil, workspace.ErrExternalDocumentNotRegistered.Wrap(err)
			}
			if err := visit(seen, loc, ref); err != nil {
				return nil, nil, err
			}

			target, err = r.workspace.ResolveReference(&model.Reference{Type: ref.Type, ID: ref.ID, ExternalResource: loc})
			if err != nil {
				return nil, nil, err
			}
			doc, _ := r.workspace.Document(loc)
			from = r.originAt(loc, doc)
		} else {
			if err := visit(seen, from.location, ref); err != nil {
				return nil, nil, err
			}

			var ok bool
			target, ok = from.doc.Components.Get(ref.Type, ref.ID)
			if !ok {
				return nil, nil, ErrLocalReferenceNotFound.Wrapf("%s", ref.Pointer())
			}
		}

		if !target.IsUnresolved() {
			return target, from, nil
		}
		ref = target.GetReference()
		if ref == nil {
			return nil, nil, ErrLocalReferenceNotFound.Wrapf("alias without reference")
		}
	}
}

func visit(seen map[string]struct{}, loc string, ref *model.Reference) error {
	key := loc + ref.Pointer()
	if _, ok := seen[key]; ok {
		return ErrCircularReference.Wrapf("%s", key)
	}
	seen[key] = struct{}{}
	return nil
}

func (r *resolver) fail(p model.Referenceable, at string, err error) {
	ref := p.GetReference()
	ref.State = model.ReferenceStateFailed
	ref.Failure = err

	failure := &Failure{Reference: ref, Location: at, Err: err}
	vErr := validation.NewError(validation.SeverityError, failure.rule(), failure, at)
	if located, ok := p.(model.Located); ok {
		if node := located.GetRootNode(); node != nil {
			vErr.Line = node.Line
			vErr.Column = node.Column
		}
	}
	if doc := r.root.location; doc != "" {
		vErr.DocumentLocation = doc
	}
	r.errs = append(r.errs, vErr)
	r.logger.Debug("reference failed", "ref", ref.String(), "location", at, "error", err)
}

// resolveSlot replaces the placeholder held in slot by its target.
func resolveSlot[T any, P interface {
	*T
	model.Referenceable
}](r *resolver, slot *P, from *origin, segments ...string) {
	p := *slot
	if p == nil {
		return
	}
	if !p.IsUnresolved() {
		r.inherit(p, from)
		return
	}
	ref := p.GetReference()
	if ref == nil || ref.State == model.ReferenceStateFailed || r.ctx.Err() != nil {
		return
	}

	at := r.at(segments...)
	target, targetOrigin, err := r.lookup(ref, from)
	var bound P
	if err == nil {
		var ok bool
		if bound, ok = target.(P); !ok {
			err = ErrTypeMismatch.Wrapf("%s is a %T", ref, target)
		}
	}

	switch {
	case errors.Is(err, errNoWorkspace):
		r.unresolved++
		return
	case err != nil && from != r.root:
		r.deferred++
		r.logger.Debug("reference failure deferred", "ref", ref.String(), "document", from.location, "error", err)
		return
	case err != nil:
		r.fail(p, at, err)
		return
	}

	ref.State = model.ReferenceStateResolved
	ref.Failure = nil
	if _, ok := r.origins[bound]; !ok && targetOrigin != r.root {
		r.origins[bound] = targetOrigin
	}
	*slot = bound
	r.resolved++
}

// at returns the location of a child of the object being visited.
func (r *resolver) at(segments ...string) string {
	loc := r.Location()
	for _, s := range segments {
		loc += "/" + walk.EscapeSegment(s)
	}
	return loc
}
