// Package reader is the entry point for hosts: it reads Swagger 2.0 documents from YAML or JSON,
// builds the model and resolves its references.
//
//	doc, diag, err := reader.Read(ctx, f, reader.WithLocation("petstore.yaml"))
//	if err != nil {
//		return err
//	}
//	for _, e := range diag.Errors {
//		fmt.Println(e)
//	}
package reader

import (
	"context"
	"fmt"
	"io"

	"github.com/speakeasy-api/oasgraph/errors"
	"github.com/speakeasy-api/oasgraph/logging"
	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/parsenode"
	"github.com/speakeasy-api/oasgraph/resolve"
	"github.com/speakeasy-api/oasgraph/swagger"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/workspace"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSyntax is returned when the input is neither valid YAML nor valid JSON.
const ErrInvalidSyntax = errors.Error("invalid syntax")

type Option[T any] func(o *T)

// ReadOptions configure how documents are read.
type ReadOptions struct {
	logger                logging.Logger
	workspace             *workspace.Workspace
	location              string
	stopOnStructuralError bool
	skipResolution        bool
}

// WithLogger sets the logger used while reading and resolving.
func WithLogger(logger logging.Logger) Option[ReadOptions] {
	return func(o *ReadOptions) {
		o.logger = logging.OrNop(logger)
	}
}

// WithWorkspace registers the document in ws under its location and resolves its external
// references against the documents of ws.
func WithWorkspace(ws *workspace.Workspace) Option[ReadOptions] {
	return func(o *ReadOptions) {
		o.workspace = ws
	}
}

// WithLocation sets the location of the document. It is used to register the document in a
// workspace, to resolve relative external references and to tag diagnostics.
func WithLocation(location string) Option[ReadOptions] {
	return func(o *ReadOptions) {
		o.location = location
	}
}

// WithStopOnStructuralError makes reading fail on the first structural error instead of recording
// it as a diagnostic and skipping the offending field.
func WithStopOnStructuralError() Option[ReadOptions] {
	return func(o *ReadOptions) {
		o.stopOnStructuralError = true
	}
}

// WithSkipResolution leaves every reference as an unresolved placeholder.
func WithSkipResolution() Option[ReadOptions] {
	return func(o *ReadOptions) {
		o.skipResolution = true
	}
}

func newOptions(opts []Option[ReadOptions]) ReadOptions {
	o := ReadOptions{logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Read reads a document from r.
//
// The returned diagnostic holds every problem found while reading and resolving, sorted by
// position. The error is only set when no document could be produced: the input is not valid
// YAML or JSON, the document is not Swagger 2.0, a structural error occurred with
// WithStopOnStructuralError, or ctx is done.
func Read(ctx context.Context, r io.Reader, opts ...Option[ReadOptions]) (*model.Document, *validation.Diagnostic, error) {
	node, err := decode(r)
	if err != nil {
		return nil, nil, err
	}
	return ReadNode(ctx, node, opts...)
}

// ReadNode reads a document from an already decoded node tree.
func ReadNode(ctx context.Context, node *yaml.Node, opts ...Option[ReadOptions]) (*model.Document, *validation.Diagnostic, error) {
	o := newOptions(opts)

	doc, diag, err := load(ctx, node, o)
	if err != nil {
		return nil, diag, err
	}

	if o.workspace != nil && o.location != "" {
		o.workspace.AddDocument(o.location, doc)
	}

	if !o.skipResolution {
		if err := resolveInto(ctx, doc, diag, o); err != nil {
			return doc, diag, err
		}
	}

	validation.SortValidationErrors(diag.Errors)
	return doc, diag, nil
}

func decode(r io.Reader) (*yaml.Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, ErrInvalidSyntax.Wrap(err)
	}
	return &node, nil
}

// load builds the model of a single document without resolving it.
func load(ctx context.Context, node *yaml.Node, o ReadOptions) (*model.Document, *validation.Diagnostic, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	ctxOpts := []parsenode.Option[parsenode.Context]{
		parsenode.WithLogger(o.logger),
		parsenode.WithDocumentLocation(o.location),
	}
	if o.stopOnStructuralError {
		ctxOpts = append(ctxOpts, parsenode.WithStopOnStructuralError())
	}
	pctx := parsenode.NewContext(ctxOpts...)

	doc, err := swagger.Load(parsenode.Create(pctx, node))
	if err != nil {
		return nil, pctx.Diagnostic(), err
	}

	o.logger.Debug("read document", "location", o.location, "diagnostics", len(pctx.Diagnostic().Errors))
	return doc, pctx.Diagnostic(), nil
}

func resolveInto(ctx context.Context, doc *model.Document, diag *validation.Diagnostic, o ReadOptions) error {
	resolveOpts := []resolve.Option[resolve.Options]{resolve.WithLogger(o.logger)}
	if o.workspace != nil {
		resolveOpts = append(resolveOpts, resolve.WithWorkspace(o.workspace))
	}

	errs, err := resolve.References(ctx, doc, resolveOpts...)
	diag.AddAll(errs)
	return err
}
