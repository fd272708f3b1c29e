package reader

import (
	"context"
	"io"

	"github.com/speakeasy-api/oasgraph/model"
	"github.com/speakeasy-api/oasgraph/validation"
	"github.com/speakeasy-api/oasgraph/workspace"
	"golang.org/x/sync/errgroup"
)

// Source is one input of ReadAll.
type Source struct {
	// Location identifies the document in the workspace. Relative external references of the
	// document are resolved against it.
	Location string
	Reader   io.Reader
}

// Result is the outcome of reading one Source.
type Result struct {
	Location   string
	Document   *model.Document
	Diagnostic *validation.Diagnostic
}

// ReadAll reads several documents that reference each other.
//
// Sources are parsed concurrently, then registered in the workspace in the order given, then
// resolved one after the other against the workspace. A new workspace is created unless one is
// provided with WithWorkspace; WithLocation is ignored. Results are in the order of sources.
func ReadAll(ctx context.Context, sources []Source, opts ...Option[ReadOptions]) (*workspace.Workspace, []*Result, error) {
	o := newOptions(opts)
	ws := o.workspace
	if ws == nil {
		ws = workspace.New(workspace.WithLogger(o.logger))
	}

	results := make([]*Result, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		g.Go(func() error {
			node, err := decode(source.Reader)
			if err != nil {
				return err
			}

			so := o
			so.location = source.Location
			doc, diag, err := load(gctx, node, so)
			if err != nil {
				return err
			}

			results[i] = &Result{Location: source.Location, Document: doc, Diagnostic: diag}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for _, result := range results {
		ws.AddDocument(result.Location, result.Document)
	}

	o.workspace = ws
	for _, result := range results {
		if !o.skipResolution {
			if err := resolveInto(ctx, result.Document, result.Diagnostic, o); err != nil {
				return ws, results, err
			}
		}
		validation.SortValidationErrors(result.Diagnostic.Errors)
	}

	return ws, results, nil
}
