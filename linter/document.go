package linter

import (
	"github.com/speakeasy-api/oasgraph/model"
)

// DocumentInfo contains a document and its metadata for linting
type DocumentInfo struct {
	// Document is the parsed, and usually resolved, document to lint
	Document *model.Document

	// Location identifies the document in diagnostics, typically the location it was registered under in a workspace
	Location string
}

// NewDocumentInfo creates a new DocumentInfo with the given document and location
func NewDocumentInfo(doc *model.Document, location string) *DocumentInfo {
	return &DocumentInfo{
		Document: doc,
		Location: location,
	}
}
