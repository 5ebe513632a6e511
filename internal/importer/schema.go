// Package importer turns external documents into training examples.
package importer

import "context"

// ImportedDocument is the plain-text rendering of an external document.
type ImportedDocument struct {
	DocumentID string
	Title      string
	// Text holds paragraphs and table cells in document order.
	Text string
}

// DocumentSource fetches a document by id.
type DocumentSource interface {
	FetchDocument(ctx context.Context, documentID string) (*ImportedDocument, error)
}
