package googledocs

import (
	"context"
	"strings"

	"google.golang.org/api/docs/v1"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/importer"
)

// Reader fetches documents as plain text. It implements
// importer.DocumentSource.
type Reader struct {
	svc *Services
}

func NewReader(svc *Services) *Reader {
	return &Reader{svc: svc}
}

var _ importer.DocumentSource = (*Reader)(nil)

func (r *Reader) FetchDocument(ctx context.Context, documentID string) (*importer.ImportedDocument, error) {
	if r == nil || r.svc == nil {
		return nil, notConfigured()
	}
	doc, err := r.svc.Docs.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		if isNotFound(err) {
			return nil, &domain.ExternalServiceError{Service: serviceName, Message: "document not found", Err: err}
		}
		return nil, externalError("reading document", err)
	}
	return &importer.ImportedDocument{
		DocumentID: documentID,
		Title:      doc.Title,
		Text:       DocumentText(doc),
	}, nil
}

// DocumentText flattens paragraphs and table cells in document order.
func DocumentText(doc *docs.Document) string {
	if doc == nil || doc.Body == nil {
		return ""
	}
	var b strings.Builder
	writeElements(&b, doc.Body.Content)
	return strings.TrimSpace(b.String())
}

func writeElements(b *strings.Builder, elements []*docs.StructuralElement) {
	for _, el := range elements {
		switch {
		case el.Paragraph != nil:
			for _, pe := range el.Paragraph.Elements {
				if pe.TextRun != nil {
					b.WriteString(pe.TextRun.Content)
				}
			}
		case el.Table != nil:
			for _, row := range el.Table.TableRows {
				for _, cell := range row.TableCells {
					writeElements(b, cell.Content)
				}
			}
		case el.TableOfContents != nil:
			writeElements(b, el.TableOfContents.Content)
		}
	}
}
