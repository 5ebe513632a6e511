package importer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tzofim/peula/internal/domain"
)

var documentURLPattern = regexp.MustCompile(`/document/d/([a-zA-Z0-9_-]+)`)

// ParseDocumentURL extracts the document id from a document link such as
// https://docs.google.com/document/d/<id>/edit.
func ParseDocumentURL(raw string) (string, error) {
	m := documentURLPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return "", domain.NewValidationError("url", "must be a document link containing /document/d/<id>/")
	}
	return m[1], nil
}

// ValidateDocument checks a fetched document before conversion.
// Returns a slice of all validation errors found.
func ValidateDocument(doc *ImportedDocument) []error {
	var errs []error
	if doc == nil {
		return []error{fmt.Errorf("document is required")}
	}
	if strings.TrimSpace(doc.Text) == "" {
		errs = append(errs, fmt.Errorf("document %s has no text", doc.DocumentID))
	}
	return errs
}
