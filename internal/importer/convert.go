package importer

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tzofim/peula/internal/domain"
)

const untitledDocument = "Untitled document"

// ToTrainingExample converts a fetched document into a training example.
// The document's title becomes the example title and its text the content.
func ToTrainingExample(doc *ImportedDocument, notes *string) (*domain.TrainingExample, error) {
	if errs := ValidateDocument(doc); len(errs) > 0 {
		details := make([]string, 0, len(errs))
		for _, e := range errs {
			details = append(details, e.Error())
		}
		return nil, &domain.ValidationError{Field: "document", Message: "cannot be imported", Details: details}
	}

	ex := &domain.TrainingExample{
		ID:        uuid.New().String(),
		Title:     domain.CoalesceStr(strings.TrimSpace(doc.Title), untitledDocument),
		Content:   strings.TrimSpace(doc.Text),
		Notes:     domain.OptionalString(domain.StringValue(notes)),
		CreatedAt: time.Now().UTC(),
	}
	if err := ex.Validate(); err != nil {
		return nil, err
	}
	return ex, nil
}
