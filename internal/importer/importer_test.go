package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzofim/peula/internal/domain"
)

func ptrStr(s string) *string { return &s }

func TestParseDocumentURL(t *testing.T) {
	cases := []struct {
		url    string
		wantID string
		ok     bool
	}{
		{"https://docs.google.com/document/d/1AbC_d-E2f/edit", "1AbC_d-E2f", true},
		{"https://docs.google.com/document/d/1AbC/edit?usp=sharing", "1AbC", true},
		{"  https://docs.google.com/document/d/xyz/  ", "xyz", true},
		{"https://docs.google.com/spreadsheets/d/xyz/edit", "", false},
		{"https://example.com/doc/123", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			id, err := ParseDocumentURL(tc.url)
			if !tc.ok {
				var vErr *domain.ValidationError
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, "url", vErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestToTrainingExample(t *testing.T) {
	doc := &ImportedDocument{DocumentID: "d1", Title: " Night Navigation ", Text: "\nStars and compasses.\n"}
	ex, err := ToTrainingExample(doc, ptrStr("  from 2025 camp "))
	require.NoError(t, err)
	assert.NotEmpty(t, ex.ID)
	assert.Equal(t, "Night Navigation", ex.Title)
	assert.Equal(t, "Stars and compasses.", ex.Content)
	require.NotNil(t, ex.Notes)
	assert.Equal(t, "from 2025 camp", *ex.Notes)
	assert.False(t, ex.CreatedAt.IsZero())
}

func TestToTrainingExample_UntitledAndNoNotes(t *testing.T) {
	ex, err := ToTrainingExample(&ImportedDocument{DocumentID: "d2", Text: "body"}, ptrStr("   "))
	require.NoError(t, err)
	assert.Equal(t, untitledDocument, ex.Title)
	assert.Nil(t, ex.Notes)
}

func TestToTrainingExample_EmptyDocument(t *testing.T) {
	_, err := ToTrainingExample(&ImportedDocument{DocumentID: "d3", Title: "Empty", Text: "  "}, nil)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Details[0], "has no text")
}
