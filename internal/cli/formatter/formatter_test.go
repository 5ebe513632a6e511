package formatter

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tzofim/peula/internal/domain"
	"github.com/tzofim/peula/internal/template"
	"github.com/tzofim/peula/internal/testutil"
)

func TestTable_AlignsStyledCells(t *testing.T) {
	out := NewTable("A", "LONGER").
		Row(Bold("x"), "1").
		Row("wide cell", "22").
		Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	// Second column starts at the same visible offset on every data row.
	first := lipgloss.Width(lines[2]) - lipgloss.Width("1")
	second := lipgloss.Width(lines[3]) - lipgloss.Width("22")
	assert.Equal(t, first, second)
}

func TestTable_RowPadsAndTruncates(t *testing.T) {
	tbl := NewTable("A", "B").Row("only").Row("x", "y", "dropped")
	assert.Equal(t, 2, tbl.Len())
	assert.NotContains(t, tbl.Render(), "dropped")
	assert.Empty(t, NewTable().Render())
}

func TestFormatTemplateList(t *testing.T) {
	out := FormatTemplateList([]template.Template{
		{ID: "custom", Name: "Custom Peula"},
		{ID: "teamwork", Name: "Teamwork Challenge", AgeGroup: "10-12", Duration: "60 minutes"},
	})
	assert.Contains(t, out, "TEMPLATES")
	assert.Contains(t, out, "Custom Peula")
	assert.Contains(t, out, "Teamwork Challenge")
	assert.Contains(t, out, "60 minutes")
}

func TestFormatTemplateShow_SkipsEmptyFields(t *testing.T) {
	out := FormatTemplateShow(template.Template{ID: "custom", Name: "Custom Peula", Description: "Blank"})
	assert.Contains(t, out, "Custom Peula")
	assert.Contains(t, out, "Blank")
	assert.NotContains(t, out, "TOPIC")
}

func TestFormatPeula(t *testing.T) {
	p := testutil.NewTestPeula("Campfire stories", testutil.WithSpecialConsiderations("two new scouts"))
	out := FormatPeula(p)
	assert.Contains(t, out, "Campfire stories")
	assert.Contains(t, out, "rope, markers")
	assert.Contains(t, out, "two new scouts")
	for i := 0; i < domain.SectionCount; i++ {
		assert.Contains(t, out, strings.ToUpper(domain.SectionLabel(i)))
	}
}

func TestFormatPeulaList(t *testing.T) {
	assert.Contains(t, FormatPeulaList(nil), "No peulot yet.")
	out := FormatPeulaList([]*domain.Peula{testutil.NewTestPeula("Night hike")})
	assert.Contains(t, out, "Night hike")
	assert.Contains(t, out, "PEULOT")
}

func TestTable_HeaderAndSeparatorSpanColumns(t *testing.T) {
	out := NewTable("ID", "NAME").Row("abc", "Campfire").Render()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], strings.Repeat("─", lipgloss.Width("abc")))
	assert.Contains(t, lines[1], strings.Repeat("─", lipgloss.Width("Campfire")))
}
