package formatter

import (
	"fmt"
	"strings"

	"github.com/tzofim/peula/internal/domain"
)

// FormatPeulaList renders stored peulot, newest first as given.
func FormatPeulaList(peulot []*domain.Peula) string {
	if len(peulot) == 0 {
		return Dim("No peulot yet.") + "\n"
	}
	t := NewTable("ID", "TITLE", "TOPIC", "AGE", "CREATED")
	for _, p := range peulot {
		t.Row(ShortID(p.ID), Bold(p.Title), p.Topic, Badge(p.AgeGroup), p.CreatedAt.Format("2006-01-02"))
	}
	return RenderBox("Peulot", t.Render())
}

// FormatPeula renders the header fields and all nine sections.
func FormatPeula(p *domain.Peula) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Bold(p.Title))
	fmt.Fprintf(&b, "%s · %s · %s · group of %s\n", p.Topic, p.AgeGroup, p.Duration, p.GroupSize)
	fmt.Fprintf(&b, "%s %s\n", Dim("Goals:"), p.Goals)
	if len(p.AvailableMaterials) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Materials:"), strings.Join(p.AvailableMaterials, ", "))
	}
	if s := domain.StringValue(p.SpecialConsiderations); s != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Considerations:"), s)
	}

	for _, c := range p.Content.Components {
		b.WriteString("\n" + Header(c.Component) + "\n")
		fmt.Fprintf(&b, "%s\n", c.Description)
		if c.BestPractices != "" {
			fmt.Fprintf(&b, "%s %s\n", StyleGreen.Render("Best practices:"), c.BestPractices)
		}
		if c.TimeStructure != "" {
			fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("Time:"), c.TimeStructure)
		}
	}
	return b.String()
}
