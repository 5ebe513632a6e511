package formatter

import (
	"fmt"
	"strings"

	"github.com/tzofim/peula/internal/template"
)

// FormatTemplateList renders the template catalog inside a box.
func FormatTemplateList(templates []template.Template) string {
	t := NewTable("ID", "NAME", "AGE", "DURATION")
	for _, tpl := range templates {
		t.Row(Dim(tpl.ID), Bold(tpl.Name), Badge(tpl.AgeGroup), tpl.Duration)
	}
	return RenderBox("Templates", t.Render())
}

// FormatTemplateShow renders one template as a detail card.
func FormatTemplateShow(tpl template.Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", Bold(tpl.Name), Dim(tpl.ID))
	if tpl.Description != "" {
		b.WriteString(tpl.Description + "\n\n")
	}
	fields := []struct{ label, value string }{
		{"TOPIC   ", tpl.Topic},
		{"GOALS   ", tpl.Goals},
		{"AGE     ", tpl.AgeGroup},
		{"DURATION", tpl.Duration},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(&b, "  %s  %s\n", StyleDim.Render(f.label), f.value)
	}
	return RenderBox("", strings.TrimRight(b.String(), "\n"))
}
