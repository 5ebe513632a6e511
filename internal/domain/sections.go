package domain

import "fmt"

// SectionCount is the fixed number of components in every peula.
const SectionCount = 9

// sectionNames are the fixed display names of the nine peula sections, in order.
var sectionNames = [SectionCount]string{
	"Topic & Educational Goal",
	"Opening Hook",
	"Icebreaker & Group Dynamics",
	"Core Activity",
	"Deepening Discussion",
	"Values & Scout Methodology",
	"Practical Challenge",
	"Summary & Closing",
	"Reflection & Debrief",
}

// SectionName returns the display name of the section at index, or "" when
// the index is out of range.
func SectionName(index int) string {
	if !ValidSectionIndex(index) {
		return ""
	}
	return sectionNames[index]
}

// SectionLabel returns the ordinal label for a section, e.g. "4. Core Activity".
func SectionLabel(index int) string {
	if !ValidSectionIndex(index) {
		return ""
	}
	return fmt.Sprintf("%d. %s", index+1, sectionNames[index])
}

// SectionNames returns a copy of all nine section names in order.
func SectionNames() []string {
	out := make([]string, SectionCount)
	copy(out, sectionNames[:])
	return out
}

// ValidSectionIndex reports whether index addresses one of the nine sections.
func ValidSectionIndex(index int) bool {
	return index >= 0 && index < SectionCount
}

// ValidateSectionIndex returns a ValidationError when index is outside [0,8].
func ValidateSectionIndex(field string, index int) error {
	if ValidSectionIndex(index) {
		return nil
	}
	return NewValidationError(field, fmt.Sprintf("must be between 0 and %d, got %d", SectionCount-1, index))
}
