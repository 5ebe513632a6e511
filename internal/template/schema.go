package template

import (
	"fmt"
	"strings"
)

// Template is a preset for the questionnaire. Only ID and Name are required;
// the custom template carries nothing else.
type Template struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Topic       string `yaml:"topic,omitempty" json:"topic,omitempty"`
	Goals       string `yaml:"goals,omitempty" json:"goals,omitempty"`
	AgeGroup    string `yaml:"ageGroup,omitempty" json:"ageGroup,omitempty"`
	Duration    string `yaml:"duration,omitempty" json:"duration,omitempty"`
}

// catalogFile is the on-disk shape of a catalog YAML file.
type catalogFile struct {
	Templates []Template `yaml:"templates"`
}

// ValidateCatalog checks every template and returns all problems found.
func ValidateCatalog(templates []Template) []error {
	var errs []error
	seen := make(map[string]bool, len(templates))
	for i, t := range templates {
		id := strings.TrimSpace(t.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("template %d: id is required", i))
		} else if seen[id] {
			errs = append(errs, fmt.Errorf("template %d: duplicate id %q", i, id))
		}
		seen[id] = true
		if strings.TrimSpace(t.Name) == "" {
			errs = append(errs, fmt.Errorf("template %d: name is required", i))
		}
	}
	return errs
}
