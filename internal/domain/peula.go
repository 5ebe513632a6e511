package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PeulaComponent is one of the nine fixed sections of a peula.
type PeulaComponent struct {
	Component     string `json:"component"`
	Description   string `json:"description"`
	BestPractices string `json:"bestPractices"`
	TimeStructure string `json:"timeStructure"`
}

// Complete reports whether every field of the component carries text.
func (c PeulaComponent) Complete() bool {
	return strings.TrimSpace(c.Component) != "" &&
		strings.TrimSpace(c.Description) != "" &&
		strings.TrimSpace(c.BestPractices) != "" &&
		strings.TrimSpace(c.TimeStructure) != ""
}

// PeulaContent is the stored body of a peula. Components always has exactly
// SectionCount entries, addressed by position.
type PeulaContent struct {
	Components []PeulaComponent `json:"components"`
}

// Validate checks the nine-section shape.
func (c PeulaContent) Validate() error {
	if len(c.Components) != SectionCount {
		return fmt.Errorf("peula content must have %d components, got %d", SectionCount, len(c.Components))
	}
	return nil
}

// DecodePeulaContent parses stored content and rejects anything that does not
// have the nine-section shape.
func DecodePeulaContent(raw []byte) (PeulaContent, error) {
	var c PeulaContent
	if err := json.Unmarshal(raw, &c); err != nil {
		return PeulaContent{}, fmt.Errorf("decoding peula content: %w", err)
	}
	if err := c.Validate(); err != nil {
		return PeulaContent{}, err
	}
	return c, nil
}

// Encode serializes content for storage.
func (c PeulaContent) Encode() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(c)
}

// Clone returns a deep copy of the content.
func (c PeulaContent) Clone() PeulaContent {
	out := PeulaContent{Components: make([]PeulaComponent, len(c.Components))}
	copy(out.Components, c.Components)
	return out
}

// SectionRevision is a regenerated section body. The label is never part of
// a revision; it is kept from the stored component.
type SectionRevision struct {
	Description   string `json:"description"`
	BestPractices string `json:"bestPractices"`
	TimeStructure string `json:"timeStructure"`
}

// ApplySectionRevision replaces description, best practices and time
// structure of the component at index, keeping its label. The other
// components are left untouched. c is modified in place.
func ApplySectionRevision(c *PeulaContent, index int, rev SectionRevision) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := ValidateSectionIndex("sectionIndex", index); err != nil {
		return err
	}
	c.Components[index] = PeulaComponent{
		Component:     c.Components[index].Component,
		Description:   rev.Description,
		BestPractices: rev.BestPractices,
		TimeStructure: rev.TimeStructure,
	}
	return nil
}

// Peula is a saved activity plan.
type Peula struct {
	ID                    string       `json:"id"`
	Title                 string       `json:"title"`
	Topic                 string       `json:"topic"`
	AgeGroup              string       `json:"ageGroup"`
	Duration              string       `json:"duration"`
	GroupSize             string       `json:"groupSize"`
	Goals                 string       `json:"goals"`
	AvailableMaterials    []string     `json:"availableMaterials"`
	SpecialConsiderations *string      `json:"specialConsiderations"`
	Content               PeulaContent `json:"content"`
	CreatedAt             time.Time    `json:"createdAt"`

	// Version is bumped on every content update and used for compare-and-swap.
	Version int `json:"-"`
}

// Context returns the classification fields used to regenerate a section.
func (p *Peula) Context() PeulaContext {
	return PeulaContext{
		Topic:                 p.Topic,
		AgeGroup:              p.AgeGroup,
		Duration:              p.Duration,
		GroupSize:             p.GroupSize,
		Goals:                 p.Goals,
		AvailableMaterials:    p.AvailableMaterials,
		SpecialConsiderations: StringValue(p.SpecialConsiderations),
	}
}

// PeulaContext mirrors the stored classification fields of a peula.
type PeulaContext struct {
	Topic                 string
	AgeGroup              string
	Duration              string
	GroupSize             string
	Goals                 string
	AvailableMaterials    []string
	SpecialConsiderations string
}
