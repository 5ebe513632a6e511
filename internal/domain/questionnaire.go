package domain

import "strings"

// CustomTemplateID is the template id meaning "no template".
const CustomTemplateID = "custom"

// QuestionnaireResponse holds the answers a leader gives before generation.
type QuestionnaireResponse struct {
	TemplateID            string   `json:"templateId"`
	Topic                 string   `json:"topic"`
	AgeGroup              string   `json:"ageGroup"`
	Duration              string   `json:"duration"`
	GroupSize             string   `json:"groupSize"`
	Goals                 string   `json:"goals"`
	AvailableMaterials    []string `json:"availableMaterials"`
	SpecialConsiderations string   `json:"specialConsiderations"`
}

// EffectiveTemplateID returns the template id, defaulting to "custom".
func (q QuestionnaireResponse) EffectiveTemplateID() string {
	return CoalesceStr(strings.TrimSpace(q.TemplateID), CustomTemplateID)
}

// Validate checks that every required answer is present.
func (q QuestionnaireResponse) Validate() error {
	var details []string
	required := []struct {
		field string
		value string
	}{
		{"topic", q.Topic},
		{"ageGroup", q.AgeGroup},
		{"duration", q.Duration},
		{"groupSize", q.GroupSize},
		{"goals", q.Goals},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			details = append(details, r.field+" is required")
		}
	}
	if len(details) > 0 {
		return &ValidationError{Field: "questionnaire", Message: "invalid questionnaire", Details: details}
	}
	return nil
}
