package parsing

import (
	"encoding/json"

	"github.com/easyhired/resumer/internal/types"
)

// ParseSkillsAnalysis decodes the skills-extraction response. Parse failures
// degrade to an all-empty analysis; this extraction never fails the pipeline.
func ParseSkillsAnalysis(responseText string) *types.SkillsAnalysis {
	payload := ExtractJSONBlock(responseText)

	var analysis types.SkillsAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return &types.SkillsAnalysis{
			HardSkills:            []string{},
			SoftSkills:            []string{},
			Keywords:              []string{},
			RequiredTechnologies:  []string{},
			PreferredTechnologies: []string{},
		}
	}
	return &analysis
}

// ParseEducationRequirement decodes the education-extraction response. Parse
// failures degrade to the "Not specified / Any / not required" default.
func ParseEducationRequirement(responseText string) *types.EducationRequirement {
	payload := ExtractJSONBlock(responseText)

	var req types.EducationRequirement
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return types.DefaultEducationRequirement()
	}
	if req.EducationLevel == "" {
		req.EducationLevel = "Not specified"
	}
	if req.DegreeType == "" {
		req.DegreeType = "Any"
	}
	return &req
}

// ParseResume decodes a tailored-resume response body into the typed model.
func ParseResume(payload string) (*types.Resume, error) {
	var resume types.Resume
	if err := json.Unmarshal([]byte(payload), &resume); err != nil {
		return nil, &ParseError{Message: "failed to parse tailored resume JSON", Cause: err}
	}
	return &resume, nil
}
