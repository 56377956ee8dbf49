package types

// SkillsAnalysis is the transient result of the skills-for-ATS extraction
// step. It steers prompt construction and the skill backfill pass; it is never
// persisted.
type SkillsAnalysis struct {
	HardSkills            []string `json:"hard_skills"`
	SoftSkills            []string `json:"soft_skills"`
	Keywords              []string `json:"keywords"`
	RequiredTechnologies  []string `json:"required_technologies"`
	PreferredTechnologies []string `json:"preferred_technologies"`
}

// IsEmpty reports whether the analysis produced nothing usable.
func (a *SkillsAnalysis) IsEmpty() bool {
	return len(a.HardSkills) == 0 && len(a.SoftSkills) == 0 && len(a.Keywords) == 0 &&
		len(a.RequiredTechnologies) == 0 && len(a.PreferredTechnologies) == 0
}

// EducationRequirement is the transient result of the education-requirement
// extraction step.
type EducationRequirement struct {
	EducationLevel string `json:"education_level"`
	DegreeType     string `json:"degree_type"`
	IsRequired     bool   `json:"is_required"`
	Notes          string `json:"notes"`
}

// DefaultEducationRequirement is the fallback used when extraction fails.
func DefaultEducationRequirement() *EducationRequirement {
	return &EducationRequirement{
		EducationLevel: "Not specified",
		DegreeType:     "Any",
		IsRequired:     false,
	}
}
