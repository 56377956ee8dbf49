package tailoring

import (
	"strings"

	"github.com/easyhired/resumer/internal/types"
)

var advancedDegreeTerms = []string{"advanced degree", "master", "phd", "doctorate"}

// educationMismatch reports whether the job requires an advanced degree the
// candidate's current education does not cover: the requirement mentions an
// advanced qualification while the degree on file mentions only a bachelor's.
func educationMismatch(req *types.EducationRequirement, template *types.Resume) bool {
	if req == nil {
		return false
	}
	required := strings.ToLower(req.EducationLevel)
	wantsAdvanced := false
	for _, term := range advancedDegreeTerms {
		if strings.Contains(required, term) {
			wantsAdvanced = true
			break
		}
	}
	if !wantsAdvanced {
		return false
	}

	var degrees []string
	for _, edu := range template.Education.Items {
		degrees = append(degrees, strings.ToLower(edu.Degree))
	}
	held := strings.Join(degrees, " ")
	if !strings.Contains(held, "bachelor") {
		return false
	}
	for _, term := range advancedDegreeTerms[1:] {
		if strings.Contains(held, term) {
			return false
		}
	}
	return true
}
