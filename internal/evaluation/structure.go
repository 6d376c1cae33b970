package evaluation

import (
	"fmt"
	"strings"

	"github.com/jonathan/profile-tailor/internal/types"
)

// StructureError reports document structure lost during editing. Any shrinkage
// means content was destroyed, which the engine must never do.
type StructureError struct {
	Violations []string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("structure integrity violated: %s", strings.Join(e.Violations, "; "))
}

// CheckStructure verifies the edited profile retained everything the original
// had. Counts are monotonic: no section, entry, bullet, or item may disappear,
// while additions (an appended bullet, new skills or technologies) are fine.
func CheckStructure(original, edited *types.Profile) error {
	var violations []string

	if len(edited.Experiences) < len(original.Experiences) {
		violations = append(violations, fmt.Sprintf(
			"experience count decreased from %d to %d", len(original.Experiences), len(edited.Experiences)))
	} else {
		for i := range original.Experiences {
			before := len(original.Experiences[i].Bullets)
			after := len(edited.Experiences[i].Bullets)
			if after < before {
				violations = append(violations, fmt.Sprintf(
					"experience[%d] bullet count decreased from %d to %d", i, before, after))
			}
			if len(edited.Experiences[i].Technologies) < len(original.Experiences[i].Technologies) {
				violations = append(violations, fmt.Sprintf(
					"experience[%d] lost technologies (%d to %d)", i,
					len(original.Experiences[i].Technologies), len(edited.Experiences[i].Technologies)))
			}
		}
	}

	if len(edited.Projects) < len(original.Projects) {
		violations = append(violations, fmt.Sprintf(
			"project count decreased from %d to %d", len(original.Projects), len(edited.Projects)))
	} else {
		for i := range original.Projects {
			before := len(original.Projects[i].Bullets)
			after := len(edited.Projects[i].Bullets)
			if after < before {
				violations = append(violations, fmt.Sprintf(
					"project[%d] bullet count decreased from %d to %d", i, before, after))
			}
			if original.Projects[i].Description != "" && edited.Projects[i].Description == "" {
				violations = append(violations, fmt.Sprintf("project[%d] lost its description", i))
			}
		}
	}

	if len(edited.Education) < len(original.Education) {
		violations = append(violations, fmt.Sprintf(
			"education count decreased from %d to %d", len(original.Education), len(edited.Education)))
	}

	if len(edited.Skills) < len(original.Skills) {
		violations = append(violations, fmt.Sprintf(
			"skills shrank from %d to %d", len(original.Skills), len(edited.Skills)))
	}

	if original.Summary != "" && edited.Summary == "" {
		violations = append(violations, "summary was emptied")
	}

	checkRecords := func(name string, before, after []types.Record) {
		if len(after) < len(before) {
			violations = append(violations, fmt.Sprintf(
				"%s count decreased from %d to %d", name, len(before), len(after)))
		}
	}
	checkRecords("certifications", original.Certifications, edited.Certifications)
	checkRecords("awards", original.Awards, edited.Awards)
	checkRecords("publications", original.Publications, edited.Publications)
	checkRecords("languages", original.Languages, edited.Languages)

	if len(edited.OtherSections) < len(original.OtherSections) {
		violations = append(violations, fmt.Sprintf(
			"other section count decreased from %d to %d", len(original.OtherSections), len(edited.OtherSections)))
	} else {
		for i := range original.OtherSections {
			if len(edited.OtherSections[i].Items) < len(original.OtherSections[i].Items) {
				violations = append(violations, fmt.Sprintf(
					"section %q lost items", original.OtherSections[i].Name))
			}
		}
	}

	if len(violations) > 0 {
		return &StructureError{Violations: violations}
	}
	return nil
}
