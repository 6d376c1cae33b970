// Package identify enumerates the editable units of a profile. The enumeration
// is pure and deterministic: the same profile always yields the same units in
// the same order, and every unit the tailoring pass may touch is listed here.
package identify

import (
	"github.com/jonathan/profile-tailor/internal/types"
)

// Units returns every editable unit in the profile, in document order:
// summary, experience bullets, experience technology lists, project bullets,
// project descriptions, the skills section, then other sections.
//
// Empty units are skipped. An experience with no bullets contributes nothing,
// not even a technologies unit; a project contributes a description unit only
// when it has a description or at least one bullet.
func Units(profile *types.Profile) []types.UnitPath {
	if profile == nil {
		return nil
	}

	var units []types.UnitPath

	if profile.Summary != "" {
		units = append(units, types.SummaryUnit())
	}

	for i, exp := range profile.Experiences {
		if len(exp.Bullets) == 0 {
			continue
		}
		for j := range exp.Bullets {
			units = append(units, types.ExperienceBulletUnit(i, j))
		}
		units = append(units, types.ExperienceTechnologiesUnit(i))
	}

	for i, proj := range profile.Projects {
		for j := range proj.Bullets {
			units = append(units, types.ProjectBulletUnit(i, j))
		}
		if proj.Description != "" || len(proj.Bullets) > 0 {
			units = append(units, types.ProjectDescriptionUnit(i))
		}
	}

	if len(profile.Skills) > 0 {
		units = append(units, types.SkillsUnit())
	}

	for _, section := range profile.OtherSections {
		if len(section.Items) == 0 {
			continue
		}
		units = append(units, types.OtherSectionUnit(section.Name))
	}

	return units
}

// CountByKind tallies units per kind, for reporting.
func CountByKind(units []types.UnitPath) map[types.UnitKind]int {
	counts := make(map[types.UnitKind]int, len(units))
	for _, unit := range units {
		counts[unit.Kind]++
	}
	return counts
}
