// Package evaluation measures how thoroughly an edit pass covered the profile
// and guards that document structure survived it.
package evaluation

import (
	"reflect"

	"github.com/jonathan/profile-tailor/internal/types"
)

// Evaluate compares the original and edited profiles unit by unit and reports
// coverage. The report is informational; low scores never trigger a retry.
func Evaluate(original, edited *types.Profile, units []types.UnitPath) *types.CompletenessReport {
	report := &types.CompletenessReport{
		IdentifiedCount: len(units),
		EditCounts:      make(map[string]int),
	}

	for _, unit := range units {
		if unitChanged(original, edited, unit) {
			report.EditedCount++
			report.EditCounts[string(unit.Kind)]++
		} else {
			report.Missing = append(report.Missing, unit)
		}
	}

	// No identifiable units means no coverage to claim
	if report.IdentifiedCount > 0 {
		report.Score = float64(report.EditedCount) / float64(report.IdentifiedCount)
	}
	return report
}

// unitChanged reports whether the unit's content differs between profiles.
// Units that no longer resolve count as unchanged.
func unitChanged(original, edited *types.Profile, unit types.UnitPath) bool {
	switch unit.Kind {
	case types.UnitSummary:
		return original.Summary != edited.Summary

	case types.UnitExperienceBullet:
		a, aok := experienceBullet(original, unit)
		b, bok := experienceBullet(edited, unit)
		return aok && bok && a != b

	case types.UnitExperienceTechnologies:
		if unit.Index >= len(original.Experiences) || unit.Index >= len(edited.Experiences) {
			return false
		}
		return !reflect.DeepEqual(
			original.Experiences[unit.Index].Technologies,
			edited.Experiences[unit.Index].Technologies)

	case types.UnitProjectBullet:
		a, aok := projectBullet(original, unit)
		b, bok := projectBullet(edited, unit)
		return aok && bok && a != b

	case types.UnitProjectDescription:
		if unit.Index >= len(original.Projects) || unit.Index >= len(edited.Projects) {
			return false
		}
		return original.Projects[unit.Index].Description != edited.Projects[unit.Index].Description

	case types.UnitSkills:
		return !reflect.DeepEqual(skillNames(original), skillNames(edited))

	case types.UnitOtherSection:
		return !reflect.DeepEqual(otherSection(original, unit.Name), otherSection(edited, unit.Name))

	default:
		return false
	}
}

func experienceBullet(profile *types.Profile, unit types.UnitPath) (string, bool) {
	if unit.Index >= len(profile.Experiences) {
		return "", false
	}
	bullets := profile.Experiences[unit.Index].Bullets
	if unit.BulletIndex >= len(bullets) {
		return "", false
	}
	return bullets[unit.BulletIndex], true
}

func projectBullet(profile *types.Profile, unit types.UnitPath) (string, bool) {
	if unit.Index >= len(profile.Projects) {
		return "", false
	}
	bullets := profile.Projects[unit.Index].Bullets
	if unit.BulletIndex >= len(bullets) {
		return "", false
	}
	return bullets[unit.BulletIndex], true
}

func skillNames(profile *types.Profile) []string {
	names := make([]string, 0, len(profile.Skills))
	for _, skill := range profile.Skills {
		names = append(names, skill.Name)
	}
	return names
}

func otherSection(profile *types.Profile, name string) []types.Record {
	for _, section := range profile.OtherSections {
		if section.Name == name {
			return section.Items
		}
	}
	return nil
}
