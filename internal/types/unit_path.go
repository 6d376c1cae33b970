package types

import (
	"fmt"
	"strconv"
	"strings"
)

// UnitKind identifies the variant of an editable unit path
type UnitKind string

// Unit kind constants
const (
	UnitSummary                UnitKind = "summary"
	UnitExperienceBullet       UnitKind = "experience_bullet"
	UnitExperienceTechnologies UnitKind = "experience_technologies"
	UnitProjectBullet          UnitKind = "project_bullet"
	UnitProjectDescription     UnitKind = "project_description"
	UnitSkills                 UnitKind = "skills"
	UnitOtherSection           UnitKind = "other_section"
)

// UnitPath is a structured address of an independently editable piece of a Profile.
// It replaces string-encoded targets like "experience_0_bullet_1" so planner output
// validates structurally instead of via split/index-guessing.
type UnitPath struct {
	Kind        UnitKind `json:"kind"`
	Index       int      `json:"index,omitempty"`
	BulletIndex int      `json:"bullet_index,omitempty"`
	Name        string   `json:"name,omitempty"`
}

// SummaryUnit addresses the profile summary
func SummaryUnit() UnitPath { return UnitPath{Kind: UnitSummary} }

// ExperienceBulletUnit addresses bullet j of experience i
func ExperienceBulletUnit(i, j int) UnitPath {
	return UnitPath{Kind: UnitExperienceBullet, Index: i, BulletIndex: j}
}

// ExperienceTechnologiesUnit addresses the technology list of experience i
func ExperienceTechnologiesUnit(i int) UnitPath {
	return UnitPath{Kind: UnitExperienceTechnologies, Index: i}
}

// ProjectBulletUnit addresses bullet j of project i
func ProjectBulletUnit(i, j int) UnitPath {
	return UnitPath{Kind: UnitProjectBullet, Index: i, BulletIndex: j}
}

// ProjectDescriptionUnit addresses the description of project i
func ProjectDescriptionUnit(i int) UnitPath {
	return UnitPath{Kind: UnitProjectDescription, Index: i}
}

// SkillsUnit addresses the skills list
func SkillsUnit() UnitPath { return UnitPath{Kind: UnitSkills} }

// OtherSectionUnit addresses a named free-form section
func OtherSectionUnit(name string) UnitPath {
	return UnitPath{Kind: UnitOtherSection, Name: name}
}

// String renders the canonical path form, e.g. "experience[0].bullet[1]".
func (u UnitPath) String() string {
	switch u.Kind {
	case UnitSummary:
		return "summary"
	case UnitExperienceBullet:
		return fmt.Sprintf("experience[%d].bullet[%d]", u.Index, u.BulletIndex)
	case UnitExperienceTechnologies:
		return fmt.Sprintf("experience[%d].technologies", u.Index)
	case UnitProjectBullet:
		return fmt.Sprintf("project[%d].bullet[%d]", u.Index, u.BulletIndex)
	case UnitProjectDescription:
		return fmt.Sprintf("project[%d].description", u.Index)
	case UnitSkills:
		return "skills"
	case UnitOtherSection:
		return fmt.Sprintf("other_section[%s]", u.Name)
	default:
		return string(u.Kind)
	}
}

// ParseUnitPath parses either the canonical form ("experience[0].bullet[1]") or the
// legacy underscore form LLMs tend to emit ("experience_0_bullet_1", "project_2",
// "summary", "skills").
func ParseUnitPath(s string) (UnitPath, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "summary":
		return SummaryUnit(), nil
	case "skills":
		return SkillsUnit(), nil
	case "":
		return UnitPath{}, fmt.Errorf("empty unit path")
	}

	if strings.Contains(s, "[") {
		return parseCanonical(s)
	}
	return parseLegacy(s)
}

func parseCanonical(s string) (UnitPath, error) {
	if name, ok := strings.CutPrefix(s, "other_section["); ok {
		name = strings.TrimSuffix(name, "]")
		if name == "" {
			return UnitPath{}, fmt.Errorf("other_section path missing name: %q", s)
		}
		return OtherSectionUnit(name), nil
	}

	head, rest, _ := strings.Cut(s, ".")
	kind, idx, err := splitIndexed(head)
	if err != nil {
		return UnitPath{}, err
	}

	switch kind {
	case "experience":
		switch {
		case rest == "technologies":
			return ExperienceTechnologiesUnit(idx), nil
		case strings.HasPrefix(rest, "bullet["):
			_, bulletIdx, err := splitIndexed(rest)
			if err != nil {
				return UnitPath{}, err
			}
			return ExperienceBulletUnit(idx, bulletIdx), nil
		}
	case "project":
		switch {
		case rest == "description":
			return ProjectDescriptionUnit(idx), nil
		case strings.HasPrefix(rest, "bullet["):
			_, bulletIdx, err := splitIndexed(rest)
			if err != nil {
				return UnitPath{}, err
			}
			return ProjectBulletUnit(idx, bulletIdx), nil
		}
	}
	return UnitPath{}, fmt.Errorf("unrecognized unit path: %q", s)
}

// splitIndexed parses "name[3]" into ("name", 3)
func splitIndexed(s string) (string, int, error) {
	open := strings.Index(s, "[")
	close := strings.Index(s, "]")
	if open < 0 || close < open {
		return "", 0, fmt.Errorf("malformed indexed segment: %q", s)
	}
	idx, err := strconv.Atoi(s[open+1 : close])
	if err != nil || idx < 0 {
		return "", 0, fmt.Errorf("invalid index in segment %q", s)
	}
	return s[:open], idx, nil
}

func parseLegacy(s string) (UnitPath, error) {
	parts := strings.Split(s, "_")

	switch parts[0] {
	case "experience":
		if len(parts) < 2 {
			return UnitPath{}, fmt.Errorf("malformed experience target: %q", s)
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx < 0 {
			return UnitPath{}, fmt.Errorf("invalid experience index in %q", s)
		}
		if len(parts) >= 4 && parts[2] == "bullet" {
			bulletIdx, err := strconv.Atoi(parts[3])
			if err != nil || bulletIdx < 0 {
				return UnitPath{}, fmt.Errorf("invalid bullet index in %q", s)
			}
			return ExperienceBulletUnit(idx, bulletIdx), nil
		}
		if len(parts) == 3 && parts[2] == "technologies" {
			return ExperienceTechnologiesUnit(idx), nil
		}
		// Bare "experience_0" targets the entry's first bullet.
		if len(parts) == 2 {
			return ExperienceBulletUnit(idx, 0), nil
		}
	case "project":
		if len(parts) < 2 {
			return UnitPath{}, fmt.Errorf("malformed project target: %q", s)
		}
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx < 0 {
			return UnitPath{}, fmt.Errorf("invalid project index in %q", s)
		}
		if len(parts) >= 4 && parts[2] == "bullet" {
			bulletIdx, err := strconv.Atoi(parts[3])
			if err != nil || bulletIdx < 0 {
				return UnitPath{}, fmt.Errorf("invalid bullet index in %q", s)
			}
			return ProjectBulletUnit(idx, bulletIdx), nil
		}
		if len(parts) == 2 {
			return ProjectDescriptionUnit(idx), nil
		}
	case "other":
		if len(parts) >= 3 && parts[1] == "section" {
			return OtherSectionUnit(strings.Join(parts[2:], "_")), nil
		}
	}
	return UnitPath{}, fmt.Errorf("unrecognized unit path: %q", s)
}
