// Package types provides type definitions for structured data used throughout the profile-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "sort"

// SkillCategory classifies a skill into a coarse technology category
type SkillCategory string

// Skill category constants
const (
	CategoryProgrammingLanguage SkillCategory = "programming_language"
	CategoryFramework           SkillCategory = "framework"
	CategoryLibrary             SkillCategory = "library"
	CategoryTool                SkillCategory = "tool"
	CategoryDatabase            SkillCategory = "database"
	CategoryCloud               SkillCategory = "cloud"
	CategoryDevOps              SkillCategory = "devops"
	CategoryMLAI                SkillCategory = "ml_ai"
	CategoryOther               SkillCategory = "other"
)

// Experience represents a single work experience entry.
// Dates are opaque strings ("2022-01", "Present") and are never parsed into calendar types.
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	IsCurrent    bool     `json:"is_current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
}

// Education represents an education entry
type Education struct {
	Degree         string   `json:"degree"`
	FieldOfStudy   string   `json:"field_of_study,omitempty"`
	Institution    string   `json:"institution"`
	Location       string   `json:"location,omitempty"`
	GraduationDate string   `json:"graduation_date,omitempty"`
	GPA            *float64 `json:"gpa,omitempty"`
	Honors         []string `json:"honors,omitempty"`
}

// Skill represents a skill entry. NormalizedName and Category are derived by the
// technology normalizer, never asserted by upstream extraction.
type Skill struct {
	Name              string        `json:"name"`
	NormalizedName    string        `json:"normalized_name,omitempty"`
	Category          SkillCategory `json:"category,omitempty"`
	Proficiency       string        `json:"proficiency,omitempty"`
	YearsOfExperience *float64      `json:"years_of_experience,omitempty"`
}

// Project represents a project entry
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
	URL          string   `json:"url,omitempty"`
	Role         string   `json:"role,omitempty"`
}

// Record is a loosely-typed entry for sections whose schema varies by source resume
// (certifications, awards, publications, languages).
type Record map[string]any

// OtherSection represents an arbitrary named section (e.g. "Leadership") that does
// not fit the standard schema.
type OtherSection struct {
	Name  string   `json:"name"`
	Items []Record `json:"items,omitempty"`
}

// Profile is the root aggregate for a parsed resume. Entry counts in every sequence
// are monotonically non-decreasing across edit operations: editors mutate content in
// place or append, never delete.
type Profile struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Location string `json:"location,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`

	Summary string `json:"summary,omitempty"`

	Experiences []Experience `json:"experiences,omitempty"`
	Education   []Education  `json:"education,omitempty"`
	Skills      []Skill      `json:"skills,omitempty"`
	Projects    []Project    `json:"projects,omitempty"`

	Certifications []Record       `json:"certifications,omitempty"`
	Awards         []Record       `json:"awards,omitempty"`
	Publications   []Record       `json:"publications,omitempty"`
	Languages      []Record       `json:"languages,omitempty"`
	OtherSections  []OtherSection `json:"other_sections,omitempty"`

	RawText  string         `json:"raw_text,omitempty"`
	Metadata map[string]any `json:"parsing_metadata,omitempty"`
}

// DeepCopy returns a fully independent copy of the profile. Every edit pass operates
// on a deep copy; the original is retained for diffing and is never mutated.
func (p *Profile) DeepCopy() *Profile {
	cp := *p

	cp.Experiences = make([]Experience, len(p.Experiences))
	for i, exp := range p.Experiences {
		cp.Experiences[i] = exp
		cp.Experiences[i].Bullets = copyStrings(exp.Bullets)
		cp.Experiences[i].Technologies = copyStrings(exp.Technologies)
	}

	cp.Education = make([]Education, len(p.Education))
	for i, edu := range p.Education {
		cp.Education[i] = edu
		cp.Education[i].Honors = copyStrings(edu.Honors)
	}

	cp.Skills = make([]Skill, len(p.Skills))
	copy(cp.Skills, p.Skills)

	cp.Projects = make([]Project, len(p.Projects))
	for i, proj := range p.Projects {
		cp.Projects[i] = proj
		cp.Projects[i].Bullets = copyStrings(proj.Bullets)
		cp.Projects[i].Technologies = copyStrings(proj.Technologies)
	}

	cp.Certifications = copyRecords(p.Certifications)
	cp.Awards = copyRecords(p.Awards)
	cp.Publications = copyRecords(p.Publications)
	cp.Languages = copyRecords(p.Languages)

	cp.OtherSections = make([]OtherSection, len(p.OtherSections))
	for i, section := range p.OtherSections {
		cp.OtherSections[i] = OtherSection{
			Name:  section.Name,
			Items: copyRecords(section.Items),
		}
	}

	if p.Metadata != nil {
		cp.Metadata = make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			cp.Metadata[k] = v
		}
	}

	return &cp
}

// AllTechnologies returns the sorted set of technologies mentioned across
// experiences and projects.
func (p *Profile) AllTechnologies() []string {
	seen := make(map[string]struct{})
	for _, exp := range p.Experiences {
		for _, tech := range exp.Technologies {
			seen[tech] = struct{}{}
		}
	}
	for _, proj := range p.Projects {
		for _, tech := range proj.Technologies {
			seen[tech] = struct{}{}
		}
	}

	techs := make([]string, 0, len(seen))
	for tech := range seen {
		techs = append(techs, tech)
	}
	sort.Strings(techs)
	return techs
}

// SkillNames returns the names of all skills in order
func (p *Profile) SkillNames() []string {
	names := make([]string, len(p.Skills))
	for i, skill := range p.Skills {
		names[i] = skill.Name
	}
	return names
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

func copyRecords(src []Record) []Record {
	if src == nil {
		return nil
	}
	dst := make([]Record, len(src))
	for i, record := range src {
		cp := make(Record, len(record))
		for k, v := range record {
			cp[k] = v
		}
		dst[i] = cp
	}
	return dst
}
