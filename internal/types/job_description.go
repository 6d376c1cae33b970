package types

import "sort"

// requiredSkillWeight is the multiplier applied to required skill importance when
// ranking against preferred skills.
const requiredSkillWeight = 1.5

// SkillRequirement represents a single skill requirement extracted from a job description
type SkillRequirement struct {
	Skill          string   `json:"skill"`
	IsRequired     bool     `json:"is_required,omitempty"`
	Importance     float64  `json:"importance"`
	MentionedCount int      `json:"mentioned_count,omitempty"`
	Context        []string `json:"context,omitempty"`
}

// Responsibility represents a job responsibility with its keywords
type Responsibility struct {
	Description string   `json:"description"`
	Keywords    []string `json:"keywords,omitempty"`
	Importance  float64  `json:"importance"`
}

// JobDescription is the structured output of job-posting analysis. It is created
// once per analysis call and read-only thereafter.
type JobDescription struct {
	Title    string `json:"title,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`

	RequiredSkills  []SkillRequirement `json:"required_skills,omitempty"`
	PreferredSkills []SkillRequirement `json:"preferred_skills,omitempty"`

	ATSKeywords       []string `json:"ats_keywords,omitempty"`
	TechnicalKeywords []string `json:"technical_keywords,omitempty"`
	SoftSkills        []string `json:"soft_skills,omitempty"`

	Responsibilities []Responsibility `json:"responsibilities,omitempty"`

	ExperienceYears       *int     `json:"experience_years,omitempty"`
	EducationRequirements []string `json:"education_requirements,omitempty"`

	EmphasisAreas []string           `json:"emphasis_areas,omitempty"`
	Priorities    map[string]float64 `json:"priorities,omitempty"`

	RawText string `json:"raw_text,omitempty"`
}

// ClampScores clamps all importance scores into [0,1]. Callers that construct a
// JobDescription from untrusted extraction output must invoke this before use.
func (jd *JobDescription) ClampScores() {
	for i := range jd.RequiredSkills {
		jd.RequiredSkills[i].Importance = clamp01(jd.RequiredSkills[i].Importance)
	}
	for i := range jd.PreferredSkills {
		jd.PreferredSkills[i].Importance = clamp01(jd.PreferredSkills[i].Importance)
	}
	for i := range jd.Responsibilities {
		jd.Responsibilities[i].Importance = clamp01(jd.Responsibilities[i].Importance)
	}
	for k, v := range jd.Priorities {
		jd.Priorities[k] = clamp01(v)
	}
}

// AllKeywords returns the sorted set of every ATS-relevant keyword: ATS keywords,
// technical keywords, and required/preferred skill names.
func (jd *JobDescription) AllKeywords() []string {
	seen := make(map[string]struct{})
	add := func(keyword string) {
		if keyword != "" {
			seen[keyword] = struct{}{}
		}
	}

	for _, kw := range jd.ATSKeywords {
		add(kw)
	}
	for _, kw := range jd.TechnicalKeywords {
		add(kw)
	}
	for _, req := range jd.RequiredSkills {
		add(req.Skill)
	}
	for _, req := range jd.PreferredSkills {
		add(req.Skill)
	}

	keywords := make([]string, 0, len(seen))
	for kw := range seen {
		keywords = append(keywords, kw)
	}
	sort.Strings(keywords)
	return keywords
}

// PrioritySkills returns the top-n skill names ranked by weighted importance.
// Required skills are weighted 1.5x over preferred skills; ties preserve the
// original insertion order (required before preferred).
func (jd *JobDescription) PrioritySkills(topN int) []string {
	type weighted struct {
		skill string
		score float64
	}

	ranked := make([]weighted, 0, len(jd.RequiredSkills)+len(jd.PreferredSkills))
	for _, req := range jd.RequiredSkills {
		ranked = append(ranked, weighted{req.Skill, req.Importance * requiredSkillWeight})
	}
	for _, req := range jd.PreferredSkills {
		ranked = append(ranked, weighted{req.Skill, req.Importance})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if topN > len(ranked) {
		topN = len(ranked)
	}
	skills := make([]string, 0, topN)
	for _, w := range ranked[:topN] {
		skills = append(skills, w.skill)
	}
	return skills
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
