package planning

import (
	"fmt"
	"strings"

	"github.com/jonathan/profile-tailor/internal/types"
)

const (
	maxSummarizedBullets  = 4
	maxSummarizedKeywords = 20
)

// summarizeProfile renders a compact plain-text view of the profile for the
// plan prompt. Bullets are indexed so the model can address them by path.
func summarizeProfile(profile *types.Profile) string {
	var sb strings.Builder

	if profile.Name != "" {
		fmt.Fprintf(&sb, "Name: %s\n", profile.Name)
	}
	if profile.Summary != "" {
		fmt.Fprintf(&sb, "Summary: %s\n", profile.Summary)
	}

	for i, exp := range profile.Experiences {
		fmt.Fprintf(&sb, "\nExperience[%d]: %s at %s\n", i, exp.Title, exp.Company)
		for j, bullet := range exp.Bullets {
			if j >= maxSummarizedBullets {
				fmt.Fprintf(&sb, "  (and %d more bullets)\n", len(exp.Bullets)-j)
				break
			}
			fmt.Fprintf(&sb, "  bullet[%d]: %s\n", j, bullet)
		}
		if len(exp.Technologies) > 0 {
			fmt.Fprintf(&sb, "  technologies: %s\n", strings.Join(exp.Technologies, ", "))
		}
	}

	for i, proj := range profile.Projects {
		fmt.Fprintf(&sb, "\nProject[%d]: %s\n", i, proj.Name)
		if proj.Description != "" {
			fmt.Fprintf(&sb, "  description: %s\n", proj.Description)
		}
		for j, bullet := range proj.Bullets {
			if j >= maxSummarizedBullets {
				break
			}
			fmt.Fprintf(&sb, "  bullet[%d]: %s\n", j, bullet)
		}
	}

	if names := profile.SkillNames(); len(names) > 0 {
		fmt.Fprintf(&sb, "\nSkills: %s\n", strings.Join(names, ", "))
	}

	for _, section := range profile.OtherSections {
		if len(section.Items) > 0 {
			fmt.Fprintf(&sb, "Other section: %s (%d items)\n", section.Name, len(section.Items))
		}
	}

	return sb.String()
}

// summarizeJobDescription renders the analyzed job description for the plan
// prompt, truncating keyword lists to keep the prompt bounded.
func summarizeJobDescription(jd *types.JobDescription) string {
	var sb strings.Builder

	if jd.Title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", jd.Title)
	}
	if jd.Company != "" {
		fmt.Fprintf(&sb, "Company: %s\n", jd.Company)
	}

	if len(jd.RequiredSkills) > 0 {
		sb.WriteString("Required skills: ")
		sb.WriteString(strings.Join(skillNames(jd.RequiredSkills), ", "))
		sb.WriteString("\n")
	}
	if len(jd.PreferredSkills) > 0 {
		sb.WriteString("Preferred skills: ")
		sb.WriteString(strings.Join(skillNames(jd.PreferredSkills), ", "))
		sb.WriteString("\n")
	}

	keywords := jd.AllKeywords()
	if len(keywords) > maxSummarizedKeywords {
		keywords = keywords[:maxSummarizedKeywords]
	}
	if len(keywords) > 0 {
		fmt.Fprintf(&sb, "Keywords: %s\n", strings.Join(keywords, ", "))
	}

	for i, resp := range jd.Responsibilities {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&sb, "Responsibility: %s\n", resp.Description)
	}

	if len(jd.EmphasisAreas) > 0 {
		fmt.Fprintf(&sb, "Emphasis areas: %s\n", strings.Join(jd.EmphasisAreas, ", "))
	}

	return sb.String()
}

func skillNames(reqs []types.SkillRequirement) []string {
	names := make([]string, 0, len(reqs))
	for _, req := range reqs {
		names = append(names, req.Skill)
	}
	return names
}
