package tailoring

import (
	"testing"

	"github.com/jonathan/profile-tailor/internal/types"
	"github.com/stretchr/testify/assert"
)

func keywordJD() *types.JobDescription {
	return &types.JobDescription{
		RequiredSkills: []types.SkillRequirement{
			{Skill: "Go", IsRequired: true, Importance: 0.9},
			{Skill: "Kubernetes", IsRequired: true, Importance: 0.8},
		},
		PreferredSkills: []types.SkillRequirement{
			{Skill: "Terraform", Importance: 0.6},
		},
		ATSKeywords: []string{"distributed systems", "gRPC"},
	}
}

func TestRelevantKeywords_DirectSubstring(t *testing.T) {
	keywords := RelevantKeywords("Deployed services to Kubernetes clusters", keywordJD())
	assert.Contains(t, keywords, "Kubernetes")
}

func TestRelevantKeywords_KeywordWordInText(t *testing.T) {
	// "systems" (a word of "distributed systems", len > 3) appears in the text
	keywords := RelevantKeywords("Designed systems for payment processing", keywordJD())
	assert.Contains(t, keywords, "distributed systems")
}

func TestRelevantKeywords_TextWordInKeyword(t *testing.T) {
	// "distributed" (len > 4) from the text appears inside the keyword
	keywords := RelevantKeywords("Built distributed pipelines", keywordJD())
	assert.Contains(t, keywords, "distributed systems")
}

func TestRelevantKeywords_CapsAtFive(t *testing.T) {
	jd := &types.JobDescription{
		ATSKeywords: []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "theta"},
	}
	text := "alpha beta gamma delta epsilon zeta theta"
	keywords := RelevantKeywords(text, jd)
	assert.Len(t, keywords, 5)
}

func TestRelevantKeywords_FallbackToPriority(t *testing.T) {
	keywords := RelevantKeywords("Organized the annual charity bake sale", keywordJD())

	// No direct overlap, so the top priority skills fill in
	assert.NotEmpty(t, keywords)
	assert.Contains(t, keywords, "Go")
	assert.Contains(t, keywords, "Kubernetes")
}

func TestFallbackKeywords_UsesPrioritySkills(t *testing.T) {
	keywords := FallbackKeywords(keywordJD())
	assert.Equal(t, []string{"Go", "Kubernetes", "Terraform"}, keywords)
}

func TestFallbackKeywords_NoSkillsFallsBackToATS(t *testing.T) {
	jd := &types.JobDescription{ATSKeywords: []string{"CI/CD", "observability"}}
	keywords := FallbackKeywords(jd)
	assert.ElementsMatch(t, []string{"CI/CD", "observability"}, keywords)
}

func TestRoleWords(t *testing.T) {
	assert.Equal(t, []string{"Senior", "Platform", "Engineer"}, RoleWords("Senior Platform Engineer"))
	assert.Empty(t, RoleWords("VP, Eng"))
	assert.Equal(t, []string{"Engineer"}, RoleWords("Engineer (SRE)"))
}
