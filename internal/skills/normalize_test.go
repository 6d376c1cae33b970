package skills

import (
	"testing"

	"github.com/jonathan/profile-tailor/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_ExactMatch(t *testing.T) {
	tests := []struct {
		input        string
		wantName     string
		wantCategory types.SkillCategory
	}{
		{"golang", "Go", types.CategoryProgrammingLanguage},
		{"Go", "Go", types.CategoryProgrammingLanguage},
		{"k8s", "Kubernetes", types.CategoryDevOps},
		{"postgres", "PostgreSQL", types.CategoryDatabase},
		{"reactjs", "React", types.CategoryFramework},
		{"PYTHON", "Python", types.CategoryProgrammingLanguage},
		{"huggingface", "Hugging Face", types.CategoryMLAI},
		{"aws", "AWS", types.CategoryCloud},
	}

	for _, tt := range tests {
		name, category := Normalize(tt.input)
		assert.Equal(t, tt.wantName, name, "input %q", tt.input)
		assert.Equal(t, tt.wantCategory, category, "input %q", tt.input)
	}
}

func TestNormalize_FuzzyMatch(t *testing.T) {
	// One edit away from "kubernetes" (10 chars): ratio 0.9
	name, category := Normalize("kubernets")
	assert.Equal(t, "Kubernetes", name)
	assert.Equal(t, types.CategoryDevOps, category)

	name, _ = Normalize("postgresq")
	assert.Equal(t, "PostgreSQL", name)
}

func TestNormalize_FallbackTitleCase(t *testing.T) {
	name, category := Normalize("some internal tool")
	assert.Equal(t, "Some Internal Tool", name)
	assert.Equal(t, types.SkillCategory(""), category)

	// Mixed-case unknown input passes through unchanged
	name, _ = Normalize("ObscureDB")
	assert.Equal(t, "ObscureDB", name)
}

func TestNormalize_EmptyInput(t *testing.T) {
	name, category := Normalize("")
	assert.Equal(t, "", name)
	assert.Equal(t, types.SkillCategory(""), category)
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"golang", "k8s", "reactjs", "numpy", "ci/cd", "aws lambda",
		"some internal tool", "ObscureDB", "Go", "Kubernetes", "gpt4",
	}

	for _, input := range inputs {
		first, _ := Normalize(input)
		second, _ := Normalize(first)
		assert.Equal(t, first, second, "normalize(normalize(%q)) must be a no-op", input)
	}
}

func TestNormalizeProfileSkills(t *testing.T) {
	profile := &types.Profile{
		Skills: []types.Skill{
			{Name: "golang"},
			{Name: "unknown thing"},
			// Upstream guess is overridden by the normalizer's category table
			{Name: "postgres", Category: types.CategoryTool},
		},
	}

	NormalizeProfileSkills(profile)

	assert.Equal(t, "Go", profile.Skills[0].NormalizedName)
	assert.Equal(t, types.CategoryProgrammingLanguage, profile.Skills[0].Category)
	assert.Equal(t, "Unknown Thing", profile.Skills[1].NormalizedName)
	assert.Equal(t, types.SkillCategory(""), profile.Skills[1].Category)
	assert.Equal(t, "PostgreSQL", profile.Skills[2].NormalizedName)
	assert.Equal(t, types.CategoryDatabase, profile.Skills[2].Category)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("docker", "docker"))
	assert.InDelta(t, 0.9, similarity("kubernets", "kubernetes"), 0.001)
	assert.Less(t, similarity("go", "rust"), 0.5)
}
