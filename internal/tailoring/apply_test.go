package tailoring

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient rewrites deterministically without a backend. With echoKeywords
// set, the keyword rewrite prompt echoes the original text back so the retry
// path can be exercised.
type fakeClient struct {
	mu           sync.Mutex
	calls        int
	prompts      []string
	fail         bool
	echoKeywords bool
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier, _ *llm.GenerateOptions) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.fail {
		return "", errors.New("backend unavailable")
	}

	original := extractQuoted(prompt, "Original bullet: ")
	if original == "" {
		original = extractQuoted(prompt, "Current bullet: ")
	}

	switch {
	case strings.Contains(prompt, "incorporate these keywords") && original != "":
		if f.echoKeywords {
			return original, nil
		}
		return "Tailored: " + original, nil
	case strings.Contains(prompt, "more impactful") && original != "":
		return "Improved: " + original, nil
	case original != "":
		return "Tailored: " + original, nil
	case strings.Contains(prompt, "project description"):
		return "Keyword-rich project description.", nil
	case strings.Contains(prompt, "professional summary") || strings.Contains(prompt, "summary"):
		return "Seasoned engineer aligned with the target role.", nil
	default:
		return "Rewritten text.", nil
	}
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier, opts *llm.GenerateOptions) (string, error) {
	return f.GenerateContent(ctx, prompt, tier, opts)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func extractQuoted(prompt, marker string) string {
	idx := strings.Index(prompt, marker)
	if idx < 0 {
		return ""
	}
	rest := prompt[idx+len(marker):]
	if end := strings.Index(rest, "\n"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func tailorProfile() *types.Profile {
	return &types.Profile{
		Name:    "Ada Lovelace",
		Summary: "Backend engineer with data platform experience.",
		Experiences: []types.Experience{
			{
				Title:        "Senior Engineer",
				Company:      "Initech",
				Bullets:      []string{"Built the billing pipeline", "Cut query latency"},
				Technologies: []string{"Python"},
			},
		},
		Projects: []types.Project{
			{
				Name:        "etl-kit",
				Description: "A small ETL toolkit",
				Bullets:     []string{"Supports incremental loads"},
			},
		},
		Skills: []types.Skill{{Name: "Python"}},
	}
}

func tailorJD() *types.JobDescription {
	return &types.JobDescription{
		Title:   "Backend Engineer",
		Company: "Globex",
		RequiredSkills: []types.SkillRequirement{
			{Skill: "Go", IsRequired: true, Importance: 0.9},
			{Skill: "Kubernetes", IsRequired: true, Importance: 0.8},
		},
		TechnicalKeywords: []string{"Go", "Kubernetes"},
		ATSKeywords:       []string{"PostgreSQL"},
	}
}

func TestApply_FullTailor(t *testing.T) {
	client := &fakeClient{}
	applier := NewApplier(client)
	original := tailorProfile()

	edited, stats, err := applier.Apply(context.Background(), original, tailorJD(), nil, "", "")
	require.NoError(t, err)

	// Input not mutated
	assert.Equal(t, "Built the billing pipeline", original.Experiences[0].Bullets[0])
	assert.Equal(t, []string{"Python"}, original.Experiences[0].Technologies)

	// Every text unit rewritten
	assert.NotEqual(t, original.Summary, edited.Summary)
	for _, bullet := range edited.Experiences[0].Bullets {
		assert.True(t, strings.HasPrefix(bullet, "Tailored: ") || strings.HasPrefix(bullet, "Improved: "))
	}
	assert.NotEqual(t, original.Projects[0].Description, edited.Projects[0].Description)

	// Structure preserved
	assert.Len(t, edited.Experiences[0].Bullets, 2)
	assert.Len(t, edited.Projects[0].Bullets, 1)

	// Missing technologies and skills appended
	assert.Contains(t, edited.Experiences[0].Technologies, "Go")
	assert.Contains(t, edited.Experiences[0].Technologies, "Kubernetes")
	assert.Greater(t, stats.SkillsAdded, 0)
	assert.Equal(t, 5, stats.UnitsRewritten) // summary + 2 exp bullets + 1 proj bullet + description
	assert.Zero(t, stats.UnitsUnchanged)
}

func TestApply_BackendDown(t *testing.T) {
	client := &fakeClient{fail: true}
	applier := NewApplier(client)
	original := tailorProfile()

	edited, stats, err := applier.Apply(context.Background(), original, tailorJD(), nil, "", "")
	require.NoError(t, err)

	// Text untouched when every call fails
	assert.Equal(t, original.Summary, edited.Summary)
	assert.Equal(t, original.Experiences[0].Bullets, edited.Experiences[0].Bullets)
	assert.Equal(t, original.Projects[0].Description, edited.Projects[0].Description)
	assert.Zero(t, stats.UnitsRewritten)
	assert.Equal(t, 5, stats.UnitsUnchanged)

	// A dead backend degrades to a full no-op: no injections either
	assert.Equal(t, original.Experiences[0].Technologies, edited.Experiences[0].Technologies)
	assert.Equal(t, original.Skills, edited.Skills)
}

func TestApply_RoleOnly(t *testing.T) {
	client := &fakeClient{}
	applier := NewApplier(client)
	original := tailorProfile()

	edited, stats, err := applier.Apply(context.Background(), original, nil, nil, "Engineering Manager", "Globex")
	require.NoError(t, err)

	// Bullets and summary are tailored to the role
	assert.NotEqual(t, original.Summary, edited.Summary)
	assert.NotEqual(t, original.Experiences[0].Bullets[0], edited.Experiences[0].Bullets[0])

	// Skills and technologies are never touched without a job description
	assert.Equal(t, original.Skills, edited.Skills)
	assert.Equal(t, original.Experiences[0].Technologies, edited.Experiences[0].Technologies)
	assert.Zero(t, stats.SkillsAdded)
	assert.Zero(t, stats.TechnologiesAdded)
}

func TestApply_RetryOnEchoedRewrite(t *testing.T) {
	client := &fakeClient{echoKeywords: true}
	applier := NewApplier(client)
	applier.Concurrency = 1

	edited, stats, err := applier.Apply(context.Background(), tailorProfile(), tailorJD(), nil, "", "")
	require.NoError(t, err)

	// Keyword rewrites echoed the original, so the improvement retry kicked in
	assert.True(t, strings.HasPrefix(edited.Experiences[0].Bullets[0], "Improved: "))
	assert.Greater(t, stats.UnitsRewritten, 0)
}

func TestApply_PlanActions(t *testing.T) {
	client := &fakeClient{}
	applier := NewApplier(client)

	plan := &types.EditPlan{
		Actions: []types.EditAction{
			{Type: types.ActionRewriteBullet, Target: types.ExperienceBulletUnit(0, 0), NewValue: "Planned rewrite"},
			{Type: types.ActionRewriteBullet, Target: types.ExperienceBulletUnit(0, 1)}, // no new value
			{Type: types.ActionRewriteBullet, Target: types.ExperienceBulletUnit(9, 0), NewValue: "x"},
			{Type: types.ActionAddKeyword, Target: types.SkillsUnit(), NewValue: "Terraform"},
			{Type: types.ActionAddSection, Target: types.SummaryUnit()},
		},
	}

	profile := tailorProfile()
	stats := &Stats{}
	for _, action := range plan.Actions {
		applier.applyAction(profile, tailorJD(), action, stats)
	}

	assert.Equal(t, "Planned rewrite", profile.Experiences[0].Bullets[0])
	assert.Equal(t, 2, stats.PlanActionsApplied)
	assert.Equal(t, 2, stats.PlanActionsSkipped)
	assert.Equal(t, 1, stats.PlanActionsFailed)

	names := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		names = append(names, s.Name)
	}
	assert.Contains(t, names, "Terraform")
}

func TestApply_EmphasizeReordersBullets(t *testing.T) {
	profile := &types.Profile{
		Experiences: []types.Experience{
			{Bullets: []string{"first", "second", "third"}},
		},
	}

	ok := moveBullet(profile, types.ExperienceBulletUnit(0, 2), true)
	require.True(t, ok)
	assert.Equal(t, []string{"third", "first", "second"}, profile.Experiences[0].Bullets)

	ok = moveBullet(profile, types.ExperienceBulletUnit(0, 0), false)
	require.True(t, ok)
	assert.Equal(t, []string{"first", "second", "third"}, profile.Experiences[0].Bullets)

	assert.False(t, moveBullet(profile, types.ExperienceBulletUnit(0, 9), true))
	assert.False(t, moveBullet(profile, types.SummaryUnit(), true))
}

func TestApply_TechnologyCapPerExperience(t *testing.T) {
	jd := &types.JobDescription{
		TechnicalKeywords: []string{"Go", "Kubernetes", "Terraform", "PostgreSQL", "Redis", "Kafka", "Docker"},
	}
	profile := &types.Profile{
		Experiences: []types.Experience{
			{Bullets: []string{"a"}},
		},
	}

	stats := &Stats{}
	appendMissingTechnologies(profile, jd, stats)

	assert.Len(t, profile.Experiences[0].Technologies, 5)
	assert.Equal(t, 5, stats.TechnologiesAdded)
}

func TestApply_TechnologiesDrawnFromTechnicalKeywords(t *testing.T) {
	// The technology injection diffs against the job's technical keywords,
	// not its ranked skill lists. Matching is case-insensitive.
	jd := &types.JobDescription{
		RequiredSkills: []types.SkillRequirement{
			{Skill: "Leadership", Importance: 0.9},
		},
		TechnicalKeywords: []string{"docker", "terraform", "python"},
	}
	profile := &types.Profile{
		Experiences: []types.Experience{
			{Bullets: []string{"a"}, Technologies: []string{"Python"}},
		},
	}

	stats := &Stats{}
	appendMissingTechnologies(profile, jd, stats)

	assert.Equal(t, []string{"Python", "Docker", "Terraform"}, profile.Experiences[0].Technologies)
	assert.Equal(t, 2, stats.TechnologiesAdded)
}

func TestApply_SkillsAppendedInPostingOrder(t *testing.T) {
	// Missing skills follow the order the posting lists them, required before
	// preferred, regardless of importance.
	jd := &types.JobDescription{
		RequiredSkills: []types.SkillRequirement{
			{Skill: "Terraform", IsRequired: true, Importance: 0.1},
			{Skill: "Go", IsRequired: true, Importance: 0.2},
		},
		PreferredSkills: []types.SkillRequirement{
			{Skill: "Kubernetes", Importance: 0.9},
		},
	}
	profile := &types.Profile{}

	stats := &Stats{}
	appendMissingSkills(profile, jd, stats)

	names := make([]string, 0, len(profile.Skills))
	for _, s := range profile.Skills {
		names = append(names, s.Name)
	}
	// A profile with no skills section still gains one
	assert.Equal(t, []string{"Terraform", "Go", "Kubernetes"}, names)
	assert.Equal(t, 3, stats.SkillsAdded)
}

func TestApply_RewritesOtherSectionDescriptions(t *testing.T) {
	client := &fakeClient{}
	applier := NewApplier(client)

	profile := tailorProfile()
	profile.OtherSections = []types.OtherSection{
		{
			Name: "Leadership",
			Items: []types.Record{
				{"title": "Club President", "description": "Led a student club of 30 members"},
				{"title": "Mentor"},
			},
		},
	}

	edited, stats, err := applier.Apply(context.Background(), profile, tailorJD(), nil, "", "")
	require.NoError(t, err)

	desc := edited.OtherSections[0].Items[0]["description"].(string)
	assert.True(t, strings.HasPrefix(desc, "Tailored: ") || strings.HasPrefix(desc, "Improved: "))
	assert.Equal(t, "Led a student club of 30 members", profile.OtherSections[0].Items[0]["description"])

	// Items without a description are left alone
	_, hasDesc := edited.OtherSections[0].Items[1]["description"]
	assert.False(t, hasDesc)
	assert.Equal(t, 6, stats.UnitsRewritten)
}

func TestApply_SummaryPromptCarriesTopSkills(t *testing.T) {
	jd := &types.JobDescription{
		Title:   "Platform Engineer",
		Company: "Globex",
		RequiredSkills: []types.SkillRequirement{
			{Skill: "Go", Importance: 1.0},
			{Skill: "Kubernetes", Importance: 0.95},
			{Skill: "Terraform", Importance: 0.9},
			{Skill: "PostgreSQL", Importance: 0.85},
			{Skill: "Redis", Importance: 0.8},
			{Skill: "Kafka", Importance: 0.75},
			{Skill: "Docker", Importance: 0.7},
			{Skill: "AWS", Importance: 0.65},
			{Skill: "Python", Importance: 0.6},
			{Skill: "Linux", Importance: 0.55},
			{Skill: "COBOL", Importance: 0.1},
		},
		EmphasisAreas: []string{"scalability", "reliability", "automation", "security", "observability", "mentoring"},
	}

	client := &fakeClient{}
	applier := NewApplier(client)
	_, _, err := applier.Apply(context.Background(), tailorProfile(), jd, nil, "", "")
	require.NoError(t, err)

	var summaryPrompt string
	client.mu.Lock()
	for _, p := range client.prompts {
		if strings.Contains(p, "Backend engineer with data platform experience.") {
			summaryPrompt = p
			break
		}
	}
	client.mu.Unlock()
	require.NotEmpty(t, summaryPrompt)

	// Top ten skills by priority, five emphasis areas
	assert.Contains(t, summaryPrompt, "Kubernetes")
	assert.Contains(t, summaryPrompt, "Linux")
	assert.NotContains(t, summaryPrompt, "COBOL")
	assert.Contains(t, summaryPrompt, "observability")
	assert.NotContains(t, summaryPrompt, "mentoring")
}

func TestApply_NilProfile(t *testing.T) {
	applier := NewApplier(&fakeClient{})
	_, _, err := applier.Apply(context.Background(), nil, tailorJD(), nil, "", "")
	assert.Error(t, err)
}
