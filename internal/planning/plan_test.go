package planning

import (
	"context"
	"errors"
	"testing"

	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient returns canned responses without touching the network
type stubClient struct {
	response string
	err      error
	prompts  []string
}

func (s *stubClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier, _ *llm.GenerateOptions) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier, _ *llm.GenerateOptions) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubClient) GetModel(llm.ModelTier) string { return "stub-model" }

func (s *stubClient) Close() error { return nil }

func testProfile() *types.Profile {
	return &types.Profile{
		Name:    "Ada Lovelace",
		Summary: "Engineer.",
		Experiences: []types.Experience{
			{Title: "Engineer", Company: "Initech", Bullets: []string{"a", "b", "c"}},
		},
		Projects: []types.Project{{Name: "etl-kit", Description: "ETL toolkit"}},
		Skills:   []types.Skill{{Name: "Go"}},
	}
}

func testJD() *types.JobDescription {
	return &types.JobDescription{
		Title:   "Backend Engineer",
		Company: "Globex",
		RequiredSkills: []types.SkillRequirement{
			{Skill: "Go", IsRequired: true, Importance: 0.9},
		},
		ATSKeywords: []string{"Go", "Kubernetes"},
	}
}

const validPlanJSON = `{
  "summary": "Emphasize Go and Kubernetes.",
  "actions": [
    {"action_type": "rewrite_bullet", "target": "experience[0].bullet[1]", "new_value": "Did X with Go", "priority": 0.9},
    {"action_type": "add_keyword", "target": "skills", "new_value": "Kubernetes", "priority": 0.6}
  ],
  "keywords_to_add": ["Kubernetes"],
  "estimated_improvement": 0.35
}`

func TestCreatePlan_Valid(t *testing.T) {
	client := &stubClient{response: validPlanJSON}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.NoError(t, err)
	require.Len(t, plan.Actions, 2)

	assert.Equal(t, types.ActionRewriteBullet, plan.Actions[0].Type)
	assert.Equal(t, types.ExperienceBulletUnit(0, 1), plan.Actions[0].Target)
	assert.Equal(t, "Did X with Go", plan.Actions[0].NewValue)
	assert.Equal(t, 0.9, plan.Actions[0].Priority)
	assert.Equal(t, types.SkillsUnit(), plan.Actions[1].Target)
	assert.Equal(t, "Emphasize Go and Kubernetes.", plan.Summary)
	assert.Equal(t, 0.35, plan.EstimatedImprovement)
}

func TestCreatePlan_MarkdownFencedResponse(t *testing.T) {
	client := &stubClient{response: "```json\n" + validPlanJSON + "\n```"}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.NoError(t, err)
	assert.Len(t, plan.Actions, 2)
}

func TestCreatePlan_DocumentedResponseShape(t *testing.T) {
	// A response in exactly the structure the plan prompt documents must
	// parse into plan actions, not degrade to an empty plan.
	client := &stubClient{response: `{
	  "summary": "Brief summary of the comprehensive customization strategy",
	  "actions": [
	    {
	      "action_type": "rewrite_bullet",
	      "target": "experience[0].bullet[0]",
	      "description": "What to change",
	      "old_value": "Current text",
	      "new_value": "New text",
	      "reason": "Why this change improves ATS match",
	      "priority": 0.9
	    }
	  ],
	  "keywords_to_add": ["keyword1", "keyword2"],
	  "keywords_to_emphasize": ["keyword1"],
	  "sections_to_prioritize": ["experience", "projects", "skills", "summary"],
	  "estimated_improvement": 0.5
	}`}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.NoError(t, err)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, types.ExperienceBulletUnit(0, 0), plan.Actions[0].Target)
	assert.Equal(t, "New text", plan.Actions[0].NewValue)
	assert.Equal(t, 0.9, plan.Actions[0].Priority)
	assert.Equal(t, "Brief summary of the comprehensive customization strategy", plan.Summary)
	assert.Equal(t, []string{"keyword1", "keyword2"}, plan.KeywordsToAdd)
	assert.Equal(t, 0.5, plan.EstimatedImprovement)
}

func TestCreatePlan_LegacyWireFormat(t *testing.T) {
	// Older prompt phrasing produced edit_actions with underscore targets;
	// salvage still recovers those plans.
	client := &stubClient{response: `{
	  "edit_actions": [
	    {"action_type": "rewrite_bullet", "target": "experience_0_bullet_2", "priority": 0.7}
	  ],
	  "plan_summary": "legacy"
	}`}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.NoError(t, err)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, types.ExperienceBulletUnit(0, 2), plan.Actions[0].Target)
	assert.Equal(t, "legacy", plan.Summary)
}

func TestCreatePlan_LLMFailure(t *testing.T) {
	client := &stubClient{err: errors.New("backend unavailable")}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.Error(t, err)

	var planErr *PlanError
	assert.ErrorAs(t, err, &planErr)

	// Recovery plan is still usable
	require.NotNil(t, plan)
	assert.Empty(t, plan.Actions)
}

func TestCreatePlan_SalvagesPartiallyInvalidPlan(t *testing.T) {
	// Second action is missing its target, which fails schema validation;
	// salvage keeps the first action and drops the broken one.
	client := &stubClient{response: `{
	  "actions": [
	    {"action_type": "rewrite_bullet", "target": "experience[0].bullet[0]", "priority": 0.8},
	    {"action_type": "add_keyword"}
	  ],
	  "summary": "partial"
	}`}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.NoError(t, err)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, types.ExperienceBulletUnit(0, 0), plan.Actions[0].Target)
	assert.Equal(t, "partial", plan.Summary)
}

func TestCreatePlan_UnparseableResponse(t *testing.T) {
	client := &stubClient{response: "I cannot produce a plan right now."}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.Error(t, err)

	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
	assert.Empty(t, plan.Actions)
}

func TestCreatePlan_DropsUnknownActionsAndTargets(t *testing.T) {
	client := &stubClient{response: `{
	  "actions": [
	    {"action_type": "rewrite_bullet", "target": "experience[0].bullet[0]", "priority": 0.9},
	    {"action_type": "delete_everything", "target": "summary", "priority": 0.9},
	    {"action_type": "rewrite_bullet", "target": "nonsense target", "priority": 0.9}
	  ]
	}`}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.NoError(t, err)
	assert.Len(t, plan.Actions, 1)
}

func TestCreatePlan_ClampsValues(t *testing.T) {
	// Out-of-range priorities fail the schema but survive salvage, clamped
	// into [0,1]
	client := &stubClient{response: `{
	  "actions": [
	    {"action_type": "rewrite_bullet", "target": "summary", "priority": 3}
	  ],
	  "estimated_improvement": 1.4
	}`}

	plan, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.NoError(t, err)
	require.Len(t, plan.Actions, 1)
	assert.Equal(t, 1.0, plan.Actions[0].Priority)
	assert.Equal(t, 1.0, plan.EstimatedImprovement)
}

func TestCreatePlan_PromptMentionsMinimumEdits(t *testing.T) {
	client := &stubClient{response: validPlanJSON}

	_, err := CreatePlan(context.Background(), client, testProfile(), testJD(), nil)
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Ada Lovelace")
	assert.Contains(t, client.prompts[0], "Backend Engineer")
}

func TestCreatePlan_PromptCarriesInstructions(t *testing.T) {
	client := &stubClient{response: validPlanJSON}

	_, err := CreatePlan(context.Background(), client, testProfile(), testJD(), &Options{
		Company: "Initech",
		Role:    "Staff Engineer",
		Instructions: []types.Instruction{
			{Intent: "Emphasize distributed systems work", Constraints: []string{"keep it under one page"}},
			{Intent: "Mention the migration project"},
		},
	})
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Target Company: Initech")
	assert.Contains(t, client.prompts[0], "Target Role: Staff Engineer")
	assert.Contains(t, client.prompts[0], "1. Emphasize distributed systems work")
	assert.Contains(t, client.prompts[0], "Constraints: keep it under one page")
	assert.Contains(t, client.prompts[0], "2. Mention the migration project")
}

func TestCreatePlan_MissingInputs(t *testing.T) {
	client := &stubClient{response: validPlanJSON}

	plan, err := CreatePlan(context.Background(), client, nil, testJD(), nil)
	assert.Error(t, err)
	assert.NotNil(t, plan)

	plan, err = CreatePlan(context.Background(), client, testProfile(), nil, nil)
	assert.Error(t, err)
	assert.NotNil(t, plan)
	assert.Empty(t, client.prompts)
}

func TestMinimumExpectedEdits(t *testing.T) {
	// 3 bullets -> ceil(2.1) = 3 capped at 3, min 2 -> 3; project +1;
	// summary +1; skills +1
	assert.Equal(t, 6, MinimumExpectedEdits(testProfile()))

	assert.Equal(t, 0, MinimumExpectedEdits(&types.Profile{}))

	// Single-bullet experience still expects 1 edit (capped by bullet count)
	profile := &types.Profile{
		Experiences: []types.Experience{{Bullets: []string{"only"}}},
	}
	assert.Equal(t, 1, MinimumExpectedEdits(profile))
}
