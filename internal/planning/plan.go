// Package planning asks the LLM for a structured edit plan describing how to
// tailor a profile to a job description. Plan failures are recoverable: callers
// receive an empty plan and proceed with the forced comprehensive pass.
package planning

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/prompts"
	"github.com/jonathan/profile-tailor/internal/types"
)

//go:embed schema.json
var planSchema string

// planAction mirrors the wire shape of one edit action. Targets arrive as path
// strings and are parsed into structured unit paths during conversion.
type planAction struct {
	ActionType  string  `json:"action_type"`
	Target      string  `json:"target"`
	Description string  `json:"description"`
	OldValue    string  `json:"old_value"`
	NewValue    string  `json:"new_value"`
	Reason      string  `json:"reason"`
	Priority    float64 `json:"priority"`
}

// planResponse mirrors the wire shape of the full plan, matching the structure
// the plan prompt shows the model
type planResponse struct {
	EditActions          []planAction `json:"actions"`
	PlanSummary          string       `json:"summary"`
	KeywordsToAdd        []string     `json:"keywords_to_add"`
	KeywordsToEmphasize  []string     `json:"keywords_to_emphasize"`
	SectionsToPrioritize []string     `json:"sections_to_prioritize"`
	EstimatedImprovement float64      `json:"estimated_improvement"`
}

// Options carries optional planning context: the target company and role, and
// cumulative user instructions that shape the plan prompt.
type Options struct {
	Company      string
	Role         string
	Instructions []types.Instruction
}

// CreatePlan generates an edit plan for tailoring the profile to the job
// description. On any failure it returns an empty plan alongside the error,
// never nil, so callers can continue to the forced pass unconditionally.
func CreatePlan(ctx context.Context, client llm.Client, profile *types.Profile, jd *types.JobDescription, opts *Options) (*types.EditPlan, error) {
	if profile == nil {
		return types.EmptyPlan("no profile provided"), &PlanError{Message: "profile is required"}
	}
	if jd == nil {
		return types.EmptyPlan("no job description provided"), &PlanError{Message: "job description is required"}
	}

	template, err := prompts.Get("tailoring.json", "plan-request")
	if err != nil {
		return types.EmptyPlan("prompt template unavailable"), &PlanError{Message: "failed to load plan prompt", Cause: err}
	}

	prompt := prompts.Format(template, map[string]string{
		"ProfileSummary": summarizeProfile(profile),
		"JDSummary":      summarizeJobDescription(jd),
		"Instructions":   buildInstructions(profile, opts),
	})

	raw, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced, llm.PlanOptions())
	if err != nil {
		return types.EmptyPlan("plan generation failed"), &PlanError{Message: "LLM call failed", Cause: err}
	}

	plan, err := parsePlan(llm.CleanJSONBlock(raw))
	if err != nil {
		return types.EmptyPlan("plan response unparseable"), err
	}
	return plan, nil
}

// parsePlan decodes and validates a plan payload, falling back to tolerant
// field extraction when strict decoding fails.
func parsePlan(payload string) (*types.EditPlan, error) {
	if err := validatePlan(payload); err == nil {
		var resp planResponse
		if jsonErr := json.Unmarshal([]byte(payload), &resp); jsonErr == nil {
			return convertResponse(&resp), nil
		}
	}

	resp, ok := salvagePlan(payload)
	if !ok {
		return nil, &ParseError{Message: "plan payload failed schema validation and salvage"}
	}
	return convertResponse(resp), nil
}

func validatePlan(payload string) error {
	schemaLoader := gojsonschema.NewStringLoader(planSchema)
	documentLoader := gojsonschema.NewStringLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &ParseError{Message: "schema validation could not run", Cause: err}
	}
	if !result.Valid() {
		descriptions := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			descriptions = append(descriptions, desc.String())
		}
		return &ParseError{Message: fmt.Sprintf("plan failed validation: %v", descriptions)}
	}
	return nil
}

// salvagePlan pulls whatever usable actions exist out of a payload that did not
// survive strict validation. Models occasionally emit trailing prose or drop a
// required field on one action; a partial plan is worth more than none.
func salvagePlan(payload string) (*planResponse, bool) {
	actions := gjson.Get(payload, "actions")
	if !actions.Exists() || !actions.IsArray() {
		// older prompt phrasing produced this key
		actions = gjson.Get(payload, "edit_actions")
	}
	if !actions.Exists() || !actions.IsArray() {
		return nil, false
	}

	resp := &planResponse{}
	actions.ForEach(func(_, action gjson.Result) bool {
		actionType := action.Get("action_type").String()
		target := action.Get("target").String()
		if actionType == "" || target == "" {
			return true
		}
		resp.EditActions = append(resp.EditActions, planAction{
			ActionType:  actionType,
			Target:      target,
			Description: action.Get("description").String(),
			OldValue:    action.Get("old_value").String(),
			NewValue:    action.Get("new_value").String(),
			Reason:      action.Get("reason").String(),
			Priority:    action.Get("priority").Float(),
		})
		return true
	})
	if len(resp.EditActions) == 0 {
		return nil, false
	}

	resp.PlanSummary = gjson.Get(payload, "summary").String()
	if resp.PlanSummary == "" {
		resp.PlanSummary = gjson.Get(payload, "plan_summary").String()
	}
	resp.EstimatedImprovement = gjson.Get(payload, "estimated_improvement").Float()
	for _, keyword := range gjson.Get(payload, "keywords_to_add").Array() {
		resp.KeywordsToAdd = append(resp.KeywordsToAdd, keyword.String())
	}
	for _, keyword := range gjson.Get(payload, "keywords_to_emphasize").Array() {
		resp.KeywordsToEmphasize = append(resp.KeywordsToEmphasize, keyword.String())
	}
	for _, section := range gjson.Get(payload, "sections_to_prioritize").Array() {
		resp.SectionsToPrioritize = append(resp.SectionsToPrioritize, section.String())
	}
	return resp, true
}

// convertResponse turns wire actions into structured ones. Actions with an
// unknown type or an unparseable target are dropped, not fatal.
func convertResponse(resp *planResponse) *types.EditPlan {
	plan := &types.EditPlan{
		Summary:              resp.PlanSummary,
		KeywordsToAdd:        resp.KeywordsToAdd,
		KeywordsToEmphasize:  resp.KeywordsToEmphasize,
		SectionsToPrioritize: resp.SectionsToPrioritize,
		EstimatedImprovement: clamp01(resp.EstimatedImprovement),
	}

	for _, action := range resp.EditActions {
		actionType := types.EditActionType(action.ActionType)
		if !types.KnownActionTypes[actionType] {
			continue
		}
		target, err := types.ParseUnitPath(action.Target)
		if err != nil {
			continue
		}
		plan.Actions = append(plan.Actions, types.EditAction{
			Type:        actionType,
			Target:      target,
			Description: action.Description,
			OldValue:    action.OldValue,
			NewValue:    action.NewValue,
			Reason:      action.Reason,
			Priority:    clamp01(action.Priority),
		})
	}
	return plan
}

// MinimumExpectedEdits estimates how many edits a thorough plan should propose:
// 70% of bullets per experience (at least 2 where possible), one per project,
// plus one each for a non-empty summary and skills section.
func MinimumExpectedEdits(profile *types.Profile) int {
	total := 0
	for _, exp := range profile.Experiences {
		if len(exp.Bullets) == 0 {
			continue
		}
		n := (len(exp.Bullets)*7 + 9) / 10
		if n < 2 {
			n = 2
		}
		if n > len(exp.Bullets) {
			n = len(exp.Bullets)
		}
		total += n
	}
	for _, proj := range profile.Projects {
		if len(proj.Bullets) > 0 || proj.Description != "" {
			total++
		}
	}
	if profile.Summary != "" {
		total++
	}
	if len(profile.Skills) > 0 {
		total++
	}
	return total
}

func buildInstructions(profile *types.Profile, opts *Options) string {
	var b strings.Builder

	if opts != nil {
		if opts.Company != "" {
			fmt.Fprintf(&b, "Target Company: %s\n", opts.Company)
		}
		if opts.Role != "" {
			fmt.Fprintf(&b, "Target Role: %s\n", opts.Role)
		}
		if len(opts.Instructions) > 0 {
			b.WriteString("User Instructions (cumulative, apply all):\n")
			for i, inst := range opts.Instructions {
				fmt.Fprintf(&b, "  %d. %s\n", i+1, inst.Intent)
				if len(inst.Constraints) > 0 {
					fmt.Fprintf(&b, "     Constraints: %s\n", strings.Join(inst.Constraints, ", "))
				}
			}
		}
	}

	fmt.Fprintf(&b,
		"Propose at least %d edit actions covering every section that exists in the resume. "+
			"Use targets of the form summary, experience[i].bullet[j], experience[i].technologies, "+
			"project[i].bullet[j], project[i].description, skills, or other_section[Name].",
		MinimumExpectedEdits(profile))
	return b.String()
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
