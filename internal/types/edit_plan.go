package types

// EditActionType enumerates the kinds of edits a plan may propose
type EditActionType string

// Edit action type constants
const (
	ActionRewriteBullet EditActionType = "rewrite_bullet"
	ActionAddKeyword    EditActionType = "add_keyword"
	ActionRemoveItem    EditActionType = "remove_item"
	ActionReorder       EditActionType = "reorder"
	ActionEmphasize     EditActionType = "emphasize"
	ActionDeemphasize   EditActionType = "deemphasize"
	ActionAddSection    EditActionType = "add_section"
)

// KnownActionTypes maps every recognized action type; planner output with an
// unrecognized type is dropped rather than failing the plan.
var KnownActionTypes = map[EditActionType]bool{
	ActionRewriteBullet: true,
	ActionAddKeyword:    true,
	ActionRemoveItem:    true,
	ActionReorder:       true,
	ActionEmphasize:     true,
	ActionDeemphasize:   true,
	ActionAddSection:    true,
}

// Instruction is one user-supplied tailoring directive. Instructions are
// cumulative: callers may pass several and all of them shape the edit plan.
type Instruction struct {
	Intent      string   `json:"intent"`
	Constraints []string `json:"constraints,omitempty"`
}

// EditAction is a single proposed edit with a structured target path
type EditAction struct {
	Type        EditActionType `json:"action_type"`
	Target      UnitPath       `json:"target"`
	Description string         `json:"description,omitempty"`
	OldValue    string         `json:"old_value,omitempty"`
	NewValue    string         `json:"new_value,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Priority    float64        `json:"priority"`
}

// EditPlan aggregates proposed edits for one customization request. It is
// ephemeral: constructed, consumed once, then discarded.
type EditPlan struct {
	Actions              []EditAction `json:"actions"`
	Summary              string       `json:"summary,omitempty"`
	KeywordsToAdd        []string     `json:"keywords_to_add,omitempty"`
	KeywordsToEmphasize  []string     `json:"keywords_to_emphasize,omitempty"`
	SectionsToPrioritize []string     `json:"sections_to_prioritize,omitempty"`
	EstimatedImprovement float64      `json:"estimated_improvement"`
}

// EmptyPlan returns the recovery plan substituted when plan generation or parsing
// fails. The forced comprehensive pass does not depend on the plan succeeding.
func EmptyPlan(reason string) *EditPlan {
	return &EditPlan{
		Actions:              []EditAction{},
		Summary:              reason,
		EstimatedImprovement: 0,
	}
}
