// Package pipeline provides the high-level orchestration for profile tailoring.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/profile-tailor/internal/evaluation"
	"github.com/jonathan/profile-tailor/internal/identify"
	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/observability"
	"github.com/jonathan/profile-tailor/internal/planning"
	"github.com/jonathan/profile-tailor/internal/skills"
	"github.com/jonathan/profile-tailor/internal/tailoring"
	"github.com/jonathan/profile-tailor/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names emitted through progress events
const (
	StepNormalize = "normalize_skills"
	StepIdentify  = "identify_units"
	StepPlan      = "create_plan"
	StepApply     = "apply_edits"
	StepGuard     = "check_structure"
	StepEvaluate  = "evaluate"
)

// CustomizeOptions holds configuration for one tailoring run
type CustomizeOptions struct {
	Profile        *types.Profile
	JobDescription *types.JobDescription
	TargetRole     string
	TargetCompany  string
	// Instructions are cumulative user directives that shape the edit plan
	Instructions []types.Instruction
	APIKey       string
	// Client overrides the default Gemini client when set
	Client      llm.Client
	Concurrency int
	Timeout     time.Duration
	Verbose     bool
	OnProgress  ProgressCallback
}

// CustomizeResult is the outcome of a tailoring run. Success means the pipeline
// completed; a completeness score of zero with Success still set indicates the
// LLM backend produced no usable rewrites and the profile is unchanged.
type CustomizeResult struct {
	Success bool                      `json:"success"`
	Profile *types.Profile            `json:"profile"`
	Plan    *types.EditPlan           `json:"plan,omitempty"`
	Report  *types.CompletenessReport `json:"report"`
	Stats   *tailoring.Stats          `json:"stats"`
}

// Customize runs the full tailoring pipeline: normalize skills, identify units,
// plan, apply (plan pass plus forced comprehensive pass), guard structure and
// evaluate coverage. Plan failures degrade to the forced pass alone; a
// structure violation is the one hard failure after editing begins.
func Customize(ctx context.Context, opts CustomizeOptions) (*CustomizeResult, error) {
	if opts.Profile == nil {
		return nil, fmt.Errorf("profile is required")
	}
	if opts.JobDescription == nil && opts.TargetRole == "" {
		return nil, fmt.Errorf("either a job description or a target role is required")
	}

	printer := observability.NewPrinter(os.Stdout)

	client := opts.Client
	if client == nil {
		var err error
		client, err = llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
	}

	// Step 1: Normalize skills on a working copy; the input is never mutated
	fmt.Printf("Step 1/5: Normalizing technology names...\n")
	prepared := opts.Profile.DeepCopy()
	skills.NormalizeProfileSkills(prepared)
	emitProgress(&opts, StepNormalize, fmt.Sprintf("Normalized %d skills", len(prepared.Skills)), nil)

	// Step 2: Identify editable units
	units := identify.Units(prepared)
	fmt.Printf("Step 2/5: Identified %d editable units\n", len(units))
	emitProgress(&opts, StepIdentify, fmt.Sprintf("Identified %d editable units", len(units)), nil)

	if opts.Verbose {
		printer.PrintJobDescription(opts.JobDescription)
	}

	// Step 3: Create the edit plan. A failed plan is logged and replaced with
	// an empty one; the forced pass still covers every unit.
	var plan *types.EditPlan
	if opts.JobDescription != nil {
		fmt.Printf("Step 3/5: Creating edit plan...\n")
		var err error
		plan, err = planning.CreatePlan(ctx, client, prepared, opts.JobDescription, &planning.Options{
			Company:      opts.TargetCompany,
			Role:         opts.TargetRole,
			Instructions: opts.Instructions,
		})
		if err != nil {
			fmt.Printf("Warning: Edit plan generation failed: %v\n", err)
			fmt.Printf("Continuing with the comprehensive pass only...\n")
		}
		emitProgress(&opts, StepPlan, fmt.Sprintf("Plan proposes %d actions", len(plan.Actions)), plan)
		if opts.Verbose {
			printer.PrintEditPlan(plan)
		}
	} else {
		fmt.Printf("Step 3/5: No job description; skipping edit plan\n")
	}

	// Step 4: Apply the plan, then the forced comprehensive pass
	fmt.Printf("Step 4/5: Applying edits...\n")
	applier := tailoring.NewApplier(client)
	if opts.Concurrency > 0 {
		applier.Concurrency = opts.Concurrency
	}
	if opts.Timeout > 0 {
		applier.Timeout = opts.Timeout
	}

	edited, stats, err := applier.Apply(ctx, prepared, opts.JobDescription, plan, opts.TargetRole, opts.TargetCompany)
	if err != nil {
		return nil, fmt.Errorf("edit application failed: %w", err)
	}
	emitProgress(&opts, StepApply,
		fmt.Sprintf("Rewrote %d units (%d unchanged)", stats.UnitsRewritten, stats.UnitsUnchanged), nil)

	// Structure integrity is non-negotiable: losing content fails the run
	if err := evaluation.CheckStructure(prepared, edited); err != nil {
		return nil, fmt.Errorf("edited profile rejected: %w", err)
	}
	emitProgress(&opts, StepGuard, "Structure integrity verified", nil)

	// Step 5: Evaluate coverage
	report := evaluation.Evaluate(prepared, edited, units)
	fmt.Printf("Step 5/5: Completeness %.2f (%d/%d units edited)\n",
		report.Score, report.EditedCount, report.IdentifiedCount)
	if len(report.Missing) > 0 && opts.Verbose {
		printer.PrintCompletenessReport(report)
	}
	emitProgress(&opts, StepEvaluate, fmt.Sprintf("Completeness score %.2f", report.Score), report)

	return &CustomizeResult{
		Success: true,
		Profile: edited,
		Plan:    plan,
		Report:  report,
		Stats:   stats,
	}, nil
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *CustomizeOptions, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			Content: content,
		})
	}
}
