// Package tailoring applies edit plans to profiles and runs the forced
// comprehensive rewrite pass. Structure is preserved throughout: bullets and
// sections are rewritten in place, never added or removed.
package tailoring

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/skills"
	"github.com/jonathan/profile-tailor/internal/types"
)

const (
	defaultConcurrency = 4
	defaultCallTimeout = 60 * time.Second

	maxTechnologiesAddedPerExperience = 5
	maxTechnologiesAddedPerProject    = 3
	maxSkillsAdded                    = 10

	maxSummarySkills        = 10
	maxSummaryEmphasisAreas = 5
)

// Applier runs both edit passes against a profile copy
type Applier struct {
	Client llm.Client
	// Concurrency bounds parallel LLM calls in the forced pass
	Concurrency int
	// Timeout applies per LLM call, not to the whole pass
	Timeout time.Duration
}

// NewApplier returns an Applier with default concurrency and timeout
func NewApplier(client llm.Client) *Applier {
	return &Applier{
		Client:      client,
		Concurrency: defaultConcurrency,
		Timeout:     defaultCallTimeout,
	}
}

// Stats counts what each pass did. Unchanged units are normal: a failed or
// no-op rewrite keeps the original text and the pipeline carries on.
type Stats struct {
	PlanActionsApplied int
	PlanActionsSkipped int
	PlanActionsFailed  int
	UnitsRewritten     int
	UnitsUnchanged     int
	TechnologiesAdded  int
	SkillsAdded        int
}

// Apply runs the plan-driven pass followed by the forced comprehensive pass and
// returns the edited copy. The input profile is never mutated. Per-unit rewrite
// failures are absorbed; only invalid input produces an error.
func (a *Applier) Apply(ctx context.Context, profile *types.Profile, jd *types.JobDescription, plan *types.EditPlan, role, company string) (*types.Profile, *Stats, error) {
	if profile == nil {
		return nil, nil, &ApplyError{Message: "profile is required"}
	}
	if a.Client == nil {
		return nil, nil, &ApplyError{Message: "LLM client is required"}
	}

	edited := profile.DeepCopy()
	stats := &Stats{}

	if plan != nil {
		for _, action := range plan.Actions {
			a.applyAction(edited, jd, action, stats)
		}
	}

	a.forcedPass(ctx, edited, jd, role, company, stats)
	return edited, stats, nil
}

// applyAction applies one plan action in place. Failures mark the action failed
// and move on; the forced pass revisits every unit regardless.
func (a *Applier) applyAction(profile *types.Profile, jd *types.JobDescription, action types.EditAction, stats *Stats) {
	switch action.Type {
	case types.ActionRewriteBullet:
		if action.NewValue == "" {
			stats.PlanActionsSkipped++
			return
		}
		slot, ok := resolveText(profile, action.Target)
		if !ok {
			stats.PlanActionsFailed++
			return
		}
		*slot = action.NewValue
		stats.PlanActionsApplied++

	case types.ActionAddKeyword:
		keyword := action.NewValue
		if keyword == "" {
			keyword = action.Description
		}
		if keyword == "" {
			stats.PlanActionsSkipped++
			return
		}
		if a.addKeyword(profile, action.Target, keyword, stats) {
			stats.PlanActionsApplied++
		} else {
			stats.PlanActionsFailed++
		}

	case types.ActionEmphasize:
		if moveBullet(profile, action.Target, true) {
			stats.PlanActionsApplied++
		} else {
			stats.PlanActionsFailed++
		}

	case types.ActionDeemphasize:
		if moveBullet(profile, action.Target, false) {
			stats.PlanActionsApplied++
		} else {
			stats.PlanActionsFailed++
		}

	default:
		// remove_item, reorder and add_section would change document
		// structure, which this engine never does
		stats.PlanActionsSkipped++
	}
}

// resolveText maps a unit path to the string slot it addresses
func resolveText(profile *types.Profile, target types.UnitPath) (*string, bool) {
	switch target.Kind {
	case types.UnitSummary:
		return &profile.Summary, true
	case types.UnitExperienceBullet:
		if target.Index >= len(profile.Experiences) {
			return nil, false
		}
		bullets := profile.Experiences[target.Index].Bullets
		if target.BulletIndex >= len(bullets) {
			return nil, false
		}
		return &bullets[target.BulletIndex], true
	case types.UnitProjectBullet:
		if target.Index >= len(profile.Projects) {
			return nil, false
		}
		bullets := profile.Projects[target.Index].Bullets
		if target.BulletIndex >= len(bullets) {
			return nil, false
		}
		return &bullets[target.BulletIndex], true
	case types.UnitProjectDescription:
		if target.Index >= len(profile.Projects) {
			return nil, false
		}
		return &profile.Projects[target.Index].Description, true
	default:
		return nil, false
	}
}

// addKeyword injects a keyword where the plan pointed: the skills section, a
// specific technologies list, or the first experience as a fallback.
func (a *Applier) addKeyword(profile *types.Profile, target types.UnitPath, keyword string, stats *Stats) bool {
	switch target.Kind {
	case types.UnitSkills:
		if appendSkill(profile, keyword) {
			stats.SkillsAdded++
		}
		return true
	case types.UnitExperienceTechnologies:
		if target.Index >= len(profile.Experiences) {
			return false
		}
		if appendTechnology(&profile.Experiences[target.Index].Technologies, keyword) {
			stats.TechnologiesAdded++
		}
		return true
	default:
		for i := range profile.Experiences {
			if len(profile.Experiences[i].Bullets) > 0 {
				if appendTechnology(&profile.Experiences[i].Technologies, keyword) {
					stats.TechnologiesAdded++
				}
				return true
			}
		}
		return false
	}
}

// moveBullet shifts a bullet to the front or back of its list, preserving the
// relative order of the others
func moveBullet(profile *types.Profile, target types.UnitPath, toFront bool) bool {
	var bullets []string
	switch target.Kind {
	case types.UnitExperienceBullet:
		if target.Index >= len(profile.Experiences) {
			return false
		}
		bullets = profile.Experiences[target.Index].Bullets
	case types.UnitProjectBullet:
		if target.Index >= len(profile.Projects) {
			return false
		}
		bullets = profile.Projects[target.Index].Bullets
	default:
		return false
	}

	j := target.BulletIndex
	if j >= len(bullets) {
		return false
	}

	moved := bullets[j]
	if toFront {
		copy(bullets[1:j+1], bullets[:j])
		bullets[0] = moved
	} else {
		copy(bullets[j:], bullets[j+1:])
		bullets[len(bullets)-1] = moved
	}
	return true
}

// appendSkill adds a normalized skill unless it already exists
func appendSkill(profile *types.Profile, name string) bool {
	canonical, category := skills.Normalize(name)
	for _, skill := range profile.Skills {
		if strings.EqualFold(skill.Name, canonical) || strings.EqualFold(skill.NormalizedName, canonical) {
			return false
		}
	}
	profile.Skills = append(profile.Skills, types.Skill{
		Name:           canonical,
		NormalizedName: canonical,
		Category:       category,
	})
	return true
}

// appendTechnology adds a technology unless an equivalent entry exists
func appendTechnology(technologies *[]string, name string) bool {
	canonical, _ := skills.Normalize(name)
	for _, existing := range *technologies {
		if strings.EqualFold(existing, canonical) || strings.EqualFold(existing, name) {
			return false
		}
	}
	*technologies = append(*technologies, canonical)
	return true
}
