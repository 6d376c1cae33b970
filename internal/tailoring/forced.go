package tailoring

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/prompts"
	"github.com/jonathan/profile-tailor/internal/types"
)

// rewriteTask addresses one text unit scheduled for rewriting. store writes
// the rewritten text back to wherever the unit lives.
type rewriteTask struct {
	current     string
	store       func(string)
	prompt      string
	retryPrompt string
}

// forcedPass rewrites every editable unit regardless of what the plan covered.
// The plan is advisory; this pass is what guarantees comprehensive coverage.
func (a *Applier) forcedPass(ctx context.Context, profile *types.Profile, jd *types.JobDescription, role, company string, stats *Stats) {
	role = effectiveRole(jd, role)
	company = effectiveCompany(jd, company)

	a.rewriteSummary(ctx, profile, jd, role, company, stats)
	a.rewriteBullets(ctx, profile, jd, role, stats)

	// A full backend outage must degrade to a no-op: when every rewrite
	// failed, the deterministic injections are skipped too so the caller
	// gets back a profile identical to the input.
	attempted := stats.UnitsRewritten + stats.UnitsUnchanged
	backendAlive := stats.UnitsRewritten > 0 || attempted == 0

	if jd != nil && backendAlive {
		appendMissingTechnologies(profile, jd, stats)
		appendMissingSkills(profile, jd, stats)
	}
}

func (a *Applier) rewriteSummary(ctx context.Context, profile *types.Profile, jd *types.JobDescription, role, company string, stats *Stats) {
	if profile.Summary == "" {
		return
	}

	var prompt string
	switch {
	case jd != nil:
		emphasis := jd.EmphasisAreas
		if len(emphasis) > maxSummaryEmphasisAreas {
			emphasis = emphasis[:maxSummaryEmphasisAreas]
		}
		prompt = prompts.Format(prompts.MustGet("tailoring.json", "rewrite-summary-jd"), map[string]string{
			"Summary":  profile.Summary,
			"Role":     role,
			"Skills":   strings.Join(jd.PrioritySkills(maxSummarySkills), ", "),
			"Emphasis": strings.Join(emphasis, ", "),
			"Company":  company,
		})
	case role != "":
		prompt = prompts.Format(prompts.MustGet("tailoring.json", "rewrite-summary-role"), map[string]string{
			"Summary": profile.Summary,
			"Role":    role,
			"Company": company,
		})
	default:
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	text, err := a.Client.GenerateContent(callCtx, prompt, llm.TierStandard, llm.SummaryOptions())
	cleaned := llm.CleanTextResponse(text)
	if err != nil || cleaned == "" || equalText(cleaned, profile.Summary) {
		stats.UnitsUnchanged++
		return
	}
	profile.Summary = cleaned
	stats.UnitsRewritten++
}

// rewriteBullets rewrites every bullet, project description, and other-section
// item description with bounded concurrency. Each task stores into a distinct
// unit, so only the stats need a lock.
func (a *Applier) rewriteBullets(ctx context.Context, profile *types.Profile, jd *types.JobDescription, role string, stats *Stats) {
	var tasks []rewriteTask

	for i := range profile.Experiences {
		exp := &profile.Experiences[i]
		if len(exp.Bullets) == 0 {
			continue
		}
		for j := range exp.Bullets {
			slot := &exp.Bullets[j]
			tasks = append(tasks, a.bulletTask(*slot, func(s string) { *slot = s }, jd, role))
		}
	}

	for i := range profile.Projects {
		proj := &profile.Projects[i]
		for j := range proj.Bullets {
			slot := &proj.Bullets[j]
			tasks = append(tasks, a.bulletTask(*slot, func(s string) { *slot = s }, jd, role))
		}
		if proj.Description != "" {
			tasks = append(tasks, a.descriptionTask(&proj.Description, jd, role))
		}
	}

	for i := range profile.OtherSections {
		for _, item := range profile.OtherSections[i].Items {
			desc, ok := item["description"].(string)
			if !ok || desc == "" {
				continue
			}
			tasks = append(tasks, a.bulletTask(desc, func(s string) { item["description"] = s }, jd, role))
		}
	}

	if len(tasks) == 0 {
		return
	}

	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i := range tasks {
		task := &tasks[i]
		g.Go(func() error {
			rewritten, changed := a.rewriteOne(gctx, task, task.current)
			mu.Lock()
			if changed {
				task.store(rewritten)
				stats.UnitsRewritten++
			} else {
				stats.UnitsUnchanged++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

func (a *Applier) bulletTask(text string, store func(string), jd *types.JobDescription, role string) rewriteTask {
	improve := prompts.Format(prompts.MustGet("tailoring.json", "improve-bullet"), map[string]string{
		"Bullet": text,
	})

	switch {
	case jd != nil:
		return rewriteTask{
			current: text,
			store:   store,
			prompt: prompts.Format(prompts.MustGet("tailoring.json", "rewrite-bullet-keywords"), map[string]string{
				"Keywords": strings.Join(RelevantKeywords(text, jd), ", "),
				"Bullet":   text,
			}),
			retryPrompt: improve,
		}
	case role != "":
		return rewriteTask{
			current: text,
			store:   store,
			prompt: prompts.Format(prompts.MustGet("tailoring.json", "rewrite-bullet-role"), map[string]string{
				"Role":     role,
				"Bullet":   text,
				"Keywords": strings.Join(RoleWords(role), ", "),
			}),
		}
	default:
		return rewriteTask{current: text, store: store, prompt: improve}
	}
}

func (a *Applier) descriptionTask(slot *string, jd *types.JobDescription, role string) rewriteTask {
	text := *slot
	store := func(s string) { *slot = s }
	switch {
	case jd != nil:
		return rewriteTask{
			current: text,
			store:   store,
			prompt: prompts.Format(prompts.MustGet("tailoring.json", "rewrite-project-description"), map[string]string{
				"Keywords":    strings.Join(RelevantKeywords(text, jd), ", "),
				"Description": text,
			}),
		}
	case role != "":
		return rewriteTask{
			current: text,
			store:   store,
			prompt: prompts.Format(prompts.MustGet("tailoring.json", "rewrite-bullet-role"), map[string]string{
				"Role":     role,
				"Bullet":   text,
				"Keywords": strings.Join(RoleWords(role), ", "),
			}),
		}
	default:
		return rewriteTask{
			current: text,
			store:   store,
			prompt: prompts.Format(prompts.MustGet("tailoring.json", "improve-bullet"), map[string]string{
				"Bullet": text,
			}),
		}
	}
}

// rewriteOne performs one bounded LLM call, retrying once with the generic
// improvement prompt when the model echoes the original text back. A failed
// call leaves the unit unchanged.
func (a *Applier) rewriteOne(ctx context.Context, task *rewriteTask, original string) (string, bool) {
	cleaned, ok := a.generate(ctx, task.prompt)
	if !ok {
		return "", false
	}
	if !equalText(cleaned, original) {
		return cleaned, true
	}

	if task.retryPrompt != "" {
		if retried, ok := a.generate(ctx, task.retryPrompt); ok && !equalText(retried, original) {
			return retried, true
		}
	}
	return "", false
}

func (a *Applier) generate(ctx context.Context, prompt string) (string, bool) {
	callCtx, cancel := context.WithTimeout(ctx, a.Timeout)
	defer cancel()

	text, err := a.Client.GenerateContent(callCtx, prompt, llm.TierStandard, llm.RewriteOptions())
	if err != nil {
		return "", false
	}
	cleaned := llm.CleanTextResponse(text)
	if cleaned == "" {
		return "", false
	}
	return cleaned, true
}

// appendMissingTechnologies adds the job's technical keywords that each
// experience and project technology list is missing, up to a small cap so
// lists stay honest. Matching is case-insensitive.
func appendMissingTechnologies(profile *types.Profile, jd *types.JobDescription, stats *Stats) {
	if len(jd.TechnicalKeywords) == 0 {
		return
	}

	for i := range profile.Experiences {
		exp := &profile.Experiences[i]
		if len(exp.Bullets) == 0 {
			continue
		}
		added := 0
		for _, kw := range jd.TechnicalKeywords {
			if added >= maxTechnologiesAddedPerExperience {
				break
			}
			if appendTechnology(&exp.Technologies, kw) {
				added++
				stats.TechnologiesAdded++
			}
		}
	}

	for i := range profile.Projects {
		proj := &profile.Projects[i]
		if len(proj.Bullets) == 0 && proj.Description == "" {
			continue
		}
		added := 0
		for _, kw := range jd.TechnicalKeywords {
			if added >= maxTechnologiesAddedPerProject {
				break
			}
			if appendTechnology(&proj.Technologies, kw) {
				added++
				stats.TechnologiesAdded++
			}
		}
	}
}

// appendMissingSkills adds the job's required and preferred skills that the
// skills section is missing, in the order the posting lists them.
func appendMissingSkills(profile *types.Profile, jd *types.JobDescription, stats *Stats) {
	added := 0
	for _, req := range append(append([]types.SkillRequirement{}, jd.RequiredSkills...), jd.PreferredSkills...) {
		if added >= maxSkillsAdded {
			break
		}
		if appendSkill(profile, req.Skill) {
			added++
			stats.SkillsAdded++
		}
	}
}

func effectiveRole(jd *types.JobDescription, role string) string {
	if role != "" {
		return role
	}
	if jd != nil {
		return jd.Title
	}
	return ""
}

func effectiveCompany(jd *types.JobDescription, company string) string {
	if company != "" {
		return company
	}
	if jd != nil {
		return jd.Company
	}
	return ""
}

func equalText(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
