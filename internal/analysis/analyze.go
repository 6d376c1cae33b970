// Package analysis extracts a structured job description from raw job posting
// text using LLM extraction.
package analysis

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/profile-tailor/internal/llm"
	"github.com/jonathan/profile-tailor/internal/prompts"
	"github.com/jonathan/profile-tailor/internal/types"
)

// maxPostingChars bounds the posting text sent to the model
const maxPostingChars = 30000

// AnalyzeJobPosting extracts a structured JobDescription from cleaned job
// posting text. Importance scores are clamped and keywords are deduplicated
// before the result is returned.
func AnalyzeJobPosting(ctx context.Context, client llm.Client, postingText string) (*types.JobDescription, error) {
	if client == nil {
		return nil, &AnalysisError{Message: "LLM client is required"}
	}
	postingText = strings.TrimSpace(postingText)
	if postingText == "" {
		return nil, &AnalysisError{Message: "posting text is empty"}
	}
	if len(postingText) > maxPostingChars {
		postingText = postingText[:maxPostingChars]
	}

	template := prompts.MustGet("analysis.json", "analyze-job-posting")
	prompt := prompts.Format(template, map[string]string{
		"JobText": postingText,
	})

	// Structured extraction requires reasoning
	response, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced, nil)
	if err != nil {
		return nil, &AnalysisError{Message: "failed to generate analysis", Cause: err}
	}

	jd, err := parseResponse(response)
	if err != nil {
		return nil, err
	}

	postProcess(jd)
	jd.RawText = postingText
	return jd, nil
}

func parseResponse(response string) (*types.JobDescription, error) {
	cleaned := llm.CleanJSONBlock(response)

	var jd types.JobDescription
	if err := json.Unmarshal([]byte(cleaned), &jd); err != nil {
		return nil, &AnalysisError{Message: "failed to parse analysis JSON", Cause: err}
	}
	return &jd, nil
}

// postProcess normalizes extraction output: clamps scores, trims and
// deduplicates keywords, drops empty skill entries.
func postProcess(jd *types.JobDescription) {
	jd.Title = strings.TrimSpace(jd.Title)
	jd.Company = strings.TrimSpace(jd.Company)
	jd.Location = strings.TrimSpace(jd.Location)

	jd.RequiredSkills = cleanSkills(jd.RequiredSkills, true)
	jd.PreferredSkills = cleanSkills(jd.PreferredSkills, false)

	jd.ATSKeywords = dedupeKeywords(jd.ATSKeywords)
	jd.TechnicalKeywords = dedupeKeywords(jd.TechnicalKeywords)
	jd.SoftSkills = dedupeKeywords(jd.SoftSkills)

	jd.ClampScores()
}

func cleanSkills(skills []types.SkillRequirement, required bool) []types.SkillRequirement {
	out := make([]types.SkillRequirement, 0, len(skills))
	seen := make(map[string]bool)
	for _, s := range skills {
		s.Skill = strings.TrimSpace(s.Skill)
		if s.Skill == "" {
			continue
		}
		key := strings.ToLower(s.Skill)
		if seen[key] {
			continue
		}
		seen[key] = true
		s.IsRequired = required
		out = append(out, s)
	}
	return out
}

func dedupeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool)
	for _, k := range keywords {
		normalized := strings.ToLower(strings.TrimSpace(k))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		out = append(out, normalized)
	}
	return out
}
