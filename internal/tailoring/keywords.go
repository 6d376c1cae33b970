package tailoring

import (
	"strings"

	"github.com/jonathan/profile-tailor/internal/types"
)

const (
	// maxKeywordCandidates bounds how many keywords are tested for relevance
	// against a single unit of text
	maxKeywordCandidates = 15
	// maxKeywordsPerUnit bounds how many keywords one rewrite prompt carries
	maxKeywordsPerUnit = 5
	// minKeywordWordLen and minTextWordLen filter short words out of the
	// loose word-overlap checks
	minKeywordWordLen = 3
	minTextWordLen    = 4
)

// RelevantKeywords selects up to five keywords related to the given text. A
// keyword matches when it appears as a substring, when one of its longer words
// appears in the text, or when a longer word of the text appears in the keyword.
// When nothing matches, the top priority keywords are returned instead so every
// rewrite still carries keyword pressure.
func RelevantKeywords(text string, jd *types.JobDescription) []string {
	lowerText := strings.ToLower(text)
	textWords := strings.Fields(lowerText)

	keywords := jd.AllKeywords()
	if len(keywords) > maxKeywordCandidates {
		keywords = keywords[:maxKeywordCandidates]
	}

	var relevant []string
	for _, keyword := range keywords {
		if len(relevant) >= maxKeywordsPerUnit {
			break
		}
		if keywordMatchesText(strings.ToLower(keyword), lowerText, textWords) {
			relevant = append(relevant, keyword)
		}
	}

	if len(relevant) == 0 {
		return FallbackKeywords(jd)
	}
	return relevant
}

// FallbackKeywords returns the top priority keywords for units with no direct
// keyword overlap.
func FallbackKeywords(jd *types.JobDescription) []string {
	keywords := jd.PrioritySkills(maxKeywordsPerUnit)
	if len(keywords) > 0 {
		return keywords
	}
	all := jd.AllKeywords()
	if len(all) > maxKeywordsPerUnit {
		all = all[:maxKeywordsPerUnit]
	}
	return all
}

// RoleWords extracts the significant words of a free-text role title, used as
// emphasis keywords when no job description is available.
func RoleWords(role string) []string {
	var words []string
	for _, word := range strings.Fields(role) {
		cleaned := strings.Trim(word, ",.()/")
		if len(cleaned) > minTextWordLen {
			words = append(words, cleaned)
		}
	}
	return words
}

func keywordMatchesText(keyword, text string, textWords []string) bool {
	if strings.Contains(text, keyword) {
		return true
	}
	for _, kwWord := range strings.Fields(keyword) {
		if len(kwWord) > minKeywordWordLen && strings.Contains(text, kwWord) {
			return true
		}
	}
	for _, textWord := range textWords {
		if len(textWord) > minTextWordLen && strings.Contains(keyword, textWord) {
			return true
		}
	}
	return false
}
