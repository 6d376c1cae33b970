// Package skills provides canonicalization of free-text technology names to a
// standard vocabulary with coarse categories.
package skills

import (
	"strings"
	"unicode"

	"github.com/jonathan/profile-tailor/internal/types"
)

// fuzzyThreshold is the minimum similarity ratio for a fuzzy synonym match
const fuzzyThreshold = 0.8

// synonym maps one free-text variant to its canonical name. Variants are stored in
// a slice so fuzzy-match ties resolve to the first-encountered key.
type synonym struct {
	variant   string
	canonical string
}

// Normalize canonicalizes a technology name and derives its category.
// Lookup order: exact case-insensitive match, fuzzy similarity match (threshold
// 0.8), then a title-case fallback for all-lowercase input. Every input produces
// an output; there is no failure mode.
func Normalize(name string) (string, types.SkillCategory) {
	cleaned := strings.TrimSpace(name)
	if cleaned == "" {
		return cleaned, ""
	}

	lower := strings.ToLower(cleaned)
	if canonical, ok := exactLookup[lower]; ok {
		return canonical, categoryOf(canonical)
	}

	if match := fuzzyMatch(lower); match != "" {
		canonical := exactLookup[match]
		return canonical, categoryOf(canonical)
	}

	normalized := cleaned
	if isAllLower(cleaned) {
		normalized = titleCase(cleaned)
	}
	return normalized, categoryOf(normalized)
}

// NormalizeProfileSkills fills NormalizedName and Category for every skill in the
// profile, overriding any best-effort category guess from upstream extraction.
func NormalizeProfileSkills(profile *types.Profile) {
	for i := range profile.Skills {
		canonical, category := Normalize(profile.Skills[i].Name)
		profile.Skills[i].NormalizedName = canonical
		if category != "" {
			profile.Skills[i].Category = category
		}
	}
}

// fuzzyMatch returns the best-scoring variant at or above the threshold, or "".
// Ties are broken by table order.
func fuzzyMatch(name string) string {
	best := ""
	bestScore := 0.0
	for _, entry := range synonyms {
		score := similarity(name, entry.variant)
		if score >= fuzzyThreshold && score > bestScore {
			bestScore = score
			best = entry.variant
		}
	}
	return best
}

// similarity computes a normalized edit-distance ratio in [0,1]
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(longest)
}

// levenshtein computes the edit distance between two strings
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func categoryOf(canonical string) types.SkillCategory {
	if category, ok := categories[canonical]; ok {
		return category
	}
	return ""
}

func isAllLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
