package internal

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// FindSimilarStrings finds strings from candidates that are similar to target.
// Returns up to maxSuggestions suggestions, closest first, ties in candidate order.
func FindSimilarStrings(target string, candidates []string, maxSuggestions int) []string {
	if len(candidates) == 0 || maxSuggestions <= 0 {
		return nil
	}

	// Maximum distance to consider a candidate as similar
	maxDistance := len(target) / 2
	if maxDistance < 2 {
		maxDistance = 2
	}

	type scored struct {
		str      string
		distance int
	}

	var similar []scored
	targetLower := strings.ToLower(target)
	seen := make(map[string]struct{}, len(candidates))

	for _, candidate := range candidates {
		if _, dup := seen[candidate]; dup || candidate == target {
			continue
		}
		seen[candidate] = struct{}{}

		dist := levenshtein.ComputeDistance(targetLower, strings.ToLower(candidate))
		if dist <= maxDistance {
			similar = append(similar, scored{str: candidate, distance: dist})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].distance < similar[j].distance
	})

	result := make([]string, 0, maxSuggestions)
	for i := 0; i < len(similar) && i < maxSuggestions; i++ {
		result = append(result, similar[i].str)
	}
	return result
}

// FormatSuggestions formats a list of suggestions as a human-readable string.
// Example output: ". Did you mean 'name', 'names' or 'named'?"
func FormatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}

	if len(suggestions) == 1 {
		return SuggestPrefix + "'" + suggestions[0] + "'?"
	}

	var sb strings.Builder
	sb.WriteString(SuggestPrefix)

	for i, s := range suggestions {
		if i > 0 {
			if i == len(suggestions)-1 {
				sb.WriteString(SuggestLastSep)
			} else {
				sb.WriteString(FmtCommaSep)
			}
		}
		sb.WriteByte('\'')
		sb.WriteString(s)
		sb.WriteByte('\'')
	}

	sb.WriteByte('?')
	return sb.String()
}
