package internal

import (
	"slices"
	"strings"
)

type suggestion struct {
	name     string
	distance int
}

// FindSimilarStrings returns up to limit candidates close to target, closest
// first and alphabetical within the same distance. Matching ignores case.
// A candidate qualifies when its edit distance is at most half the target
// length, and never less than MinSuggestionDistance.
func FindSimilarStrings(target string, candidates []string, limit int) []string {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}

	threshold := max(len(target)/2, MinSuggestionDistance)
	needle := []rune(strings.ToLower(target))

	var matches []suggestion
	for _, name := range candidates {
		if name == target {
			continue
		}
		if d := editDistance(needle, []rune(strings.ToLower(name))); d <= threshold {
			matches = append(matches, suggestion{name: name, distance: d})
		}
	}

	slices.SortFunc(matches, func(a, b suggestion) int {
		if a.distance != b.distance {
			return a.distance - b.distance
		}
		return strings.Compare(a.name, b.name)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.name
	}
	return names
}

// editDistance is the Levenshtein distance between a and b over runes,
// computed with a single rolling row.
func editDistance(a, b []rune) int {
	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		diag := row[0]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			above := row[j]
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			row[j] = min(above+1, row[j-1]+1, diag+cost)
			diag = above
		}
	}
	return row[len(b)]
}

// FormatSuggestions renders suggestions as a message suffix,
// e.g. ". Did you mean 'name', 'names' or 'named'?"
func FormatSuggestions(suggestions []string) string {
	if len(suggestions) == 0 {
		return StringValueEmpty
	}

	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = "'" + s + "'"
	}

	last := len(quoted) - 1
	list := quoted[last]
	if last > 0 {
		list = strings.Join(quoted[:last], SuggestionSep) + SuggestionLastSep + list
	}
	return SuggestionPrefix + list + SuggestionSuffix
}

// Suggest is FindSimilarStrings followed by FormatSuggestions
func Suggest(target string, candidates []string) string {
	return FormatSuggestions(FindSimilarStrings(target, candidates, MaxSuggestions))
}
