package match

import "sort"

// MinSuggestScore is the similarity a candidate needs to be suggested.
const MinSuggestScore = 0.5

// Candidate is a known spelling scored against an unknown input.
type Candidate struct {
	Value string
	Score float64
}

// CandidateList is sorted by descending score, then by value.
type CandidateList []Candidate

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Value < c[j].Value
}

// Rank scores every known value against input after normalizing both.
// Exact matches are excluded: there is nothing to suggest for them.
func Rank(input string, known []string) CandidateList {
	norm := Normalize(input)

	var out CandidateList

	for _, k := range known {
		if k == input {
			continue
		}

		out = append(out, Candidate{Value: k, Score: Similarity(norm, Normalize(k))})
	}

	sort.Sort(out)

	return out
}

// Suggest returns up to limit known values close enough to input to be a
// likely misspelling. An empty input yields no suggestions.
func Suggest(input string, known []string, limit int) []string {
	if input == "" || limit <= 0 {
		return nil
	}

	var out []string

	for _, c := range Rank(input, known) {
		if c.Score < MinSuggestScore || len(out) == limit {
			break
		}

		out = append(out, c.Value)
	}

	return out
}
