// Package matching scores how well a candidate's skills cover a job's required skills.
package matching

import (
	"math"
	"strings"
)

const (
	// BaselineScore is returned when a job lists no required skills and is
	// added as a flat bonus to every other score.
	BaselineScore = 10

	MaxScore = 100
)

// Normalize is the only folding applied to skills before comparison.
func Normalize(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Distinct normalizes skills and drops blanks and repeats, keeping the order
// of first appearance.
func Distinct(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		n := Normalize(s)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// Score returns a percentage in [0, 100]. Every required entry is tested for
// presence in the candidate set, so duplicated required skills each count.
func Score(candidateSkills, requiredSkills []string) int {
	if len(requiredSkills) == 0 {
		return BaselineScore
	}

	have := candidateSet(candidateSkills)

	matched := 0
	for _, r := range requiredSkills {
		if _, ok := have[Normalize(r)]; ok {
			matched++
		}
	}

	return finalize(matched, len(requiredSkills))
}

// ScoreLists is Score for lists decoded from API payloads. A list that did
// not decode from a JSON array yields the baseline.
func ScoreLists(candidate, required SkillList) int {
	if !candidate.Valid() || !required.Valid() {
		return BaselineScore
	}
	return Score(candidate.Items, required.Items)
}

func candidateSet(skills []string) map[string]struct{} {
	out := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		out[Normalize(s)] = struct{}{}
	}
	return out
}

func finalize(matched, total int) int {
	if total <= 0 {
		return BaselineScore
	}
	raw := int(math.Round(float64(matched) / float64(total) * 100))
	score := raw + BaselineScore
	if score > MaxScore {
		score = MaxScore
	}
	if score < 0 {
		score = 0
	}
	return score
}
