package matching

// Breakdown backs the recruiter detail view. Matched and Missing hold
// normalized names in order of first appearance in the required list, each
// listed once; Score is computed exactly as Score does.
type Breakdown struct {
	Score   int
	Badge   Badge
	Matched []string
	Missing []string
}

func Explain(candidateSkills, requiredSkills []string) Breakdown {
	score := Score(candidateSkills, requiredSkills)
	out := Breakdown{
		Score:   score,
		Badge:   BadgeFor(score),
		Matched: make([]string, 0, len(requiredSkills)),
		Missing: make([]string, 0),
	}
	if len(requiredSkills) == 0 {
		return out
	}

	have := candidateSet(candidateSkills)
	seen := make(map[string]struct{}, len(requiredSkills))
	for _, r := range requiredSkills {
		n := Normalize(r)
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}

		if _, ok := have[n]; ok {
			out.Matched = append(out.Matched, n)
		} else {
			out.Missing = append(out.Missing, n)
		}
	}
	return out
}
