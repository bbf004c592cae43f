package user

import "strings"

const MaxProfileSkills = 50

// CleanSkills trims entries and drops blanks, keeping order and case. It
// reports false when more than max entries remain.
func CleanSkills(in []string, max int) ([]string, bool) {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	if max > 0 && len(out) > max {
		return out, false
	}
	return out, true
}
