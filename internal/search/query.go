package search

import (
	"strings"
	"unicode"
)

const maxVariants = 10

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lowercases, keeps letters, digits and the symbols that
// appear in skill names (+ # .), and collapses whitespace.
func NormalizeQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '+', r == '#', r == '.':
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '-', r == '/', r == ',':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func ExpandQuery(normalized string) []string {
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return []string{}
	}

	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, ok := seen[s]; ok {
			return
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)

	// "dataanalyst" and "data analyst" should expand the same way.
	if len(words) >= 1 {
		if key := spacedKey(words[0]); key != "" {
			rest := strings.Join(words[1:], " ")
			add(strings.TrimSpace(key + " " + rest))
			for _, syn := range GetSynonyms(key) {
				add(strings.TrimSpace(syn + " " + rest))
			}
		}
	}

	// Replace a leading one- or two-word phrase that has synonyms.
	for n := 1; n <= 2 && n <= len(words); n++ {
		phrase := strings.Join(words[:n], " ")
		rest := strings.Join(words[n:], " ")
		for _, syn := range GetSynonyms(phrase) {
			add(strings.TrimSpace(syn + " " + rest))
		}
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func spacedKey(compact string) string {
	for k := range Synonyms {
		if strings.Contains(k, " ") && strings.ReplaceAll(k, " ", "") == compact {
			return k
		}
	}
	return ""
}

func ProcessQuery(input string) QueryContext {
	qc := QueryContext{Original: input, Variants: []string{}}
	qc.Normalized = NormalizeQuery(input)
	if qc.Normalized == "" {
		return qc
	}
	qc.Variants = ExpandQuery(qc.Normalized)
	return qc
}

func FallbackFirstWord(normalized string) string {
	words := strings.Fields(normalized)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}
