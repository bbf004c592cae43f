package search

// Synonyms maps a normalized query to alternative phrasings used on
// student job postings.
var Synonyms = map[string][]string{
	"intern":       {"internship", "magang", "trainee"},
	"internship":   {"intern", "magang", "trainee"},
	"frontend":     {"front end", "frontend developer", "ui developer"},
	"backend":      {"back end", "server developer"},
	"fullstack":    {"full stack", "full-stack developer"},
	"swe":          {"software engineer", "software developer"},
	"data analyst": {"business intelligence", "reporting analyst"},
	"ux":           {"ux designer", "product designer", "ui designer"},
	"devops":       {"site reliability", "platform engineer"},
	"mobile dev":   {"android developer", "ios developer", "flutter developer"},
}

func GetSynonyms(query string) []string {
	if query == "" {
		return []string{}
	}
	if v, ok := Synonyms[query]; ok {
		out := make([]string, 0, len(v))
		out = append(out, v...)
		return out
	}
	return []string{}
}
