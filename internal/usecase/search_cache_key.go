package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type jobSearchCacheKeyInput struct {
	Query          string `json:"q"`
	Location       string `json:"location"`
	Skill          string `json:"skill"`
	EmploymentType string `json:"employment_type"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}

func normalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// JobsSearchCacheKey expects params with limit and offset already defaulted.
// gen is the board generation; pages from older generations are unreachable.
func JobsSearchCacheKey(params JobListParams, gen string) string {
	in := jobSearchCacheKeyInput{
		Query:          normalizeSearchValue(params.Query),
		Location:       normalizeSearchValue(params.Location),
		Skill:          normalizeSearchValue(params.Skill),
		EmploymentType: normalizeSearchValue(params.EmploymentType),
		Limit:          params.Limit,
		Offset:         params.Offset,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	h := hex.EncodeToString(sum[:])
	if gen != "" {
		h = gen + ":" + h
	}
	return jobCacheNamespace + ":search:" + h
}

func JobsSearchLockKey(searchKey string) string {
	searchKey = strings.TrimSpace(searchKey)
	prefix := jobCacheNamespace + ":search:"
	if strings.HasPrefix(searchKey, prefix) {
		return jobCacheNamespace + ":lock:" + strings.TrimPrefix(searchKey, prefix)
	}
	return jobCacheNamespace + ":lock:" + searchKey
}

func SkillSuggestCacheKey(prefix string) string {
	return skillCacheNamespace + ":suggest:" + normalizeSearchValue(prefix)
}
