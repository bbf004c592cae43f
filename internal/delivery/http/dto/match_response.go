package dto

import (
	"talentbridge/internal/domain/matching"

	"github.com/google/uuid"
)

type MatchResponse struct {
	MatchScore    int      `json:"match_score"`
	Badge         string   `json:"badge"`
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
}

type JobMatchResponse struct {
	JobID    uuid.UUID `json:"job_id"`
	JobTitle string    `json:"job_title"`
	MatchResponse
}

func NewMatchResponse(b matching.Breakdown) MatchResponse {
	matched, missing := b.Matched, b.Missing
	if matched == nil {
		matched = []string{}
	}
	if missing == nil {
		missing = []string{}
	}
	return MatchResponse{MatchScore: b.Score, Badge: string(b.Badge), MatchedSkills: matched, MissingSkills: missing}
}
