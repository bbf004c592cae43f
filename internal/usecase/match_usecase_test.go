package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"talentbridge/internal/domain/matching"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchJob(t *testing.T) {
	w := newWorld()
	uc := NewMatchUsecase(w.jobs, w.profiles, nil)

	m, err := uc.MatchJob(context.Background(), w.student, w.job.ID)
	require.NoError(t, err)
	assert.Equal(t, 77, m.Breakdown.Score)
	assert.Equal(t, []string{"go", "sql"}, m.Breakdown.Matched)
	assert.Equal(t, []string{"docker"}, m.Breakdown.Missing)

	_, err = uc.MatchJob(context.Background(), w.student, uuid.New())
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestCalculate(t *testing.T) {
	uc := NewMatchUsecase(nil, nil, nil)

	var body struct {
		Candidate matching.SkillList `json:"candidate_skills"`
		Required  matching.SkillList `json:"required_skills"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"candidate_skills":["React","node"],"required_skills":["react","Node","css"]}`), &body))
	b := uc.Calculate(body.Candidate, body.Required)
	assert.Equal(t, 77, b.Score)
	assert.Equal(t, matching.BadgeGood, b.Badge)
	assert.Equal(t, []string{"css"}, b.Missing)

	require.NoError(t, json.Unmarshal([]byte(`{"candidate_skills":"react","required_skills":["react"]}`), &body))
	b = uc.Calculate(body.Candidate, body.Required)
	assert.Equal(t, matching.BaselineScore, b.Score)
	assert.Empty(t, b.Matched)
}
