package search

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	assert.Equal(t, "backend go intern", NormalizeQuery("  Backend/Go -- Intern!! "))
	assert.Equal(t, "c++ node.js c#", NormalizeQuery("C++, Node.js, C#"))
	assert.Equal(t, "", NormalizeQuery("   "))
}

func TestExpandQuery(t *testing.T) {
	v := ExpandQuery("intern")
	assert.Equal(t, "intern", v[0])
	assert.Contains(t, v, "internship")

	v = ExpandQuery("frontend jakarta")
	assert.Contains(t, v, "front end jakarta")
	assert.Contains(t, v, "ui developer jakarta")

	v = ExpandQuery("dataanalyst")
	assert.Contains(t, v, "data analyst")
	assert.Contains(t, v, "business intelligence")

	assert.LessOrEqual(t, len(ExpandQuery("intern intern intern")), maxVariants)
	assert.Empty(t, ExpandQuery(""))
}

func TestProcessQuery(t *testing.T) {
	qc := ProcessQuery("  SWE ")
	assert.Equal(t, "swe", qc.Normalized)
	assert.Contains(t, qc.Variants, "software engineer")

	empty := ProcessQuery("!!!")
	assert.Equal(t, "", empty.Normalized)
	assert.Empty(t, empty.Variants)

	assert.Equal(t, "backend", FallbackFirstWord("backend go intern"))
	assert.Equal(t, "", FallbackFirstWord(""))
}

func TestRankJobs(t *testing.T) {
	now := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	jobs := []Job{
		{OriginalIndex: 0, Title: "Accountant", CompanyName: "Ledger", CreatedAt: now.Add(-time.Hour)},
		{OriginalIndex: 1, Title: "Backend Intern", CompanyName: "Northwind", Skills: []string{"go"}, CreatedAt: now.Add(-40 * 24 * time.Hour)},
		{OriginalIndex: 2, Title: "Go Engineer", Skills: []string{"go", "sql"}, Description: strings.Repeat("x", 120), CreatedAt: now.Add(-2 * time.Hour)},
	}

	ranked := RankJobs(jobs, []string{"go"}, now)
	assert.Equal(t, 2, ranked[0].OriginalIndex)
	assert.Equal(t, 0, ranked[1].OriginalIndex)
	assert.Equal(t, 1, ranked[2].OriginalIndex)

	noQuery := RankJobs(jobs, nil, now)
	assert.Len(t, noQuery, 3)
	assert.Equal(t, 2, noQuery[0].OriginalIndex)
}

func TestComputeFreshness(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 5.0, ComputeFreshness(Job{CreatedAt: now.Add(time.Hour)}, now))
	assert.Equal(t, 3.0, ComputeFreshness(Job{CreatedAt: now.Add(-5 * 24 * time.Hour)}, now))
	assert.Equal(t, 0.0, ComputeFreshness(Job{}, now))
}

func TestComputeRelevance_Capped(t *testing.T) {
	j := Job{Title: "go go", Description: "go", CompanyName: "go", Skills: []string{"go"}}
	assert.Equal(t, 10.0, ComputeRelevance(j, []string{"go", "go", "go"}))
}
