package search

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Job struct {
	OriginalIndex int
	ID            uuid.UUID
	Title         string
	CompanyName   string
	Location      string
	Description   string
	Skills        []string
	CreatedAt     time.Time
}

type JobScore struct {
	JobID       uuid.UUID
	Relevance   float64
	Freshness   float64
	DataQuality float64
	FinalScore  float64
}

func ComputeRelevance(job Job, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := strings.ToLower(job.Title)
	desc := strings.ToLower(job.Description)
	company := strings.ToLower(job.CompanyName)
	skills := strings.ToLower(strings.Join(job.Skills, "|"))

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if title != "" && strings.Contains(title, v) {
			score += 3
		}
		if skills != "" && strings.Contains(skills, v) {
			score += 2
		}
		if desc != "" && strings.Contains(desc, v) {
			score += 1
		}
		if company != "" && strings.Contains(company, v) {
			score += 1
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

func ComputeFreshness(job Job, now time.Time) float64 {
	if job.CreatedAt.IsZero() {
		return 0
	}
	age := now.Sub(job.CreatedAt)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	}
	return 0
}

func ComputeDataQuality(job Job) float64 {
	score := 0.0
	if strings.TrimSpace(job.Title) != "" {
		score++
	}
	if strings.TrimSpace(job.CompanyName) != "" {
		score++
	}
	if strings.TrimSpace(job.Location) != "" {
		score++
	}
	if len(strings.TrimSpace(job.Description)) > 100 {
		score++
	}
	if len(job.Skills) > 0 {
		score++
	}
	return score
}

func ScoreJob(job Job, queryVariants []string, now time.Time) JobScore {
	rel := ComputeRelevance(job, queryVariants)
	fresh := ComputeFreshness(job, now)
	qual := ComputeDataQuality(job)

	return JobScore{
		JobID:       job.ID,
		Relevance:   rel,
		Freshness:   fresh,
		DataQuality: qual,
		FinalScore:  (rel * 2.0) + (fresh * 1.5) + (qual * 0.5),
	}
}

// RankJobs orders jobs by descending score; equal scores keep input order.
func RankJobs(jobs []Job, queryVariants []string, now time.Time) []Job {
	if len(jobs) == 0 {
		return jobs
	}

	type scored struct {
		idx   int
		score float64
	}
	items := make([]scored, len(jobs))
	for i := range jobs {
		items[i] = scored{idx: i, score: ScoreJob(jobs[i], queryVariants, now).FinalScore}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]Job, 0, len(jobs))
	for _, it := range items {
		out = append(out, jobs[it.idx])
	}
	return out
}
