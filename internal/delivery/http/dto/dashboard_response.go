package dto

type DashboardResponse struct {
	OpenJobs           int            `json:"open_jobs"`
	ClosedJobs         int            `json:"closed_jobs"`
	ApplicantsByStatus map[string]int `json:"applicants_by_status"`
	ActiveApplicants   int            `json:"active_applicants"`
	AverageMatchScore  float64        `json:"average_match_score"`
	UpcomingInterviews int            `json:"upcoming_interviews"`
	PendingOffers      int            `json:"pending_offers"`
}
