package dto

import (
	"time"

	"talentbridge/internal/domain/job"

	"github.com/google/uuid"
)

type JobListResponse struct {
	JobID          uuid.UUID `json:"job_id"`
	Title          string    `json:"title"`
	CompanyName    string    `json:"company_name"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employment_type"`
	Description    string    `json:"description"`
	Skills         []string  `json:"skills"`
	PostedDate     string    `json:"posted_date"`
}

type JobBoardResponse struct {
	Items  []JobListResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type JobResponse struct {
	ID             uuid.UUID  `json:"id"`
	EmployerID     uuid.UUID  `json:"employer_id"`
	Title          string     `json:"title"`
	CompanyName    string     `json:"company_name"`
	Location       string     `json:"location"`
	EmploymentType string     `json:"employment_type"`
	Description    string     `json:"description"`
	RequiredSkills []string   `json:"required_skills"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ClosedAt       *time.Time `json:"closed_at"`
}

func NewJobResponse(j job.Job) JobResponse {
	skills := j.RequiredSkills
	if skills == nil {
		skills = []string{}
	}
	return JobResponse{
		ID:             j.ID,
		EmployerID:     j.EmployerID,
		Title:          j.Title,
		CompanyName:    j.CompanyName,
		Location:       j.Location,
		EmploymentType: string(j.EmploymentType),
		Description:    j.Description,
		RequiredSkills: skills,
		Status:         string(j.Status),
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
		ClosedAt:       j.ClosedAt,
	}
}
