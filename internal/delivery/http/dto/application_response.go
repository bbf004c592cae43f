package dto

import (
	"time"

	"talentbridge/internal/domain/application"
	"talentbridge/internal/domain/interview"
	"talentbridge/internal/domain/note"
	"talentbridge/internal/domain/offer"

	"github.com/google/uuid"
)

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"cover_letter"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ApplicantResponse struct {
	ApplicationID  uuid.UUID `json:"application_id"`
	CandidateID    uuid.UUID `json:"candidate_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	Status         string    `json:"status"`
	MatchScore     int       `json:"match_score"`
	Badge          string    `json:"badge"`
	AppliedAt      time.Time `json:"applied_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TrackerCardResponse struct {
	ApplicationID   uuid.UUID  `json:"application_id"`
	JobID           uuid.UUID  `json:"job_id"`
	JobTitle        string     `json:"job_title"`
	CompanyName     string     `json:"company_name"`
	JobOpen         bool       `json:"job_open"`
	Status          string     `json:"status"`
	MatchScore      int        `json:"match_score"`
	Badge           string     `json:"badge"`
	NextInterviewAt *time.Time `json:"next_interview_at"`
	AppliedAt       time.Time  `json:"applied_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ApplicationDetailResponse struct {
	Application    ApplicationResponse `json:"application"`
	Job            JobResponse         `json:"job"`
	CandidateName  string              `json:"candidate_name"`
	CandidateEmail string              `json:"candidate_email"`
	Match          MatchResponse       `json:"match"`
	Interviews     []InterviewResponse `json:"interviews"`
	Offers         []OfferResponse     `json:"offers"`
	Notes          []NoteResponse      `json:"notes,omitempty"`
}

type InterviewResponse struct {
	ID              uuid.UUID `json:"id"`
	ApplicationID   uuid.UUID `json:"application_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	EndsAt          time.Time `json:"ends_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Mode            string    `json:"mode"`
	Location        string    `json:"location"`
	Status          string    `json:"status"`
}

type UpcomingInterviewResponse struct {
	InterviewResponse
	JobID         uuid.UUID `json:"job_id"`
	JobTitle      string    `json:"job_title"`
	CompanyName   string    `json:"company_name"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
}

type OfferResponse struct {
	ID            uuid.UUID  `json:"id"`
	ApplicationID uuid.UUID  `json:"application_id"`
	SalaryAmount  int64      `json:"salary_amount"`
	Currency      string     `json:"currency"`
	StartDate     *string    `json:"start_date"`
	ExpiresAt     time.Time  `json:"expires_at"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	RespondedAt   *time.Time `json:"responded_at"`
}

type NoteResponse struct {
	ID         uuid.UUID `json:"id"`
	AuthorID   uuid.UUID `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		CandidateID: a.CandidateID,
		Status:      string(a.Status),
		CoverLetter: a.CoverLetter,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func NewInterviewResponse(iv interview.Interview) InterviewResponse {
	return InterviewResponse{
		ID:              iv.ID,
		ApplicationID:   iv.ApplicationID,
		ScheduledAt:     iv.ScheduledAt,
		EndsAt:          iv.EndsAt(),
		DurationMinutes: iv.DurationMinutes,
		Mode:            string(iv.Mode),
		Location:        iv.Location,
		Status:          string(iv.Status),
	}
}

func NewInterviewList(items []interview.Interview) []InterviewResponse {
	out := make([]InterviewResponse, 0, len(items))
	for _, iv := range items {
		out = append(out, NewInterviewResponse(iv))
	}
	return out
}

// DateLayout is the wire format of calendar dates such as an offer start date.
const DateLayout = "2006-01-02"

func NewOfferResponse(o offer.Offer) OfferResponse {
	var start *string
	if o.StartDate != nil {
		s := o.StartDate.Format(DateLayout)
		start = &s
	}
	return OfferResponse{
		ID:            o.ID,
		ApplicationID: o.ApplicationID,
		SalaryAmount:  o.SalaryAmount,
		Currency:      o.Currency,
		StartDate:     start,
		ExpiresAt:     o.ExpiresAt,
		Notes:         o.Notes,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		RespondedAt:   o.RespondedAt,
	}
}

func NewOfferList(items []offer.Offer) []OfferResponse {
	out := make([]OfferResponse, 0, len(items))
	for _, o := range items {
		out = append(out, NewOfferResponse(o))
	}
	return out
}

func NewNoteResponse(n note.Note) NoteResponse {
	return NoteResponse{ID: n.ID, AuthorID: n.AuthorID, AuthorName: n.AuthorName, Body: n.Body, CreatedAt: n.CreatedAt}
}

func NewNoteList(items []note.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(items))
	for _, n := range items {
		out = append(out, NewNoteResponse(n))
	}
	return out
}
