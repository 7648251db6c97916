// Package dto defines the request and response bodies of the candidates endpoints.
package dto

import (
	"time"

	"candidate_backend/internal/feature/candidates/domain/entity"
)

// DateLayout is the wire format of experience dates.
const DateLayout = time.DateOnly

// CreateCandidateReq is the body of POST /candidates.
type CreateCandidateReq struct {
	Name  string `json:"name" binding:"required,max=255"`
	Email string `json:"email" binding:"required,email,max=255"`
	Phone string `json:"phone" binding:"required,max=15,phone"`
}

// CandidateFilterQuery is the query string of GET /candidates/all.
type CandidateFilterQuery struct {
	Name  string `form:"name"`
	Email string `form:"email"`
	Phone string `form:"phone"`
}

// Filter converts the query into a domain filter.
func (q CandidateFilterQuery) Filter() entity.CandidateFilter {
	return entity.CandidateFilter{Name: q.Name, Email: q.Email, Phone: q.Phone}
}

// CandidateRes is a candidate without its relations.
type CandidateRes struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CandidateDetailRes is a candidate with its skills and experience.
type CandidateDetailRes struct {
	CandidateRes
	Skills     []SkillRes      `json:"skills"`
	Experience []ExperienceRes `json:"experience"`
}

// NewCandidateRes projects a Candidate without relations.
func NewCandidateRes(c entity.Candidate) CandidateRes {
	return CandidateRes{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewCandidateDetailRes projects a Candidate with its loaded relations.
func NewCandidateDetailRes(c *entity.Candidate) CandidateDetailRes {
	out := CandidateDetailRes{
		CandidateRes: NewCandidateRes(*c),
		Skills:       make([]SkillRes, 0, len(c.Skills)),
		Experience:   make([]ExperienceRes, 0, len(c.Experience)),
	}
	for _, s := range c.Skills {
		out.Skills = append(out.Skills, NewSkillRes(s))
	}
	for _, e := range c.Experience {
		out.Experience = append(out.Experience, NewExperienceRes(e))
	}
	return out
}

// ExperienceReq is the body of POST /candidates/:id/experience.
type ExperienceReq struct {
	JobTitle  string  `json:"job_title" binding:"required,max=255"`
	Company   string  `json:"company" binding:"required,max=255"`
	StartDate string  `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
}

// Dates parses the start and optional end date. Binding has already
// checked the layout, so an error here means the request skipped binding.
func (r ExperienceReq) Dates() (time.Time, *time.Time, error) {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	if r.EndDate == nil {
		return start, nil, nil
	}
	end, err := time.Parse(DateLayout, *r.EndDate)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}

// ExperienceRes is an experience entry with dates in DateLayout.
type ExperienceRes struct {
	ID          uint    `json:"id"`
	JobTitle    string  `json:"job_title"`
	Company     string  `json:"company"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	CandidateID string  `json:"candidate_id"`
}

func NewExperienceRes(e entity.Experience) ExperienceRes {
	out := ExperienceRes{
		ID:          e.ID,
		JobTitle:    e.JobTitle,
		Company:     e.Company,
		StartDate:   e.StartDate.Format(DateLayout),
		CandidateID: e.CandidateID,
	}
	if e.EndDate != nil {
		end := e.EndDate.Format(DateLayout)
		out.EndDate = &end
	}
	return out
}

// MessageRes is a plain acknowledgement.
type MessageRes struct {
	Message string `json:"message"`
}
