// Package handler provides the HTTP handlers of the candidates feature.
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"candidate_backend/internal/feature/candidates/domain/entity"
	"candidate_backend/internal/feature/candidates/transport/http/dto"
	"candidate_backend/internal/feature/candidates/usecase"
	"candidate_backend/internal/shared/pagination"
)

// CandidateUsecase defines the candidate operations the handler needs.
type CandidateUsecase interface {
	Create(ctx context.Context, in usecase.NewCandidate) (*entity.Candidate, error)
	Get(ctx context.Context, id string) (*entity.Candidate, error)
	List(ctx context.Context, filter entity.CandidateFilter, p pagination.Params) (pagination.Page[entity.Candidate], error)
	Delete(ctx context.Context, id string) error
	AddExperience(ctx context.Context, candidateID string, in usecase.NewExperience) (*entity.Experience, error)
}

// CandidateHandler handles the /candidates endpoints.
type CandidateHandler struct {
	candidates CandidateUsecase
}

func NewCandidateHandler(candidates CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{candidates: candidates}
}

// List handles GET /candidates.
func (h *CandidateHandler) List(c *gin.Context) {
	h.list(c, entity.CandidateFilter{})
}

// Search handles GET /candidates/all with exact-match name, email and phone filters.
func (h *CandidateHandler) Search(c *gin.Context) {
	var q dto.CandidateFilterQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondInvalid(c, "search candidates", err)
		return
	}
	h.list(c, q.Filter())
}

func (h *CandidateHandler) list(c *gin.Context, filter entity.CandidateFilter) {
	var p pagination.Params
	if err := c.ShouldBindQuery(&p); err != nil {
		respondInvalid(c, "list candidates", err)
		return
	}
	page, err := h.candidates.List(c.Request.Context(), filter, p)
	if err != nil {
		respondError(c, "list candidates", err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, dto.NewCandidateRes))
}

// Create handles POST /candidates.
//   - 400 on validation failure
//   - 409 when the email or phone number is taken
//   - 201 with the stored candidate
func (h *CandidateHandler) Create(c *gin.Context) {
	var req dto.CreateCandidateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "create candidate", err)
		return
	}

	created, err := h.candidates.Create(c.Request.Context(), usecase.NewCandidate{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(c, "create candidate", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewCandidateDetailRes(created))
}

// Get handles GET /candidates/:id.
func (h *CandidateHandler) Get(c *gin.Context) {
	found, err := h.candidates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "get candidate", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCandidateDetailRes(found))
}

// Delete handles DELETE /candidates/:id.
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "delete candidate", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "candidate deleted."})
}

// AddExperience handles POST /candidates/:id/experience.
func (h *CandidateHandler) AddExperience(c *gin.Context) {
	var req dto.ExperienceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "add experience", err)
		return
	}
	start, end, err := req.Dates()
	if err != nil {
		respondInvalid(c, "add experience", err)
		return
	}

	e, err := h.candidates.AddExperience(c.Request.Context(), c.Param("id"), usecase.NewExperience{
		JobTitle:  req.JobTitle,
		Company:   req.Company,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		respondError(c, "add experience", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewExperienceRes(*e))
}
