package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"candidate_backend/internal/feature/candidates/domain/entity"
	"candidate_backend/internal/feature/candidates/transport/http/dto"
	"candidate_backend/internal/feature/candidates/usecase"
	"candidate_backend/internal/shared/pagination"
)

// SkillUsecase defines the skill operations the handler needs.
type SkillUsecase interface {
	Create(ctx context.Context, candidateID, name string) (*entity.Skill, error)
	Get(ctx context.Context, id uint) (*entity.Skill, error)
	ListByCandidate(ctx context.Context, candidateID string, p pagination.Params) (pagination.Page[entity.Skill], error)
	Update(ctx context.Context, id uint, patch entity.SkillPatch) (*entity.Skill, error)
	Delete(ctx context.Context, id uint) error
}

// SkillHandler handles the /skills endpoints.
type SkillHandler struct {
	skills SkillUsecase
}

func NewSkillHandler(skills SkillUsecase) *SkillHandler {
	return &SkillHandler{skills: skills}
}

// skillID parses the :id path parameter. A non-numeric id cannot name a
// skill, so it is reported as not found.
func skillID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		respondError(c, "parse skill id", usecase.ErrSkillNotFound)
		return 0, false
	}
	return uint(id), true
}

// Create handles POST /skills. 404 when the candidate does not exist.
func (h *SkillHandler) Create(c *gin.Context) {
	var req dto.CreateSkillReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "create skill", err)
		return
	}
	s, err := h.skills.Create(c.Request.Context(), req.CandidateID, req.Name)
	if err != nil {
		respondError(c, "create skill", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSkillRes(*s))
}

// Get handles GET /skills/:id.
func (h *SkillHandler) Get(c *gin.Context) {
	id, ok := skillID(c)
	if !ok {
		return
	}
	s, err := h.skills.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get skill", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSkillRes(*s))
}

// ListByCandidate handles GET /skills/candidate/:candidate_id.
func (h *SkillHandler) ListByCandidate(c *gin.Context) {
	var p pagination.Params
	if err := c.ShouldBindQuery(&p); err != nil {
		respondInvalid(c, "list skills", err)
		return
	}
	page, err := h.skills.ListByCandidate(c.Request.Context(), c.Param("candidate_id"), p)
	if err != nil {
		respondError(c, "list skills", err)
		return
	}
	c.JSON(http.StatusOK, pagination.Map(page, dto.NewSkillRes))
}

// Update handles PUT /skills/:id.
func (h *SkillHandler) Update(c *gin.Context) {
	id, ok := skillID(c)
	if !ok {
		return
	}
	var req dto.UpdateSkillReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "update skill", err)
		return
	}
	s, err := h.skills.Update(c.Request.Context(), id, req.Patch())
	if err != nil {
		respondError(c, "update skill", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSkillRes(*s))
}

// Delete handles DELETE /skills/:id.
func (h *SkillHandler) Delete(c *gin.Context) {
	id, ok := skillID(c)
	if !ok {
		return
	}
	if err := h.skills.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "delete skill", err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "skill deleted."})
}
