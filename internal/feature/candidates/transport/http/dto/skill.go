package dto

import "candidate_backend/internal/feature/candidates/domain/entity"

// CreateSkillReq is the body of POST /skills.
type CreateSkillReq struct {
	Name        string `json:"name" binding:"required,max=255"`
	CandidateID string `json:"candidate_id" binding:"required"`
}

// UpdateSkillReq is the body of PUT /skills/:id. Absent fields are left unchanged.
type UpdateSkillReq struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=255"`
}

// Patch converts the request into a domain patch.
func (r UpdateSkillReq) Patch() entity.SkillPatch {
	return entity.SkillPatch{Name: r.Name}
}

type SkillRes struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	CandidateID string `json:"candidate_id"`
}

func NewSkillRes(s entity.Skill) SkillRes {
	return SkillRes{ID: s.ID, Name: s.Name, CandidateID: s.CandidateID}
}
