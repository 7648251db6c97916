package di

import (
	authentity "candidate_backend/internal/feature/auth/domain/entity"
	candidateentity "candidate_backend/internal/feature/candidates/domain/entity"
)

// Models lists every persisted entity, parents before children, for AutoMigrate.
func Models() []any {
	return []any{
		&authentity.User{},
		&candidateentity.Candidate{},
		&candidateentity.Skill{},
		&candidateentity.Experience{},
	}
}
