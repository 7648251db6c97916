// Package entity defines the domain entities for the candidates feature.
package entity

import "time"

// Candidate is a person tracked by recruiters.
type Candidate struct {
	// ID is a UUID assigned on creation.
	ID string `gorm:"primaryKey;size:36"`

	Name string `gorm:"size:255;not null"`

	// Email and Phone are each unique across candidates.
	Email string `gorm:"uniqueIndex;size:255;not null"`
	Phone string `gorm:"uniqueIndex;size:15;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Skills     []Skill      `gorm:"constraint:OnDelete:CASCADE;"`
	Experience []Experience `gorm:"constraint:OnDelete:CASCADE;"`
}

// Skill is a named skill of one candidate.
type Skill struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	CandidateID string `gorm:"size:36;index;not null"`
}

// Experience is one past or current position of a candidate.
// A nil EndDate means the position is ongoing.
type Experience struct {
	ID          uint      `gorm:"primaryKey"`
	JobTitle    string    `gorm:"size:255;not null"`
	Company     string    `gorm:"size:255;not null"`
	StartDate   time.Time `gorm:"not null"`
	EndDate     *time.Time
	CandidateID string `gorm:"size:36;index;not null"`
}

// TableName keeps the singular table name of the experience relation.
func (Experience) TableName() string { return "experience" }

// CandidateFilter selects candidates by exact field match. Empty fields match everything.
type CandidateFilter struct {
	Name  string
	Email string
	Phone string
}

// SkillPatch lists the fields of a Skill that may be updated.
// A nil field is left unchanged.
type SkillPatch struct {
	Name *string
}

// IsEmpty reports whether the patch changes nothing.
func (p SkillPatch) IsEmpty() bool {
	return p.Name == nil
}

// Apply copies the set fields of p onto s.
func (p SkillPatch) Apply(s *Skill) {
	if p.Name != nil {
		s.Name = *p.Name
	}
}
