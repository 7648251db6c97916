package usecase

import "errors"

var (
	// ErrCandidateNotFound is returned when no candidate has the requested id.
	ErrCandidateNotFound = errors.New("candidate not found")
	// ErrSkillNotFound is returned when no skill has the requested id.
	ErrSkillNotFound = errors.New("skill not found")
	// ErrCandidateEmailInUse is returned when another candidate has the email.
	ErrCandidateEmailInUse = errors.New("email already in use")
	// ErrCandidatePhoneInUse is returned when another candidate has the phone number.
	ErrCandidatePhoneInUse = errors.New("phone number already in use")
	// ErrCandidateConflict is returned by the store when a unique constraint
	// fails on insert, e.g. two concurrent creates with the same email.
	ErrCandidateConflict = errors.New("candidate already exists")
	// ErrInvalidDateRange is returned when an experience ends before it starts.
	ErrInvalidDateRange = errors.New("end date is before start date")
)
