package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"candidate_backend/internal/feature/candidates/domain/entity"
	"candidate_backend/internal/platform/queue"
)

const dateLayout = "2006-01-02"

var reportHeader = []string{"id", "name", "email", "skills", "experience"}

// CandidateSource reads the candidates a snapshot is made of.
type CandidateSource interface {
	ListAllWithRelations(ctx context.Context) ([]entity.Candidate, error)
}

// ArtifactStore persists report files. Write calls fill with a writer on a
// new artifact called name and returns the artifact's path once fill has
// succeeded. A failed fill leaves no artifact behind.
type ArtifactStore interface {
	Write(ctx context.Context, name string, fill func(w io.Writer) error) (string, error)
}

// ReportJob builds CSV snapshots of the candidate store.
type ReportJob struct {
	candidates CandidateSource
	store      ArtifactStore
}

func NewReportJob(candidates CandidateSource, store ArtifactStore) *ReportJob {
	return &ReportJob{candidates: candidates, store: store}
}

// GenerateCandidatesSnapshot writes every candidate as of now into a new
// artifact and returns its path. Each call produces a distinct artifact.
func (j *ReportJob) GenerateCandidatesSnapshot(ctx context.Context) (string, error) {
	candidates, err := j.candidates.ListAllWithRelations(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load candidates: %w", err)
	}

	name := fmt.Sprintf("candidates__%s.csv", uuid.NewString())
	path, err := j.store.Write(ctx, name, func(w io.Writer) error {
		return writeCSV(w, candidates)
	})
	if err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// Handle runs the snapshot for a dequeued job.
func (j *ReportJob) Handle(ctx context.Context, job queue.Job) error {
	path, err := j.GenerateCandidatesSnapshot(ctx)
	if err != nil {
		return err
	}
	slog.Info("report generated", "job_id", job.ID, "path", path)
	return nil
}

func writeCSV(w io.Writer, candidates []entity.Candidate) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return err
	}
	for _, c := range candidates {
		row := []string{c.ID, c.Name, c.Email, formatSkills(c.Skills), formatExperience(c.Experience)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// formatSkills renders skills as "[go, sql]".
func formatSkills(skills []entity.Skill) string {
	names := make([]string, len(skills))
	for i, s := range skills {
		names[i] = s.Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}

// formatExperience renders entries as "title @ company (start..end)",
// separated by "; ". An open entry ends in "present".
func formatExperience(entries []entity.Experience) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		end := "present"
		if e.EndDate != nil {
			end = e.EndDate.Format(dateLayout)
		}
		parts[i] = fmt.Sprintf("%s @ %s (%s..%s)", e.JobTitle, e.Company, e.StartDate.Format(dateLayout), end)
	}
	return strings.Join(parts, "; ")
}
