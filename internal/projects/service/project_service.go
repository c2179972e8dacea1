package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tongcompany/intake-portal/internal/notify"
	"github.com/tongcompany/intake-portal/internal/projects/domain"
	"github.com/tongcompany/intake-portal/internal/projects/repository"
	"github.com/tongcompany/intake-portal/internal/projects/steps"
	"github.com/tongcompany/intake-portal/internal/storage/nas"
)

// ProjectService implements the intake wizard flow on top of the
// project store. Notifications and NAS work are side effects: they
// run after the store commit and their failure never rolls it back.
type ProjectService struct {
	repo       *repository.ProjectRepository
	dispatcher *notify.Dispatcher
	mirror     nas.Mirror
	stagingDir string
}

// NewProjectService wires the service.
func NewProjectService(repo *repository.ProjectRepository, dispatcher *notify.Dispatcher, mirror nas.Mirror, stagingDir string) *ProjectService {
	return &ProjectService{
		repo:       repo,
		dispatcher: dispatcher,
		mirror:     mirror,
		stagingDir: stagingDir,
	}
}

// Create registers a new project and prepares its NAS folder tree.
// Mirror failure is logged and does not fail the creation.
func (s *ProjectService) Create(ctx context.Context, req domain.CreateProjectRequest) *domain.Project {
	p := s.repo.Create(req)

	if err := s.mirror.CreateProjectTree(ctx, ProjectFolderName(p), steps.Folders()); err != nil {
		log.Error().Err(err).Str("project_id", p.ID).Msg("failed to create NAS project tree")
	}

	log.Info().Str("project_id", p.ID).Str("company", p.CompanyName).Msg("project created")
	return p
}

// Get returns the project or domain.ErrNotFound.
func (s *ProjectService) Get(id string) (*domain.Project, error) {
	return s.repo.Get(id)
}

// List returns every project, newest first. An empty status keeps
// all; otherwise only matching projects are returned.
func (s *ProjectService) List(status string) []*domain.Project {
	all := s.repo.List()

	out := all[:0]
	for _, p := range all {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Update applies a shallow field merge.
func (s *ProjectService) Update(id string, req domain.UpdateProjectRequest) (*domain.Project, error) {
	return s.repo.Update(id, req)
}

// SubmitStep validates and stores one wizard step. On success the
// flag for the step is set, the payload replaced wholesale, the
// completion rate recomputed, and notifications dispatched
// fire-and-forget. Returns the updated project and the next
// incomplete step (0 when all done).
func (s *ProjectService) SubmitStep(ctx context.Context, id string, step int, raw []byte) (*domain.Project, int, error) {
	payload, err := steps.Decode(step, raw)
	if err != nil {
		return nil, 0, err
	}

	completedNow := false
	updated, err := s.repo.Apply(id, func(p *domain.Project) {
		wasComplete := p.CompletionRate == 100

		p.Progress.MarkDone(step)
		p.SetStepData(payload)
		p.CompletionRate = p.Progress.CompletionRate()

		if p.CompletionRate == 100 {
			p.Status = domain.StatusCompleted
			completedNow = !wasComplete
		}
	})
	if err != nil {
		return nil, 0, err
	}

	s.stageSnapshot(updated, step, payload)

	// Notifications must not block the response or undo the commit.
	go func() {
		ctx := context.Background()
		if err := s.dispatcher.StepCompleted(ctx, updated, step); err != nil {
			log.Error().Err(err).Str("project_id", updated.ID).Int("step", step).Msg("step completion notification failed")
		}
		if completedNow {
			if err := s.dispatcher.ProjectCompleted(ctx, updated); err != nil {
				log.Error().Err(err).Str("project_id", updated.ID).Msg("project completion notification failed")
			}
		}
	}()

	next, _ := updated.Progress.NextIncompleteStep()
	return updated, next, nil
}

// stageSnapshot writes the submitted step data as a JSON file into
// the staging tree and mirrors it to the NAS step folder. Both writes
// are best-effort.
func (s *ProjectService) stageSnapshot(p *domain.Project, step int, payload domain.StepPayload) {
	snapshot := struct {
		ProjectID string             `json:"projectId"`
		Step      int                `json:"step"`
		Data      domain.StepPayload `json:"data"`
		SavedAt   time.Time          `json:"savedAt"`
	}{
		ProjectID: p.ID,
		Step:      step,
		Data:      payload,
		SavedAt:   time.Now(),
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		log.Error().Err(err).Str("project_id", p.ID).Int("step", step).Msg("failed to encode step snapshot")
		return
	}

	folder := ProjectFolderName(p)
	stepFolder := steps.FolderName(step)
	fileName := fmt.Sprintf("step%d_data.json", step)

	dir := filepath.Join(s.stagingDir, folder, stepFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("failed to create staging directory")
	} else if err := os.WriteFile(filepath.Join(dir, fileName), data, 0o644); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("failed to write step snapshot")
	}

	nasPath := path.Join(folder, stepFolder, fileName)
	if err := s.mirror.Write(context.Background(), nasPath, data); err != nil {
		log.Error().Err(err).Str("path", nasPath).Msg("failed to mirror step snapshot")
	}
}

// ProjectFolderName builds the per-project folder used on disk and on
// the NAS: <company>_<creation date>_<short id>.
func ProjectFolderName(p *domain.Project) string {
	shortID := p.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}
	return fmt.Sprintf("%s_%s_%s", p.CompanyName, p.CreatedAt.Format("2006-01-02"), shortID)
}
