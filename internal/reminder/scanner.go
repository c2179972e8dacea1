package reminder

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tongcompany/intake-portal/internal/notify"
	"github.com/tongcompany/intake-portal/internal/projects/domain"
	"github.com/tongcompany/intake-portal/internal/projects/repository"
)

// Result records the outcome of one reminder attempt.
type Result struct {
	ProjectID string `json:"projectId"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// Scanner sweeps the store for stale, incomplete, active projects and
// sends them reminder emails.
type Scanner struct {
	repo       *repository.ProjectRepository
	dispatcher *notify.Dispatcher
}

func NewScanner(repo *repository.ProjectRepository, dispatcher *notify.Dispatcher) *Scanner {
	return &Scanner{repo: repo, dispatcher: dispatcher}
}

// Scan sends a reminder to every project that is active, below 100%
// and untouched for at least staleDays. Individual failures are
// recorded and do not abort the sweep. Returns the notified project
// IDs and the full per-project results.
func (s *Scanner) Scan(ctx context.Context, now time.Time, staleDays int) ([]string, []Result) {
	var notified []string
	var results []Result

	for _, p := range s.repo.List() {
		if !p.IsStale(now, staleDays) {
			continue
		}

		if err := s.dispatcher.Reminder(ctx, p); err != nil {
			log.Error().Err(err).Str("project_id", p.ID).Msg("reminder failed")
			results = append(results, Result{ProjectID: p.ID, Status: "failed", Error: err.Error()})
			continue
		}

		notified = append(notified, p.ID)
		results = append(results, Result{ProjectID: p.ID, Status: "sent"})
	}

	log.Info().Int("sent", len(notified)).Int("total", len(results)).Msg("reminder scan finished")
	return notified, results
}

// RemindOne sends a reminder to a single project regardless of
// staleness. Completed projects are refused.
func (s *Scanner) RemindOne(ctx context.Context, projectID string) error {
	p, err := s.repo.Get(projectID)
	if err != nil {
		return err
	}
	if p.CompletionRate >= 100 {
		return domain.ErrAlreadyCompleted
	}

	return s.dispatcher.Reminder(ctx, p)
}
