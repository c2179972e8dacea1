package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/tongcompany/intake-portal/internal/projects/domain"
	"github.com/tongcompany/intake-portal/internal/projects/steps"
)

// Dispatcher composes and delivers intake notifications. Sends never
// affect the state change that triggered them: every recipient is an
// independent attempt, failures are logged, and each send is bounded
// by its own timeout so a slow relay cannot stall a request.
type Dispatcher struct {
	mailer     Mailer
	adminEmail string
	baseURL    string
	timeout    time.Duration
	limiter    *rate.Limiter
}

// NewDispatcher wires a dispatcher. sendsPerMinute caps the outgoing
// rate; zero or negative disables the cap.
func NewDispatcher(mailer Mailer, adminEmail, baseURL string, timeout time.Duration, sendsPerMinute int) *Dispatcher {
	limit := rate.Inf
	burst := 1
	if sendsPerMinute > 0 {
		limit = rate.Limit(float64(sendsPerMinute) / 60)
		burst = sendsPerMinute
	}
	return &Dispatcher{
		mailer:     mailer,
		adminEmail: adminEmail,
		baseURL:    baseURL,
		timeout:    timeout,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// StepCompleted notifies the project contact and the operator that a
// wizard step finished. The two sends are independent; the returned
// error aggregates failures for logging only.
func (d *Dispatcher) StepCompleted(ctx context.Context, p *domain.Project, step int) error {
	title := steps.Title(step)

	data := stepMailData{
		ManagerName:    p.ManagerName,
		CompanyName:    p.CompanyName,
		StepNumber:     step,
		StepTitle:      title,
		CompletionRate: p.CompletionRate,
		CompletedCount: p.Progress.CompletedCount(),
		ProjectID:      p.ID,
		Email:          p.Email,
		BaseURL:        d.baseURL,
	}

	clientBody, err := render(stepClientTmpl, data)
	if err != nil {
		return err
	}
	adminBody, err := render(stepAdminTmpl, data)
	if err != nil {
		return err
	}

	clientErr := d.send(ctx, Message{
		To:      p.Email,
		Subject: fmt.Sprintf("[통컴퍼니] %s 단계가 완료되었습니다", title),
		HTML:    clientBody,
	})
	adminErr := d.send(ctx, Message{
		To:      d.adminEmail,
		Subject: fmt.Sprintf("[시스템] %s - %s 단계 완료", p.CompanyName, title),
		HTML:    adminBody,
	})

	return errors.Join(clientErr, adminErr)
}

// ProjectCompleted notifies both parties that every step is done.
func (d *Dispatcher) ProjectCompleted(ctx context.Context, p *domain.Project) error {
	titles := make([]string, 0, domain.TotalSteps)
	for _, s := range steps.All {
		titles = append(titles, s.Title)
	}

	data := completionMailData{
		ManagerName: p.ManagerName,
		CompanyName: p.CompanyName,
		ProjectID:   p.ID,
		Email:       p.Email,
		Phone:       p.Phone,
		StepTitles:  titles,
		BaseURL:     d.baseURL,
	}

	clientBody, err := render(completionClientTmpl, data)
	if err != nil {
		return err
	}
	adminBody, err := render(completionAdminTmpl, data)
	if err != nil {
		return err
	}

	clientErr := d.send(ctx, Message{
		To:      p.Email,
		Subject: fmt.Sprintf("[통컴퍼니] %s 홈페이지 자료 수집이 완료되었습니다!", p.CompanyName),
		HTML:    clientBody,
	})
	adminErr := d.send(ctx, Message{
		To:      d.adminEmail,
		Subject: fmt.Sprintf("[프로젝트 완료] %s - 모든 자료 수집 완료", p.CompanyName),
		HTML:    adminBody,
	})

	return errors.Join(clientErr, adminErr)
}

// Reminder nudges the project contact about stale, incomplete steps.
func (d *Dispatcher) Reminder(ctx context.Context, p *domain.Project) error {
	data := reminderMailData{
		ManagerName:     p.ManagerName,
		CompanyName:     p.CompanyName,
		CompletionRate:  p.CompletionRate,
		ProjectID:       p.ID,
		IncompleteSteps: steps.IncompleteTitles(p.Progress),
		BaseURL:         d.baseURL,
	}

	body, err := render(reminderTmpl, data)
	if err != nil {
		return err
	}

	return d.send(ctx, Message{
		To:      p.Email,
		Subject: fmt.Sprintf("[리마인더] %s 홈페이지 자료 제출을 기다리고 있습니다", p.CompanyName),
		HTML:    body,
	})
}

func (d *Dispatcher) send(ctx context.Context, msg Message) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if err := d.limiter.Wait(ctx); err != nil {
		log.Error().Err(err).Str("to", msg.To).Msg("email rate limit wait aborted")
		return err
	}

	if err := d.mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("to", msg.To).Str("subject", msg.Subject).Msg("failed to send email")
		return err
	}

	log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("email sent")
	return nil
}
