package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/email/templates"
)

// cleanupEvery is the number of polls between purges of sent jobs.
const cleanupEvery = 720

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// RetainSent is how long sent jobs are kept. Zero disables cleanup.
	RetainSent time.Duration
}

func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		RetainSent:   30 * 24 * time.Hour,
	}
}

// Worker drains the email outbox on a fixed interval.
type Worker struct {
	queue    adapter.EmailQueueRepository
	sender   adapter.EmailSender
	renderer *templates.Renderer
	config   WorkerConfig
	polls    int
}

func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{queue: queue, sender: sender, renderer: renderer, config: config}
}

// Start polls until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started", "poll_interval", w.config.PollInterval, "batch_size", w.config.BatchSize)

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		w.tick(ctx)

		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	w.ProcessNow(ctx)

	if w.config.RetainSent > 0 && w.polls%cleanupEvery == 0 {
		w.purge(ctx)
	}
	w.polls++
}

// ProcessNow sends one batch of due jobs.
func (w *Worker) ProcessNow(ctx context.Context) {
	jobs, err := w.queue.Due(ctx, time.Now().UTC(), w.config.BatchSize)
	if err != nil {
		slog.Error("Failed to load due email jobs", "error", err)
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.deliver(ctx, job)
	}
}

func (w *Worker) deliver(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With("job_id", job.ID, "kind", job.Kind, "recipient", job.RecipientEmail)

	job.MarkProcessing()
	if err := w.queue.Save(ctx, job); err != nil {
		logger.Error("Failed to claim email job", "error", err)
		return
	}

	html, text, err := w.renderer.Render(string(job.Kind), job.Content)
	if err == nil {
		var providerID string
		providerID, err = w.sender.Send(ctx, adapter.OutgoingEmail{
			To:      job.RecipientEmail,
			Name:    job.Content.RecipientName,
			Subject: job.Subject(),
			HTML:    html,
			Text:    text,
		})
		if err == nil {
			job.MarkSent(providerID)
			if err := w.queue.Save(ctx, job); err != nil {
				logger.Error("Failed to record sent email", "error", err)
				return
			}
			logger.Info("Email sent", "provider_id", providerID)
			return
		}
	}

	job.MarkFailed(err, domainerror.IsPermanentDelivery(err))
	if saveErr := w.queue.Save(ctx, job); saveErr != nil {
		logger.Error("Failed to record email failure", "error", saveErr)
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("Email job failed", "attempts", job.Attempts, "error", err)
	} else {
		logger.Info("Email job rescheduled", "attempts", job.Attempts, "scheduled_at", job.ScheduledAt, "error", err)
	}
}

func (w *Worker) purge(ctx context.Context) {
	removed, err := w.queue.PurgeSent(ctx, time.Now().UTC().Add(-w.config.RetainSent))
	if err != nil {
		slog.Error("Failed to purge sent emails", "error", err)
		return
	}
	if removed > 0 {
		slog.Info("Purged sent emails", "removed", removed)
	}
}
