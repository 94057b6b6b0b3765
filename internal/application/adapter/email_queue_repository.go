package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
)

// EmailQueueRepository is the outbox the email worker drains.
type EmailQueueRepository interface {
	// Enqueue stores a new job. A second job for the same notification is rejected.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// Due returns up to limit pending jobs scheduled at or before now, oldest first.
	Due(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	Save(ctx context.Context, job *entity.EmailJob) error

	Get(ctx context.Context, id uuid.UUID) (*entity.EmailJob, error)

	// HasNotification reports whether a job already exists for the notification.
	HasNotification(ctx context.Context, notificationID uuid.UUID) (bool, error)

	// PurgeSent deletes sent jobs processed before cutoff and returns how many went.
	PurgeSent(ctx context.Context, cutoff time.Time) (int64, error)
}
