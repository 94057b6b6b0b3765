package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// Service turns notifications into queued email jobs.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{queue: queue, appBaseURL: strings.TrimRight(appBaseURL, "/")}
}

// QueueNotificationEmail queues the email copy of n. Kinds that are not emailed are
// skipped, and a notification is queued at most once.
func (s *Service) QueueNotificationEmail(ctx context.Context, n *entity.Notification, recipient *entity.User) error {
	if !n.IsEmailable() {
		slog.Debug("Notification kind is not emailed", "kind", n.Kind)
		return nil
	}

	queued, err := s.queue.HasNotification(ctx, n.ID)
	if err != nil {
		return domainerror.NewEmailError(domainerror.ErrCodeEmailQueueFailed, "failed to check email queue", err)
	}
	if queued {
		return nil
	}

	return s.queue.Enqueue(ctx, entity.NewEmailJob(n, recipient, s.contentFor(n)))
}

func (s *Service) contentFor(n *entity.Notification) entity.EmailContent {
	content := entity.EmailContent{
		GoalTitle:     metaString(n.Metadata, entity.MetaGoalTitle),
		OwnerName:     metaString(n.Metadata, entity.MetaOwnerName),
		RequesterName: metaString(n.Metadata, entity.MetaRequesterName),
		Streak:        metaInt(n.Metadata, entity.MetaStreak),
		Encouragement: metaString(n.Metadata, entity.MetaEncouragement),
		InboxURL:      s.appBaseURL + "/notifications",
	}
	if n.RelatedGoalID != nil {
		content.GoalURL = fmt.Sprintf("%s/goals/%s", s.appBaseURL, *n.RelatedGoalID)
	}
	return content
}

func metaString(meta map[string]interface{}, key string) string {
	s, _ := meta[key].(string)
	return s
}

// metaInt also accepts the float64 values that decoded JSON metadata carries.
func metaInt(meta map[string]interface{}, key string) int {
	switch v := meta[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

var _ adapter.EmailService = (*Service)(nil)
