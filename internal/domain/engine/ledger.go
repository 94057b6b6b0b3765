// Package engine holds the pure goal rules of Commitly: progress, streaks, the edit
// window, status transitions and accountability notifications.
//
// Nothing in this package performs I/O. Callers load state, invoke the rules and
// persist whatever comes back.
package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
	"github.com/commitly/backend/internal/domain/valueobject"
)

// CompletionSequence turns a goal's activities into the completion events they imply,
// ordered by (date, orderIndex). Dates are taken in loc. Activities that are not
// completed, or completed without a timestamp, are skipped.
func CompletionSequence(goalID, userID uuid.UUID, activities []*entity.Activity, loc *time.Location) []entity.CompletionEvent {
	type dated struct {
		event entity.CompletionEvent
		order int
	}

	items := make([]dated, 0, len(activities))
	for _, a := range activities {
		if a == nil || !a.IsCompleted || a.CompletedAt == nil {
			continue
		}
		activityID := a.ID
		items = append(items, dated{
			event: entity.CompletionEvent{
				GoalID:         goalID,
				UserID:         userID,
				ActivityID:     &activityID,
				CompletionDate: valueobject.DateOf(*a.CompletedAt, loc),
				Source:         entity.CompletionSourceActivity,
				CreatedAt:      a.CompletedAt.UTC(),
			},
			order: a.OrderIndex,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		di, dj := items[i].event.CompletionDate, items[j].event.CompletionDate
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return items[i].order < items[j].order
	})

	events := make([]entity.CompletionEvent, len(items))
	for i, it := range items {
		events[i] = it.event
	}
	return events
}

// CountCompleted returns how many activities are completed and how many there are.
func CountCompleted(activities []*entity.Activity) (completed, total int) {
	for _, a := range activities {
		if a == nil {
			continue
		}
		total++
		if a.IsCompleted {
			completed++
		}
	}
	return completed, total
}
