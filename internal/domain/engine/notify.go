package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
)

// StreakMilestones are the current-streak lengths that trigger a streak_milestone notification.
var StreakMilestones = []int{3, 7, 14, 30, 50, 100, 200, 365}

// PartnerLookup resolves a partner's user record during fan-out.
type PartnerLookup func(partnerID uuid.UUID) (*entity.User, error)

// OnGoalCompleted emits one partner_update notification per accepted partner covering the goal.
//
// It is edge-triggered: notifications are produced only when before has no completion time
// and after has one. A partner whose lookup fails is skipped; the failure is logged and
// returned as a *PartnerLookupError alongside the notifications for everyone else.
func OnGoalCompleted(before, after *entity.Goal, owner *entity.User, partnerships []*entity.Partnership, lookup PartnerLookup) ([]*entity.Notification, []error) {
	if after == nil || after.CompletedAt == nil {
		return nil, nil
	}
	if before != nil && before.CompletedAt != nil {
		return nil, nil
	}

	ownerName := displayName(owner)
	return fanOut(after, partnerships, lookup, func(partner *entity.User) *entity.Notification {
		n := entity.NewNotification(
			partner.ID,
			entity.NotificationPartnerUpdate,
			fmt.Sprintf("%s completed a goal", ownerName),
			fmt.Sprintf("%s just completed %q. Send them some encouragement!", ownerName, after.Title),
		)
		n.WithGoal(after.ID).WithUser(after.OwnerID)
		n.Metadata[entity.MetaOwnerName] = ownerName
		n.Metadata[entity.MetaGoalTitle] = after.Title
		return n
	})
}

// MilestoneReached returns the milestone hit by moving from before to after, if any.
func MilestoneReached(before, after entity.Streak) (int, bool) {
	if after.CurrentStreak == before.CurrentStreak {
		return 0, false
	}
	for _, m := range StreakMilestones {
		if after.CurrentStreak == m {
			return m, true
		}
	}
	return 0, false
}

// OnStreakUpdated emits streak_milestone notifications when the update crosses a milestone:
// one for the owner and one per accepted partner covering the goal.
func OnStreakUpdated(before, after entity.Streak, goal *entity.Goal, owner *entity.User, partnerships []*entity.Partnership, lookup PartnerLookup) ([]*entity.Notification, []error) {
	milestone, ok := MilestoneReached(before, after)
	if !ok || goal == nil || owner == nil {
		return nil, nil
	}

	ownerName := displayName(owner)
	notifications := []*entity.Notification{
		milestoneNotification(owner.ID, goal, ownerName, milestone,
			fmt.Sprintf("%d-day streak!", milestone),
			fmt.Sprintf("You have completed %q %d days in a row. Keep it going!", goal.Title, milestone)),
	}

	partnerNotifications, errs := fanOut(goal, partnerships, lookup, func(partner *entity.User) *entity.Notification {
		return milestoneNotification(partner.ID, goal, ownerName, milestone,
			fmt.Sprintf("%s hit a %d-day streak", ownerName, milestone),
			fmt.Sprintf("%s has completed %q %d days in a row.", ownerName, goal.Title, milestone))
	})

	return append(notifications, partnerNotifications...), errs
}

// OnPartnershipRequested returns the accountability_request notification for the invited partner.
func OnPartnershipRequested(p *entity.Partnership, requester *entity.User, goal *entity.Goal) *entity.Notification {
	requesterName := displayName(requester)

	message := fmt.Sprintf("%s asked you to be their accountability partner.", requesterName)
	if goal != nil {
		message = fmt.Sprintf("%s asked you to be their accountability partner for %q.", requesterName, goal.Title)
	}

	n := entity.NewNotification(
		p.PartnerID,
		entity.NotificationAccountabilityRequest,
		"New accountability request",
		message,
	)
	n.WithUser(p.RequesterID)
	n.Metadata[entity.MetaRequesterName] = requesterName
	if goal != nil {
		n.WithGoal(goal.ID)
		n.Metadata[entity.MetaGoalTitle] = goal.Title
	}
	return n
}

// fanOut builds one notification per distinct accepted partner covering goal.
func fanOut(goal *entity.Goal, partnerships []*entity.Partnership, lookup PartnerLookup, build func(partner *entity.User) *entity.Notification) ([]*entity.Notification, []error) {
	var (
		notifications []*entity.Notification
		errs          []error
	)
	seen := make(map[uuid.UUID]bool)

	for _, p := range partnerships {
		if p == nil || !p.IsAccepted() || !p.Covers(goal) || seen[p.PartnerID] {
			continue
		}
		seen[p.PartnerID] = true

		partner, err := lookupPartner(lookup, p.PartnerID)
		if err != nil {
			lookupErr := &domainerror.PartnerLookupError{
				PartnershipID: p.ID,
				PartnerID:     p.PartnerID,
				Err:           err,
			}
			slog.Warn("Skipping partner notification",
				"goal_id", goal.ID,
				"partnership_id", p.ID,
				"partner_id", p.PartnerID,
				"error", err,
			)
			errs = append(errs, lookupErr)
			continue
		}

		notifications = append(notifications, build(partner))
	}

	return notifications, errs
}

func lookupPartner(lookup PartnerLookup, partnerID uuid.UUID) (*entity.User, error) {
	if lookup == nil {
		return &entity.User{ID: partnerID}, nil
	}
	partner, err := lookup(partnerID)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, domainerror.ErrUserNotFound
	}
	return partner, nil
}

func milestoneNotification(recipientID uuid.UUID, goal *entity.Goal, ownerName string, milestone int, title, message string) *entity.Notification {
	n := entity.NewNotification(recipientID, entity.NotificationStreakMilestone, title, message)
	n.WithGoal(goal.ID).WithUser(goal.OwnerID)
	n.Metadata[entity.MetaOwnerName] = ownerName
	n.Metadata[entity.MetaGoalTitle] = goal.Title
	n.Metadata[entity.MetaStreak] = milestone
	return n
}

func displayName(u *entity.User) string {
	if u == nil {
		return "Your partner"
	}
	return u.Name()
}
