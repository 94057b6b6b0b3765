package adapter

import "context"

// EncouragementInput describes the streak a message is written for.
type EncouragementInput struct {
	OwnerName string
	GoalTitle string
	Streak    int
}

// EncouragementService writes a short congratulation for streak milestones.
type EncouragementService interface {
	// Compose returns a one or two sentence message.
	Compose(ctx context.Context, input EncouragementInput) (string, error)

	// IsAvailable checks if the service is properly configured.
	IsAvailable() bool
}
