package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"

	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/domain/valueobject"
)

// TestStreakFeatures runs the streak scenarios in features/.
func TestStreakFeatures(t *testing.T) {
	opts := godog.Options{
		Format:    "pretty",
		Paths:     []string{"features"},
		Output:    colors.Colored(os.Stdout),
		Randomize: 0,
		Strict:    true,
		TestingT:  t,
	}

	if tags := os.Getenv("GODOG_TAGS"); tags != "" {
		opts.Tags = tags
	}

	suite := godog.TestSuite{
		Name:                "streaks",
		ScenarioInitializer: initializeStreakScenario,
		Options:             &opts,
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type streakScenario struct {
	streak  entity.Streak
	before  entity.Streak
	lastErr error
}

func initializeStreakScenario(ctx *godog.ScenarioContext) {
	s := &streakScenario{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*s = streakScenario{}
		return ctx, nil
	})

	ctx.Given(`^a goal with no completions$`, s.aGoalWithNoCompletions)
	ctx.Given(`^a streak of (\d+) consecutive days ending on "([^"]*)"$`, s.aStreakOfConsecutiveDaysEndingOn)
	ctx.When(`^the goal is completed on "([^"]*)"$`, s.theGoalIsCompletedOn)
	ctx.Then(`^the current streak is (\d+)$`, s.theCurrentStreakIs)
	ctx.Then(`^the longest streak is (\d+)$`, s.theLongestStreakIs)
	ctx.Then(`^the total completions are (\d+)$`, s.theTotalCompletionsAre)
	ctx.Then(`^the last completed date is "([^"]*)"$`, s.theLastCompletedDateIs)
	ctx.Then(`^the completion is rejected as out of order$`, s.theCompletionIsRejectedAsOutOfOrder)
	ctx.Then(`^a milestone notification is (sent|not sent)$`, s.aMilestoneNotificationIs)
}

func (s *streakScenario) aGoalWithNoCompletions() error {
	s.streak = entity.NewStreak(newTestKey())
	return nil
}

func (s *streakScenario) aStreakOfConsecutiveDaysEndingOn(days int, end string) error {
	last, err := valueobject.ParseDate(end)
	if err != nil {
		return err
	}

	dates := make([]valueobject.Date, 0, days)
	for i := days - 1; i >= 0; i-- {
		dates = append(dates, last.AddDays(-i))
	}

	s.streak, err = replay(s.streak.Key(), dates)
	return err
}

func (s *streakScenario) theGoalIsCompletedOn(date string) error {
	d, err := valueobject.ParseDate(date)
	if err != nil {
		return err
	}

	s.before = s.streak
	next, err := ApplyCompletion(s.streak, d)
	s.lastErr = err
	if err == nil {
		s.streak = next
	}
	return nil
}

func (s *streakScenario) theCurrentStreakIs(expected int) error {
	if s.streak.CurrentStreak != expected {
		return fmt.Errorf("expected current streak %d, got %d", expected, s.streak.CurrentStreak)
	}
	return nil
}

func (s *streakScenario) theLongestStreakIs(expected int) error {
	if s.streak.LongestStreak != expected {
		return fmt.Errorf("expected longest streak %d, got %d", expected, s.streak.LongestStreak)
	}
	return nil
}

func (s *streakScenario) theTotalCompletionsAre(expected int) error {
	if s.streak.TotalCompletions != expected {
		return fmt.Errorf("expected %d total completions, got %d", expected, s.streak.TotalCompletions)
	}
	return nil
}

func (s *streakScenario) theLastCompletedDateIs(expected string) error {
	if s.streak.LastCompletedDate == nil {
		return fmt.Errorf("expected last completed date %s, got none", expected)
	}
	if got := s.streak.LastCompletedDate.String(); got != expected {
		return fmt.Errorf("expected last completed date %s, got %s", expected, got)
	}
	return nil
}

func (s *streakScenario) theCompletionIsRejectedAsOutOfOrder() error {
	if !errors.Is(s.lastErr, domainerror.ErrStreakOrdering) {
		return fmt.Errorf("expected ordering error, got %v", s.lastErr)
	}
	return nil
}

func (s *streakScenario) aMilestoneNotificationIs(outcome string) error {
	_, reached := MilestoneReached(s.before, s.streak)
	if want := outcome == "sent"; reached != want {
		return fmt.Errorf("expected milestone %s, reached=%v at streak %d", outcome, reached, s.streak.CurrentStreak)
	}
	return nil
}
