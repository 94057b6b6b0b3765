package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	"github.com/commitly/backend/internal/integration/persistence/model"
)

type streakRepository struct {
	db *gorm.DB
}

// NewStreakRepository creates a new streak repository instance.
func NewStreakRepository(db *gorm.DB) adapter.StreakRepository {
	return &streakRepository{
		db: db,
	}
}

// FindByKey returns nil, nil when the pair has no streak row yet.
func (r *streakRepository) FindByKey(ctx context.Context, key entity.StreakKey) (*entity.Streak, error) {
	var streakModel model.StreakModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ? AND user_id = ?", key.GoalID, key.UserID).
		First(&streakModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return streakModel.ToEntity(), nil
}

func (r *streakRepository) FindByGoalIDs(ctx context.Context, userID uuid.UUID, goalIDs []uuid.UUID) (map[uuid.UUID]*entity.Streak, error) {
	streaks := make(map[uuid.UUID]*entity.Streak, len(goalIDs))
	if len(goalIDs) == 0 {
		return streaks, nil
	}

	var models []model.StreakModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND goal_id IN ?", userID, goalIDs).
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range models {
		streaks[models[i].GoalID] = models[i].ToEntity()
	}
	return streaks, nil
}

type completionRepository struct {
	db *gorm.DB
}

// NewCompletionRepository creates a new completion ledger repository instance.
func NewCompletionRepository(db *gorm.DB) adapter.CompletionRepository {
	return &completionRepository{
		db: db,
	}
}

// Record appends the event and upserts the resulting streak atomically.
func (r *completionRepository) Record(ctx context.Context, event *entity.CompletionEvent, streak entity.Streak) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.CompletionFromEntity(event)).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "goal_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_streak",
				"longest_streak",
				"last_completed_date",
				"total_completions",
				"updated_at",
			}),
		}).Create(model.StreakFromEntity(streak)).Error
	})
}

func (r *completionRepository) FindByKey(ctx context.Context, key entity.StreakKey, limit int) ([]*entity.CompletionEvent, error) {
	query := r.db.WithContext(ctx).
		Where("goal_id = ? AND user_id = ?", key.GoalID, key.UserID).
		Order("completion_date DESC, created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []model.CompletionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	events := make([]*entity.CompletionEvent, 0, len(models))
	for i := range models {
		event, err := models[i].ToEntity()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
