package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/persistence/model"
)

type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository instance.
func NewActivityRepository(db *gorm.DB) adapter.ActivityRepository {
	return &activityRepository{
		db: db,
	}
}

func (r *activityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	return r.db.WithContext(ctx).Create(model.ActivityFromEntity(activity)).Error
}

func (r *activityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Activity, error) {
	var activityModel model.ActivityModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&activityModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrActivityNotFound
		}
		return nil, result.Error
	}
	return activityModel.ToEntity(), nil
}

func (r *activityRepository) FindByGoalID(ctx context.Context, goalID uuid.UUID) ([]*entity.Activity, error) {
	var models []model.ActivityModel
	result := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("order_index ASC, created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	activities := make([]*entity.Activity, len(models))
	for i := range models {
		activities[i] = models[i].ToEntity()
	}
	return activities, nil
}

func (r *activityRepository) FindByGoalIDs(ctx context.Context, goalIDs []uuid.UUID) (map[uuid.UUID][]*entity.Activity, error) {
	grouped := make(map[uuid.UUID][]*entity.Activity, len(goalIDs))
	if len(goalIDs) == 0 {
		return grouped, nil
	}

	var models []model.ActivityModel
	result := r.db.WithContext(ctx).
		Where("goal_id IN ?", goalIDs).
		Order("order_index ASC, created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	for i := range models {
		grouped[models[i].GoalID] = append(grouped[models[i].GoalID], models[i].ToEntity())
	}
	return grouped, nil
}

func (r *activityRepository) CountByGoalID(ctx context.Context, goalID uuid.UUID) (int, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.ActivityModel{}).
		Where("goal_id = ?", goalID).
		Count(&count)
	return int(count), result.Error
}

func (r *activityRepository) Update(ctx context.Context, activity *entity.Activity) error {
	activity.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Save(model.ActivityFromEntity(activity)).Error
}

func (r *activityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.ActivityModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrActivityNotFound
	}
	return nil
}
