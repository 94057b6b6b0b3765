package persistence

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/persistence/model"
)

type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository stores goals with GORM. Delete is a soft delete.
func NewGoalRepository(db *gorm.DB) adapter.GoalRepository {
	return &goalRepository{db: db}
}

// Create inserts a new goal.
func (r *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	return r.db.WithContext(ctx).Create(model.GoalFromEntity(goal)).Error
}

// FindByID returns ErrGoalNotFound for unknown and deleted goals.
func (r *goalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	var row model.GoalModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

// FindByOwnerID filters status and type in SQL. Tags are matched after loading
// because the array column has no portable containment operator.
func (r *goalRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID, filter adapter.GoalFilter) ([]*entity.Goal, error) {
	var rows []model.GoalModel
	err := r.db.WithContext(ctx).
		Scopes(ownedBy(ownerID), withStatus(filter.Status), withType(filter.GoalType)).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	goals := make([]*entity.Goal, 0, len(rows))
	for i := range rows {
		if filter.Tag != "" && !slices.Contains(rows[i].Tags, filter.Tag) {
			continue
		}
		goals = append(goals, rows[i].ToEntity())
	}
	return goals, nil
}

// Update saves the goal except its status, completion time and timestamps it does not own.
func (r *goalRepository) Update(ctx context.Context, goal *entity.Goal) error {
	goal.UpdatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).
		Omit("status", "completed_at", "created_at", "deleted_at").
		Save(model.GoalFromEntity(goal)).Error
}

// UpdateStatus is a compare-and-set on the status column.
func (r *goalRepository) UpdateStatus(ctx context.Context, goal *entity.Goal, from entity.GoalStatus) error {
	updatedAt := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&model.GoalModel{}).
		Where("id = ? AND status = ?", goal.ID, string(from)).
		Updates(map[string]any{
			"status":       string(goal.Status),
			"completed_at": goal.CompletedAt,
			"updated_at":   updatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrGoalStatusChanged
	}
	goal.UpdatedAt = updatedAt
	return nil
}

// Delete soft-deletes the goal.
func (r *goalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.GoalModel{})
	if result.Error == nil && result.RowsAffected == 0 {
		return domainerror.ErrGoalNotFound
	}
	return result.Error
}

func ownedBy(ownerID uuid.UUID) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

func withStatus(status *entity.GoalStatus) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == nil {
			return db
		}
		return db.Where("status = ?", string(*status))
	}
}

func withType(goalType *entity.GoalType) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if goalType == nil {
			return db
		}
		return db.Where("goal_type = ?", string(*goalType))
	}
}
