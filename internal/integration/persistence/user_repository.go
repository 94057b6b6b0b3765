// Package persistence implements the application repositories on GORM.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/commitly/backend/internal/application/adapter"
	"github.com/commitly/backend/internal/domain/entity"
	domainerror "github.com/commitly/backend/internal/domain/error"
	"github.com/commitly/backend/internal/integration/persistence/model"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository stores users with GORM.
func NewUserRepository(db *gorm.DB) adapter.UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(model.UserFromEntity(user)).Error
}

// FindByID returns ErrUserNotFound for unknown ids.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

// FindByEmail returns ErrUserNotFound for unknown addresses.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *userRepository) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var row model.UserModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerror.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.ToEntity(), nil
}

// FindByIDs loads several users in one query, keyed by id.
func (r *userRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	users := make(map[uuid.UUID]*entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var rows []model.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		users[rows[i].ID] = rows[i].ToEntity()
	}
	return users, nil
}

// ExistsByEmail reports whether the address is taken.
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.UserModel{}).Where("email = ?", email).Count(&n).Error
	return n > 0, err
}

// Update saves every column of the user.
func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(model.UserFromEntity(user)).Error
}

// Delete runs in one transaction. Soft-deleted goals are purged too.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.UserModel
		err := tx.Where("id = ?", id).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerror.ErrUserNotFound
		}
		if err != nil {
			return err
		}

		var owned []uuid.UUID
		if err := tx.Unscoped().Model(&model.GoalModel{}).Where("owner_id = ?", id).Pluck("id", &owned).Error; err != nil {
			return err
		}

		steps := []struct {
			target any
			query  string
			args   []any
		}{
			{&model.EmailQueueModel{}, "recipient_user_id = ?", []any{id}},
			{&model.NotificationModel{}, "recipient_user_id = ? OR related_user_id = ?", []any{id, id}},
			{&model.CompletionModel{}, "user_id = ? OR goal_id IN ?", []any{id, owned}},
			{&model.StreakModel{}, "user_id = ? OR goal_id IN ?", []any{id, owned}},
			{&model.ActivityModel{}, "goal_id IN ?", []any{owned}},
			{&model.PartnershipModel{}, "requester_id = ? OR partner_id = ? OR goal_id IN ?", []any{id, id, owned}},
			{&model.GoalModel{}, "owner_id = ?", []any{id}},
			{&model.RefreshTokenModel{}, "user_id = ?", []any{id}},
		}
		for _, step := range steps {
			if err := tx.Unscoped().Where(step.query, step.args...).Delete(step.target).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})
}
