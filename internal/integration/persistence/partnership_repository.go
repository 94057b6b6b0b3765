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

type partnershipRepository struct {
	db *gorm.DB
}

// NewPartnershipRepository creates a new partnership repository instance.
func NewPartnershipRepository(db *gorm.DB) adapter.PartnershipRepository {
	return &partnershipRepository{
		db: db,
	}
}

func (r *partnershipRepository) Create(ctx context.Context, partnership *entity.Partnership) error {
	return r.db.WithContext(ctx).Create(model.PartnershipFromEntity(partnership)).Error
}

func (r *partnershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Partnership, error) {
	var row model.PartnershipWithNames
	result := r.withNames(ctx).Where("partnerships.id = ?", id).Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPartnershipNotFound
		}
		return nil, result.Error
	}
	return row.ToEntity(), nil
}

func (r *partnershipRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Partnership, error) {
	var rows []model.PartnershipWithNames
	result := r.withNames(ctx).
		Where("partnerships.requester_id = ? OR partnerships.partner_id = ?", userID, userID).
		Order("partnerships.created_at DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	partnerships := make([]*entity.Partnership, len(rows))
	for i := range rows {
		partnerships[i] = rows[i].ToEntity()
	}
	return partnerships, nil
}

func (r *partnershipRepository) FindAcceptedByRequester(ctx context.Context, requesterID uuid.UUID) ([]*entity.Partnership, error) {
	var models []model.PartnershipModel
	result := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", requesterID, entity.PartnershipStatusAccepted).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	partnerships := make([]*entity.Partnership, len(models))
	for i := range models {
		partnerships[i] = models[i].ToEntity()
	}
	return partnerships, nil
}

func (r *partnershipRepository) FindOpen(ctx context.Context, requesterID, partnerID uuid.UUID, goalID *uuid.UUID) (*entity.Partnership, error) {
	query := r.db.WithContext(ctx).
		Where("requester_id = ? AND partner_id = ?", requesterID, partnerID).
		Where("status IN ?", []string{
			string(entity.PartnershipStatusPending),
			string(entity.PartnershipStatusAccepted),
		})
	if goalID == nil {
		query = query.Where("goal_id IS NULL")
	} else {
		query = query.Where("goal_id = ?", *goalID)
	}

	var partnershipModel model.PartnershipModel
	if err := query.First(&partnershipModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return partnershipModel.ToEntity(), nil
}

func (r *partnershipRepository) Update(ctx context.Context, partnership *entity.Partnership) error {
	return r.db.WithContext(ctx).Save(model.PartnershipFromEntity(partnership)).Error
}

func (r *partnershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.PartnershipModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPartnershipNotFound
	}
	return nil
}

func (r *partnershipRepository) withNames(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("partnerships").
		Select("partnerships.*, " +
			"requester.display_name AS requester_name, requester.email AS requester_email, " +
			"partner.display_name AS partner_name, partner.email AS partner_email").
		Joins("LEFT JOIN users AS requester ON requester.id = partnerships.requester_id").
		Joins("LEFT JOIN users AS partner ON partner.id = partnerships.partner_id")
}
