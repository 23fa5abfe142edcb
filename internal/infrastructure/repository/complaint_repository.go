package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	domainRepo "github.com/kamaug/opshub-api/internal/domain/repository"
)

type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) domainRepo.ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *entity.Complaint) error {
	return r.db.WithContext(ctx).Create(complaint).Error
}

func (r *complaintRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	var complaint entity.Complaint
	err := r.db.WithContext(ctx).
		Preload("Customer").
		First(&complaint, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &complaint, err
}

func (r *complaintRepository) List(ctx context.Context, params *domainRepo.ComplaintFilterParams) ([]entity.Complaint, int64, error) {
	var complaints []entity.Complaint
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Complaint{})

	if params.Search != "" {
		query = query.Where("subject ILIKE ? OR description ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&complaints).Error

	return complaints, total, err
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ComplaintStatus, resolution *string) error {
	updates := map[string]interface{}{"status": status}
	if resolution != nil {
		updates["resolution"] = *resolution
	}
	return r.db.WithContext(ctx).Model(&entity.Complaint{}).
		Where("id = ?", id).
		Updates(updates).Error
}
