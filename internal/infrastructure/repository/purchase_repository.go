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

type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository creates a new purchase repository
func NewPurchaseRepository(db *gorm.DB) domainRepo.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	var purchase entity.Purchase
	err := r.db.WithContext(ctx).
		Preload("Supplier").
		Preload("Details.Product").
		First(&purchase, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &purchase, err
}

func (r *purchaseRepository) List(ctx context.Context, params *domainRepo.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var purchases []entity.Purchase
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Purchase{})

	if params.Search != "" {
		query = query.Where("purchase_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.SupplierID != nil {
		query = query.Where("supplier_id = ?", *params.SupplierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Supplier").
		Order("created_at DESC").
		Find(&purchases).Error

	return purchases, total, err
}

func (r *purchaseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Purchase{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *purchaseRepository) GetNextPurchaseNumber(ctx context.Context) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Purchase{}).Count(&count).Error
	return int(count) + 1, err
}

type purchaseItemRepository struct {
	db *gorm.DB
}

// NewPurchaseItemRepository creates a new purchase item repository
func NewPurchaseItemRepository(db *gorm.DB) domainRepo.PurchaseItemRepository {
	return &purchaseItemRepository{db: db}
}

func (r *purchaseItemRepository) CreateBatch(ctx context.Context, items []entity.PurchaseItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}
