package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/pkg/pagination"
)

// PurchaseRepository defines the interface for purchase order data operations
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Purchase, error)
	List(ctx context.Context, params *PurchaseFilterParams) ([]entity.Purchase, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.PurchaseStatus) error
	GetNextPurchaseNumber(ctx context.Context) (int, error)
}

// PurchaseFilterParams contains filtering parameters for purchase queries
type PurchaseFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.PurchaseStatus
	SupplierID *uuid.UUID
}

// PurchaseItemRepository defines the interface for purchase item data operations
type PurchaseItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.PurchaseItem) error
}
