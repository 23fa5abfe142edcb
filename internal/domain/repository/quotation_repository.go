package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data operations
type QuotationRepository interface {
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	List(ctx context.Context, params *QuotationFilterParams) ([]entity.Quotation, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuotationStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetNextReferenceNumber(ctx context.Context) (int, error)
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// QuotationItemRepository defines the interface for quotation item data operations
type QuotationItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.QuotationItem) error
	DeleteByQuotationID(ctx context.Context, quotationID uuid.UUID) error
}
