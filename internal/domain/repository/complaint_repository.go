package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/pkg/pagination"
)

// ComplaintRepository defines the interface for complaint data operations
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *entity.Complaint) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Complaint, error)
	List(ctx context.Context, params *ComplaintFilterParams) ([]entity.Complaint, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ComplaintStatus, resolution *string) error
}

// ComplaintFilterParams contains filtering parameters for complaint queries
type ComplaintFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ComplaintStatus
	CustomerID *uuid.UUID
}
