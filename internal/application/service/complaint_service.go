package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/pkg/apperror"
	"github.com/kamaug/opshub-api/pkg/pagination"
)

// ComplaintService handles customer complaint tracking
type ComplaintService struct {
	complaintRepo repository.ComplaintRepository
	customerRepo  repository.CustomerRepository
}

// NewComplaintService creates a new complaint service
func NewComplaintService(
	complaintRepo repository.ComplaintRepository,
	customerRepo repository.CustomerRepository,
) *ComplaintService {
	return &ComplaintService{
		complaintRepo: complaintRepo,
		customerRepo:  customerRepo,
	}
}

// CreateComplaintInput represents the input for filing a complaint
type CreateComplaintInput struct {
	CustomerID  *uuid.UUID
	Subject     string
	Description string
}

// CreateComplaint files a new complaint in the Open status
func (s *ComplaintService) CreateComplaint(ctx context.Context, input *CreateComplaintInput) (*entity.Complaint, error) {
	if input.Subject == "" {
		return nil, apperror.NewBadRequestError("subject is required")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	complaint := &entity.Complaint{
		CustomerID:  input.CustomerID,
		Subject:     input.Subject,
		Description: input.Description,
		Status:      enum.ComplaintStatusOpen,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}

// GetComplaint returns a complaint by ID
func (s *ComplaintService) GetComplaint(ctx context.Context, id uuid.UUID) (*entity.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, apperror.NewNotFoundError("Complaint")
	}
	return complaint, nil
}

// ListComplaints returns a paginated list of complaints
func (s *ComplaintService) ListComplaints(ctx context.Context, params *repository.ComplaintFilterParams) (*pagination.PaginatedResult[entity.Complaint], error) {
	complaints, total, err := s.complaintRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(complaints, p), nil
}

// ChangeStatus moves a complaint through its lifecycle. Resolving requires a
// resolution note.
func (s *ComplaintService) ChangeStatus(ctx context.Context, id uuid.UUID, target enum.ComplaintStatus, resolution *string) (*entity.Complaint, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if complaint == nil {
		return nil, apperror.NewNotFoundError("Complaint")
	}

	if !complaint.Status.CanTransition(target) {
		return nil, apperror.NewConflictError(
			"cannot change complaint status from " + complaint.Status.String() + " to " + target.String())
	}
	if target == enum.ComplaintStatusResolved && (resolution == nil || *resolution == "") {
		return nil, apperror.NewBadRequestError("resolution is required to resolve a complaint")
	}

	if err := s.complaintRepo.UpdateStatus(ctx, id, target, resolution); err != nil {
		return nil, err
	}
	complaint.Status = target
	if resolution != nil {
		complaint.Resolution = resolution
	}
	return complaint, nil
}
