package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/finance"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/pkg/apperror"
	"github.com/kamaug/opshub-api/pkg/pagination"
	"github.com/kamaug/opshub-api/pkg/utils"
)

// QuotationService handles quotation-related operations
type QuotationService struct {
	quotationRepo     repository.QuotationRepository
	quotationItemRepo repository.QuotationItemRepository
	customerRepo      repository.CustomerRepository
	settings          *SettingsService
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	quotationItemRepo repository.QuotationItemRepository,
	customerRepo repository.CustomerRepository,
	settings *SettingsService,
) *QuotationService {
	return &QuotationService{
		quotationRepo:     quotationRepo,
		quotationItemRepo: quotationItemRepo,
		customerRepo:      customerRepo,
		settings:          settings,
	}
}

// LineItemInput represents a line item input for quotations and invoices
type LineItemInput struct {
	ProductID     *uuid.UUID
	Description   string
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	TaxRate       decimal.Decimal
	SerialNumbers []string
}

// CreateQuotationInput represents the input for creating a quotation
type CreateQuotationInput struct {
	CustomerID      *uuid.UUID
	Date            time.Time
	LaborCost       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxEnabled      bool
	Note            *string
	Items           []LineItemInput
}

func toFinanceItems(items []LineItemInput) []finance.LineItem {
	out := make([]finance.LineItem, len(items))
	for i, item := range items {
		out[i] = finance.LineItem{
			Description:   item.Description,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			UnitPrice:     item.UnitPrice,
			TaxRate:       item.TaxRate,
			SerialNumbers: item.SerialNumbers,
		}
	}
	return out
}

// CreateQuotation computes the totals breakdown for the given line items and
// persists the quotation with the breakdown cached on the row.
func (s *QuotationService) CreateQuotation(ctx context.Context, input *CreateQuotationInput) (*entity.Quotation, error) {
	laborTaxRate, err := s.settings.LaborTaxRate(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := finance.NewCalculator(laborTaxRate).ComputeTotals(
		toFinanceItems(input.Items),
		finance.CostParameters{LaborCost: input.LaborCost, DiscountPercent: input.DiscountPercent},
		input.TaxEnabled,
	)
	if err != nil {
		return nil, err
	}

	nextNum, err := s.quotationRepo.GetNextReferenceNumber(ctx)
	if err != nil {
		return nil, err
	}

	var customerName string
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		customerName = customer.Name
	}

	quotation := &entity.Quotation{
		CustomerID:      input.CustomerID,
		Reference:       utils.QuotationReference(nextNum),
		Date:            input.Date,
		CustomerName:    customerName,
		LaborCost:       input.LaborCost,
		DiscountPercent: input.DiscountPercent,
		TaxEnabled:      input.TaxEnabled,
		Status:          enum.QuotationStatusDraft,
		Note:            input.Note,
	}
	quotation.ApplyBreakdown(*breakdown)

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, err
	}

	items := make([]entity.QuotationItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = entity.QuotationItem{
			QuotationID:   quotation.ID,
			ProductID:     item.ProductID,
			Description:   item.Description,
			Quantity:      item.Quantity,
			Unit:          item.Unit,
			UnitPrice:     item.UnitPrice,
			TaxRate:       item.TaxRate,
			LineAmount:    item.Quantity.Mul(item.UnitPrice),
			SerialNumbers: item.SerialNumbers,
		}
	}
	if len(items) > 0 {
		if err := s.quotationItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}
	quotation.Details = items

	return quotation, nil
}

// GetQuotation returns a quotation with its line items
func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// ListQuotations returns a paginated list of quotations
func (s *QuotationService) ListQuotations(ctx context.Context, params *repository.QuotationFilterParams) (*pagination.PaginatedResult[entity.Quotation], error) {
	quotations, total, err := s.quotationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotations, p), nil
}

// ChangeStatus moves a quotation through its lifecycle. Illegal transitions
// and transitions out of a terminal status are rejected.
func (s *QuotationService) ChangeStatus(ctx context.Context, id uuid.UUID, target enum.QuotationStatus) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}

	if !quotation.Status.CanTransition(target) {
		return nil, apperror.NewConflictError(
			"cannot change quotation status from " + quotation.Status.String() + " to " + target.String())
	}

	if err := s.quotationRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	quotation.Status = target
	return quotation, nil
}

// DeleteQuotation removes a quotation. Only drafts can be deleted.
func (s *QuotationService) DeleteQuotation(ctx context.Context, id uuid.UUID) error {
	quotation, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quotation == nil {
		return apperror.NewNotFoundError("Quotation")
	}
	if quotation.Status != enum.QuotationStatusDraft {
		return apperror.NewConflictError("only draft quotations can be deleted")
	}

	if err := s.quotationItemRepo.DeleteByQuotationID(ctx, id); err != nil {
		return err
	}
	return s.quotationRepo.Delete(ctx, id)
}
