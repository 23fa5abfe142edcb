package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/pkg/apperror"
	"github.com/kamaug/opshub-api/pkg/pagination"
	"github.com/kamaug/opshub-api/pkg/utils"
)

// PurchaseService handles purchase order operations
type PurchaseService struct {
	purchaseRepo     repository.PurchaseRepository
	purchaseItemRepo repository.PurchaseItemRepository
	productRepo      repository.ProductRepository
	supplierRepo     repository.SupplierRepository
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	purchaseItemRepo repository.PurchaseItemRepository,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:     purchaseRepo,
		purchaseItemRepo: purchaseItemRepo,
		productRepo:      productRepo,
		supplierRepo:     supplierRepo,
	}
}

// PurchaseItemInput represents a purchase order line input
type PurchaseItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitCost  decimal.Decimal
}

// CreatePurchaseInput represents the input for creating a purchase order
type CreatePurchaseInput struct {
	SupplierID *uuid.UUID
	Date       time.Time
	Note       *string
	Items      []PurchaseItemInput
}

// CreatePurchase creates a purchase order in the Ordered status. Stock moves
// only when the order is received.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("purchase order needs at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("item quantity must be positive")
		}
		if item.UnitCost.IsNegative() {
			return nil, apperror.NewBadRequestError("item unit cost cannot be negative")
		}
	}

	ids := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		ids[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(uniqueIDs(ids)) {
		return nil, apperror.NewNotFoundError("Product")
	}

	var supplierName string
	if input.SupplierID != nil {
		supplier, err := s.supplierRepo.GetByID(ctx, *input.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, apperror.NewNotFoundError("Supplier")
		}
		supplierName = supplier.Name
	}

	nextNum, err := s.purchaseRepo.GetNextPurchaseNumber(ctx)
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range input.Items {
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	purchase := &entity.Purchase{
		SupplierID:   input.SupplierID,
		SupplierName: supplierName,
		PurchaseNo:   utils.PurchaseNumber(nextNum),
		Date:         input.Date,
		Status:       enum.PurchaseStatusOrdered,
		TotalAmount:  total,
		Note:         input.Note,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	items := make([]entity.PurchaseItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = entity.PurchaseItem{
			PurchaseID: purchase.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitCost:   item.UnitCost,
			Total:      item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
	}
	if err := s.purchaseItemRepo.CreateBatch(ctx, items); err != nil {
		return nil, err
	}
	purchase.Details = items

	return purchase, nil
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// GetPurchase returns a purchase order with its line items
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases returns a paginated list of purchase orders
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, p), nil
}

// ChangeStatus moves a purchase order to Received or Cancelled. Receiving
// restocks every line item's product.
func (s *PurchaseService) ChangeStatus(ctx context.Context, id uuid.UUID, target enum.PurchaseStatus) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}

	if !purchase.Status.CanTransition(target) {
		return nil, apperror.NewConflictError(
			"cannot change purchase status from " + purchase.Status.String() + " to " + target.String())
	}

	if err := s.purchaseRepo.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}

	if target == enum.PurchaseStatusReceived {
		increments := make(map[uuid.UUID]int)
		for _, d := range purchase.Details {
			increments[d.ProductID] += d.Quantity
		}
		if len(increments) > 0 {
			if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
				return nil, err
			}
		}
	}

	purchase.Status = target
	return purchase, nil
}
