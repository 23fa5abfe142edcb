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

// InvoiceService handles invoice-related operations: creation from a draft,
// conversion from an approved quotation, payment recording, and cancellation.
type InvoiceService struct {
	invoiceRepo     repository.InvoiceRepository
	invoiceItemRepo repository.InvoiceItemRepository
	quotationRepo   repository.QuotationRepository
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	paymentRepo     repository.PaymentRepository
	settings        *SettingsService
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	invoiceItemRepo repository.InvoiceItemRepository,
	quotationRepo repository.QuotationRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
	settings *SettingsService,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		invoiceItemRepo: invoiceItemRepo,
		quotationRepo:   quotationRepo,
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		paymentRepo:     paymentRepo,
		settings:        settings,
	}
}

// CreateInvoiceInput represents the input for creating an invoice from a draft
type CreateInvoiceInput struct {
	CustomerID      *uuid.UUID
	Date            time.Time
	LaborCost       decimal.Decimal
	DiscountPercent decimal.Decimal
	TaxEnabled      bool
	Note            *string
	Items           []LineItemInput
}

// CreateInvoice computes the totals breakdown, decrements stock for all
// product-backed line items, and persists the invoice. If persistence fails
// after the stock decrement, the decrement is compensated.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
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

	decrements := stockDecrements(input.Items)
	if len(decrements) > 0 {
		insufficient, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
		if err != nil {
			return nil, err
		}
		if len(insufficient) > 0 {
			return nil, apperror.NewConflictError("insufficient stock for one or more products")
		}
	}

	invoice, err := s.persistInvoice(ctx, input, customerName, *breakdown, nil)
	if err != nil {
		if len(decrements) > 0 {
			// best effort compensation; the original error is what matters
			_ = s.productRepo.AtomicIncrementBatch(ctx, decrements)
		}
		return nil, err
	}
	return invoice, nil
}

func (s *InvoiceService) persistInvoice(ctx context.Context, input *CreateInvoiceInput, customerName string, breakdown finance.TotalsBreakdown, quotationID *uuid.UUID) (*entity.Invoice, error) {
	nextNum, err := s.invoiceRepo.GetNextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}

	invoice := &entity.Invoice{
		CustomerID:      input.CustomerID,
		QuotationID:     quotationID,
		InvoiceNo:       utils.InvoiceNumber(nextNum),
		Date:            input.Date,
		CustomerName:    customerName,
		LaborCost:       input.LaborCost,
		DiscountPercent: input.DiscountPercent,
		TaxEnabled:      input.TaxEnabled,
		AmountPaid:      decimal.Zero,
		Status:          enum.InvoiceStatusPending,
		Note:            input.Note,
	}
	invoice.ApplyBreakdown(breakdown)
	invoice.AmountDue = breakdown.GrandTotal

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	items := make([]entity.InvoiceItem, len(input.Items))
	for i, item := range input.Items {
		items[i] = entity.InvoiceItem{
			InvoiceID:     invoice.ID,
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
		if err := s.invoiceItemRepo.CreateBatch(ctx, items); err != nil {
			return nil, err
		}
	}
	invoice.Details = items

	return invoice, nil
}

func stockDecrements(items []LineItemInput) map[uuid.UUID]int {
	decrements := make(map[uuid.UUID]int)
	for _, item := range items {
		if item.ProductID == nil {
			continue
		}
		// fractional quantities (services, cable lengths) do not track stock
		if !item.Quantity.IsInteger() {
			continue
		}
		decrements[*item.ProductID] += int(item.Quantity.IntPart())
	}
	return decrements
}

// ConvertQuotation creates an invoice from an approved quotation. The cached
// totals breakdown is carried over verbatim, never recomputed.
func (s *InvoiceService) ConvertQuotation(ctx context.Context, quotationID uuid.UUID) (*entity.Invoice, error) {
	quotation, err := s.quotationRepo.GetWithDetails(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	if quotation.Status != enum.QuotationStatusApproved {
		return nil, apperror.NewConflictError("only approved quotations can be converted to invoices")
	}

	input := &CreateInvoiceInput{
		CustomerID:      quotation.CustomerID,
		Date:            time.Now(),
		LaborCost:       quotation.LaborCost,
		DiscountPercent: quotation.DiscountPercent,
		TaxEnabled:      quotation.TaxEnabled,
		Note:            quotation.Note,
		Items:           make([]LineItemInput, len(quotation.Details)),
	}
	for i, d := range quotation.Details {
		input.Items[i] = LineItemInput{
			ProductID:     d.ProductID,
			Description:   d.Description,
			Quantity:      d.Quantity,
			Unit:          d.Unit,
			UnitPrice:     d.UnitPrice,
			TaxRate:       d.TaxRate,
			SerialNumbers: d.SerialNumbers,
		}
	}

	decrements := stockDecrements(input.Items)
	if len(decrements) > 0 {
		insufficient, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
		if err != nil {
			return nil, err
		}
		if len(insufficient) > 0 {
			return nil, apperror.NewConflictError("insufficient stock for one or more products")
		}
	}

	invoice, err := s.persistInvoice(ctx, input, quotation.CustomerName, quotation.Breakdown(), &quotation.ID)
	if err != nil {
		if len(decrements) > 0 {
			_ = s.productRepo.AtomicIncrementBatch(ctx, decrements)
		}
		return nil, err
	}
	return invoice, nil
}

// GetInvoice returns an invoice with items and payment history
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListPayments returns the payment history of an invoice in the order the
// payments were recorded.
func (s *InvoiceService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.paymentRepo.ListByInvoiceID(ctx, invoiceID)
}

// ListInvoices returns a paginated list of invoices
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, p), nil
}

// ListDueInvoices returns invoices that still have an outstanding balance
func (s *InvoiceService) ListDueInvoices(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.ListDue(ctx, params)
	if err != nil {
		return nil, err
	}
	p := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, p), nil
}

// RecordPaymentInput represents the input for recording a payment
type RecordPaymentInput struct {
	Amount    decimal.Decimal
	Date      time.Time
	Method    enum.PaymentMethod
	Reference *string
}

// RecordPayment appends a payment to the invoice's ledger. The entire
// read-fold-write runs under the repository's row lock, so concurrent
// payments against the same invoice serialize.
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, input *RecordPaymentInput) (*entity.Invoice, error) {
	if !input.Method.Valid() {
		return nil, apperror.NewBadRequestError("unknown payment method")
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	invoice, err := s.invoiceRepo.RecordPayment(ctx, invoiceID, func(invoice *entity.Invoice) (*entity.Payment, error) {
		payment := &entity.Payment{
			ID:        uuid.New(),
			InvoiceID: invoice.ID,
			Amount:    input.Amount,
			Date:      date,
			Method:    input.Method,
			Reference: input.Reference,
		}

		result, err := finance.ApplyPayment(
			invoice.GrandTotal,
			invoice.LedgerPayments(),
			finance.Payment{ID: payment.ID.String(), Amount: payment.Amount, Date: payment.Date, Method: payment.Method},
			invoice.Status,
		)
		if err != nil {
			return nil, err
		}

		invoice.AmountPaid = result.AmountPaid
		invoice.AmountDue = result.AmountDue
		invoice.Status = result.Status
		return payment, nil
	})
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// CancelInvoice cancels a pending or partially paid invoice and restores the
// stock that was decremented at creation. Payment history is kept.
func (s *InvoiceService) CancelInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	if !invoice.Status.CanTransition(enum.InvoiceStatusCancelled) {
		return nil, apperror.NewConflictError(
			"cannot cancel invoice in status " + invoice.Status.String())
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, enum.InvoiceStatusCancelled); err != nil {
		return nil, err
	}

	increments := make(map[uuid.UUID]int)
	for _, d := range invoice.Details {
		if d.ProductID == nil || !d.Quantity.IsInteger() {
			continue
		}
		increments[*d.ProductID] += int(d.Quantity.IntPart())
	}
	if len(increments) > 0 {
		if err := s.productRepo.AtomicIncrementBatch(ctx, increments); err != nil {
			return nil, err
		}
	}

	invoice.Status = enum.InvoiceStatusCancelled
	return invoice, nil
}
