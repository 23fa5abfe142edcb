package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice data operations.
//
// RecordPayment is the single write path for payments: it must run the
// payment append and the invoice update as one atomic unit, holding an
// exclusive row lock on the invoice so two concurrent payments can never
// both fold against a stale amount due.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListDue(ctx context.Context, params *pagination.PaginationParams) ([]entity.Invoice, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	RecordPayment(ctx context.Context, invoiceID uuid.UUID, apply PaymentApplyFunc) (*entity.Invoice, error)
	GetNextInvoiceNumber(ctx context.Context) (int, error)
}

// PaymentApplyFunc receives the locked invoice (with payments preloaded),
// runs the ledger fold, and mutates the invoice in place. Returning the new
// payment row tells the repository what to append; returning an error rolls
// the whole transaction back.
type PaymentApplyFunc func(invoice *entity.Invoice) (*entity.Payment, error)

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	CustomerID *uuid.UUID
	SortBy     string
	SortOrder  string
}

// InvoiceItemRepository defines the interface for invoice item data operations
type InvoiceItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.InvoiceItem) error
}

// PaymentRepository defines read access to recorded payments.
// Payments are append-only; the only write path is InvoiceRepository.RecordPayment.
type PaymentRepository interface {
	ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
}
