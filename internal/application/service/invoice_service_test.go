package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaug/opshub-api/pkg/apperror"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/finance"
)

func dec(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

type invoiceFixtures struct {
	svc         *InvoiceService
	invoiceRepo *fakeInvoiceRepo
	quotations  *fakeQuotationRepo
	products    *fakeProductRepo
	customers   *fakeCustomerRepo
	settings    *SettingsService
}

func newInvoiceFixtures() *invoiceFixtures {
	invoiceRepo := newFakeInvoiceRepo()
	quotations := newFakeQuotationRepo()
	products := newFakeProductRepo()
	customers := newFakeCustomerRepo()
	settings := newTestSettingsService()
	svc := NewInvoiceService(
		invoiceRepo,
		newFakeInvoiceItemRepo(),
		quotations,
		products,
		customers,
		&fakePaymentRepo{invoices: invoiceRepo},
		settings,
	)
	return &invoiceFixtures{
		svc:         svc,
		invoiceRepo: invoiceRepo,
		quotations:  quotations,
		products:    products,
		customers:   customers,
		settings:    settings,
	}
}

func (f *invoiceFixtures) seedProduct(t *testing.T, stock int) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:          "CCTV Camera",
		Code:          "CAM-01",
		Unit:          "pcs",
		SellingPrice:  dec("50000"),
		TaxRate:       dec("18"),
		StockQuantity: stock,
		AlertQuantity: 1,
	}
	require.NoError(t, f.products.Create(context.Background(), product))
	return product
}

func draftInput(productID *uuid.UUID) *CreateInvoiceInput {
	return &CreateInvoiceInput{
		Date:            time.Now(),
		LaborCost:       dec("20000"),
		DiscountPercent: dec("5"),
		TaxEnabled:      true,
		Items: []LineItemInput{
			{
				ProductID:   productID,
				Description: "CCTV Camera",
				Quantity:    dec("2"),
				Unit:        "pcs",
				UnitPrice:   dec("50000"),
				TaxRate:     dec("18"),
			},
		},
	}
}

func TestCreateInvoiceComputesBreakdownAndDecrementsStock(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 10)

	invoice, err := f.svc.CreateInvoice(context.Background(), draftInput(&product.ID))
	require.NoError(t, err)

	assert.Equal(t, "INV-000001", invoice.InvoiceNo)
	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)

	// 2 x 50000 = 100000, + labor 20000, - 5% = 114000
	// tax: 100000*0.95*0.18 + 20000*0.95*0.18 = 17100 + 3420 = 20520
	assert.True(t, invoice.ItemsSubtotal.Equal(dec("100000")))
	assert.True(t, invoice.SubtotalWithLabor.Equal(dec("120000")))
	assert.True(t, invoice.DiscountAmount.Equal(dec("6000")))
	assert.True(t, invoice.AmountAfterDiscount.Equal(dec("114000")))
	assert.True(t, invoice.TaxAmount.Equal(dec("20520")))
	assert.True(t, invoice.GrandTotal.Equal(dec("134520")))
	assert.True(t, invoice.AmountPaid.IsZero())
	assert.True(t, invoice.AmountDue.Equal(invoice.GrandTotal))

	updated, err := f.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.StockQuantity)
}

func TestCreateInvoiceUsesSavedLaborTaxRate(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 10)

	_, err := f.settings.UpdateSettings(context.Background(), &UpdateSettingsInput{
		StoreName:    "My Store",
		CurrencyCode: "INR",
		LaborTaxRate: dec("12"),
		PrinterWidth: 32,
	})
	require.NoError(t, err)

	invoice, err := f.svc.CreateInvoice(context.Background(), draftInput(&product.ID))
	require.NoError(t, err)

	// item tax unchanged at 18%, labor now taxed at the saved 12%:
	// 100000*0.95*0.18 + 20000*0.95*0.12 = 17100 + 2280 = 19380
	assert.True(t, invoice.TaxAmount.Equal(dec("19380")), "tax = %s", invoice.TaxAmount)
	assert.True(t, invoice.GrandTotal.Equal(dec("133380")), "grand total = %s", invoice.GrandTotal)
}

func TestCreateInvoiceInsufficientStock(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 1)

	_, err := f.svc.CreateInvoice(context.Background(), draftInput(&product.ID))
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	untouched, err := f.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, untouched.StockQuantity)
}

func TestRecordPaymentPartialThenSettled(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 10)
	invoice, err := f.svc.CreateInvoice(context.Background(), draftInput(&product.ID))
	require.NoError(t, err)

	after, err := f.svc.RecordPayment(context.Background(), invoice.ID, &RecordPaymentInput{
		Amount: dec("100000"),
		Method: enum.PaymentMethodCash,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPartiallyPaid, after.Status)
	assert.True(t, after.AmountPaid.Equal(dec("100000")))
	assert.True(t, after.AmountDue.Equal(dec("34520")))
	assert.Len(t, after.Payments, 1)

	settled, err := f.svc.RecordPayment(context.Background(), invoice.ID, &RecordPaymentInput{
		Amount: dec("34520"),
		Method: enum.PaymentMethodOnline,
	})
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, settled.Status)
	assert.True(t, settled.AmountDue.IsZero())
	assert.Len(t, settled.Payments, 2)
}

func TestRecordPaymentOnPaidInvoiceRejected(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 10)
	invoice, err := f.svc.CreateInvoice(context.Background(), draftInput(&product.ID))
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), invoice.ID, &RecordPaymentInput{
		Amount: invoice.GrandTotal,
		Method: enum.PaymentMethodCard,
	})
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), invoice.ID, &RecordPaymentInput{
		Amount: dec("1"),
		Method: enum.PaymentMethodCash,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, finance.ErrTerminalStatus)

	// the rejected payment must not be in the history
	final, err := f.svc.GetInvoice(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Len(t, final.Payments, 1)
}

func TestRecordPaymentNonPositiveRejected(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 10)
	invoice, err := f.svc.CreateInvoice(context.Background(), draftInput(&product.ID))
	require.NoError(t, err)

	for _, amount := range []string{"0", "-50"} {
		_, err := f.svc.RecordPayment(context.Background(), invoice.ID, &RecordPaymentInput{
			Amount: dec(amount),
			Method: enum.PaymentMethodCash,
		})
		assert.ErrorIs(t, err, finance.ErrInvalidPaymentAmount, "amount %s", amount)
	}
}

func TestCancelInvoiceRestoresStock(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 10)
	created, err := f.svc.CreateInvoice(context.Background(), draftInput(&product.ID))
	require.NoError(t, err)

	cancelled, err := f.svc.CancelInvoice(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCancelled, cancelled.Status)
}

func TestCancelPaidInvoiceRejected(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 10)
	invoice, err := f.svc.CreateInvoice(context.Background(), draftInput(&product.ID))
	require.NoError(t, err)

	_, err = f.svc.RecordPayment(context.Background(), invoice.ID, &RecordPaymentInput{
		Amount: invoice.GrandTotal,
		Method: enum.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = f.svc.CancelInvoice(context.Background(), invoice.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestConvertQuotationCarriesBreakdownVerbatim(t *testing.T) {
	f := newInvoiceFixtures()
	product := f.seedProduct(t, 10)

	quotation := &entity.Quotation{
		Reference:       "QT-000001",
		Date:            time.Now(),
		LaborCost:       dec("20000"),
		DiscountPercent: dec("5"),
		TaxEnabled:      true,
		Status:          enum.QuotationStatusApproved,
		Details: []entity.QuotationItem{
			{
				ProductID:   &product.ID,
				Description: "CCTV Camera",
				Quantity:    dec("2"),
				Unit:        "pcs",
				UnitPrice:   dec("50000"),
				TaxRate:     dec("18"),
				LineAmount:  dec("100000"),
			},
		},
	}
	quotation.ApplyBreakdown(finance.TotalsBreakdown{
		ItemsSubtotal:       dec("100000"),
		SubtotalWithLabor:   dec("120000"),
		DiscountAmount:      dec("6000"),
		AmountAfterDiscount: dec("114000"),
		TaxAmount:           dec("20520"),
		GrandTotal:          dec("134520"),
	})
	require.NoError(t, f.quotations.Create(context.Background(), quotation))

	invoice, err := f.svc.ConvertQuotation(context.Background(), quotation.ID)
	require.NoError(t, err)

	require.NotNil(t, invoice.QuotationID)
	assert.Equal(t, quotation.ID, *invoice.QuotationID)
	assert.True(t, invoice.GrandTotal.Equal(quotation.GrandTotal))
	assert.True(t, invoice.TaxAmount.Equal(quotation.TaxAmount))
	assert.True(t, invoice.AmountDue.Equal(quotation.GrandTotal))

	updated, err := f.products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, updated.StockQuantity)
}

func TestConvertUnapprovedQuotationRejected(t *testing.T) {
	f := newInvoiceFixtures()

	quotation := &entity.Quotation{
		Reference: "QT-000002",
		Date:      time.Now(),
		Status:    enum.QuotationStatusSent,
	}
	require.NoError(t, f.quotations.Create(context.Background(), quotation))

	_, err := f.svc.ConvertQuotation(context.Background(), quotation.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}
