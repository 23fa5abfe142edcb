package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaug/opshub-api/internal/domain/enum"
	"github.com/kamaug/opshub-api/internal/domain/finance"
	"github.com/kamaug/opshub-api/pkg/apperror"
)

func newQuotationService() (*QuotationService, *fakeCustomerRepo) {
	customers := newFakeCustomerRepo()
	svc := NewQuotationService(
		newFakeQuotationRepo(),
		newFakeQuotationItemRepo(),
		customers,
		newTestSettingsService(),
	)
	return svc, customers
}

func quotationInput() *CreateQuotationInput {
	return &CreateQuotationInput{
		Date:            time.Now(),
		LaborCost:       dec("20000"),
		DiscountPercent: dec("5"),
		TaxEnabled:      true,
		Items: []LineItemInput{
			{
				Description: "DVR Unit",
				Quantity:    dec("1"),
				Unit:        "pcs",
				UnitPrice:   dec("100000"),
				TaxRate:     dec("18"),
			},
		},
	}
}

func TestCreateQuotationCachesBreakdown(t *testing.T) {
	svc, _ := newQuotationService()

	quotation, err := svc.CreateQuotation(context.Background(), quotationInput())
	require.NoError(t, err)

	assert.Equal(t, "QT-000001", quotation.Reference)
	assert.Equal(t, enum.QuotationStatusDraft, quotation.Status)
	assert.True(t, quotation.ItemsSubtotal.Equal(dec("100000")))
	assert.True(t, quotation.SubtotalWithLabor.Equal(dec("120000")))
	assert.True(t, quotation.DiscountAmount.Equal(dec("6000")))
	assert.True(t, quotation.AmountAfterDiscount.Equal(dec("114000")))
	assert.True(t, quotation.TaxAmount.Equal(dec("20520")))
	assert.True(t, quotation.GrandTotal.Equal(dec("134520")))
	require.Len(t, quotation.Details, 1)
	assert.True(t, quotation.Details[0].LineAmount.Equal(dec("100000")))
}

func TestCreateQuotationWithUnknownCustomer(t *testing.T) {
	svc, _ := newQuotationService()

	input := quotationInput()
	missing := uuid.New()
	input.CustomerID = &missing

	_, err := svc.CreateQuotation(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestCreateQuotationRejectsInvalidInputs(t *testing.T) {
	svc, _ := newQuotationService()

	input := quotationInput()
	input.DiscountPercent = dec("101")

	_, err := svc.CreateQuotation(context.Background(), input)
	require.Error(t, err)
	assert.True(t, finance.IsValidationError(err))
}

func TestQuotationStatusLifecycle(t *testing.T) {
	svc, _ := newQuotationService()

	quotation, err := svc.CreateQuotation(context.Background(), quotationInput())
	require.NoError(t, err)

	// Draft cannot jump straight to Approved
	_, err = svc.ChangeStatus(context.Background(), quotation.ID, enum.QuotationStatusApproved)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	sent, err := svc.ChangeStatus(context.Background(), quotation.ID, enum.QuotationStatusSent)
	require.NoError(t, err)
	assert.Equal(t, enum.QuotationStatusSent, sent.Status)

	approved, err := svc.ChangeStatus(context.Background(), quotation.ID, enum.QuotationStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, enum.QuotationStatusApproved, approved.Status)

	// Approved is terminal
	_, err = svc.ChangeStatus(context.Background(), quotation.ID, enum.QuotationStatusRejected)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestDeleteQuotationDraftOnly(t *testing.T) {
	svc, _ := newQuotationService()

	quotation, err := svc.CreateQuotation(context.Background(), quotationInput())
	require.NoError(t, err)

	_, err = svc.ChangeStatus(context.Background(), quotation.ID, enum.QuotationStatusSent)
	require.NoError(t, err)

	err = svc.DeleteQuotation(context.Background(), quotation.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)

	draft, err := svc.CreateQuotation(context.Background(), quotationInput())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteQuotation(context.Background(), draft.ID))

	_, err = svc.GetQuotation(context.Background(), draft.ID)
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
