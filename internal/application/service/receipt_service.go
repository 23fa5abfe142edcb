package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/pkg/apperror"
	"github.com/kamaug/opshub-api/pkg/currency"
	"github.com/kamaug/opshub-api/pkg/printer"
)

// ReceiptService composes printable receipts from invoices. The receipt uses
// the breakdown cached on the invoice row; nothing is recomputed here.
type ReceiptService struct {
	invoiceRepo repository.InvoiceRepository
	defaults    *SettingsService
	printer     printer.Printer // nil when no printer is configured
}

// NewReceiptService creates a new receipt service
func NewReceiptService(invoiceRepo repository.InvoiceRepository, settings *SettingsService, prn printer.Printer) *ReceiptService {
	return &ReceiptService{invoiceRepo: invoiceRepo, defaults: settings, printer: prn}
}

// ComposeReceipt builds the receipt value object for an invoice
func (s *ReceiptService) ComposeReceipt(ctx context.Context, invoiceID uuid.UUID) (*entity.Receipt, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	settings, err := s.defaults.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.StoreName,
		},
		InvoiceNo:           invoice.InvoiceNo,
		Date:                invoice.Date.Format("02/01/2006"),
		Customer:            invoice.CustomerName,
		ItemsSubtotal:       invoice.ItemsSubtotal,
		LaborCost:           invoice.LaborCost,
		DiscountAmount:      invoice.DiscountAmount,
		AmountAfterDiscount: invoice.AmountAfterDiscount,
		TaxAmount:           invoice.TaxAmount,
		GrandTotal:          invoice.GrandTotal,
		AmountPaid:          invoice.AmountPaid,
		AmountDue:           invoice.AmountDue,
		CurrencyCode:        settings.CurrencyCode,
	}
	if settings.Address != nil {
		receipt.Header.Address = *settings.Address
	}
	if settings.Phone != nil {
		receipt.Header.Phone = *settings.Phone
	}
	if settings.TaxID != nil {
		receipt.Header.TaxID = *settings.TaxID
	}

	for _, d := range invoice.Details {
		receipt.Items = append(receipt.Items, entity.ReceiptItem{
			Description: d.Description,
			Quantity:    d.Quantity,
			Unit:        d.Unit,
			UnitPrice:   d.UnitPrice,
			LineAmount:  d.LineAmount,
		})
	}

	return receipt, nil
}

// RenderESCPOS renders a receipt as an ESC/POS byte stream for thermal printers
func (s *ReceiptService) RenderESCPOS(ctx context.Context, invoiceID uuid.UUID) ([]byte, error) {
	receipt, err := s.ComposeReceipt(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	settings, err := s.defaults.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	fmtr, err := currency.NewFormatter(receipt.CurrencyCode)
	if err != nil {
		return nil, err
	}

	doc := printer.NewDocument(settings.PrinterWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(receipt.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if receipt.Header.Address != "" {
		doc.Text(receipt.Header.Address)
	}
	if receipt.Header.Phone != "" {
		doc.Text("Tel: " + receipt.Header.Phone)
	}
	if receipt.Header.TaxID != "" {
		doc.Text("GSTIN: " + receipt.Header.TaxID)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-').
		KeyValue("Invoice", receipt.InvoiceNo).
		KeyValue("Date", receipt.Date)
	if receipt.Customer != "" {
		doc.KeyValue("Customer", receipt.Customer)
	}
	doc.Separator('-')

	for _, item := range receipt.Items {
		doc.Text(item.Description)
		qty := item.Quantity.String()
		if item.Unit != "" {
			qty += " " + item.Unit
		}
		doc.KeyValue(
			fmt.Sprintf("  %s x %s", qty, fmtr.Format(item.UnitPrice)),
			fmtr.Format(item.LineAmount),
		)
	}

	doc.Separator('-').
		KeyValue("Subtotal", fmtr.Format(receipt.ItemsSubtotal))
	if !receipt.LaborCost.IsZero() {
		doc.KeyValue("Labor", fmtr.Format(receipt.LaborCost))
	}
	if !receipt.DiscountAmount.IsZero() {
		doc.KeyValue("Discount", "-"+fmtr.Format(receipt.DiscountAmount))
	}
	if !receipt.TaxAmount.IsZero() {
		doc.KeyValue("Tax", fmtr.Format(receipt.TaxAmount))
	}

	doc.Separator('=').
		SetBold(true).
		KeyValue("TOTAL", fmtr.Format(receipt.GrandTotal)).
		SetBold(false).
		KeyValue("Paid", fmtr.Format(receipt.AmountPaid)).
		KeyValue("Due", fmtr.Format(receipt.AmountDue))

	doc.FeedLines(1).
		SetAlign(printer.AlignCenter).
		Text("Thank you!").
		Cut()

	return doc.Bytes(), nil
}

// PrintReceipt renders the receipt and sends it to the configured printer
func (s *ReceiptService) PrintReceipt(ctx context.Context, invoiceID uuid.UUID) error {
	if s.printer == nil {
		return apperror.NewConflictError("no printer is configured")
	}

	data, err := s.RenderESCPOS(ctx, invoiceID)
	if err != nil {
		return err
	}
	if err := s.printer.Print(data); err != nil {
		return apperror.NewAppError(503, "printer unavailable: "+err.Error())
	}
	return nil
}

// RenderText renders a receipt as a plain-text preview
func (s *ReceiptService) RenderText(ctx context.Context, invoiceID uuid.UUID) (string, error) {
	receipt, err := s.ComposeReceipt(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	fmtr, err := currency.NewFormatter(receipt.CurrencyCode)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", receipt.Header.StoreName)
	fmt.Fprintf(&b, "Invoice %s  %s\n", receipt.InvoiceNo, receipt.Date)
	if receipt.Customer != "" {
		fmt.Fprintf(&b, "Customer: %s\n", receipt.Customer)
	}
	b.WriteString("--------------------------------\n")
	for _, item := range receipt.Items {
		fmt.Fprintf(&b, "%s\n  %s x %s = %s\n",
			item.Description, item.Quantity.String(),
			fmtr.Format(item.UnitPrice), fmtr.Format(item.LineAmount))
	}
	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "Subtotal:  %s\n", fmtr.Format(receipt.ItemsSubtotal))
	if !receipt.LaborCost.IsZero() {
		fmt.Fprintf(&b, "Labor:     %s\n", fmtr.Format(receipt.LaborCost))
	}
	if !receipt.DiscountAmount.IsZero() {
		fmt.Fprintf(&b, "Discount: -%s\n", fmtr.Format(receipt.DiscountAmount))
	}
	if !receipt.TaxAmount.IsZero() {
		fmt.Fprintf(&b, "Tax:       %s\n", fmtr.Format(receipt.TaxAmount))
	}
	fmt.Fprintf(&b, "TOTAL:     %s\n", fmtr.Format(receipt.GrandTotal))
	fmt.Fprintf(&b, "Paid:      %s\n", fmtr.Format(receipt.AmountPaid))
	fmt.Fprintf(&b, "Due:       %s\n", fmtr.Format(receipt.AmountDue))

	return b.String(), nil
}
