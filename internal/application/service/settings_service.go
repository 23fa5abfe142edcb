package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kamaug/opshub-api/internal/config"
	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/domain/repository"
	"github.com/kamaug/opshub-api/pkg/apperror"
	"github.com/kamaug/opshub-api/pkg/currency"
)

// SettingsService manages the single business settings row
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	defaults     config.FinanceConfig
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository, defaults config.FinanceConfig) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, defaults: defaults}
}

// GetSettings returns the business settings, falling back to configured
// defaults when no row has been saved yet.
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.BusinessSettings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.BusinessSettings{
			StoreName:    "My Store",
			CurrencyCode: s.defaults.CurrencyCode,
			LaborTaxRate: s.defaults.LaborTaxRate,
			PrinterWidth: s.defaults.PrinterWidth,
		}
	}
	return settings, nil
}

// LaborTaxRate returns the labor tax rate currently in effect, either the
// saved settings row or the configured default.
func (s *SettingsService) LaborTaxRate(ctx context.Context) (decimal.Decimal, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return settings.LaborTaxRate, nil
}

// UpdateSettingsInput represents the input for updating business settings
type UpdateSettingsInput struct {
	StoreName    string
	Address      *string
	Phone        *string
	TaxID        *string
	CurrencyCode string
	LaborTaxRate decimal.Decimal
	PrinterWidth int
}

// UpdateSettings validates and upserts the business settings row
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.BusinessSettings, error) {
	if input.StoreName == "" {
		return nil, apperror.NewBadRequestError("store name is required")
	}
	if _, err := currency.NewFormatter(input.CurrencyCode); err != nil {
		return nil, apperror.NewBadRequestError("unknown currency code " + input.CurrencyCode)
	}
	if input.LaborTaxRate.IsNegative() || input.LaborTaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, apperror.NewBadRequestError("labor tax rate must be between 0 and 100")
	}
	if input.PrinterWidth <= 0 {
		input.PrinterWidth = s.defaults.PrinterWidth
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &entity.BusinessSettings{}
	}

	settings.StoreName = input.StoreName
	settings.Address = input.Address
	settings.Phone = input.Phone
	settings.TaxID = input.TaxID
	settings.CurrencyCode = input.CurrencyCode
	settings.LaborTaxRate = input.LaborTaxRate
	settings.PrinterWidth = input.PrinterWidth

	if err := s.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
