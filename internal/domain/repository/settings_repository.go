package repository

import (
	"context"

	"github.com/kamaug/opshub-api/internal/domain/entity"
)

// SettingsRepository defines access to the single business settings row
type SettingsRepository interface {
	Get(ctx context.Context) (*entity.BusinessSettings, error)
	Upsert(ctx context.Context, settings *entity.BusinessSettings) error
}

// IdempotencyRepository defines the interface for idempotency key storage
type IdempotencyRepository interface {
	Create(ctx context.Context, key *entity.IdempotencyKey) error
	GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error)
	DeleteExpired(ctx context.Context) error
}
