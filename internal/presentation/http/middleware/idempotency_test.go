package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaug/opshub-api/internal/domain/entity"
	"github.com/kamaug/opshub-api/internal/presentation/http/middleware"
)

type memoryKeyStore struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemoryKeyStore() *memoryKeyStore {
	return &memoryKeyStore{keys: make(map[string]*entity.IdempotencyKey)}
}

func (s *memoryKeyStore) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	cp := *key
	s.keys[key.Key] = &cp
	return nil
}

func (s *memoryKeyStore) GetByKey(ctx context.Context, key string) (*entity.IdempotencyKey, error) {
	record, ok := s.keys[key]
	if !ok {
		return nil, nil
	}
	cp := *record
	return &cp, nil
}

func (s *memoryKeyStore) DeleteExpired(ctx context.Context) error {
	return nil
}

// newPaymentRouter builds a router with the idempotency middleware in front
// of a handler that counts how many times it actually ran.
func newPaymentRouter(store *memoryKeyStore, executions *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: store}))
	router.POST("/invoices/:id/payments", func(c *gin.Context) {
		*executions++
		c.JSON(http.StatusOK, gin.H{"payments": *executions})
	})
	return router
}

func postPayment(router *gin.Engine, key, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/invoices/abc/payments", strings.NewReader(body))
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestIdempotencyReplaysDuplicatePayment(t *testing.T) {
	store := newMemoryKeyStore()
	executions := 0
	router := newPaymentRouter(store, &executions)

	body := `{"amount":"10000","method":1}`

	first := postPayment(router, "pay-once", body)
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, 1, executions)

	second := postPayment(router, "pay-once", body)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, executions, "handler must not run again for a replayed key")
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyRejectsReusedKeyWithDifferentBody(t *testing.T) {
	store := newMemoryKeyStore()
	executions := 0
	router := newPaymentRouter(store, &executions)

	first := postPayment(router, "pay-once", `{"amount":"10000","method":1}`)
	require.Equal(t, http.StatusOK, first.Code)

	second := postPayment(router, "pay-once", `{"amount":"99999","method":1}`)
	assert.Equal(t, 422, second.Code)
	assert.Equal(t, 1, executions)
}

func TestIdempotencyWithoutKeyRunsEveryTime(t *testing.T) {
	store := newMemoryKeyStore()
	executions := 0
	router := newPaymentRouter(store, &executions)

	body := `{"amount":"10000","method":1}`
	postPayment(router, "", body)
	postPayment(router, "", body)

	assert.Equal(t, 2, executions)
	assert.Empty(t, store.keys)
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemoryKeyStore()
	executions := 0
	router := gin.New()
	router.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: store}))
	router.POST("/invoices/:id/payments", func(c *gin.Context) {
		executions++
		c.JSON(http.StatusConflict, gin.H{"message": "invoice is cancelled"})
	})

	body := `{"amount":"10000","method":1}`
	postPayment(router, "pay-once", body)
	second := postPayment(router, "pay-once", body)

	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, 2, executions, "failed attempts may be retried with the same key")
}
