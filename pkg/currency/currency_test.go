package currency_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaug/opshub-api/pkg/currency"
)

func TestNewFormatter_InvalidCode(t *testing.T) {
	_, err := currency.NewFormatter("NOPE")
	assert.Error(t, err)
}

func TestFormatter_Format(t *testing.T) {
	f, err := currency.NewFormatter("USD")
	require.NoError(t, err)

	assert.Equal(t, "USD", f.Code())

	out := f.Format(decimal.NewFromInt(1500))
	assert.Contains(t, out, "1,500")
}

func TestFormatter_INR(t *testing.T) {
	f, err := currency.NewFormatter("INR")
	require.NoError(t, err)
	assert.Equal(t, "INR", f.Code())
	assert.NotEmpty(t, f.Format(decimal.NewFromInt(24780)))
}
