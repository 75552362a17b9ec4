package partner

import (
	"testing"

	"github.com/partnerbi/bibot/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidINN(t *testing.T) {
	tests := []struct {
		inn  string
		want bool
	}{
		{"7707083893", true},   // legal entity, 10 digits
		{"770708389301", true}, // sole proprietor, 12 digits
		{"", false},
		{"123", false},
		{"77070838931", false}, // 11 digits
		{"77070838ab", false},
		{"7707083893 ", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidINN(tt.inn), "inn %q", tt.inn)
	}
}

func TestNewPartner(t *testing.T) {
	t.Run("creates a valid partner", func(t *testing.T) {
		p, err := NewPartner("7707083893", "ПАО Сбербанк", PartnerTypeStrategic)
		require.NoError(t, err)
		assert.Equal(t, "7707083893", p.INN)
		assert.Equal(t, PartnerTypeStrategic, p.Type)
	})

	t.Run("rejects invalid INN", func(t *testing.T) {
		_, err := NewPartner("123", "ООО Ромашка", PartnerTypeCurrent)
		assert.ErrorIs(t, err, shared.ErrInvalidINN)
	})

	t.Run("rejects empty legal name", func(t *testing.T) {
		_, err := NewPartner("7707083893", "", PartnerTypeCurrent)
		require.Error(t, err)
	})

	t.Run("rejects unknown partner type", func(t *testing.T) {
		_, err := NewPartner("7707083893", "ООО Ромашка", PartnerType("supplier"))
		require.Error(t, err)
	})
}

func TestNewTurnover(t *testing.T) {
	t.Run("creates a quarterly record", func(t *testing.T) {
		tv, err := NewTurnover("7707083893", 2024, 1, decimal.RequireFromString("100.00"))
		require.NoError(t, err)
		assert.Equal(t, 2024, tv.Year)
		assert.Equal(t, 1, tv.Quarter)
	})

	t.Run("accepts quarter zero for yearly totals", func(t *testing.T) {
		_, err := NewTurnover("7707083893", 2024, 0, decimal.RequireFromString("100.00"))
		assert.NoError(t, err)
	})

	t.Run("rejects quarter out of range", func(t *testing.T) {
		_, err := NewTurnover("7707083893", 2024, 5, decimal.RequireFromString("100.00"))
		assert.Error(t, err)
	})

	t.Run("rejects implausible year", func(t *testing.T) {
		_, err := NewTurnover("7707083893", 24, 1, decimal.RequireFromString("100.00"))
		assert.Error(t, err)
	})
}

func TestAddressList_ValueAndScan(t *testing.T) {
	t.Run("round-trips through JSON", func(t *testing.T) {
		addrs := AddressList{"117312, г. Москва, ул. Вавилова, д. 19"}

		val, err := addrs.Value()
		require.NoError(t, err)

		var scanned AddressList
		require.NoError(t, scanned.Scan(val))
		assert.Equal(t, addrs, scanned)
	})

	t.Run("nil list stores an empty array", func(t *testing.T) {
		var addrs AddressList
		val, err := addrs.Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", val)
	})

	t.Run("scans NULL as nil", func(t *testing.T) {
		scanned := AddressList{"existing"}
		require.NoError(t, scanned.Scan(nil))
		assert.Nil(t, scanned)
	})

	t.Run("rejects unsupported source types", func(t *testing.T) {
		var scanned AddressList
		assert.Error(t, scanned.Scan(42))
	})
}
