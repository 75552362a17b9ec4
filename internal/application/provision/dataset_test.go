package provision

import (
	"testing"

	"github.com/partnerbi/bibot/internal/domain/partner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDataset(t *testing.T) {
	dataset := DefaultDataset()
	require.NotEmpty(t, dataset)

	seen := make(map[string]bool)
	types := make(map[partner.PartnerType]bool)

	for _, entry := range dataset {
		p := entry.Partner

		assert.True(t, partner.ValidINN(p.INN), "dataset INN %q must be valid", p.INN)
		assert.False(t, seen[p.INN], "dataset INN %q must be unique", p.INN)
		seen[p.INN] = true

		assert.NotEmpty(t, p.LegalName, "partner %s must have a legal name", p.INN)
		types[p.Type] = true

		for _, tv := range entry.Turnovers {
			assert.Equal(t, p.INN, tv.PartnerINN,
				"turnover rows must reference their own partner")
			assert.GreaterOrEqual(t, tv.Year, 2000)
			assert.True(t, tv.Quarter >= 0 && tv.Quarter <= 4)
			assert.True(t, tv.Revenue.IsPositive(), "turnover revenue must be positive")
		}
	}

	// The shipped dataset exercises every partner classification so
	// dashboards have representative rows after a fresh deploy.
	for _, pt := range []partner.PartnerType{
		partner.PartnerTypeStrategic,
		partner.PartnerTypeCurrent,
		partner.PartnerTypePotential,
		partner.PartnerTypeBlocked,
		partner.PartnerTypeVIP,
	} {
		assert.True(t, types[pt], "dataset must contain a %s partner", pt)
	}
}
