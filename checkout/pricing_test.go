package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveUnitPrice(t *testing.T) {
	surcharges := DefaultAddonSurcharges()

	line := CartLine{UnitPrice: 10.00, Quantity: 2, Addons: []string{"Fried Egg"}}
	assert.InDelta(t, 11.50, EffectiveUnitPrice(line, surcharges), 0.001)

	line = CartLine{UnitPrice: 12.99, Addons: []string{"Extra Meat", "Spring Roll"}}
	assert.InDelta(t, 12.99+3.50+2.99, EffectiveUnitPrice(line, surcharges), 0.001)

	line = CartLine{UnitPrice: 9.50}
	assert.InDelta(t, 9.50, EffectiveUnitPrice(line, surcharges), 0.001)
}

func TestUnknownAddonContributesNothing(t *testing.T) {
	surcharges := DefaultAddonSurcharges()
	line := CartLine{UnitPrice: 10.00, Addons: []string{"Nonexistent"}}
	assert.InDelta(t, 10.00, EffectiveUnitPrice(line, surcharges), 0.001)

	// mixing known and unknown add-ons counts only the known one
	line.Addons = []string{"Nonexistent", "Fried Egg"}
	assert.InDelta(t, 11.50, EffectiveUnitPrice(line, surcharges), 0.001)
}

func TestCents(t *testing.T) {
	assert.Equal(t, int64(1150), Cents(11.50))
	assert.Equal(t, int64(399), Cents(3.99))
	// round, not truncate
	assert.Equal(t, int64(1299), Cents(12.989999999999998))
}

func TestLineDescription(t *testing.T) {
	line := CartLine{Description: "Rare beef pho", SpiceLevel: "Hot", Addons: []string{"Fried Egg", "Extra Noodles"}}
	assert.Equal(t, "Rare beef pho | Spice: Hot | Add-ons: Fried Egg, Extra Noodles", lineDescription(line))

	assert.Equal(t, "Spice: Mild", lineDescription(CartLine{SpiceLevel: "Mild"}))
	assert.Equal(t, "", lineDescription(CartLine{}))
}
