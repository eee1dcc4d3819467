package checkout

import (
	"math"
	"strings"
)

// DefaultAddonSurcharges maps each known add-on to its fixed surcharge.
// An add-on name not in the table contributes nothing to the price; the
// cart is not rejected for it.
func DefaultAddonSurcharges() map[string]float64 {
	return map[string]float64{
		"Extra Meat":       3.50,
		"Extra Vegetables": 2.00,
		"Extra Noodles":    2.50,
		"Fried Egg":        1.50,
		"Spring Roll":      2.99,
	}
}

// DefaultDeliveryFee is the flat fee appended to every checkout session.
const DefaultDeliveryFee = 3.99

// EffectiveUnitPrice is the per-unit price of a cart line including its
// add-on surcharges.
func EffectiveUnitPrice(line CartLine, surcharges map[string]float64) float64 {
	price := line.UnitPrice
	for _, addon := range line.Addons {
		price += surcharges[addon]
	}
	return price
}

// Cents converts a dollar amount to the integer cents the processor
// expects.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// lineDescription folds the customizations into the processor-visible
// line description.
func lineDescription(line CartLine) string {
	desc := line.Description
	if line.SpiceLevel != "" {
		desc += " | Spice: " + line.SpiceLevel
	}
	if len(line.Addons) > 0 {
		desc += " | Add-ons: " + strings.Join(line.Addons, ", ")
	}
	return strings.TrimSpace(strings.TrimPrefix(desc, " |"))
}
