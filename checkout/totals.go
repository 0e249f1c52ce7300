package checkout

import "github.com/shopspring/decimal"

// French VAT on scooter parts.
var taxRate = decimal.NewFromFloat(0.20)

// Delivery fee table. Must match what the storefront displays; the
// server values are the ones that count.
var deliveryFees = map[string]decimal.Decimal{
	"standard": decimal.NewFromFloat(4.90),
	"express":  decimal.NewFromFloat(9.90),
	"relay":    decimal.NewFromFloat(3.90),
}

// Totals are all tax-exclusive (HT) except Total, which is TTC.
// LoyaltyPoints is the grand total floored to whole euros.
type Totals struct {
	Subtotal      float64
	Tax           float64
	DeliveryFee   float64
	Total         float64
	LoyaltyPoints int
}

// ComputeTotals is a pure function of the validated lines and the chosen
// delivery method. Line products are summed exactly and the subtotal is
// rounded once at the end (half-up, 2 decimals) so per-line rounding
// drift cannot accumulate.
func ComputeTotals(lines []ValidatedLine, deliveryMethod string) (Totals, error) {
	fee, ok := deliveryFees[deliveryMethod]
	if !ok {
		return Totals{}, ErrUnknownDeliveryMethod
	}

	sum := decimal.Zero
	for _, line := range lines {
		price := decimal.NewFromFloat(line.UnitPrice)
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	subtotal := sum.Round(2)
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax).Add(fee).Round(2)

	return Totals{
		Subtotal:      subtotal.InexactFloat64(),
		Tax:           tax.InexactFloat64(),
		DeliveryFee:   fee.InexactFloat64(),
		Total:         total.InexactFloat64(),
		LoyaltyPoints: int(total.Floor().IntPart()),
	}, nil
}

// LineTotal is the frozen per-line amount stored on an order item.
func LineTotal(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		Round(2).
		InexactFloat64()
}

// TTCUnitPrice converts a tax-exclusive catalog price to the
// tax-inclusive unit price shown on the hosted payment page.
func TTCUnitPrice(unitPrice float64) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(1).Add(taxRate)).
		Round(2).
		InexactFloat64()
}

// DeliveryMethods lists the accepted delivery method names.
func DeliveryMethods() []string {
	return []string{"standard", "express", "relay"}
}

// DeliveryFee returns the flat fee for a delivery method.
func DeliveryFee(method string) (float64, error) {
	fee, ok := deliveryFees[method]
	if !ok {
		return 0, ErrUnknownDeliveryMethod
	}
	return fee.InexactFloat64(), nil
}
