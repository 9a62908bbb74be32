package order

import (
	"math"
)

const (
	DiscountNone       = ""
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"

	// Each presented loyalty card entitles its holder to 20% off their
	// even share of the bill.
	cardDiscountRate = 0.20
)

// Bill is the computed monetary breakdown persisted on the order.
// Discounts are rounded to two decimals at each step and the total never
// goes negative.
type Bill struct {
	Subtotal       float64
	CardDiscount   float64
	ManualDiscount float64
	ServiceCharge  float64
	Total          float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CardDiscount computes the loyalty-card discount: subtotal × 20% ÷
// people × cards, rounded to two decimals. Zero people or zero cards
// yields zero.
func CardDiscount(subtotal float64, people, cards int) float64 {
	if people <= 0 || cards <= 0 {
		return 0
	}
	return round2(subtotal * cardDiscountRate / float64(people) * float64(cards))
}

// ManualDiscount computes the staff-selected discount, either a
// percentage of the subtotal or a flat amount.
func ManualDiscount(subtotal float64, kind string, value float64) (float64, error) {
	switch kind {
	case DiscountNone:
		return 0, nil
	case DiscountPercentage:
		if value < 0 || value > 100 {
			return 0, ErrInvalidDiscount
		}
		return round2(subtotal * value / 100), nil
	case DiscountFixed:
		if value < 0 {
			return 0, ErrInvalidDiscount
		}
		return round2(value), nil
	default:
		return 0, ErrInvalidDiscount
	}
}

// ServiceCharge computes the hotel room-billing surcharge as a percentage
// of the subtotal.
func ServiceCharge(subtotal, pct float64) float64 {
	if pct <= 0 {
		return 0
	}
	return round2(subtotal * pct / 100)
}

// ComputeBill assembles the full breakdown. Card and manual discounts are
// independent and additive.
func ComputeBill(subtotal float64, people, cards int, discountKind string, discountValue float64, serviceChargePct float64) (Bill, error) {
	bill := Bill{Subtotal: round2(subtotal)}

	bill.CardDiscount = CardDiscount(bill.Subtotal, people, cards)

	manual, err := ManualDiscount(bill.Subtotal, discountKind, discountValue)
	if err != nil {
		return Bill{}, err
	}
	bill.ManualDiscount = manual

	bill.ServiceCharge = ServiceCharge(bill.Subtotal, serviceChargePct)

	total := bill.Subtotal + bill.ServiceCharge - bill.CardDiscount - bill.ManualDiscount
	if total < 0 {
		total = 0
	}
	bill.Total = round2(total)

	return bill, nil
}
