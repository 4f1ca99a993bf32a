// Package pricing computes quote estimates from wizard answers and a
// live configuration snapshot. Everything here is a pure function: the
// same answers and config always produce the same number, and nothing is
// rounded until the very end of the pipeline.
package pricing

import (
	"math"

	"github.com/tidybook/tidybook/internal/domain"
)

// Intensity multipliers and frequency discounts are fixed business
// constants, not config rows, matching the reference behavior.
var intensityMultipliers = map[domain.Intensity]float64{
	domain.IntensityStandard: 1.0,
	domain.IntensityDeep:     1.5,
	domain.IntensityMove:     1.8,
}

var frequencyDiscounts = map[domain.Frequency]float64{
	domain.FrequencyOneTime:  0,
	domain.FrequencyWeekly:   0.20,
	domain.FrequencyBiWeekly: 0.15,
	domain.FrequencyMonthly:  0.10,
}

// intensityMultiplier degrades unknown values to the neutral ×1.0 rather
// than failing; a plain estimate beats a broken wizard.
func intensityMultiplier(i domain.Intensity) float64 {
	if m, ok := intensityMultipliers[i]; ok {
		return m
	}
	return 1.0
}

// frequencyDiscount degrades unknown values to no discount.
func frequencyDiscount(f domain.Frequency) float64 {
	return frequencyDiscounts[f]
}

// BasePrice assembles the residential additive base and applies the
// intensity multiplier. The result is unrounded.
func BasePrice(cfg Config, bedrooms, bathrooms, squareFeet int, intensity domain.Intensity) float64 {
	base := cfg.Value(KeyBaseResidential) +
		float64(bedrooms)*cfg.Value(KeyPerBedroom) +
		float64(bathrooms)*cfg.Value(KeyPerBathroom) +
		float64(squareFeet)/1000*cfg.Value(KeyPer1000SqFt)
	return base * intensityMultiplier(intensity)
}

// Subtotal computes the unrounded pre-promotion amount for an answers
// snapshot. Unknown service types degrade to the residential base
// computation.
func Subtotal(a domain.Answers, cfg Config) float64 {
	var total float64

	switch a.ServiceType {
	case domain.ServiceCommercial:
		total = a.CommercialSquareFeet() * cfg.Value(KeyCommercialRate)
		if floor := cfg.Value(KeyCommercialMinimum); total < floor {
			total = floor
		}
		if cfg.Value(KeyCommercialFreqDiscount) != 0 {
			total *= 1 - frequencyDiscount(a.Frequency)
		}
	case domain.ServicePropertyMgmt:
		total = cfg.Value(KeyPropertyMgmtEstimate)
	default:
		total = BasePrice(cfg, a.Bedrooms, a.Bathrooms, a.SquareFeet, a.Intensity)
		total *= 1 - frequencyDiscount(a.Frequency)
	}

	for _, id := range a.Extras {
		total += cfg.Value(ExtraKeyPrefix + id)
	}

	return total
}

// Total applies the optional promotion on top of the subtotal and rounds
// once, at the very end. This is the number shown to the customer and
// persisted on the lead.
func Total(a domain.Answers, cfg Config, promo *domain.Promotion) float64 {
	total := Subtotal(a, cfg)
	if promo != nil {
		total -= promo.Discount(total)
	}
	if total < 0 {
		total = 0
	}
	return math.Round(total)
}
