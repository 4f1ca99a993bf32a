package pricing_test

import (
	"strconv"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/tidybook/tidybook/internal/domain"
	"github.com/tidybook/tidybook/internal/pricing"
)

// Property: the residential standard base is exactly the additive formula
// flatFee + 20·bedrooms + 30·bathrooms + 15·(sqft/1000) for any
// non-negative inputs under the default configuration.
func TestProperty_BasePriceMatchesAdditiveFormula(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	cfg := defaults()

	properties.Property("standard base equals the additive formula", prop.ForAll(
		func(bedrooms, bathrooms, sqft int) bool {
			want := 100 + 20*float64(bedrooms) + 30*float64(bathrooms) + 15*float64(sqft)/1000
			return pricing.BasePrice(cfg, bedrooms, bathrooms, sqft, domain.IntensityStandard) == want
		},
		gen.IntRange(0, 12),
		gen.IntRange(0, 8),
		gen.IntRange(0, 20000),
	))

	properties.Property("deep is exactly 1.5× standard", prop.ForAll(
		func(bedrooms, bathrooms, sqft int) bool {
			standard := pricing.BasePrice(cfg, bedrooms, bathrooms, sqft, domain.IntensityStandard)
			return pricing.BasePrice(cfg, bedrooms, bathrooms, sqft, domain.IntensityDeep) == 1.5*standard
		},
		gen.IntRange(0, 12),
		gen.IntRange(0, 8),
		gen.IntRange(0, 20000),
	))

	properties.TestingRun(t)
}

// Property: growing a home never shrinks the quote. Holding everything
// else fixed, a larger square footage yields a total that is at least as
// large.
func TestProperty_ResidentialTotalMonotonicInSquareFeet(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	cfg := defaults()

	frequencies := gen.OneConstOf(
		domain.FrequencyOneTime,
		domain.FrequencyWeekly,
		domain.FrequencyBiWeekly,
		domain.FrequencyMonthly,
	)

	properties.Property("total never decreases as sqft grows", prop.ForAll(
		func(sqft, delta int, freq domain.Frequency) bool {
			smaller := domain.Answers{
				ServiceType: domain.ServiceResidential,
				Bedrooms:    2, Bathrooms: 1, SquareFeet: sqft,
				Intensity: domain.IntensityStandard,
				Frequency: freq,
			}
			larger := smaller
			larger.SquareFeet = sqft + delta

			return pricing.Total(larger, cfg, nil) >= pricing.Total(smaller, cfg, nil)
		},
		gen.IntRange(0, 10000),
		gen.IntRange(0, 10000),
		frequencies,
	))

	properties.TestingRun(t)
}

// Property: commercial quotes never fall below the configured floor, no
// matter the footage or cadence.
func TestProperty_CommercialTotalRespectsFloor(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)
	cfg := defaults()
	floor := cfg.Value(pricing.KeyCommercialMinimum)

	frequencies := gen.OneConstOf(
		domain.FrequencyOneTime,
		domain.FrequencyWeekly,
		domain.FrequencyBiWeekly,
		domain.FrequencyMonthly,
	)

	properties.Property("total >= commercial minimum", prop.ForAll(
		func(sqft int, freq domain.Frequency) bool {
			a := domain.Answers{
				ServiceType:    domain.ServiceCommercial,
				CommercialSqFt: strconv.Itoa(sqft),
				Frequency:      freq,
			}
			return pricing.Total(a, cfg, nil) >= floor
		},
		gen.IntRange(0, 50000),
		frequencies,
	))

	properties.TestingRun(t)
}

// Property: a quote is a pure function of its inputs; recomputing with an
// identical snapshot and config can never drift.
func TestProperty_TotalIsPure(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	cfg := defaults()

	properties.Property("repeat computation is identical", prop.ForAll(
		func(bedrooms, bathrooms, sqft int) bool {
			a := domain.Answers{
				ServiceType: domain.ServiceResidential,
				Bedrooms:    bedrooms, Bathrooms: bathrooms, SquareFeet: sqft,
				Intensity: domain.IntensityMove,
				Frequency: domain.FrequencyMonthly,
			}
			return pricing.Total(a, cfg, nil) == pricing.Total(a, cfg, nil)
		},
		gen.IntRange(0, 12),
		gen.IntRange(0, 8),
		gen.IntRange(0, 20000),
	))

	properties.TestingRun(t)
}
