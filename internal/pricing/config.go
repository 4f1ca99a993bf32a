package pricing

// Config keys understood by the engine. Rows are seeded into the
// pricing_config table on first migration; admins tune them live and the
// engine reads a fresh snapshot per quote.
const (
	KeyBaseResidential      = "base_price_residential"
	KeyPerBedroom           = "price_per_bedroom"
	KeyPerBathroom          = "price_per_bathroom"
	KeyPer1000SqFt          = "price_per_1000_sqft"
	KeyCommercialRate       = "commercial_rate_per_sqft"
	KeyCommercialMinimum    = "commercial_minimum"
	KeyPropertyMgmtEstimate = "property_mgmt_estimate"

	// KeyCommercialFreqDiscount gates whether the frequency discount
	// applies to the commercial path. The reference behavior exempts
	// commercial pricing; set to 1 to apply the discount there too.
	KeyCommercialFreqDiscount = "commercial_frequency_discount"

	// ExtraKeyPrefix namespaces flat add-on amounts, e.g. "extra_oven".
	ExtraKeyPrefix = "extra_"
)

// Defaults are the shipped values for every known config key.
var Defaults = map[string]float64{
	KeyBaseResidential:        100,
	KeyPerBedroom:             20,
	KeyPerBathroom:            30,
	KeyPer1000SqFt:            15,
	KeyCommercialRate:         0.12,
	KeyCommercialMinimum:      150,
	KeyPropertyMgmtEstimate:   200,
	KeyCommercialFreqDiscount: 0,
	ExtraKeyPrefix + "fridge":  25,
	ExtraKeyPrefix + "oven":    30,
	ExtraKeyPrefix + "windows": 40,
	ExtraKeyPrefix + "laundry": 20,
}

// Descriptions document each default key for the admin config listing.
var Descriptions = map[string]string{
	KeyBaseResidential:        "Flat callout fee for residential cleans",
	KeyPerBedroom:             "Added per bedroom",
	KeyPerBathroom:            "Added per bathroom",
	KeyPer1000SqFt:            "Added per 1000 sqft of residential floor space",
	KeyCommercialRate:         "Commercial rate per sqft",
	KeyCommercialMinimum:      "Commercial price floor",
	KeyPropertyMgmtEstimate:   "Flat property-management estimate",
	KeyCommercialFreqDiscount: "Set to 1 to apply frequency discounts to commercial quotes",
	ExtraKeyPrefix + "fridge":  "Inside-fridge add-on",
	ExtraKeyPrefix + "oven":    "Inside-oven add-on",
	ExtraKeyPrefix + "windows": "Interior windows add-on",
	ExtraKeyPrefix + "laundry": "Laundry add-on",
}

// Config is a point-in-time snapshot of the pricing configuration.
type Config map[string]float64

// Value returns the configured amount for a key, falling back to the
// shipped default, then to zero for keys the table has never seen.
func (c Config) Value(key string) float64 {
	if v, ok := c[key]; ok {
		return v
	}
	return Defaults[key]
}
