package domain

import (
	"slices"
	"strconv"
	"strings"
)

// ServiceType identifies the kind of cleaning service being quoted.
type ServiceType string

const (
	ServiceResidential  ServiceType = "residential"
	ServiceCommercial   ServiceType = "commercial"
	ServicePropertyMgmt ServiceType = "property_mgmt"
)

// Intensity is the cleaning depth selector. It drives a price multiplier.
type Intensity string

const (
	IntensityStandard Intensity = "standard"
	IntensityDeep     Intensity = "deep"
	IntensityMove     Intensity = "move"
)

// Frequency is the recurrence cadence. It drives a price discount.
type Frequency string

const (
	FrequencyOneTime  Frequency = "onetime"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiWeekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// Answers is the accumulated form state of one wizard session. It is an
// immutable snapshot: navigation and pricing take it by value, and edits
// go through AnswersPatch.Apply which returns a new snapshot. Fields are
// only ever set or overwritten, never cleared, while a session is live.
type Answers struct {
	ServiceType    ServiceType
	Intensity      Intensity
	Frequency      Frequency
	Bedrooms       int
	Bathrooms      int
	SquareFeet     int
	CommercialSqFt string // string-encoded, as entered in the form
	Zip            string
	City           string
	State          string
	AreaStatus     AreaStatus
	Name           string
	Email          string
	Phone          string
	Extras         []string
	PromoCode      string
	Total          float64
	LeadID         int64
}

// AnswersPatch carries a partial edit of a session's answers. Nil fields
// are left untouched.
type AnswersPatch struct {
	ServiceType    *ServiceType
	Intensity      *Intensity
	Frequency      *Frequency
	Bedrooms       *int
	Bathrooms      *int
	SquareFeet     *int
	CommercialSqFt *string
	Zip            *string
	Name           *string
	Email          *string
	Phone          *string
	Extras         []string
	PromoCode      *string
}

// Apply merges the patch into a snapshot and returns the result. The
// receiver snapshot is not modified.
func (p AnswersPatch) Apply(a Answers) Answers {
	if p.ServiceType != nil {
		a.ServiceType = *p.ServiceType
	}
	if p.Intensity != nil {
		a.Intensity = *p.Intensity
	}
	if p.Frequency != nil {
		a.Frequency = *p.Frequency
	}
	if p.Bedrooms != nil {
		a.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		a.Bathrooms = *p.Bathrooms
	}
	if p.SquareFeet != nil {
		a.SquareFeet = *p.SquareFeet
	}
	if p.CommercialSqFt != nil {
		a.CommercialSqFt = *p.CommercialSqFt
	}
	if p.Zip != nil {
		a.Zip = strings.TrimSpace(*p.Zip)
	}
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Extras != nil {
		a.Extras = slices.Clone(p.Extras)
	}
	if p.PromoCode != nil {
		a.PromoCode = *p.PromoCode
	}
	return a
}

// CommercialSquareFeet parses the string-encoded commercial footage.
// Unparseable input counts as zero.
func (a Answers) CommercialSquareFeet() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(a.CommercialSqFt), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// HasResidentialDetails reports whether the residential sizing step has
// been filled in.
func (a Answers) HasResidentialDetails() bool {
	return a.Bedrooms > 0 || a.Bathrooms > 0 || a.SquareFeet > 0
}

// HasCommercialDetails reports whether commercial footage has been entered.
func (a Answers) HasCommercialDetails() bool {
	return a.CommercialSquareFeet() > 0
}

// HasContact reports whether enough contact information has been captured
// to create a lead.
func (a Answers) HasContact() bool {
	return a.Name != "" && (a.Email != "" || a.Phone != "")
}
