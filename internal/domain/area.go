package domain

// AreaStatus classifies a zip code against the serviced territory.
type AreaStatus string

const (
	AreaActive      AreaStatus = "active"
	AreaComingSoon  AreaStatus = "coming_soon"
	AreaUnavailable AreaStatus = "unavailable"
)

// Availability is the result of a service-area lookup. City and State are
// only set when the zip is known.
type Availability struct {
	Status AreaStatus
	City   string
	State  string
}
