// Package wizard drives the multi-step booking flow: a declarative step
// graph plus a small engine that walks it. The graph is pure data and
// pure functions over the answers snapshot; it performs no I/O.
package wizard

import "github.com/tidybook/tidybook/internal/domain"

// Step identifies one screen of the booking wizard.
type Step string

const (
	StepZip               Step = "zip"
	StepComingSoon        Step = "coming_soon"
	StepNotAvailable      Step = "not_available"
	StepService           Step = "service_type"
	StepHomeDetails       Step = "home_details"
	StepCommercialDetails Step = "commercial_details"
	StepIntensity         Step = "intensity"
	StepFrequency         Step = "frequency"
	StepExtras            Step = "extras"
	StepContact           Step = "contact"
	StepReview            Step = "review"
	StepConfirmation      Step = "confirmation"
)

// InitialStep is where every session starts and the default guard
// fallback.
const InitialStep = StepZip

// Definition declares how one step behaves.
type Definition struct {
	// Guard decides whether the step may be shown for the current
	// answers. A nil guard means always reachable.
	Guard func(domain.Answers) bool

	// Fallback is where the engine redirects when Guard fails. The zero
	// value means InitialStep.
	Fallback Step

	// Next resolves the forward transition for the current answers. An
	// empty result means the step is terminal: no forward navigation.
	Next func(domain.Answers) Step
}

// Graph is the static flow of the booking wizard. Service-type selection
// early in the flow decides which sizing steps are visited; the paths
// converge again before contact capture.
var Graph = map[Step]Definition{
	StepZip: {
		Next: func(a domain.Answers) Step {
			switch a.AreaStatus {
			case domain.AreaActive:
				return StepService
			case domain.AreaComingSoon:
				return StepComingSoon
			case domain.AreaUnavailable:
				return StepNotAvailable
			}
			return ""
		},
	},
	StepComingSoon: {
		Guard: func(a domain.Answers) bool { return a.AreaStatus == domain.AreaComingSoon },
	},
	StepNotAvailable: {
		Guard: func(a domain.Answers) bool { return a.AreaStatus == domain.AreaUnavailable },
	},
	StepService: {
		Guard: func(a domain.Answers) bool { return a.AreaStatus == domain.AreaActive },
		Next: func(a domain.Answers) Step {
			switch a.ServiceType {
			case domain.ServiceResidential:
				return StepHomeDetails
			case domain.ServiceCommercial:
				return StepCommercialDetails
			case domain.ServicePropertyMgmt:
				// Flat estimate, nothing to size or schedule.
				return StepContact
			}
			return ""
		},
	},
	StepHomeDetails: {
		Guard:    func(a domain.Answers) bool { return a.ServiceType == domain.ServiceResidential },
		Fallback: StepService,
		Next:     func(domain.Answers) Step { return StepIntensity },
	},
	StepCommercialDetails: {
		Guard:    func(a domain.Answers) bool { return a.ServiceType == domain.ServiceCommercial },
		Fallback: StepService,
		Next:     func(domain.Answers) Step { return StepFrequency },
	},
	StepIntensity: {
		Guard: func(a domain.Answers) bool {
			return a.ServiceType == domain.ServiceResidential && a.HasResidentialDetails()
		},
		Fallback: StepHomeDetails,
		Next:     func(domain.Answers) Step { return StepFrequency },
	},
	StepFrequency: {
		Guard: func(a domain.Answers) bool {
			switch a.ServiceType {
			case domain.ServiceResidential:
				return a.HasResidentialDetails()
			case domain.ServiceCommercial:
				return a.HasCommercialDetails()
			}
			return false
		},
		Fallback: StepService,
		Next: func(a domain.Answers) Step {
			if a.ServiceType == domain.ServiceResidential {
				return StepExtras
			}
			return StepContact
		},
	},
	StepExtras: {
		Guard:    func(a domain.Answers) bool { return a.ServiceType == domain.ServiceResidential },
		Fallback: StepService,
		Next:     func(domain.Answers) Step { return StepContact },
	},
	StepContact: {
		Guard:    func(a domain.Answers) bool { return a.ServiceType != "" },
		Fallback: StepService,
		Next: func(a domain.Answers) Step {
			if !a.HasContact() {
				return ""
			}
			return StepReview
		},
	},
	StepReview: {
		Guard:    func(a domain.Answers) bool { return a.HasContact() },
		Fallback: StepContact,
		// Submission moves to confirmation explicitly, not via Next.
	},
	StepConfirmation: {
		Guard: func(a domain.Answers) bool { return a.LeadID != 0 },
	},
}

// linearOrder is the cosmetic progress ordering shown to the user. Steps
// outside it (terminal and error screens) report 100%.
var linearOrder = []Step{
	StepZip,
	StepService,
	StepHomeDetails,
	StepIntensity,
	StepFrequency,
	StepExtras,
	StepContact,
	StepReview,
}

// Progress reports the percentage for a step within the linear ordering.
func Progress(s Step) int {
	for i, step := range linearOrder {
		if step == s {
			return (i + 1) * 100 / (len(linearOrder) - 1)
		}
	}
	return 100
}
