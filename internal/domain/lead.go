package domain

import (
	"encoding/json"
	"time"
)

// LeadStatus represents the follow-up state of a captured lead.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusBooked    LeadStatus = "booked"
)

// LeadEvent represents an action in a lead's lifecycle.
type LeadEvent string

const (
	// EventCaptured is published when a lead record is first created.
	// It is not a status transition.
	EventCaptured LeadEvent = "captured"

	EventContact LeadEvent = "contact"
	EventBook    LeadEvent = "book"
)

// StatusTransition defines a valid status change: an event moves a lead
// from Src to Dst.
type StatusTransition struct {
	Event LeadEvent
	Src   LeadStatus
	Dst   LeadStatus
}

// Transitions defines all valid status changes in the lead lifecycle.
// The progression is strictly forward: a booked lead never goes back to
// new. This is domain knowledge consumed by the FSM adapter.
var Transitions = []StatusTransition{
	{Event: EventContact, Src: StatusNew, Dst: StatusContacted},
	{Event: EventBook, Src: StatusContacted, Dst: StatusBooked},
	{Event: EventBook, Src: StatusNew, Dst: StatusBooked},
}

// LeadSource records how a lead entered the system.
type LeadSource string

const (
	SourceWizard LeadSource = "wizard"
	SourceHelp   LeadSource = "help_request"
)

// Lead is a captured prospective customer record derived from a wizard
// session. Details carries the full answers snapshot as JSON for audit
// and export.
type Lead struct {
	ID          int64
	Name        string
	Email       string
	Phone       string
	ServiceType ServiceType
	Zip         string
	City        string
	ServiceDate *time.Time
	TotalPrice  float64
	Status      LeadStatus
	Source      LeadSource
	Details     string
	CreatedAt   time.Time
}

// NewLead builds an unsaved lead from a completed answers snapshot.
// The repository assigns the ID on insert.
func NewLead(a Answers, total float64, source LeadSource) Lead {
	details, _ := json.Marshal(a)
	return Lead{
		Name:        a.Name,
		Email:       a.Email,
		Phone:       a.Phone,
		ServiceType: a.ServiceType,
		Zip:         a.Zip,
		City:        a.City,
		TotalPrice:  total,
		Status:      StatusNew,
		Source:      source,
		Details:     string(details),
		CreatedAt:   time.Now().UTC(),
	}
}
