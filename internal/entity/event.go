package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventStatus string

const (
	EventStatusScheduled  EventStatus = "SCHEDULED"
	EventStatusInProgress EventStatus = "IN_PROGRESS"
	EventStatusCompleted  EventStatus = "COMPLETED"
	EventStatusCancelled  EventStatus = "CANCELLED"
)

func (s EventStatus) IsValid() bool {
	switch s {
	case EventStatusScheduled, EventStatusInProgress, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is a scheduled, staffed engagement with a client.
type Event struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          string      `json:"type"`
	Date          time.Time   `json:"date"`
	StartTime     string      `json:"start_time"` // "15:04"
	EndTime       string      `json:"end_time"`
	Location      string      `json:"location"`
	Address       string      `json:"address,omitempty"`
	City          string      `json:"city,omitempty"`
	ClientName    string      `json:"client_name"`
	ClientEmail   string      `json:"client_email,omitempty"`
	ClientPhone   string      `json:"client_phone,omitempty"`
	GuestCount    *int        `json:"guest_count,omitempty"`
	Services      []string    `json:"services"`
	TotalPrice    *float64    `json:"total_price,omitempty"`
	Deposit       *float64    `json:"deposit,omitempty"`
	IsPaid        bool        `json:"is_paid"`
	Notes         string      `json:"notes,omitempty"`
	InternalNotes string      `json:"internal_notes,omitempty"`
	Status        EventStatus `json:"status"`
	LeadID        *string     `json:"lead_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

const (
	DefaultEventLocation  = "TBD"
	DefaultEventStartTime = "18:00"
	DefaultEventEndTime   = "23:00"
)

// NewEventFromLead copies the booking details a lead carries into a fresh
// SCHEDULED event, filling the gaps with the conversion defaults.
func NewEventFromLead(lead *Lead) *Event {
	date := time.Now()
	if lead.EventDate != nil {
		date = *lead.EventDate
	}

	location := lead.EventLocation
	if location == "" {
		location = DefaultEventLocation
	}

	name := lead.EventName
	if name == "" {
		name = lead.EventType + " - " + lead.ClientName
	}

	leadID := lead.ID
	return &Event{
		ID:          uuid.New().String(),
		Name:        name,
		Type:        lead.EventType,
		Date:        date,
		StartTime:   DefaultEventStartTime,
		EndTime:     DefaultEventEndTime,
		Location:    location,
		ClientName:  lead.ClientName,
		ClientEmail: lead.ClientEmail,
		ClientPhone: lead.ClientPhone,
		Services:    []string{},
		Notes:       lead.Notes,
		Status:      EventStatusScheduled,
		LeadID:      &leadID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// EventAssignment links a staff member to an event with a role label.
type EventAssignment struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	IsConfirmed bool      `json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
}
