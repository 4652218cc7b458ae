package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "NEW"
	LeadStatusContacted   LeadStatus = "CONTACTED"
	LeadStatusQuoted      LeadStatus = "QUOTED"
	LeadStatusFollowUp    LeadStatus = "FOLLOW_UP"
	LeadStatusAttendEvent LeadStatus = "ATTEND_EVENT"
	LeadStatusWon         LeadStatus = "WON"
	LeadStatusLost        LeadStatus = "LOST"
)

func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQuoted, LeadStatusFollowUp,
		LeadStatusAttendEvent, LeadStatusWon, LeadStatusLost:
		return true
	}
	return false
}

// RequiresEvent reports whether a lead in this status must carry a linked event.
func (s LeadStatus) RequiresEvent() bool {
	return s == LeadStatusAttendEvent || s == LeadStatusWon
}

type LeadSource string

const (
	LeadSourceWebsiteForm LeadSource = "WEBSITE_FORM"
	LeadSourcePhone       LeadSource = "PHONE"
	LeadSourceEmail       LeadSource = "EMAIL"
	LeadSourceReferral    LeadSource = "REFERRAL"
	LeadSourceSocialMedia LeadSource = "SOCIAL_MEDIA"
)

func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWebsiteForm, LeadSourcePhone, LeadSourceEmail, LeadSourceReferral, LeadSourceSocialMedia:
		return true
	}
	return false
}

// Lead is an inbound client inquiry prior to becoming a booked event.
type Lead struct {
	ID                 string     `json:"id"`
	ClientName         string     `json:"client_name"`
	ClientEmail        string     `json:"client_email"`
	ClientPhone        string     `json:"client_phone"`
	EventName          string     `json:"event_name"`
	EventType          string     `json:"event_type"`
	EventDate          *time.Time `json:"event_date,omitempty"`
	EventLocation      string     `json:"event_location,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	Status             LeadStatus `json:"status"`
	Source             LeadSource `json:"source"`
	AssignedToID       *string    `json:"assigned_to_id,omitempty"`
	ConvertedToEventID *string    `json:"converted_to_event_id,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// NewLead builds a NEW lead from normalized intake data.
func NewLead(clientName, clientEmail, clientPhone, eventName, eventType string, source LeadSource) (*Lead, error) {
	lead := &Lead{
		ID:          uuid.New().String(),
		ClientName:  clientName,
		ClientEmail: clientEmail,
		ClientPhone: clientPhone,
		EventName:   eventName,
		EventType:   eventType,
		Status:      LeadStatusNew,
		Source:      source,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.ClientName == "" {
		return errors.New("client name is required")
	}
	if l.ClientEmail == "" {
		return errors.New("client email is required")
	}
	if l.ClientPhone == "" {
		return errors.New("client phone is required")
	}
	if l.EventType == "" {
		return errors.New("event type is required")
	}
	if !l.Status.IsValid() {
		return errors.New("invalid lead status")
	}
	if !l.Source.IsValid() {
		return errors.New("invalid lead source")
	}
	return nil
}
