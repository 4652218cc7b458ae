package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/infra/queue"
)

// IntakeLeadUseCase normalizes a public marketing-site submission into a lead
// row and fans out the new-lead notification through the queue.
type IntakeLeadUseCase struct {
	Leads    LeadRepository
	Producer QueueProducer
	Cache    ViewCache
	Logger   *zap.Logger
}

func NewIntakeLeadUseCase(leads LeadRepository, producer QueueProducer, cache ViewCache, logger *zap.Logger) *IntakeLeadUseCase {
	return &IntakeLeadUseCase{Leads: leads, Producer: producer, Cache: cache, Logger: logger}
}

type IntakeLeadInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`

	EventType string `json:"eventType"`

	FianceFirstName string `json:"fianceFirstName"`
	FianceLastName  string `json:"fianceLastName"`
	CompanyName     string `json:"companyName"`
	SchoolName      string `json:"schoolName"`

	EventDate     string `json:"eventDate"`
	EventLocation string `json:"eventLocation"`
	BookingStage  string `json:"bookingStage"`
	HearAboutUs   string `json:"hearAboutUs"`
	EventDetails  string `json:"eventDetails"`
	EventName     string `json:"eventName"`

	Service string `json:"service"`
	Source  string `json:"source"`
}

type IntakeLeadOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  string `json:"leadId"`
}

func (uc *IntakeLeadUseCase) Execute(ctx context.Context, input IntakeLeadInput) (*IntakeLeadOutput, error) {
	if errs := ValidateIntakeLeadInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: errs[0].Error()}
	}

	clientName := input.FirstName + " " + input.LastName

	eventName := input.EventName
	if eventName == "" {
		eventName = input.EventType + " - " + clientName
	}

	lead, err := entity.NewLead(clientName, input.Email, input.Phone, eventName, input.EventType, InferLeadSource(input.HearAboutUs))
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}

	if input.EventDate != "" {
		if d, perr := parseEventDate(input.EventDate); perr == nil {
			lead.EventDate = &d
		}
	}
	lead.EventLocation = input.EventLocation
	lead.Notes = buildIntakeNotes(input)

	if err := uc.Leads.Create(ctx, lead); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "failed to store lead: " + err.Error()}
	}

	uc.Cache.Invalidate(ViewLeads)

	// Notification fan-out is best effort: a broker hiccup must not turn a
	// captured lead into a 500 for the marketing site.
	if err := uc.Producer.PublishLeadCreated(ctx, queue.LeadCreatedPayload{
		LeadID:      lead.ID,
		ClientName:  lead.ClientName,
		ClientEmail: lead.ClientEmail,
		ClientPhone: lead.ClientPhone,
		EventName:   lead.EventName,
		EventType:   lead.EventType,
		Source:      string(lead.Source),
	}); err != nil {
		uc.Logger.Warn("lead.created publish failed", zap.String("lead_id", lead.ID), zap.Error(err))
	}

	uc.Logger.Info("lead captured",
		zap.String("lead_id", lead.ID),
		zap.String("event_type", lead.EventType),
		zap.String("source", string(lead.Source)))

	return &IntakeLeadOutput{
		Success: true,
		Message: "Lead received successfully",
		LeadID:  lead.ID,
	}, nil
}

// InferLeadSource buckets the free-text "how did you hear about us" answer.
// Unrecognized answers stay in the website-form bucket.
func InferLeadSource(hearAboutUs string) entity.LeadSource {
	answer := strings.ToLower(hearAboutUs)
	switch {
	case answer == "":
		return entity.LeadSourceWebsiteForm
	case strings.Contains(answer, "google"):
		return entity.LeadSourceWebsiteForm
	case containsAny(answer, "facebook", "instagram", "tiktok"):
		return entity.LeadSourceSocialMedia
	case containsAny(answer, "friend", "family", "vendor"):
		return entity.LeadSourceReferral
	default:
		return entity.LeadSourceWebsiteForm
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// buildIntakeNotes folds the optional form fields into labeled note sections,
// in the order the intake forms present them.
func buildIntakeNotes(input IntakeLeadInput) string {
	var sections []string

	if input.FianceFirstName != "" && input.FianceLastName != "" {
		sections = append(sections, "Fiancé: "+input.FianceFirstName+" "+input.FianceLastName)
	}
	if input.CompanyName != "" {
		sections = append(sections, "Company: "+input.CompanyName)
	}
	if input.SchoolName != "" {
		sections = append(sections, "School: "+input.SchoolName)
	}
	if input.BookingStage != "" {
		sections = append(sections, "Booking Stage: "+input.BookingStage)
	}
	if input.HearAboutUs != "" {
		sections = append(sections, "How they heard about us: "+input.HearAboutUs)
	}
	if input.EventDetails != "" {
		sections = append(sections, "Event Details: "+input.EventDetails)
	}
	if input.Service != "" {
		sections = append(sections, "Service: "+input.Service)
	}

	return strings.Join(sections, "\n\n")
}

func parseEventDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
