package mail

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/tridentevents/crm-api/internal/entity"
	"github.com/tridentevents/crm-api/internal/infra/queue"
)

var leadNotificationTmpl = template.Must(template.New("lead").Parse(`
<h2>New lead: {{.ClientName}}</h2>
<p><strong>Event:</strong> {{.EventName}} ({{.EventType}})</p>
<p><strong>Email:</strong> {{.ClientEmail}}<br>
<strong>Phone:</strong> {{.ClientPhone}}<br>
<strong>Source:</strong> {{.Source}}</p>
<p>Open the CRM to review and assign this lead.</p>
`))

var digestTmpl = template.Must(template.New("digest").Parse(`
<h2>Follow-up digest</h2>
<p>These leads have been sitting in FOLLOW_UP for over a week:</p>
<ul>
{{range .}}<li>{{.ClientName}} &mdash; {{.EventName}} ({{.AgeDays}} days)</li>
{{end}}</ul>
`))

func NewSender(host string, port int, user, password, from string) *Sender {
	return &Sender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SalesNotifier binds the sender to the sales inbox so it can sit behind the
// queue worker's Notifier interface.
type SalesNotifier struct {
	Sender *Sender
	Inbox  string
}

func (n *SalesNotifier) NotifyLeadCreated(payload queue.LeadCreatedPayload) error {
	return n.Sender.SendLeadNotification(n.Inbox, payload)
}

func (s *Sender) SendLeadNotification(to string, payload queue.LeadCreatedPayload) error {
	data := leadNotificationData{
		ClientName:  payload.ClientName,
		ClientEmail: payload.ClientEmail,
		ClientPhone: payload.ClientPhone,
		EventName:   payload.EventName,
		EventType:   payload.EventType,
		Source:      payload.Source,
	}

	var body bytes.Buffer
	if err := leadNotificationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render lead notification: %w", err)
	}

	subject := fmt.Sprintf("New lead: %s (%s)", payload.ClientName, payload.EventType)
	return s.send(to, subject, body.String())
}

func (s *Sender) SendFollowUpDigest(to string, leads []*entity.Lead) error {
	if len(leads) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]digestLead, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, digestLead{
			ClientName: l.ClientName,
			EventName:  l.EventName,
			Status:     string(l.Status),
			AgeDays:    int(now.Sub(l.UpdatedAt).Hours() / 24),
		})
	}

	var body bytes.Buffer
	if err := digestTmpl.Execute(&body, rows); err != nil {
		return fmt.Errorf("failed to render digest: %w", err)
	}

	subject := fmt.Sprintf("Follow-up digest: %d lead(s) waiting", len(leads))
	return s.send(to, subject, body.String())
}

func (s *Sender) send(to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("SMTP send failed: %w", err)
	}
	return nil
}
