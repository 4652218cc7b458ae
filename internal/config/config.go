package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/tridentevents/crm-api/internal/entity"
)

// Config carries everything the service reads from the environment. All of it
// is resolved once at startup and injected; there are no package-level
// mutable allow-lists or role sets.
type Config struct {
	HTTPAddr    string
	DatabaseURL string

	AMQPUser string
	AMQPPass string
	AMQPHost string
	AMQPPort string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	// SalesInbox receives new-lead notifications and the weekly digest.
	SalesInbox string

	JWTSecret string

	// WebhookAllowedOrigins is the CORS allow-list for the public intake
	// webhook. Origins not on the list fall back to a wildcard response.
	WebhookAllowedOrigins []string

	// LeadOwnerRoles are the roles allowed to own leads. The historical
	// policy moved between {ADMIN,SALES_LEAD,MANAGER} and {SALES_LEAD}, so
	// it is configuration, not code.
	LeadOwnerRoles []entity.UserRole

	DailyTargetHours  float64
	WeeklyTargetHours float64

	// DigestSchedule is a cron expression for the follow-up digest job.
	DigestSchedule string
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("AMQP_USER", "guest")
	v.SetDefault("AMQP_PASS", "guest")
	v.SetDefault("AMQP_HOST", "localhost")
	v.SetDefault("AMQP_PORT", "5672")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_FROM", "no-reply@tridenteventgroup.com")
	v.SetDefault("SALES_INBOX", "sales@tridenteventgroup.com")
	v.SetDefault("WEBHOOK_ALLOWED_ORIGINS", strings.Join([]string{
		"https://tridentmusic.com",
		"https://tridentfilms.com",
		"https://tridenteventgroup.com",
		"https://tridentmusic.framer.app",
		"https://tridentfilms.framer.app",
		"http://localhost:3000",
	}, ","))
	v.SetDefault("LEAD_OWNER_ROLES", "SALES_LEAD")
	v.SetDefault("DAILY_TARGET_HOURS", 8.0)
	v.SetDefault("WEEKLY_TARGET_HOURS", 40.0)
	v.SetDefault("DIGEST_SCHEDULE", "0 8 * * 1")

	cfg := &Config{
		HTTPAddr:              v.GetString("HTTP_ADDR"),
		DatabaseURL:           v.GetString("DATABASE_URL"),
		AMQPUser:              v.GetString("AMQP_USER"),
		AMQPPass:              v.GetString("AMQP_PASS"),
		AMQPHost:              v.GetString("AMQP_HOST"),
		AMQPPort:              v.GetString("AMQP_PORT"),
		MailHost:              v.GetString("MAIL_HOST"),
		MailPort:              v.GetInt("MAIL_PORT"),
		MailUser:              v.GetString("MAIL_USER"),
		MailPass:              v.GetString("MAIL_PASS"),
		MailFrom:              v.GetString("MAIL_FROM"),
		SalesInbox:            v.GetString("SALES_INBOX"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		WebhookAllowedOrigins: splitList(v.GetString("WEBHOOK_ALLOWED_ORIGINS")),
		LeadOwnerRoles:        parseRoles(v.GetString("LEAD_OWNER_ROLES")),
		DailyTargetHours:      v.GetFloat64("DAILY_TARGET_HOURS"),
		WeeklyTargetHours:     v.GetFloat64("WEEKLY_TARGET_HOURS"),
		DigestSchedule:        v.GetString("DIGEST_SCHEDULE"),
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseRoles(s string) []entity.UserRole {
	var roles []entity.UserRole
	for _, part := range splitList(s) {
		role := entity.UserRole(strings.ToUpper(part))
		if role.IsValid() {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		roles = []entity.UserRole{entity.RoleSalesLead}
	}
	return roles
}
