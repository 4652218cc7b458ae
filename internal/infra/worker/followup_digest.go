package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/tridentevents/crm-api/internal/entity"
)

type StaleLeadFinder interface {
	FindStaleFollowUps(ctx context.Context, cutoff time.Time) ([]*entity.Lead, error)
}

type DigestSender interface {
	SendFollowUpDigest(to string, leads []*entity.Lead) error
}

// FollowUpDigest mails sales a weekly list of leads stuck in FOLLOW_UP. It is
// read-only: reporting a stale lead never mutates it.
type FollowUpDigest struct {
	Leads    StaleLeadFinder
	Sender   DigestSender
	Inbox    string
	StaleAge time.Duration
	Logger   *zap.Logger

	cron *cron.Cron
}

func NewFollowUpDigest(leads StaleLeadFinder, sender DigestSender, inbox string, logger *zap.Logger) *FollowUpDigest {
	return &FollowUpDigest{
		Leads:    leads,
		Sender:   sender,
		Inbox:    inbox,
		StaleAge: 7 * 24 * time.Hour,
		Logger:   logger,
	}
}

// Start schedules the digest. The schedule is a standard cron expression.
func (d *FollowUpDigest) Start(schedule string) error {
	d.cron = cron.New()
	if _, err := d.cron.AddFunc(schedule, d.Run); err != nil {
		return err
	}
	d.cron.Start()
	d.Logger.Info("follow-up digest scheduled", zap.String("schedule", schedule))
	return nil
}

func (d *FollowUpDigest) Stop() {
	if d.cron != nil {
		d.cron.Stop()
	}
}

func (d *FollowUpDigest) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cutoff := time.Now().Add(-d.StaleAge)
	leads, err := d.Leads.FindStaleFollowUps(ctx, cutoff)
	if err != nil {
		d.Logger.Error("failed to load stale follow-ups", zap.Error(err))
		return
	}

	if len(leads) == 0 {
		d.Logger.Info("no stale follow-ups this week")
		return
	}

	if err := d.Sender.SendFollowUpDigest(d.Inbox, leads); err != nil {
		d.Logger.Error("failed to send follow-up digest", zap.Error(err))
		return
	}

	d.Logger.Info("follow-up digest sent", zap.Int("leads", len(leads)))
}
