package cron

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"tripnest_backend/internal/model"
	"tripnest_backend/internal/repository"
	"tripnest_backend/pkg/email"
)

// DigestSender is the part of the mail service the digest needs.
type DigestSender interface {
	SendLeadDigest(ctx context.Context, data email.LeadDigestData) error
}

// LeadDigest mails the agency a daily summary of new inquiries.
type LeadDigest struct {
	leads  *repository.LeadRepository
	sender DigestSender
	now    func() time.Time

	mu      sync.Mutex
	lastRun time.Time
}

func NewLeadDigest(leads *repository.LeadRepository, sender DigestSender) *LeadDigest {
	return &LeadDigest{leads: leads, sender: sender, now: time.Now}
}

// Schedule registers the digest on a new cron runner and starts it. The caller
// stops the returned runner on shutdown.
func (d *LeadDigest) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := d.Run(context.Background()); err != nil {
			log.Printf("Lead digest failed: %v", err)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	log.Printf("Lead digest cron initialized (%s)", spec)
	return c, nil
}

// Run sends the digest for leads created in the last 24 hours. A second run
// within 23 hours is skipped.
func (d *LeadDigest) Run(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if !d.lastRun.IsZero() && now.Sub(d.lastRun) < 23*time.Hour {
		log.Printf("Lead digest already sent today, skipping...")
		return nil
	}

	counts, err := d.leads.CountByStatus(ctx)
	if err != nil {
		return err
	}

	since := now.Add(-24 * time.Hour)
	var fresh []model.Lead
	for _, lead := range d.leads.List(ctx, repository.LeadFilter{}) {
		if lead.CreatedAt.After(since) {
			fresh = append(fresh, lead)
		}
	}

	log.Printf("Found %d new leads since %s", len(fresh), since.Format(time.RFC3339))
	if err := d.sender.SendLeadDigest(ctx, email.LeadDigestData{
		Date:     now,
		NewLeads: fresh,
		Counts:   counts,
	}); err != nil {
		return err
	}

	d.lastRun = now
	return nil
}
