// Package mock provides a canned mail provider for development and for
// running the UI without a mail account.
package mock

import (
	"context"
	"time"

	"github.com/nhle/mailterm/internal/model"
	"github.com/nhle/mailterm/internal/provider"
)

// Provider serves a fixed sample mailbox dated relative to the current
// time, restricted to the current calendar quarter like the real
// provider.
type Provider struct {
	now func() time.Time
}

// New creates a mock provider.
func New() *Provider {
	return &Provider{now: time.Now}
}

// Fetch returns the sample mailbox. It never fails and respects
// context cancellation only nominally, since there is no I/O.
func (p *Provider) Fetch(ctx context.Context) ([]model.Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := p.now()
	start, end := provider.QuarterRange(now)

	var inQuarter []model.Message
	for _, m := range sampleMessages(now) {
		if m.Received.Before(start) || m.Received.After(end) {
			continue
		}
		inQuarter = append(inQuarter, m)
	}
	return inQuarter, nil
}

// sampleMessages builds the sample mailbox with receive times relative
// to now.
func sampleMessages(now time.Time) []model.Message {
	return []model.Message{
		{
			ID:       "1",
			From:     "manager@company.com",
			Subject:  "Project Update - Q2",
			Received: now.AddDate(0, 0, -7),
			Body: "Here's the latest update on our project progress...\n\n" +
				"We've completed the initial phase of development and are moving " +
				"into testing. Please review the attached documents and provide " +
				"feedback by the end of the week.\n\nThanks,\nProject Manager",
		},
		{
			ID:       "2",
			From:     "team-lead@company.com",
			Subject:  "Team Meeting - Tomorrow",
			Received: now.AddDate(0, 0, -1),
			Body: "Reminder: We have a team meeting scheduled for tomorrow at 10 AM.\n\n" +
				"Agenda:\n1. Project status updates\n2. Upcoming deadlines\n" +
				"3. Resource allocation\n4. Open discussion\n\n" +
				"Please come prepared with your updates.\n\nRegards,\nTeam Lead",
		},
		{
			ID:       "3",
			From:     "hr@company.com",
			Subject:  "Vacation Request",
			Received: now.AddDate(0, 0, -2),
			Body: "Your vacation request has been approved.\n\n" +
				"Dates: June 15-22, 2023\nTotal days: 5 business days\n" +
				"Remaining PTO: 15 days\n\nPlease ensure all your tasks are " +
				"properly handed over before your departure.\n\n" +
				"Best regards,\nHR Department",
		},
		{
			ID:       "4",
			From:     "it-support@company.com",
			Subject:  "System Maintenance Notice",
			Received: now,
			Body: "Dear Team,\n\nPlease be informed that we will be performing " +
				"system maintenance this weekend. The following systems will be " +
				"unavailable from Saturday 8 PM to Sunday 2 AM:\n\n" +
				"- Email servers\n- Internal documentation\n- Project management tools\n\n" +
				"Please plan your work accordingly.\n\nIT Support Team",
		},
	}
}
