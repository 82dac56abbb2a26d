// Package poller approximates live delivery for one open conversation: a
// periodic check against the message store, the way the desktop client
// re-polls every two seconds while a chat window is open.
package poller

import (
	"context"
	"log"
	"time"

	"github.com/ntalk/chatterline/backend/internal/models"
	"github.com/ntalk/chatterline/backend/internal/repositories"
)

// DefaultInterval matches the reference client's 2-second poll timer.
const DefaultInterval = 2 * time.Second

// Poller watches a single (user, peer) conversation and invokes the
// callback whenever the latest message changes. Deduplication is by message
// ID, so a message is delivered at most once per Poller.
type Poller struct {
	messages repositories.MessageRepository
	userID   uint
	peerID   uint
	interval time.Duration
	onNew    func(models.Message)

	lastID uint
}

// New creates a Poller. interval <= 0 selects DefaultInterval.
func New(messages repositories.MessageRepository, userID, peerID uint, interval time.Duration, onNew func(models.Message)) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		messages: messages,
		userID:   userID,
		peerID:   peerID,
		interval: interval,
		onNew:    onNew,
	}
}

// Run polls until ctx is cancelled. The conversation's current latest
// message is used as the baseline: only messages arriving after Run starts
// are delivered, since the client renders existing history itself.
func (p *Poller) Run(ctx context.Context) {
	if latest, err := p.messages.PollLatest(p.userID, p.peerID); err == nil && latest != nil {
		p.lastID = latest.ID
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

func (p *Poller) poll() {
	latest, err := p.messages.PollLatest(p.userID, p.peerID)
	if err != nil {
		log.Printf("poller: failed to check for new messages: %v", err)
		return
	}
	if latest == nil || latest.ID == p.lastID {
		return
	}
	p.lastID = latest.ID
	if p.onNew != nil {
		p.onNew(*latest)
	}
}
