package live

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"eventdash/internal/store"
)

// CheckinCounter fetches the current check-in total for an event. Implemented
// by the upstream gateway.
type CheckinCounter interface {
	TotalCheckins(ctx context.Context, eventUUID string) (int, error)
}

// Poller re-classifies cached events on a fixed tick and refreshes the
// check-in counter of every event currently live. Classification itself is
// pure; the ticker is the only scheduling the poller owns.
type Poller struct {
	store    *store.Store
	counter  CheckinCounter
	log      *zerolog.Logger
	interval time.Duration

	mu     sync.RWMutex
	counts map[string]int
}

func NewPoller(st *store.Store, counter CheckinCounter, log *zerolog.Logger, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Poller{
		store:    st,
		counter:  counter,
		log:      log,
		interval: interval,
		counts:   make(map[string]int),
	}
}

// Run ticks until ctx is canceled. One immediate pass runs before the first
// tick so a fresh dashboard shows counters without waiting a full interval.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.refresh(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			p.log.Info().Msg("live poller stopped")
			return
		case <-ticker.C:
			p.refresh(ctx, time.Now())
		}
	}
}

func (p *Poller) refresh(ctx context.Context, now time.Time) {
	for _, e := range p.store.Events() {
		if !IsLive(e, now) {
			continue
		}
		count, err := p.counter.TotalCheckins(ctx, e.UUID)
		if err != nil {
			p.log.Warn().Err(err).Str("event_uuid", e.UUID).Msg("failed to refresh check-in counter")
			continue
		}
		p.mu.Lock()
		p.counts[e.UUID] = count
		p.mu.Unlock()
	}
}

// Checkins returns the last polled counter for an event. Zero when the event
// was never live during this session.
func (p *Poller) Checkins(eventUUID string) int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counts[eventUUID]
}
