package monitoring

import (
	"fmt"
	"time"

	"github.com/isdelr/mindmate-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SessionReaper removes idle sessions on a cron schedule.
type SessionReaper struct {
	sessionSvc services.SessionServiceProvider
	eventSvc   services.EventServiceProvider
	ttl        time.Duration
	cron       *cron.Cron
	now        func() time.Time
}

// NewSessionReaper creates a reaper that runs on the standard cron spec.
func NewSessionReaper(sessionSvc services.SessionServiceProvider, eventSvc services.EventServiceProvider, spec string, ttl time.Duration) (*SessionReaper, error) {
	r := &SessionReaper{
		sessionSvc: sessionSvc,
		eventSvc:   eventSvc,
		ttl:        ttl,
		cron:       cron.New(),
		now:        time.Now,
	}
	if _, err := r.cron.AddFunc(spec, func() { r.Sweep() }); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return r, nil
}

// Run starts the schedule in the background.
func (r *SessionReaper) Run() {
	log.Info().Dur("ttl", r.ttl).Msg("Starting session reaper...")
	r.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (r *SessionReaper) Stop() {
	<-r.cron.Stop().Done()
	log.Info().Msg("Stopped session reaper.")
}

// Sweep removes every session idle longer than the TTL and returns how many.
func (r *SessionReaper) Sweep() int {
	removed := r.sessionSvc.DeleteIdle(r.now().Add(-r.ttl))
	for _, id := range removed {
		r.eventSvc.DeleteSession(id)
	}
	if len(removed) > 0 {
		log.Info().Int("removed", len(removed)).Int("remaining", r.sessionSvc.Count()).Msg("Reaped idle sessions")
	}
	return len(removed)
}
