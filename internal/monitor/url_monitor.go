package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/axellelanca/shortlinks/internal/models"
)

// LinkLister is the part of the link repository the monitor needs.
type LinkLister interface {
	List(ctx context.Context, isActive *bool) ([]models.Link, error)
}

// URLMonitor periodically re-probes the destinations of active links and logs
// when one becomes reachable or unreachable. It never modifies links.
type URLMonitor struct {
	links       LinkLister
	checker     Checker
	interval    time.Duration
	log         zerolog.Logger
	mu          sync.Mutex
	knownStates map[uint]bool // link id -> last probe result
}

// NewURLMonitor creates a monitor polling every interval.
func NewURLMonitor(links LinkLister, checker Checker, interval time.Duration, log zerolog.Logger) *URLMonitor {
	return &URLMonitor{
		links:       links,
		checker:     checker,
		interval:    interval,
		log:         log.With().Str("component", "monitor").Logger(),
		knownStates: make(map[uint]bool),
	}
}

// Start runs an immediate pass, then one per interval, until ctx is done.
func (m *URLMonitor) Start(ctx context.Context) {
	m.log.Info().Dur("interval", m.interval).Msg("starting url monitor")
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.CheckOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			m.log.Info().Msg("url monitor stopped")
			return
		case <-ticker.C:
			m.CheckOnce(ctx)
		}
	}
}

// Change describes a link whose reachability flipped between two passes.
type Change struct {
	Link      models.Link
	Reachable bool
}

// CheckOnce probes every active link and returns those whose state changed
// since the previous pass. Links seen for the first time are not reported.
func (m *URLMonitor) CheckOnce(ctx context.Context) []Change {
	active := true
	links, err := m.links.List(ctx, &active)
	if err != nil {
		m.log.Error().Err(err).Msg("cannot list links for monitoring")
		return nil
	}

	var changes []Change
	for _, link := range links {
		if ctx.Err() != nil {
			return changes
		}
		current := m.checker.IsReachable(ctx, link.FullURL)

		m.mu.Lock()
		previous, seen := m.knownStates[link.ID]
		m.knownStates[link.ID] = current
		m.mu.Unlock()

		if !seen {
			m.log.Debug().Str("short_url", link.ShortURL).Str("full_url", link.FullURL).
				Str("state", formatState(current)).Msg("initial state")
			continue
		}
		if current != previous {
			m.log.Warn().Str("short_url", link.ShortURL).Str("full_url", link.FullURL).
				Str("from", formatState(previous)).Str("to", formatState(current)).
				Msg("link reachability changed")
			changes = append(changes, Change{Link: link, Reachable: current})
		}
	}
	return changes
}

func formatState(reachable bool) string {
	if reachable {
		return "REACHABLE"
	}
	return "UNREACHABLE"
}
