package invaders

import (
	"sort"
	"time"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// DefaultEffectDuration is how long an effect stays active after pickup.
const DefaultEffectDuration = 10 * time.Second

// EffectStamp is one registry entry in serializable form.
type EffectStamp struct {
	Effect      Effect    `json:"effect" yaml:"effect"`
	ActivatedAt time.Time `json:"activated_at" yaml:"activated_at"`
}

// Registry maps effects to their activation time.
// An effect is active iff less than the cooldown has elapsed since its stamp.
// Entries are never removed; expiry is decided at query time.
type Registry struct {
	clock    core.Clock
	cooldown time.Duration
	stamps   map[Effect]time.Time
}

// NewRegistry creates an empty registry reading time from clock.
func NewRegistry(clock core.Clock, cooldown time.Duration) *Registry {
	if cooldown <= 0 {
		cooldown = DefaultEffectDuration
	}
	return &Registry{
		clock:    clock,
		cooldown: cooldown,
		stamps:   make(map[Effect]time.Time),
	}
}

// Cooldown returns the activity window of every effect.
func (r *Registry) Cooldown() time.Duration {
	return r.cooldown
}

// Activate stamps e with the current time, refreshing an active window.
func (r *Registry) Activate(e Effect) {
	r.stamps[e] = r.clock.Now()
}

// IsActive reports whether e was activated less than one cooldown ago.
func (r *Registry) IsActive(e Effect) bool {
	ts, ok := r.stamps[e]
	if !ok {
		return false
	}
	return r.clock.Now().Sub(ts) < r.cooldown
}

// ForceExpire deactivates e by backdating its stamp a full cooldown.
func (r *Registry) ForceExpire(e Effect) {
	r.stamps[e] = r.clock.Now().Add(-r.cooldown)
}

// Remaining returns how long e stays active, or zero.
func (r *Registry) Remaining(e Effect) time.Duration {
	ts, ok := r.stamps[e]
	if !ok {
		return 0
	}
	left := r.cooldown - r.clock.Now().Sub(ts)
	if left < 0 {
		return 0
	}
	return left
}

// Active returns the currently active effects in declaration order.
func (r *Registry) Active() []Effect {
	now := r.clock.Now()
	active := make([]Effect, 0, len(r.stamps))
	for e, ts := range r.stamps {
		if now.Sub(ts) < r.cooldown {
			active = append(active, e)
		}
	}
	sort.Slice(active, func(i, j int) bool { return active[i] < active[j] })
	return active
}

// Len returns the number of entries, expired ones included.
func (r *Registry) Len() int {
	return len(r.stamps)
}

// Snapshot returns every entry sorted by effect.
func (r *Registry) Snapshot() []EffectStamp {
	out := make([]EffectStamp, 0, len(r.stamps))
	for e, ts := range r.stamps {
		out = append(out, EffectStamp{Effect: e, ActivatedAt: ts})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Effect < out[j].Effect })
	return out
}

// Restore replaces all entries with the given stamps.
func (r *Registry) Restore(stamps []EffectStamp) {
	r.stamps = make(map[Effect]time.Time, len(stamps))
	for _, s := range stamps {
		if s.Effect.Valid() {
			r.stamps[s.Effect] = s.ActivatedAt
		}
	}
}

// Reset drops every entry.
func (r *Registry) Reset() {
	clear(r.stamps)
}
