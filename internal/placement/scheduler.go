package placement

import (
	"time"

	"github.com/san-kum/buildatom/internal/particle"
)

// Token identifies a scheduled task. The zero Token never refers to a task.
type Token uint64

// Scheduler runs deferred work. Cancel must be safe to call with a token that
// already fired or was never issued.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Token
	Cancel(t Token)
}

// Origin is the container a particle was taken from.
type Origin interface {
	// Reabsorb takes the particle back at the container's next open position.
	Reabsorb(p *particle.Particle)
}

// Focuser is implemented by origins that want to know when input focus is
// handed back to them.
type Focuser interface {
	Focus()
}
