package placement

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/particle"
)

type State int

const (
	StateIdle State = iota
	StateTop
	StateSlot
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTop:
		return "top"
	case StateSlot:
		return "slot"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event is a logical input event. Mapping raw keys onto events is left to the
// input adapter.
type Event int

const (
	EventNextOption Event = iota
	EventPrevOption
	EventActivate
	EventCancel
	EventAdvanceOut
)

func (e Event) String() string {
	switch e {
	case EventNextOption:
		return "next"
	case EventPrevOption:
		return "prev"
	case EventActivate:
		return "activate"
	case EventCancel:
		return "cancel"
	case EventAdvanceOut:
		return "advance-out"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

const (
	DefaultShellHoverScale    = 1.05
	DefaultSlotPlacementScale = 1.05
	DefaultRefocusDelay       = 100 * time.Millisecond
)

type Settings struct {
	// ShellHoverScale pushes a particle hovering over a whole shell just
	// outside the ring line.
	ShellHoverScale float64
	// SlotPlacementScale is applied to slot anchors so a placed particle sits
	// just outside the shell line.
	SlotPlacementScale float64
	RefocusDelay       time.Duration
}

func DefaultSettings() Settings {
	return Settings{
		ShellHoverScale:    DefaultShellHoverScale,
		SlotPlacementScale: DefaultSlotPlacementScale,
		RefocusDelay:       DefaultRefocusDelay,
	}
}

// CommitFunc observes a particle left at its final resting place.
type CommitFunc func(p *particle.Particle, target OptionID)

type session struct {
	id          string
	particle    *particle.Particle
	origin      Origin
	level       State
	topIndex    int
	activeShell ShellID
	slotIndex   int
}

// Snapshot is a read-only copy of the active session.
type Snapshot struct {
	ID          string
	Particle    *particle.Particle
	Origin      Origin
	Level       State
	TopIndex    int
	ActiveShell ShellID
	SlotIndex   int
}

// Machine is the keyboard placement state machine. It is not safe for
// concurrent use; callers drive it from a single input/event loop.
type Machine struct {
	registry  *Registry
	scheduler Scheduler
	settings  Settings
	logger    *log.Logger
	focus     FocusCoordinator

	session    *session
	refocus    Token
	generation uint64
	onCommit   []CommitFunc
}

func NewMachine(registry *Registry, scheduler Scheduler, settings Settings, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Machine{
		registry:  registry,
		scheduler: scheduler,
		settings:  settings,
		logger:    logger.WithPrefix("placement"),
	}
}

func (m *Machine) OnCommit(fn CommitFunc) { m.onCommit = append(m.onCommit, fn) }

func (m *Machine) Registry() *Registry { return m.registry }

func (m *Machine) Focus() *FocusCoordinator { return &m.focus }

func (m *Machine) Active() bool { return m.session != nil }

func (m *Machine) State() State {
	if m.session == nil {
		return StateIdle
	}
	return m.session.level
}

func (m *Machine) Session() (Snapshot, bool) {
	s := m.session
	if s == nil {
		return Snapshot{}, false
	}
	return Snapshot{
		ID:          s.id,
		Particle:    s.particle,
		Origin:      s.origin,
		Level:       s.level,
		TopIndex:    s.topIndex,
		ActiveShell: s.activeShell,
		SlotIndex:   s.slotIndex,
	}, true
}

func (m *Machine) View() View {
	s := m.session
	if s == nil {
		return View{State: StateIdle}
	}
	return View{State: s.level, TopIndex: s.topIndex, ActiveShell: s.activeShell, SlotIndex: s.slotIndex}
}

func (m *Machine) Focusable(id OptionID) bool     { return m.View().Focusable(id) }
func (m *Machine) MarkerVisible(id OptionID) bool { return m.View().MarkerVisible(id) }
func (m *Machine) Highlighted(id OptionID) bool   { return m.View().Highlighted(id) }

// BeginSelection starts placing p on behalf of origin. A pending refocus from
// an earlier session is cancelled so it cannot steal focus from this one.
func (m *Machine) BeginSelection(p *particle.Particle, origin Origin) error {
	if p == nil || origin == nil {
		return fmt.Errorf("%w: selection needs a particle and an origin", particle.ErrInvalidArgument)
	}
	if m.session != nil {
		return fmt.Errorf("%w: session %s is placing %s", ErrSessionConflict, shortID(m.session.id), m.session.particle)
	}

	m.cancelRefocus()
	m.session = &session{
		id:       uuid.NewString(),
		particle: p,
		origin:   origin,
		level:    StateTop,
	}
	p.UserControlled = true
	m.moveTo(m.registry.top[0])

	m.logger.Debug("selection started", "session", shortID(m.session.id), "particle", p.Kind())
	return nil
}

// Handle applies ev to the active session. Without a session it does nothing.
func (m *Machine) Handle(ev Event) error {
	s := m.session
	if s == nil {
		return nil
	}

	switch ev {
	case EventNextOption, EventPrevOption:
		m.step(ev)
		return nil
	case EventActivate:
		if s.level == StateTop {
			opt := m.registry.top[s.topIndex]
			if opt.ID.Kind == KindShell {
				return m.enterShell(opt.ID.Shell)
			}
		}
		m.finish(ev)
		return nil
	case EventCancel, EventAdvanceOut:
		m.finish(ev)
		return nil
	}

	m.logger.Warn("ignoring unknown event", "event", ev)
	return fmt.Errorf("placement: unknown event %s", ev)
}

// Select moves the selection straight to id, which must be reachable at the
// current level. Unsupported ids are logged and leave the session untouched.
func (m *Machine) Select(id OptionID) error {
	s := m.session
	if s == nil {
		return nil
	}

	opt, err := m.registry.Lookup(id)
	if err == nil && !m.View().Focusable(id) {
		err = fmt.Errorf("%w: %s is not reachable from %s level", ErrUnsupportedSelection, id, s.level)
	}
	if err != nil {
		m.logger.Warn("selection ignored", "option", id, "err", err)
		return err
	}

	switch s.level {
	case StateTop:
		for i, o := range m.registry.top {
			if o.ID == id {
				s.topIndex = i
			}
		}
	case StateSlot:
		s.slotIndex = id.Index
	}
	m.moveTo(opt)
	return nil
}

func (m *Machine) step(ev Event) {
	s := m.session
	delta := 1
	if ev == EventPrevOption {
		delta = -1
	}

	switch s.level {
	case StateTop:
		s.topIndex = wrap(s.topIndex+delta, len(m.registry.top))
		m.moveTo(m.registry.top[s.topIndex])
	case StateSlot:
		slots := m.registry.slots[s.activeShell]
		s.slotIndex = wrap(s.slotIndex+delta, len(slots))
		m.moveTo(slots[s.slotIndex])
	}
}

func (m *Machine) enterShell(shell ShellID) error {
	slots := m.registry.slots[shell]
	if len(slots) == 0 {
		err := fmt.Errorf("%w: %s shell has no slots", ErrUnsupportedSelection, shell)
		m.logger.Warn("cannot enter shell", "shell", shell, "err", err)
		return err
	}

	s := m.session
	s.level = StateSlot
	s.activeShell = shell
	s.slotIndex = 0
	m.moveTo(slots[0])
	return nil
}

// Landing is where a particle heading for opt comes to rest.
func (s Settings) Landing(opt Option) geom.Vec2 {
	switch opt.ID.Kind {
	case KindShell:
		return opt.Anchor.Scale(s.ShellHoverScale)
	case KindSlot:
		return opt.Anchor.Scale(s.SlotPlacementScale)
	}
	return opt.Anchor
}

func (m *Machine) moveTo(opt Option) {
	dest := m.settings.Landing(opt)
	m.session.particle.Destination = dest
	m.focus.focusOption(opt.ID, dest)
}

func (m *Machine) currentOption() OptionID {
	s := m.session
	if s.level == StateSlot {
		return Slot(s.activeShell, s.slotIndex)
	}
	return m.registry.top[s.topIndex].ID
}

// finish commits on activate and returns the particle to its origin on cancel
// or advance-out. Either way the session ends.
func (m *Machine) finish(ev Event) {
	s := m.session
	p := s.particle
	target := m.currentOption()

	m.session = nil
	p.UserControlled = false

	if ev == EventActivate {
		p.MoveImmediatelyToDestination()
		m.logger.Debug("placement committed", "session", shortID(s.id), "target", target, "at", p.Position)
		for _, fn := range m.onCommit {
			fn(p, target)
		}
	} else {
		m.logger.Debug("placement returned to origin", "session", shortID(s.id), "event", ev)
		s.origin.Reabsorb(p)
	}

	m.focus.release()
	// advance-out leaves focus to move on in tab order
	if ev != EventAdvanceOut {
		m.scheduleRefocus(s.origin)
	}
}

func (m *Machine) scheduleRefocus(origin Origin) {
	m.cancelRefocus()
	gen := m.generation
	m.refocus = m.scheduler.Schedule(m.settings.RefocusDelay, func() {
		if gen != m.generation || m.session != nil {
			return
		}
		m.refocus = 0
		m.focus.focusOrigin(origin)
	})
}

func (m *Machine) cancelRefocus() {
	m.generation++
	if m.refocus != 0 {
		m.scheduler.Cancel(m.refocus)
		m.refocus = 0
	}
}

// CancelRefocus drops a pending focus return. Callers use it when the user
// moves focus elsewhere before the delay runs out.
func (m *Machine) CancelRefocus() { m.cancelRefocus() }

// RefocusPending reports whether a deferred focus return is still scheduled.
func (m *Machine) RefocusPending() bool { return m.refocus != 0 }

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
