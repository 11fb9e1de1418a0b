package tui

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/san-kum/buildatom/internal/atom"
	"github.com/san-kum/buildatom/internal/bucket"
	"github.com/san-kum/buildatom/internal/config"
	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/particle"
	"github.com/san-kum/buildatom/internal/placement"
	"github.com/san-kum/buildatom/internal/sim"
	"github.com/san-kum/buildatom/internal/viz"
)

type Options struct {
	Logger *log.Logger
	Theme  string
}

type placed struct {
	p      *particle.Particle
	target placement.OptionID
}

type Model struct {
	cfg     *config.Config
	logger  *log.Logger
	world   *sim.World
	machine *placement.Machine
	atom    *atom.Atom
	buckets []*bucket.Bucket
	focused int
	history []placed

	keys   keyMap
	help   help.Model
	theme  viz.Theme
	status string

	width  int
	height int
}

func New(cfg *config.Config, opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	geo, err := cfg.Geometry()
	if err != nil {
		return nil, err
	}
	reg, err := placement.NewRegistry(geo)
	if err != nil {
		return nil, err
	}

	world := sim.NewWorld(nil)
	m := &Model{
		cfg:     cfg,
		logger:  logger,
		world:   world,
		machine: placement.NewMachine(reg, world.Queue(), cfg.PlacementSettings(), logger),
		atom:    atom.New(reg),
		keys:    defaultKeys(),
		help:    help.New(),
		theme:   viz.GetTheme(opts.Theme),
		width:   100,
		height:  32,
	}

	outer, _ := reg.Geometry(placement.OuterShell)
	stock := []struct {
		kind particle.Kind
		n    int
	}{
		{particle.Proton, cfg.Stock.Protons},
		{particle.Neutron, cfg.Stock.Neutrons},
		{particle.Electron, cfg.Stock.Electrons},
	}
	for i, s := range stock {
		at := geom.V(float64(i-1)*(outer.Radius+20), -(outer.Radius + 50))
		b, err := bucket.New(s.kind, at)
		if err != nil {
			return nil, err
		}
		filled, err := b.Fill(s.n)
		if err != nil {
			return nil, err
		}
		for _, p := range filled {
			p.Speed = cfg.Speed
			world.AddParticle(p)
		}
		idx := i
		b.OnFocus(func(*bucket.Bucket) { m.focusBucket(idx) })
		m.buckets = append(m.buckets, b)
	}
	m.focusBucket(0)

	m.machine.OnCommit(m.commit)
	return m, nil
}

// Run starts the program on the alternate screen and blocks until quit.
func Run(cfg *config.Config, opts Options) error {
	m, err := New(cfg, opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

type tickMsg time.Time

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.TickInterval(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tickMsg:
		m.world.Step(m.cfg.TickInterval().Seconds())
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Theme):
		m.theme = viz.NextTheme(m.theme)
		return nil
	}

	if m.machine.Active() {
		m.placementKey(msg)
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Activate):
		m.take()
	case key.Matches(msg, m.keys.AdvanceOut), key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Undo):
		m.undo()
	}
	return nil
}

// moveFocus is a user-driven focus change. It wins over any focus return
// still pending from the last placement.
func (m *Model) moveFocus(delta int) {
	m.machine.CancelRefocus()
	m.focusBucket(m.nextBucket(delta))
}

func (m *Model) placementKey(msg tea.KeyMsg) {
	if key.Matches(msg, m.keys.Direct) {
		m.selectDirect(int(msg.Runes[0] - '1'))
		return
	}

	ev, ok := m.keys.placementEvent(msg)
	if !ok {
		return
	}
	origin := m.sessionBucket()
	if err := m.machine.Handle(ev); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""

	if ev == placement.EventAdvanceOut && origin >= 0 {
		m.focusBucket((origin + 1) % len(m.buckets))
	}
}

func (m *Model) selectDirect(i int) {
	var id placement.OptionID
	switch m.machine.State() {
	case placement.StateTop:
		top := m.machine.Registry().TopLevelOptions()
		if i >= len(top) {
			m.status = fmt.Sprintf("no option %d", i+1)
			return
		}
		id = top[i].ID
	case placement.StateSlot:
		id = placement.Slot(m.machine.View().ActiveShell, i)
	}
	if err := m.machine.Select(id); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) take() {
	if m.focused < 0 {
		return
	}
	b := m.buckets[m.focused]
	p, err := b.Take()
	if err != nil {
		m.status = err.Error()
		return
	}
	if err := m.machine.BeginSelection(p, b); err != nil {
		if addErr := b.Add(p); addErr != nil {
			m.logger.Error("particle lost from bucket", "particle", p.Kind(), "err", addErr)
		}
		m.status = err.Error()
		return
	}
	b.SetFocused(false)
	m.focused = -1
	m.status = ""
}

// commit hands a placed particle to the atom. Placements the atom refuses go
// back to the bucket they came from.
func (m *Model) commit(p *particle.Particle, target placement.OptionID) {
	err := m.atom.Place(p, target)
	if err == nil {
		m.history = append(m.history, placed{p: p, target: target})
		return
	}

	m.logger.Info("placement refused", "particle", p.Kind(), "target", target, "err", err)
	switch {
	case errors.Is(err, atom.ErrWrongKind):
		m.status = fmt.Sprintf("%s cannot go on %s", p.Kind(), target)
	case errors.Is(err, atom.ErrSlotOccupied):
		m.status = fmt.Sprintf("%s is taken", target)
	default:
		m.status = err.Error()
	}
	if b := m.bucketFor(p.Kind()); b != nil {
		b.Reabsorb(p)
	}
}

func (m *Model) undo() {
	if len(m.history) == 0 {
		return
	}
	last := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.atom.Remove(last.p)
	if b := m.bucketFor(last.p.Kind()); b != nil {
		b.Reabsorb(last.p)
	}
}

func (m *Model) focusBucket(i int) {
	for j, b := range m.buckets {
		b.SetFocused(j == i)
	}
	m.focused = i
}

func (m *Model) nextBucket(delta int) int {
	if m.focused < 0 {
		return 0
	}
	n := len(m.buckets)
	return ((m.focused+delta)%n + n) % n
}

func (m *Model) sessionBucket() int {
	s, ok := m.machine.Session()
	if !ok {
		return -1
	}
	for i, b := range m.buckets {
		if placement.Origin(b) == s.Origin {
			return i
		}
	}
	return -1
}

func (m *Model) bucketFor(k particle.Kind) *bucket.Bucket {
	for _, b := range m.buckets {
		if b.Kind() == k {
			return b
		}
	}
	return nil
}
