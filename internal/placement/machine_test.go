package placement_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/buildatom/internal/geom"
	"github.com/san-kum/buildatom/internal/particle"
	"github.com/san-kum/buildatom/internal/placement"
	"github.com/san-kum/buildatom/internal/sim"
)

type fakeOrigin struct {
	reabsorbed []*particle.Particle
	focused    int
}

func (o *fakeOrigin) Reabsorb(p *particle.Particle) { o.reabsorbed = append(o.reabsorbed, p) }
func (o *fakeOrigin) Focus()                        { o.focused++ }

var _ = Describe("Machine", func() {
	var (
		registry *placement.Registry
		queue    *sim.Queue
		machine  *placement.Machine
		origin   *fakeOrigin
		proton   *particle.Particle
		settings placement.Settings
	)

	slotAnchor := func(shell placement.ShellID, i int) geom.Vec2 {
		slots, err := registry.SlotsFor(shell)
		Expect(err).NotTo(HaveOccurred())
		return slots[i].Anchor
	}

	session := func() placement.Snapshot {
		s, ok := machine.Session()
		Expect(ok).To(BeTrue())
		return s
	}

	handle := func(evs ...placement.Event) {
		for _, ev := range evs {
			Expect(machine.Handle(ev)).To(Succeed())
		}
	}

	settle := func() { queue.Advance(settings.RefocusDelay) }

	BeforeEach(func() {
		var err error
		registry, err = placement.NewRegistry(placement.ReferenceShells())
		Expect(err).NotTo(HaveOccurred())
		queue = sim.NewQueue()
		settings = placement.DefaultSettings()
		machine = placement.NewMachine(registry, queue, settings, nil)
		origin = &fakeOrigin{}
		proton = particle.New(particle.Proton, geom.V(0, -200))
	})

	Context("when idle", func() {
		It("ignores every event", func() {
			for _, ev := range []placement.Event{
				placement.EventNextOption, placement.EventPrevOption,
				placement.EventActivate, placement.EventCancel, placement.EventAdvanceOut,
			} {
				Expect(machine.Handle(ev)).To(Succeed())
			}
			Expect(machine.Select(placement.Nucleus())).To(Succeed())
			Expect(machine.State()).To(Equal(placement.StateIdle))
			Expect(origin.reabsorbed).To(BeEmpty())
			Expect(machine.Focus().CurrentFocusTarget().Kind).To(Equal(placement.FocusNone))
		})

		It("rejects a selection without particle or origin", func() {
			Expect(machine.BeginSelection(nil, origin)).To(MatchError(particle.ErrInvalidArgument))
			Expect(machine.BeginSelection(proton, nil)).To(MatchError(particle.ErrInvalidArgument))
			Expect(machine.Active()).To(BeFalse())
		})
	})

	Context("after BeginSelection", func() {
		BeforeEach(func() {
			Expect(machine.BeginSelection(proton, origin)).To(Succeed())
		})

		It("starts on the nucleus at top level", func() {
			s := session()
			Expect(s.Level).To(Equal(placement.StateTop))
			Expect(s.TopIndex).To(Equal(0))
			Expect(s.Particle).To(BeIdenticalTo(proton))
			Expect(s.ID).NotTo(BeEmpty())
			Expect(proton.UserControlled).To(BeTrue())
			Expect(proton.Destination).To(Equal(geom.V(0, 0)))

			target := machine.Focus().CurrentFocusTarget()
			Expect(target.Kind).To(Equal(placement.FocusOption))
			Expect(target.Option).To(Equal(placement.Nucleus()))
			loc, ok := machine.Focus().CurrentHoverLocation()
			Expect(ok).To(BeTrue())
			Expect(loc).To(Equal(geom.V(0, 0)))
		})

		It("keeps the motion controller off the particle", func() {
			w := sim.NewWorld(queue)
			w.AddParticle(proton)
			handle(placement.EventNextOption)
			for i := 0; i < 10; i++ {
				w.Step(0.1)
			}
			Expect(proton.Position).To(Equal(geom.V(0, -200)))
		})

		It("cycles through the three top-level options", func() {
			ids := []placement.OptionID{}
			for i := 0; i < 3; i++ {
				handle(placement.EventNextOption)
				ids = append(ids, machine.Focus().CurrentFocusTarget().Option)
			}
			Expect(ids).To(Equal([]placement.OptionID{
				placement.Shell(placement.InnerShell),
				placement.Shell(placement.OuterShell),
				placement.Nucleus(),
			}))
			Expect(session().TopIndex).To(Equal(0))
		})

		It("wraps backwards without going negative", func() {
			handle(placement.EventPrevOption)
			Expect(session().TopIndex).To(Equal(2))
			handle(placement.EventPrevOption, placement.EventPrevOption, placement.EventPrevOption)
			Expect(session().TopIndex).To(Equal(2))
		})

		It("hovers just outside the shell line over a shell", func() {
			handle(placement.EventNextOption)
			top := registry.TopLevelOptions()
			Expect(proton.Destination).To(Equal(top[1].Anchor.Scale(settings.ShellHoverScale)))
			loc, _ := machine.Focus().CurrentHoverLocation()
			Expect(loc).To(Equal(proton.Destination))
		})

		It("only exposes top-level options as focusable", func() {
			Expect(machine.Focusable(placement.Nucleus())).To(BeTrue())
			Expect(machine.Focusable(placement.Shell(placement.OuterShell))).To(BeTrue())
			Expect(machine.Focusable(placement.Slot(placement.InnerShell, 0))).To(BeFalse())
			Expect(machine.MarkerVisible(placement.Slot(placement.InnerShell, 1))).To(BeFalse())
		})

		It("places into an inner shell slot and commits", func() {
			var committed []placement.OptionID
			machine.OnCommit(func(p *particle.Particle, id placement.OptionID) {
				Expect(p).To(BeIdenticalTo(proton))
				committed = append(committed, id)
			})

			handle(placement.EventNextOption)
			Expect(session().TopIndex).To(Equal(1))

			handle(placement.EventActivate)
			s := session()
			Expect(s.Level).To(Equal(placement.StateSlot))
			Expect(s.ActiveShell).To(Equal(placement.InnerShell))
			Expect(s.SlotIndex).To(Equal(0))
			want := slotAnchor(placement.InnerShell, 0).Scale(1.05)
			Expect(proton.Destination).To(Equal(want))
			Expect(machine.Focus().CurrentFocusTarget().Option).To(Equal(placement.Slot(placement.InnerShell, 0)))

			handle(placement.EventActivate)
			Expect(machine.State()).To(Equal(placement.StateIdle))
			Expect(proton.UserControlled).To(BeFalse())
			Expect(proton.Position).To(Equal(want))
			Expect(proton.Destination).To(Equal(want))
			Expect(origin.reabsorbed).To(BeEmpty())
			Expect(committed).To(Equal([]placement.OptionID{placement.Slot(placement.InnerShell, 0)}))
			Expect(machine.MarkerVisible(placement.Slot(placement.InnerShell, 1))).To(BeFalse())
		})

		It("commits straight into the nucleus", func() {
			handle(placement.EventActivate)
			Expect(machine.Active()).To(BeFalse())
			Expect(proton.Position).To(Equal(geom.V(0, 0)))
			Expect(proton.UserControlled).To(BeFalse())
			Expect(origin.reabsorbed).To(BeEmpty())
		})

		It("returns the particle to its origin on cancel", func() {
			handle(placement.EventCancel)
			Expect(origin.reabsorbed).To(Equal([]*particle.Particle{proton}))
			Expect(proton.UserControlled).To(BeFalse())
			_, ok := machine.Session()
			Expect(ok).To(BeFalse())
		})

		It("hands focus back to the origin only after the delay", func() {
			handle(placement.EventCancel)
			Expect(machine.RefocusPending()).To(BeTrue())
			Expect(machine.Focus().CurrentFocusTarget().Kind).To(Equal(placement.FocusNone))
			Expect(origin.focused).To(BeZero())

			queue.Advance(settings.RefocusDelay / 2)
			Expect(origin.focused).To(BeZero())

			queue.Advance(settings.RefocusDelay)
			target := machine.Focus().CurrentFocusTarget()
			Expect(target.Kind).To(Equal(placement.FocusOrigin))
			Expect(target.Origin).To(BeIdenticalTo(origin))
			Expect(origin.focused).To(Equal(1))
			Expect(machine.RefocusPending()).To(BeFalse())
			_, ok := machine.Focus().CurrentHoverLocation()
			Expect(ok).To(BeFalse())
		})

		It("lets focus move on when advancing out", func() {
			handle(placement.EventNextOption, placement.EventActivate, placement.EventAdvanceOut)
			Expect(origin.reabsorbed).To(HaveLen(1))
			Expect(proton.UserControlled).To(BeFalse())
			Expect(machine.RefocusPending()).To(BeFalse())
			settle()
			Expect(origin.focused).To(BeZero())
			Expect(machine.Focus().CurrentFocusTarget().Kind).To(Equal(placement.FocusNone))
		})

		It("drops the focus return when focus moves elsewhere first", func() {
			handle(placement.EventActivate)
			Expect(machine.RefocusPending()).To(BeTrue())

			machine.CancelRefocus()
			Expect(machine.RefocusPending()).To(BeFalse())
			settle()
			settle()
			Expect(origin.focused).To(BeZero())
			Expect(machine.Focus().CurrentFocusTarget().Kind).To(Equal(placement.FocusNone))
		})

		It("rejects a second selection and keeps the first", func() {
			handle(placement.EventNextOption)
			other := particle.New(particle.Neutron, geom.V(50, -200))

			err := machine.BeginSelection(other, &fakeOrigin{})
			Expect(err).To(MatchError(placement.ErrSessionConflict))

			s := session()
			Expect(s.Particle).To(BeIdenticalTo(proton))
			Expect(s.Level).To(Equal(placement.StateTop))
			Expect(s.TopIndex).To(Equal(1))
			Expect(other.UserControlled).To(BeFalse())
		})

		It("drops a stale refocus when a new selection starts", func() {
			handle(placement.EventCancel)
			Expect(machine.RefocusPending()).To(BeTrue())

			next := particle.New(particle.Electron, geom.V(0, -220))
			Expect(machine.BeginSelection(next, origin)).To(Succeed())
			Expect(machine.RefocusPending()).To(BeFalse())

			settle()
			settle()
			Expect(origin.focused).To(BeZero())
			Expect(machine.Focus().CurrentFocusTarget().Option).To(Equal(placement.Nucleus()))
		})

		It("fails unknown events without touching the session", func() {
			Expect(machine.Handle(placement.Event(42))).NotTo(Succeed())
			Expect(session().Level).To(Equal(placement.StateTop))
			Expect(proton.UserControlled).To(BeTrue())
		})

		It("selects a top-level option directly", func() {
			Expect(machine.Select(placement.Shell(placement.OuterShell))).To(Succeed())
			Expect(session().TopIndex).To(Equal(2))
			Expect(machine.Highlighted(placement.Shell(placement.OuterShell))).To(BeTrue())
		})

		It("refuses options that are not reachable", func() {
			err := machine.Select(placement.Slot(placement.InnerShell, 0))
			Expect(err).To(MatchError(placement.ErrUnsupportedSelection))
			err = machine.Select(placement.Shell(placement.ShellID(9)))
			Expect(err).To(MatchError(placement.ErrUnsupportedSelection))
			Expect(session().TopIndex).To(Equal(0))
			Expect(proton.Destination).To(Equal(geom.V(0, 0)))
		})
	})

	Context("at slot level", func() {
		BeforeEach(func() {
			Expect(machine.BeginSelection(proton, origin)).To(Succeed())
			handle(placement.EventPrevOption, placement.EventActivate)
			Expect(session().ActiveShell).To(Equal(placement.OuterShell))
		})

		It("cycles through every slot of the shell", func() {
			n := registry.SlotCount(placement.OuterShell)
			for i := 1; i <= n; i++ {
				handle(placement.EventNextOption)
				s := session()
				Expect(s.SlotIndex).To(Equal(i % n))
				Expect(proton.Destination).To(Equal(slotAnchor(placement.OuterShell, i%n).Scale(settings.SlotPlacementScale)))
			}
			Expect(session().SlotIndex).To(Equal(0))
		})

		It("uses the same arrow direction as the top level", func() {
			handle(placement.EventNextOption)
			Expect(session().SlotIndex).To(Equal(1))
			handle(placement.EventPrevOption, placement.EventPrevOption)
			Expect(session().SlotIndex).To(Equal(registry.SlotCount(placement.OuterShell) - 1))
		})

		It("shows idle markers on every slot but the highlighted one", func() {
			handle(placement.EventNextOption, placement.EventNextOption)
			for i := 0; i < registry.SlotCount(placement.OuterShell); i++ {
				id := placement.Slot(placement.OuterShell, i)
				Expect(machine.Focusable(id)).To(BeTrue())
				Expect(machine.MarkerVisible(id)).To(Equal(i != 2))
				Expect(machine.Highlighted(id)).To(Equal(i == 2))
			}
			Expect(machine.Focusable(placement.Nucleus())).To(BeFalse())
			Expect(machine.Focusable(placement.Slot(placement.InnerShell, 0))).To(BeFalse())
		})

		It("returns the particle to its origin on cancel", func() {
			handle(placement.EventNextOption, placement.EventCancel)
			Expect(origin.reabsorbed).To(Equal([]*particle.Particle{proton}))
			Expect(machine.State()).To(Equal(placement.StateIdle))
			for i := 0; i < registry.SlotCount(placement.OuterShell); i++ {
				Expect(machine.MarkerVisible(placement.Slot(placement.OuterShell, i))).To(BeFalse())
				Expect(machine.Focusable(placement.Slot(placement.OuterShell, i))).To(BeFalse())
			}
			settle()
			Expect(origin.focused).To(Equal(1))
		})

		It("selects a slot directly", func() {
			Expect(machine.Select(placement.Slot(placement.OuterShell, 4))).To(Succeed())
			Expect(session().SlotIndex).To(Equal(4))
			Expect(machine.Select(placement.Slot(placement.OuterShell, 6))).To(MatchError(placement.ErrUnsupportedSelection))
			Expect(machine.Select(placement.Nucleus())).To(MatchError(placement.ErrUnsupportedSelection))
			Expect(session().SlotIndex).To(Equal(4))
		})
	})

	Context("with a custom slot count", func() {
		It("cycles with the configured length", func() {
			reg, err := placement.NewRegistry([]placement.ShellGeometry{
				{Shell: placement.InnerShell, Radius: 50, Slots: 5},
				{Shell: placement.OuterShell, Radius: 100, Slots: 9},
			})
			Expect(err).NotTo(HaveOccurred())
			m := placement.NewMachine(reg, queue, settings, nil)
			Expect(m.BeginSelection(proton, origin)).To(Succeed())
			Expect(m.Handle(placement.EventNextOption)).To(Succeed())
			Expect(m.Handle(placement.EventActivate)).To(Succeed())
			for i := 0; i < 5; i++ {
				Expect(m.Handle(placement.EventNextOption)).To(Succeed())
			}
			s, _ := m.Session()
			Expect(s.SlotIndex).To(Equal(0))
		})
	})
})
