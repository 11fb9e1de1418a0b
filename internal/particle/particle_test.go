package particle

import (
	"errors"
	"testing"

	"github.com/san-kum/buildatom/internal/geom"
)

func TestRadius(t *testing.T) {
	if New(Electron, geom.V(0, 0)).Radius() >= New(Proton, geom.V(0, 0)).Radius() {
		t.Error("electrons should render smaller than nucleons")
	}
	if New(Neutron, geom.V(0, 0)).Radius() != NucleonRadius {
		t.Error("neutron should use nucleon radius")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{Proton, Neutron, Electron} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("%s: got %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("muon"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New(Proton, geom.V(0, 0))
	b := New(Proton, geom.V(0, 0))
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if a.Speed != DefaultSpeed {
		t.Errorf("expected default speed %f, got %f", DefaultSpeed, a.Speed)
	}
}
