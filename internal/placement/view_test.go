package placement

import "testing"

func TestViewFocusable(t *testing.T) {
	tests := []struct {
		name string
		view View
		id   OptionID
		want bool
	}{
		{"idle nucleus", View{State: StateIdle}, Nucleus(), false},
		{"idle slot", View{State: StateIdle}, Slot(InnerShell, 0), false},
		{"top nucleus", View{State: StateTop}, Nucleus(), true},
		{"top shell", View{State: StateTop}, Shell(OuterShell), true},
		{"top slot", View{State: StateTop}, Slot(InnerShell, 0), false},
		{"slot active shell", View{State: StateSlot, ActiveShell: OuterShell}, Slot(OuterShell, 4), true},
		{"slot other shell", View{State: StateSlot, ActiveShell: OuterShell}, Slot(InnerShell, 0), false},
		{"slot nucleus", View{State: StateSlot, ActiveShell: InnerShell}, Nucleus(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.view.Focusable(tt.id); got != tt.want {
				t.Errorf("Focusable(%s) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestViewMarkers(t *testing.T) {
	v := View{State: StateSlot, ActiveShell: OuterShell, SlotIndex: 2}

	for i := 0; i < 6; i++ {
		id := Slot(OuterShell, i)
		if got, want := v.MarkerVisible(id), i != 2; got != want {
			t.Errorf("MarkerVisible(%s) = %v, want %v", id, got, want)
		}
		if got, want := v.Highlighted(id), i == 2; got != want {
			t.Errorf("Highlighted(%s) = %v, want %v", id, got, want)
		}
	}
	if v.MarkerVisible(Slot(InnerShell, 0)) {
		t.Error("inactive shell markers should be hidden")
	}

	top := View{State: StateTop, TopIndex: 1}
	if top.MarkerVisible(Slot(InnerShell, 0)) {
		t.Error("no slot markers at top level")
	}
	if !top.Highlighted(Shell(InnerShell)) || top.Highlighted(Nucleus()) {
		t.Error("top level highlight should follow TopIndex")
	}
	if (View{State: StateTop, TopIndex: 5}).Highlighted(Nucleus()) {
		t.Error("out of range index should highlight nothing")
	}
}
