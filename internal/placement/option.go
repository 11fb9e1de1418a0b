package placement

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/buildatom/internal/geom"
)

type ShellID int

const (
	InnerShell ShellID = iota
	OuterShell
)

func (s ShellID) String() string {
	switch s {
	case InnerShell:
		return "inner"
	case OuterShell:
		return "outer"
	}
	return fmt.Sprintf("shell(%d)", int(s))
}

func ParseShell(s string) (ShellID, error) {
	switch s {
	case "inner":
		return InnerShell, nil
	case "outer":
		return OuterShell, nil
	}
	return 0, fmt.Errorf("%w: unknown shell %q", ErrInvalidGeometry, s)
}

type OptionKind int

const (
	KindNucleus OptionKind = iota
	KindShell
	KindSlot
)

// OptionID names a navigable target: the nucleus, a whole shell, or one slot
// on a shell. Shell is meaningful for KindShell and KindSlot, Index only for
// KindSlot.
type OptionID struct {
	Kind  OptionKind
	Shell ShellID
	Index int
}

func Nucleus() OptionID { return OptionID{Kind: KindNucleus} }

func Shell(s ShellID) OptionID { return OptionID{Kind: KindShell, Shell: s} }

func Slot(s ShellID, index int) OptionID {
	return OptionID{Kind: KindSlot, Shell: s, Index: index}
}

func (id OptionID) String() string {
	switch id.Kind {
	case KindNucleus:
		return "nucleus"
	case KindShell:
		return id.Shell.String() + "-shell"
	case KindSlot:
		return fmt.Sprintf("slot(%s,%d)", id.Shell, id.Index)
	}
	return fmt.Sprintf("option(%d)", int(id.Kind))
}

// Option is a navigable target and the point a particle heading to it approaches.
type Option struct {
	ID     OptionID
	Anchor geom.Vec2
}

// ParseOptionID reads "nucleus", a shell name ("inner", "outer-shell") or a
// slot as "<shell>:<index>". Whether the option exists is for the Registry
// to decide.
func ParseOptionID(s string) (OptionID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "nucleus" {
		return Nucleus(), nil
	}

	name, index, isSlot := strings.Cut(s, ":")
	shell, err := ParseShell(strings.TrimSuffix(name, "-shell"))
	if err != nil {
		return OptionID{}, err
	}
	if !isSlot {
		return Shell(shell), nil
	}

	i, err := strconv.Atoi(index)
	if err != nil {
		return OptionID{}, fmt.Errorf("%w: bad slot index %q", ErrUnsupportedSelection, index)
	}
	return Slot(shell, i), nil
}
