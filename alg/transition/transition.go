package transition

import (
	"errors"
	"strings"
)

const LABEL_SEPARATOR = "|"

// ErrUnknownTransition is returned for ids the index never assigned.
var ErrUnknownTransition = errors.New("unknown transition")

// Transition is a move name with an optional label.
type Transition struct {
	Name  string
	Label string
}

func New(name, label string) Transition {
	return Transition{name, label}
}

// String is the canonical form used for indexing: name or name|label.
func (t Transition) String() string {
	if t.Label == "" {
		return t.Name
	}
	return t.Name + LABEL_SEPARATOR + t.Label
}

func (t Transition) Labeled() bool {
	return t.Label != ""
}

// Parse reconstructs a transition from its canonical form.
func Parse(s string) Transition {
	name, label, _ := strings.Cut(s, LABEL_SEPARATOR)
	return Transition{name, label}
}
