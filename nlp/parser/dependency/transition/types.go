package transition

import (
	"errors"
	"fmt"

	"arcparse/alg/transition"
	"arcparse/util"
)

// Transition names.
const (
	SHIFT     = "shift"
	LEFT_ARC  = "leftArc"
	RIGHT_ARC = "rightArc"
	REDUCE    = "reduce"
)

var (
	// ErrNoTransition means no move is legal at a non-terminal
	// configuration, which a correct transition system never allows.
	ErrNoTransition = errors.New("no feasible transition")
	// ErrUnknownKey is returned for unregistered names.
	ErrUnknownKey = errors.New("unknown key")
)

// TransitionSystem defines the legal moves over a SimpleConfiguration.
type TransitionSystem interface {
	Name() string
	// TransitionNames lists the base names of the system's moves.
	TransitionNames() []string
	// Test reports whether t is feasible in conf; when perform is set and
	// it is, t is applied. An infeasible transition never mutates conf.
	Test(conf *SimpleConfiguration, t transition.Transition, perform bool) bool
	// Oracle picks the gold transition for conf, applies it and returns it.
	Oracle(conf *SimpleConfiguration, gold *TrainingData) (transition.Transition, error)
}

var systems = map[string]func() TransitionSystem{
	ARC_EAGER:    func() TransitionSystem { return &ArcEager{} },
	ARC_STANDARD: func() TransitionSystem { return &ArcStandard{} },
}

func NewTransitionSystem(key string) (TransitionSystem, error) {
	factory, exists := systems[key]
	if !exists {
		return nil, fmt.Errorf("%w: transition system %q", ErrUnknownKey, key)
	}
	return factory(), nil
}

func TransitionSystems() []string {
	return util.SortedKeys(systems)
}

// apply performs the oracle's choice, which must be feasible.
func apply(system TransitionSystem, conf *SimpleConfiguration, t transition.Transition) (transition.Transition, error) {
	if !system.Test(conf, t, true) {
		return t, fmt.Errorf("%w: oracle chose infeasible %s at %s", ErrNoTransition, t, conf)
	}
	return t, nil
}
