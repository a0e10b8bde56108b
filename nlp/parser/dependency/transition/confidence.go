package transition

import (
	"fmt"
	"sort"

	"arcparse/alg/transition"
	"arcparse/util"
)

const CONFIDENCE = "confidence"

// SelectionMethod turns a classifier decision into an applied transition.
type SelectionMethod interface {
	Name() string
	// Select applies a feasible transition to conf and returns it with the
	// score it was selected by.
	Select(conf *SimpleConfiguration, system TransitionSystem, index *transition.Index, recommended int, scores map[int]float64) (transition.Transition, float64, error)
}

var selectionMethods = map[string]func() SelectionMethod{
	CONFIDENCE: func() SelectionMethod { return &Confidence{} },
}

func NewSelectionMethod(key string) (SelectionMethod, error) {
	factory, exists := selectionMethods[key]
	if !exists {
		return nil, fmt.Errorf("%w: selection method %q", ErrUnknownKey, key)
	}
	return factory(), nil
}

func SelectionMethods() []string {
	return util.SortedKeys(selectionMethods)
}

// Confidence applies the recommended transition when feasible. Otherwise it
// tries the best scoring transition of every base name, best first.
type Confidence struct{}

var _ SelectionMethod = &Confidence{}

func (s *Confidence) Name() string {
	return CONFIDENCE
}

type candidate struct {
	id    int
	score float64
	t     transition.Transition
}

func (s *Confidence) Select(conf *SimpleConfiguration, system TransitionSystem, index *transition.Index, recommended int, scores map[int]float64) (transition.Transition, float64, error) {
	if t, err := index.Transition(recommended); err == nil && system.Test(conf, t, true) {
		return t, scores[recommended], nil
	}

	// best per base name; the failed recommendation is not retried
	best := make(map[string]candidate)
	for id, score := range scores {
		if id == recommended {
			continue
		}
		t, err := index.Transition(id)
		if err != nil {
			return transition.Transition{}, 0, err
		}
		cur, exists := best[t.Name]
		if !exists || score > cur.score || (score == cur.score && id < cur.id) {
			best[t.Name] = candidate{id, score, t}
		}
	}
	candidates := make([]candidate, 0, len(best))
	for _, c := range best {
		candidates = append(candidates, c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].id < candidates[j].id
	})
	for _, c := range candidates {
		if system.Test(conf, c.t, true) {
			return c.t, c.score, nil
		}
	}
	return transition.Transition{}, 0, fmt.Errorf("%w: recommended %d at %s", ErrNoTransition, recommended, conf)
}
