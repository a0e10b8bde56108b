package transition

import (
	"arcparse/alg/transition"
)

const ARC_STANDARD = "arc-standard"

// ArcStandard attaches a token only once all its dependants are attached.
//
//	SH	(S   ,	wi|B,	A) => (S|wi,	  B,	A)
//	LA-r	(S|wi,	wj|B,	A) => (S   ,	wj|B,	A+{(wj,r,wi)})	if: i != 0
//	RA-r	(S|wi,	wj|B,	A) => (S   ,	wi|B,	A+{(wi,r,wj)})	if: j != 0
type ArcStandard struct{}

var _ TransitionSystem = &ArcStandard{}

func (a *ArcStandard) Name() string {
	return ARC_STANDARD
}

func (a *ArcStandard) TransitionNames() []string {
	return []string{SHIFT, LEFT_ARC, RIGHT_ARC}
}

func (a *ArcStandard) Test(conf *SimpleConfiguration, t transition.Transition, perform bool) bool {
	switch t.Name {
	case SHIFT:
		return shift(conf, perform)
	case LEFT_ARC:
		s0, b0 := conf.S0(), conf.B0()
		if s0 == nil || b0 == nil || s0.IsRoot() {
			return false
		}
		if perform {
			conf.Stack().Pop()
			conf.Sentence().Attach(b0.ID, s0.ID, t.Label)
		}
		return true
	case RIGHT_ARC:
		s0, b0 := conf.S0(), conf.B0()
		// the root returns to the buffer after a right arc from it
		if s0 == nil || b0 == nil || b0.IsRoot() {
			return false
		}
		if perform {
			conf.Stack().Pop()
			conf.Queue().Pop()
			conf.Sentence().Attach(s0.ID, b0.ID, t.Label)
			conf.Queue().AddToFront(s0.ID)
		}
		return true
	}
	return false
}

func shift(conf *SimpleConfiguration, perform bool) bool {
	if conf.Queue().Size() == 0 {
		return false
	}
	if perform {
		id, _ := conf.Queue().Pop()
		conf.Stack().Push(id)
	}
	return true
}

// Oracle: left arc when the gold arc runs B0->S0, right arc when it runs
// S0->B0 and B0 has all its dependants, shift otherwise.
func (a *ArcStandard) Oracle(conf *SimpleConfiguration, gold *TrainingData) (transition.Transition, error) {
	s0, b0 := conf.S0(), conf.B0()
	if s0 != nil && b0 != nil {
		if gold.HasRelation(b0, s0) {
			return apply(a, conf, transition.New(LEFT_ARC, s0.GoldDeprel()))
		}
		if gold.HasRelation(s0, b0) && gold.HasAllDependantsAssigned(b0) {
			return apply(a, conf, transition.New(RIGHT_ARC, b0.GoldDeprel()))
		}
	}
	return apply(a, conf, transition.New(SHIFT, ""))
}
