package transition

import (
	"arcparse/alg/transition"
)

const ARC_EAGER = "arc-eager"

// ArcEager attaches right dependants as soon as they are seen.
//
//	SH	(S   ,	wi|B,	A) => (S|wi   ,	   B,	A)
//	LA-r	(S|wi,	wj|B,	A) => (S      ,	wj|B,	A+{(wj,r,wi)})	if: (wk,r',wi) notin A; i != 0
//	RA-r	(S|wi,	wj|B,	A) => (S|wi|wj,	   B,	A+{(wi,r,wj)})
//	RE	(S|wi,	   B,	A) => (S      ,	   B,	A)				if: (wk,r',wi) in A
type ArcEager struct{}

var _ TransitionSystem = &ArcEager{}

func (a *ArcEager) Name() string {
	return ARC_EAGER
}

func (a *ArcEager) TransitionNames() []string {
	return []string{SHIFT, LEFT_ARC, RIGHT_ARC, REDUCE}
}

func (a *ArcEager) Test(conf *SimpleConfiguration, t transition.Transition, perform bool) bool {
	switch t.Name {
	case SHIFT:
		return shift(conf, perform)
	case LEFT_ARC:
		s0, b0 := conf.S0(), conf.B0()
		if s0 == nil || b0 == nil || s0.IsRoot() || s0.HasHead() {
			return false
		}
		if perform {
			conf.Stack().Pop()
			conf.Sentence().Attach(b0.ID, s0.ID, t.Label)
		}
		return true
	case RIGHT_ARC:
		s0, b0 := conf.S0(), conf.B0()
		if s0 == nil || b0 == nil {
			return false
		}
		if perform {
			conf.Queue().Pop()
			conf.Sentence().Attach(s0.ID, b0.ID, t.Label)
			conf.Stack().Push(b0.ID)
		}
		return true
	case REDUCE:
		s0 := conf.S0()
		if s0 == nil || !s0.HasHead() {
			return false
		}
		if perform {
			conf.Stack().Pop()
		}
		return true
	}
	return false
}

// Oracle, in priority order: left arc when the gold arc runs B0->S0, right
// arc when it runs S0->B0, reduce when S0 is headed and complete, shift.
func (a *ArcEager) Oracle(conf *SimpleConfiguration, gold *TrainingData) (transition.Transition, error) {
	s0, b0 := conf.S0(), conf.B0()
	if s0 != nil && b0 != nil {
		if gold.HasRelation(b0, s0) {
			return apply(a, conf, transition.New(LEFT_ARC, s0.GoldDeprel()))
		}
		if gold.HasRelation(s0, b0) {
			return apply(a, conf, transition.New(RIGHT_ARC, b0.GoldDeprel()))
		}
	}
	if s0 != nil && gold.HasAllDependantsAssigned(s0) && s0.HasHead() {
		return apply(a, conf, transition.New(REDUCE, ""))
	}
	return apply(a, conf, transition.New(SHIFT, ""))
}
