package transition

import (
	"errors"
	"fmt"

	nlp "arcparse/nlp/types"
)

// ErrGoldData is returned for sentences unusable as training data.
var ErrGoldData = errors.New("invalid gold training data")

// TrainingData holds the gold tree of a sentence as seen by the oracles.
type TrainingData struct {
	sent     *nlp.Sentence
	goldDeps []int
}

// NewTrainingData checks that every token carries a gold head within the
// sentence and a gold label, and counts gold dependants.
func NewTrainingData(sent *nlp.Sentence) (*TrainingData, error) {
	d := &TrainingData{sent, make([]int, sent.Len()+1)}
	for i, t := range sent.Words() {
		if t.ID != i+1 {
			return nil, fmt.Errorf("%w: token at %d has id %d", ErrGoldData, i+1, t.ID)
		}
		head, exists := t.GoldHead()
		if !exists || t.GoldDeprel() == "" {
			return nil, fmt.Errorf("%w: token %d lacks gold head or label", ErrGoldData, t.ID)
		}
		if head > sent.Len() || head == t.ID {
			return nil, fmt.Errorf("%w: token %d has gold head %d", ErrGoldData, t.ID, head)
		}
		d.goldDeps[head]++
	}
	return d, nil
}

// HasRelation reports whether head is the gold head of dep.
func (d *TrainingData) HasRelation(head, dep *nlp.Token) bool {
	if dep.IsRoot() {
		return false
	}
	goldHead, _ := dep.GoldHead()
	return goldHead == head.ID
}

// HasAllDependantsAssigned reports whether t already has as many
// dependants as in the gold tree.
func (d *TrainingData) HasAllDependantsAssigned(t *nlp.Token) bool {
	return d.goldDeps[t.ID] == t.NumDeps()
}
