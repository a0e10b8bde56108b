// Package eval scores dependency trees against gold trees.
package eval

import (
	"errors"
	"fmt"

	nlp "arcparse/nlp/types"
)

var ErrMismatch = errors.New("test and gold sentences differ")

// Relation reads the head and label of a token.
type Relation func(t *nlp.Token) (head int, label string, exists bool)

// Predicted reads the relation assigned by a parser.
func Predicted(t *nlp.Token) (int, string, bool) {
	head, exists := t.Head()
	return head, t.Deprel(), exists
}

// Annotated reads the gold relation a token was read with.
func Annotated(t *nlp.Token) (int, string, bool) {
	head, exists := t.GoldHead()
	return head, t.GoldDeprel(), exists
}

// Result counts the attachment decisions of one sentence.
type Result struct {
	Tokens    int
	Unlabeled int // correct head
	Labeled   int // correct head and label
}

func (r *Result) UAS() float64 {
	return ratio(r.Unlabeled, r.Tokens)
}

func (r *Result) LAS() float64 {
	return ratio(r.Labeled, r.Tokens)
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// Attachment scores the relations of test against those of gold, token by
// token. Tokens without a test relation count as wrong.
func Attachment(test *nlp.Sentence, testRel Relation, gold *nlp.Sentence, goldRel Relation) (*Result, error) {
	if test.Len() != gold.Len() {
		return nil, fmt.Errorf("%w: %d tokens, gold has %d", ErrMismatch, test.Len(), gold.Len())
	}
	result := &Result{}
	for i, g := range gold.Words() {
		goldHead, goldLabel, exists := goldRel(g)
		if !exists {
			return nil, fmt.Errorf("%w: gold token %d has no relation", ErrMismatch, g.ID)
		}
		result.Tokens++
		head, label, exists := testRel(test.Words()[i])
		if !exists || head != goldHead {
			continue
		}
		result.Unlabeled++
		if label == goldLabel {
			result.Labeled++
		}
	}
	return result, nil
}

type Total struct {
	Result
	Exact, Population int
}

func (t *Total) Add(r *Result) {
	t.Tokens += r.Tokens
	t.Unlabeled += r.Unlabeled
	t.Labeled += r.Labeled
	if r.Labeled == r.Tokens {
		t.Exact++
	}
	t.Population++
}

func (t *Total) ExactMatch() float64 {
	return ratio(t.Exact, t.Population)
}

// Corpus scores test against gold sentence by sentence.
func Corpus(test []*nlp.Sentence, testRel Relation, gold []*nlp.Sentence, goldRel Relation) (*Total, error) {
	if len(test) != len(gold) {
		return nil, fmt.Errorf("%w: %d sentences, gold has %d", ErrMismatch, len(test), len(gold))
	}
	total := &Total{}
	for i := range gold {
		r, err := Attachment(test[i], testRel, gold[i], goldRel)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}
		total.Add(r)
	}
	return total, nil
}
