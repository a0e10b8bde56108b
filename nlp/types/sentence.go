package types

import (
	"fmt"
	"strings"
)

// Sentence is an id indexed arena of tokens; index 0 holds the root.
type Sentence struct {
	tokens []*Token
}

// NewSentence wraps tokens, whose ids must be 1..N in order, behind a fresh
// root token.
func NewSentence(tokens []*Token) (*Sentence, error) {
	arena := make([]*Token, len(tokens)+1)
	arena[ROOT_ID] = newRoot()
	for i, t := range tokens {
		if t == nil || t.ID != i+1 {
			return nil, fmt.Errorf("%w: position %d", ErrIDs, i+1)
		}
		arena[i+1] = t
	}
	return &Sentence{arena}, nil
}

// NewSentenceFromAttributes creates tokens 1..N from attribute maps.
func NewSentenceFromAttributes(rows []map[string]string) (*Sentence, error) {
	tokens := make([]*Token, len(rows))
	for i, attrs := range rows {
		t, err := NewToken(i+1, attrs)
		if err != nil {
			return nil, err
		}
		tokens[i] = t
	}
	return NewSentence(tokens)
}

func (s *Sentence) Root() *Token {
	return s.tokens[ROOT_ID]
}

// Token returns the token with the given id, or nil.
func (s *Sentence) Token(id int) *Token {
	if id < 0 || id >= len(s.tokens) {
		return nil
	}
	return s.tokens[id]
}

// Len is the number of tokens, excluding the root.
func (s *Sentence) Len() int {
	return len(s.tokens) - 1
}

// Words returns tokens 1..N.
func (s *Sentence) Words() []*Token {
	return s.tokens[1:]
}

// Attach makes head the head of dep with the given label and updates the
// head's cached dependant boundaries and counts.
func (s *Sentence) Attach(head, dep int, label string) {
	h, d := s.tokens[head], s.tokens[dep]
	if d.HasHead() {
		panic(fmt.Sprintf("Token %d already has a head", dep))
	}
	d.head, d.deprel = head, label
	if h.ID > d.ID {
		h.numLeft++
	} else {
		h.numRight++
	}
	if h.leftmost == NO_NODE || d.ID < h.leftmost {
		h.leftmost = d.ID
	}
	if h.rightmost == NO_NODE || d.ID > h.rightmost {
		h.rightmost = d.ID
	}
}

// AttachHeadless attaches every headless token to the root with ROOT_LABEL.
func (s *Sentence) AttachHeadless() {
	for _, t := range s.Words() {
		if !t.HasHead() {
			s.Attach(ROOT_ID, t.ID, ROOT_LABEL)
		}
	}
}

// Clone deep copies the arena. Links are ids, so no remapping is needed.
func (s *Sentence) Clone() *Sentence {
	arena := make([]*Token, len(s.tokens))
	for i, t := range s.tokens {
		arena[i] = t.Copy()
	}
	return &Sentence{arena}
}

// UnparsedCopy deep copies the arena, clearing every predicted link but
// keeping the gold annotation.
func (s *Sentence) UnparsedCopy() *Sentence {
	arena := make([]*Token, len(s.tokens))
	for i, t := range s.tokens {
		arena[i] = t.unparsed()
	}
	return &Sentence{arena}
}

func (s *Sentence) String() string {
	strs := make([]string, len(s.tokens)-1)
	for i, t := range s.Words() {
		strs[i] = t.String()
	}
	return strings.Join(strs, " ")
}
