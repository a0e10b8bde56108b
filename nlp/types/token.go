package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"arcparse/util"
)

const (
	ROOT_TOKEN  = "ROOT"
	ROOT_LABEL  = "root"
	ROOT_ID     = 0
	NO_NODE     = -1
	HEAD_ATTR   = "head"
	DEPREL_ATTR = "deprel"
	FORM_ATTR   = "form"
)

var (
	// ErrGold is returned for malformed gold annotation.
	ErrGold = errors.New("malformed gold annotation")
	// ErrIDs is returned when token ids are not 1..N in order.
	ErrIDs = errors.New("inconsistent token ids")
)

// Token is a sentence node. Links to other tokens are ids into the owning
// Sentence, never pointers.
type Token struct {
	ID    int
	attrs map[string]string

	head   int
	deprel string

	leftmost, rightmost int
	numLeft, numRight   int

	goldHead   int
	goldDeprel string
}

// NewToken creates a token. The reserved attributes head and deprel, when
// present, are removed from the attribute map and kept as gold annotation.
func NewToken(id int, attrs map[string]string) (*Token, error) {
	t := &Token{
		ID:        id,
		attrs:     make(map[string]string, len(attrs)),
		head:      NO_NODE,
		leftmost:  NO_NODE,
		rightmost: NO_NODE,
		goldHead:  NO_NODE,
	}
	for k, v := range attrs {
		t.attrs[k] = v
	}
	headStr, hasHead := t.attrs[HEAD_ATTR]
	deprel, hasDeprel := t.attrs[DEPREL_ATTR]
	if hasHead != hasDeprel {
		return nil, fmt.Errorf("token %d: %w: head and deprel must be given together", id, ErrGold)
	}
	if hasHead {
		goldHead, err := strconv.Atoi(headStr)
		if err != nil || goldHead < 0 {
			return nil, fmt.Errorf("token %d: %w: head %q", id, ErrGold, headStr)
		}
		t.goldHead, t.goldDeprel = goldHead, deprel
		delete(t.attrs, HEAD_ATTR)
		delete(t.attrs, DEPREL_ATTR)
	}
	return t, nil
}

func newRoot() *Token {
	t, _ := NewToken(ROOT_ID, map[string]string{FORM_ATTR: ROOT_TOKEN})
	return t
}

func (t *Token) IsRoot() bool {
	return t.ID == ROOT_ID
}

func (t *Token) Attribute(name string) (string, bool) {
	v, exists := t.attrs[name]
	return v, exists
}

// Attributes returns a copy of the attribute map.
func (t *Token) Attributes() map[string]string {
	retval := make(map[string]string, len(t.attrs))
	for k, v := range t.attrs {
		retval[k] = v
	}
	return retval
}

func (t *Token) Head() (int, bool) {
	return t.head, t.head != NO_NODE
}

func (t *Token) HasHead() bool {
	return t.head != NO_NODE
}

func (t *Token) Deprel() string {
	return t.deprel
}

func (t *Token) Leftmost() (int, bool) {
	return t.leftmost, t.leftmost != NO_NODE
}

func (t *Token) Rightmost() (int, bool) {
	return t.rightmost, t.rightmost != NO_NODE
}

func (t *Token) LeftDeps() int {
	return t.numLeft
}

func (t *Token) RightDeps() int {
	return t.numRight
}

func (t *Token) NumDeps() int {
	return t.numLeft + t.numRight
}

func (t *Token) HasGold() bool {
	return t.goldHead != NO_NODE
}

func (t *Token) GoldHead() (int, bool) {
	return t.goldHead, t.goldHead != NO_NODE
}

func (t *Token) GoldDeprel() string {
	return t.goldDeprel
}

func (t *Token) Copy() *Token {
	c := *t
	return &c
}

// unparsed returns a copy with every predicted link cleared.
func (t *Token) unparsed() *Token {
	c := t.Copy()
	c.head, c.deprel = NO_NODE, ""
	c.leftmost, c.rightmost = NO_NODE, NO_NODE
	c.numLeft, c.numRight = 0, 0
	return c
}

func (t *Token) String() string {
	strs := make([]string, 0, len(t.attrs)+2)
	for _, k := range util.SortedKeys(t.attrs) {
		strs = append(strs, k+"="+t.attrs[k])
	}
	if t.HasHead() {
		strs = append(strs, fmt.Sprintf("->%d(%s)", t.head, t.deprel))
	}
	return fmt.Sprintf("%d[%s]", t.ID, strings.Join(strs, " "))
}
