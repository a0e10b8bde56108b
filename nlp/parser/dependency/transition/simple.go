package transition

import (
	"fmt"
	"strings"

	"arcparse/alg"
	"arcparse/alg/transition"
	nlp "arcparse/nlp/types"
)

// Structure tags addressable from a feature table.
const (
	STACK  = "stk"
	BUFFER = "buf"
)

var STRUCTURES = []string{STACK, BUFFER}

// SimpleConfiguration is a stack and buffer of token ids over a sentence.
type SimpleConfiguration struct {
	sent  *nlp.Sentence
	stack *alg.Stack[int]
	queue *alg.Deque[int]
}

var _ transition.Configuration = &SimpleConfiguration{}

func NewSimpleConfiguration(sent *nlp.Sentence) *SimpleConfiguration {
	c := new(SimpleConfiguration)
	c.Init(sent)
	return c
}

// Init puts the root on the stack and the sentence tokens, in order, in
// the buffer.
func (c *SimpleConfiguration) Init(sent *nlp.Sentence) {
	c.sent = sent
	c.stack = alg.NewStack[int](sent.Len() + 1)
	c.stack.Push(nlp.ROOT_ID)
	ids := make([]int, sent.Len())
	for i, t := range sent.Words() {
		ids[i] = t.ID
	}
	c.queue = alg.NewDequeFrom(ids)
}

// Terminal reports whether the buffer is empty.
func (c *SimpleConfiguration) Terminal() bool {
	return c.queue.Size() == 0
}

func (c *SimpleConfiguration) Stack() *alg.Stack[int] {
	return c.stack
}

func (c *SimpleConfiguration) Queue() *alg.Deque[int] {
	return c.queue
}

func (c *SimpleConfiguration) Sentence() *nlp.Sentence {
	return c.sent
}

func (c *SimpleConfiguration) Token(id int) *nlp.Token {
	return c.sent.Token(id)
}

// S0 is the token on top of the stack, or nil.
func (c *SimpleConfiguration) S0() *nlp.Token {
	id, exists := c.stack.Peek()
	if !exists {
		return nil
	}
	return c.sent.Token(id)
}

// B0 is the token at the front of the buffer, or nil.
func (c *SimpleConfiguration) B0() *nlp.Token {
	id, exists := c.queue.Peek()
	if !exists {
		return nil
	}
	return c.sent.Token(id)
}

// Copy clones the configuration together with its sentence.
func (c *SimpleConfiguration) Copy() *SimpleConfiguration {
	return &SimpleConfiguration{
		sent:  c.sent.Clone(),
		stack: c.stack.Copy(),
		queue: c.queue.Copy(),
	}
}

// Finish attaches every headless token to the root.
func (c *SimpleConfiguration) Finish() {
	c.sent.AttachHeadless()
}

func (c *SimpleConfiguration) Address(structure string, offset int) (int, bool) {
	switch structure {
	case STACK:
		return c.stack.Index(offset)
	case BUFFER:
		return c.queue.Get(offset)
	}
	return 0, false
}

func (c *SimpleConfiguration) Link(nodeID int, link string) (int, bool) {
	t := c.sent.Token(nodeID)
	if t == nil {
		return 0, false
	}
	switch link {
	case transition.LINK_HEAD:
		return t.Head()
	case transition.LINK_LDEP:
		return t.Leftmost()
	case transition.LINK_RDEP:
		return t.Rightmost()
	}
	return 0, false
}

// Attribute reads a token attribute; deprel reads the predicted label. The
// root lacking an attribute yields an absent value.
func (c *SimpleConfiguration) Attribute(nodeID int, attribute string) (string, bool, error) {
	t := c.sent.Token(nodeID)
	if t == nil {
		return "", false, nil
	}
	if attribute == nlp.DEPREL_ATTR {
		return t.Deprel(), t.HasHead(), nil
	}
	value, exists := t.Attribute(attribute)
	if !exists && !t.IsRoot() {
		return "", false, fmt.Errorf("%w: token %d has no %q", transition.ErrMissingAttribute, nodeID, attribute)
	}
	return value, exists, nil
}

func (c *SimpleConfiguration) String() string {
	stack := make([]string, c.stack.Size())
	for i := range stack {
		id, _ := c.stack.Index(len(stack) - 1 - i)
		stack[i] = c.formOf(id)
	}
	queue := make([]string, c.queue.Size())
	for i := range queue {
		id, _ := c.queue.Get(i)
		queue[i] = c.formOf(id)
	}
	return fmt.Sprintf("[%s] [%s]", strings.Join(stack, " "), strings.Join(queue, " "))
}

func (c *SimpleConfiguration) formOf(id int) string {
	if form, exists := c.sent.Token(id).Attribute(nlp.FORM_ATTR); exists {
		return form
	}
	return fmt.Sprint(id)
}
