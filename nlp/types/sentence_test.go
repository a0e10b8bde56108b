package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSentence(t *testing.T) *Sentence {
	t.Helper()
	sent, err := NewSentenceFromAttributes([]map[string]string{
		{"form": "The", "pos": "DT", "head": "2", "deprel": "det"},
		{"form": "dog", "pos": "NN", "head": "3", "deprel": "nsubj"},
		{"form": "barks", "pos": "VBZ", "head": "0", "deprel": "root"},
	})
	require.NoError(t, err)
	return sent
}

func TestNewTokenGold(t *testing.T) {
	sent := testSentence(t)
	dog := sent.Token(2)
	head, exists := dog.GoldHead()
	require.True(t, exists)
	assert.Equal(t, 3, head)
	assert.Equal(t, "nsubj", dog.GoldDeprel())
	_, exists = dog.Attribute(HEAD_ATTR)
	assert.False(t, exists, "gold head must be hidden from attributes")
	_, exists = dog.Attribute(DEPREL_ATTR)
	assert.False(t, exists)
	form, _ := dog.Attribute("form")
	assert.Equal(t, "dog", form)

	root := sent.Root()
	assert.True(t, root.IsRoot())
	form, _ = root.Attribute(FORM_ATTR)
	assert.Equal(t, ROOT_TOKEN, form)
	assert.Nil(t, sent.Token(4))
	assert.Equal(t, 3, sent.Len())
}

func TestNewTokenErrors(t *testing.T) {
	_, err := NewToken(1, map[string]string{"head": "2"})
	assert.True(t, errors.Is(err, ErrGold))
	_, err = NewToken(1, map[string]string{"head": "x", "deprel": "det"})
	assert.True(t, errors.Is(err, ErrGold))

	tok, err := NewToken(2, nil)
	require.NoError(t, err)
	_, err = NewSentence([]*Token{tok})
	assert.True(t, errors.Is(err, ErrIDs))
}

func TestAttach(t *testing.T) {
	sent := testSentence(t)
	sent.Attach(2, 1, "det")
	sent.Attach(3, 2, "nsubj")

	the, dog, barks := sent.Token(1), sent.Token(2), sent.Token(3)
	head, _ := the.Head()
	assert.Equal(t, 2, head)
	assert.Equal(t, "det", the.Deprel())
	assert.Equal(t, 1, dog.LeftDeps())
	assert.Equal(t, 0, dog.RightDeps())
	lm, _ := dog.Leftmost()
	rm, _ := dog.Rightmost()
	assert.Equal(t, 1, lm)
	assert.Equal(t, 1, rm)
	assert.Equal(t, 1, barks.NumDeps())
	assert.Panics(t, func() { sent.Attach(3, 1, "x") })

	sent.AttachHeadless()
	head, _ = barks.Head()
	assert.Equal(t, ROOT_ID, head)
	assert.Equal(t, ROOT_LABEL, barks.Deprel())
	assert.Equal(t, 1, sent.Root().RightDeps())
}

func TestCloneAndUnparsed(t *testing.T) {
	sent := testSentence(t)
	sent.Attach(2, 1, "det")
	clone := sent.Clone()
	clone.Attach(3, 2, "nsubj")
	assert.False(t, sent.Token(2).HasHead(), "clone must not share tokens")
	assert.True(t, clone.Token(1).HasHead())

	fresh := clone.UnparsedCopy()
	for _, tok := range fresh.Words() {
		assert.False(t, tok.HasHead())
		assert.Equal(t, 0, tok.NumDeps())
		assert.True(t, tok.HasGold())
	}
}
