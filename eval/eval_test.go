package eval

import (
	"errors"
	"testing"

	nlp "arcparse/nlp/types"
)

func goldSentence(t *testing.T) *nlp.Sentence {
	t.Helper()
	sent, err := nlp.NewSentenceFromAttributes([]map[string]string{
		{"form": "The", "head": "2", "deprel": "det"},
		{"form": "dog", "head": "3", "deprel": "nsubj"},
		{"form": "barks", "head": "0", "deprel": "root"},
	})
	if err != nil {
		t.Fatalf("sentence: %v", err)
	}
	return sent
}

func TestAttachment(t *testing.T) {
	sent := goldSentence(t)
	sent.Attach(2, 1, "det")
	sent.Attach(3, 2, "obj")

	r, err := Attachment(sent, Predicted, sent, Annotated)
	if err != nil {
		t.Fatalf("attachment: %v", err)
	}
	if r.Tokens != 3 || r.Unlabeled != 2 || r.Labeled != 1 {
		t.Errorf("got %+v, expected 3 tokens, 2 unlabeled, 1 labeled", *r)
	}
	if r.UAS() != 2.0/3.0 {
		t.Errorf("UAS %v", r.UAS())
	}

	sent.AttachHeadless()
	r, _ = Attachment(sent, Predicted, sent, Annotated)
	if r.Unlabeled != 3 || r.Labeled != 2 {
		t.Errorf("after finishing got %+v", *r)
	}
}

func TestCorpus(t *testing.T) {
	a, b := goldSentence(t), goldSentence(t)
	total, err := Corpus([]*nlp.Sentence{a, b}, Annotated, []*nlp.Sentence{a, b}, Annotated)
	if err != nil {
		t.Fatalf("corpus: %v", err)
	}
	if total.LAS() != 1 || total.ExactMatch() != 1 || total.Population != 2 {
		t.Errorf("got %+v", *total)
	}

	_, err = Corpus([]*nlp.Sentence{a}, Predicted, []*nlp.Sentence{a, b}, Annotated)
	if !errors.Is(err, ErrMismatch) {
		t.Errorf("expected mismatch, got %v", err)
	}

	total, err = Corpus([]*nlp.Sentence{a}, Predicted, []*nlp.Sentence{a}, Annotated)
	if err != nil {
		t.Fatalf("corpus: %v", err)
	}
	if total.UAS() != 0 || total.Exact != 0 {
		t.Errorf("unparsed sentence scored %+v", *total)
	}
}
