// Package conll reads and writes tabular token rows, one token per line and
// one blank line after each sentence. Column meaning is given by a format
// string such as "id, form, pos, head, deprel".
package conll

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	nlp "arcparse/nlp/types"
)

const (
	FIELD_SEPARATOR  = '\t'
	FORMAT_SEPARATOR = ","
	EMPTY_FIELD      = "_"

	ID      = "id"
	IGNORE  = "ignore"
	HEAD    = nlp.HEAD_ATTR
	DEPREL  = nlp.DEPREL_ATTR
	GHEAD   = "ghead"
	GDEPREL = "gdeprel"

	DEFAULT_INPUT_FORMAT  = "id, form, ignore, pos, ignore, ignore, head, deprel, ignore, ignore"
	DEFAULT_OUTPUT_FORMAT = "id, form, ignore, pos, pos, ignore, head, deprel, ignore, ignore"
)

// ErrFormat is returned for rows or tokens that do not fit a format.
var ErrFormat = errors.New("conll format mismatch")

type Format []string

// ParseFormat reads a comma separated column list. Names are lowercased.
// Attribute columns may repeat, which only a Writer can use; the id and
// relation columns may not.
func ParseFormat(s string) (Format, error) {
	parts := strings.Split(s, FORMAT_SEPARATOR)
	format := make(Format, len(parts))
	seen := make(map[string]bool, len(parts))
	for i, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			return nil, fmt.Errorf("%w: empty column %d in %q", ErrFormat, i+1, s)
		}
		if seen[name] && reserved(name) {
			return nil, fmt.Errorf("%w: repeated column %q in %q", ErrFormat, name, s)
		}
		seen[name] = true
		format[i] = name
	}
	return format, nil
}

func reserved(name string) bool {
	switch name {
	case ID, HEAD, DEPREL, GHEAD, GDEPREL:
		return true
	}
	return false
}

// Readable reports whether rows can be read with f: every column other
// than ignore must be distinct.
func (f Format) Readable() error {
	seen := make(map[string]bool, len(f))
	for _, name := range f {
		if name != IGNORE && seen[name] {
			return fmt.Errorf("%w: column %q repeated in input format %q", ErrFormat, name, f)
		}
		seen[name] = true
	}
	return nil
}

func (f Format) String() string {
	return strings.Join(f, FORMAT_SEPARATOR+" ")
}

// Reader reads sentences one at a time.
type Reader struct {
	scanner *bufio.Scanner
	format  Format
	line    int
	err     error
}

// NewReader reads rows in format; a format that is not Readable fails the
// first call to Next.
func NewReader(reader io.Reader, format Format) *Reader {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: scanner, format: format, err: format.Readable()}
}

// Next returns the next sentence, or io.EOF when there are no more.
func (r *Reader) Next() (*nlp.Sentence, error) {
	if r.err != nil {
		return nil, r.err
	}
	var rows []map[string]string
	for r.scanner.Scan() {
		r.line++
		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			if len(rows) > 0 {
				return r.sentence(rows)
			}
			continue
		}
		row, err := r.parseRow(line, len(rows)+1)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return r.sentence(rows)
	}
	return nil, io.EOF
}

func (r *Reader) sentence(rows []map[string]string) (*nlp.Sentence, error) {
	sent, err := nlp.NewSentenceFromAttributes(rows)
	if err != nil {
		return nil, fmt.Errorf("sentence ending at line %d: %w", r.line, err)
	}
	return sent, nil
}

func (r *Reader) parseRow(line string, position int) (map[string]string, error) {
	fields := strings.Fields(line)
	if len(fields) != len(r.format) {
		return nil, fmt.Errorf("%w: line %d has %d fields, format has %d", ErrFormat, r.line, len(fields), len(r.format))
	}
	row := make(map[string]string, len(fields))
	for i, name := range r.format {
		switch name {
		case IGNORE:
		case ID:
			id, err := strconv.Atoi(fields[i])
			if err != nil || id != position {
				return nil, fmt.Errorf("%w: line %d: id %q, expected %d", nlp.ErrIDs, r.line, fields[i], position)
			}
		case HEAD, DEPREL:
			// unannotated rows carry _ as head and deprel
			if fields[i] != EMPTY_FIELD {
				row[name] = fields[i]
			}
		default:
			row[name] = fields[i]
		}
	}
	return row, nil
}

// Read reads every sentence.
func Read(reader io.Reader, format Format) ([]*nlp.Sentence, error) {
	r := NewReader(reader, format)
	var sents []*nlp.Sentence
	for {
		sent, err := r.Next()
		if err == io.EOF {
			return sents, nil
		}
		if err != nil {
			return nil, err
		}
		sents = append(sents, sent)
	}
}

func ReadFile(filename string, format Format) ([]*nlp.Sentence, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Read(file, format)
}

// Writer writes sentences in a format. head and deprel are the predicted
// relations unless WithGoldRelations is set; ghead and gdeprel are always
// the gold ones.
type Writer struct {
	w      *bufio.Writer
	format Format
	gold   bool
}

func NewWriter(writer io.Writer, format Format) *Writer {
	return &Writer{w: bufio.NewWriter(writer), format: format}
}

func (w *Writer) WithGoldRelations() *Writer {
	w.gold = true
	return w
}

func (w *Writer) Write(sent *nlp.Sentence) error {
	fields := make([]string, len(w.format))
	for _, t := range sent.Words() {
		for i, name := range w.format {
			value, err := w.field(t, name)
			if err != nil {
				return err
			}
			fields[i] = value
		}
		if _, err := w.w.WriteString(strings.Join(fields, string(FIELD_SEPARATOR)) + "\n"); err != nil {
			return err
		}
	}
	return w.w.WriteByte('\n')
}

func (w *Writer) field(t *nlp.Token, name string) (string, error) {
	if w.gold {
		switch name {
		case HEAD:
			name = GHEAD
		case DEPREL:
			name = GDEPREL
		}
	}
	switch name {
	case IGNORE:
		return EMPTY_FIELD, nil
	case ID:
		return strconv.Itoa(t.ID), nil
	case HEAD:
		if head, exists := t.Head(); exists {
			return strconv.Itoa(head), nil
		}
		return EMPTY_FIELD, nil
	case DEPREL:
		if t.HasHead() {
			return t.Deprel(), nil
		}
		return EMPTY_FIELD, nil
	case GHEAD:
		if head, exists := t.GoldHead(); exists {
			return strconv.Itoa(head), nil
		}
		return EMPTY_FIELD, nil
	case GDEPREL:
		if t.HasGold() {
			return t.GoldDeprel(), nil
		}
		return EMPTY_FIELD, nil
	}
	value, exists := t.Attribute(name)
	if !exists {
		return "", fmt.Errorf("%w: token %d has no %q", ErrFormat, t.ID, name)
	}
	return value, nil
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

func Write(writer io.Writer, format Format, sents []*nlp.Sentence) error {
	w := NewWriter(writer, format)
	for _, sent := range sents {
		if err := w.Write(sent); err != nil {
			return err
		}
	}
	return w.Flush()
}

func WriteFile(filename string, format Format, sents []*nlp.Sentence) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Write(file, format, sents); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
