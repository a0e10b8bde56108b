package transition

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"arcparse/util"

	"github.com/goccy/go-json"
)

const APPROX_FEATURES = 1 << 16

// ErrReadOnly is returned when an insert is requested on a read-only Index.
var ErrReadOnly = errors.New("index is read-only")

// Index maps feature and transition strings to classifier ids. Training
// inserts; once read-only, lookups are safe from many goroutines.
type Index struct {
	Features    *util.EnumSet
	Transitions *util.EnumSet
	readOnly    atomic.Bool
}

func NewIndex() *Index {
	return &Index{
		Features:    util.NewEnumSet(APPROX_FEATURES),
		Transitions: util.NewEnumSet(64),
	}
}

func (i *Index) SetReadOnly() {
	i.Features.Frozen = true
	i.Transitions.Frozen = true
	i.readOnly.Store(true)
}

func (i *Index) ReadOnly() bool {
	return i.readOnly.Load()
}

func (i *Index) lookup(e *util.EnumSet, value string, add bool) (int, error) {
	if add {
		if id, exists := e.IndexOf(value); exists {
			return id, nil
		}
		if i.ReadOnly() {
			return -1, fmt.Errorf("%w: inserting %q", ErrReadOnly, value)
		}
	}
	return e.Lookup(value, add), nil
}

// FeatureID returns the id of feature, or -1 when absent and add is false.
func (i *Index) FeatureID(feature string, add bool) (int, error) {
	return i.lookup(i.Features, feature, add)
}

// TransitionID returns the id of t, or -1 when absent and add is false.
func (i *Index) TransitionID(t Transition, add bool) (int, error) {
	return i.lookup(i.Transitions, t.String(), add)
}

func (i *Index) Transition(id int) (Transition, error) {
	value, exists := i.Transitions.ValueOf(id)
	if !exists {
		return Transition{}, fmt.Errorf("%w: id %d", ErrUnknownTransition, id)
	}
	return Parse(value), nil
}

func (i *Index) NumFeatures() int {
	return i.Features.Len()
}

func (i *Index) NumTransitions() int {
	return i.Transitions.Len()
}

// TemporaryFeatures returns a private feature table whose ids continue past
// the shared one, for features unseen during training.
func (i *Index) TemporaryFeatures() *util.EnumSet {
	return util.NewEnumSetAfter(i.Features, 16)
}

type enumRecord struct {
	IDStart int      `json:"idStart"`
	Strings []string `json:"strings"`
}

type indexRecord struct {
	FeatureIndex    enumRecord `json:"featureIndex"`
	TransitionIndex enumRecord `json:"transitionIndex"`
}

func (i *Index) Write(writer io.Writer) error {
	record := indexRecord{
		FeatureIndex:    enumRecord{i.Features.Start, i.Features.Values()},
		TransitionIndex: enumRecord{i.Transitions.Start, i.Transitions.Values()},
	}
	if err := json.NewEncoder(writer).Encode(&record); err != nil {
		return fmt.Errorf("index: encode: %w", err)
	}
	return nil
}

// ReadIndex loads a persisted index. The result is read-only.
func ReadIndex(reader io.Reader) (*Index, error) {
	var record indexRecord
	if err := json.NewDecoder(reader).Decode(&record); err != nil {
		return nil, fmt.Errorf("index: decode: %w", err)
	}
	i := &Index{
		Features:    util.NewEnumSetOf(record.FeatureIndex.IDStart, record.FeatureIndex.Strings),
		Transitions: util.NewEnumSetOf(record.TransitionIndex.IDStart, record.TransitionIndex.Strings),
	}
	if i.Features.Len() != len(record.FeatureIndex.Strings) || i.Transitions.Len() != len(record.TransitionIndex.Strings) {
		return nil, errors.New("index: duplicate strings in persisted table")
	}
	i.SetReadOnly()
	return i, nil
}

func (i *Index) WriteFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("index: %w", err)
	}
	if err := i.Write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func ReadIndexFile(filename string) (*Index, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	defer file.Close()
	return ReadIndex(file)
}
