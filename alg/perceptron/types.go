package perceptron

import (
	"sort"

	"arcparse/alg/featurevector"
)

// Model holds one sparse weight vector per class.
type Model struct {
	Weights map[int]featurevector.Sparse
	Classes []int
}

func NewModel() *Model {
	return &Model{Weights: make(map[int]featurevector.Sparse)}
}

// AddClass registers class, keeping Classes sorted.
func (m *Model) AddClass(class int) {
	if _, exists := m.Weights[class]; exists {
		return
	}
	m.Weights[class] = featurevector.NewSparse()
	pos := sort.SearchInts(m.Classes, class)
	m.Classes = append(m.Classes, 0)
	copy(m.Classes[pos+1:], m.Classes[pos:])
	m.Classes[pos] = class
}

func (m *Model) Update(class int, vec featurevector.Binary, amount float64) {
	m.AddClass(class)
	m.Weights[class].UpdateAddBinary(vec, amount)
}

// Score returns the highest scoring class, the lowest id winning ties, or
// -1 for an empty model. scores, when not nil, receives every class score.
func (m *Model) Score(vec featurevector.Binary, scores map[int]float64) int {
	var (
		best      = -1
		bestScore float64
	)
	for _, class := range m.Classes {
		score := m.Weights[class].DotProductBinary(vec)
		if scores != nil {
			scores[class] = score
		}
		if best == -1 || score > bestScore {
			best, bestScore = class, score
		}
	}
	return best
}

func (m *Model) Copy() *Model {
	c := &Model{
		Weights: make(map[int]featurevector.Sparse, len(m.Weights)),
		Classes: append([]int(nil), m.Classes...),
	}
	for class, w := range m.Weights {
		c.Weights[class] = w.Copy()
	}
	return c
}

type UpdateStrategy interface {
	Init(m *Model, iterations int)
	// Update mirrors a weight update applied to the model.
	Update(class int, vec featurevector.Binary, amount float64)
	// Step is called once per training instance.
	Step()
	Finalize(m *Model) *Model
}

type TrivialStrategy struct{}

func (u *TrivialStrategy) Init(m *Model, iterations int) {
}

func (u *TrivialStrategy) Update(class int, vec featurevector.Binary, amount float64) {
}

func (u *TrivialStrategy) Step() {
}

func (u *TrivialStrategy) Finalize(m *Model) *Model {
	return m
}

// AveragedStrategy averages the weights over every training step. Updates
// are accumulated scaled by the step at which they happened, so the average
// is w - accum/N.
type AveragedStrategy struct {
	N          float64
	accumModel *Model
}

func (u *AveragedStrategy) Init(m *Model, iterations int) {
	u.N = 1
	u.accumModel = NewModel()
}

func (u *AveragedStrategy) Update(class int, vec featurevector.Binary, amount float64) {
	u.accumModel.Update(class, vec, u.N*amount)
}

func (u *AveragedStrategy) Step() {
	u.N += 1
}

func (u *AveragedStrategy) Finalize(m *Model) *Model {
	avg := m.Copy()
	for class, accum := range u.accumModel.Weights {
		w := avg.Weights[class]
		for feature, val := range accum {
			result := w[feature] - val/u.N
			if result != 0 {
				w[feature] = result
			} else {
				delete(w, feature)
			}
		}
	}
	return avg
}
