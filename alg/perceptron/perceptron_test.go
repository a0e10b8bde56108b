package perceptron

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"arcparse/alg/classifier"
	"arcparse/alg/featurevector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testInstances = []classifier.Instance{
	{Label: 1, Vector: featurevector.NewBinaryFrom([]int{1})},
	{Label: 2, Vector: featurevector.NewBinaryFrom([]int{2})},
	{Label: 3, Vector: featurevector.NewBinaryFrom([]int{3, 4})},
}

func TestTrivialStrategy(t *testing.T) {
	m := NewModel()
	w := new(TrivialStrategy)
	w.Init(m, 10)
	w.Update(1, featurevector.NewBinaryFrom([]int{1}), 1)
	w.Step()
	if m != w.Finalize(m) {
		t.Error("Should return trivial value")
	}
}

func TestAveragedStrategy(t *testing.T) {
	m := NewModel()
	w := new(AveragedStrategy)
	w.Init(m, 4)
	vec := featurevector.NewBinaryFrom([]int{7})
	// update at step 1, then three more steps: average is 1 - 1/4
	m.Update(1, vec, 1)
	w.Update(1, vec, 1)
	w.Step()
	w.Step()
	w.Step()
	avg := w.Finalize(m)
	if avg.Weights[1][7] != 0.75 {
		t.Error("Got averaged value", avg.Weights[1][7], "expected", 0.75)
	}
	if m.Weights[1][7] != 1 {
		t.Error("Finalize must not modify the model")
	}
}

func TestParseOptions(t *testing.T) {
	opts, err := ParseOptions("")
	require.NoError(t, err)
	assert.Equal(t, Options{DEFAULT_ITERATIONS, true}, opts)
	opts, err = ParseOptions("-it 3 -avg=false")
	require.NoError(t, err)
	assert.Equal(t, Options{3, false}, opts)
	_, err = ParseOptions("-it 0")
	assert.Error(t, err)
}

func TestTrainPredict(t *testing.T) {
	dir := t.TempDir()
	datasetPath := filepath.Join(dir, "train.dataset")
	modelPath := filepath.Join(dir, "model.gob")
	file, err := os.Create(datasetPath)
	require.NoError(t, err)
	for _, inst := range testInstances {
		require.NoError(t, classifier.WriteInstance(file, inst.Label, inst.Vector))
	}
	require.NoError(t, file.Close())

	p := New(nil)
	_, err = p.Predict(testInstances[0].Vector, "", nil)
	assert.True(t, errors.Is(err, classifier.ErrNoModel))

	require.NoError(t, p.Train(datasetPath, modelPath, "-it 5"))

	loaded, err := classifier.New(KEY, nil)
	require.NoError(t, err)
	require.NoError(t, loaded.Load(modelPath))
	for _, inst := range testInstances {
		scores := make(map[int]float64)
		class, err := loaded.Predict(inst.Vector, "", scores)
		require.NoError(t, err)
		assert.Equal(t, inst.Label, class)
		assert.Len(t, scores, 3)
		for other, score := range scores {
			if other != class {
				assert.LessOrEqual(t, score, scores[class])
			}
		}
	}
}
