package classifier

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"arcparse/alg/featurevector"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWriteReadDataset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteInstance(&buf, 3, featurevector.NewBinaryFrom([]int{9, 2})))
	require.NoError(t, WriteInstance(&buf, 1, featurevector.NewBinary(0)))
	assert.Equal(t, "3 2:1 9:1\n1\n", buf.String())

	var got []Instance
	require.NoError(t, ReadDataset(&buf, func(inst Instance) error {
		got = append(got, inst)
		return nil
	}))
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Label)
	assert.Equal(t, []int{2, 9}, got[0].Vector.IDs())
	assert.Equal(t, 0, got[1].Vector.Len())

	err := ReadDataset(strings.NewReader("x 1:1\n"), func(Instance) error { return nil })
	assert.Error(t, err)
}

type constClassifier struct{}

func (constClassifier) Train(string, string, string) error { return nil }
func (constClassifier) Load(string) error                  { return nil }
func (constClassifier) Predict(featurevector.Binary, string, map[int]float64) (int, error) {
	return 1, nil
}

func TestRegistry(t *testing.T) {
	Register("const-test", func(*zap.Logger) Classifier { return constClassifier{} })
	c, err := New("const-test", nil)
	require.NoError(t, err)
	class, _ := c.Predict(nil, "", nil)
	assert.Equal(t, 1, class)
	assert.Contains(t, Keys(), "const-test")
	assert.Panics(t, func() {
		Register("const-test", func(*zap.Logger) Classifier { return constClassifier{} })
	})

	_, err = New("nope", nil)
	assert.True(t, errors.Is(err, ErrUnknownKey))
}
