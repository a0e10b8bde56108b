package perceptron

import (
	"encoding/gob"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"arcparse/alg/classifier"
	"arcparse/alg/featurevector"
	"arcparse/util"

	"github.com/gonuts/flag"
	"go.uber.org/zap"
)

const (
	KEY                = "perceptron"
	DEFAULT_ITERATIONS = 10
)

func init() {
	classifier.Register(KEY, func(logger *zap.Logger) classifier.Classifier {
		return New(logger)
	})
}

// Options are the training options, given as a command line style string
// such as "-it 5 -avg=false".
type Options struct {
	Iterations int
	Averaged   bool
}

func ParseOptions(options string) (Options, error) {
	opts := Options{}
	fs := flag.NewFlagSet(KEY, flag.ContinueOnError)
	fs.IntVar(&opts.Iterations, "it", DEFAULT_ITERATIONS, "Number of Perceptron Iterations")
	fs.BoolVar(&opts.Averaged, "avg", true, "Average the weights")
	if err := fs.Parse(strings.Fields(options)); err != nil {
		return opts, fmt.Errorf("perceptron: options %q: %w", options, err)
	}
	if opts.Iterations < 1 {
		return opts, fmt.Errorf("perceptron: iterations must be positive, got %d", opts.Iterations)
	}
	return opts, nil
}

// LinearPerceptron is a multi-class perceptron over sparse binary vectors.
type LinearPerceptron struct {
	Iterations int
	Updater    UpdateStrategy

	model  atomic.Pointer[Model]
	logger *zap.Logger
}

var _ classifier.Classifier = &LinearPerceptron{}

func New(logger *zap.Logger) *LinearPerceptron {
	return &LinearPerceptron{
		Iterations: DEFAULT_ITERATIONS,
		Updater:    new(AveragedStrategy),
		logger:     util.OrNop(logger),
	}
}

func (m *LinearPerceptron) Model() *Model {
	return m.model.Load()
}

// TrainInstances runs the configured number of epochs over instances, in
// order, and makes the finalized model current.
func (m *LinearPerceptron) TrainInstances(instances []classifier.Instance) *Model {
	model := NewModel()
	for _, inst := range instances {
		model.AddClass(inst.Label)
	}
	m.Updater.Init(model, m.Iterations)
	for i := 0; i < m.Iterations; i++ {
		var failed int
		for _, inst := range instances {
			predicted := model.Score(inst.Vector, nil)
			if predicted != inst.Label {
				failed++
				model.Update(inst.Label, inst.Vector, 1.0)
				m.Updater.Update(inst.Label, inst.Vector, 1.0)
				model.Update(predicted, inst.Vector, -1.0)
				m.Updater.Update(predicted, inst.Vector, -1.0)
			}
			m.Updater.Step()
		}
		m.logger.Debug("perceptron iteration",
			zap.Int("iteration", i+1),
			zap.Int("instances", len(instances)),
			zap.Int("errors", failed))
	}
	final := m.Updater.Finalize(model)
	m.model.Store(final)
	return final
}

func (m *LinearPerceptron) Train(datasetPath, modelPath, options string) error {
	opts, err := ParseOptions(options)
	if err != nil {
		return err
	}
	m.Iterations = opts.Iterations
	if opts.Averaged {
		m.Updater = new(AveragedStrategy)
	} else {
		m.Updater = new(TrivialStrategy)
	}
	instances, err := classifier.ReadDatasetFile(datasetPath)
	if err != nil {
		return fmt.Errorf("perceptron: %w", err)
	}
	m.logger.Info("training perceptron",
		zap.String("dataset", datasetPath),
		zap.Int("instances", len(instances)),
		zap.Int("iterations", m.Iterations),
		zap.Bool("averaged", opts.Averaged))
	model := m.TrainInstances(instances)
	return WriteModel(modelPath, model)
}

func (m *LinearPerceptron) Predict(vec featurevector.Binary, options string, scores map[int]float64) (int, error) {
	model := m.model.Load()
	if model == nil || len(model.Classes) == 0 {
		return -1, classifier.ErrNoModel
	}
	return model.Score(vec, scores), nil
}

func (m *LinearPerceptron) Load(modelPath string) error {
	model, err := ReadModel(modelPath)
	if err != nil {
		return err
	}
	m.model.Store(model)
	return nil
}

func WriteModel(filename string, model *Model) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("perceptron: %w", err)
	}
	enc := gob.NewEncoder(file)
	if err := enc.Encode(model); err != nil {
		file.Close()
		return fmt.Errorf("perceptron: encode model: %w", err)
	}
	return file.Close()
}

func ReadModel(filename string) (*Model, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("perceptron: %w", err)
	}
	defer file.Close()
	model := NewModel()
	if err := gob.NewDecoder(file).Decode(model); err != nil {
		return nil, fmt.Errorf("perceptron: decode model: %w", err)
	}
	for _, class := range model.Classes {
		if model.Weights[class] == nil {
			model.Weights[class] = featurevector.NewSparse()
		}
	}
	return model, nil
}
