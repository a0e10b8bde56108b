package dependency

import (
	_ "embed"
	"fmt"
	"runtime"
	"strings"

	"arcparse/alg/classifier"
	"arcparse/alg/perceptron"
	"arcparse/alg/transition"
	deptransition "arcparse/nlp/parser/dependency/transition"
	"arcparse/util"

	"go.uber.org/zap"
)

//go:embed features/default.txt
var DEFAULT_FEATURES string

// Names of the files a trained parser is stored in, inside its model
// directory.
const (
	INDEX_FILE    = "index.json"
	FEATURES_FILE = "features.txt"
	MODEL_FILE    = "model"
)

// Options select the parser's pluggable parts by registry key.
type Options struct {
	TransitionSystem  string
	Selection         string
	Classifier        string
	ClassifierOptions string
	Workers           int
}

func DefaultOptions() Options {
	return Options{
		TransitionSystem: deptransition.ARC_EAGER,
		Selection:        deptransition.CONFIDENCE,
		Classifier:       perceptron.KEY,
	}
}

// Parser is a transition based dependency parser.
type Parser struct {
	Index      *transition.Index
	Features   *transition.FeatureTable
	System     deptransition.TransitionSystem
	Selection  deptransition.SelectionMethod
	Classifier classifier.Classifier
	Options    Options

	logger *zap.Logger
}

// DefaultFeatureTable compiles the embedded feature table.
func DefaultFeatureTable() (*transition.FeatureTable, error) {
	return transition.ReadFeatureTable(strings.NewReader(DEFAULT_FEATURES), deptransition.STRUCTURES...)
}

// New returns an untrained parser with an empty index. A nil table selects
// the default feature table.
func New(opts Options, table *transition.FeatureTable, logger *zap.Logger) (*Parser, error) {
	logger = util.OrNop(logger)
	system, err := deptransition.NewTransitionSystem(opts.TransitionSystem)
	if err != nil {
		return nil, err
	}
	selection, err := deptransition.NewSelectionMethod(opts.Selection)
	if err != nil {
		return nil, err
	}
	cls, err := classifier.New(opts.Classifier, logger)
	if err != nil {
		return nil, err
	}
	if table == nil {
		if table, err = DefaultFeatureTable(); err != nil {
			return nil, fmt.Errorf("default features: %w", err)
		}
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	return &Parser{
		Index:      transition.NewIndex(),
		Features:   table,
		System:     system,
		Selection:  selection,
		Classifier: cls,
		Options:    opts,
		logger:     logger.With(zap.String("system", system.Name())),
	}, nil
}
