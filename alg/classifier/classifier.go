// Package classifier defines the contract between the parser and a
// trainable multi-class classifier over sparse binary vectors.
package classifier

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"arcparse/alg/featurevector"

	"go.uber.org/zap"
)

var (
	// ErrNoModel is returned by Predict before Train or Load.
	ErrNoModel = errors.New("classifier has no model")
	// ErrUnknownKey is returned for unregistered classifier names.
	ErrUnknownKey = errors.New("unknown classifier")
)

type Classifier interface {
	// Train reads a dataset written with WriteInstance and writes a model.
	// The trained model is also made current.
	Train(datasetPath, modelPath, options string) error
	// Predict returns the recommended class of vec. When scores is not nil
	// it receives one entry per known class. Predict never mutates the
	// model and is safe for concurrent use.
	Predict(vec featurevector.Binary, options string, scores map[int]float64) (int, error)
	Load(modelPath string) error
}

type Factory func(logger *zap.Logger) Classifier

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a classifier available by key. It panics on duplicates.
func Register(key string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[key]; exists {
		panic("classifier: Register called twice for " + key)
	}
	registry[key] = factory
}

func New(key string, logger *zap.Logger) (Classifier, error) {
	registryMu.RLock()
	factory, exists := registry[key]
	registryMu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return factory(logger), nil
}

// Keys lists the registered classifiers in sorted order.
func Keys() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
