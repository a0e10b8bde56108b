package dependency

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"arcparse/alg/classifier"
	"arcparse/alg/featurevector"
	"arcparse/alg/transition"
	deptransition "arcparse/nlp/parser/dependency/transition"
	nlp "arcparse/nlp/types"
	"arcparse/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// vector indexes the features of conf. Training adds unseen features to
// the index; parsing gives them ids from tmp, which continues past the
// index and is private to one parse.
func (p *Parser) vector(conf *deptransition.SimpleConfiguration, tmp *util.EnumSet) (featurevector.Binary, error) {
	features, err := p.Features.Extract(conf)
	if err != nil {
		return nil, err
	}
	vec := featurevector.NewBinary(len(features))
	for _, feature := range features {
		id, err := p.Index.FeatureID(feature, tmp == nil)
		if err != nil {
			return nil, err
		}
		if id == -1 {
			id, _ = tmp.Add(feature)
		}
		vec.Set(id)
	}
	return vec, nil
}

// Parse assigns a head and label to every token of sent.
func (p *Parser) Parse(sent *nlp.Sentence) error {
	_, err := p.parse(sent, false)
	return err
}

// ParseWithConfidence parses sent and returns the selection score of every
// transition applied, in order.
func (p *Parser) ParseWithConfidence(sent *nlp.Sentence) ([]float64, error) {
	return p.parse(sent, true)
}

func (p *Parser) parse(sent *nlp.Sentence, keepScores bool) ([]float64, error) {
	var (
		confidences []float64
		tmp         = p.Index.TemporaryFeatures()
		scores      = make(map[int]float64, p.Index.NumTransitions())
		conf        = deptransition.NewSimpleConfiguration(sent)
	)
	for !conf.Terminal() {
		vec, err := p.vector(conf, tmp)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		clear(scores)
		recommended, err := p.Classifier.Predict(vec, p.Options.ClassifierOptions, scores)
		if err != nil {
			return nil, fmt.Errorf("parse: predict: %w", err)
		}
		_, score, err := p.Selection.Select(conf, p.System, p.Index, recommended, scores)
		if err != nil {
			return nil, fmt.Errorf("parse: %w", err)
		}
		if keepScores {
			confidences = append(confidences, score)
		}
	}
	conf.Finish()
	return confidences, nil
}

// Train replays the oracle over every gold sentence, writing the indexed
// decisions to a dataset, trains the classifier into modelPath and freezes
// the index. The input sentences are not modified.
func (p *Parser) Train(sents []*nlp.Sentence, modelPath string) error {
	if p.Index.ReadOnly() {
		return fmt.Errorf("train: %w", transition.ErrReadOnly)
	}
	runID := uuid.New()
	logger := p.logger.With(zap.String("run", runID.String()))
	datasetPath := filepath.Join(filepath.Dir(modelPath), fmt.Sprintf("train-%s.dataset", runID))
	start := time.Now()

	file, err := os.Create(datasetPath)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	defer os.Remove(datasetPath)
	writer := bufio.NewWriter(file)
	var instances int
	for i, sent := range sents {
		n, err := p.writeOracle(writer, sent.UnparsedCopy())
		if err != nil {
			file.Close()
			return fmt.Errorf("train: sentence %d: %w", i+1, err)
		}
		instances += n
	}
	if err := writer.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("train: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	logger.Info("oracle replayed",
		zap.Int("sentences", len(sents)),
		zap.Int("instances", instances),
		zap.Int("features", p.Index.NumFeatures()),
		zap.Int("transitions", p.Index.NumTransitions()),
		zap.Duration("elapsed", time.Since(start)))

	if err := p.Classifier.Train(datasetPath, modelPath, p.Options.ClassifierOptions); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	p.Index.SetReadOnly()
	logger.Info("training done", zap.String("model", modelPath), zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (p *Parser) writeOracle(writer *bufio.Writer, sent *nlp.Sentence) (int, error) {
	gold, err := deptransition.NewTrainingData(sent)
	if err != nil {
		return 0, err
	}
	conf := deptransition.NewSimpleConfiguration(sent)
	var n int
	for ; !conf.Terminal(); n++ {
		vec, err := p.vector(conf, nil)
		if err != nil {
			return n, err
		}
		t, err := p.System.Oracle(conf, gold)
		if err != nil {
			return n, err
		}
		id, err := p.Index.TransitionID(t, true)
		if err != nil {
			return n, err
		}
		if err := classifier.WriteInstance(writer, id, vec); err != nil {
			return n, err
		}
	}
	return n, nil
}

// Save writes the index and feature table next to a trained model, in dir.
func (p *Parser) Save(dir string) error {
	if err := p.Index.WriteFile(filepath.Join(dir, INDEX_FILE)); err != nil {
		return err
	}
	file, err := os.Create(filepath.Join(dir, FEATURES_FILE))
	if err != nil {
		return err
	}
	if _, err := p.Features.WriteTo(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	modelPath := ModelPath(dir)
	if sum, err := util.MD5File(modelPath); err == nil {
		p.logger.Info("saved parser", zap.String("dir", dir), zap.String("modelMD5", sum))
	}
	return nil
}

// ModelPath is the classifier model file inside a model directory.
func ModelPath(dir string) string {
	return filepath.Join(dir, MODEL_FILE)
}

// TrainDir trains a new parser and saves it in dir.
func TrainDir(sents []*nlp.Sentence, dir string, opts Options, table *transition.FeatureTable, logger *zap.Logger) (*Parser, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	p, err := New(opts, table, logger)
	if err != nil {
		return nil, err
	}
	if err := p.Train(sents, ModelPath(dir)); err != nil {
		return nil, err
	}
	if err := p.Save(dir); err != nil {
		return nil, err
	}
	return p, nil
}

// Load restores a parser saved in dir. The feature table stored with the
// model is used.
func Load(dir string, opts Options, logger *zap.Logger) (*Parser, error) {
	table, err := transition.ReadFeatureTableFile(filepath.Join(dir, FEATURES_FILE), deptransition.STRUCTURES...)
	if err != nil {
		return nil, err
	}
	p, err := New(opts, table, logger)
	if err != nil {
		return nil, err
	}
	if p.Index, err = transition.ReadIndexFile(filepath.Join(dir, INDEX_FILE)); err != nil {
		return nil, err
	}
	if err := p.Classifier.Load(ModelPath(dir)); err != nil {
		return nil, err
	}
	p.logger.Info("loaded parser",
		zap.String("dir", dir),
		zap.Int("features", p.Index.NumFeatures()),
		zap.Int("transitions", p.Index.NumTransitions()))
	return p, nil
}
