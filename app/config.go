package app

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"arcparse/alg/classifier"
	"arcparse/alg/transition"
	"arcparse/nlp/format/conll"
	"arcparse/nlp/parser/dependency"
	deptransition "arcparse/nlp/parser/dependency/transition"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v2"
)

// CONFIG_ENV names the configuration file when -conf is not given.
const CONFIG_ENV = "ARCPARSE_CONFIG"

var ErrConfig = errors.New("invalid configuration")

// Config holds the settings shared by all commands.
type Config struct {
	TransitionSystem  string    `yaml:"transition_system"  env:"ARCPARSE_TRANSITION_SYSTEM"  env-default:"arc-eager"`
	Classifier        string    `yaml:"classifier"         env:"ARCPARSE_CLASSIFIER"         env-default:"perceptron"`
	Selection         string    `yaml:"selection"          env:"ARCPARSE_SELECTION"          env-default:"confidence"`
	FeatureTable      string    `yaml:"feature_table"      env:"ARCPARSE_FEATURE_TABLE"`
	ClassifierOptions string    `yaml:"classifier_options" env:"ARCPARSE_CLASSIFIER_OPTIONS" env-default:"-it 10"`
	InputFormat       string    `yaml:"input_format"       env:"ARCPARSE_INPUT_FORMAT"       env-default:"id, form, ignore, pos, ignore, ignore, head, deprel, ignore, ignore"`
	OutputFormat      string    `yaml:"output_format"      env:"ARCPARSE_OUTPUT_FORMAT"      env-default:"id, form, ignore, pos, pos, ignore, head, deprel, ignore, ignore"`
	Workers           int       `yaml:"workers"            env:"ARCPARSE_WORKERS"            env-default:"0"`
	Log               LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"ARCPARSE_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"ARCPARSE_LOG_FORMAT" env-default:"console"`
}

// LoadConfig reads path, or the file named by CONFIG_ENV, then applies
// environment overrides. Without a file only the environment and defaults
// are used.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path == "" {
		path = os.Getenv(CONFIG_ENV)
	}
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	return &cfg, nil
}

// Validate checks registry keys, formats and the worker count.
func (c *Config) Validate() error {
	if !slices.Contains(deptransition.TransitionSystems(), c.TransitionSystem) {
		return fmt.Errorf("%w: transition system %q not in %v", ErrConfig, c.TransitionSystem, deptransition.TransitionSystems())
	}
	if !slices.Contains(deptransition.SelectionMethods(), c.Selection) {
		return fmt.Errorf("%w: selection method %q not in %v", ErrConfig, c.Selection, deptransition.SelectionMethods())
	}
	if !slices.Contains(classifier.Keys(), c.Classifier) {
		return fmt.Errorf("%w: classifier %q not in %v", ErrConfig, c.Classifier, classifier.Keys())
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrConfig, c.Workers)
	}
	if _, _, err := c.Formats(); err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}
	return nil
}

func (c *Config) ParserOptions() dependency.Options {
	return dependency.Options{
		TransitionSystem:  c.TransitionSystem,
		Selection:         c.Selection,
		Classifier:        c.Classifier,
		ClassifierOptions: c.ClassifierOptions,
		Workers:           c.Workers,
	}
}

// Features compiles the configured feature table; nil selects the default.
func (c *Config) Features() (*transition.FeatureTable, error) {
	if c.FeatureTable == "" {
		return nil, nil
	}
	return transition.ReadFeatureTableFile(c.FeatureTable, deptransition.STRUCTURES...)
}

// Formats parses the input and output formats. Only the output format may
// repeat attribute columns.
func (c *Config) Formats() (in, out conll.Format, err error) {
	if in, err = conll.ParseFormat(c.InputFormat); err != nil {
		return nil, nil, fmt.Errorf("input format: %w", err)
	}
	if err = in.Readable(); err != nil {
		return nil, nil, fmt.Errorf("input format: %w", err)
	}
	if out, err = conll.ParseFormat(c.OutputFormat); err != nil {
		return nil, nil, fmt.Errorf("output format: %w", err)
	}
	return in, out, nil
}

func (c *Config) YAML() (string, error) {
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
