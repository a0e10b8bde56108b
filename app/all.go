package app

import (
	"fmt"
	"os"
	"runtime"

	"arcparse/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"go.uber.org/zap"
)

const (
	NUM_CPUS_FLAG = "cpus"
)

var (
	CPUs int

	// flags shared by the commands; empty values keep the configured ones
	confFile        string
	arcSystemStr    string
	featuresFile    string
	classifierOpts  string
	inputFormatStr  string
	outputFormatStr string
	logLevel        string
	workers         int
	modelDir        string
	trainFile       string
	input, outConll string
	sequential      bool
)

func AppCommands() []*commander.Command {
	return []*commander.Command{
		TrainCmd(),
		ParseCmd(),
		DepEvalCmd(),
		OptionsCmd(),
	}
}

func AllCommands() *commander.Command {
	cmd := &commander.Command{
		UsageLine:   os.Args[0],
		Short:       "transition based dependency parser",
		Subcommands: AppCommands(),
		Flag:        *flag.NewFlagSet("arcparse", flag.ExitOnError),
	}
	for _, app := range cmd.Subcommands {
		app.Run = NewAppWrapCommand(app.Run)
		app.Flag.IntVar(&CPUs, NUM_CPUS_FLAG, 0, "Max CPUS to use (runtime.GOMAXPROCS); 0 = all")
	}
	return cmd
}

func InitCommand(cmd *commander.Command, args []string) {
	maxCPUs := runtime.NumCPU()
	if CPUs > maxCPUs || CPUs <= 0 {
		CPUs = maxCPUs
	}
	runtime.GOMAXPROCS(CPUs)
}

func NewAppWrapCommand(f func(cmd *commander.Command, args []string) error) func(cmd *commander.Command, args []string) error {
	return func(cmd *commander.Command, args []string) error {
		InitCommand(cmd, args)
		return f(cmd, args)
	}
}

func addConfigFlags(fs *flag.FlagSet) {
	fs.StringVar(&confFile, "conf", "", "Optional - YAML configuration file (default $"+CONFIG_ENV+")")
	fs.StringVar(&arcSystemStr, "a", "", "Optional - Transition system [arc-eager, arc-standard]")
	fs.StringVar(&classifierOpts, "co", "", "Optional - Classifier options, e.g. \"-it 10\"")
	fs.StringVar(&inputFormatStr, "if", "", "Optional - Input column format")
	fs.StringVar(&logLevel, "log", "", "Optional - Log level [debug, info, warn, error]")
}

// applyFlags overrides cfg with every flag that was given a value.
func applyFlags(cfg *Config) {
	for _, o := range []struct {
		flag   string
		config *string
	}{
		{arcSystemStr, &cfg.TransitionSystem},
		{featuresFile, &cfg.FeatureTable},
		{classifierOpts, &cfg.ClassifierOptions},
		{inputFormatStr, &cfg.InputFormat},
		{outputFormatStr, &cfg.OutputFormat},
		{logLevel, &cfg.Log.Level},
	} {
		if o.flag != "" {
			*o.config = o.flag
		}
	}
	if workers > 0 {
		cfg.Workers = workers
	}
}

// setup loads and validates the configuration and builds the logger.
func setup() (*Config, *zap.Logger, error) {
	cfg, err := LoadConfig(confFile)
	if err != nil {
		return nil, nil, err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	logger, err := util.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, nil, err
	}
	if echo, err := cfg.YAML(); err == nil {
		logger.Debug("configuration\n" + echo)
	}
	return cfg, logger, nil
}

func verifyFlags(cmd *commander.Command, required map[string]string) error {
	for name, value := range required {
		if value == "" {
			cmd.Usage()
			return fmt.Errorf("required flag -%s not set", name)
		}
	}
	return nil
}
