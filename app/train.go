package app

import (
	"fmt"
	"time"

	"arcparse/nlp/format/conll"
	"arcparse/nlp/parser/dependency"
	"arcparse/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"go.uber.org/zap"
)

func Train(cmd *commander.Command, args []string) error {
	if err := verifyFlags(cmd, map[string]string{"tc": trainFile, "m": modelDir}); err != nil {
		return err
	}
	if err := util.VerifyExists(trainFile); err != nil {
		return err
	}
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	table, err := cfg.Features()
	if err != nil {
		return err
	}
	format, _, err := cfg.Formats()
	if err != nil {
		return err
	}
	start := time.Now()
	sents, err := conll.ReadFile(trainFile, format)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	logger.Info("read training data",
		zap.String("file", trainFile),
		zap.Int("sentences", len(sents)),
		zap.Duration("elapsed", time.Since(start)))
	util.LogMemory(logger)

	if _, err := dependency.TrainDir(sents, modelDir, cfg.ParserOptions(), table, logger); err != nil {
		return err
	}
	util.LogMemory(logger)
	return nil
}

func TrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Train,
		UsageLine: "train <file options> [arguments]",
		Short:     "trains a dependency parser",
		Long: `
trains a dependency parser from gold dependency trees

	$ ./arcparse train -tc <conll> -m <model dir> [-a arc-eager|arc-standard] [-f <features>] [options]

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	addConfigFlags(&cmd.Flag)
	cmd.Flag.StringVar(&trainFile, "tc", "", "Training Conll File")
	cmd.Flag.StringVar(&modelDir, "m", "", "Model directory")
	cmd.Flag.StringVar(&featuresFile, "f", "", "Optional - Feature table file (default: built in)")
	return cmd
}
