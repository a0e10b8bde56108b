package app

import (
	"context"
	"os"
	"os/signal"

	"arcparse/nlp/parser/dependency"
	"arcparse/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"go.uber.org/zap"
)

func Parse(cmd *commander.Command, args []string) error {
	if err := verifyFlags(cmd, map[string]string{"in": input, "oc": outConll, "m": modelDir}); err != nil {
		return err
	}
	if err := util.VerifyExists(input); err != nil {
		return err
	}
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	parser, err := dependency.Load(modelDir, cfg.ParserOptions(), logger)
	if err != nil {
		return err
	}
	inFormat, outFormat, err := cfg.Formats()
	if err != nil {
		return err
	}
	var n int
	if sequential {
		n, err = parser.ParseFile(input, outConll, inFormat, outFormat)
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		n, err = parser.BatchParseFile(ctx, input, outConll, inFormat, outFormat)
	}
	if err != nil {
		return err
	}
	logger.Info("parsed", zap.String("in", input), zap.String("out", outConll), zap.Int("sentences", n))
	return nil
}

func ParseCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       Parse,
		UsageLine: "parse <file options> [arguments]",
		Short:     "parses sentences with a trained model",
		Long: `
parses tagged sentences with a trained dependency parser

	$ ./arcparse parse -m <model dir> -in <input conll> -oc <out conll> [-w <workers>] [options]

`,
		Flag: *flag.NewFlagSet("parse", flag.ExitOnError),
	}
	addConfigFlags(&cmd.Flag)
	cmd.Flag.StringVar(&modelDir, "m", "", "Model directory")
	cmd.Flag.StringVar(&input, "in", "", "Input Conll File")
	cmd.Flag.StringVar(&outConll, "oc", "", "Output Conll File")
	cmd.Flag.StringVar(&outputFormatStr, "of", "", "Optional - Output column format")
	cmd.Flag.IntVar(&workers, "w", 0, "Optional - Number of parsing workers; 0 = configured")
	cmd.Flag.BoolVar(&sequential, "seq", false, "Parse sentence by sentence on a single goroutine")
	return cmd
}
