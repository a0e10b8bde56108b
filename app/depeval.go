package app

import (
	"fmt"

	"arcparse/eval"
	"arcparse/nlp/format/conll"
	"arcparse/util"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"go.uber.org/zap"
)

var inputGold string

// EvalFiles scores a parsed file against a gold file, both read with format.
func EvalFiles(parsedFile, goldFile string, format conll.Format) (*eval.Total, error) {
	parsed, err := conll.ReadFile(parsedFile, format)
	if err != nil {
		return nil, fmt.Errorf("parsed: %w", err)
	}
	gold, err := conll.ReadFile(goldFile, format)
	if err != nil {
		return nil, fmt.Errorf("gold: %w", err)
	}
	// a parser's output is read back as annotation
	return eval.Corpus(parsed, eval.Annotated, gold, eval.Annotated)
}

func DepEval(cmd *commander.Command, args []string) error {
	if err := verifyFlags(cmd, map[string]string{"in": input, "ing": inputGold}); err != nil {
		return err
	}
	for _, file := range []string{input, inputGold} {
		if err := util.VerifyExists(file); err != nil {
			return err
		}
	}
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	format, _, err := cfg.Formats()
	if err != nil {
		return err
	}
	total, err := EvalFiles(input, inputGold, format)
	if err != nil {
		return err
	}
	logger.Info("evaluated",
		zap.String("parsed", input),
		zap.String("gold", inputGold),
		zap.Int("sentences", total.Population),
		zap.Int("tokens", total.Tokens))
	fmt.Printf("UAS: %.2f\nLAS: %.2f\nExact: %.2f\n", 100*total.UAS(), 100*total.LAS(), 100*total.ExactMatch())
	return nil
}

func DepEvalCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepEval,
		UsageLine: "eval <file options>",
		Short:     "scores parsed sentences against gold trees",
		Long: `
computes unlabeled and labeled attachment scores of a parsed file

	$ ./arcparse eval -in <parsed conll> -ing <gold conll> [-if <column format>]

`,
		Flag: *flag.NewFlagSet("eval", flag.ExitOnError),
	}
	addConfigFlags(&cmd.Flag)
	cmd.Flag.StringVar(&input, "in", "", "Parsed Conll File")
	cmd.Flag.StringVar(&inputGold, "ing", "", "Gold Conll File")
	return cmd
}
