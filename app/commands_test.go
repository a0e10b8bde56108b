package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"arcparse/nlp/format/conll"

	"github.com/gonuts/commander"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const TRAIN_CONLL = `1	The	_	DT	DT	_	2	det	_	_
2	dog	_	NN	NN	_	3	nsubj	_	_
3	barks	_	VBZ	VBZ	_	0	root	_	_

1	A	_	DT	DT	_	2	det	_	_
2	cat	_	NN	NN	_	3	nsubj	_	_
3	sees	_	VBZ	VBZ	_	0	root	_	_
4	the	_	DT	DT	_	5	det	_	_
5	dog	_	NN	NN	_	3	obj	_	_
`

// unannotated drops the head and deprel columns of a CoNLL text.
func unannotated(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		fields := strings.Split(line, "\t")
		if len(fields) == 10 {
			fields[6], fields[7] = "_", "_"
			lines[i] = strings.Join(fields, "\t")
		}
	}
	return strings.Join(lines, "\n")
}

func resetFlags() {
	confFile, arcSystemStr, featuresFile, classifierOpts = "", "", "", ""
	inputFormatStr, outputFormatStr, logLevel = "", "", ""
	workers, modelDir, trainFile = 0, "", ""
	input, outConll, inputGold = "", "", ""
	sequential = false
}

func run(t *testing.T, cmd *commander.Command, args ...string) error {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)
	require.NoError(t, cmd.Flag.Parse(args))
	return cmd.Run(cmd, cmd.Flag.Args())
}

func TestTrainParseEval(t *testing.T) {
	t.Setenv(CONFIG_ENV, "")
	t.Setenv("ARCPARSE_LOG_LEVEL", "error")
	dir := t.TempDir()
	gold := filepath.Join(dir, "gold.conll")
	raw := filepath.Join(dir, "raw.conll")
	model := filepath.Join(dir, "model")
	require.NoError(t, os.WriteFile(gold, []byte(TRAIN_CONLL), 0o644))
	require.NoError(t, os.WriteFile(raw, []byte(unannotated(TRAIN_CONLL)), 0o644))

	require.NoError(t, run(t, TrainCmd(), "-tc", gold, "-m", model, "-co=-it 5"))
	for _, name := range []string{"index.json", "features.txt", "model"} {
		assert.FileExists(t, filepath.Join(model, name))
	}

	batchOut := filepath.Join(dir, "batch.conll")
	seqOut := filepath.Join(dir, "seq.conll")
	require.NoError(t, run(t, ParseCmd(), "-m", model, "-in", raw, "-oc", batchOut, "-w", "2"))
	require.NoError(t, run(t, ParseCmd(), "-m", model, "-in", raw, "-oc", seqOut, "-seq"))

	batch, err := os.ReadFile(batchOut)
	require.NoError(t, err)
	seq, err := os.ReadFile(seqOut)
	require.NoError(t, err)
	assert.Equal(t, string(seq), string(batch))

	format, err := conll.ParseFormat(conll.DEFAULT_INPUT_FORMAT)
	require.NoError(t, err)
	parsed, err := conll.ReadFile(batchOut, format)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	for _, sent := range parsed {
		for _, tok := range sent.Words() {
			assert.True(t, tok.HasGold(), "token %d of the output has no relation", tok.ID)
		}
	}

	total, err := EvalFiles(batchOut, gold, format)
	require.NoError(t, err)
	assert.Equal(t, 8, total.Tokens)
	assert.Equal(t, 2, total.Population)

	require.NoError(t, run(t, DepEvalCmd(), "-in", batchOut, "-ing", gold))
}

func TestCommandsMissingInput(t *testing.T) {
	t.Setenv(CONFIG_ENV, "")
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.conll")
	assert.Error(t, run(t, TrainCmd(), "-tc", missing, "-m", dir))
	assert.Error(t, run(t, ParseCmd(), "-m", dir, "-in", missing, "-oc", filepath.Join(dir, "out.conll")))
	assert.Error(t, run(t, DepEvalCmd(), "-in", missing, "-ing", missing))
}
