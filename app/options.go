package app

import (
	"fmt"
	"io"
	"os"

	"arcparse/alg/classifier"
	deptransition "arcparse/nlp/parser/dependency/transition"

	"github.com/gonuts/commander"
	"github.com/gonuts/flag"
	"gopkg.in/yaml.v2"
)

// Available lists the registry keys every pluggable part can be chosen by.
func Available() map[string][]string {
	return map[string][]string{
		"transition_systems": deptransition.TransitionSystems(),
		"selection_methods":  deptransition.SelectionMethods(),
		"classifiers":        classifier.Keys(),
	}
}

func WriteOptions(w io.Writer) error {
	b, err := yaml.Marshal(Available())
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func Options(cmd *commander.Command, args []string) error {
	if err := WriteOptions(os.Stdout); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	return nil
}

func OptionsCmd() *commander.Command {
	return &commander.Command{
		Run:       Options,
		UsageLine: "options",
		Short:     "lists the available transition systems, selection methods and classifiers",
		Flag:      *flag.NewFlagSet("options", flag.ExitOnError),
	}
}
