package classifier

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"arcparse/alg/featurevector"
)

// Instance is one labeled training vector.
type Instance struct {
	Label  int
	Vector featurevector.Binary
}

// WriteInstance writes "label id:1 id:1 ..." with ascending ids.
func WriteInstance(writer io.Writer, label int, vec featurevector.Binary) error {
	line := strconv.Itoa(label)
	if vec.Len() > 0 {
		line += " " + vec.String()
	}
	_, err := io.WriteString(writer, line+"\n")
	return err
}

// ReadDataset calls fn for every instance of a dataset, in order.
func ReadDataset(reader io.Reader, fn func(Instance) error) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lineNum int
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		label, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("dataset line %d: bad label %q", lineNum, fields[0])
		}
		vec, err := featurevector.ParseBinary(fields[1:])
		if err != nil {
			return fmt.Errorf("dataset line %d: %w", lineNum, err)
		}
		if err := fn(Instance{label, vec}); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// ReadDatasetFile loads a whole dataset.
func ReadDatasetFile(filename string) ([]Instance, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer file.Close()
	var instances []Instance
	err = ReadDataset(file, func(inst Instance) error {
		instances = append(instances, inst)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return instances, nil
}
