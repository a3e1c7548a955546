// Package batch plans and runs the transformation of a list of mesh files.
package batch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Faultbox/meshxform/pkg/formats"
)

var (
	// ErrNoInputs is returned when no input file was given.
	ErrNoInputs = errors.New("no input files")
	// ErrOutputPath is returned when the output path cannot receive the inputs.
	ErrOutputPath = errors.New("invalid output path")
	// ErrFormatMismatch is returned when an output would change the file format.
	ErrFormatMismatch = errors.New("input and output formats differ")
)

// Job is one input file and the path its transformed copy is written to.
type Job struct {
	Input  string
	Output string
}

// Plan resolves the destination of every input.
//
// A directory output receives each input under its base name. Any other
// output is used verbatim and therefore only accepts a single input.
// Plan reads nothing but the output's file info.
func Plan(inputs []string, output string) ([]Job, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	if output == "" {
		return nil, fmt.Errorf("%w: output path is empty", ErrOutputPath)
	}

	isDir := false
	if info, err := os.Stat(output); err == nil {
		isDir = info.IsDir()
	}
	if len(inputs) > 1 && !isDir {
		return nil, fmt.Errorf("%w: %d inputs need an existing output directory, %q is not one",
			ErrOutputPath, len(inputs), output)
	}

	jobs := make([]Job, 0, len(inputs))
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		dest := output
		if isDir {
			dest = filepath.Join(output, filepath.Base(in))
		}

		key := filepath.Clean(dest)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: %q and %q both write %q", ErrOutputPath, prev, in, dest)
		}
		seen[key] = in

		if err := sameFormat(in, dest); err != nil {
			return nil, err
		}
		jobs = append(jobs, Job{Input: in, Output: dest})
	}
	return jobs, nil
}

func sameFormat(in, out string) error {
	src, err := formats.ForPath(in)
	if err != nil {
		return err
	}
	dst, err := formats.ForPath(out)
	if err != nil {
		return err
	}
	if src.Name() != dst.Name() {
		return fmt.Errorf("%w: %s is %s, %s is %s", ErrFormatMismatch, in, src.Name(), out, dst.Name())
	}
	return nil
}
