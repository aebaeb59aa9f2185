package meshprep

import (
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// A FileResult records the outcome of processing one file in a batch.
type FileResult struct {
	Name string
	Err  error
}

// A BatchResult summarizes a batch run.
type BatchResult struct {
	Results []FileResult
}

// Succeeded returns the number of files processed without error.
func (b *BatchResult) Succeeded() int {
	return len(b.Results) - b.Failed()
}

// Failed returns the number of files that could not be processed.
func (b *BatchResult) Failed() int {
	n := 0
	for _, r := range b.Results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// ProcessFile runs the pipeline on a single file, writing the result to
// outputPath only if every stage succeeds.
func ProcessFile(p *Pipeline, inputPath, outputPath string) error {
	m, err := LoadMesh(inputPath)
	if err != nil {
		return err
	}
	m, err = p.Run(m)
	if err != nil {
		return err
	}
	return SaveMesh(m, outputPath)
}

// BatchProcess applies the same pipeline to every recognized mesh file
// directly inside inputDir, writing each result to the same name under
// outputDir. Files matching pattern (a path.Match glob; empty matches
// everything) are considered. A failure on one file is recorded and
// does not stop the rest of the batch.
func BatchProcess(p *Pipeline, inputDir, outputDir, pattern string) (*BatchResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, errors.Wrap(err, "batch process")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !RecognizedFormat(entry.Name()) {
			continue
		}
		if pattern != "" {
			match, err := path.Match(pattern, entry.Name())
			if err != nil {
				return nil, errors.Wrap(err, "batch process: bad pattern")
			}
			if !match {
				continue
			}
		}
		names = append(names, entry.Name())
	}
	if len(names) == 0 {
		return nil, errors.Errorf("batch process: no mesh files found in %s", inputDir)
	}
	slices.Sort(names)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, errors.Wrap(err, "batch process")
	}

	result := &BatchResult{}
	for _, name := range names {
		err := ProcessFile(p, filepath.Join(inputDir, name), filepath.Join(outputDir, name))
		result.Results = append(result.Results, FileResult{Name: name, Err: err})
	}
	return result, nil
}
