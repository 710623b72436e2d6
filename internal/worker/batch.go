package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/pipeline"
)

// Processor runs the pipeline over one statement file.
type Processor interface {
	Process(ctx context.Context, path string, in pipeline.Inputs) (*model.Report, error)
}

// FileJob processes a single statement file.
type FileJob struct {
	Path      string
	Inputs    pipeline.Inputs
	Processor Processor
}

// Execute runs the job.
func (j *FileJob) Execute(ctx context.Context) Result {
	rep, err := j.Processor.Process(ctx, j.Path, j.Inputs)
	return &FileResult{Path: j.Path, Report: rep, Error: err}
}

// FileResult is the outcome of processing one statement file.
type FileResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// GetError returns the processing error, if any.
func (r *FileResult) GetError() error {
	return r.Error
}

// BatchProcessor processes multiple statement files concurrently. Every
// file shares the same session inputs (profile, policies, allocations).
type BatchProcessor struct {
	processor   Processor
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(processor Processor, concurrency int) *BatchProcessor {
	return &BatchProcessor{processor: processor, concurrency: concurrency}
}

// ProcessPaths processes the given statement files concurrently and
// returns results ordered by path.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string, in pipeline.Inputs) []*FileResult {
	if len(paths) == 0 {
		return []*FileResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&FileJob{Path: path, Inputs: in, Processor: b.processor})
	}

	raw := pool.Wait()
	results := make([]*FileResult, 0, len(raw))
	for _, r := range raw {
		if fr, ok := r.(*FileResult); ok {
			results = append(results, fr)
		}
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	return results
}

// CollectPaths expands a batch argument into statement file paths: a
// directory yields its CSV/XLSX files, anything else is read as a list
// file with one path per line ('#' starts a comment).
func CollectPaths(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", arg, err)
	}

	if info.IsDir() {
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", arg, err)
		}
		var paths []string
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			switch strings.ToLower(filepath.Ext(e.Name())) {
			case ".csv", ".xlsx":
				paths = append(paths, filepath.Join(arg, e.Name()))
			}
		}
		if len(paths) == 0 {
			return nil, fmt.Errorf("no CSV or XLSX files in %s", arg)
		}
		sort.Strings(paths)
		return paths, nil
	}

	f, err := os.Open(arg)
	if err != nil {
		return nil, fmt.Errorf("open list file: %w", err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read list file: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no statement paths in %s", arg)
	}
	return paths, nil
}
