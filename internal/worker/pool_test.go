package worker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/ifrs-tools/restate/internal/model"
	"github.com/ifrs-tools/restate/internal/pipeline"
)

type testJob struct {
	id      int
	fail    bool
	counter *atomic.Int64
}

type testResult struct {
	id  int
	err error
}

func (r *testResult) GetError() error { return r.err }

func (j *testJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	if j.fail {
		return &testResult{id: j.id, err: errors.New("boom")}
	}
	return &testResult{id: j.id}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(4)
	pool.Start()

	const n = 16
	for i := 0; i < n; i++ {
		pool.Submit(&testJob{id: i, counter: &counter})
	}
	results := pool.Wait()

	if counter.Load() != n {
		t.Errorf("executed %d jobs, want %d", counter.Load(), n)
	}
	if len(results) != n {
		t.Errorf("results = %d, want %d", len(results), n)
	}
}

func TestPool_ZeroWorkersStillRuns(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&testJob{counter: &counter})
	results := pool.Wait()
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestPool_ReportsJobErrors(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(2)
	pool.Start()
	pool.Submit(&testJob{id: 0, counter: &counter})
	pool.Submit(&testJob{id: 1, fail: true, counter: &counter})
	results := pool.Wait()

	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 1 {
		t.Errorf("failures = %d, want 1", failures)
	}
}

// fakeProcessor stands in for the pipeline in batch tests.
type fakeProcessor struct {
	failOn string
}

func (f *fakeProcessor) Process(ctx context.Context, path string, in pipeline.Inputs) (*model.Report, error) {
	if path == f.failOn {
		return nil, fmt.Errorf("cannot process %s", path)
	}
	return &model.Report{SourceFile: path}, nil
}

func TestBatchProcessor_ResultsOrderedByPath(t *testing.T) {
	b := NewBatchProcessor(&fakeProcessor{}, 4)
	paths := []string{"c.csv", "a.csv", "b.csv"}

	results := b.ProcessPaths(context.Background(), paths, pipeline.Inputs{})

	var got []string
	for _, r := range results {
		got = append(got, r.Path)
		if r.Error != nil {
			t.Errorf("%s: %v", r.Path, r.Error)
		}
		if r.Report == nil || r.Report.SourceFile != r.Path {
			t.Errorf("%s: missing report", r.Path)
		}
	}
	want := []string{"a.csv", "b.csv", "c.csv"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestBatchProcessor_FailureDoesNotStopOthers(t *testing.T) {
	b := NewBatchProcessor(&fakeProcessor{failOn: "bad.csv"}, 2)
	results := b.ProcessPaths(context.Background(), []string{"good.csv", "bad.csv"}, pipeline.Inputs{})

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	for _, r := range results {
		failed := r.Error != nil
		if (r.Path == "bad.csv") != failed {
			t.Errorf("%s: error = %v", r.Path, r.Error)
		}
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(&fakeProcessor{}, 2)
	if results := b.ProcessPaths(context.Background(), nil, pipeline.Inputs{}); len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestCollectPaths_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.xlsx", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := CollectPaths(dir)
	if err != nil {
		t.Fatalf("CollectPaths: %v", err)
	}
	want := []string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.csv")}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestCollectPaths_ListFile(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "batch.txt")
	content := "# quarterly statements\nq1.csv\n\nq2.csv\n"
	if err := os.WriteFile(list, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	paths, err := CollectPaths(list)
	if err != nil {
		t.Fatalf("CollectPaths: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"q1.csv", "q2.csv"}) {
		t.Errorf("paths = %v", paths)
	}
}

func TestCollectPaths_Errors(t *testing.T) {
	if _, err := CollectPaths(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing argument")
	}

	empty := t.TempDir()
	if _, err := CollectPaths(empty); err == nil {
		t.Error("expected an error for a directory with no statements")
	}
}
