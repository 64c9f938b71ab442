package ops

import (
	"bytes"
	"testing"

	"github.com/jtpils/lidarseg/internal/graphcut/refflow"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/session"
)

func makeJob(id int) *Job {
	img := raster.NewImage(6, 6, 4)
	for i := range img.Data {
		img.Data[i] = 0.5
	}
	return &Job{
		ID:    id,
		Image: img,
		Seeds: session.SeedSet{
			Sources: []raster.Coord{{X: 0, Y: 0}},
			Sinks:   []raster.Coord{{X: 5, Y: 5}},
		},
		Params: session.DefaultParams(),
	}
}

func TestOpSegmentInactiveIsNoop(t *testing.T) {
	op := &OpSegment{Active: false}
	job := makeJob(0)
	var buf bytes.Buffer
	out, err := op.Apply(job, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.Mask != nil {
		t.Error("inactive OpSegment should not populate Result")
	}
}

func TestOpSegmentProducesMask(t *testing.T) {
	op := NewOpSegment(refflow.BFSSolver{})
	job := makeJob(1)
	var buf bytes.Buffer
	out, err := op.Apply(job, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.Mask == nil {
		t.Fatal("expected a populated mask")
	}
	if len(out.Result.Mask.Data) != 36 {
		t.Errorf("mask size = %d, want 36", len(out.Result.Mask.Data))
	}
}

func TestOpSequenceChainsSteps(t *testing.T) {
	seq := NewOpSequence([]OperatorUnary{NewOpSegment(refflow.BFSSolver{})})
	job := makeJob(2)
	var buf bytes.Buffer
	out, err := seq.Apply(job, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.Mask == nil {
		t.Fatal("expected sequence to run OpSegment and populate a mask")
	}
}

func TestOpParallelRunsAllJobs(t *testing.T) {
	jobs := []*Job{makeJob(0), makeJob(1), makeJob(2)}
	par := NewOpParallel(NewOpSegment(refflow.BFSSolver{}), 2)
	var buf bytes.Buffer
	out, err := par.ApplyToJobs(jobs, &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, j := range out {
		if j == nil || j.Result.Mask == nil {
			t.Errorf("job %d missing result", i)
		}
	}
}
