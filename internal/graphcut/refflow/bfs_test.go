package refflow

import (
	"testing"

	"github.com/jtpils/lidarseg/internal/graphcut"
)

func TestMaxFlowSimpleChain(t *testing.T) {
	// S -> 0 (cap 10), 0 -> 1 (cap 5), 1 -> T (cap 10). Bottleneck is 5.
	g := &graphcut.Graph{
		NumNodes: 2,
		SLinks:   []graphcut.SLink{{Node: 0, Cap: 10}},
		TLinks:   []graphcut.TLink{{Node: 1, Cap: 10}},
		NLinks:   []graphcut.NLink{{A: 0, B: 1, Cap: 5}},
	}
	res, err := BFSSolver{}.MaxFlow(g, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Flow != 5 {
		t.Errorf("flow = %v, want 5", res.Flow)
	}
	if !res.SourceSide[0] {
		t.Errorf("node 0 should be on source side")
	}
	if res.SourceSide[1] {
		t.Errorf("node 1 should be on sink side")
	}
}

func TestMaxFlowTwoIsolatedComponents(t *testing.T) {
	// Node 0 strongly tied to source, node 1 strongly tied to sink, no edge
	// between them: min cut should separate them exactly along that line.
	g := &graphcut.Graph{
		NumNodes: 2,
		SLinks:   []graphcut.SLink{{Node: 0, Cap: 100}},
		TLinks:   []graphcut.TLink{{Node: 1, Cap: 100}},
	}
	res, err := BFSSolver{}.MaxFlow(g, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Flow != 0 {
		t.Errorf("flow = %v, want 0 (no path)", res.Flow)
	}
	if !res.SourceSide[0] || res.SourceSide[1] {
		t.Errorf("unexpected side assignment: %v", res.SourceSide)
	}
}

func TestMaxFlowRespectsCancellation(t *testing.T) {
	g := &graphcut.Graph{
		NumNodes: 1,
		SLinks:   []graphcut.SLink{{Node: 0, Cap: 1}},
		TLinks:   []graphcut.TLink{{Node: 0, Cap: 1}},
	}
	cancel := make(chan struct{})
	close(cancel)
	_, err := BFSSolver{}.MaxFlow(g, cancel)
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
