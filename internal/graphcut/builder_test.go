package graphcut

import (
	"testing"

	"github.com/jtpils/lidarseg/internal/regional"
	"github.com/jtpils/lidarseg/internal/smoothness"
)

func TestBuildOmitsZeroCapacityTerminalLinks(t *testing.T) {
	caps := regional.Capacities{
		TSource: []float32{5, 0, 0},
		TSink:   []float32{0, 3, 0},
	}
	weights := smoothness.Weights{
		Pairs: []smoothness.Pair{{A: 0, B: 1, Weight: 0.5}},
	}
	g := Build(3, caps, weights)
	if len(g.SLinks) != 1 || g.SLinks[0].Node != 0 || g.SLinks[0].Cap != 5 {
		t.Errorf("unexpected s-links: %+v", g.SLinks)
	}
	if len(g.TLinks) != 1 || g.TLinks[0].Node != 1 || g.TLinks[0].Cap != 3 {
		t.Errorf("unexpected t-links: %+v", g.TLinks)
	}
	if len(g.NLinks) != 1 || g.NLinks[0].Cap != 0.5 {
		t.Errorf("unexpected n-links: %+v", g.NLinks)
	}
}
