package smoothness

import (
	"testing"

	"github.com/jtpils/lidarseg/internal/pixel"
	"github.com/jtpils/lidarseg/internal/raster"
)

func TestConstantImageWeightsAreOne(t *testing.T) {
	img := raster.NewImage(3, 3, 4)
	for i := range img.Data {
		img.Data[i] = 0.42
	}
	w := Build(img, pixel.WeightedDifference{W: [4]float32{1, 1, 1, 1}})
	if w.Sigma2 != 0 {
		t.Fatalf("sigma2 = %v, want 0 for constant image", w.Sigma2)
	}
	for _, p := range w.Pairs {
		if p.Weight != 1 {
			t.Errorf("pair %d-%d weight = %v, want 1", p.A, p.B, p.Weight)
		}
	}
}

func TestWeightsAreBounded(t *testing.T) {
	img := raster.NewImage(3, 3, 4)
	for y := int32(0); y < 3; y++ {
		for x := int32(0); x < 3; x++ {
			img.Set(raster.Coord{X: x, Y: y}, 3, float32(x+y)/4.0)
		}
	}
	w := Build(img, pixel.DepthDifference{})
	if len(w.Pairs) == 0 {
		t.Fatal("expected at least one neighbour pair")
	}
	for _, p := range w.Pairs {
		if p.Weight < 0 || p.Weight > 1 {
			t.Errorf("pair %d-%d weight %v out of [0,1]", p.A, p.B, p.Weight)
		}
	}
}

func TestDiagonalPairsWeightedLessThanAxialForEqualDissimilarity(t *testing.T) {
	img := raster.NewImage(2, 2, 4)
	img.Set(raster.Coord{X: 0, Y: 0}, 3, 0.0)
	img.Set(raster.Coord{X: 1, Y: 0}, 3, 1.0)
	img.Set(raster.Coord{X: 0, Y: 1}, 3, 0.0)
	img.Set(raster.Coord{X: 1, Y: 1}, 3, 1.0)

	w := Build(img, pixel.DepthDifference{})
	var axial, diagonal float32
	for _, p := range w.Pairs {
		ac := img.CoordOf(p.A)
		bc := img.CoordOf(p.B)
		dx, dy := ac.X-bc.X, ac.Y-bc.Y
		if dx*dx+dy*dy == 1 {
			axial = p.Weight
		} else {
			diagonal = p.Weight
		}
	}
	if diagonal >= axial {
		t.Errorf("expected diagonal weight (%v) < axial weight (%v) for equal dissimilarity", diagonal, axial)
	}
}
