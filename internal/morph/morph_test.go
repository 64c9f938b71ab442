package morph

import (
	"testing"

	"github.com/jtpils/lidarseg/internal/raster"
)

func TestIndicesToMaskRoundTrip(t *testing.T) {
	idx := []raster.Coord{{X: 1, Y: 1}, {X: 3, Y: 2}}
	m := IndicesToMask(idx, 5, 5)
	back := MaskToIndices(m)
	if len(back) != len(idx) {
		t.Fatalf("got %d indices, want %d", len(back), len(idx))
	}
	for i, c := range back {
		if c != idx[i] {
			t.Errorf("index %d: got %v, want %v", i, c, idx[i])
		}
	}
}

func TestXor(t *testing.T) {
	a := NewMask(3, 3)
	a.Data[0] = 255
	b := NewMask(3, 3)
	b.Data[0] = 255
	b.Data[1] = 255
	x := Xor(a, b)
	if x.Data[0] != 0 || x.Data[1] != 255 {
		t.Errorf("xor mismatch: %v", x.Data)
	}
}

func TestErodeDilateRoundTripAwayFromBorder(t *testing.T) {
	m := NewMask(11, 11)
	for y := int32(3); y <= 7; y++ {
		for x := int32(3); x <= 7; x++ {
			m.Data[m.Index(raster.Coord{X: x, Y: y})] = 255
		}
	}
	dilated := Dilate(m, 1)
	eroded := Erode(dilated, 1)
	for y := int32(3); y <= 7; y++ {
		for x := int32(3); x <= 7; x++ {
			if !eroded.At(raster.Coord{X: x, Y: y}) {
				t.Errorf("pixel (%d,%d) lost after erode(dilate(m,1),1)", x, y)
			}
		}
	}
}

func TestEroderRemovesThinSpur(t *testing.T) {
	m := NewMask(15, 15)
	for y := int32(5); y <= 9; y++ {
		for x := int32(5); x <= 9; x++ {
			m.Data[m.Index(raster.Coord{X: x, Y: y})] = 255
		}
	}
	// one-pixel-wide spur sticking out to the right.
	m.Data[m.Index(raster.Coord{X: 10, Y: 7})] = 255
	m.Data[m.Index(raster.Coord{X: 11, Y: 7})] = 255

	eroded := Erode(m, 3)
	if eroded.At(raster.Coord{X: 11, Y: 7}) {
		t.Errorf("spur pixel should have been removed by erosion")
	}
	redilated := Dilate(eroded, 3)
	// central square should reappear.
	if !redilated.At(raster.Coord{X: 7, Y: 7}) {
		t.Errorf("center of square should survive erode+dilate")
	}
}

func TestRegionAroundClipsToBounds(t *testing.T) {
	region := RegionAround(raster.Coord{X: 0, Y: 0}, 1, 5, 5)
	for _, c := range region {
		if c.X < 0 || c.Y < 0 {
			t.Errorf("region leaked out of bounds: %v", c)
		}
	}
	if len(region) != 4 {
		t.Errorf("corner region size = %d, want 4", len(region))
	}
}

func TestMedianOfOddAndEven(t *testing.T) {
	if med, ok := MedianOf([]float32{3, 1, 2}); !ok || med != 2 {
		t.Errorf("median([3,1,2]) = %v, %v, want 2,true", med, ok)
	}
	if med, ok := MedianOf([]float32{4, 1, 3, 2}); !ok || med != 2.5 {
		t.Errorf("median([4,1,3,2]) = %v, %v, want 2.5,true", med, ok)
	}
	if _, ok := MedianOf(nil); ok {
		t.Errorf("median of empty slice should report ok=false")
	}
}
