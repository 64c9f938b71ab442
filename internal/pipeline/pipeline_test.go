package pipeline

import (
	"testing"

	"github.com/jtpils/lidarseg/internal/graphcut/refflow"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/session"
)

func TestSegmentConstantImageOppositeSeeds(t *testing.T) {
	img := raster.NewImage(10, 10, 4)
	for i := range img.Data {
		img.Data[i] = 0.5
	}
	seeds := session.SeedSet{
		Sources: []raster.Coord{{X: 0, Y: 0}},
		Sinks:   []raster.Coord{{X: 9, Y: 9}},
	}
	params := session.DefaultParams()
	params.Bins = 4
	params.Lambda = 0.1
	params.Dissimilarity = session.Weighted
	params.WeightedW = [4]float32{1, 1, 1, 1}

	res, err := Segment(img, seeds, params, refflow.BFSSolver{}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count := 0
	for _, v := range res.Mask.Data {
		if v != 0 {
			count++
		}
	}
	if count < 40 || count > 60 {
		t.Errorf("source-side count = %d, want in [40,60]", count)
	}
	srcIdx := img.Index(raster.Coord{X: 0, Y: 0})
	snkIdx := img.Index(raster.Coord{X: 9, Y: 9})
	if res.Mask.Data[srcIdx] == 0 {
		t.Error("source pixel should be foreground")
	}
	if res.Mask.Data[snkIdx] != 0 {
		t.Error("sink pixel should be background")
	}
}

func TestSegmentVerticalDepthStep(t *testing.T) {
	img := raster.NewImage(20, 20, 4)
	for y := int32(0); y < 20; y++ {
		for x := int32(0); x < 20; x++ {
			c := raster.Coord{X: x, Y: y}
			if x < 10 {
				img.Set(c, 3, 0.2)
			} else {
				img.Set(c, 3, 0.8)
			}
		}
	}
	seeds := session.SeedSet{
		Sources: []raster.Coord{{X: 2, Y: 10}},
		Sinks:   []raster.Coord{{X: 17, Y: 10}},
	}
	params := session.DefaultParams()
	params.Bins = 10
	params.Lambda = 1.0
	params.Dissimilarity = session.Depth

	res, err := Segment(img, seeds, params, refflow.BFSSolver{}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for y := int32(0); y < 20; y++ {
		for x := int32(0); x < 20; x++ {
			idx := img.Index(raster.Coord{X: x, Y: y})
			want := x < 10
			got := res.Mask.Data[idx] != 0
			if got != want {
				t.Fatalf("pixel (%d,%d): got foreground=%v, want %v", x, y, got, want)
			}
		}
	}
}

func TestSegmentTwoPassReseed(t *testing.T) {
	img := raster.NewImage(20, 20, 4)
	for y := int32(0); y < 20; y++ {
		for x := int32(0); x < 20; x++ {
			c := raster.Coord{X: x, Y: y}
			if x < 10 {
				img.Set(c, 3, 0.2)
			} else {
				img.Set(c, 3, 0.8)
			}
		}
	}
	seeds := session.SeedSet{
		Sources: []raster.Coord{{X: 2, Y: 10}},
	}
	params := session.DefaultParams()
	params.Bins = 10
	params.Lambda = 1.0
	params.BackgroundCheckRadius = 3
	params.BackgroundThreshold = 0.4

	res, err := SegmentTwoPass(img, seeds, params, refflow.BFSSolver{}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, v := range res.Mask.Data {
		if v != res.PassAMask.Data[i] {
			t.Fatalf("pass B mask diverges from pass A at index %d", i)
		}
	}
	if res.BoundaryGrowth.NewSinks == 0 {
		t.Error("expected at least one boundary pixel promoted to sink at the depth step")
	}
}

func TestSegmentTwoPassForcesIncludeFlags(t *testing.T) {
	img := raster.NewImage(20, 20, 4)
	for y := int32(0); y < 20; y++ {
		for x := int32(0); x < 20; x++ {
			c := raster.Coord{X: x, Y: y}
			if x < 10 {
				img.Set(c, 3, 0.2)
			} else {
				img.Set(c, 3, 0.8)
			}
		}
	}
	seeds := session.SeedSet{
		Sources: []raster.Coord{{X: 2, Y: 10}},
	}
	params := session.DefaultParams()
	params.IncludeColour = true
	params.IncludeDepth = false // caller asked for colour-only; two-pass must still force both on

	res, err := SegmentTwoPass(img, seeds, params, refflow.BFSSolver{}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !containsChannel(res.PassASummary.ActiveChannels, 3) {
		t.Errorf("pass A active channels = %v, want depth channel 3 included regardless of caller's IncludeDepth", res.PassASummary.ActiveChannels)
	}
	if !containsChannel(res.PassBSummary.ActiveChannels, 3) {
		t.Errorf("pass B active channels = %v, want depth channel 3 included regardless of caller's IncludeDepth", res.PassBSummary.ActiveChannels)
	}
}

func containsChannel(channels []int32, c int32) bool {
	for _, ch := range channels {
		if ch == c {
			return true
		}
	}
	return false
}

func TestSegmentTwoPassNoDiscontinuityGrowsNoSinks(t *testing.T) {
	img := raster.NewImage(20, 20, 4)
	for i := range img.Data {
		img.Data[i] = 0.5
	}
	for y := int32(8); y < 12; y++ {
		for x := int32(8); x < 12; x++ {
			c := raster.Coord{X: x, Y: y}
			img.Set(c, 0, 0.9)
			img.Set(c, 1, 0.1)
			img.Set(c, 2, 0.1)
		}
	}
	seeds := session.SeedSet{
		Sources: []raster.Coord{{X: 9, Y: 9}},
	}
	params := session.DefaultParams()
	params.Bins = 10
	params.Lambda = 1.0
	params.BackgroundThreshold = 0.4

	res, err := SegmentTwoPass(img, seeds, params, refflow.BFSSolver{}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BoundaryGrowth.NewSinks != 0 {
		t.Errorf("expected no new sinks with a flat depth channel, got %d", res.BoundaryGrowth.NewSinks)
	}
}
