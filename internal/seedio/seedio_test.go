package seedio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jtpils/lidarseg/internal/morph"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/session"
)

func TestSeedTextRoundTrip(t *testing.T) {
	seeds := session.SeedSet{
		Sources: []raster.Coord{{X: 1, Y: 2}, {X: 3, Y: 4}},
		Sinks:   []raster.Coord{{X: 5, Y: 6}},
	}
	var buf bytes.Buffer
	if err := WriteSeedText(&buf, seeds); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSeedText(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Sources) != 2 || len(got.Sinks) != 1 {
		t.Fatalf("unexpected seed counts: %+v", got)
	}
}

func TestSeedTextRejectsMalformedLine(t *testing.T) {
	_, err := ReadSeedText(strings.NewReader("f 1\n"))
	if err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestSeedPNGRoundTrip(t *testing.T) {
	seeds := session.SeedSet{
		Sources: []raster.Coord{{X: 2, Y: 2}},
		Sinks:   []raster.Coord{{X: 5, Y: 5}},
	}
	var buf bytes.Buffer
	if err := WriteSeedPNG(&buf, seeds, 8, 8); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSeedPNG(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Sources) != 1 || got.Sources[0] != (raster.Coord{X: 2, Y: 2}) {
		t.Errorf("sources mismatch: %+v", got.Sources)
	}
	if len(got.Sinks) != 1 || got.Sinks[0] != (raster.Coord{X: 5, Y: 5}) {
		t.Errorf("sinks mismatch: %+v", got.Sinks)
	}
}

func TestMaskPNGRoundTrip(t *testing.T) {
	m := morph.NewMask(4, 4)
	m.Data[0] = 255
	m.Data[5] = 255
	var buf bytes.Buffer
	if err := WriteMaskPNG(&buf, m); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadMaskPNG(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.W != 4 || got.H != 4 {
		t.Fatalf("unexpected dimensions: %dx%d", got.W, got.H)
	}
	if got.Data[0] != 255 || got.Data[5] != 255 {
		t.Errorf("mask data mismatch: %v", got.Data)
	}
}
