package session

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jtpils/lidarseg/internal/raster"
)

func TestParamsValidate(t *testing.T) {
	p := DefaultParams()
	if err := p.Validate(); err != nil {
		t.Fatalf("default params should validate: %v", err)
	}
	bad := p
	bad.Lambda = 0
	if err := bad.Validate(); err == nil {
		t.Error("lambda=0 should be invalid")
	}
	bad = p
	bad.Bins = 0
	if err := bad.Validate(); err == nil {
		t.Error("bins=0 should be invalid")
	}
	bad = p
	bad.IncludeColour = false
	bad.IncludeDepth = false
	if err := bad.Validate(); err == nil {
		t.Error("both flags false should be invalid")
	}
}

func TestSeedSetCleanDropsOutOfBoundsAndDuplicates(t *testing.T) {
	img := raster.NewImage(4, 4, 4)
	seeds := SeedSet{
		Sources: []raster.Coord{{X: 0, Y: 0}, {X: 0, Y: 0}, {X: 10, Y: 10}},
		Sinks:   []raster.Coord{{X: 3, Y: 3}},
	}
	var buf bytes.Buffer
	cleaned := seeds.Clean(img, &buf)
	if len(cleaned.Sources) != 1 {
		t.Errorf("expected 1 source after clean, got %d", len(cleaned.Sources))
	}
	if len(cleaned.Sinks) != 1 {
		t.Errorf("expected 1 sink after clean, got %d", len(cleaned.Sinks))
	}
	if !strings.Contains(buf.String(), "dropped") {
		t.Errorf("expected a log line about dropped seeds, got %q", buf.String())
	}
}

func TestSeedSetIsEmpty(t *testing.T) {
	if !(SeedSet{}).IsEmpty() {
		t.Error("zero-value SeedSet should be empty")
	}
	if (SeedSet{Sources: []raster.Coord{{X: 0, Y: 0}}}).IsEmpty() {
		t.Error("non-empty sources should not report empty")
	}
}
