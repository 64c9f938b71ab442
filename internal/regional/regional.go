// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package regional builds the per-pixel terminal (source/sink) capacities
// from seeded foreground/background histograms.
package regional

import (
	"fmt"
	"io"

	"github.com/jtpils/lidarseg/internal/histogram"
	"github.com/jtpils/lidarseg/internal/raster"
)

// Capacities holds one source-link and one sink-link capacity per pixel,
// row-major, plus the histogram banks that produced them (useful for log
// diagnostics, see Summary).
type Capacities struct {
	TSource []float32 // S->p capacity, large for seeded foreground pixels
	TSink   []float32 // p->T capacity, large for seeded background pixels
	FG, BG  *histogram.Bank
}

// Summary is a small log-friendly description of what the regional term was
// built from, supplementing spec.md per SPEC_FULL.md §4.10.
type Summary struct {
	SourceSeeds, SinkSeeds int
	ActiveChannels         []int32
	Bins                   int32
}

func (s Summary) String() string {
	return fmt.Sprintf("regional term: %d source seeds, %d sink seeds, channels %v, %d bins",
		s.SourceSeeds, s.SinkSeeds, s.ActiveChannels, s.Bins)
}

// Build computes t_source(p) and t_sink(p) for every pixel of img, per
// spec.md §4.4. img must already be normalized. sources/sinks are seed
// pixel coordinates, already deduplicated and in-bounds. A pixel listed in
// both sources and sinks never fails the build; it logs a warning to
// logWriter and the sink assignment wins, per spec.md §4.6.
func Build(img *raster.Image, sources, sinks []raster.Coord, includeColour, includeDepth bool, bins int32, lambda float32, logWriter io.Writer) (Capacities, Summary) {
	warnSeedCollisions(img, sources, sinks, logWriter)

	active := histogram.ActiveChannels(includeColour, includeDepth)

	fgPixels := gatherPixels(img, sources)
	bgPixels := gatherPixels(img, sinks)
	fg := histogram.Build(fgPixels, active, bins)
	bg := histogram.Build(bgPixels, active, bins)

	n := img.Pixels()
	tSource := make([]float32, n)
	tSink := make([]float32, n)

	maxData := float32(0)
	for i := int32(0); i < n; i++ {
		p := img.Pixel(i)
		lFG := fg.NegativeLogLikelihood(p)
		lBG := bg.NegativeLogLikelihood(p)
		tSource[i] = lambda * lBG
		tSink[i] = lambda * lFG
		if tSource[i] > maxData {
			maxData = tSource[i]
		}
		if tSink[i] > maxData {
			maxData = tSink[i]
		}
	}

	// Hard-constraint sentinel: exceeds any data-term capacity plus the largest
	// possible sum of one pixel's neighbour capacities (8 neighbours, each
	// smoothness weight at most 1), so no min cut separates a seed from its
	// own terminal.
	k := 1 + maxData + 8
	applySeeds(img, tSource, tSink, sources, k)       // source seed: t_source=K, t_sink=0
	applySeeds(img, tSink, tSource, sinks, k)         // sink seed:   t_sink=K,   t_source=0

	return Capacities{TSource: tSource, TSink: tSink, FG: fg, BG: bg}, Summary{
		SourceSeeds: len(sources), SinkSeeds: len(sinks), ActiveChannels: active, Bins: bins,
	}
}

// applySeeds sets each seeded pixel's own-side capacity to k and the
// opposite side's capacity to 0; later writes win, matching spec.md's
// "last assignment wins" rule for a pixel listed in both Sources and Sinks.
func applySeeds(img *raster.Image, own []float32, opposite []float32, seeds []raster.Coord, k float32) {
	for _, c := range seeds {
		idx := img.Index(c)
		own[idx] = k
		opposite[idx] = 0
	}
}

// warnSeedCollisions logs one line per pixel that appears in both sources
// and sinks; applySeeds' "last write wins" rule gives the sink side
// priority, per spec.md §4.6.
func warnSeedCollisions(img *raster.Image, sources, sinks []raster.Coord, logWriter io.Writer) {
	if logWriter == nil {
		return
	}
	srcIdx := make(map[int32]bool, len(sources))
	for _, c := range sources {
		srcIdx[img.Index(c)] = true
	}
	for _, c := range sinks {
		if srcIdx[img.Index(c)] {
			fmt.Fprintf(logWriter, "warning: seed at (%d,%d) is listed as both source and sink; sink wins\n", c.X, c.Y)
		}
	}
}

func gatherPixels(img *raster.Image, coords []raster.Coord) [][]float32 {
	pixels := make([][]float32, 0, len(coords))
	for _, c := range coords {
		idx := img.Index(c)
		pixels = append(pixels, img.Pixel(idx))
	}
	return pixels
}
