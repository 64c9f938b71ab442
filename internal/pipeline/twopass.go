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

package pipeline

import (
	"fmt"
	"io"

	"github.com/jtpils/lidarseg/internal/graphcut"
	"github.com/jtpils/lidarseg/internal/morph"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/regional"
	"github.com/jtpils/lidarseg/internal/session"
)

// BoundaryGrowthReport is a log-friendly summary of how many background
// seeds SegmentTwoPass's boundary-growth step added, supplementing spec.md
// per SPEC_FULL.md §4.11.
type BoundaryGrowthReport struct {
	BoundaryPixels int
	NewSinks       int
}

func (r BoundaryGrowthReport) String() string {
	return fmt.Sprintf("boundary growth: %d boundary pixels examined, %d promoted to sinks", r.BoundaryPixels, r.NewSinks)
}

// TwoPassResult is SegmentTwoPass's return value: the final mask plus
// diagnostics from both passes.
type TwoPassResult struct {
	Mask           *morph.Mask
	PassAMask      *morph.Mask
	Flow           float32
	BoundaryGrowth BoundaryGrowthReport
	PassASummary   regional.Summary
	PassBSummary   regional.Summary
}

// SegmentTwoPass implements spec.md §4.7's LiDAR refinement pipeline: pass
// A with the depth dissimilarity, reseed foreground from mask_A, grow
// background seeds along the mask boundary where depth discontinuities
// exceed the threshold, then pass B with the weighted dissimilarity
// (params.WeightedW). The caller's params.Dissimilarity, IncludeColour and
// IncludeDepth are ignored: both passes histogram colour and depth, pass A
// always uses Depth and pass B always uses Weighted.
func SegmentTwoPass(img *raster.Image, seeds session.SeedSet, params session.Params, solver graphcut.MaxFlowSolver, cancel <-chan struct{}, logWriter io.Writer) (TwoPassResult, error) {
	normImg, _ := raster.Normalize(img)

	passAParams := params
	passAParams.IncludeColour = true // spec.md §4.7 step 1: pass A always uses both groups, regardless of the caller's flags
	passAParams.IncludeDepth = true
	passAParams.Dissimilarity = session.Depth

	passA, err := Segment(normImg, seeds, passAParams, solver, cancel, logWriter)
	if err != nil {
		return TwoPassResult{}, err
	}

	reseeded := session.SeedSet{
		Sources: morph.MaskToIndices(passA.Mask),
	}

	boundary, report := growBackgroundSeeds(normImg, passA.Mask, params.BackgroundCheckRadius, params.BackgroundThreshold)
	reseeded.Sinks = boundary
	if logWriter != nil {
		fmt.Fprintf(logWriter, "%s\n", report)
	}

	passBParams := passAParams // spec.md §4.7 step 5: same include_* flags as pass A
	passBParams.Dissimilarity = session.Weighted

	passB, err := Segment(normImg, reseeded, passBParams, solver, cancel, logWriter)
	if err != nil {
		return TwoPassResult{}, err
	}

	return TwoPassResult{
		Mask:           passB.Mask,
		PassAMask:      passA.Mask,
		Flow:           passB.Flow,
		BoundaryGrowth: report,
		PassASummary:   passA.RegionalSummary,
		PassBSummary:   passB.RegionalSummary,
	}, nil
}

// growBackgroundSeeds implements spec.md §4.7 step 4: dilate mask_A by 1,
// XOR with mask_A to get the boundary ring, then for each boundary pixel
// compare the median depth of the foreground vs background pixels in a
// window of radius r and promote it to a sink if they diverge enough.
func growBackgroundSeeds(img *raster.Image, maskA *morph.Mask, r int32, threshold float32) ([]raster.Coord, BoundaryGrowthReport) {
	dilated := morph.Dilate(maskA, 1)
	ring := morph.Xor(dilated, maskA)
	boundary := morph.MaskToIndices(ring)

	var sinks []raster.Coord
	for _, b := range boundary {
		window := morph.RegionAround(b, r, img.W, img.H)
		var fgDepths, bgDepths []float32
		for _, p := range window {
			d := img.At(p, 3)
			if maskA.At(p) {
				fgDepths = append(fgDepths, d)
			} else {
				bgDepths = append(bgDepths, d)
			}
		}
		fgMed, fgOK := morph.MedianOf(fgDepths)
		bgMed, bgOK := morph.MedianOf(bgDepths)
		if !fgOK || !bgOK {
			continue
		}
		if abs32(fgMed-bgMed) > threshold {
			sinks = append(sinks, b)
		}
	}

	return sinks, BoundaryGrowthReport{BoundaryPixels: len(boundary), NewSinks: len(sinks)}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
