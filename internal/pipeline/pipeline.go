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

// Package pipeline wires raster, pixel, histogram, regional, smoothness and
// graphcut together into the single-pass and two-pass segmentation
// operations. It is pure and re-entrant: two concurrent calls on disjoint
// inputs are safe, per spec.md §5.
package pipeline

import (
	"fmt"
	"io"

	"github.com/jtpils/lidarseg/internal/graphcut"
	"github.com/jtpils/lidarseg/internal/morph"
	"github.com/jtpils/lidarseg/internal/raster"
	"github.com/jtpils/lidarseg/internal/regional"
	"github.com/jtpils/lidarseg/internal/session"
	"github.com/jtpils/lidarseg/internal/smoothness"
)

// Result is a completed segmentation: the mask plus the observables spec.md
// calls out as useful for tests and logging (flow value, regional summary).
type Result struct {
	Mask            *morph.Mask
	Flow            float32
	RegionalSummary regional.Summary
}

// Segment implements spec.md §4.7's single-pass pipeline: C2 -> C4+C5 -> C6
// -> C7 -> mask. It normalizes img itself; callers pass in the raw loaded
// image.
func Segment(img *raster.Image, seeds session.SeedSet, params session.Params, solver graphcut.MaxFlowSolver, cancel <-chan struct{}, logWriter io.Writer) (Result, error) {
	if err := img.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", session.ErrUnsupportedImage, err)
	}
	if err := params.Validate(); err != nil {
		return Result{}, err
	}
	normImg, _ := raster.Normalize(img)

	cleaned := seeds.Clean(normImg, logWriter)
	if cleaned.IsEmpty() {
		return Result{}, session.ErrNoSeeds
	}

	caps, summary := regional.Build(normImg, cleaned.Sources, cleaned.Sinks, params.IncludeColour, params.IncludeDepth, params.Bins, params.Lambda, logWriter)
	weights := smoothness.Build(normImg, params.DissimilarityFunc())
	if logWriter != nil {
		fmt.Fprintf(logWriter, "%s, sigma2=%v\n", summary, weights.Sigma2)
	}

	g := graphcut.Build(normImg.Pixels(), caps, weights)
	runner := graphcut.MinCutRunner{Solver: solver}
	cut, err := runner.Run(g, cancel)
	if err != nil {
		return Result{}, err
	}

	mask := &morph.Mask{W: img.W, H: img.H, Data: cut.Mask}
	if logWriter != nil {
		fmt.Fprintf(logWriter, "segment: flow=%v\n", cut.Flow)
	}
	return Result{Mask: mask, Flow: cut.Flow, RegionalSummary: summary}, nil
}
