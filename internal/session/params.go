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

// Package session holds the core segmentation API's configuration record,
// seed sets and error kinds. It has no dependency on I/O, the graph solver
// or any particular dissimilarity implementation beyond package pixel.
package session

import (
	"errors"
	"fmt"

	"github.com/jtpils/lidarseg/internal/pixel"
)

// DissimilarityKind tags which pixel.Dissimilarity a Params selects,
// mirroring the tagged-variant design from spec.md §9 without heap-
// allocated polymorphism at the config layer.
type DissimilarityKind int

const (
	Depth DissimilarityKind = iota
	Colour
	Weighted
	LabColour
)

func (k DissimilarityKind) String() string {
	switch k {
	case Depth:
		return "depth"
	case Colour:
		return "colour"
	case Weighted:
		return "weighted"
	case LabColour:
		return "lab_colour"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// Params configures one segment/segment_two_pass call.
type Params struct {
	Bins                   int32
	Lambda                 float32
	IncludeColour          bool
	IncludeDepth           bool
	Dissimilarity          DissimilarityKind
	WeightedW              [4]float32 // used when Dissimilarity == Weighted
	BackgroundCheckRadius  int32
	BackgroundThreshold    float32
}

// DefaultParams returns spec.md §6's documented defaults.
func DefaultParams() Params {
	return Params{
		Bins:                  10,
		Lambda:                1.0,
		IncludeColour:         true,
		IncludeDepth:          true,
		Dissimilarity:         Weighted,
		WeightedW:             [4]float32{1, 1, 1, 1},
		BackgroundCheckRadius: 3,
		BackgroundThreshold:   0.4,
	}
}

// Validate checks Params against spec.md §7's InvalidParams rule.
func (p Params) Validate() error {
	if p.Lambda <= 0 {
		return fmt.Errorf("%w: lambda must be > 0, got %v", ErrInvalidParams, p.Lambda)
	}
	if p.Bins <= 0 {
		return fmt.Errorf("%w: bins must be > 0, got %v", ErrInvalidParams, p.Bins)
	}
	if !p.IncludeColour && !p.IncludeDepth {
		return fmt.Errorf("%w: include_colour and include_depth cannot both be false", ErrInvalidParams)
	}
	return nil
}

// DissimilarityFunc builds the pixel.Dissimilarity this Params selects.
func (p Params) DissimilarityFunc() pixel.Dissimilarity {
	switch p.Dissimilarity {
	case Depth:
		return pixel.DepthDifference{}
	case Colour:
		return pixel.ColorDifference{}
	case LabColour:
		return pixel.LabColorDifference{}
	default:
		return pixel.WeightedDifference{W: p.WeightedW}
	}
}

// Error kinds surfaced by the core, spec.md §7.
var (
	ErrUnsupportedImage = errors.New("session: unsupported image")
	ErrInvalidParams    = errors.New("session: invalid params")
	ErrNoSeeds          = errors.New("session: no seeds")
)
