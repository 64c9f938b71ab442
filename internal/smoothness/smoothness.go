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

// Package smoothness builds the Boykov-Jolly neighbour-edge capacities the
// boundary term of the cut uses, from an image and a pluggable pixel
// dissimilarity (package pixel).
package smoothness

import (
	"math"

	"github.com/jtpils/lidarseg/internal/pixel"
	"github.com/jtpils/lidarseg/internal/raster"
)

// offset is one of the four "forward" 8-connected directions; enumerating
// only these per pixel visits every unordered neighbour pair exactly once.
type offset struct {
	dx, dy int32
	dist   float32
}

var forwardOffsets = [4]offset{
	{1, 0, 1},                  // E
	{0, 1, 1},                  // S
	{1, 1, float32(math.Sqrt2)},  // SE
	{-1, 1, float32(math.Sqrt2)}, // SW
}

// Pair is one unordered neighbour-pixel edge with its dissimilarity and
// symmetric capacity.
type Pair struct {
	A, B     int32 // pixel indices, row-major
	Weight   float32
}

// Weights holds every neighbour-pair capacity for an image, plus the sigma^2
// used to derive them (exposed for diagnostics and the constant-image edge
// case, spec.md invariant 7).
type Weights struct {
	Pairs []Pair
	Sigma2 float32
}

// Build computes w_pq for every unordered 8-neighbour pair of img (already
// normalized) under dissimilarity d, per spec.md §4.5. When img is constant
// (sigma^2==0) every weight is 1, per invariant 7 -- exp(-0/0) is otherwise
// undefined.
func Build(img *raster.Image, d pixel.Dissimilarity) Weights {
	pairs := enumeratePairs(img)
	dists := make([]float32, len(pairs))
	for i, pr := range pairs {
		dists[i] = d.Eval(img.Pixel(pr.A), img.Pixel(pr.B))
	}

	sigma2 := meanSquare(dists)

	out := make([]Pair, len(pairs))
	if sigma2 == 0 {
		for i, pr := range pairs {
			out[i] = Pair{A: pr.A, B: pr.B, Weight: 1}
		}
		return Weights{Pairs: out, Sigma2: 0}
	}

	applyWeights(out, pairs, dists, sigma2)
	return Weights{Pairs: out, Sigma2: sigma2}
}

type rawPair struct {
	A, B     int32
	Distance float32 // Euclidean pixel distance, 1 or sqrt(2)
}

func enumeratePairs(img *raster.Image) []rawPair {
	pairs := make([]rawPair, 0, int(img.W)*int(img.H)*2)
	for y := int32(0); y < img.H; y++ {
		for x := int32(0); x < img.W; x++ {
			a := raster.Coord{X: x, Y: y}
			aIdx := img.Index(a)
			for _, off := range forwardOffsets {
				b := raster.Coord{X: x + off.dx, Y: y + off.dy}
				if !img.InBounds(b) {
					continue
				}
				pairs = append(pairs, rawPair{A: aIdx, B: img.Index(b), Distance: off.dist})
			}
		}
	}
	return pairs
}

func meanSquare(dists []float32) float32 {
	if len(dists) == 0 {
		return 0
	}
	sum := float32(0)
	for _, d := range dists {
		sum += d * d
	}
	return sum / float32(len(dists))
}

// applyWeightsGeneric is the single source of truth for the w_pq formula,
// shared by both the amd64 fast path (as its non-AVX2 fallback) and the
// noarch build.
func applyWeightsGeneric(out []Pair, pairs []rawPair, dists []float32, sigma2 float32) {
	inv2Sigma2 := 1.0 / (2 * float64(sigma2))
	for i, d := range dists {
		dd := float64(d)
		w := math.Exp(-dd * dd * inv2Sigma2)
		out[i] = Pair{A: pairs[i].A, B: pairs[i].B, Weight: float32(w) / pairs[i].Distance}
	}
}
