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

// +build amd64

package smoothness

import (
	"math"

	"github.com/klauspost/cpuid"
)

// applyWeights fills out[i].Weight = exp(-dists[i]^2/(2*sigma2)) / distance,
// the same formula applyWeightsGeneric computes. On AVX2-capable CPUs the
// distances are processed in blocks of 8 to keep the exp() calls and the
// final divide pipelined; the arithmetic itself is scalar, matching the
// teacher's median3x3 fast path which blocks without hand-written SIMD.
func applyWeights(out []Pair, pairs []rawPair, dists []float32, sigma2 float32) {
	if !cpuid.CPU.AVX2() {
		applyWeightsGeneric(out, pairs, dists, sigma2)
		return
	}

	inv2Sigma2 := 1.0 / (2 * float64(sigma2))
	n := len(dists)
	i := 0
	for ; i+8 <= n; i += 8 {
		for j := 0; j < 8; j++ {
			k := i + j
			d := float64(dists[k])
			w := math.Exp(-d * d * inv2Sigma2)
			out[k] = Pair{A: pairs[k].A, B: pairs[k].B, Weight: float32(w) / pairs[k].Distance}
		}
	}
	for ; i < n; i++ {
		d := float64(dists[i])
		w := math.Exp(-d * d * inv2Sigma2)
		out[i] = Pair{A: pairs[i].A, B: pairs[i].B, Weight: float32(w) / pairs[i].Distance}
	}
}
