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

package histogram

import (
	"math"

	"gonum.org/v1/gonum/optimize"
)

// FitGaussian fits a Gaussian to h's bin counts by minimizing the RMS
// residual with Nelder-Mead, and returns its mode and standard deviation.
// This is a log-output diagnostic only: the regional term (bank.go) never
// consults it, it exists so operators can report e.g. "foreground channel 3
// histogram centered at 0.62 +/- 0.05" the way the teacher's stacking
// pipeline reports estimated noise.
func (h *Histogram1D) FitGaussian() (mode, stdDev float32, err error) {
	peakX, peakY := h.Peak()
	b := len(h.Bins)

	x0 := []float64{float64(peakY), float64(peakX), 0.1}
	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			alpha, mu, sigma := x[0], x[1], x[2]
			if sigma <= 0 {
				return math.Inf(1)
			}
			scaler := alpha / (sigma * math.Sqrt(2*math.Pi))
			sumSqDiff := 0.0
			for i, y := range h.Bins {
				binCenter := (float64(i) + 0.5) / float64(b)
				z := (binCenter - mu) / sigma
				predicted := scaler * math.Exp(-0.5*z*z)
				diff := float64(y) - predicted
				sumSqDiff += diff * diff
			}
			return math.Sqrt(sumSqDiff / float64(b))
		},
	}
	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return 0, 0, err
	}
	return float32(result.X[1]), float32(result.X[2]), nil
}
