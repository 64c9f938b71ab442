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

	"github.com/valyala/fastrand"
)

// MaxSeedSamplesPerChannel caps how many seed values go into a single
// channel's histogram before Bank.Build randomly subsamples instead,
// mirroring the teacher's location/scale estimator which samples a fixed
// number of points from (data, rng.Uint32n(max)) rather than scanning all of
// it. Interactive seed sets never get near this; it only matters for
// programmatically generated seed sets (e.g. reseeding from a full mask).
const MaxSeedSamplesPerChannel = 200000

// Bank combines one 1-D histogram per active channel for a single label
// (foreground or background). Channels are treated independently: the
// per-pixel log-likelihood is the sum of per-channel negative log-likelihoods.
type Bank struct {
	Channels []int32 // channel indices this bank was built over, e.g. [0,1,2,3]
	Hists    []*Histogram1D
	Bins     int32
	Sampled  bool    // true if seed pixels were subsampled to build this bank
	Epsilon  float32 // likelihood floor, 1/(numSeeds*bins*1000) per spec, guards -log(0)
}

// ActiveChannels returns the channel index list selected by the
// include_colour/include_depth flags: colour is channels 0,1,2, depth is
// channel 3. Auxiliary channels (4..) are never histogrammed.
func ActiveChannels(includeColour, includeDepth bool) []int32 {
	var chans []int32
	if includeColour {
		chans = append(chans, 0, 1, 2)
	}
	if includeDepth {
		chans = append(chans, 3)
	}
	return chans
}

// Build constructs a Bank from the given seed pixel vectors (already
// normalized), over the given active channels, with b bins per channel. An
// empty pixels slice yields an empty bank whose histograms are all zero (so
// every Likelihood returns 0 and NegativeLog clamps to the epsilon floor).
func Build(pixels [][]float32, activeChannels []int32, b int32) *Bank {
	numSeeds := len(pixels)
	if numSeeds == 0 {
		numSeeds = 1
	}
	eps := 1.0 / (float32(numSeeds) * float32(b) * 1000.0)
	bank := &Bank{Channels: activeChannels, Bins: b, Hists: make([]*Histogram1D, len(activeChannels)), Epsilon: eps}
	for i, ch := range activeChannels {
		values := extractChannel(pixels, ch)
		if len(values) > MaxSeedSamplesPerChannel {
			values = subsample(values, MaxSeedSamplesPerChannel)
			bank.Sampled = true
		}
		h := New(b)
		h.Build(values)
		bank.Hists[i] = h
	}
	return bank
}

func extractChannel(pixels [][]float32, ch int32) []float32 {
	values := make([]float32, len(pixels))
	for i, p := range pixels {
		values[i] = p[ch]
	}
	return values
}

func subsample(data []float32, n int) []float32 {
	samples := make([]float32, n)
	rng := fastrand.RNG{}
	max := uint32(len(data))
	for i := range samples {
		samples[i] = data[rng.Uint32n(max)]
	}
	return samples
}

// NegativeLogLikelihood returns sum over active channels of
// -log(max(bank.Epsilon, likelihood)) for pixel p.
func (bank *Bank) NegativeLogLikelihood(p []float32) float32 {
	sum := float32(0)
	for i, ch := range bank.Channels {
		lk := bank.Hists[i].Likelihood(p[ch])
		if lk < bank.Epsilon {
			lk = bank.Epsilon
		}
		sum += float32(-math.Log(float64(lk)))
	}
	return sum
}
