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

package raster

// ChannelRange holds the per-channel min/max used to rescale a channel to
// [0,1].
type ChannelRange struct {
	Min, Max float32
}

// Normalize independently rescales each channel of img to [0,1] by its own
// min-max range, returning a new image and the ranges used (callers that
// need to invert the mapping, e.g. for displaying the depth channel in
// original units, can keep the ranges around). A channel with Max==Min is
// set to 0 throughout, per spec.
func Normalize(img *Image) (out *Image, ranges []ChannelRange) {
	ranges = computeRanges(img)
	out = NewImageFromImage(img)

	numPixels := int64(img.W) * int64(img.H)
	for p := int64(0); p < numPixels; p++ {
		base := p * int64(img.K)
		for c := int32(0); c < img.K; c++ {
			r := ranges[c]
			v := img.Data[base+int64(c)]
			if r.Max == r.Min {
				out.Data[base+int64(c)] = 0
			} else {
				out.Data[base+int64(c)] = (v - r.Min) / (r.Max - r.Min)
			}
		}
	}
	return out, ranges
}

func computeRanges(img *Image) []ChannelRange {
	ranges := make([]ChannelRange, img.K)
	for c := int32(0); c < img.K; c++ {
		ranges[c] = ChannelRange{Min: float32(1e38), Max: float32(-1e38)}
	}
	numPixels := int64(img.W) * int64(img.H)
	for p := int64(0); p < numPixels; p++ {
		base := p * int64(img.K)
		for c := int32(0); c < img.K; c++ {
			v := img.Data[base+int64(c)]
			r := &ranges[c]
			if v < r.Min {
				r.Min = v
			}
			if v > r.Max {
				r.Max = v
			}
		}
	}
	return ranges
}

// IsNormalized reports whether every channel of img already lies within
// [0,1], used by callers/tests asserting the idempotency invariant.
func IsNormalized(img *Image) bool {
	for _, v := range img.Data {
		if v < -1e-5 || v > 1+1e-5 {
			return false
		}
	}
	return true
}
